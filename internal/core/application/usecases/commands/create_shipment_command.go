package commands

import (
	"errors"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/pkg/guard"
)

var (
	ErrCreateShipmentCommandIsNotConstructed = errors.New(
		"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
	)
	ErrUnitsAreRequired = errors.New("at least one inventory unit is required")
)

// ShipmentUnitInput describes one inventory unit of a new shipment: the
// product variant it holds, the order line it fulfills, and whether the unit
// is backordered at creation time.
type ShipmentUnitInput struct {
	VariantID      kernel.UUID
	LineItemID     kernel.UUID
	UnitPriceCents int64
	Quantity       int
	Backordered    bool
}

// Validate checks the input's identifiers and quantity.
func (u ShipmentUnitInput) Validate() error {
	if err := errors.Join(u.VariantID.Validate(), u.LineItemID.Validate()); err != nil {
		return err
	}
	if u.Quantity <= 0 {
		return errors.New("unit quantity must be greater than 0")
	}
	return nil
}

// CreateShipmentCommand represents a request to open a new shipment for an
// order. A shipment starts pending with its inventory units attached; a nil
// stock location marks a shipment that needs no physical fulfillment.
//
// Example:
//
//	cmd, err := NewCreateShipmentCommand(shipmentID, orderID, &locationID, units)
//	if err != nil {
//	    return fmt.Errorf("invalid shipment data: %w", err)
//	}
//
//	handler := NewCreateShipmentCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create shipment: %w", err)
//	}
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID      kernel.UUID
	orderID         kernel.UUID
	stockLocationID *kernel.UUID
	units           []ShipmentUnitInput

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand creates a command to open a new shipment.
// Validates the identifiers and requires at least one inventory unit.
func NewCreateShipmentCommand(
	shipmentID, orderID kernel.UUID,
	stockLocationID *kernel.UUID,
	units []ShipmentUnitInput,
) (CreateShipmentCommand, error) {
	command := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setOrderID(orderID),
		command.setStockLocationID(stockLocationID),
		command.setUnits(units),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateShipmentCommandIsNotConstructed if validation fails.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the unique identifier for the new shipment.
func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// OrderID returns the identifier of the order being fulfilled.
func (c CreateShipmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// StockLocationID returns the stock location the shipment draws from, or nil
// for shipments that need no physical fulfillment.
func (c CreateShipmentCommand) StockLocationID() *kernel.UUID {
	return c.stockLocationID
}

// Units returns the inventory unit inputs.
func (c CreateShipmentCommand) Units() []ShipmentUnitInput {
	return c.units
}

func (c *CreateShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *CreateShipmentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateShipmentCommand) setStockLocationID(stockLocationID *kernel.UUID) error {
	if stockLocationID != nil {
		if err := stockLocationID.Validate(); err != nil {
			return err
		}
	}

	c.stockLocationID = stockLocationID
	return nil
}

func (c *CreateShipmentCommand) setUnits(units []ShipmentUnitInput) error {
	if len(units) == 0 {
		return ErrUnitsAreRequired
	}
	for _, unit := range units {
		if err := unit.Validate(); err != nil {
			return err
		}
	}

	c.units = units
	return nil
}
