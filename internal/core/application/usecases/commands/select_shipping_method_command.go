package commands

import (
	"errors"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/pkg/guard"
)

var ErrSelectShippingMethodCommandIsNotConstructed = errors.New(
	"SelectShippingMethodCommand must be created via NewSelectShippingMethodCommand constructor",
)

// SelectShippingMethodCommand picks a shipment's rate by shipping method
// rather than by rate id, for callers that know the method a customer chose
// but not the quote that priced it.
type SelectShippingMethodCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	methodID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewSelectShippingMethodCommand creates a command to select a rate by method.
func NewSelectShippingMethodCommand(shipmentID, methodID kernel.UUID) (SelectShippingMethodCommand, error) {
	command := SelectShippingMethodCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setMethodID(methodID),
	); err != nil {
		return SelectShippingMethodCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSelectShippingMethodCommandIsNotConstructed if validation fails.
func (c SelectShippingMethodCommand) Validate() error {
	return c.guard.Validate(ErrSelectShippingMethodCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment whose rate is selected.
func (c SelectShippingMethodCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// MethodID returns the identifier of the shipping method to select.
func (c SelectShippingMethodCommand) MethodID() kernel.UUID {
	return c.methodID
}

func (c *SelectShippingMethodCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *SelectShippingMethodCommand) setMethodID(methodID kernel.UUID) error {
	if err := methodID.Validate(); err != nil {
		return err
	}

	c.methodID = methodID
	return nil
}
