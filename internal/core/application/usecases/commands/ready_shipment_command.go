package commands

import (
	"errors"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/pkg/guard"
)

var ErrReadyShipmentCommandIsNotConstructed = errors.New(
	"ReadyShipmentCommand must be created via NewReadyShipmentCommand constructor",
)

// ReadyShipmentCommand stages a pending shipment for dispatch. Eligibility is
// evaluated against the live order at handling time; shipments that need no
// physical fulfillment ship immediately instead.
//
// Example:
//
//	cmd, _ := NewReadyShipmentCommand(shipmentID)
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrIllegalStateTransition) {
//	    // shipment is not pending, or the order is not ready for it
//	}
type ReadyShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReadyShipmentCommand creates a command to stage a shipment for dispatch.
func NewReadyShipmentCommand(shipmentID kernel.UUID) (ReadyShipmentCommand, error) {
	command := ReadyShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setShipmentID(shipmentID); err != nil {
		return ReadyShipmentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrReadyShipmentCommandIsNotConstructed if validation fails.
func (c ReadyShipmentCommand) Validate() error {
	return c.guard.Validate(ErrReadyShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to stage.
func (c ReadyShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c *ReadyShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}
