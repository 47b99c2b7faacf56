package commands

import (
	"errors"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/pkg/guard"
)

var ErrPendShipmentCommandIsNotConstructed = errors.New(
	"PendShipmentCommand must be created via NewPendShipmentCommand constructor",
)

// PendShipmentCommand moves a ready shipment back to pending, as done when an
// order loses its readiness after the shipment was already staged.
type PendShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewPendShipmentCommand creates a command to move a shipment back to pending.
func NewPendShipmentCommand(shipmentID kernel.UUID) (PendShipmentCommand, error) {
	command := PendShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setShipmentID(shipmentID); err != nil {
		return PendShipmentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrPendShipmentCommandIsNotConstructed if validation fails.
func (c PendShipmentCommand) Validate() error {
	return c.guard.Validate(ErrPendShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to move back to pending.
func (c PendShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c *PendShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}
