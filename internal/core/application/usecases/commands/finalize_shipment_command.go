package commands

import (
	"errors"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/pkg/guard"
)

var ErrFinalizeShipmentCommandIsNotConstructed = errors.New(
	"FinalizeShipmentCommand must be created via NewFinalizeShipmentCommand constructor",
)

// FinalizeShipmentCommand commits the stock of a shipment's not-yet-finalized
// inventory units, as done when the owning order completes checkout. Each unit
// is committed at most once; repeating the command is harmless.
type FinalizeShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewFinalizeShipmentCommand creates a command to finalize a shipment's units.
func NewFinalizeShipmentCommand(shipmentID kernel.UUID) (FinalizeShipmentCommand, error) {
	command := FinalizeShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setShipmentID(shipmentID); err != nil {
		return FinalizeShipmentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrFinalizeShipmentCommandIsNotConstructed if validation fails.
func (c FinalizeShipmentCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to finalize.
func (c FinalizeShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c *FinalizeShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}
