package commands

import (
	"errors"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/pkg/guard"
)

var ErrResumeShipmentCommandIsNotConstructed = errors.New(
	"ResumeShipmentCommand must be created via NewResumeShipmentCommand constructor",
)

// ResumeShipmentCommand reinstates a canceled shipment. The shipment lands on
// ready or pending depending on the order's current eligibility, and its stock
// is committed again.
type ResumeShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewResumeShipmentCommand creates a command to reinstate a canceled shipment.
func NewResumeShipmentCommand(shipmentID kernel.UUID) (ResumeShipmentCommand, error) {
	command := ResumeShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setShipmentID(shipmentID); err != nil {
		return ResumeShipmentCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrResumeShipmentCommandIsNotConstructed if validation fails.
func (c ResumeShipmentCommand) Validate() error {
	return c.guard.Validate(ErrResumeShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to reinstate.
func (c ResumeShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c *ResumeShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}
