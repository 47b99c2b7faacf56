package commands

import (
	"errors"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/pkg/guard"
)

var ErrShipShipmentCommandIsNotConstructed = errors.New(
	"ShipShipmentCommand must be created via NewShipShipmentCommand constructor",
)

// ShipShipmentCommand marks a shipment as shipped. Valid for ready shipments
// and, as a late-ship recovery, for canceled ones; shipping a canceled
// shipment recommits its stock first. An optional carrier tracking number is
// recorded with the shipment, and the shipped notification can be suppressed
// for backfills.
type ShipShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID           kernel.UUID
	trackingNumber       string
	suppressNotification bool

	guard guard.ConstructorGuard
}

// NewShipShipmentCommand creates a command to mark a shipment shipped.
// The tracking number may be empty when the carrier provides none.
func NewShipShipmentCommand(
	shipmentID kernel.UUID, trackingNumber string, suppressNotification bool,
) (ShipShipmentCommand, error) {
	command := ShipShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setShipmentID(shipmentID); err != nil {
		return ShipShipmentCommand{}, err
	}
	command.trackingNumber = trackingNumber
	command.suppressNotification = suppressNotification

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrShipShipmentCommandIsNotConstructed if validation fails.
func (c ShipShipmentCommand) Validate() error {
	return c.guard.Validate(ErrShipShipmentCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to ship.
func (c ShipShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// TrackingNumber returns the carrier tracking number, if any.
func (c ShipShipmentCommand) TrackingNumber() string {
	return c.trackingNumber
}

// SuppressNotification reports whether the shipped notification is withheld.
func (c ShipShipmentCommand) SuppressNotification() bool {
	return c.suppressNotification
}

func (c *ShipShipmentCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}
