package commands

import (
	"errors"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/pkg/guard"
)

var ErrSelectShippingRateCommandIsNotConstructed = errors.New(
	"SelectShippingRateCommand must be created via NewSelectShippingRateCommand constructor",
)

// SelectShippingRateCommand picks one of a shipment's quoted rates. The
// previous selection is dropped in the same mutation so at most one rate is
// ever selected, and the shipment's cost follows the pick.
type SelectShippingRateCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	rateID     kernel.UUID

	guard guard.ConstructorGuard
}

// NewSelectShippingRateCommand creates a command to select a quoted rate.
func NewSelectShippingRateCommand(shipmentID, rateID kernel.UUID) (SelectShippingRateCommand, error) {
	command := SelectShippingRateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setShipmentID(shipmentID),
		command.setRateID(rateID),
	); err != nil {
		return SelectShippingRateCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSelectShippingRateCommandIsNotConstructed if validation fails.
func (c SelectShippingRateCommand) Validate() error {
	return c.guard.Validate(ErrSelectShippingRateCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment whose rate is selected.
func (c SelectShippingRateCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// RateID returns the identifier of the rate to select.
func (c SelectShippingRateCommand) RateID() kernel.UUID {
	return c.rateID
}

func (c *SelectShippingRateCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}

func (c *SelectShippingRateCommand) setRateID(rateID kernel.UUID) error {
	if err := rateID.Validate(); err != nil {
		return err
	}

	c.rateID = rateID
	return nil
}
