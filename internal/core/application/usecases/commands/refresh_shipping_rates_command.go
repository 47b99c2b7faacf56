package commands

import (
	"errors"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/pkg/guard"
)

var ErrRefreshShippingRatesCommandIsNotConstructed = errors.New(
	"RefreshShippingRatesCommand must be created via NewRefreshShippingRatesCommand constructor",
)

// RefreshShippingRatesCommand re-quotes a shipment's shipping rates against
// the order's current ship address. Shipped shipments keep their historical
// rates untouched; a missing address clears the quotes.
type RefreshShippingRatesCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRefreshShippingRatesCommand creates a command to re-quote a shipment's rates.
func NewRefreshShippingRatesCommand(shipmentID kernel.UUID) (RefreshShippingRatesCommand, error) {
	command := RefreshShippingRatesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setShipmentID(shipmentID); err != nil {
		return RefreshShippingRatesCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRefreshShippingRatesCommandIsNotConstructed if validation fails.
func (c RefreshShippingRatesCommand) Validate() error {
	return c.guard.Validate(ErrRefreshShippingRatesCommandIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to re-quote.
func (c RefreshShippingRatesCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c *RefreshShippingRatesCommand) setShipmentID(shipmentID kernel.UUID) error {
	if err := shipmentID.Validate(); err != nil {
		return err
	}

	c.shipmentID = shipmentID
	return nil
}
