package commands

import (
	"errors"

	"github.com/jgayfer/solidus/internal/pkg/guard"
)

var ErrSyncShipmentStatesCommandIsNotConstructed = errors.New(
	"SyncShipmentStatesCommand must be created via NewSyncShipmentStatesCommand constructor",
)

// SyncShipmentStatesCommand reconciles every unshipped shipment with its
// order's current facts. The reconciliation bypasses the transition guards and
// the stocking side effects; it is the repair path for shipments whose orders
// changed out-of-band.
//
// Example:
//
//	cmd := NewSyncShipmentStatesCommand()
//	handler := NewSyncShipmentStatesCommandHandler(uowFactory, orderReader, notifier, cfg)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("state sync failed: %v", err)
//	}
type SyncShipmentStatesCommand struct {
	guard guard.ConstructorGuard
}

// NewSyncShipmentStatesCommand creates a new command to trigger state reconciliation.
// This is a parameterless command covering every unshipped shipment.
func NewSyncShipmentStatesCommand() SyncShipmentStatesCommand {
	return SyncShipmentStatesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrSyncShipmentStatesCommandIsNotConstructed if validation fails.
func (c *SyncShipmentStatesCommand) Validate() error {
	return c.guard.Validate(
		ErrSyncShipmentStatesCommandIsNotConstructed,
	)
}
