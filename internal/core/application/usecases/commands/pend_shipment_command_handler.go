package commands

import (
	"context"
)

// PendShipmentCommandHandler handles moving a staged shipment back to pending.
// The transition carries no stocking side effect, so only the shipment
// repository participates in the transaction.
type PendShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewPendShipmentCommandHandler creates a handler for the pend operation.
func NewPendShipmentCommandHandler(uowFactory ShipmentUoWFactory) PendShipmentCommandHandler {
	return PendShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the shipment, applies the pend transition and persists the
// result. An IllegalStateTransitionError from the aggregate rolls everything
// back and reaches the caller unchanged.
func (h PendShipmentCommandHandler) Handle(ctx context.Context, cmd PendShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()

	aggregate, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	if _, err = aggregate.Pend(); err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
