package commands

import (
	"context"

	"github.com/jgayfer/solidus/internal/core/domain/services"
)

// CancelShipmentCommandHandler cancels a shipment and restocks its manifest.
// The restock preserves the on-hand versus backordered split and commits or
// rolls back together with the state write.
type CancelShipmentCommandHandler struct {
	uowFactory UoWFactory
	adjuster   services.StockAdjuster
}

// NewCancelShipmentCommandHandler creates a handler for the cancel operation.
func NewCancelShipmentCommandHandler(uowFactory UoWFactory) CancelShipmentCommandHandler {
	return CancelShipmentCommandHandler{
		uowFactory: uowFactory,
		adjuster:   services.NewStockAdjuster(),
	}
}

// Handle loads the shipment, captures its manifest, applies the cancel
// transition and restocks the manifest within one transaction.
func (h CancelShipmentCommandHandler) Handle(ctx context.Context, cmd CancelShipmentCommand) error {
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

	manifest := aggregate.Manifest()

	if _, err = aggregate.Cancel(); err != nil {
		return err
	}

	if err = h.adjuster.Restock(ctx, uow.StockLedger(), aggregate.ID(), aggregate.StockLocationID(), manifest); err != nil {
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
