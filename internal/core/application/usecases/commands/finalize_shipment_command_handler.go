package commands

import (
	"context"

	"github.com/jgayfer/solidus/internal/core/domain/services"
)

// FinalizeShipmentCommandHandler commits the stock behind a shipment's
// inventory units exactly once. The aggregate tracks which units are already
// finalized, so repeated handling unstocks nothing further.
type FinalizeShipmentCommandHandler struct {
	uowFactory UoWFactory
	adjuster   services.StockAdjuster
}

// NewFinalizeShipmentCommandHandler creates a handler for the finalize operation.
func NewFinalizeShipmentCommandHandler(uowFactory UoWFactory) FinalizeShipmentCommandHandler {
	return FinalizeShipmentCommandHandler{
		uowFactory: uowFactory,
		adjuster:   services.NewStockAdjuster(),
	}
}

// Handle loads the shipment, finalizes its pending units and unstocks exactly
// their manifest within one transaction. A shipment with no pending units
// commits unchanged.
func (h FinalizeShipmentCommandHandler) Handle(ctx context.Context, cmd FinalizeShipmentCommand) error {
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

	manifest := aggregate.Finalize()
	if manifest != nil {
		err = h.adjuster.Unstock(ctx, uow.StockLedger(), aggregate.ID(), aggregate.StockLocationID(), manifest)
		if err != nil {
			return err
		}
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
