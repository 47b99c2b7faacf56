package commands

import (
	"context"

	"github.com/jgayfer/solidus/internal/core/domain/model/shipment"
	"github.com/jgayfer/solidus/internal/core/domain/services"
	"github.com/jgayfer/solidus/internal/core/ports"
)

// ResumeShipmentCommandHandler reinstates a canceled shipment, committing its
// manifest's stock again to undo the restock performed on cancel. The landing
// state follows the order's live eligibility.
type ResumeShipmentCommandHandler struct {
	uowFactory  UoWFactory
	orderReader ports.OrderReader
	adjuster    services.StockAdjuster
	cfg         shipment.Config
}

// NewResumeShipmentCommandHandler creates a handler for the resume operation.
func NewResumeShipmentCommandHandler(
	uowFactory UoWFactory, orderReader ports.OrderReader, cfg shipment.Config,
) ResumeShipmentCommandHandler {
	return ResumeShipmentCommandHandler{
		uowFactory:  uowFactory,
		orderReader: orderReader,
		adjuster:    services.NewStockAdjuster(),
		cfg:         cfg,
	}
}

// Handle loads the shipment and its order facts, applies the resume transition
// and unstocks the manifest within one transaction.
func (h ResumeShipmentCommandHandler) Handle(ctx context.Context, cmd ResumeShipmentCommand) error {
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

	order, err := h.orderReader.Get(ctx, aggregate.OrderID())
	if err != nil {
		return err
	}

	if _, err = aggregate.Resume(order, h.cfg); err != nil {
		return err
	}

	err = h.adjuster.Unstock(ctx, uow.StockLedger(), aggregate.ID(), aggregate.StockLocationID(), aggregate.Manifest())
	if err != nil {
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
