package commands

import (
	"context"
	"log/slog"

	"github.com/jgayfer/solidus/internal/core/domain/model/shipment"
	"github.com/jgayfer/solidus/internal/core/domain/services"
	"github.com/jgayfer/solidus/internal/core/ports"
)

// ShipShipmentCommandHandler marks a shipment shipped. Shipping out of the
// canceled state recommits the manifest's stock in the same transaction as the
// state write, undoing the restock that cancellation performed. The shipped
// notification goes out only after the transaction has committed.
type ShipShipmentCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.ShipmentNotifier
	adjuster   services.StockAdjuster
}

// NewShipShipmentCommandHandler creates a handler for the ship operation.
func NewShipShipmentCommandHandler(
	uowFactory UoWFactory, notifier ports.ShipmentNotifier,
) ShipShipmentCommandHandler {
	return ShipShipmentCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		adjuster:   services.NewStockAdjuster(),
	}
}

// Handle loads the shipment, applies the ship transition together with its
// stocking side effect, records the tracking number and persists the result.
func (h ShipShipmentCommandHandler) Handle(ctx context.Context, cmd ShipShipmentCommand) error {
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

	change, err := aggregate.Ship()
	if err != nil {
		return err
	}

	if change.From() == shipment.Canceled {
		err = h.adjuster.Unstock(ctx, uow.StockLedger(), aggregate.ID(), aggregate.StockLocationID(), aggregate.Manifest())
		if err != nil {
			return err
		}
	}

	if cmd.TrackingNumber() != "" {
		aggregate.SetTrackingNumber(cmd.TrackingNumber())
	}
	aggregate.SetSuppressNotification(cmd.SuppressNotification())

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.notifier.OnShipped(ctx, aggregate); err != nil {
		slog.Error("failed to publish shipped notification",
			slog.String("shipmentId", aggregate.ID().String()),
			slog.Any("error", err))
	}

	return nil
}
