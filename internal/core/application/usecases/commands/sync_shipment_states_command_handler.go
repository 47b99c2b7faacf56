package commands

import (
	"context"
	"log/slog"

	"github.com/jgayfer/solidus/internal/core/domain/model/shipment"
	"github.com/jgayfer/solidus/internal/core/ports"
)

// SyncShipmentStatesCommandHandler reconciles persisted shipment states with
// each order's current facts. The sync path writes states directly: no
// transition audit records are appended, and no stock is moved even when a
// shipment enters or leaves the canceled state. Shipments that turn out to be
// newly shipped owe a notification, published after their write commits.
type SyncShipmentStatesCommandHandler struct {
	uowFactory  ShipmentUoWFactory
	orderReader ports.OrderReader
	notifier    ports.ShipmentNotifier
	cfg         shipment.Config
}

// NewSyncShipmentStatesCommandHandler creates a handler for state reconciliation.
func NewSyncShipmentStatesCommandHandler(
	uowFactory ShipmentUoWFactory,
	orderReader ports.OrderReader,
	notifier ports.ShipmentNotifier,
	cfg shipment.Config,
) SyncShipmentStatesCommandHandler {
	return SyncShipmentStatesCommandHandler{
		uowFactory:  uowFactory,
		orderReader: orderReader,
		notifier:    notifier,
		cfg:         cfg,
	}
}

// Handle loads every unshipped shipment, recomputes its state from the owning
// order's facts and persists the ones that moved. Each changed shipment is
// written in its own transaction; a failing shipment is logged and skipped so
// the rest of the sweep still lands.
func (h SyncShipmentStatesCommandHandler) Handle(ctx context.Context, cmd SyncShipmentStatesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregates, err := h.uowFactory.Create().ShipmentRepository().GetAllUnshipped(ctx)
	if err != nil {
		return err
	}

	var newlyShipped []*shipment.Shipment
	for _, aggregate := range aggregates {
		order, err := h.orderReader.Get(ctx, aggregate.OrderID())
		if err != nil {
			slog.Error("failed to read order facts, skipping shipment",
				slog.String("shipmentId", aggregate.ID().String()),
				slog.Any("error", err))
			continue
		}

		result := aggregate.SyncState(order, h.cfg)
		if !result.Changed {
			continue
		}

		if err = h.persist(ctx, aggregate); err != nil {
			slog.Error("failed to persist reconciled shipment",
				slog.String("shipmentId", aggregate.ID().String()),
				slog.Any("error", err))
			continue
		}

		slog.Info("shipment state reconciled",
			slog.String("shipmentId", aggregate.ID().String()),
			slog.String("from", result.Previous.String()),
			slog.String("to", result.Current.String()))

		if result.NewlyShipped {
			newlyShipped = append(newlyShipped, aggregate)
		}
	}

	for _, aggregate := range newlyShipped {
		if err = h.notifier.OnShipped(ctx, aggregate); err != nil {
			slog.Error("failed to publish shipped notification",
				slog.String("shipmentId", aggregate.ID().String()),
				slog.Any("error", err))
		}
	}

	return nil
}

// persist writes a single reconciled shipment in its own transaction.
func (h SyncShipmentStatesCommandHandler) persist(ctx context.Context, aggregate *shipment.Shipment) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.ShipmentRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
