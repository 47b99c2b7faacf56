package commands

import (
	"context"
	"log/slog"

	"github.com/jgayfer/solidus/internal/core/domain/model/shipment"
	"github.com/jgayfer/solidus/internal/core/ports"
)

// ReadyShipmentCommandHandler stages a pending shipment for dispatch.
// Order facts are read fresh for every attempt; nothing about eligibility is
// cached between calls. When the shipment needs no physical fulfillment the
// transition lands on shipped directly and the ship notification is published
// after commit.
type ReadyShipmentCommandHandler struct {
	uowFactory  ShipmentUoWFactory
	orderReader ports.OrderReader
	notifier    ports.ShipmentNotifier
	cfg         shipment.Config
}

// NewReadyShipmentCommandHandler creates a handler for the ready operation.
func NewReadyShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	orderReader ports.OrderReader,
	notifier ports.ShipmentNotifier,
	cfg shipment.Config,
) ReadyShipmentCommandHandler {
	return ReadyShipmentCommandHandler{
		uowFactory:  uowFactory,
		orderReader: orderReader,
		notifier:    notifier,
		cfg:         cfg,
	}
}

// Handle loads the shipment and its order facts, applies the ready transition
// and persists the result. A failed eligibility check rolls everything back
// and leaves the shipment pending.
func (h ReadyShipmentCommandHandler) Handle(ctx context.Context, cmd ReadyShipmentCommand) error {
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

	change, err := aggregate.Ready(order, h.cfg)
	if err != nil {
		return err
	}

	if err = shipmentRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if change.To() == shipment.Shipped {
		h.notifyShipped(ctx, aggregate)
	}

	return nil
}

func (h ReadyShipmentCommandHandler) notifyShipped(ctx context.Context, aggregate *shipment.Shipment) {
	if err := h.notifier.OnShipped(ctx, aggregate); err != nil {
		slog.Error("failed to publish shipped notification",
			slog.String("shipmentId", aggregate.ID().String()),
			slog.Any("error", err))
	}
}
