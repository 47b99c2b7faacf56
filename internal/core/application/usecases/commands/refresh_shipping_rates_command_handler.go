package commands

import (
	"context"

	"github.com/jgayfer/solidus/internal/core/domain/model/shipment"
	"github.com/jgayfer/solidus/internal/core/ports"
)

// RefreshShippingRatesCommandHandler swaps a shipment's rate quotes wholesale.
// A previously selected shipping method survives the refresh when the new
// quote set still offers it; otherwise the first quoted rate is selected.
// Shipped shipments are left untouched and a shipment whose order has no ship
// address ends up with no quotes at all.
type RefreshShippingRatesCommandHandler struct {
	uowFactory  ShipmentUoWFactory
	orderReader ports.OrderReader
	estimator   ports.RateEstimator
}

// NewRefreshShippingRatesCommandHandler creates a handler for the rate refresh operation.
func NewRefreshShippingRatesCommandHandler(
	uowFactory ShipmentUoWFactory,
	orderReader ports.OrderReader,
	estimator ports.RateEstimator,
) RefreshShippingRatesCommandHandler {
	return RefreshShippingRatesCommandHandler{
		uowFactory:  uowFactory,
		orderReader: orderReader,
		estimator:   estimator,
	}
}

// Handle loads the shipment, quotes rates for its package against the order's
// current ship address and replaces the shipment's rate set.
func (h RefreshShippingRatesCommandHandler) Handle(ctx context.Context, cmd RefreshShippingRatesCommand) error {
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

	if aggregate.IsShipped() {
		return uow.Commit(ctx)
	}

	order, err := h.orderReader.Get(ctx, aggregate.OrderID())
	if err != nil {
		return err
	}

	rates, err := h.quote(ctx, aggregate, order)
	if err != nil {
		return err
	}

	previous := aggregate.SelectedRate()

	if err = aggregate.ReplaceRates(rates); err != nil {
		return err
	}

	if chosen := pickRate(rates, previous); chosen != nil {
		if err = aggregate.SetSelectedRate(chosen.ID()); err != nil {
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

func (h RefreshShippingRatesCommandHandler) quote(
	ctx context.Context, aggregate *shipment.Shipment, order shipment.OrderFacts,
) ([]*shipment.ShippingRate, error) {
	address := order.ShipAddress()
	if address == nil {
		return nil, nil
	}
	return h.estimator.Quote(ctx, aggregate.ToPackage(*address))
}

// pickRate keeps the previously selected shipping method when the new quote
// set still offers it, falling back to the first quote.
func pickRate(rates []*shipment.ShippingRate, previous *shipment.ShippingRate) *shipment.ShippingRate {
	if len(rates) == 0 {
		return nil
	}
	if previous != nil {
		for _, rate := range rates {
			if rate.MethodID().IsEqual(previous.MethodID()) {
				return rate
			}
		}
	}
	return rates[0]
}
