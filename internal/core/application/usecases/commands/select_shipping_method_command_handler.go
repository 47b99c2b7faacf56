package commands

import (
	"context"

	"github.com/jgayfer/solidus/internal/core/domain/model/shipment"
	"github.com/jgayfer/solidus/internal/core/ports"
	"github.com/jgayfer/solidus/internal/pkg/errs"
)

// SelectShippingMethodCommandHandler resolves a shipping method against a
// fresh set of quotes and collapses the shipment's rate set to the single
// matching quote, selected. Quoting fresh means the stored rates never pin a
// stale price, and a method the estimator offers today is selectable even if
// it was absent from the last refresh. A method with no fresh quote fails
// with an ObjectNotFoundError.
type SelectShippingMethodCommandHandler struct {
	uowFactory  ShipmentUoWFactory
	orderReader ports.OrderReader
	estimator   ports.RateEstimator
}

// NewSelectShippingMethodCommandHandler creates a handler for method selection.
func NewSelectShippingMethodCommandHandler(
	uowFactory ShipmentUoWFactory,
	orderReader ports.OrderReader,
	estimator ports.RateEstimator,
) SelectShippingMethodCommandHandler {
	return SelectShippingMethodCommandHandler{
		uowFactory:  uowFactory,
		orderReader: orderReader,
		estimator:   estimator,
	}
}

// Handle loads the shipment, quotes fresh rates for its package, finds the
// quote for the requested method, and replaces the rate set with that single
// quote, selected.
func (h SelectShippingMethodCommandHandler) Handle(ctx context.Context, cmd SelectShippingMethodCommand) error {
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

	quotes, err := h.quote(ctx, aggregate)
	if err != nil {
		return err
	}

	var chosen *shipment.ShippingRate
	for _, quote := range quotes {
		if quote.MethodID().IsEqual(cmd.MethodID()) {
			chosen = quote
			break
		}
	}
	if chosen == nil {
		return errs.NewObjectNotFoundError("shippingMethod", cmd.MethodID().String())
	}

	if err = aggregate.ReplaceRates([]*shipment.ShippingRate{chosen}); err != nil {
		return err
	}
	if err = aggregate.SetSelectedRate(chosen.ID()); err != nil {
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

// quote requests fresh rates for the shipment's package. An order without a
// ship address yields no quotes.
func (h SelectShippingMethodCommandHandler) quote(
	ctx context.Context, aggregate *shipment.Shipment,
) ([]*shipment.ShippingRate, error) {
	order, err := h.orderReader.Get(ctx, aggregate.OrderID())
	if err != nil {
		return nil, err
	}
	address := order.ShipAddress()
	if address == nil {
		return nil, nil
	}
	return h.estimator.Quote(ctx, aggregate.ToPackage(*address))
}
