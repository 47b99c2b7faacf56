package commands

import (
	"context"
)

// SelectShippingRateCommandHandler applies a rate selection to a shipment.
// An unknown rate id fails with an ObjectNotFoundError and the current
// selection survives untouched.
type SelectShippingRateCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewSelectShippingRateCommandHandler creates a handler for rate selection.
func NewSelectShippingRateCommandHandler(uowFactory ShipmentUoWFactory) SelectShippingRateCommandHandler {
	return SelectShippingRateCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the shipment, moves the selection to the requested rate and
// persists the result.
func (h SelectShippingRateCommandHandler) Handle(ctx context.Context, cmd SelectShippingRateCommand) error {
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

	if err = aggregate.SetSelectedRate(cmd.RateID()); err != nil {
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
