package commands

import (
	"context"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/core/domain/model/shipment"
)

// CreateShipmentCommandHandler handles the business logic for shipment
// creation. The shipment starts in the pending state; each quantity of a unit
// input becomes its own inventory unit so later stock movements and partial
// cancellation stay unit-granular.
type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
}

// NewCreateShipmentCommandHandler creates a handler for shipment creation operations.
// Requires a ShipmentUoWFactory for transactional persistence.
func NewCreateShipmentCommandHandler(uowFactory ShipmentUoWFactory) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the shipment creation command.
// Expands unit inputs into inventory units, builds the aggregate in pending
// state and persists it within a transaction.
func (h CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	units, err := expandUnits(cmd.Units())
	if err != nil {
		return err
	}

	aggregate, err := shipment.NewShipment(cmd.ShipmentID(), cmd.OrderID(), cmd.StockLocationID(), units)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ShipmentRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

func expandUnits(inputs []ShipmentUnitInput) ([]*shipment.InventoryUnit, error) {
	var units []*shipment.InventoryUnit
	for _, input := range inputs {
		lineItem, err := shipment.NewLineItem(
			input.LineItemID, kernel.NewMoneyFromCents(input.UnitPriceCents), input.Quantity)
		if err != nil {
			return nil, err
		}

		state := shipment.UnitOnHand
		if input.Backordered {
			state = shipment.UnitBackordered
		}

		for range input.Quantity {
			unit, err := shipment.NewInventoryUnit(kernel.NewUUID(), input.VariantID, lineItem, state)
			if err != nil {
				return nil, err
			}
			units = append(units, unit)
		}
	}
	return units, nil
}
