package commands_test

import (
	"testing"

	"github.com/jgayfer/solidus/internal/core/application/usecases/commands"
	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/core/domain/model/shipment"
	"github.com/jgayfer/solidus/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelShipmentCommandHandler_Handle_RestocksManifest(t *testing.T) {
	ctx := t.Context()

	lineItem, err := shipment.NewLineItem(kernel.NewUUID(), kernel.NewMoneyFromCents(500), 1)
	require.NoError(t, err)
	variantID := kernel.NewUUID()

	var units []*shipment.InventoryUnit
	for _, state := range []shipment.UnitState{
		shipment.UnitOnHand, shipment.UnitOnHand, shipment.UnitBackordered,
	} {
		unit, err := shipment.NewInventoryUnit(kernel.NewUUID(), variantID, lineItem, state)
		require.NoError(t, err)
		units = append(units, unit)
	}

	locationID := kernel.NewUUID()
	aggregate, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), &locationID, units)
	require.NoError(t, err)

	cmd, err := commands.NewCancelShipmentCommand(aggregate.ID())
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	ledger := new(MockStockLedger)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("StockLedger").Return(ledger).Once(),
		ledger.On("Restock", ctx, locationID, variantID, aggregate.ID(), 2).Return(nil).Once(),
		ledger.On("RestockBackordered", ctx, locationID, variantID, 1).Return(nil).Once(),
		shipmentRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelShipmentCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, aggregate.IsCanceled())
	ledger.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCancelShipmentCommandHandler_Handle_ShippedFails(t *testing.T) {
	ctx := t.Context()
	aggregate := readyShipment(t)
	_, err := aggregate.Ship()
	require.NoError(t, err)

	cmd, err := commands.NewCancelShipmentCommand(aggregate.ID())
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCancelShipmentCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrIllegalStateTransition)
	assert.True(t, aggregate.IsShipped())
	uow.AssertNotCalled(t, "StockLedger")
	uow.AssertNotCalled(t, "Commit", ctx)
}
