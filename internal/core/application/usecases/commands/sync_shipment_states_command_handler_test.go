package commands_test

import (
	"errors"
	"testing"

	"github.com/jgayfer/solidus/internal/core/application/usecases/commands"
	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSyncShipmentStatesCommandHandler_Handle_ReconcilesStates(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewSyncShipmentStatesCommand()

	// becomes ready once the order can ship
	movesToReady := buildShipment(t)
	// canceled order forces canceled without touching stock
	movesToCanceled := readyShipment(t)
	// already in agreement, no write
	staysPending := buildShipment(t)

	shipmentRepo := new(MockShipmentRepository)
	orderReader := new(MockOrderReader)
	notifier := new(MockShipmentNotifier)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("GetAllUnshipped", ctx).
			Return([]*shipment.Shipment{movesToReady, movesToCanceled, staysPending}, nil).Once(),
		orderReader.On("Get", ctx, movesToReady.OrderID()).Return(shippableOrder(t), nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Update", ctx, movesToReady).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		orderReader.On("Get", ctx, movesToCanceled.OrderID()).Return(stubOrderFacts{canceled: true}, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Update", ctx, movesToCanceled).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		orderReader.On("Get", ctx, staysPending.OrderID()).Return(stubOrderFacts{canShip: false}, nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Times(3)

	handler := commands.NewSyncShipmentStatesCommandHandler(factory, orderReader, notifier, shipment.Config{})
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, movesToReady.IsReady())
	assert.True(t, movesToCanceled.IsCanceled())
	assert.True(t, staysPending.IsPending())
	assert.Empty(t, movesToReady.StateChanges(), "sync writes no audit records")
	notifier.AssertNotCalled(t, "OnShipped", ctx, mock.Anything)
	shipmentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSyncShipmentStatesCommandHandler_Handle_NotifiesNewlyShipped(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewSyncShipmentStatesCommand()

	// a row whose state says shipped but was never stamped or announced,
	// e.g. written out-of-band: sync repairs the stamp and owes the
	// notification
	lineItem, err := shipment.NewLineItem(kernel.NewUUID(), kernel.NewMoneyFromCents(500), 1)
	require.NoError(t, err)
	unit, err := shipment.NewInventoryUnit(kernel.NewUUID(), kernel.NewUUID(), lineItem, shipment.UnitShipped)
	require.NoError(t, err)
	locationID := kernel.NewUUID()
	aggregate, err := shipment.RestoreShipment(
		kernel.NewUUID(), kernel.NewUUID(), &locationID,
		"H12345678901", shipment.Shipped, kernel.ZeroMoney(),
		nil, "", kernel.ZeroMoney(), kernel.ZeroMoney(),
		[]*shipment.InventoryUnit{unit}, nil, nil, nil)
	require.NoError(t, err)
	require.Nil(t, aggregate.ShippedAt())

	shipmentRepo := new(MockShipmentRepository)
	orderReader := new(MockOrderReader)
	notifier := new(MockShipmentNotifier)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("GetAllUnshipped", ctx).Return([]*shipment.Shipment{aggregate}, nil).Once(),
		orderReader.On("Get", ctx, aggregate.OrderID()).Return(shippableOrder(t), nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		notifier.On("OnShipped", ctx, aggregate).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Times(2)

	handler := commands.NewSyncShipmentStatesCommandHandler(factory, orderReader, notifier, shipment.Config{})
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, aggregate.IsShipped())
	assert.NotNil(t, aggregate.ShippedAt())
	notifier.AssertExpectations(t)
}

func TestSyncShipmentStatesCommandHandler_Handle_SkipsFailingShipments(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewSyncShipmentStatesCommand()

	// the first shipment's order lookup fails, the second still reconciles
	unreadable := buildShipment(t)
	movesToReady := buildShipment(t)

	shipmentRepo := new(MockShipmentRepository)
	orderReader := new(MockOrderReader)
	notifier := new(MockShipmentNotifier)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("GetAllUnshipped", ctx).
			Return([]*shipment.Shipment{unreadable, movesToReady}, nil).Once(),
		orderReader.On("Get", ctx, unreadable.OrderID()).
			Return(nil, errors.New("order service unavailable")).Once(),
		orderReader.On("Get", ctx, movesToReady.OrderID()).Return(shippableOrder(t), nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Update", ctx, movesToReady).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Times(2)

	handler := commands.NewSyncShipmentStatesCommandHandler(factory, orderReader, notifier, shipment.Config{})
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, unreadable.IsPending())
	assert.True(t, movesToReady.IsReady())
	shipmentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSyncShipmentStatesCommandHandler_Handle_WriteFailureDoesNotAbortSweep(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewSyncShipmentStatesCommand()

	firstChanged := buildShipment(t)
	secondChanged := buildShipment(t)

	shipmentRepo := new(MockShipmentRepository)
	orderReader := new(MockOrderReader)
	notifier := new(MockShipmentNotifier)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("GetAllUnshipped", ctx).
			Return([]*shipment.Shipment{firstChanged, secondChanged}, nil).Once(),
		orderReader.On("Get", ctx, firstChanged.OrderID()).Return(shippableOrder(t), nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Update", ctx, firstChanged).
			Return(errors.New("connection reset")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		orderReader.On("Get", ctx, secondChanged.OrderID()).Return(shippableOrder(t), nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Update", ctx, secondChanged).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Times(3)

	handler := commands.NewSyncShipmentStatesCommandHandler(factory, orderReader, notifier, shipment.Config{})
	err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	shipmentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}
