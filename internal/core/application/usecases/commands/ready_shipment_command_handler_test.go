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

func TestReadyShipmentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := buildShipment(t)
	cmd, err := commands.NewReadyShipmentCommand(aggregate.ID())
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	orderReader := new(MockOrderReader)
	notifier := new(MockShipmentNotifier)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		orderReader.On("Get", ctx, aggregate.OrderID()).Return(shippableOrder(t), nil).Once(),
		shipmentRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReadyShipmentCommandHandler(factory, orderReader, notifier, shipment.Config{})
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, aggregate.IsReady())
	notifier.AssertNotCalled(t, "OnShipped", ctx, aggregate)
	shipmentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestReadyShipmentCommandHandler_Handle_DigitalShipmentNotifies(t *testing.T) {
	ctx := t.Context()

	lineItem, err := shipment.NewLineItem(kernel.NewUUID(), kernel.NewMoneyFromCents(500), 1)
	require.NoError(t, err)
	unit, err := shipment.NewInventoryUnit(kernel.NewUUID(), kernel.NewUUID(), lineItem, shipment.UnitOnHand)
	require.NoError(t, err)
	aggregate, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), nil,
		[]*shipment.InventoryUnit{unit})
	require.NoError(t, err)

	cmd, err := commands.NewReadyShipmentCommand(aggregate.ID())
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	orderReader := new(MockOrderReader)
	notifier := new(MockShipmentNotifier)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		orderReader.On("Get", ctx, aggregate.OrderID()).Return(shippableOrder(t), nil).Once(),
		shipmentRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("OnShipped", ctx, aggregate).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReadyShipmentCommandHandler(factory, orderReader, notifier, shipment.Config{})
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, aggregate.IsShipped())
	notifier.AssertExpectations(t)
}

func TestReadyShipmentCommandHandler_Handle_NotEligible(t *testing.T) {
	ctx := t.Context()
	aggregate := buildShipment(t, shipment.UnitBackordered)
	cmd, err := commands.NewReadyShipmentCommand(aggregate.ID())
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	orderReader := new(MockOrderReader)
	notifier := new(MockShipmentNotifier)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		orderReader.On("Get", ctx, aggregate.OrderID()).Return(shippableOrder(t), nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReadyShipmentCommandHandler(factory, orderReader, notifier, shipment.Config{})
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrIllegalStateTransition)
	assert.True(t, aggregate.IsPending())
	shipmentRepo.AssertNotCalled(t, "Update", ctx, aggregate)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestReadyShipmentCommandHandler_Handle_ShipmentNotFound(t *testing.T) {
	ctx := t.Context()
	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewReadyShipmentCommand(shipmentID)
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, shipmentID).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewReadyShipmentCommandHandler(
		factory, new(MockOrderReader), new(MockShipmentNotifier), shipment.Config{})
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
