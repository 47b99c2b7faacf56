package commands_test

import (
	"testing"

	"github.com/jgayfer/solidus/internal/core/application/usecases/commands"
	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func quotedRate(t *testing.T, methodID kernel.UUID, cents int64) *shipment.ShippingRate {
	t.Helper()
	rate, err := shipment.NewShippingRate(kernel.NewUUID(), methodID, "Standard",
		kernel.NewMoneyFromCents(cents), false)
	require.NoError(t, err)
	return rate
}

func TestRefreshShippingRatesCommandHandler_Handle_SelectsFirstQuote(t *testing.T) {
	ctx := t.Context()
	aggregate := buildShipment(t)
	cmd, err := commands.NewRefreshShippingRatesCommand(aggregate.ID())
	require.NoError(t, err)

	quotes := []*shipment.ShippingRate{
		quotedRate(t, kernel.NewUUID(), 700),
		quotedRate(t, kernel.NewUUID(), 1500),
	}

	shipmentRepo := new(MockShipmentRepository)
	orderReader := new(MockOrderReader)
	estimator := new(MockRateEstimator)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		orderReader.On("Get", ctx, aggregate.OrderID()).Return(shippableOrder(t), nil).Once(),
		estimator.On("Quote", ctx, mock.AnythingOfType("shipment.Package")).Return(quotes, nil).Once(),
		shipmentRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRefreshShippingRatesCommandHandler(factory, orderReader, estimator)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, aggregate.SelectedRate())
	assert.True(t, aggregate.SelectedRate().ID().IsEqual(quotes[0].ID()))
	assert.True(t, aggregate.Cost().IsEqual(kernel.NewMoneyFromCents(700)))
}

func TestRefreshShippingRatesCommandHandler_Handle_KeepsSelectedMethod(t *testing.T) {
	ctx := t.Context()
	aggregate := buildShipment(t)
	methodID := kernel.NewUUID()

	previous, err := shipment.NewShippingRate(kernel.NewUUID(), methodID, "Standard",
		kernel.NewMoneyFromCents(900), true)
	require.NoError(t, err)
	require.NoError(t, aggregate.ReplaceRates([]*shipment.ShippingRate{previous}))

	requoted := quotedRate(t, methodID, 950)
	quotes := []*shipment.ShippingRate{
		quotedRate(t, kernel.NewUUID(), 700),
		requoted,
	}

	cmd, err := commands.NewRefreshShippingRatesCommand(aggregate.ID())
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	orderReader := new(MockOrderReader)
	estimator := new(MockRateEstimator)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		orderReader.On("Get", ctx, aggregate.OrderID()).Return(shippableOrder(t), nil).Once(),
		estimator.On("Quote", ctx, mock.AnythingOfType("shipment.Package")).Return(quotes, nil).Once(),
		shipmentRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRefreshShippingRatesCommandHandler(factory, orderReader, estimator)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, aggregate.SelectedRate())
	assert.True(t, aggregate.SelectedRate().ID().IsEqual(requoted.ID()),
		"selection follows the shipping method across a refresh")
	assert.True(t, aggregate.Cost().IsEqual(kernel.NewMoneyFromCents(950)))
}

func TestRefreshShippingRatesCommandHandler_Handle_MissingAddressClearsQuotes(t *testing.T) {
	ctx := t.Context()
	aggregate := buildShipment(t)
	require.NoError(t, aggregate.ReplaceRates([]*shipment.ShippingRate{
		quotedRate(t, kernel.NewUUID(), 700),
	}))

	cmd, err := commands.NewRefreshShippingRatesCommand(aggregate.ID())
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	orderReader := new(MockOrderReader)
	estimator := new(MockRateEstimator)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		orderReader.On("Get", ctx, aggregate.OrderID()).
			Return(stubOrderFacts{canShip: true, paid: true}, nil).Once(),
		shipmentRepo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRefreshShippingRatesCommandHandler(factory, orderReader, estimator)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Empty(t, aggregate.Rates())
	estimator.AssertNotCalled(t, "Quote", ctx, mock.Anything)
}

func TestRefreshShippingRatesCommandHandler_Handle_ShippedIsUntouched(t *testing.T) {
	ctx := t.Context()
	aggregate := readyShipment(t)
	_, err := aggregate.Ship()
	require.NoError(t, err)

	cmd, err := commands.NewRefreshShippingRatesCommand(aggregate.ID())
	require.NoError(t, err)

	shipmentRepo := new(MockShipmentRepository)
	orderReader := new(MockOrderReader)
	estimator := new(MockRateEstimator)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ShipmentRepository").Return(shipmentRepo).Once(),
		shipmentRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockShipmentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRefreshShippingRatesCommandHandler(factory, orderReader, estimator)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	estimator.AssertNotCalled(t, "Quote", ctx, mock.Anything)
	shipmentRepo.AssertNotCalled(t, "Update", ctx, aggregate)
}
