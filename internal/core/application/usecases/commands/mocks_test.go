package commands_test

import (
	"context"
	"testing"

	"github.com/jgayfer/solidus/internal/core/application/usecases/commands"
	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/core/domain/model/shipment"
	"github.com/jgayfer/solidus/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetAllUnshipped(ctx context.Context) ([]*shipment.Shipment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockStockLedger struct{ mock.Mock }

func (m *MockStockLedger) Restock(ctx context.Context, stockLocationID, variantID, shipmentID kernel.UUID, quantity int) error {
	args := m.Called(ctx, stockLocationID, variantID, shipmentID, quantity)
	return args.Error(0)
}

func (m *MockStockLedger) RestockBackordered(ctx context.Context, stockLocationID, variantID kernel.UUID, quantity int) error {
	args := m.Called(ctx, stockLocationID, variantID, quantity)
	return args.Error(0)
}

func (m *MockStockLedger) Unstock(ctx context.Context, stockLocationID, variantID, shipmentID kernel.UUID, quantity int) error {
	args := m.Called(ctx, stockLocationID, variantID, shipmentID, quantity)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

func (m *MockUoW) StockLedger() ports.StockLedger {
	args := m.Called()
	return args.Get(0).(ports.StockLedger)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, orderID kernel.UUID) (shipment.OrderFacts, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(shipment.OrderFacts), args.Error(1)
}

type MockRateEstimator struct{ mock.Mock }

func (m *MockRateEstimator) Quote(ctx context.Context, pkg shipment.Package) ([]*shipment.ShippingRate, error) {
	args := m.Called(ctx, pkg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shipment.ShippingRate), args.Error(1)
}

type MockShipmentNotifier struct{ mock.Mock }

func (m *MockShipmentNotifier) OnShipped(ctx context.Context, aggregate *shipment.Shipment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

// stubOrderFacts is a fixed set of order facts for driving transitions.
type stubOrderFacts struct {
	canShip  bool
	paid     bool
	canceled bool
	address  *kernel.Address
}

func (o stubOrderFacts) CanShip() bool                { return o.canShip }
func (o stubOrderFacts) IsPaid() bool                 { return o.paid }
func (o stubOrderFacts) IsCanceled() bool             { return o.canceled }
func (o stubOrderFacts) ShipAddress() *kernel.Address { return o.address }

func shippableOrder(t *testing.T) stubOrderFacts {
	t.Helper()
	address, err := kernel.NewAddress("1 Market St", "San Francisco", "94105", "US")
	require.NoError(t, err)
	return stubOrderFacts{canShip: true, paid: true, address: &address}
}

func buildShipment(t *testing.T, states ...shipment.UnitState) *shipment.Shipment {
	t.Helper()
	if len(states) == 0 {
		states = []shipment.UnitState{shipment.UnitOnHand}
	}

	lineItem, err := shipment.NewLineItem(kernel.NewUUID(), kernel.NewMoneyFromCents(500), 1)
	require.NoError(t, err)

	units := make([]*shipment.InventoryUnit, 0, len(states))
	for _, state := range states {
		unit, err := shipment.NewInventoryUnit(kernel.NewUUID(), kernel.NewUUID(), lineItem, state)
		require.NoError(t, err)
		units = append(units, unit)
	}

	locationID := kernel.NewUUID()
	aggregate, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), &locationID, units)
	require.NoError(t, err)
	return aggregate
}

func readyShipment(t *testing.T, states ...shipment.UnitState) *shipment.Shipment {
	t.Helper()
	aggregate := buildShipment(t, states...)
	_, err := aggregate.Ready(shippableOrder(t), shipment.Config{})
	require.NoError(t, err)
	return aggregate
}
