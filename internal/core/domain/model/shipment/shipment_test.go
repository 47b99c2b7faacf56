package shipment_test

import (
	"testing"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/core/domain/model/shipment"
	"github.com/jgayfer/solidus/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFactsStub struct {
	canShip  bool
	paid     bool
	canceled bool
	address  *kernel.Address
}

func (o orderFactsStub) CanShip() bool                { return o.canShip }
func (o orderFactsStub) IsPaid() bool                 { return o.paid }
func (o orderFactsStub) IsCanceled() bool             { return o.canceled }
func (o orderFactsStub) ShipAddress() *kernel.Address { return o.address }

func newTestUnit(t *testing.T, state shipment.UnitState) *shipment.InventoryUnit {
	t.Helper()
	lineItem, err := shipment.NewLineItem(kernel.NewUUID(), kernel.NewMoneyFromCents(500), 1)
	require.NoError(t, err)
	unit, err := shipment.NewInventoryUnit(kernel.NewUUID(), kernel.NewUUID(), lineItem, state)
	require.NoError(t, err)
	return unit
}

func newTestShipment(t *testing.T, states ...shipment.UnitState) *shipment.Shipment {
	t.Helper()
	if len(states) == 0 {
		states = []shipment.UnitState{shipment.UnitOnHand}
	}
	units := make([]*shipment.InventoryUnit, 0, len(states))
	for _, state := range states {
		units = append(units, newTestUnit(t, state))
	}
	locationID := kernel.NewUUID()
	s, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), &locationID, units)
	require.NoError(t, err)
	return s
}

func shippableOrder() orderFactsStub {
	return orderFactsStub{canShip: true, paid: true}
}

func TestNewShipment(t *testing.T) {
	t.Run("should create pending shipment with assigned number", func(t *testing.T) {
		s := newTestShipment(t)

		require.NoError(t, s.Validate())
		assert.Equal(t, shipment.Pending, s.State())
		assert.True(t, s.IsPending())
		assert.Len(t, s.Number(), 12)
		assert.Equal(t, byte('H'), s.Number()[0])
		assert.Nil(t, s.ShippedAt())
		assert.Empty(t, s.StateChanges())
		assert.True(t, s.Cost().IsZero())
	})

	t.Run("should fail without inventory units", func(t *testing.T) {
		locationID := kernel.NewUUID()
		_, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), &locationID, nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "inventory units")
	})

	t.Run("should fail with invalid identifiers", func(t *testing.T) {
		var invalidID kernel.UUID
		_, err := shipment.NewShipment(invalidID, kernel.NewUUID(), nil,
			[]*shipment.InventoryUnit{newTestUnit(t, shipment.UnitOnHand)})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var s *shipment.Shipment

		assert.Equal(t, shipment.ErrShipmentIsNotConstructed, s.Validate())
	})
}

func TestShipment_Ready(t *testing.T) {
	t.Run("eligible pending shipment becomes ready", func(t *testing.T) {
		s := newTestShipment(t)

		change, err := s.Ready(shippableOrder(), shipment.Config{RequirePaymentToShip: true})

		require.NoError(t, err)
		assert.True(t, s.IsReady())
		assert.Equal(t, shipment.Pending, change.From())
		assert.Equal(t, shipment.Ready, change.To())
		assert.Len(t, s.StateChanges(), 1)
	})

	t.Run("shipment without stock location ships directly", func(t *testing.T) {
		unit := newTestUnit(t, shipment.UnitOnHand)
		s, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), nil,
			[]*shipment.InventoryUnit{unit})
		require.NoError(t, err)
		assert.False(t, s.RequiresShipment())

		change, err := s.Ready(orderFactsStub{}, shipment.Config{})

		require.NoError(t, err)
		assert.True(t, s.IsShipped())
		assert.Equal(t, shipment.Shipped, change.To())
		assert.NotNil(t, s.ShippedAt())
		assert.Len(t, s.StateChanges(), 1)
		assert.Equal(t, shipment.UnitShipped, s.InventoryUnits()[0].State())
	})

	t.Run("backordered unit blocks readiness", func(t *testing.T) {
		s := newTestShipment(t, shipment.UnitOnHand, shipment.UnitBackordered)

		_, err := s.Ready(shippableOrder(), shipment.Config{})

		require.ErrorIs(t, err, errs.ErrIllegalStateTransition)
		assert.True(t, s.IsPending())
		assert.Empty(t, s.StateChanges())
	})

	t.Run("unpaid order blocks readiness when payment is required", func(t *testing.T) {
		s := newTestShipment(t)
		order := orderFactsStub{canShip: true, paid: false}

		_, err := s.Ready(order, shipment.Config{RequirePaymentToShip: true})
		require.ErrorIs(t, err, errs.ErrIllegalStateTransition)
		assert.True(t, s.IsPending())

		_, err = s.Ready(order, shipment.Config{RequirePaymentToShip: false})
		require.NoError(t, err)
		assert.True(t, s.IsReady())
	})

	t.Run("order that cannot ship blocks readiness", func(t *testing.T) {
		s := newTestShipment(t)

		_, err := s.Ready(orderFactsStub{canShip: false, paid: true}, shipment.Config{})

		require.ErrorIs(t, err, errs.ErrIllegalStateTransition)
		assert.True(t, s.IsPending())
	})

	t.Run("fails when not pending", func(t *testing.T) {
		s := newTestShipment(t)
		_, err := s.Ready(shippableOrder(), shipment.Config{})
		require.NoError(t, err)

		_, err = s.Ready(shippableOrder(), shipment.Config{})

		require.ErrorIs(t, err, errs.ErrIllegalStateTransition)
		assert.Len(t, s.StateChanges(), 1)
	})
}

func TestShipment_Ship(t *testing.T) {
	t.Run("ships from ready and stamps shippedAt once", func(t *testing.T) {
		s := newTestShipment(t)
		_, err := s.Ready(shippableOrder(), shipment.Config{})
		require.NoError(t, err)

		change, err := s.Ship()

		require.NoError(t, err)
		assert.True(t, s.IsShipped())
		assert.Equal(t, shipment.Ready, change.From())
		assert.Equal(t, shipment.Shipped, change.To())
		require.NotNil(t, s.ShippedAt())
		assert.Len(t, s.StateChanges(), 2)

		firstShippedAt := *s.ShippedAt()

		_, err = s.Ship()
		require.ErrorIs(t, err, errs.ErrIllegalStateTransition)
		assert.Len(t, s.StateChanges(), 2)
		assert.Equal(t, firstShippedAt, *s.ShippedAt())
	})

	t.Run("marks non-canceled units shipped", func(t *testing.T) {
		s := newTestShipment(t, shipment.UnitOnHand, shipment.UnitCanceled)
		_, err := s.Ready(shippableOrder(), shipment.Config{})
		require.NoError(t, err)

		_, err = s.Ship()

		require.NoError(t, err)
		assert.Equal(t, shipment.UnitShipped, s.InventoryUnits()[0].State())
		assert.Equal(t, shipment.UnitCanceled, s.InventoryUnits()[1].State())
	})

	t.Run("ships a canceled shipment late", func(t *testing.T) {
		s := newTestShipment(t)
		_, err := s.Cancel()
		require.NoError(t, err)

		change, err := s.Ship()

		require.NoError(t, err)
		assert.True(t, s.IsShipped())
		assert.Equal(t, shipment.Canceled, change.From())
		assert.NotNil(t, s.ShippedAt())
	})

	t.Run("fails from pending", func(t *testing.T) {
		s := newTestShipment(t)

		_, err := s.Ship()

		require.ErrorIs(t, err, errs.ErrIllegalStateTransition)
		assert.True(t, s.IsPending())
		assert.Empty(t, s.StateChanges())
	})
}

func TestShipment_CancelAndResume(t *testing.T) {
	t.Run("cancels from pending and from ready", func(t *testing.T) {
		pending := newTestShipment(t)
		_, err := pending.Cancel()
		require.NoError(t, err)
		assert.True(t, pending.IsCanceled())

		ready := newTestShipment(t)
		_, err = ready.Ready(shippableOrder(), shipment.Config{})
		require.NoError(t, err)
		change, err := ready.Cancel()
		require.NoError(t, err)
		assert.Equal(t, shipment.Ready, change.From())
		assert.Equal(t, shipment.Canceled, change.To())
	})

	t.Run("cannot cancel a shipped shipment", func(t *testing.T) {
		s := newTestShipment(t)
		_, err := s.Ready(shippableOrder(), shipment.Config{})
		require.NoError(t, err)
		_, err = s.Ship()
		require.NoError(t, err)

		_, err = s.Cancel()

		require.ErrorIs(t, err, errs.ErrIllegalStateTransition)
		assert.True(t, s.IsShipped())
	})

	t.Run("resume returns to ready when eligible", func(t *testing.T) {
		s := newTestShipment(t)
		_, err := s.Cancel()
		require.NoError(t, err)

		change, err := s.Resume(shippableOrder(), shipment.Config{})

		require.NoError(t, err)
		assert.True(t, s.IsReady())
		assert.Equal(t, shipment.Canceled, change.From())
	})

	t.Run("resume falls back to pending when not eligible", func(t *testing.T) {
		s := newTestShipment(t)
		_, err := s.Cancel()
		require.NoError(t, err)

		_, err = s.Resume(orderFactsStub{canShip: false}, shipment.Config{})

		require.NoError(t, err)
		assert.True(t, s.IsPending())
	})

	t.Run("resume fails unless canceled", func(t *testing.T) {
		s := newTestShipment(t)

		_, err := s.Resume(shippableOrder(), shipment.Config{})

		require.ErrorIs(t, err, errs.ErrIllegalStateTransition)
	})
}

func TestShipment_Pend(t *testing.T) {
	t.Run("moves ready shipment back to pending", func(t *testing.T) {
		s := newTestShipment(t)
		_, err := s.Ready(shippableOrder(), shipment.Config{})
		require.NoError(t, err)

		change, err := s.Pend()

		require.NoError(t, err)
		assert.True(t, s.IsPending())
		assert.Equal(t, shipment.Ready, change.From())
		assert.Equal(t, shipment.Pending, change.To())
	})

	t.Run("fails when not ready", func(t *testing.T) {
		s := newTestShipment(t)

		_, err := s.Pend()

		require.ErrorIs(t, err, errs.ErrIllegalStateTransition)
		assert.Empty(t, s.StateChanges())
	})
}

func TestShipment_DetermineState(t *testing.T) {
	cfg := shipment.Config{RequirePaymentToShip: true}

	t.Run("canceled order wins", func(t *testing.T) {
		s := newTestShipment(t)

		got := s.DetermineState(orderFactsStub{canceled: true, canShip: true, paid: true}, cfg)

		assert.Equal(t, shipment.Canceled, got)
	})

	t.Run("shipped is sticky", func(t *testing.T) {
		s := newTestShipment(t)
		_, err := s.Ready(shippableOrder(), shipment.Config{})
		require.NoError(t, err)
		_, err = s.Ship()
		require.NoError(t, err)

		got := s.DetermineState(orderFactsStub{canShip: false}, cfg)

		assert.Equal(t, shipment.Shipped, got)
	})

	t.Run("order that cannot ship pins pending", func(t *testing.T) {
		s := newTestShipment(t)

		assert.Equal(t, shipment.Pending, s.DetermineState(orderFactsStub{canShip: false, paid: true}, cfg))
	})

	t.Run("eligibility decides between ready and pending", func(t *testing.T) {
		s := newTestShipment(t)

		assert.Equal(t, shipment.Ready, s.DetermineState(shippableOrder(), cfg))
		assert.Equal(t, shipment.Pending, s.DetermineState(orderFactsStub{canShip: true, paid: false}, cfg))
	})
}

func TestShipment_SyncState(t *testing.T) {
	t.Run("no change when states agree", func(t *testing.T) {
		s := newTestShipment(t)

		result := s.SyncState(orderFactsStub{canShip: false}, shipment.Config{})

		assert.False(t, result.Changed)
		assert.Equal(t, shipment.Pending, result.Current)
		assert.Empty(t, s.StateChanges())
	})

	t.Run("rewrites state without audit record", func(t *testing.T) {
		s := newTestShipment(t)

		result := s.SyncState(shippableOrder(), shipment.Config{})

		assert.True(t, result.Changed)
		assert.Equal(t, shipment.Pending, result.Previous)
		assert.Equal(t, shipment.Ready, result.Current)
		assert.True(t, s.IsReady())
		assert.Empty(t, s.StateChanges(), "bypass path must not append audit records")
	})

	t.Run("reports newly shipped exactly once", func(t *testing.T) {
		unit := newTestUnit(t, shipment.UnitOnHand)
		s, err := shipment.NewShipment(kernel.NewUUID(), kernel.NewUUID(), nil,
			[]*shipment.InventoryUnit{unit})
		require.NoError(t, err)
		_, err = s.Ready(orderFactsStub{}, shipment.Config{})
		require.NoError(t, err)
		require.True(t, s.IsShipped())

		result := s.SyncState(orderFactsStub{canceled: true}, shipment.Config{})

		assert.True(t, result.Changed)
		assert.Equal(t, shipment.Canceled, result.Current)
		assert.False(t, result.NewlyShipped, "shippedAt was already set")
	})

	t.Run("repairs a shipped row that was never stamped", func(t *testing.T) {
		unit := newTestUnit(t, shipment.UnitShipped)
		locationID := kernel.NewUUID()
		s, err := shipment.RestoreShipment(
			kernel.NewUUID(), kernel.NewUUID(), &locationID,
			"H12345678901", shipment.Shipped, kernel.ZeroMoney(),
			nil, "", kernel.ZeroMoney(), kernel.ZeroMoney(),
			[]*shipment.InventoryUnit{unit}, nil, nil, nil)
		require.NoError(t, err)
		require.Nil(t, s.ShippedAt())

		result := s.SyncState(shippableOrder(), shipment.Config{})

		assert.True(t, result.Changed)
		assert.True(t, result.NewlyShipped)
		assert.Equal(t, shipment.Shipped, result.Current)
		assert.NotNil(t, s.ShippedAt())
	})
}

func TestShipment_Finalize(t *testing.T) {
	t.Run("returns manifest of pending units and marks them finalized", func(t *testing.T) {
		s := newTestShipment(t, shipment.UnitOnHand, shipment.UnitOnHand)

		manifest := s.Finalize()

		require.NotEmpty(t, manifest)
		for _, unit := range s.InventoryUnits() {
			assert.False(t, unit.Pending())
		}
	})

	t.Run("second call is a no-op", func(t *testing.T) {
		s := newTestShipment(t)

		require.NotEmpty(t, s.Finalize())
		assert.Nil(t, s.Finalize())
	})
}

func TestShipment_EnsureDeletable(t *testing.T) {
	t.Run("pending and ready shipments may be deleted", func(t *testing.T) {
		s := newTestShipment(t)
		require.NoError(t, s.EnsureDeletable())

		_, err := s.Ready(shippableOrder(), shipment.Config{})
		require.NoError(t, err)
		require.NoError(t, s.EnsureDeletable())
	})

	t.Run("shipped and canceled shipments are protected", func(t *testing.T) {
		shipped := newTestShipment(t)
		_, err := shipped.Ready(shippableOrder(), shipment.Config{})
		require.NoError(t, err)
		_, err = shipped.Ship()
		require.NoError(t, err)
		require.ErrorIs(t, shipped.EnsureDeletable(), errs.ErrDestroyBlocked)

		canceled := newTestShipment(t)
		_, err = canceled.Cancel()
		require.NoError(t, err)
		require.ErrorIs(t, canceled.EnsureDeletable(), errs.ErrDestroyBlocked)
	})
}
