package shipment

import (
	"errors"
	"fmt"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/pkg/errs"
)

// ErrInventoryUnitIsNotConstructed is returned when an InventoryUnit instance
// was not created through the NewInventoryUnit factory method.
var ErrInventoryUnitIsNotConstructed = errors.New(
	"InventoryUnit must be created via NewInventoryUnit constructor")

// UnitState is the fulfillment state of an individual inventory unit.
// It is distinct from the shipment state: a pending shipment can hold a mix of
// on-hand and backordered units.
type UnitState int

const (
	// UnitStateUnknown represents an invalid or undefined unit state.
	UnitStateUnknown UnitState = iota

	// UnitOnHand means physical stock for the unit is reserved at the location.
	UnitOnHand

	// UnitBackordered means the unit awaits incoming stock. Backordered units
	// block the shipment from becoming ready.
	UnitBackordered

	// UnitShipped means the unit already left the stock location.
	UnitShipped

	// UnitCanceled means the unit was canceled out of the shipment.
	UnitCanceled
)

// getUnitStateStrings returns a map of UnitState values to their string representations.
func getUnitStateStrings() map[UnitState]string {
	return map[UnitState]string{
		UnitStateUnknown: "unknown",
		UnitOnHand:       "on_hand",
		UnitBackordered:  "backordered",
		UnitShipped:      "shipped",
		UnitCanceled:     "canceled",
	}
}

// Validate checks if the UnitState value is valid.
func (s UnitState) Validate() error {
	if s <= UnitStateUnknown || s > UnitCanceled {
		return errs.NewValueIsInvalidErrorWithCause("unit state is invalid",
			fmt.Errorf("%d is not a valid unit state", s))
	}
	return nil
}

// String returns the lowercase name of the unit state.
// It implements the fmt.Stringer interface.
func (s UnitState) String() string {
	if str, ok := getUnitStateStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// allowsReady reports whether a unit in this state permits its shipment to
// become ready. Backordered units hold the shipment back; shipped and canceled
// units no longer require stock.
func (s UnitState) allowsReady() bool {
	return s == UnitOnHand || s == UnitShipped || s == UnitCanceled
}

// LineItem is a value object describing the order line an inventory unit
// belongs to: its identity, unit price and ordered quantity.
type LineItem struct {
	id        kernel.UUID
	unitPrice kernel.Money
	quantity  int
}

// NewLineItem creates a LineItem reference with a positive quantity.
func NewLineItem(id kernel.UUID, unitPrice kernel.Money, quantity int) (LineItem, error) {
	if err := id.Validate(); err != nil {
		return LineItem{}, err
	}
	if quantity <= 0 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	return LineItem{id: id, unitPrice: unitPrice, quantity: quantity}, nil
}

// ID returns the line item's unique identifier.
func (li LineItem) ID() kernel.UUID {
	return li.id
}

// UnitPrice returns the price of a single unit of the line item.
func (li LineItem) UnitPrice() kernel.Money {
	return li.unitPrice
}

// Quantity returns the ordered quantity of the line item.
func (li LineItem) Quantity() int {
	return li.quantity
}

// Total returns the line item's extended price (unit price times quantity).
func (li LineItem) Total() kernel.Money {
	return li.unitPrice.MulInt(li.quantity)
}

// InventoryUnit represents one unit of one variant within a shipment.
// A unit is owned by exactly one shipment at a time; an external transfer
// operation may reassign it to another shipment, never duplicate it.
//
// A unit starts pending: its stock has been reserved but not yet decremented.
// Finalizing the shipment decrements stock and clears the pending flag exactly
// once per unit.
type InventoryUnit struct {
	id        kernel.UUID
	variantID kernel.UUID
	lineItem  LineItem
	state     UnitState
	pending   bool

	isConstructed bool
}

// NewInventoryUnit creates a pending inventory unit for the given variant and
// line item. State must be a valid UnitState, normally UnitOnHand or
// UnitBackordered at creation time.
func NewInventoryUnit(id, variantID kernel.UUID, lineItem LineItem, state UnitState) (*InventoryUnit, error) {
	if err := errors.Join(
		id.Validate(),
		variantID.Validate(),
		lineItem.ID().Validate(),
		state.Validate(),
	); err != nil {
		return nil, err
	}

	return &InventoryUnit{
		id:            id,
		variantID:     variantID,
		lineItem:      lineItem,
		state:         state,
		pending:       true,
		isConstructed: true,
	}, nil
}

// RestoreInventoryUnit reconstructs an inventory unit from persistence,
// including its finalization flag.
func RestoreInventoryUnit(
	id, variantID kernel.UUID, lineItem LineItem, state UnitState, pending bool,
) (*InventoryUnit, error) {
	unit, err := NewInventoryUnit(id, variantID, lineItem, state)
	if err != nil {
		return nil, err
	}
	unit.pending = pending
	return unit, nil
}

// Validate ensures the InventoryUnit instance was properly constructed.
func (u *InventoryUnit) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrInventoryUnitIsNotConstructed
	}
	return nil
}

// ID returns the unit's unique identifier.
func (u *InventoryUnit) ID() kernel.UUID {
	return u.id
}

// VariantID returns the identifier of the product variant this unit holds.
func (u *InventoryUnit) VariantID() kernel.UUID {
	return u.variantID
}

// LineItem returns the order line this unit belongs to.
func (u *InventoryUnit) LineItem() LineItem {
	return u.lineItem
}

// State returns the unit's current fulfillment state.
func (u *InventoryUnit) State() UnitState {
	return u.state
}

// Pending reports whether the unit's stock decrement is still outstanding.
func (u *InventoryUnit) Pending() bool {
	return u.pending
}

// markFinalized clears the pending flag after the unit's stock was decremented.
// Applied exactly once per unit by Shipment.Finalize.
func (u *InventoryUnit) markFinalized() {
	u.pending = false
}
