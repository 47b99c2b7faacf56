package shipment

import (
	"errors"
	"fmt"
	"time"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/pkg/errs"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
	// created through the NewShipment factory method. This ensures all
	// shipments are properly validated.
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

	// ErrShipmentNotEligible signals that a ready/resume transition was
	// attempted while the externally-evaluated eligibility predicate did not
	// hold. It is wrapped in the IllegalStateTransitionError returned to callers.
	ErrShipmentNotEligible = errors.New("shipment is not eligible to become ready")
)

// OrderFacts is the read interface onto the shipment's order. The order
// aggregate lives outside this core; transitions consult these live facts
// every time a guard is evaluated. Eligibility is never cached because payment
// state and per-unit inventory states change independently between calls.
type OrderFacts interface {
	// CanShip reports whether the order as a whole may ship.
	CanShip() bool
	// IsPaid reports whether the order's balance is settled.
	IsPaid() bool
	// IsCanceled reports whether the order was canceled.
	IsCanceled() bool
	// ShipAddress returns the order's ship-to address, or nil when none is on file.
	ShipAddress() *kernel.Address
}

// Config carries the configuration flags consulted by eligibility predicates.
// It is passed explicitly rather than read from ambient global state.
type Config struct {
	// RequirePaymentToShip blocks the pending-to-ready transition until the
	// order is paid.
	RequirePaymentToShip bool
}

// SyncResult reports the outcome of a SyncState reconciliation pass.
type SyncResult struct {
	// Changed is true when the persisted state was rewritten.
	Changed bool
	// Previous is the state before reconciliation.
	Previous State
	// Current is the state after reconciliation.
	Current State
	// NewlyShipped is true when reconciliation moved the shipment into Shipped
	// for the first time; the caller owes a ship notification.
	NewlyShipped bool
}

// Package describes a shipment's contents for rate estimation: the manifest of
// its units together with the destination address.
type Package struct {
	ShipmentID kernel.UUID
	Address    kernel.Address
	Items      []ManifestItem
}

// Shipment is the aggregate root of the fulfillment core: a subset of an
// order's line items that travel together from one stock location to the
// customer. It owns the shipment state machine, the shipping-rate selection,
// the inventory units and the append-only transition audit trail.
//
// Shipment follows these invariants:
//   - State is always one of Pending, Ready, Shipped, Canceled
//   - ShippedAt is set if and only if the shipment has ever reached Shipped,
//     and is never cleared by resume or cancel
//   - At most one shipping rate is selected at any time
//   - Every state transition appends exactly one StateChange record
//   - A shipment in Shipped or Canceled state cannot be deleted
//
// Transitions that carry stocking side effects return the StateChange they
// appended; callers sequence the restock/unstock hooks from its From/To pair
// inside the same transaction as the state write.
type Shipment struct {
	id              kernel.UUID
	number          string
	orderID         kernel.UUID
	stockLocationID *kernel.UUID

	state          State
	cost           kernel.Money
	shippedAt      *time.Time
	trackingNumber string

	includedTaxTotal   kernel.Money
	additionalTaxTotal kernel.Money
	adjustments        []Adjustment

	units        []*InventoryUnit
	rates        []*ShippingRate
	stateChanges []StateChange

	// specialInstructions and suppressNotification are transient request-scoped
	// attributes; they are never persisted.
	specialInstructions  string
	suppressNotification bool

	isConstructed bool
}

// NewShipment creates a pending shipment for the given order holding the given
// inventory units. stockLocationID may be nil for shipments that are not
// fulfilled from physical stock (digital goods); such shipments skip the Ready
// state and ship directly. A human-readable number is assigned at creation and
// is immutable afterwards.
func NewShipment(
	id, orderID kernel.UUID,
	stockLocationID *kernel.UUID,
	units []*InventoryUnit,
) (*Shipment, error) {
	s := &Shipment{
		number:        NewNumber(),
		state:         Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setOrderID(orderID),
		s.setStockLocationID(stockLocationID),
		s.setUnits(units),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipment reconstructs a shipment from persistence, including its
// audit trail, rates and adjustments. The transient request-scoped attributes
// start cleared.
func RestoreShipment(
	id, orderID kernel.UUID,
	stockLocationID *kernel.UUID,
	number string,
	state State,
	cost kernel.Money,
	shippedAt *time.Time,
	trackingNumber string,
	includedTaxTotal, additionalTaxTotal kernel.Money,
	units []*InventoryUnit,
	rates []*ShippingRate,
	stateChanges []StateChange,
	adjustments []Adjustment,
) (*Shipment, error) {
	s, err := NewShipment(id, orderID, stockLocationID, units)
	if err != nil {
		return nil, err
	}
	if err = state.Validate(); err != nil {
		return nil, err
	}
	if err = s.setCost(cost); err != nil {
		return nil, err
	}
	if number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}
	if selectedCount(rates) > 1 {
		return nil, errs.NewValueIsInvalidError("more than one selected shipping rate")
	}

	s.number = number
	s.state = state
	s.shippedAt = shippedAt
	s.trackingNumber = trackingNumber
	s.includedTaxTotal = includedTaxTotal
	s.additionalTaxTotal = additionalTaxTotal
	s.rates = rates
	s.stateChanges = stateChanges
	s.adjustments = adjustments
	return s, nil
}

// Validate ensures the Shipment instance was properly constructed through
// NewShipment. This prevents bypassing validation by directly instantiating
// the struct.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// IsEqual compares two shipments by their unique identifiers.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// Number returns the shipment's human-readable permalink.
func (s *Shipment) Number() string {
	return s.number
}

// OrderID returns the identifier of the order this shipment belongs to.
func (s *Shipment) OrderID() kernel.UUID {
	return s.orderID
}

// StockLocationID returns the identifier of the stock location fulfilling the
// shipment, or nil for shipments not fulfillable from physical stock.
func (s *Shipment) StockLocationID() *kernel.UUID {
	return s.stockLocationID
}

// State returns the shipment's current lifecycle state.
func (s *Shipment) State() State {
	return s.state
}

// Cost returns the shipment's base cost, determined by the selected rate.
func (s *Shipment) Cost() kernel.Money {
	return s.cost
}

// ShippedAt returns when the shipment first entered Shipped, or nil if it
// never has.
func (s *Shipment) ShippedAt() *time.Time {
	return s.shippedAt
}

// TrackingNumber returns the carrier tracking number, if any.
func (s *Shipment) TrackingNumber() string {
	return s.trackingNumber
}

// SetTrackingNumber records the carrier tracking number.
func (s *Shipment) SetTrackingNumber(trackingNumber string) {
	s.trackingNumber = trackingNumber
}

// SpecialInstructions returns the transient handling instructions for the
// current operation.
func (s *Shipment) SpecialInstructions() string {
	return s.specialInstructions
}

// SetSpecialInstructions sets transient handling instructions. They live only
// in the in-memory request context and are not persisted.
func (s *Shipment) SetSpecialInstructions(instructions string) {
	s.specialInstructions = instructions
}

// SuppressNotification reports whether the ship notification is suppressed for
// the current operation.
func (s *Shipment) SuppressNotification() bool {
	return s.suppressNotification
}

// SetSuppressNotification suppresses the ship notification for the current
// operation only.
func (s *Shipment) SetSuppressNotification(suppress bool) {
	s.suppressNotification = suppress
}

// IncludedTaxTotal returns the tax amount already contained in the cost.
func (s *Shipment) IncludedTaxTotal() kernel.Money {
	return s.includedTaxTotal
}

// SetIncludedTaxTotal records the tax amount already contained in the cost.
func (s *Shipment) SetIncludedTaxTotal(amount kernel.Money) {
	s.includedTaxTotal = amount
}

// AdditionalTaxTotal returns the tax amount charged on top of the cost.
func (s *Shipment) AdditionalTaxTotal() kernel.Money {
	return s.additionalTaxTotal
}

// SetAdditionalTaxTotal records the tax amount charged on top of the cost.
func (s *Shipment) SetAdditionalTaxTotal(amount kernel.Money) {
	s.additionalTaxTotal = amount
}

// Adjustments returns the shipment's adjustments.
func (s *Shipment) Adjustments() []Adjustment {
	return s.adjustments
}

// AddAdjustment appends an adjustment to the shipment.
func (s *Shipment) AddAdjustment(adjustment Adjustment) {
	s.adjustments = append(s.adjustments, adjustment)
}

// InventoryUnits returns the shipment's inventory units.
func (s *Shipment) InventoryUnits() []*InventoryUnit {
	return s.units
}

// StateChanges returns the append-only transition audit trail.
func (s *Shipment) StateChanges() []StateChange {
	return s.stateChanges
}

// Manifest derives the normalized per-variant, per-line-item breakdown of the
// shipment's inventory units.
func (s *Shipment) Manifest() []ManifestItem {
	return BuildManifest(s.units)
}

// ToPackage describes the shipment's contents for rate estimation.
func (s *Shipment) ToPackage(address kernel.Address) Package {
	return Package{
		ShipmentID: s.id,
		Address:    address,
		Items:      s.Manifest(),
	}
}

// RequiresShipment reports whether the shipment needs physical fulfillment.
// Shipments without a stock location (digital goods) skip Ready and ship
// directly when readied.
func (s *Shipment) RequiresShipment() bool {
	return s.stockLocationID != nil
}

// IsPending reports whether the shipment is in the Pending state.
func (s *Shipment) IsPending() bool { return s.state == Pending }

// IsReady reports whether the shipment is in the Ready state.
func (s *Shipment) IsReady() bool { return s.state == Ready }

// IsShipped reports whether the shipment is in the Shipped state.
func (s *Shipment) IsShipped() bool { return s.state == Shipped }

// IsCanceled reports whether the shipment is in the Canceled state.
func (s *Shipment) IsCanceled() bool { return s.state == Canceled }

// CanPend reports whether the Pend transition is currently legal.
func (s *Shipment) CanPend() bool {
	return s.state == Ready
}

// CanReady reports whether the Ready transition would succeed given the
// supplied live order facts and configuration.
func (s *Shipment) CanReady(order OrderFacts, cfg Config) bool {
	return s.state == Pending && (!s.RequiresShipment() || s.readyEligible(order, cfg))
}

// CanShip reports whether the Ship transition is currently legal.
func (s *Shipment) CanShip() bool {
	return s.state == Ready || s.state == Canceled
}

// CanCancel reports whether the Cancel transition is currently legal.
func (s *Shipment) CanCancel() bool {
	return s.state == Ready || s.state == Pending
}

// CanResume reports whether the Resume transition is currently legal.
func (s *Shipment) CanResume() bool {
	return s.state == Canceled
}

// Pend moves a ready shipment back to Pending.
// Returns an IllegalStateTransitionError if the shipment is not ready.
func (s *Shipment) Pend() (StateChange, error) {
	if !s.CanPend() {
		return StateChange{}, errs.NewIllegalStateTransitionError("pend", s.state.String())
	}
	return s.transitionTo(Pending), nil
}

// Ready moves a pending shipment forward. Shipments that require no physical
// fulfillment go straight to Shipped; otherwise the shipment becomes Ready
// when the order can ship, every unit permits readiness, and the order is paid
// (or payment is not required by configuration).
//
// The eligibility predicate is recomputed from the live order facts on every
// call. Returns an IllegalStateTransitionError when the shipment is not
// pending or the predicate does not hold; the state is left unchanged.
func (s *Shipment) Ready(order OrderFacts, cfg Config) (StateChange, error) {
	if s.state != Pending {
		return StateChange{}, errs.NewIllegalStateTransitionError("ready", s.state.String())
	}
	if !s.RequiresShipment() {
		change := s.transitionTo(Shipped)
		s.markUnitsShipped()
		return change, nil
	}
	if !s.readyEligible(order, cfg) {
		return StateChange{}, errs.NewIllegalStateTransitionErrorWithCause(
			"ready", s.state.String(), ErrShipmentNotEligible)
	}
	return s.transitionTo(Ready), nil
}

// Ship marks the shipment shipped. Legal from Ready and, for late shipping of
// a canceled shipment, from Canceled; callers must reconcile stock for the
// canceled case before the shipment leaves (the returned StateChange's From
// field identifies it). Every unit not canceled is marked shipped. ShippedAt
// is set on the first entry into Shipped only.
func (s *Shipment) Ship() (StateChange, error) {
	if !s.CanShip() {
		return StateChange{}, errs.NewIllegalStateTransitionError("ship", s.state.String())
	}

	change := s.transitionTo(Shipped)
	s.markUnitsShipped()
	return change, nil
}

func (s *Shipment) markUnitsShipped() {
	for _, unit := range s.units {
		if unit.state != UnitCanceled {
			unit.state = UnitShipped
		}
	}
}

// Cancel cancels a pending or ready shipment. The caller restocks every
// manifest item within the same transaction as the state write.
func (s *Shipment) Cancel() (StateChange, error) {
	if !s.CanCancel() {
		return StateChange{}, errs.NewIllegalStateTransitionError("cancel", s.state.String())
	}
	return s.transitionTo(Canceled), nil
}

// Resume reinstates a canceled shipment: back to Ready when the reentry
// eligibility predicate holds, otherwise back to Pending. The caller unstocks
// every manifest item within the same transaction as the state write, undoing
// the restock performed on cancel.
func (s *Shipment) Resume(order OrderFacts, cfg Config) (StateChange, error) {
	if !s.CanResume() {
		return StateChange{}, errs.NewIllegalStateTransitionError("resume", s.state.String())
	}
	if s.readyEligible(order, cfg) {
		return s.transitionTo(Ready), nil
	}
	return s.transitionTo(Pending), nil
}

// DetermineState computes the state the shipment should hold given the current
// order facts. Pure function used by out-of-band reconciliation: canceled
// orders force Canceled; a shipment that ever shipped stays Shipped; an order
// that cannot ship holds the shipment Pending; otherwise readiness follows the
// pending-to-ready eligibility predicate.
func (s *Shipment) DetermineState(order OrderFacts, cfg Config) State {
	switch {
	case order.IsCanceled():
		return Canceled
	case s.IsShipped():
		return Shipped
	case !order.CanShip():
		return Pending
	case s.readyEligible(order, cfg):
		return Ready
	default:
		return Pending
	}
}

// SyncState reconciles the persisted state with DetermineState. This bypass
// path rewrites the state directly: it appends no StateChange record and runs
// no cancel/resume stock hooks even when moving into or out of Canceled, which
// can desynchronize stock from state when an order is canceled out-of-band.
// ShippedAt is still set on a first entry into Shipped, and the result tells
// the caller whether a ship notification is owed.
func (s *Shipment) SyncState(order OrderFacts, cfg Config) SyncResult {
	next := s.DetermineState(order, cfg)
	result := SyncResult{Previous: s.state, Current: next}
	if next != s.state {
		s.state = next
		result.Changed = true
	}
	// A row can say shipped without ever having been stamped, e.g. when the
	// state was written out-of-band. The repair owes the stamp and the
	// notification exactly once.
	if next == Shipped && s.shippedAt == nil {
		now := time.Now().UTC()
		s.shippedAt = &now
		result.Changed = true
		result.NewlyShipped = true
	}
	return result
}

// Finalize marks the pending inventory units finalized and returns the
// manifest of exactly those units so the caller can decrement their stock in
// the same transaction. Units already finalized are skipped, so the stock
// decrement is applied exactly once per unit. Returns nil when no unit is
// pending.
func (s *Shipment) Finalize() []ManifestItem {
	var pendingUnits []*InventoryUnit
	for _, unit := range s.units {
		if unit.Pending() {
			pendingUnits = append(pendingUnits, unit)
		}
	}
	if len(pendingUnits) == 0 {
		return nil
	}

	manifest := BuildManifest(pendingUnits)
	for _, unit := range pendingUnits {
		unit.markFinalized()
	}
	return manifest
}

// EnsureDeletable returns a DestroyBlockedError when the shipment's state
// forbids hard deletion. Shipped and canceled shipments must be preserved.
func (s *Shipment) EnsureDeletable() error {
	if s.state.IsDeletionBlocked() {
		return errs.NewDestroyBlockedError("shipment", s.id.String(), s.state.String())
	}
	return nil
}

// Rates returns the shipment's current shipping-rate quotes.
func (s *Shipment) Rates() []*ShippingRate {
	return s.rates
}

// SelectedRate returns the rate with the selected flag, or nil when none is
// selected.
func (s *Shipment) SelectedRate() *ShippingRate {
	for _, rate := range s.rates {
		if rate.selected {
			return rate
		}
	}
	return nil
}

// SetSelectedRate selects the rate with the given id, deselecting the previous
// selection in the same mutation so at most one rate is ever selected. The
// shipment's cost follows the new selection. No-op if the rate is already
// selected. Returns an ObjectNotFoundError when no rate with that id belongs
// to the shipment; the current selection is left untouched.
func (s *Shipment) SetSelectedRate(rateID kernel.UUID) error {
	var target *ShippingRate
	for _, rate := range s.rates {
		if rate.id.IsEqual(rateID) {
			target = rate
			break
		}
	}
	if target == nil {
		return errs.NewObjectNotFoundError("shippingRate", rateID.String())
	}
	if target.selected {
		return nil
	}

	for _, rate := range s.rates {
		rate.selected = false
	}
	target.selected = true
	s.cost = target.cost
	return nil
}

// ReplaceRates swaps the shipment's rate set wholesale, as done on a rate
// refresh. At most one of the new rates may be selected; when one is, the
// shipment's cost follows it.
func (s *Shipment) ReplaceRates(rates []*ShippingRate) error {
	if selectedCount(rates) > 1 {
		return errs.NewValueIsInvalidError("more than one selected shipping rate")
	}

	s.rates = rates
	if selected := s.SelectedRate(); selected != nil {
		s.cost = selected.cost
	}
	return nil
}

// readyEligible is the pending-to-ready eligibility predicate, evaluated
// against live order and inventory facts on every call.
func (s *Shipment) readyEligible(order OrderFacts, cfg Config) bool {
	if !order.CanShip() {
		return false
	}
	for _, unit := range s.units {
		if !unit.State().allowsReady() {
			return false
		}
	}
	return order.IsPaid() || !cfg.RequirePaymentToShip
}

// transitionTo changes the state, appends exactly one StateChange record and
// stamps ShippedAt on a first entry into Shipped. Callers guarantee next
// differs from the current state.
func (s *Shipment) transitionTo(next State) StateChange {
	now := time.Now().UTC()
	change := newStateChange(s.state, next, now)
	s.stateChanges = append(s.stateChanges, change)
	s.state = next
	if next == Shipped && s.shippedAt == nil {
		s.shippedAt = &now
	}
	return change
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	s.orderID = orderID
	return nil
}

func (s *Shipment) setStockLocationID(stockLocationID *kernel.UUID) error {
	if stockLocationID != nil {
		if err := stockLocationID.Validate(); err != nil {
			return err
		}
	}
	s.stockLocationID = stockLocationID
	return nil
}

func (s *Shipment) setUnits(units []*InventoryUnit) error {
	if len(units) == 0 {
		return errs.NewValueIsRequiredError("inventory units")
	}
	for _, unit := range units {
		if err := unit.Validate(); err != nil {
			return err
		}
	}
	s.units = units
	return nil
}

func (s *Shipment) setCost(cost kernel.Money) error {
	if cost.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("cost",
			fmt.Errorf("%s is negative", cost))
	}
	s.cost = cost
	return nil
}

func selectedCount(rates []*ShippingRate) int {
	count := 0
	for _, rate := range rates {
		if rate.Selected() {
			count++
		}
	}
	return count
}
