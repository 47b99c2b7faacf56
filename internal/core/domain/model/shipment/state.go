package shipment

import (
	"fmt"

	"github.com/jgayfer/solidus/internal/pkg/errs"
)

// State represents the lifecycle state of a shipment.
// It implements a state machine with defined transitions to ensure
// shipments follow the correct fulfillment workflow.
//
// State transitions:
//
//	Pending <──> Ready ──> Shipped
//	   ^          │           ^
//	   │          v           │
//	   └────── Canceled ──────┘
//	      (resume / late ship)
//
// Pending and Ready convert freely in both directions; cancellation is allowed
// from either; a canceled shipment can be resumed or shipped late. Shipped is
// sticky: once reached it is never reverted by guarded transitions.
type State int

const (
	// StateUnknown represents an invalid or undefined state.
	// This value (0) helps catch uninitialized State values.
	StateUnknown State = iota

	// Pending is the initial state of a newly created shipment. The shipment
	// is waiting for the order to become shippable and its units to arrive.
	Pending

	// Ready indicates the shipment is eligible to ship: the order can ship,
	// every unit is on hand and, unless configured otherwise, the order is paid.
	Ready

	// Shipped indicates the shipment left the stock location.
	// ShippedAt is set exactly once, on first entry into this state.
	Shipped

	// Canceled indicates the shipment was canceled and its stock restocked.
	// A canceled shipment may still be resumed or shipped late.
	Canceled
)

// getStateStrings returns a map of State values to their string representations.
func getStateStrings() map[State]string {
	return map[State]string{
		StateUnknown: "unknown",
		Pending:      "pending",
		Ready:        "ready",
		Shipped:      "shipped",
		Canceled:     "canceled",
	}
}

// getValidStateStrings returns a map of only valid State values.
func getValidStateStrings() map[State]string {
	//nolint:exhaustive // StateUnknown is intentionally excluded as it's invalid
	return map[State]string{
		Pending:  "pending",
		Ready:    "ready",
		Shipped:  "shipped",
		Canceled: "canceled",
	}
}

// Validate checks if the State value is valid.
// Valid states are: Pending, Ready, Shipped, Canceled.
// StateUnknown (0) and any other values are invalid.
func (s State) Validate() error {
	if _, ok := getValidStateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("state is invalid",
			fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

// String returns the lowercase name of the state, or "unknown" for invalid
// values. It implements the fmt.Stringer interface and is safe to call on any
// State value.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsDeletionBlocked reports whether a shipment in this state may not be hard
// deleted. Shipped and canceled shipments must be preserved for their audit
// and stock history.
func (s State) IsDeletionBlocked() bool {
	return s == Shipped || s == Canceled
}
