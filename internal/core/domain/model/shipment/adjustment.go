package shipment

import (
	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/pkg/errs"
)

// Adjustment is a signed modification to a shipment's total: a promotion,
// a manual correction, or a tax amount. Tax adjustments are excluded from the
// pre-tax total; ineligible adjustments are recorded but not applied there
// either.
type Adjustment struct {
	id       kernel.UUID
	label    string
	amount   kernel.Money
	tax      bool
	eligible bool
}

// NewAdjustment creates an adjustment with the given label and signed amount.
func NewAdjustment(id kernel.UUID, label string, amount kernel.Money, tax, eligible bool) (Adjustment, error) {
	if err := id.Validate(); err != nil {
		return Adjustment{}, err
	}
	if label == "" {
		return Adjustment{}, errs.NewValueIsRequiredError("adjustment label")
	}
	return Adjustment{id: id, label: label, amount: amount, tax: tax, eligible: eligible}, nil
}

// ID returns the adjustment's unique identifier.
func (a Adjustment) ID() kernel.UUID {
	return a.id
}

// Label returns the human-readable reason for the adjustment.
func (a Adjustment) Label() string {
	return a.label
}

// Amount returns the signed amount of the adjustment.
func (a Adjustment) Amount() kernel.Money {
	return a.amount
}

// IsTax reports whether the adjustment represents a tax amount.
func (a Adjustment) IsTax() bool {
	return a.tax
}

// Eligible reports whether the adjustment currently applies to the shipment.
func (a Adjustment) Eligible() bool {
	return a.eligible
}
