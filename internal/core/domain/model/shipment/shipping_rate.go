package shipment

import (
	"errors"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
)

// ErrShippingRateIsNotConstructed is returned when a ShippingRate instance was
// not created through the NewShippingRate factory method.
var ErrShippingRateIsNotConstructed = errors.New(
	"ShippingRate must be created via NewShippingRate constructor")

// ShippingRate is a quote tying a shipping method to a cost for one shipment.
// At most one rate of a shipment carries the selected flag; the selected rate
// determines the shipment's cost. Quotes are replaceable wholesale on refresh
// or toggled individually through the aggregate.
type ShippingRate struct {
	id         kernel.UUID
	methodID   kernel.UUID
	methodName string
	cost       kernel.Money
	selected   bool

	isConstructed bool
}

// NewShippingRate creates a quote for the given shipping method.
func NewShippingRate(id, methodID kernel.UUID, methodName string, cost kernel.Money, selected bool) (*ShippingRate, error) {
	if err := errors.Join(id.Validate(), methodID.Validate()); err != nil {
		return nil, err
	}

	return &ShippingRate{
		id:            id,
		methodID:      methodID,
		methodName:    methodName,
		cost:          cost,
		selected:      selected,
		isConstructed: true,
	}, nil
}

// RestoreShippingRate reconstructs a quote from persistence.
func RestoreShippingRate(
	id, methodID kernel.UUID, methodName string, cost kernel.Money, selected bool,
) (*ShippingRate, error) {
	return NewShippingRate(id, methodID, methodName, cost, selected)
}

// Validate ensures the ShippingRate instance was properly constructed.
func (r *ShippingRate) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrShippingRateIsNotConstructed
	}
	return nil
}

// ID returns the quote's unique identifier.
func (r *ShippingRate) ID() kernel.UUID {
	return r.id
}

// MethodID returns the identifier of the quoted shipping method.
func (r *ShippingRate) MethodID() kernel.UUID {
	return r.methodID
}

// MethodName returns the display name of the quoted shipping method.
func (r *ShippingRate) MethodName() string {
	return r.methodName
}

// Cost returns the quoted cost.
func (r *ShippingRate) Cost() kernel.Money {
	return r.cost
}

// Selected reports whether this quote is the shipment's current selection.
func (r *ShippingRate) Selected() bool {
	return r.selected
}
