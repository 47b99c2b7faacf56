package kernel

import "fmt"

// Money represents a monetary amount in cents. It is an immutable value object
// used for shipment costs, shipping-rate quotes, adjustments and taxes.
//
// Amounts may be negative: adjustments such as promotions subtract from a total.
// Callers that require non-negative amounts (for example a shipment's base cost)
// must enforce that at their own boundary.
//
// The zero value is a valid amount of zero cents, so Money carries no
// constructor guard.
//
// Example:
//
//	cost := kernel.NewMoneyFromCents(1050)
//	fmt.Println(cost) // Output: 10.50
type Money struct {
	cents int64
}

// NewMoneyFromCents creates a Money amount from a number of cents.
func NewMoneyFromCents(cents int64) Money {
	return Money{cents: cents}
}

// ZeroMoney returns the zero amount.
func ZeroMoney() Money {
	return Money{}
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Sub returns the difference of two amounts.
func (m Money) Sub(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

// MulInt returns the amount multiplied by a whole factor, such as a line-item quantity.
func (m Money) MulInt(factor int) Money {
	return Money{cents: m.cents * int64(factor)}
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.cents < 0
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// IsEqual compares two amounts for equality.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String renders the amount as a decimal with two fraction digits, e.g. "10.50"
// or "-0.50". It implements fmt.Stringer.
func (m Money) String() string {
	cents := m.cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
