package shipment

import (
	"math/rand/v2"
	"strings"
)

// numberLength is the count of digits in a shipment number, after the prefix.
const numberLength = 11

// NewNumber generates a human-readable shipment permalink of the form
// "H00123456789". Numbers are immutable once assigned; uniqueness is enforced
// by the persistence layer.
func NewNumber() string {
	var b strings.Builder
	b.Grow(numberLength + 1)
	b.WriteByte('H')
	for range numberLength {
		b.WriteByte(byte('0' + rand.IntN(10))) //nolint:gosec // permalink, not a secret
	}
	return b.String()
}
