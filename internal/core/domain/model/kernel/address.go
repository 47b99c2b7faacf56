package kernel

import (
	"errors"
	"fmt"

	"github.com/jgayfer/solidus/internal/pkg/errs"
	"github.com/jgayfer/solidus/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when attempting to use an improperly
// initialized Address. Addresses must be created via NewAddress.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address represents a postal ship-to address. It is an immutable value object;
// the zero value is invalid and fails validation.
//
// The rate estimator refuses to quote a shipment whose order has no valid ship
// address, so Address validity gates rate refreshes.
//
// Example:
//
//	addr, err := kernel.NewAddress("1 Main St", "Springfield", "62704", "US")
//	if err != nil {
//	    // Handle validation error
//	}
type Address struct { //nolint:recvcheck //using for validation
	line1       string
	city        string
	postalCode  string
	countryCode string

	guard guard.ConstructorGuard
}

// NewAddress creates a validated Address. All four fields are required;
// countryCode must be a two-letter code.
func NewAddress(line1, city, postalCode, countryCode string) (Address, error) {
	addr := Address{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		addr.setLine1(line1),
		addr.setCity(city),
		addr.setPostalCode(postalCode),
		addr.setCountryCode(countryCode),
	); err != nil {
		return Address{}, err
	}

	return addr, nil
}

// Validate checks that the Address was properly constructed.
// Returns ErrAddressIsNotConstructed for zero-value instances.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Line1 returns the street line of the address.
func (a Address) Line1() string {
	return a.line1
}

// City returns the city of the address.
func (a Address) City() string {
	return a.city
}

// PostalCode returns the postal code of the address.
func (a Address) PostalCode() string {
	return a.postalCode
}

// CountryCode returns the two-letter country code of the address.
func (a Address) CountryCode() string {
	return a.countryCode
}

// String renders the address on one line.
func (a Address) String() string {
	return fmt.Sprintf("%s, %s %s, %s", a.line1, a.city, a.postalCode, a.countryCode)
}

func (a *Address) setLine1(line1 string) error {
	if line1 == "" {
		return errs.NewValueIsRequiredError("line1")
	}
	a.line1 = line1
	return nil
}

func (a *Address) setCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	a.city = city
	return nil
}

func (a *Address) setPostalCode(postalCode string) error {
	if postalCode == "" {
		return errs.NewValueIsRequiredError("postalCode")
	}
	a.postalCode = postalCode
	return nil
}

func (a *Address) setCountryCode(countryCode string) error {
	if len(countryCode) != 2 {
		return errs.NewValueIsInvalidErrorWithCause("countryCode",
			fmt.Errorf("%q is not a two-letter country code", countryCode))
	}
	a.countryCode = countryCode
	return nil
}
