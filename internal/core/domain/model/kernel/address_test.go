package kernel_test

import (
	"testing"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("should create valid address", func(t *testing.T) {
		addr, err := kernel.NewAddress("1 Main St", "Springfield", "62704", "US")

		require.NoError(t, err)
		require.NoError(t, addr.Validate())
		assert.Equal(t, "1 Main St", addr.Line1())
		assert.Equal(t, "Springfield", addr.City())
		assert.Equal(t, "62704", addr.PostalCode())
		assert.Equal(t, "US", addr.CountryCode())
	})

	t.Run("should fail with missing required fields", func(t *testing.T) {
		_, err := kernel.NewAddress("", "", "", "US")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "line1")
		assert.Contains(t, err.Error(), "city")
		assert.Contains(t, err.Error(), "postalCode")
	})

	t.Run("should fail with malformed country code", func(t *testing.T) {
		_, err := kernel.NewAddress("1 Main St", "Springfield", "62704", "USA")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "countryCode")
	})
}

func TestAddress_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var addr kernel.Address

		err := addr.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrAddressIsNotConstructed, err)
	})
}

func TestAddress_String(t *testing.T) {
	addr, _ := kernel.NewAddress("1 Main St", "Springfield", "62704", "US")

	assert.Equal(t, "1 Main St, Springfield 62704, US", addr.String())
}
