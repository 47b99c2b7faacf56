package ports

import (
	"context"

	"github.com/jgayfer/solidus/internal/core/domain/model/shipment"
)

// RateEstimator quotes shipping rates for a package. Estimation happens
// outside the persistence transaction; the returned rates replace the
// shipment's current set wholesale.
type RateEstimator interface {
	// Quote returns the available shipping rates for the package, in the
	// carrier's preferred order. An empty slice means no method can serve
	// the destination.
	Quote(ctx context.Context, pkg shipment.Package) ([]*shipment.ShippingRate, error)
}
