package ports

import (
	"context"

	"github.com/jgayfer/solidus/internal/core/domain/model/shipment"
)

// ShipmentNotifier publishes shipment lifecycle events to interested parties
// after the owning transaction has committed. Delivery failures are logged by
// callers but never roll back the state change that triggered them.
type ShipmentNotifier interface {
	// OnShipped announces that the shipment has shipped, unless the
	// shipment's notification suppression flag is set.
	OnShipped(ctx context.Context, aggregate *shipment.Shipment) error
}
