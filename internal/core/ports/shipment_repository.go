// Package ports defines the contracts between the fulfillment domain layer and
// infrastructure: persistence, stock ledgers, order facts, rate estimation and
// outbound notifications. These interfaces enable dependency inversion and
// testability.
package ports

import (
	"context"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
// Provides methods for storing, retrieving, and querying shipments with their
// complete state: inventory units, shipping rates, adjustments and the
// transition audit trail.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate to storage.
	// The shipment must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate, including
	// any state changes appended since it was loaded.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate by its unique identifier.
	// Returns an ObjectNotFoundError when no shipment with that id exists.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetAllUnshipped retrieves every shipment that has not reached the
	// shipped state. Used by out-of-band state reconciliation.
	GetAllUnshipped(ctx context.Context) ([]*shipment.Shipment, error)

	// Delete removes a shipment and its child records. Callers must check
	// EnsureDeletable on the aggregate first; shipped and canceled shipments
	// are never deleted.
	Delete(ctx context.Context, id kernel.UUID) error
}
