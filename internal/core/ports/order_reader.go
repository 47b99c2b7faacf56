package ports

import (
	"context"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/core/domain/model/shipment"
)

// OrderReader supplies the order facts shipment transitions are evaluated
// against. Facts are read live on every call and never cached: a transition's
// eligibility must reflect the order as it is at the moment of the attempt.
type OrderReader interface {
	// Get returns the current facts for the given order, or an
	// ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, orderID kernel.UUID) (shipment.OrderFacts, error)
}
