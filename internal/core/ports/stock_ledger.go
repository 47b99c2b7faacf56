package ports

import (
	"context"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
)

// StockLedger defines the stock movement contract backing shipment state
// changes. Implementations bound to a UnitOfWork apply movements inside the
// unit's transaction, so a state write and its stock side effects commit or
// roll back together.
//
// The method set matches services.StockLedger so a transaction-bound instance
// can be handed straight to the StockAdjuster domain service.
type StockLedger interface {
	// Restock returns units of a variant to on-hand stock at a location,
	// attributing the movement to the shipment that held them.
	Restock(ctx context.Context, stockLocationID, variantID, shipmentID kernel.UUID, quantity int) error

	// RestockBackordered returns units of a variant to the backorder pool
	// at a location.
	RestockBackordered(ctx context.Context, stockLocationID, variantID kernel.UUID, quantity int) error

	// Unstock removes units of a variant from stock at a location,
	// attributing the movement to the shipment consuming them.
	Unstock(ctx context.Context, stockLocationID, variantID, shipmentID kernel.UUID, quantity int) error
}
