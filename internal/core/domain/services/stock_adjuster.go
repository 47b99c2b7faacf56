package services

import (
	"context"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/core/domain/model/shipment"
)

// StockLedger records stock level movements at a stock location. Implementations
// must apply every movement within the caller's transaction so a shipment state
// change and its stock side effects commit or roll back together.
type StockLedger interface {
	// Restock returns previously committed units of a variant to on-hand
	// stock, attributed to the shipment that held them.
	Restock(ctx context.Context, stockLocationID, variantID, shipmentID kernel.UUID, quantity int) error

	// RestockBackordered returns units of a variant to the backorder pool
	// without touching on-hand stock.
	RestockBackordered(ctx context.Context, stockLocationID, variantID kernel.UUID, quantity int) error

	// Unstock removes units of a variant from stock, committing them to the
	// given shipment.
	Unstock(ctx context.Context, stockLocationID, variantID, shipmentID kernel.UUID, quantity int) error
}

// StockAdjuster is a domain service that translates a shipment manifest into
// stock ledger movements.
//
// Key responsibilities:
//   - Returning stock when a shipment is canceled
//   - Committing stock when a shipment is finalized, resumed, or shipped late
//   - Preserving the on-hand versus backordered split on restock
//
// Business rules:
//   - Restock splits by unit state: on-hand units return to on-hand stock,
//     backordered units return to the backorder pool
//   - Unstock removes the full manifest quantity regardless of unit state
//   - Shipments without a stock location carry no stock and are skipped
type StockAdjuster struct{}

// NewStockAdjuster creates a new StockAdjuster instance.
func NewStockAdjuster() StockAdjuster {
	return StockAdjuster{}
}

// Restock returns the manifest's units to the given stock location, as done
// when a shipment is canceled. On-hand and shipped units return to on-hand
// stock; backordered units return to the backorder pool. Movements carry the
// shipment id so the audit trail can answer which shipment returned the
// stock. A nil stock location means the shipment never held stock and nothing
// is recorded.
func (a StockAdjuster) Restock(
	ctx context.Context,
	ledger StockLedger,
	shipmentID kernel.UUID,
	stockLocationID *kernel.UUID,
	manifest []shipment.ManifestItem,
) error {
	if stockLocationID == nil {
		return nil
	}

	for _, item := range manifest {
		onHand := item.QuantityIn(shipment.UnitOnHand) + item.QuantityIn(shipment.UnitShipped)
		if onHand > 0 {
			if err := ledger.Restock(ctx, *stockLocationID, item.VariantID(), shipmentID, onHand); err != nil {
				return err
			}
		}

		backordered := item.QuantityIn(shipment.UnitBackordered)
		if backordered > 0 {
			if err := ledger.RestockBackordered(ctx, *stockLocationID, item.VariantID(), backordered); err != nil {
				return err
			}
		}
	}
	return nil
}

// Unstock commits the manifest's full quantities out of the given stock
// location, as done on finalize, on resume after a cancel, and before a late
// ship of a canceled shipment. Movements carry the shipment id that consumed
// the stock. A nil stock location is a no-op.
func (a StockAdjuster) Unstock(
	ctx context.Context,
	ledger StockLedger,
	shipmentID kernel.UUID,
	stockLocationID *kernel.UUID,
	manifest []shipment.ManifestItem,
) error {
	if stockLocationID == nil {
		return nil
	}

	for _, item := range manifest {
		if item.Quantity() == 0 {
			continue
		}
		if err := ledger.Unstock(ctx, *stockLocationID, item.VariantID(), shipmentID, item.Quantity()); err != nil {
			return err
		}
	}
	return nil
}
