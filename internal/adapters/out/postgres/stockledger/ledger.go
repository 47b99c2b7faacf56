// Package stockledger persists stock levels and movements for stock
// locations. Each mutation upserts the per-location, per-variant stock item
// row and appends an immutable movement record tying the change to its
// originating shipment operation.
package stockledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
)

// Movement actions recorded in the audit trail.
const (
	actionRestock            = "restock"
	actionRestockBackordered = "restock_backordered"
	actionUnstock            = "unstock"
)

// StockItemDTO represents the database structure for per-location stock levels.
// One row exists per stock location and variant pair.
type StockItemDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	StockLocationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_items_location_variant"`
	VariantID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_items_location_variant"`
	OnHand          int       `gorm:"type:int;not null"`
	Backordered     int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for stock item entities.
func (StockItemDTO) TableName() string {
	return "stock_items"
}

// StockMovementDTO represents the append-only audit record of one stock
// change. Restock and unstock rows carry the shipment the movement is
// attributed to; backorder-pool returns carry none.
type StockMovementDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	StockLocationID uuid.UUID  `gorm:"type:uuid;not null;index"`
	VariantID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	ShipmentID      *uuid.UUID `gorm:"type:uuid;index"`
	Action          string     `gorm:"type:varchar(32);not null"`
	Quantity        int        `gorm:"type:int;not null"`
	OccurredAt      time.Time  `gorm:"type:timestamptz;not null"`
}

// TableName specifies the database table name for stock movement entities.
func (StockMovementDTO) TableName() string {
	return "stock_movements"
}

// GormStockLedger implements StockLedger using GORM. Instances are bound to a
// database handle; inside a unit of work that handle is the transaction, so
// movements commit or roll back with the shipment write they accompany.
type GormStockLedger struct {
	db *gorm.DB
}

// NewGormStockLedger creates a new GORM stock ledger.
func NewGormStockLedger(db *gorm.DB) *GormStockLedger {
	return &GormStockLedger{db: db}
}

// Restock returns units of a variant to on-hand stock at a location,
// attributed to the shipment that held them.
func (l *GormStockLedger) Restock(
	ctx context.Context, stockLocationID, variantID, shipmentID kernel.UUID, quantity int,
) error {
	id := shipmentID.Bytes()
	return l.apply(ctx, stockLocationID, variantID, &id, actionRestock, quantity, quantity, 0)
}

// RestockBackordered returns units of a variant to the backorder pool at a location.
func (l *GormStockLedger) RestockBackordered(
	ctx context.Context, stockLocationID, variantID kernel.UUID, quantity int,
) error {
	return l.apply(ctx, stockLocationID, variantID, nil, actionRestockBackordered, quantity, 0, quantity)
}

// Unstock removes units of a variant from stock at a location, attributed to
// the shipment consuming them. Levels may go negative; fulfillment is the
// system of record for what actually left the building, not a gatekeeper on it.
func (l *GormStockLedger) Unstock(
	ctx context.Context, stockLocationID, variantID, shipmentID kernel.UUID, quantity int,
) error {
	id := shipmentID.Bytes()
	return l.apply(ctx, stockLocationID, variantID, &id, actionUnstock, quantity, -quantity, 0)
}

// apply upserts the stock item row and appends the movement record.
func (l *GormStockLedger) apply(
	ctx context.Context,
	stockLocationID, variantID kernel.UUID,
	shipmentID *uuid.UUID,
	action string,
	quantity, onHandDelta, backorderedDelta int,
) error {
	if quantity <= 0 {
		return nil
	}

	db := l.db.WithContext(ctx)

	item := StockItemDTO{
		ID:              uuid.New(),
		StockLocationID: stockLocationID.Bytes(),
		VariantID:       variantID.Bytes(),
		OnHand:          onHandDelta,
		Backordered:     backorderedDelta,
	}
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "stock_location_id"}, {Name: "variant_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"on_hand":     gorm.Expr("stock_items.on_hand + ?", onHandDelta),
			"backordered": gorm.Expr("stock_items.backordered + ?", backorderedDelta),
		}),
	}).Create(&item).Error
	if err != nil {
		return err
	}

	movement := StockMovementDTO{
		ID:              uuid.New(),
		StockLocationID: stockLocationID.Bytes(),
		VariantID:       variantID.Bytes(),
		ShipmentID:      shipmentID,
		Action:          action,
		Quantity:        quantity,
		OccurredAt:      time.Now().UTC(),
	}
	return db.Create(&movement).Error
}
