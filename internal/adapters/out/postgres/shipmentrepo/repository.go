package shipmentrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/core/domain/model/shipment"
	"github.com/jgayfer/solidus/internal/pkg/errs"
)

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shipment to the database.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing shipment to the database. Mutable child rows
// (units, rates, adjustments) are replaced wholesale so that rows removed from
// the aggregate, such as stale shipping rates, do not survive the write. State
// change audit records are append-only: existing rows are left untouched and
// only new ones are inserted.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	db := r.db.WithContext(ctx)
	result := db.Model(&ShipmentDTO{}).Where("id = ?", dto.ID).
		Omit(clause.Associations).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.replaceChildren(db, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// replaceChildren rewrites the mutable child rows of the shipment from the
// DTO. State change rows are never deleted; missing ones are inserted and
// already-persisted ones are skipped on conflict.
func (r *GormShipmentRepository) replaceChildren(db *gorm.DB, dto ShipmentDTO) error {
	if err := db.Delete(&InventoryUnitDTO{}, "shipment_id = ?", dto.ID).Error; err != nil {
		return err
	}
	if err := db.Delete(&ShippingRateDTO{}, "shipment_id = ?", dto.ID).Error; err != nil {
		return err
	}
	if err := db.Delete(&AdjustmentDTO{}, "shipment_id = ?", dto.ID).Error; err != nil {
		return err
	}

	if len(dto.InventoryUnits) > 0 {
		if err := db.Create(&dto.InventoryUnits).Error; err != nil {
			return err
		}
	}
	if len(dto.ShippingRates) > 0 {
		if err := db.Create(&dto.ShippingRates).Error; err != nil {
			return err
		}
	}
	if len(dto.StateChanges) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.StateChanges).Error; err != nil {
			return err
		}
	}
	if len(dto.Adjustments) > 0 {
		if err := db.Create(&dto.Adjustments).Error; err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves a shipment by ID.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	err := r.db.WithContext(ctx).
		Preload("InventoryUnits").
		Preload("ShippingRates").
		Preload("StateChanges").
		Preload("Adjustments").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllUnshipped retrieves all shipments that have not reached the shipped state.
func (r *GormShipmentRepository) GetAllUnshipped(ctx context.Context) ([]*shipment.Shipment, error) {
	var dtos []ShipmentDTO
	err := r.db.WithContext(ctx).
		Preload("InventoryUnits").
		Preload("ShippingRates").
		Preload("StateChanges").
		Preload("Adjustments").
		Find(&dtos, "state <> ?", int(shipment.Shipped)).Error
	if err != nil {
		return nil, err
	}

	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}

	return shipments, nil
}

// Delete removes a shipment and, via cascading foreign keys, its child rows.
func (r *GormShipmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ShipmentDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment", id.String())
	}

	return nil
}
