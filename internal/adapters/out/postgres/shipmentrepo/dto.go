// Package shipmentrepo provides data transfer objects and mapping functions for shipment persistence.
// This package implements the repository pattern for the shipment domain aggregate, handling
// the conversion between domain entities and database representations.
package shipmentrepo

import (
	"time"

	"github.com/google/uuid"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/core/domain/model/shipment"
)

// ShipmentDTO represents the database structure for persisting shipment aggregates.
// Maps shipment domain entities to relational database tables with proper foreign key relationships.
type ShipmentDTO struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Number             string             `gorm:"type:varchar(255);not null;uniqueIndex"`
	OrderID            uuid.UUID          `gorm:"type:uuid;not null;index"`
	StockLocationID    *uuid.UUID         `gorm:"type:uuid;index"`
	State              int                `gorm:"type:int;not null"`
	CostCents          int64              `gorm:"type:bigint;not null"`
	ShippedAt          *time.Time         `gorm:"type:timestamptz"`
	TrackingNumber     string             `gorm:"type:varchar(255)"`
	IncludedTaxCents   int64              `gorm:"type:bigint;not null"`
	AdditionalTaxCents int64              `gorm:"type:bigint;not null"`
	InventoryUnits     []InventoryUnitDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
	ShippingRates      []ShippingRateDTO  `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
	StateChanges       []StateChangeDTO   `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
	Adjustments        []AdjustmentDTO    `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for shipment entities.
// Overrides GORM's default naming convention to use "shipments" instead of "shipment_dtos".
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// InventoryUnitDTO represents the database structure for persisting inventory unit entities.
// Links to shipment via foreign key and carries the originating line item inline.
type InventoryUnitDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID     uuid.UUID `gorm:"type:uuid;not null;index"`
	VariantID      uuid.UUID `gorm:"type:uuid;not null;index"`
	LineItemID     uuid.UUID `gorm:"type:uuid;not null;index"`
	UnitPriceCents int64     `gorm:"type:bigint;not null"`
	Quantity       int       `gorm:"type:int;not null"`
	State          int       `gorm:"type:int;not null"`
	Pending        bool      `gorm:"type:boolean;not null"`
}

// TableName specifies the database table name for inventory unit entities.
func (InventoryUnitDTO) TableName() string {
	return "inventory_units"
}

// ShippingRateDTO represents the database structure for persisting shipping rate quotes.
type ShippingRateDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	MethodID   uuid.UUID `gorm:"type:uuid;not null"`
	MethodName string    `gorm:"type:varchar(255);not null"`
	CostCents  int64     `gorm:"type:bigint;not null"`
	Selected   bool      `gorm:"type:boolean;not null"`
}

// TableName specifies the database table name for shipping rate entities.
func (ShippingRateDTO) TableName() string {
	return "shipping_rates"
}

// StateChangeDTO represents the database structure for the shipment audit trail.
// Rows are append-only; they are never updated after creation.
type StateChangeDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	FromState  int       `gorm:"type:int;not null"`
	ToState    int       `gorm:"type:int;not null"`
	OccurredAt time.Time `gorm:"type:timestamptz;not null"`
}

// TableName specifies the database table name for state change entities.
func (StateChangeDTO) TableName() string {
	return "shipment_state_changes"
}

// AdjustmentDTO represents the database structure for persisting shipment adjustments.
type AdjustmentDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Label       string    `gorm:"type:varchar(255);not null"`
	AmountCents int64     `gorm:"type:bigint;not null"`
	Tax         bool      `gorm:"type:boolean;not null"`
	Eligible    bool      `gorm:"type:boolean;not null"`
}

// TableName specifies the database table name for adjustment entities.
func (AdjustmentDTO) TableName() string {
	return "shipment_adjustments"
}

// fromDomain converts a shipment domain aggregate to its database representation.
// Maps all aggregate entities including units, rates, audit records and adjustments.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	shipmentID := aggregate.ID().Bytes()

	var stockLocationID *uuid.UUID
	if aggregate.StockLocationID() != nil {
		raw := aggregate.StockLocationID().Bytes()
		stockLocationID = &raw
	}

	units := make([]InventoryUnitDTO, 0, len(aggregate.InventoryUnits()))
	for _, unit := range aggregate.InventoryUnits() {
		units = append(units, InventoryUnitDTO{
			ID:             unit.ID().Bytes(),
			ShipmentID:     shipmentID,
			VariantID:      unit.VariantID().Bytes(),
			LineItemID:     unit.LineItem().ID().Bytes(),
			UnitPriceCents: unit.LineItem().UnitPrice().Cents(),
			Quantity:       unit.LineItem().Quantity(),
			State:          int(unit.State()),
			Pending:        unit.Pending(),
		})
	}

	rates := make([]ShippingRateDTO, 0, len(aggregate.Rates()))
	for _, rate := range aggregate.Rates() {
		rates = append(rates, ShippingRateDTO{
			ID:         rate.ID().Bytes(),
			ShipmentID: shipmentID,
			MethodID:   rate.MethodID().Bytes(),
			MethodName: rate.MethodName(),
			CostCents:  rate.Cost().Cents(),
			Selected:   rate.Selected(),
		})
	}

	stateChanges := make([]StateChangeDTO, 0, len(aggregate.StateChanges()))
	for _, change := range aggregate.StateChanges() {
		stateChanges = append(stateChanges, StateChangeDTO{
			ID:         change.ID().Bytes(),
			ShipmentID: shipmentID,
			FromState:  int(change.From()),
			ToState:    int(change.To()),
			OccurredAt: change.OccurredAt(),
		})
	}

	adjustments := make([]AdjustmentDTO, 0, len(aggregate.Adjustments()))
	for _, adjustment := range aggregate.Adjustments() {
		adjustments = append(adjustments, AdjustmentDTO{
			ID:          adjustment.ID().Bytes(),
			ShipmentID:  shipmentID,
			Label:       adjustment.Label(),
			AmountCents: adjustment.Amount().Cents(),
			Tax:         adjustment.IsTax(),
			Eligible:    adjustment.Eligible(),
		})
	}

	return ShipmentDTO{
		ID:                 shipmentID,
		Number:             aggregate.Number(),
		OrderID:            aggregate.OrderID().Bytes(),
		StockLocationID:    stockLocationID,
		State:              int(aggregate.State()),
		CostCents:          aggregate.Cost().Cents(),
		ShippedAt:          aggregate.ShippedAt(),
		TrackingNumber:     aggregate.TrackingNumber(),
		IncludedTaxCents:   aggregate.IncludedTaxTotal().Cents(),
		AdditionalTaxCents: aggregate.AdditionalTaxTotal().Cents(),
		InventoryUnits:     units,
		ShippingRates:      rates,
		StateChanges:       stateChanges,
		Adjustments:        adjustments,
	}
}

// toDomain converts a database DTO to a shipment domain aggregate.
// Reconstructs the complete aggregate including all child entities using RestoreShipment.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var stockLocationID *kernel.UUID
	if dto.StockLocationID != nil {
		locID, locErr := kernel.UUIDFromBytes((*dto.StockLocationID)[:])
		if locErr != nil {
			return nil, locErr
		}
		stockLocationID = &locID
	}

	units := make([]*shipment.InventoryUnit, 0, len(dto.InventoryUnits))
	for _, unitDto := range dto.InventoryUnits {
		unit, unitErr := unitToDomain(unitDto)
		if unitErr != nil {
			return nil, unitErr
		}
		units = append(units, unit)
	}

	rates := make([]*shipment.ShippingRate, 0, len(dto.ShippingRates))
	for _, rateDto := range dto.ShippingRates {
		rate, rateErr := rateToDomain(rateDto)
		if rateErr != nil {
			return nil, rateErr
		}
		rates = append(rates, rate)
	}

	stateChanges := make([]shipment.StateChange, 0, len(dto.StateChanges))
	for _, changeDto := range dto.StateChanges {
		change, changeErr := stateChangeToDomain(changeDto)
		if changeErr != nil {
			return nil, changeErr
		}
		stateChanges = append(stateChanges, change)
	}

	adjustments := make([]shipment.Adjustment, 0, len(dto.Adjustments))
	for _, adjustmentDto := range dto.Adjustments {
		adjustment, adjustmentErr := adjustmentToDomain(adjustmentDto)
		if adjustmentErr != nil {
			return nil, adjustmentErr
		}
		adjustments = append(adjustments, adjustment)
	}

	return shipment.RestoreShipment(
		id, orderID, stockLocationID,
		dto.Number,
		shipment.State(dto.State),
		kernel.NewMoneyFromCents(dto.CostCents),
		dto.ShippedAt,
		dto.TrackingNumber,
		kernel.NewMoneyFromCents(dto.IncludedTaxCents),
		kernel.NewMoneyFromCents(dto.AdditionalTaxCents),
		units, rates, stateChanges, adjustments,
	)
}

// unitToDomain converts an inventory unit DTO to its domain entity.
func unitToDomain(dto InventoryUnitDTO) (*shipment.InventoryUnit, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	variantID, err := kernel.UUIDFromBytes(dto.VariantID[:])
	if err != nil {
		return nil, err
	}

	lineItemID, err := kernel.UUIDFromBytes(dto.LineItemID[:])
	if err != nil {
		return nil, err
	}

	lineItem, err := shipment.NewLineItem(lineItemID, kernel.NewMoneyFromCents(dto.UnitPriceCents), dto.Quantity)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreInventoryUnit(id, variantID, lineItem, shipment.UnitState(dto.State), dto.Pending)
}

// rateToDomain converts a shipping rate DTO to its domain entity.
func rateToDomain(dto ShippingRateDTO) (*shipment.ShippingRate, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	methodID, err := kernel.UUIDFromBytes(dto.MethodID[:])
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShippingRate(
		id, methodID, dto.MethodName, kernel.NewMoneyFromCents(dto.CostCents), dto.Selected)
}

// stateChangeToDomain converts a state change DTO to its domain value.
func stateChangeToDomain(dto StateChangeDTO) (shipment.StateChange, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return shipment.StateChange{}, err
	}

	return shipment.RestoreStateChange(
		id, shipment.State(dto.FromState), shipment.State(dto.ToState), dto.OccurredAt), nil
}

// adjustmentToDomain converts an adjustment DTO to its domain value.
func adjustmentToDomain(dto AdjustmentDTO) (shipment.Adjustment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return shipment.Adjustment{}, err
	}

	return shipment.NewAdjustment(
		id, dto.Label, kernel.NewMoneyFromCents(dto.AmountCents), dto.Tax, dto.Eligible)
}
