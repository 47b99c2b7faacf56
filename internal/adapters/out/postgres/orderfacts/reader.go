// Package orderfacts reads the order facts consulted by shipment transition
// guards. Orders are owned by another system; this package queries a local
// read model kept current by that system and maps rows onto the narrow fact
// interface the domain evaluates. Facts are fetched fresh on every call.
package orderfacts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/core/domain/model/shipment"
	"github.com/jgayfer/solidus/internal/pkg/errs"
)

// Order states that permit shipping.
var shippableStates = map[string]struct{}{
	"complete":        {},
	"resumed":         {},
	"awaiting_return": {},
	"returned":        {},
}

// Payment states considered settled.
var paidStates = map[string]struct{}{
	"paid":        {},
	"credit_owed": {},
}

// OrderDTO represents a row of the order read model.
type OrderDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	State              string    `gorm:"type:varchar(32);not null"`
	PaymentState       string    `gorm:"type:varchar(32);not null"`
	ShipAddressLine1   *string   `gorm:"type:varchar(255)"`
	ShipAddressCity    *string   `gorm:"type:varchar(255)"`
	ShipAddressZip     *string   `gorm:"type:varchar(32)"`
	ShipAddressCountry *string   `gorm:"type:varchar(2)"`
}

// TableName specifies the database table name for the order read model.
func (OrderDTO) TableName() string {
	return "orders"
}

// GormOrderReader implements OrderReader against the order read model.
type GormOrderReader struct {
	db *gorm.DB
}

// NewGormOrderReader creates a new GORM order reader.
func NewGormOrderReader(db *gorm.DB) *GormOrderReader {
	return &GormOrderReader{db: db}
}

// Get returns the current facts for the given order.
func (r *GormOrderReader) Get(ctx context.Context, orderID kernel.UUID) (shipment.OrderFacts, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", orderID.String())
		}
		return nil, err
	}

	return toFacts(dto)
}

// toFacts maps a read model row onto the domain fact interface.
func toFacts(dto OrderDTO) (shipment.OrderFacts, error) {
	facts := orderFacts{
		state:        dto.State,
		paymentState: dto.PaymentState,
	}

	if dto.ShipAddressLine1 != nil && dto.ShipAddressCity != nil &&
		dto.ShipAddressZip != nil && dto.ShipAddressCountry != nil {
		addr, err := kernel.NewAddress(
			*dto.ShipAddressLine1, *dto.ShipAddressCity, *dto.ShipAddressZip, *dto.ShipAddressCountry)
		if err != nil {
			return nil, err
		}
		facts.shipAddress = &addr
	}

	return facts, nil
}

// orderFacts is the concrete OrderFacts implementation backed by one read
// model row. It is a snapshot; callers re-read rather than hold onto it.
type orderFacts struct {
	state        string
	paymentState string
	shipAddress  *kernel.Address
}

// CanShip reports whether the order as a whole may ship.
func (f orderFacts) CanShip() bool {
	_, ok := shippableStates[f.state]
	return ok
}

// IsPaid reports whether the order's balance is settled.
func (f orderFacts) IsPaid() bool {
	_, ok := paidStates[f.paymentState]
	return ok
}

// IsCanceled reports whether the order was canceled.
func (f orderFacts) IsCanceled() bool {
	return f.state == "canceled"
}

// ShipAddress returns the order's ship-to address, or nil when none is on file.
func (f orderFacts) ShipAddress() *kernel.Address {
	return f.shipAddress
}
