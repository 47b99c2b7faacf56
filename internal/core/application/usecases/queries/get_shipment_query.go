// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/pkg/guard"
)

var ErrGetShipmentQueryIsNotConstructed = errors.New(
	"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
)

// GetShipmentQuery retrieves one shipment's read model by id, including the
// derived amounts and the selected shipping rate.
type GetShipmentQuery struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetShipmentQuery creates a query to retrieve a shipment by id.
func NewGetShipmentQuery(shipmentID kernel.UUID) (GetShipmentQuery, error) {
	query := GetShipmentQuery{guard: guard.NewConstructorGuard()}

	if err := shipmentID.Validate(); err != nil {
		return GetShipmentQuery{}, err
	}
	query.shipmentID = shipmentID

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetShipmentQueryIsNotConstructed if validation fails.
func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

// ShipmentID returns the identifier of the shipment to load.
func (q GetShipmentQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

// ShippingRateResponse represents one rate quote in the read model.
type ShippingRateResponse struct {
	ID         kernel.UUID
	MethodID   kernel.UUID
	MethodName string
	CostCents  int64
	Selected   bool
}

// GetShipmentQueryResponse represents a shipment in the read model. Amount
// fields are integer cents, derived at read time from the persisted cost and
// adjustments; nothing here is a cached column.
type GetShipmentQueryResponse struct {
	ID                  kernel.UUID
	Number              string
	OrderID             kernel.UUID
	State               string
	CostCents           int64
	TotalCents          int64
	TotalBeforeTaxCents int64
	TaxTotalCents       int64
	TrackingNumber      string
	ShippedAt           *time.Time
	Rates               []ShippingRateResponse
}
