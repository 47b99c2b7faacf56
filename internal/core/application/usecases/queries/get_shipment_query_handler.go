package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/core/domain/model/shipment"
	"github.com/jgayfer/solidus/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetShipmentQueryHandler retrieves a single shipment read model.
// Uses direct SQL for optimal read performance in the CQRS pattern; the amount
// fields are derived in the query so a stale cached total can never be served.
type GetShipmentQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentQueryHandler creates a handler for shipment retrieval queries.
// Requires a GORM database connection for query execution.
func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

// Handle executes the query. Returns an ObjectNotFoundError when no shipment
// with the requested id exists.
func (h GetShipmentQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentQuery,
) (GetShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	var (
		response           GetShipmentQueryResponse
		id                 uuid.UUID
		orderID            uuid.UUID
		state              int
		includedTaxCents   int64
		additionalTaxCents int64
		shippedAt          sql.NullTime
		adjustmentCents    int64
		preTaxAdjustCents  int64
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.number,
			s.order_id,
			s.state,
			s.cost_cents,
			s.included_tax_cents,
			s.additional_tax_cents,
			s.tracking_number,
			s.shipped_at,
			COALESCE(SUM(a.amount_cents), 0),
			COALESCE(SUM(a.amount_cents) FILTER (WHERE NOT a.tax AND a.eligible), 0)
		FROM shipments s
		LEFT JOIN shipment_adjustments a ON a.shipment_id = s.id
		WHERE s.id = ?
		GROUP BY s.id
	`, query.ShipmentID().Bytes()).Row()

	err := row.Scan(
		&id,
		&response.Number,
		&orderID,
		&state,
		&response.CostCents,
		&includedTaxCents,
		&additionalTaxCents,
		&response.TrackingNumber,
		&shippedAt,
		&adjustmentCents,
		&preTaxAdjustCents,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetShipmentQueryResponse{}, errs.NewObjectNotFoundError(
			"shipment", query.ShipmentID().String())
	}
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetShipmentQueryResponse{}, err
	}
	if response.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	response.State = shipment.State(state).String()
	response.TotalCents = response.CostCents + adjustmentCents
	response.TotalBeforeTaxCents = response.CostCents + preTaxAdjustCents
	response.TaxTotalCents = includedTaxCents + additionalTaxCents
	if shippedAt.Valid {
		t := shippedAt.Time
		response.ShippedAt = &t
	}

	rates, err := h.loadRates(ctx, query.ShipmentID())
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}
	response.Rates = rates

	return response, nil
}

func (h GetShipmentQueryHandler) loadRates(
	ctx context.Context, shipmentID kernel.UUID,
) ([]ShippingRateResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			method_id,
			method_name,
			cost_cents,
			selected
		FROM shipping_rates
		WHERE shipment_id = ?
		ORDER BY cost_cents
	`, shipmentID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rates := make([]ShippingRateResponse, 0)
	for rows.Next() {
		var (
			rate     ShippingRateResponse
			id       uuid.UUID
			methodID uuid.UUID
		)

		if err = rows.Scan(&id, &methodID, &rate.MethodName, &rate.CostCents, &rate.Selected); err != nil {
			return nil, err
		}

		if rate.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if rate.MethodID, err = kernel.UUIDFromBytes(methodID[:]); err != nil {
			return nil, err
		}

		rates = append(rates, rate)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return rates, nil
}
