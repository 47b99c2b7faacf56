package queries

import (
	"context"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUnshippedShipmentsQueryHandler retrieves all unshipped shipment rows.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetUnshippedShipmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetUnshippedShipmentsQueryHandler creates a handler for unshipped shipment queries.
// Requires a GORM database connection for query execution.
func NewGetUnshippedShipmentsQueryHandler(db *gorm.DB) GetUnshippedShipmentsQueryHandler {
	return GetUnshippedShipmentsQueryHandler{db: db}
}

// Handle executes the query. Returns shipment rows sorted by number with a
// per-shipment inventory unit count.
func (h GetUnshippedShipmentsQueryHandler) Handle(
	ctx context.Context,
	query GetUnshippedShipmentsQuery,
) ([]GetUnshippedShipmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.number,
			s.order_id,
			s.state,
			s.cost_cents,
			COUNT(u.id)
		FROM shipments s
		LEFT JOIN inventory_units u ON u.shipment_id = s.id
		WHERE s.state <> ?
		GROUP BY s.id
		ORDER BY s.number
	`, int(shipment.Shipped)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shipments := make([]GetUnshippedShipmentsQueryResponse, 0)
	for rows.Next() {
		var (
			response GetUnshippedShipmentsQueryResponse
			id       uuid.UUID
			orderID  uuid.UUID
			state    int
		)

		err = rows.Scan(
			&id,
			&response.Number,
			&orderID,
			&state,
			&response.CostCents,
			&response.UnitCount,
		)
		if err != nil {
			return nil, err
		}

		if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if response.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		response.State = shipment.State(state).String()

		shipments = append(shipments, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shipments, nil
}
