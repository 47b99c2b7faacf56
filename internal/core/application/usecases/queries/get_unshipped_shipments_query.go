package queries

import (
	"errors"

	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/pkg/guard"
)

var ErrGetUnshippedShipmentsQueryIsNotConstructed = errors.New(
	"GetUnshippedShipmentsQuery must be created via NewGetUnshippedShipmentsQuery constructor",
)

// GetUnshippedShipmentsQuery retrieves every shipment still on the warehouse
// floor: pending, ready and canceled ones. Used by fulfillment dashboards.
//
// Example:
//
//	query := NewGetUnshippedShipmentsQuery()
//	handler := NewGetUnshippedShipmentsQueryHandler(db)
//
//	shipments, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve shipments: %w", err)
//	}
//
//	for _, s := range shipments {
//	    fmt.Printf("%s [%s] order %s\n", s.Number, s.State, s.OrderID)
//	}
type GetUnshippedShipmentsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUnshippedShipmentsQuery creates a query to retrieve unshipped shipments.
// This is a parameterless query that fetches the complete unshipped list.
func NewGetUnshippedShipmentsQuery() GetUnshippedShipmentsQuery {
	return GetUnshippedShipmentsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetUnshippedShipmentsQueryIsNotConstructed if validation fails.
func (q GetUnshippedShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetUnshippedShipmentsQueryIsNotConstructed)
}

// GetUnshippedShipmentsQueryResponse represents one unshipped shipment row.
type GetUnshippedShipmentsQueryResponse struct {
	ID        kernel.UUID
	Number    string
	OrderID   kernel.UUID
	State     string
	CostCents int64
	UnitCount int
}
