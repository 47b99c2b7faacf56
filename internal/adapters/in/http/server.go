// Package http exposes the fulfillment API over REST. It coordinates between
// HTTP handlers and application use cases, translating domain errors onto
// status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jgayfer/solidus/internal/core/application/usecases/commands"
	"github.com/jgayfer/solidus/internal/core/application/usecases/queries"
	"github.com/jgayfer/solidus/internal/core/domain/model/kernel"
	"github.com/jgayfer/solidus/internal/pkg/errs"
)

// Server implements the fulfillment REST API.
type Server struct {
	// Command handlers
	createShipmentHandler       commands.CreateShipmentCommandHandler
	readyShipmentHandler        commands.ReadyShipmentCommandHandler
	shipShipmentHandler         commands.ShipShipmentCommandHandler
	cancelShipmentHandler       commands.CancelShipmentCommandHandler
	resumeShipmentHandler       commands.ResumeShipmentCommandHandler
	pendShipmentHandler         commands.PendShipmentCommandHandler
	finalizeShipmentHandler     commands.FinalizeShipmentCommandHandler
	deleteShipmentHandler       commands.DeleteShipmentCommandHandler
	refreshRatesHandler         commands.RefreshShippingRatesCommandHandler
	selectShippingRateHandler   commands.SelectShippingRateCommandHandler
	selectShippingMethodHandler commands.SelectShippingMethodCommandHandler

	// Query handlers
	getShipmentHandler           queries.GetShipmentQueryHandler
	getUnshippedShipmentsHandler queries.GetUnshippedShipmentsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createShipmentHandler commands.CreateShipmentCommandHandler,
	readyShipmentHandler commands.ReadyShipmentCommandHandler,
	shipShipmentHandler commands.ShipShipmentCommandHandler,
	cancelShipmentHandler commands.CancelShipmentCommandHandler,
	resumeShipmentHandler commands.ResumeShipmentCommandHandler,
	pendShipmentHandler commands.PendShipmentCommandHandler,
	finalizeShipmentHandler commands.FinalizeShipmentCommandHandler,
	deleteShipmentHandler commands.DeleteShipmentCommandHandler,
	refreshRatesHandler commands.RefreshShippingRatesCommandHandler,
	selectShippingRateHandler commands.SelectShippingRateCommandHandler,
	selectShippingMethodHandler commands.SelectShippingMethodCommandHandler,
	getShipmentHandler queries.GetShipmentQueryHandler,
	getUnshippedShipmentsHandler queries.GetUnshippedShipmentsQueryHandler,
) *Server {
	return &Server{
		createShipmentHandler:        createShipmentHandler,
		readyShipmentHandler:         readyShipmentHandler,
		shipShipmentHandler:          shipShipmentHandler,
		cancelShipmentHandler:        cancelShipmentHandler,
		resumeShipmentHandler:        resumeShipmentHandler,
		pendShipmentHandler:          pendShipmentHandler,
		finalizeShipmentHandler:      finalizeShipmentHandler,
		deleteShipmentHandler:        deleteShipmentHandler,
		refreshRatesHandler:          refreshRatesHandler,
		selectShippingRateHandler:    selectShippingRateHandler,
		selectShippingMethodHandler:  selectShippingMethodHandler,
		getShipmentHandler:           getShipmentHandler,
		getUnshippedShipmentsHandler: getUnshippedShipmentsHandler,
	}
}

// RegisterRoutes wires the API routes onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/shipments", s.CreateShipment)
	api.GET("/shipments", s.GetUnshippedShipments)
	api.GET("/shipments/:id", s.GetShipment)
	api.DELETE("/shipments/:id", s.DeleteShipment)

	api.POST("/shipments/:id/ready", s.ReadyShipment)
	api.POST("/shipments/:id/ship", s.ShipShipment)
	api.POST("/shipments/:id/cancel", s.CancelShipment)
	api.POST("/shipments/:id/resume", s.ResumeShipment)
	api.POST("/shipments/:id/pend", s.PendShipment)
	api.POST("/shipments/:id/finalize", s.FinalizeShipment)

	api.POST("/shipments/:id/rates/refresh", s.RefreshShippingRates)
	api.PUT("/shipments/:id/rates/selected", s.SelectShippingRate)
	api.PUT("/shipments/:id/shipping-method", s.SelectShippingMethod)
}

// Error is the API error body.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewShipmentUnit is one inventory unit line in a shipment creation request.
type NewShipmentUnit struct {
	VariantID      string `json:"variant_id"`
	LineItemID     string `json:"line_item_id"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
	Backordered    bool   `json:"backordered"`
}

// NewShipment is the shipment creation request body.
type NewShipment struct {
	OrderID         string            `json:"order_id"`
	StockLocationID *string           `json:"stock_location_id,omitempty"`
	Units           []NewShipmentUnit `json:"units"`
}

// ShipRequest is the ship request body.
type ShipRequest struct {
	TrackingNumber       string `json:"tracking_number,omitempty"`
	SuppressNotification bool   `json:"suppress_notification,omitempty"`
}

// SelectRateRequest is the rate selection request body.
type SelectRateRequest struct {
	RateID string `json:"rate_id"`
}

// SelectMethodRequest is the shipping method selection request body.
type SelectMethodRequest struct {
	MethodID string `json:"method_id"`
}

// ShippingRate is one quote in a shipment response.
type ShippingRate struct {
	ID         string `json:"id"`
	MethodID   string `json:"method_id"`
	MethodName string `json:"method_name"`
	CostCents  int64  `json:"cost_cents"`
	Selected   bool   `json:"selected"`
}

// Shipment is the detailed shipment response body.
type Shipment struct {
	ID                  string         `json:"id"`
	Number              string         `json:"number"`
	OrderID             string         `json:"order_id"`
	State               string         `json:"state"`
	CostCents           int64          `json:"cost_cents"`
	TotalCents          int64          `json:"total_cents"`
	TotalBeforeTaxCents int64          `json:"total_before_tax_cents"`
	TaxTotalCents       int64          `json:"tax_total_cents"`
	TrackingNumber      string         `json:"tracking_number,omitempty"`
	ShippedAt           *time.Time     `json:"shipped_at,omitempty"`
	Rates               []ShippingRate `json:"rates"`
}

// ShipmentSummary is one row of the unshipped shipment listing.
type ShipmentSummary struct {
	ID        string `json:"id"`
	Number    string `json:"number"`
	OrderID   string `json:"order_id"`
	State     string `json:"state"`
	CostCents int64  `json:"cost_cents"`
	UnitCount int    `json:"unit_count"`
}

// CreateShipment handles POST /api/v1/shipments.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var body NewShipment
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(body.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var stockLocationID *kernel.UUID
	if body.StockLocationID != nil {
		locID, locErr := kernel.UUIDFromString(*body.StockLocationID)
		if locErr != nil {
			return badRequest(ctx, "Invalid stock location id: "+locErr.Error())
		}
		stockLocationID = &locID
	}

	units := make([]commands.ShipmentUnitInput, 0, len(body.Units))
	for _, unit := range body.Units {
		variantID, unitErr := kernel.UUIDFromString(unit.VariantID)
		if unitErr != nil {
			return badRequest(ctx, "Invalid variant id: "+unitErr.Error())
		}
		lineItemID, unitErr := kernel.UUIDFromString(unit.LineItemID)
		if unitErr != nil {
			return badRequest(ctx, "Invalid line item id: "+unitErr.Error())
		}
		units = append(units, commands.ShipmentUnitInput{
			VariantID:      variantID,
			LineItemID:     lineItemID,
			UnitPriceCents: unit.UnitPriceCents,
			Quantity:       unit.Quantity,
			Backordered:    unit.Backordered,
		})
	}

	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(shipmentID, orderID, stockLocationID, units)
	if err != nil {
		return badRequest(ctx, "Invalid shipment data: "+err.Error())
	}

	if err := s.createShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": shipmentID.String()})
}

// GetShipment handles GET /api/v1/shipments/:id.
func (s *Server) GetShipment(ctx echo.Context) error {
	shipmentID, err := shipmentIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	query, err := queries.NewGetShipmentQuery(shipmentID)
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	response, err := s.getShipmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	rates := make([]ShippingRate, len(response.Rates))
	for i, rate := range response.Rates {
		rates[i] = ShippingRate{
			ID:         rate.ID.String(),
			MethodID:   rate.MethodID.String(),
			MethodName: rate.MethodName,
			CostCents:  rate.CostCents,
			Selected:   rate.Selected,
		}
	}

	return ctx.JSON(http.StatusOK, Shipment{
		ID:                  response.ID.String(),
		Number:              response.Number,
		OrderID:             response.OrderID.String(),
		State:               response.State,
		CostCents:           response.CostCents,
		TotalCents:          response.TotalCents,
		TotalBeforeTaxCents: response.TotalBeforeTaxCents,
		TaxTotalCents:       response.TaxTotalCents,
		TrackingNumber:      response.TrackingNumber,
		ShippedAt:           response.ShippedAt,
		Rates:               rates,
	})
}

// GetUnshippedShipments handles GET /api/v1/shipments.
func (s *Server) GetUnshippedShipments(ctx echo.Context) error {
	query := queries.NewGetUnshippedShipmentsQuery()

	shipments, err := s.getUnshippedShipmentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve shipments",
		})
	}

	response := make([]ShipmentSummary, len(shipments))
	for i, row := range shipments {
		response[i] = ShipmentSummary{
			ID:        row.ID.String(),
			Number:    row.Number,
			OrderID:   row.OrderID.String(),
			State:     row.State,
			CostCents: row.CostCents,
			UnitCount: row.UnitCount,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// DeleteShipment handles DELETE /api/v1/shipments/:id.
func (s *Server) DeleteShipment(ctx echo.Context) error {
	shipmentID, err := shipmentIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	cmd, err := commands.NewDeleteShipmentCommand(shipmentID)
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	if err := s.deleteShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReadyShipment handles POST /api/v1/shipments/:id/ready.
func (s *Server) ReadyShipment(ctx echo.Context) error {
	return s.transition(ctx, func(shipmentID kernel.UUID) error {
		cmd, err := commands.NewReadyShipmentCommand(shipmentID)
		if err != nil {
			return err
		}
		return s.readyShipmentHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// ShipShipment handles POST /api/v1/shipments/:id/ship.
func (s *Server) ShipShipment(ctx echo.Context) error {
	var body ShipRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	return s.transition(ctx, func(shipmentID kernel.UUID) error {
		cmd, err := commands.NewShipShipmentCommand(
			shipmentID, body.TrackingNumber, body.SuppressNotification)
		if err != nil {
			return err
		}
		return s.shipShipmentHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// CancelShipment handles POST /api/v1/shipments/:id/cancel.
func (s *Server) CancelShipment(ctx echo.Context) error {
	return s.transition(ctx, func(shipmentID kernel.UUID) error {
		cmd, err := commands.NewCancelShipmentCommand(shipmentID)
		if err != nil {
			return err
		}
		return s.cancelShipmentHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// ResumeShipment handles POST /api/v1/shipments/:id/resume.
func (s *Server) ResumeShipment(ctx echo.Context) error {
	return s.transition(ctx, func(shipmentID kernel.UUID) error {
		cmd, err := commands.NewResumeShipmentCommand(shipmentID)
		if err != nil {
			return err
		}
		return s.resumeShipmentHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// PendShipment handles POST /api/v1/shipments/:id/pend.
func (s *Server) PendShipment(ctx echo.Context) error {
	return s.transition(ctx, func(shipmentID kernel.UUID) error {
		cmd, err := commands.NewPendShipmentCommand(shipmentID)
		if err != nil {
			return err
		}
		return s.pendShipmentHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// FinalizeShipment handles POST /api/v1/shipments/:id/finalize.
func (s *Server) FinalizeShipment(ctx echo.Context) error {
	return s.transition(ctx, func(shipmentID kernel.UUID) error {
		cmd, err := commands.NewFinalizeShipmentCommand(shipmentID)
		if err != nil {
			return err
		}
		return s.finalizeShipmentHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// RefreshShippingRates handles POST /api/v1/shipments/:id/rates/refresh.
func (s *Server) RefreshShippingRates(ctx echo.Context) error {
	return s.transition(ctx, func(shipmentID kernel.UUID) error {
		cmd, err := commands.NewRefreshShippingRatesCommand(shipmentID)
		if err != nil {
			return err
		}
		return s.refreshRatesHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// SelectShippingRate handles PUT /api/v1/shipments/:id/rates/selected.
func (s *Server) SelectShippingRate(ctx echo.Context) error {
	var body SelectRateRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	rateID, err := kernel.UUIDFromString(body.RateID)
	if err != nil {
		return badRequest(ctx, "Invalid rate id: "+err.Error())
	}

	return s.transition(ctx, func(shipmentID kernel.UUID) error {
		cmd, cmdErr := commands.NewSelectShippingRateCommand(shipmentID, rateID)
		if cmdErr != nil {
			return cmdErr
		}
		return s.selectShippingRateHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// SelectShippingMethod handles PUT /api/v1/shipments/:id/shipping-method.
func (s *Server) SelectShippingMethod(ctx echo.Context) error {
	var body SelectMethodRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	methodID, err := kernel.UUIDFromString(body.MethodID)
	if err != nil {
		return badRequest(ctx, "Invalid method id: "+err.Error())
	}

	return s.transition(ctx, func(shipmentID kernel.UUID) error {
		cmd, cmdErr := commands.NewSelectShippingMethodCommand(shipmentID, methodID)
		if cmdErr != nil {
			return cmdErr
		}
		return s.selectShippingMethodHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// transition parses the shipment id parameter, runs the operation and maps
// its error onto a status code.
func (s *Server) transition(ctx echo.Context, run func(kernel.UUID) error) error {
	shipmentID, err := shipmentIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid shipment id")
	}

	if err := run(shipmentID); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// shipmentIDParam parses the :id path parameter.
func shipmentIDParam(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

// badRequest writes a 400 response with the given message.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps a use case error onto an API response.
func domainError(ctx echo.Context, err error) error {
	var status int
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrIllegalStateTransition), errors.Is(err, errs.ErrDestroyBlocked):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}

	return ctx.JSON(status, Error{Code: status, Message: err.Error()})
}
