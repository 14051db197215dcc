// Package http exposes the fulfillment use cases over an echo HTTP API and
// maps domain rejections onto status codes: lost claims and illegal
// transitions are 409, role rejections 403, unknown objects 404.
package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/adapters/out/ws"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/production"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server wires HTTP routes to command and query handlers.
type Server struct {
	claimOrderHandler           commands.ClaimOrderCommandHandler
	transitionOrderHandler      commands.TransitionOrderCommandHandler
	claimProductionHandler      commands.ClaimProductionOrderCommandHandler
	transitionProductionHandler commands.TransitionProductionOrderCommandHandler
	recalculateHandler          commands.RecalculateCapacityCommandHandler
	acknowledgeAlertHandler     commands.AcknowledgeAlertCommandHandler
	recordHeartbeatHandler      commands.RecordHeartbeatCommandHandler

	claimableOrdersHandler  queries.GetClaimableOrdersQueryHandler
	workerActivityHandler   queries.GetWorkerActivityQueryHandler
	locationCapacityHandler queries.GetLocationCapacityQueryHandler
	openAlertsHandler       queries.GetOpenAlertsQueryHandler

	hub *ws.Hub
}

// NewServer creates an HTTP server with the required handlers.
func NewServer(
	claimOrderHandler commands.ClaimOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	claimProductionHandler commands.ClaimProductionOrderCommandHandler,
	transitionProductionHandler commands.TransitionProductionOrderCommandHandler,
	recalculateHandler commands.RecalculateCapacityCommandHandler,
	acknowledgeAlertHandler commands.AcknowledgeAlertCommandHandler,
	recordHeartbeatHandler commands.RecordHeartbeatCommandHandler,
	claimableOrdersHandler queries.GetClaimableOrdersQueryHandler,
	workerActivityHandler queries.GetWorkerActivityQueryHandler,
	locationCapacityHandler queries.GetLocationCapacityQueryHandler,
	openAlertsHandler queries.GetOpenAlertsQueryHandler,
	hub *ws.Hub,
) *Server {
	return &Server{
		claimOrderHandler:           claimOrderHandler,
		transitionOrderHandler:      transitionOrderHandler,
		claimProductionHandler:      claimProductionHandler,
		transitionProductionHandler: transitionProductionHandler,
		recalculateHandler:          recalculateHandler,
		acknowledgeAlertHandler:     acknowledgeAlertHandler,
		recordHeartbeatHandler:      recordHeartbeatHandler,
		claimableOrdersHandler:      claimableOrdersHandler,
		workerActivityHandler:       workerActivityHandler,
		locationCapacityHandler:     locationCapacityHandler,
		openAlertsHandler:           openAlertsHandler,
		hub:                         hub,
	}
}

// RegisterRoutes attaches every route to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/ws", s.hub.HandleConnection)

	api := e.Group("/api/v1")
	api.POST("/orders/:id/claim", s.ClaimOrder)
	api.POST("/orders/:id/transition", s.TransitionOrder)
	api.GET("/orders/claimable", s.GetClaimableOrders)
	api.POST("/production-orders/:id/claim", s.ClaimProductionOrder)
	api.POST("/production-orders/:id/transition", s.TransitionProductionOrder)
	api.POST("/locations/:code/recalculate", s.RecalculateCapacity)
	api.GET("/locations/:code/capacity", s.GetLocationCapacity)
	api.GET("/alerts", s.GetOpenAlerts)
	api.POST("/alerts/:id/acknowledge", s.AcknowledgeAlert)
	api.POST("/heartbeats", s.RecordHeartbeat)
	api.GET("/workers/activity", s.GetWorkerActivity)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type orderBody struct {
	ID        string  `json:"id"`
	Number    string  `json:"number"`
	Status    string  `json:"status"`
	Priority  string  `json:"priority"`
	PickerID  *string `json:"pickerId,omitempty"`
	PackerID  *string `json:"packerId,omitempty"`
	Progress  int     `json:"progress"`
	UpdatedAt string  `json:"updatedAt"`
}

func orderToBody(o *order.Order) orderBody {
	body := orderBody{
		ID:        o.ID().String(),
		Number:    o.Number(),
		Status:    o.Status().String(),
		Priority:  o.Priority().String(),
		Progress:  o.Progress(),
		UpdatedAt: o.UpdatedAt().Format(time.RFC3339),
	}
	if id := o.Picker(); id != nil {
		str := id.String()
		body.PickerID = &str
	}
	if id := o.Packer(); id != nil {
		str := id.String()
		body.PackerID = &str
	}
	return body
}

type productionOrderBody struct {
	ID         string  `json:"id"`
	Number     string  `json:"number"`
	Status     string  `json:"status"`
	AssigneeID *string `json:"assigneeId,omitempty"`
	UpdatedAt  string  `json:"updatedAt"`
}

func productionOrderToBody(o *production.Order) productionOrderBody {
	body := productionOrderBody{
		ID:        o.ID().String(),
		Number:    o.Number(),
		Status:    o.Status().String(),
		UpdatedAt: o.UpdatedAt().Format(time.RFC3339),
	}
	if id := o.Assignee(); id != nil {
		str := id.String()
		body.AssigneeID = &str
	}
	return body
}

// ClaimOrder handles POST /api/v1/orders/:id/claim.
func (s *Server) ClaimOrder(c echo.Context) error {
	var req struct {
		WorkerID string `json:"workerId"`
		Stage    string `json:"stage"`
		Role     string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid order id")
	}
	workerID, err := kernel.UUIDFromString(req.WorkerID)
	if err != nil {
		return badRequest(c, "invalid worker id")
	}
	stage, err := order.ClaimStageFromString(req.Stage)
	if err != nil {
		return badRequest(c, "invalid stage")
	}
	role, err := kernel.RoleFromString(req.Role)
	if err != nil {
		return badRequest(c, "invalid role")
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, workerID, stage, role)
	if err != nil {
		return badRequest(c, err.Error())
	}

	claimed, err := s.claimOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, orderToBody(claimed))
}

// TransitionOrder handles POST /api/v1/orders/:id/transition.
func (s *Server) TransitionOrder(c echo.Context) error {
	var req struct {
		Target  string `json:"target"`
		Role    string `json:"role"`
		ActorID string `json:"actorId"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid order id")
	}
	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return badRequest(c, "invalid target status")
	}
	role, err := kernel.RoleFromString(req.Role)
	if err != nil {
		return badRequest(c, "invalid role")
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(c, "invalid actor id")
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, target, role, actorID)
	if err != nil {
		return badRequest(c, err.Error())
	}

	updated, err := s.transitionOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, orderToBody(updated))
}

// GetClaimableOrders handles GET /api/v1/orders/claimable?stage=PICK.
func (s *Server) GetClaimableOrders(c echo.Context) error {
	stage, err := order.ClaimStageFromString(c.QueryParam("stage"))
	if err != nil {
		return badRequest(c, "invalid stage")
	}

	query, err := queries.NewGetClaimableOrdersQuery(stage)
	if err != nil {
		return badRequest(c, err.Error())
	}

	orders, err := s.claimableOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return internalError(c)
	}

	type row struct {
		ID        string `json:"id"`
		Number    string `json:"number"`
		Status    string `json:"status"`
		Priority  string `json:"priority"`
		UpdatedAt string `json:"updatedAt"`
	}
	response := make([]row, len(orders))
	for i, o := range orders {
		response[i] = row{
			ID:        o.ID.String(),
			Number:    o.Number,
			Status:    o.Status,
			Priority:  o.Priority,
			UpdatedAt: o.UpdatedAt.Format(time.RFC3339),
		}
	}

	return c.JSON(http.StatusOK, response)
}

// ClaimProductionOrder handles POST /api/v1/production-orders/:id/claim.
func (s *Server) ClaimProductionOrder(c echo.Context) error {
	var req struct {
		WorkerID string `json:"workerId"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid order id")
	}
	workerID, err := kernel.UUIDFromString(req.WorkerID)
	if err != nil {
		return badRequest(c, "invalid worker id")
	}

	cmd, err := commands.NewClaimProductionOrderCommand(orderID, workerID)
	if err != nil {
		return badRequest(c, err.Error())
	}

	claimed, err := s.claimProductionHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, productionOrderToBody(claimed))
}

// TransitionProductionOrder handles POST /api/v1/production-orders/:id/transition.
func (s *Server) TransitionProductionOrder(c echo.Context) error {
	var req struct {
		Target  string `json:"target"`
		Role    string `json:"role"`
		ActorID string `json:"actorId"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid order id")
	}
	target, err := production.StatusFromString(req.Target)
	if err != nil {
		return badRequest(c, "invalid target status")
	}
	role, err := kernel.RoleFromString(req.Role)
	if err != nil {
		return badRequest(c, "invalid role")
	}
	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return badRequest(c, "invalid actor id")
	}

	cmd, err := commands.NewTransitionProductionOrderCommand(orderID, target, role, actorID)
	if err != nil {
		return badRequest(c, err.Error())
	}

	updated, err := s.transitionProductionHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, productionOrderToBody(updated))
}

// RecalculateCapacity handles POST /api/v1/locations/:code/recalculate.
// Inventory pipelines call this after moving stock; the sweep job covers
// anything they miss.
func (s *Server) RecalculateCapacity(c echo.Context) error {
	var req struct {
		Zone         string `json:"zone"`
		LocationType string `json:"locationType"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	loc, err := kernel.NewBinLocation(c.Param("code"), req.Zone, req.LocationType)
	if err != nil {
		return badRequest(c, "invalid location code")
	}

	cmd, err := commands.NewRecalculateCapacityCommand(loc)
	if err != nil {
		return badRequest(c, err.Error())
	}

	if err = s.recalculateHandler.Handle(c.Request().Context(), cmd); err != nil {
		return domainError(c, err)
	}

	return c.NoContent(http.StatusAccepted)
}

// GetLocationCapacity handles GET /api/v1/locations/:code/capacity.
func (s *Server) GetLocationCapacity(c echo.Context) error {
	query, err := queries.NewGetLocationCapacityQuery(c.Param("code"))
	if err != nil {
		return badRequest(c, "invalid location code")
	}

	capacities, err := s.locationCapacityHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return internalError(c)
	}

	return c.JSON(http.StatusOK, capacities)
}

// GetOpenAlerts handles GET /api/v1/alerts.
func (s *Server) GetOpenAlerts(c echo.Context) error {
	alerts, err := s.openAlertsHandler.Handle(c.Request().Context(), queries.NewGetOpenAlertsQuery())
	if err != nil {
		return internalError(c)
	}

	type row struct {
		ID          string  `json:"id"`
		Location    string  `json:"location"`
		Zone        string  `json:"zone"`
		Dimension   string  `json:"dimension"`
		AlertType   string  `json:"alertType"`
		Utilization float64 `json:"utilization"`
		MaxCapacity float64 `json:"maxCapacity"`
		Percent     float64 `json:"percent"`
		Message     string  `json:"message"`
		CreatedAt   string  `json:"createdAt"`
	}
	response := make([]row, len(alerts))
	for i, a := range alerts {
		response[i] = row{
			ID:          a.ID.String(),
			Location:    a.LocationCode,
			Zone:        a.Zone,
			Dimension:   a.Dimension,
			AlertType:   a.AlertType,
			Utilization: a.Utilization,
			MaxCapacity: a.MaxCapacity,
			Percent:     a.Percent,
			Message:     a.Message,
			CreatedAt:   a.CreatedAt.Format(time.RFC3339),
		}
	}

	return c.JSON(http.StatusOK, response)
}

// AcknowledgeAlert handles POST /api/v1/alerts/:id/acknowledge.
func (s *Server) AcknowledgeAlert(c echo.Context) error {
	var req struct {
		UserID string `json:"userId"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	alertID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid alert id")
	}
	userID, err := kernel.UUIDFromString(req.UserID)
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	cmd, err := commands.NewAcknowledgeAlertCommand(alertID, userID)
	if err != nil {
		return badRequest(c, err.Error())
	}

	alert, err := s.acknowledgeAlertHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"id":             alert.ID().String(),
		"acknowledged":   alert.IsAcknowledged(),
		"acknowledgedBy": req.UserID,
	})
}

// RecordHeartbeat handles POST /api/v1/heartbeats.
func (s *Server) RecordHeartbeat(c echo.Context) error {
	var req struct {
		WorkerID    string  `json:"workerId"`
		Role        string  `json:"role"`
		Active      bool    `json:"active"`
		CurrentView *string `json:"currentView"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	role, err := kernel.RoleFromString(req.Role)
	if err != nil {
		return badRequest(c, "invalid role")
	}

	cmd, err := commands.NewRecordHeartbeatCommand(req.WorkerID, role, req.Active, req.CurrentView)
	if err != nil {
		return badRequest(c, err.Error())
	}

	if err = s.recordHeartbeatHandler.Handle(c.Request().Context(), cmd); err != nil {
		return domainError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetWorkerActivity handles GET /api/v1/workers/activity.
func (s *Server) GetWorkerActivity(c echo.Context) error {
	activities, err := s.workerActivityHandler.Handle(c.Request().Context(), queries.NewGetWorkerActivityQuery())
	if err != nil {
		return internalError(c)
	}

	return c.JSON(http.StatusOK, activities)
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, errorBody{Code: http.StatusBadRequest, Message: message})
}

func internalError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, errorBody{
		Code:    http.StatusInternalServerError,
		Message: "internal error",
	})
}

// domainError maps domain rejections onto HTTP status codes.
func domainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, commands.ErrClaimFailed):
		return c.JSON(http.StatusConflict, errorBody{
			Code:    http.StatusConflict,
			Message: "order was claimed by another worker, pick a different one",
		})
	case errors.Is(err, order.ErrInvalidTransition), errors.Is(err, order.ErrAlreadyTerminal),
		errors.Is(err, order.ErrClaimRequired),
		errors.Is(err, production.ErrInvalidTransition), errors.Is(err, production.ErrAlreadyTerminal),
		errors.Is(err, production.ErrClaimRequired):
		return c.JSON(http.StatusConflict, errorBody{Code: http.StatusConflict, Message: err.Error()})
	case errors.Is(err, order.ErrRoleNotPermitted), errors.Is(err, production.ErrRoleNotPermitted):
		return c.JSON(http.StatusForbidden, errorBody{Code: http.StatusForbidden, Message: err.Error()})
	case errors.Is(err, errs.ErrObjectNotFound):
		return c.JSON(http.StatusNotFound, errorBody{Code: http.StatusNotFound, Message: err.Error()})
	default:
		return internalError(c)
	}
}
