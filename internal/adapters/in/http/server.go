// Package http exposes the order lifecycle over a JSON API.
// It translates requests into commands and queries and renders domain
// errors as HTTP status codes; no business rules live here.
package http

import (
	"net/http"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	reserveSlotHandler       commands.ReserveSlotCommandHandler
	releaseSlotHandler       commands.ReleaseSlotCommandHandler
	updateLegProgressHandler commands.UpdateLegProgressCommandHandler
	transitionOrderHandler   commands.TransitionOrderCommandHandler
	cancelOrderHandler       commands.CancelOrderCommandHandler
	confirmDeliveryHandler   commands.ConfirmDeliveryCommandHandler
	submitProposalHandler    commands.SubmitProposalCommandHandler
	respondToProposalHandler commands.RespondToProposalCommandHandler

	// Query handlers
	getOpenOrdersHandler     queries.GetOpenOrdersQueryHandler
	resolveLegStatusHandler  queries.ResolveLegStatusQueryHandler
	getPriceViewHandler      queries.GetPriceViewQueryHandler
	getAllowedActionsHandler queries.GetAllowedActionsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	reserveSlotHandler commands.ReserveSlotCommandHandler,
	releaseSlotHandler commands.ReleaseSlotCommandHandler,
	updateLegProgressHandler commands.UpdateLegProgressCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	confirmDeliveryHandler commands.ConfirmDeliveryCommandHandler,
	submitProposalHandler commands.SubmitProposalCommandHandler,
	respondToProposalHandler commands.RespondToProposalCommandHandler,
	getOpenOrdersHandler queries.GetOpenOrdersQueryHandler,
	resolveLegStatusHandler queries.ResolveLegStatusQueryHandler,
	getPriceViewHandler queries.GetPriceViewQueryHandler,
	getAllowedActionsHandler queries.GetAllowedActionsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		reserveSlotHandler:       reserveSlotHandler,
		releaseSlotHandler:       releaseSlotHandler,
		updateLegProgressHandler: updateLegProgressHandler,
		transitionOrderHandler:   transitionOrderHandler,
		cancelOrderHandler:       cancelOrderHandler,
		confirmDeliveryHandler:   confirmDeliveryHandler,
		submitProposalHandler:    submitProposalHandler,
		respondToProposalHandler: respondToProposalHandler,
		getOpenOrdersHandler:     getOpenOrdersHandler,
		resolveLegStatusHandler:  resolveLegStatusHandler,
		getPriceViewHandler:      getPriceViewHandler,
		getAllowedActionsHandler: getAllowedActionsHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/open", s.GetOpenOrders)
	api.GET("/orders/:orderID/actions", s.GetAllowedActions)
	api.GET("/orders/:orderID/price", s.GetPriceView)
	api.POST("/orders/:orderID/transition", s.TransitionOrder)
	api.POST("/orders/:orderID/cancel", s.CancelOrder)
	api.POST("/orders/:orderID/confirm", s.ConfirmDelivery)

	api.POST("/orders/:orderID/reservations", s.ReserveSlot)
	api.DELETE("/orders/:orderID/reservations/:fulfillerID", s.ReleaseSlot)
	api.PUT("/orders/:orderID/legs/:fulfillerID/progress", s.UpdateLegProgress)
	api.GET("/orders/:orderID/legs/:fulfillerID/status", s.ResolveLegStatus)

	api.POST("/orders/:orderID/proposals", s.SubmitProposal)
	api.POST("/proposals/:proposalID/respond", s.RespondToProposal)
}

// CreateOrder handles POST /api/v1/orders - publishes a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	requesterID, err := kernel.UUIDFromString(req.RequesterID)
	if err != nil {
		return renderError(ctx, err)
	}

	pricing, err := parsePricing(req.Pricing)
	if err != nil {
		return renderError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, requesterID, pricing, req.RequiredSlots)
	if err != nil {
		return renderError(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return renderError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// GetOpenOrders handles GET /api/v1/orders/open - the public order board.
func (s *Server) GetOpenOrders(ctx echo.Context) error {
	query := queries.NewGetOpenOrdersQuery()

	orders, err := s.getOpenOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return renderError(ctx, err)
	}

	response := make([]OpenOrderResponse, len(orders))
	for i, row := range orders {
		response[i] = OpenOrderResponse{
			ID:            row.ID.String(),
			Status:        row.StatusLabel,
			RequiredSlots: row.RequiredSlots,
			FreeSlots:     row.FreeSlots,
			PerSlotPrice:  row.PerSlotPrice.Amount(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetAllowedActions handles GET /api/v1/orders/:orderID/actions.
func (s *Server) GetAllowedActions(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return renderError(ctx, err)
	}

	role, err := kernel.RoleFromString(ctx.QueryParam("role"))
	if err != nil {
		return renderError(ctx, err)
	}

	query, err := queries.NewGetAllowedActionsQuery(orderID, role)
	if err != nil {
		return renderError(ctx, err)
	}

	result, err := s.getAllowedActionsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return renderError(ctx, err)
	}

	actions := make([]AllowedActionResponse, len(result.Actions))
	for i, action := range result.Actions {
		actions[i] = AllowedActionResponse{
			Action: string(action.Action),
			Label:  action.Label,
		}
	}

	return ctx.JSON(http.StatusOK, AllowedActionsResponse{
		Status:  result.StatusLabel,
		Actions: actions,
	})
}

// GetPriceView handles GET /api/v1/orders/:orderID/price.
// The viewer's identity and role decide how much of the price is shown.
func (s *Server) GetPriceView(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return renderError(ctx, err)
	}

	viewerID, err := kernel.UUIDFromString(ctx.QueryParam("viewer_id"))
	if err != nil {
		return renderError(ctx, err)
	}

	role, err := kernel.RoleFromString(ctx.QueryParam("role"))
	if err != nil {
		return renderError(ctx, err)
	}

	query, err := queries.NewGetPriceViewQuery(orderID, viewerID, role)
	if err != nil {
		return renderError(ctx, err)
	}

	view, err := s.getPriceViewHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return renderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PriceViewResponse{
		PerSlot:       view.PerSlot,
		Total:         view.Total,
		RequiredSlots: view.RequiredSlots,
		Actionable:    view.Actionable,
		BelowMinimum:  view.BelowMinimum,
	})
}

// TransitionOrder handles POST /api/v1/orders/:orderID/transition.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return renderError(ctx, err)
	}

	var req TransitionOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	to, err := parseOrderStatus(req.Status)
	if err != nil {
		return renderError(ctx, err)
	}

	role, err := kernel.RoleFromString(req.Role)
	if err != nil {
		return renderError(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, to, role)
	if err != nil {
		return renderError(ctx, err)
	}

	if err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return renderError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// CancelOrder handles POST /api/v1/orders/:orderID/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return renderError(ctx, err)
	}

	var req RoleRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	role, err := kernel.RoleFromString(req.Role)
	if err != nil {
		return renderError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, role)
	if err != nil {
		return renderError(ctx, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return renderError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// ConfirmDelivery handles POST /api/v1/orders/:orderID/confirm.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return renderError(ctx, err)
	}

	var req RoleRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	role, err := kernel.RoleFromString(req.Role)
	if err != nil {
		return renderError(ctx, err)
	}

	cmd, err := commands.NewConfirmDeliveryCommand(orderID, role)
	if err != nil {
		return renderError(ctx, err)
	}

	if err := s.confirmDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return renderError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// ReserveSlot handles POST /api/v1/orders/:orderID/reservations.
func (s *Server) ReserveSlot(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return renderError(ctx, err)
	}

	var req ReserveSlotRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	fulfillerID, err := kernel.UUIDFromString(req.FulfillerID)
	if err != nil {
		return renderError(ctx, err)
	}

	pickupFrom, pickupTo, err := parseWindow(req.PickupWindow)
	if err != nil {
		return badRequest(ctx, "Invalid pickup window: "+err.Error())
	}

	deliveryFrom, deliveryTo, err := parseWindow(req.DeliveryWindow)
	if err != nil {
		return badRequest(ctx, "Invalid delivery window: "+err.Error())
	}

	assignmentID := kernel.NewUUID()
	cmd, err := commands.NewReserveSlotCommand(
		assignmentID, orderID, fulfillerID,
		pickupFrom, pickupTo,
		deliveryFrom, deliveryTo,
	)
	if err != nil {
		return renderError(ctx, err)
	}

	if err := s.reserveSlotHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return renderError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: assignmentID.String()})
}

// ReleaseSlot handles DELETE /api/v1/orders/:orderID/reservations/:fulfillerID.
func (s *Server) ReleaseSlot(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return renderError(ctx, err)
	}

	fulfillerID, err := kernel.UUIDFromString(ctx.Param("fulfillerID"))
	if err != nil {
		return renderError(ctx, err)
	}

	role, err := kernel.RoleFromString(ctx.QueryParam("role"))
	if err != nil {
		return renderError(ctx, err)
	}

	cmd, err := commands.NewReleaseSlotCommand(orderID, fulfillerID, role)
	if err != nil {
		return renderError(ctx, err)
	}

	if err := s.releaseSlotHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return renderError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// UpdateLegProgress handles PUT /api/v1/orders/:orderID/legs/:fulfillerID/progress.
func (s *Server) UpdateLegProgress(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return renderError(ctx, err)
	}

	fulfillerID, err := kernel.UUIDFromString(ctx.Param("fulfillerID"))
	if err != nil {
		return renderError(ctx, err)
	}

	var req UpdateLegProgressRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	to, err := parseLegStatus(req.Status)
	if err != nil {
		return renderError(ctx, err)
	}

	role, err := kernel.RoleFromString(req.Role)
	if err != nil {
		return renderError(ctx, err)
	}

	cmd, err := commands.NewUpdateLegProgressCommand(orderID, fulfillerID, to, role, req.Override)
	if err != nil {
		return renderError(ctx, err)
	}

	if err := s.updateLegProgressHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return renderError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// ResolveLegStatus handles GET /api/v1/orders/:orderID/legs/:fulfillerID/status.
func (s *Server) ResolveLegStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return renderError(ctx, err)
	}

	fulfillerID, err := kernel.UUIDFromString(ctx.Param("fulfillerID"))
	if err != nil {
		return renderError(ctx, err)
	}

	query, err := queries.NewResolveLegStatusQuery(orderID, fulfillerID)
	if err != nil {
		return renderError(ctx, err)
	}

	result, err := s.resolveLegStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return renderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, LegStatusResponse{
		Status: result.StatusLabel,
		Source: string(result.Source),
	})
}

// SubmitProposal handles POST /api/v1/orders/:orderID/proposals.
func (s *Server) SubmitProposal(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return renderError(ctx, err)
	}

	var req SubmitProposalRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	fulfillerID, err := kernel.UUIDFromString(req.FulfillerID)
	if err != nil {
		return renderError(ctx, err)
	}

	offeredPrice, err := kernel.NewMoney(req.OfferedPrice)
	if err != nil {
		return renderError(ctx, err)
	}

	proposalID := kernel.NewUUID()
	cmd, err := commands.NewSubmitProposalCommand(proposalID, orderID, fulfillerID, offeredPrice)
	if err != nil {
		return renderError(ctx, err)
	}

	if err := s.submitProposalHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return renderError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: proposalID.String()})
}

// RespondToProposal handles POST /api/v1/proposals/:proposalID/respond.
// Accepting a proposal reserves the slot and returns the new assignment id.
func (s *Server) RespondToProposal(ctx echo.Context) error {
	proposalID, err := kernel.UUIDFromString(ctx.Param("proposalID"))
	if err != nil {
		return renderError(ctx, err)
	}

	var req RespondToProposalRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	role, err := kernel.RoleFromString(req.Role)
	if err != nil {
		return renderError(ctx, err)
	}

	switch req.Decision {
	case "accept":
		if req.PickupWindow == nil || req.DeliveryWindow == nil {
			return badRequest(ctx, "Accepting a proposal requires pickup and delivery windows")
		}

		pickupFrom, pickupTo, err := parseWindow(*req.PickupWindow)
		if err != nil {
			return badRequest(ctx, "Invalid pickup window: "+err.Error())
		}

		deliveryFrom, deliveryTo, err := parseWindow(*req.DeliveryWindow)
		if err != nil {
			return badRequest(ctx, "Invalid delivery window: "+err.Error())
		}

		assignmentID := kernel.NewUUID()
		cmd, err := commands.NewAcceptProposalCommand(
			proposalID, role, assignmentID,
			pickupFrom, pickupTo,
			deliveryFrom, deliveryTo,
		)
		if err != nil {
			return renderError(ctx, err)
		}

		if err := s.respondToProposalHandler.Handle(ctx.Request().Context(), cmd); err != nil {
			return renderError(ctx, err)
		}

		return ctx.JSON(http.StatusOK, CreatedResponse{ID: assignmentID.String()})

	case "reject", "counter":
		decision := commands.DecisionReject
		var counterPrice kernel.Money
		if req.Decision == "counter" {
			decision = commands.DecisionCounter
			counterPrice, err = kernel.NewMoney(req.CounterPrice)
			if err != nil {
				return renderError(ctx, err)
			}
		}

		cmd, err := commands.NewRespondToProposalCommand(proposalID, role, decision, counterPrice)
		if err != nil {
			return renderError(ctx, err)
		}

		if err := s.respondToProposalHandler.Handle(ctx.Request().Context(), cmd); err != nil {
			return renderError(ctx, err)
		}

		return ctx.NoContent(http.StatusOK)

	default:
		return badRequest(ctx, "Decision must be one of accept, reject or counter")
	}
}

func parseWindow(w WindowRequest) (time.Time, time.Time, error) {
	from, err := time.Parse(time.RFC3339, w.From)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	to, err := time.Parse(time.RFC3339, w.To)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return from, to, nil
}
