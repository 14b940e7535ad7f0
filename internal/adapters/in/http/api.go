package http

import (
	"errors"
	"fmt"
	"net/http"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/proposal"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the uniform error payload for all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// PricingRequest carries the pricing terms of a new order. Mode selects
// which of the remaining fields apply; amounts are in minor currency units.
type PricingRequest struct {
	Mode        string `json:"mode"`
	FixedAmount int64  `json:"fixed_amount,omitempty"`
	Rate        int64  `json:"rate,omitempty"`
	DistanceKm  int64  `json:"distance_km,omitempty"`
	WeightKg    int64  `json:"weight_kg,omitempty"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	RequesterID   string         `json:"requester_id"`
	Pricing       PricingRequest `json:"pricing"`
	RequiredSlots int            `json:"required_slots"`
}

// CreatedResponse returns the server-generated identifier of a new resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// WindowRequest is a pickup or delivery time window.
type WindowRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ReserveSlotRequest is the body of POST /api/v1/orders/:orderID/reservations.
type ReserveSlotRequest struct {
	FulfillerID    string        `json:"fulfiller_id"`
	PickupWindow   WindowRequest `json:"pickup_window"`
	DeliveryWindow WindowRequest `json:"delivery_window"`
}

// RoleRequest carries the acting role for endpoints without other inputs.
type RoleRequest struct {
	Role string `json:"role"`
}

// TransitionOrderRequest is the body of POST /api/v1/orders/:orderID/transition.
type TransitionOrderRequest struct {
	Status string `json:"status"`
	Role   string `json:"role"`
}

// UpdateLegProgressRequest is the body of
// PUT /api/v1/orders/:orderID/legs/:fulfillerID/progress.
type UpdateLegProgressRequest struct {
	Status   string `json:"status"`
	Role     string `json:"role"`
	Override bool   `json:"override,omitempty"`
}

// SubmitProposalRequest is the body of POST /api/v1/orders/:orderID/proposals.
type SubmitProposalRequest struct {
	FulfillerID  string `json:"fulfiller_id"`
	OfferedPrice int64  `json:"offered_price"`
}

// RespondToProposalRequest is the body of
// POST /api/v1/proposals/:proposalID/respond. Decision is one of
// "accept", "reject" or "counter"; CounterPrice applies to counters and
// the windows apply to accepts.
type RespondToProposalRequest struct {
	Role           string         `json:"role"`
	Decision       string         `json:"decision"`
	CounterPrice   int64          `json:"counter_price,omitempty"`
	PickupWindow   *WindowRequest `json:"pickup_window,omitempty"`
	DeliveryWindow *WindowRequest `json:"delivery_window,omitempty"`
}

// OpenOrderResponse is one row of the public order board.
type OpenOrderResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	RequiredSlots int    `json:"required_slots"`
	FreeSlots     int    `json:"free_slots"`
	PerSlotPrice  int64  `json:"per_slot_price"`
}

// LegStatusResponse reports the resolved status of one leg.
type LegStatusResponse struct {
	Status string `json:"status"`
	Source string `json:"source"`
}

// PriceViewResponse is the viewer-scoped price breakdown of an order.
type PriceViewResponse struct {
	PerSlot       int64  `json:"per_slot"`
	Total         *int64 `json:"total,omitempty"`
	RequiredSlots int    `json:"required_slots"`
	Actionable    bool   `json:"actionable"`
	BelowMinimum  bool   `json:"below_minimum"`
}

// AllowedActionResponse is one action available on an order.
type AllowedActionResponse struct {
	Action string `json:"action"`
	Label  string `json:"label"`
}

// AllowedActionsResponse lists the actions a role may take on an order.
type AllowedActionsResponse struct {
	Status  string                  `json:"status"`
	Actions []AllowedActionResponse `json:"actions"`
}

func parseOrderStatus(s string) (order.Status, error) {
	for status := order.StatusOpen; status <= order.StatusRejected; status++ {
		if status.String() == s {
			return status, nil
		}
	}
	return order.StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a known order status", s),
	)
}

func parseLegStatus(s string) (assignment.Status, error) {
	for status := assignment.StatusPending; status <= assignment.StatusRejected; status++ {
		if status.String() == s {
			return status, nil
		}
	}
	return assignment.StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a known leg status", s),
	)
}

func parsePricing(req PricingRequest) (order.PricingTerms, error) {
	switch req.Mode {
	case "Fixed":
		amount, err := kernel.NewMoney(req.FixedAmount)
		if err != nil {
			return order.PricingTerms{}, err
		}
		return order.NewFixedPricing(amount)
	case "PerDistance":
		rate, err := kernel.NewMoney(req.Rate)
		if err != nil {
			return order.PricingTerms{}, err
		}
		return order.NewPerDistancePricing(rate, req.DistanceKm)
	case "PerWeight":
		rate, err := kernel.NewMoney(req.Rate)
		if err != nil {
			return order.PricingTerms{}, err
		}
		return order.NewPerWeightPricing(rate, req.WeightKg)
	default:
		return order.PricingTerms{}, errs.NewValueIsInvalidErrorWithCause(
			"pricing mode",
			fmt.Errorf("%q is not a known pricing mode", req.Mode),
		)
	}
}

// renderError maps domain errors onto HTTP status codes. Validation
// failures are the client's fault, capacity and transition conflicts are
// reported as conflicts, and role refusals as forbidden. Refused status
// changes render through the status label guard; the raw error text
// names internal codes and stays out of the payload.
func renderError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	message := err.Error()

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, order.ErrSlotUnavailable):
		code = http.StatusConflict
	case errors.Is(err, order.ErrIllegalTransition),
		errors.Is(err, assignment.ErrIllegalLegTransition):
		code = http.StatusConflict
		message = blockedMessage(err)
	case errors.Is(err, order.ErrForbiddenForRole),
		errors.Is(err, assignment.ErrLegForbiddenForRole):
		code = http.StatusForbidden
		message = blockedMessage(err)
	case errors.Is(err, proposal.ErrForbiddenForRole):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	default:
		// Unclassified errors are server-side; their text is for logs only.
		ctx.Logger().Error(err)
		message = "internal error"
	}

	return ctx.JSON(code, Error{
		Code:    code,
		Message: message,
	})
}

// blockedMessage labels a refused status change. Transition errors carry
// the attempted edge; errors without one keep their sentinel text, which
// names no status codes.
func blockedMessage(err error) string {
	var transition *order.TransitionError
	if errors.As(err, &transition) {
		return services.BlockedTransitionMessage(transition.From, transition.To)
	}

	var leg *assignment.LegTransitionError
	if errors.As(err, &leg) {
		return services.BlockedLegUpdateMessage(leg.From, leg.To)
	}

	return err.Error()
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
