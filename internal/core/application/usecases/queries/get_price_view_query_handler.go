package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPriceViewQueryHandler reads an order's price scoped to one viewer.
// The visibility rules live in the domain service; the handler only loads
// the order and the viewer's active assignment and maps the result.
type GetPriceViewQueryHandler struct {
	db         *gorm.DB
	visibility services.PriceVisibility
}

// NewGetPriceViewQueryHandler creates a handler for price view queries.
func NewGetPriceViewQueryHandler(
	db *gorm.DB,
	visibility services.PriceVisibility,
) GetPriceViewQueryHandler {
	return GetPriceViewQueryHandler{
		db:         db,
		visibility: visibility,
	}
}

// Handle executes the query for one viewer.
func (h GetPriceViewQueryHandler) Handle(
	ctx context.Context,
	query GetPriceViewQuery,
) (GetPriceViewQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPriceViewQueryResponse{}, err
	}

	aggregate, err := h.loadOrder(ctx, query.OrderID())
	if err != nil {
		return GetPriceViewQueryResponse{}, err
	}

	leg, err := h.loadViewerLeg(ctx, query.OrderID(), query.ViewerID())
	if err != nil {
		return GetPriceViewQueryResponse{}, err
	}

	view := h.visibility.ViewFor(aggregate, leg, query.ViewerRole(), query.ViewerID())

	response := GetPriceViewQueryResponse{
		PerSlot:       view.PerSlot.Amount(),
		RequiredSlots: view.RequiredSlots,
		Actionable:    view.Actionable,
		BelowMinimum:  view.BelowMinimum,
	}
	if view.Total != nil {
		total := view.Total.Amount()
		response.Total = &total
	}

	return response, nil
}

func (h GetPriceViewQueryHandler) loadOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*order.Order, error) {
	var id, requesterID uuid.UUID
	var status, requiredSlots, acceptedSlots, pricingMode int
	var fixedAmount, rate, distanceKm, weightKg int64

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			requester_id,
			status,
			required_slots,
			accepted_slots,
			pricing_mode,
			fixed_amount,
			rate,
			distance_km,
			weight_kg
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row().Scan(
		&id,
		&requesterID,
		&status,
		&requiredSlots,
		&acceptedSlots,
		&pricingMode,
		&fixedAmount,
		&rate,
		&distanceKm,
		&weightKg,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("order", orderID.String())
		}
		return nil, err
	}

	restoredID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}

	restoredRequester, err := kernel.UUIDFromBytes(requesterID[:])
	if err != nil {
		return nil, err
	}

	terms, err := restoreTerms(pricingMode, fixedAmount, rate, distanceKm, weightKg)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		restoredID, restoredRequester, terms, requiredSlots, acceptedSlots, order.Status(status))
}

// loadViewerLeg returns nil without error when the viewer holds no active
// assignment on the order; the visibility service treats that as an
// outside viewer.
func (h GetPriceViewQueryHandler) loadViewerLeg(
	ctx context.Context,
	orderID, viewerID kernel.UUID,
) (*assignment.Assignment, error) {
	var id uuid.UUID
	var status int
	var agreedPrice int64
	var pickupFrom, pickupTo, deliveryFrom, deliveryTo time.Time

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			agreed_price,
			pickup_from,
			pickup_to,
			delivery_from,
			delivery_to
		FROM assignments
		WHERE order_id = ? AND fulfiller_id = ? AND status NOT IN (?, ?)
	`, orderID.Bytes(), viewerID.Bytes(),
		int(assignment.StatusCancelled), int(assignment.StatusRejected)).Row().Scan(
		&id,
		&status,
		&agreedPrice,
		&pickupFrom,
		&pickupTo,
		&deliveryFrom,
		&deliveryTo,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	legID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(agreedPrice)
	if err != nil {
		return nil, err
	}

	pickup, err := assignment.NewWindow(pickupFrom, pickupTo)
	if err != nil {
		return nil, err
	}

	delivery, err := assignment.NewWindow(deliveryFrom, deliveryTo)
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(
		legID, orderID, viewerID, assignment.Status(status), price, pickup, delivery)
}
