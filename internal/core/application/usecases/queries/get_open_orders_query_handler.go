package queries

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOpenOrdersQueryHandler reads the order board from the database.
// Uses direct SQL for optimal read performance in the CQRS pattern.
type GetOpenOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOpenOrdersQueryHandler creates a handler for order board queries.
// Requires a GORM database connection for query execution.
func NewGetOpenOrdersQueryHandler(db *gorm.DB) GetOpenOrdersQueryHandler {
	return GetOpenOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all orders accepting reservations.
// Results are sorted by order ID for consistent output.
func (h GetOpenOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOpenOrdersQuery,
) ([]GetOpenOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	board := make([]GetOpenOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			required_slots,
			accepted_slots,
			pricing_mode,
			fixed_amount,
			rate,
			distance_km,
			weight_kg
		FROM orders
		WHERE status IN (?, ?)
		ORDER BY id
	`, int(order.StatusOpen), int(order.StatusInNegotiation)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var status, requiredSlots, acceptedSlots, pricingMode int
		var fixedAmount, rate, distanceKm, weightKg int64

		err = rows.Scan(
			&id,
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
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		terms, termsErr := restoreTerms(pricingMode, fixedAmount, rate, distanceKm, weightKg)
		if termsErr != nil {
			return nil, termsErr
		}

		board = append(board, GetOpenOrdersQueryResponse{
			ID:            orderID,
			StatusLabel:   services.OrderStatusLabel(order.Status(status)),
			RequiredSlots: requiredSlots,
			FreeSlots:     requiredSlots - acceptedSlots,
			PerSlotPrice:  services.PerSlotPrice(terms),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return board, nil
}

func restoreTerms(mode int, fixedAmount, rate, distanceKm, weightKg int64) (order.PricingTerms, error) {
	fixed, err := kernel.NewMoney(fixedAmount)
	if err != nil {
		return order.PricingTerms{}, err
	}

	rateMoney, err := kernel.NewMoney(rate)
	if err != nil {
		return order.PricingTerms{}, err
	}

	return order.RestorePricingTerms(order.PricingMode(mode), fixed, rateMoney, distanceKm, weightKg)
}
