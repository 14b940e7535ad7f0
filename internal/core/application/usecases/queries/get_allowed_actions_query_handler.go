package queries

import (
	"context"
	"database/sql"
	"errors"

	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetAllowedActionsQueryHandler lists the currently legal actions for a
// role on an order. Only the order's status is read; the transition table
// itself is pure domain data.
type GetAllowedActionsQueryHandler struct {
	db *gorm.DB
}

// NewGetAllowedActionsQueryHandler creates a handler for allowed-actions queries.
func NewGetAllowedActionsQueryHandler(db *gorm.DB) GetAllowedActionsQueryHandler {
	return GetAllowedActionsQueryHandler{db: db}
}

// Handle executes the query.
func (h GetAllowedActionsQueryHandler) Handle(
	ctx context.Context,
	query GetAllowedActionsQuery,
) (GetAllowedActionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAllowedActionsQueryResponse{}, err
	}

	var status int
	err := h.db.WithContext(ctx).Raw(`
		SELECT status
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row().Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetAllowedActionsQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetAllowedActionsQueryResponse{}, err
	}

	current := order.Status(status)
	allowed := order.GetAllowedActions(current, query.Role())

	actions := make([]AllowedAction, 0, len(allowed))
	for _, action := range allowed {
		actions = append(actions, AllowedAction{
			Action: action,
			Label:  services.ActionLabel(action),
		})
	}

	return GetAllowedActionsQueryResponse{
		StatusLabel: services.OrderStatusLabel(current),
		Actions:     actions,
	}, nil
}
