package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/guard"
)

var (
	ErrGetAllowedActionsQueryIsNotConstructed = errors.New(
		"GetAllowedActionsQuery must be created via NewGetAllowedActionsQuery constructor",
	)
)

// GetAllowedActionsQuery retrieves the actions one role may currently
// perform on an order. The result drives which controls a client renders;
// every mutation re-checks legality at execution time.
type GetAllowedActionsQuery struct {
	orderID kernel.UUID
	role    kernel.Role

	guard guard.ConstructorGuard
}

// NewGetAllowedActionsQuery creates an allowed-actions query.
func NewGetAllowedActionsQuery(orderID kernel.UUID, role kernel.Role) (GetAllowedActionsQuery, error) {
	if err := errors.Join(
		orderID.Validate(),
		role.Validate(),
	); err != nil {
		return GetAllowedActionsQuery{}, err
	}

	return GetAllowedActionsQuery{
		orderID: orderID,
		role:    role,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAllowedActionsQuery) Validate() error {
	return q.guard.Validate(ErrGetAllowedActionsQueryIsNotConstructed)
}

// OrderID returns the inspected order.
func (q GetAllowedActionsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Role returns whose actions are listed.
func (q GetAllowedActionsQuery) Role() kernel.Role {
	return q.role
}

// AllowedAction pairs an action identifier with its approved label.
type AllowedAction struct {
	Action order.Action
	Label  string
}

// GetAllowedActionsQueryResponse lists what the role may do right now,
// with the order's own status carried as its approved label.
type GetAllowedActionsQueryResponse struct {
	StatusLabel string
	Actions     []AllowedAction
}
