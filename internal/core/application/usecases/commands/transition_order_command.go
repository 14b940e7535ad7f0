package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/pkg/guard"
)

var (
	ErrTransitionOrderCommandIsNotConstructed = errors.New(
		"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
	)
)

// TransitionOrderCommand represents an actor moving an order to a new
// status through the transition table: opening negotiation, starting and
// finishing loading, departing, reporting delivery and so on.
//
// Capacity changes and cancellations have dedicated commands; this one
// covers the plain status moves.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	to      order.Status
	role    kernel.Role

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to move an order's status.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	to order.Status,
	role kernel.Role,
) (TransitionOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		to.Validate(),
		role.Validate(),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return TransitionOrderCommand{
		orderID: orderID,
		to:      to,
		role:    role,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the order to move.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// To returns the target status.
func (c TransitionOrderCommand) To() order.Status {
	return c.to
}

// Role returns who requests the move.
func (c TransitionOrderCommand) Role() kernel.Role {
	return c.role
}
