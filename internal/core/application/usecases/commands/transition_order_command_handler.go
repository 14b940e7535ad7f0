package commands

import (
	"context"

	"freight/internal/core/ports"
)

// TransitionOrderCommandHandler handles plain order status moves.
// The transition table is consulted inside the aggregate at mutation
// time; UI-side action lists are advisory only.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.CapacityNotifier
}

// NewTransitionOrderCommandHandler creates a handler for order status moves.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.CapacityNotifier,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the status move command.
// Returns order.ErrIllegalTransition when the edge does not exist and
// order.ErrForbiddenForRole when it exists for someone else.
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.TransitionTo(cmd.To(), cmd.Role()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.notifier.NotifyStatusChanged(ctx, aggregate.ID(), aggregate.Status())

	return nil
}
