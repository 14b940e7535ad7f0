package commands

import (
	"context"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"
)

// CancelOrderCommandHandler handles order cancellation.
// The order row is locked so no slot can be claimed while the order and
// its assignments are being released together.
type CancelOrderCommandHandler struct {
	uowFactory CapacityUoWFactory
	notifier   ports.CapacityNotifier
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory CapacityUoWFactory,
	notifier ports.CapacityNotifier,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the cancellation command.
// Moves the order to Cancelled through the transition table and releases
// every active assignment in the same transaction.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	aggregate, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.TransitionTo(order.StatusCancelled, cmd.Role()); err != nil {
		return err
	}

	legs, err := uow.AssignmentRepository().GetAllByOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	for _, leg := range legs {
		if !leg.IsActive() {
			continue
		}
		if err = leg.Release(assignment.StatusCancelled); err != nil {
			return err
		}
		if err = uow.AssignmentRepository().Update(ctx, leg); err != nil {
			return err
		}
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
