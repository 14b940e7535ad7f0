package commands

import (
	"context"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"
)

// ConfirmDeliveryCommandHandler handles the requester's delivery
// confirmation. An order awaiting confirmation completes; an order still
// in transit is confirmed directly to Delivered. Any other status fails
// through the transition table.
type ConfirmDeliveryCommandHandler struct {
	uowFactory CapacityUoWFactory
	notifier   ports.CapacityNotifier
}

// NewConfirmDeliveryCommandHandler creates a handler for delivery confirmation.
func NewConfirmDeliveryCommandHandler(
	uowFactory CapacityUoWFactory,
	notifier ports.CapacityNotifier,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the confirmation command.
// Closes every delivered leg together with the order; legs that have not
// reported delivery yet close through their own lifecycle.
func (h *ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) error {
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

	if err = aggregate.TransitionTo(confirmationTarget(aggregate.Status()), cmd.Role()); err != nil {
		return err
	}

	legs, err := uow.AssignmentRepository().GetAllByOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	for _, leg := range legs {
		if leg.Status() != assignment.StatusDelivered {
			continue
		}
		if err = leg.TransitionTo(assignment.StatusCompleted, cmd.Role()); err != nil {
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

func confirmationTarget(current order.Status) order.Status {
	if current == order.StatusInTransit {
		return order.StatusDelivered
	}
	return order.StatusCompleted
}
