package commands

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/ports"
)

// SweepConfirmationsCommandHandler auto-confirms deliveries the requester
// never acknowledged. It acts under the synthetic sweep role, whose only
// legal move is closing out a delivery that waited past the timeout.
type SweepConfirmationsCommandHandler struct {
	uowFactory CapacityUoWFactory
	notifier   ports.CapacityNotifier
}

// NewSweepConfirmationsCommandHandler creates a handler for the timeout sweep.
func NewSweepConfirmationsCommandHandler(
	uowFactory CapacityUoWFactory,
	notifier ports.CapacityNotifier,
) SweepConfirmationsCommandHandler {
	return SweepConfirmationsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes one sweep run. Each order is swept in its own
// transaction so one bad row cannot stall the rest; the count of swept
// orders is returned together with any per-order failures joined.
func (h *SweepConfirmationsCommandHandler) Handle(
	ctx context.Context,
	cmd SweepConfirmationsCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	expired, err := h.findExpired(ctx, cmd)
	if err != nil {
		return 0, err
	}

	swept := 0
	var failures []error
	for _, aggregate := range expired {
		if err = h.sweepOne(ctx, aggregate.ID()); err != nil {
			failures = append(failures, err)
			continue
		}
		swept++
		_ = h.notifier.NotifyStatusChanged(ctx, aggregate.ID(), order.StatusDelivered)
	}

	return swept, errors.Join(failures...)
}

func (h *SweepConfirmationsCommandHandler) findExpired(
	ctx context.Context,
	cmd SweepConfirmationsCommand,
) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	expired, err := uow.OrderRepository().GetAllPendingConfirmationBefore(ctx, cmd.Cutoff())
	if err != nil {
		return nil, err
	}

	return expired, uow.Commit(ctx)
}

// The order is re-read under its row lock inside the per-order
// transaction; a requester confirming concurrently wins and the sweep
// skips the order through the transition check.
func (h *SweepConfirmationsCommandHandler) sweepOne(ctx context.Context, orderID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	if err != nil {
		return err
	}

	if err = aggregate.TransitionTo(order.StatusDelivered, kernel.RoleSweep); err != nil {
		return err
	}

	legs, err := uow.AssignmentRepository().GetAllByOrder(ctx, orderID)
	if err != nil {
		return err
	}

	for _, leg := range legs {
		if leg.Status() != assignment.StatusDelivered {
			continue
		}
		if err = leg.TransitionTo(assignment.StatusCompleted, kernel.RoleSweep); err != nil {
			return err
		}
		if err = uow.AssignmentRepository().Update(ctx, leg); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
