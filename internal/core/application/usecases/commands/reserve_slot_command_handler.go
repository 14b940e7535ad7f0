package commands

import (
	"context"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
)

// ReserveSlotCommandHandler handles atomic slot reservation.
//
// The order row is locked for the whole transaction, so the availability
// check and the counter increment cannot interleave with a concurrent
// reservation: of N fulfillers racing for the last slot, exactly one
// commits and the rest receive order.ErrSlotUnavailable.
type ReserveSlotCommandHandler struct {
	uowFactory CapacityUoWFactory
	notifier   ports.CapacityNotifier
}

// NewReserveSlotCommandHandler creates a handler for slot reservations.
func NewReserveSlotCommandHandler(
	uowFactory CapacityUoWFactory,
	notifier ports.CapacityNotifier,
) ReserveSlotCommandHandler {
	return ReserveSlotCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the slot reservation command.
// Claims one slot on the order, records the fulfiller's assignment at the
// declared per-slot price, and flips the order to Accepted when the last
// slot fills. The whole sequence commits or rolls back as one unit.
func (h *ReserveSlotCommandHandler) Handle(ctx context.Context, cmd ReserveSlotCommand) error {
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

	if err = aggregate.ReserveSlot(); err != nil {
		return err
	}

	leg, err := assignment.NewAssignment(
		cmd.AssignmentID(),
		cmd.OrderID(),
		cmd.FulfillerID(),
		services.PerSlotPrice(aggregate.Pricing()),
		cmd.Pickup(),
		cmd.Delivery(),
	)
	if err != nil {
		return err
	}

	if err = uow.AssignmentRepository().Add(ctx, leg); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// Notification is best effort; the reservation already committed.
	_ = h.notifier.NotifySlotReserved(ctx, aggregate.ID(), aggregate.AcceptedSlots(), aggregate.RequiredSlots())

	return nil
}
