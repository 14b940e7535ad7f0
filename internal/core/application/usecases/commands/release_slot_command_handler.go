package commands

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// ReleaseSlotCommandHandler handles giving a claimed slot back.
//
// Releasing decrements the capacity ledger under the same row lock that
// reservations take. The order reopens only while every remaining leg is
// still pre-pickup; once any leg has started moving, freed capacity stays
// closed to new fulfillers.
type ReleaseSlotCommandHandler struct {
	uowFactory CapacityUoWFactory
	notifier   ports.CapacityNotifier
}

// NewReleaseSlotCommandHandler creates a handler for slot releases.
func NewReleaseSlotCommandHandler(
	uowFactory CapacityUoWFactory,
	notifier ports.CapacityNotifier,
) ReleaseSlotCommandHandler {
	return ReleaseSlotCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the slot release command.
// Marks the fulfiller's assignment as released, decrements the accepted
// slot counter and reopens the order when no leg has moved yet.
func (h *ReleaseSlotCommandHandler) Handle(ctx context.Context, cmd ReleaseSlotCommand) error {
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

	leg, err := uow.AssignmentRepository().GetActive(ctx, cmd.OrderID(), cmd.FulfillerID())
	if err != nil {
		return err
	}

	if leg.Status().HasMovedPastAccepted() {
		return errs.NewValueIsInvalidErrorWithCause(
			"assignment",
			errors.New("a leg that started moving cannot be released"),
		)
	}

	if err = leg.Release(releaseStatusFor(cmd.Role())); err != nil {
		return err
	}

	siblings, err := uow.AssignmentRepository().GetAllByOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	reopen := true
	for _, sibling := range siblings {
		if sibling.Status().HasMovedPastAccepted() {
			reopen = false
			break
		}
	}

	if err = aggregate.ReleaseSlot(reopen); err != nil {
		return err
	}

	if err = uow.AssignmentRepository().Update(ctx, leg); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.notifier.NotifySlotReleased(ctx, aggregate.ID(), aggregate.AcceptedSlots(), aggregate.RequiredSlots())

	return nil
}

// A fulfiller withdrawing marks the leg Cancelled; a requester or admin
// removing a fulfiller marks it Rejected.
func releaseStatusFor(role kernel.Role) assignment.Status {
	if role == kernel.RoleFulfiller {
		return assignment.StatusCancelled
	}
	return assignment.StatusRejected
}
