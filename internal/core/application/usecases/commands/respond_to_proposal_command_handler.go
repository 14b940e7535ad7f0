package commands

import (
	"context"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/proposal"
	"freight/internal/core/ports"
)

// RespondToProposalCommandHandler handles answers to open proposals.
//
// Accepting reserves a slot at the agreed price inside the same
// transaction that closes the proposal, under the order row lock, so a
// negotiated slot cannot be lost to a concurrent direct reservation.
type RespondToProposalCommandHandler struct {
	uowFactory ProposalUoWFactory
	notifier   ports.CapacityNotifier
}

// NewRespondToProposalCommandHandler creates a handler for proposal answers.
func NewRespondToProposalCommandHandler(
	uowFactory ProposalUoWFactory,
	notifier ports.CapacityNotifier,
) RespondToProposalCommandHandler {
	return RespondToProposalCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the answer.
// Rejecting the last open proposal returns the order from negotiation to
// Open so other fulfillers see it again.
func (h *RespondToProposalCommandHandler) Handle(ctx context.Context, cmd RespondToProposalCommand) error {
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

	offer, err := uow.ProposalRepository().Get(ctx, cmd.ProposalID())
	if err != nil {
		return err
	}

	var reserved *order.Order

	switch cmd.Decision() {
	case DecisionCounter:
		err = offer.Counter(cmd.CounterPrice(), cmd.Role())
	case DecisionReject:
		if err = offer.Reject(cmd.Role()); err == nil {
			err = h.reopenIfLastProposal(ctx, uow, offer, cmd)
		}
	case DecisionAccept:
		if err = offer.Accept(cmd.Role()); err == nil {
			reserved, err = h.reserve(ctx, uow, offer, cmd)
		}
	}
	if err != nil {
		return err
	}

	if err = uow.ProposalRepository().Update(ctx, offer); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if reserved != nil {
		_ = h.notifier.NotifySlotReserved(ctx, reserved.ID(), reserved.AcceptedSlots(), reserved.RequiredSlots())
	}

	return nil
}

func (h *RespondToProposalCommandHandler) reserve(
	ctx context.Context,
	uow ProposalUoW,
	offer *proposal.Proposal,
	cmd RespondToProposalCommand,
) (*order.Order, error) {
	aggregate, err := uow.OrderRepository().GetForUpdate(ctx, offer.OrderID())
	if err != nil {
		return nil, err
	}

	if err = aggregate.ReserveSlot(); err != nil {
		return nil, err
	}

	leg, err := assignment.NewAssignment(
		cmd.AssignmentID(),
		offer.OrderID(),
		offer.FulfillerID(),
		offer.AgreedPrice(),
		cmd.Pickup(),
		cmd.Delivery(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.AssignmentRepository().Add(ctx, leg); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return nil, err
	}

	return aggregate, nil
}

func (h *RespondToProposalCommandHandler) reopenIfLastProposal(
	ctx context.Context,
	uow ProposalUoW,
	offer *proposal.Proposal,
	cmd RespondToProposalCommand,
) error {
	remaining, err := uow.ProposalRepository().GetAllOpenByOrder(ctx, offer.OrderID())
	if err != nil {
		return err
	}

	// The rejected proposal is still stored as open; it is the only one
	// left when the slice holds just it.
	for _, open := range remaining {
		if !open.ID().IsEqual(offer.ID()) {
			return nil
		}
	}

	aggregate, err := uow.OrderRepository().Get(ctx, offer.OrderID())
	if err != nil {
		return err
	}

	if aggregate.Status() != order.StatusInNegotiation {
		return nil
	}

	if err = aggregate.TransitionTo(order.StatusOpen, cmd.Role()); err != nil {
		return err
	}

	return uow.OrderRepository().Update(ctx, aggregate)
}
