package commands

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/proposal"
)

// SubmitProposalCommandHandler handles new price proposals.
// The first proposal on an open order moves it into negotiation.
type SubmitProposalCommandHandler struct {
	uowFactory ProposalUoWFactory
}

// NewSubmitProposalCommandHandler creates a handler for proposal submission.
func NewSubmitProposalCommandHandler(uowFactory ProposalUoWFactory) SubmitProposalCommandHandler {
	return SubmitProposalCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the proposal submission command.
func (h *SubmitProposalCommandHandler) Handle(ctx context.Context, cmd SubmitProposalCommand) error {
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

	if aggregate.Status() == order.StatusOpen {
		if err = aggregate.TransitionTo(order.StatusInNegotiation, kernel.RoleFulfiller); err != nil {
			return err
		}
		if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
			return err
		}
	} else if aggregate.Status() != order.StatusInNegotiation {
		return order.AssertTransition(aggregate.Status(), order.StatusInNegotiation, kernel.RoleFulfiller)
	}

	offer, err := proposal.NewProposal(
		cmd.ProposalID(),
		cmd.OrderID(),
		cmd.FulfillerID(),
		cmd.OfferedPrice(),
	)
	if err != nil {
		return err
	}

	if err = uow.ProposalRepository().Add(ctx, offer); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
