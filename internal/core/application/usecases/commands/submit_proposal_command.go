package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrSubmitProposalCommandIsNotConstructed = errors.New(
		"SubmitProposalCommand must be created via NewSubmitProposalCommand constructor",
	)
)

// SubmitProposalCommand represents a fulfiller opening price negotiation
// on an order with an offer below or above the declared terms.
type SubmitProposalCommand struct { //nolint:recvcheck //using for validation
	proposalID   kernel.UUID
	orderID      kernel.UUID
	fulfillerID  kernel.UUID
	offeredPrice kernel.Money

	guard guard.ConstructorGuard
}

// NewSubmitProposalCommand creates a command to open price negotiation.
func NewSubmitProposalCommand(
	proposalID kernel.UUID,
	orderID kernel.UUID,
	fulfillerID kernel.UUID,
	offeredPrice kernel.Money,
) (SubmitProposalCommand, error) {
	if err := errors.Join(
		proposalID.Validate(),
		orderID.Validate(),
		fulfillerID.Validate(),
	); err != nil {
		return SubmitProposalCommand{}, err
	}

	return SubmitProposalCommand{
		proposalID:   proposalID,
		orderID:      orderID,
		fulfillerID:  fulfillerID,
		offeredPrice: offeredPrice,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitProposalCommand) Validate() error {
	return c.guard.Validate(ErrSubmitProposalCommandIsNotConstructed)
}

// ProposalID returns the identifier the proposal will be stored under.
func (c SubmitProposalCommand) ProposalID() kernel.UUID {
	return c.proposalID
}

// OrderID returns the order being negotiated.
func (c SubmitProposalCommand) OrderID() kernel.UUID {
	return c.orderID
}

// FulfillerID returns the fulfiller making the offer.
func (c SubmitProposalCommand) FulfillerID() kernel.UUID {
	return c.fulfillerID
}

// OfferedPrice returns the offered per-slot price.
func (c SubmitProposalCommand) OfferedPrice() kernel.Money {
	return c.offeredPrice
}
