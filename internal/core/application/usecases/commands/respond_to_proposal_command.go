package commands

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	ErrRespondToProposalCommandIsNotConstructed = errors.New(
		"RespondToProposalCommand must be created via NewRespondToProposalCommand constructor",
	)
)

// ProposalDecision names the three ways a proposal can be answered.
type ProposalDecision string

const (
	DecisionAccept  ProposalDecision = "Accept"
	DecisionReject  ProposalDecision = "Reject"
	DecisionCounter ProposalDecision = "Counter"
)

// RespondToProposalCommand represents answering an open price proposal.
// The requester answers a pending offer; the fulfiller answers a counter.
// Accepting claims a slot at the agreed price in the same transaction, so
// an accept carries the assignment identifier and the pickup and delivery
// windows the leg will run under.
type RespondToProposalCommand struct { //nolint:recvcheck //using for validation
	proposalID   kernel.UUID
	role         kernel.Role
	decision     ProposalDecision
	counterPrice kernel.Money
	assignmentID kernel.UUID
	pickup       assignment.Window
	delivery     assignment.Window

	guard guard.ConstructorGuard
}

// NewRespondToProposalCommand creates a command answering a proposal with
// a rejection or a counter offer. Accepting uses NewAcceptProposalCommand
// because it needs the assignment details.
func NewRespondToProposalCommand(
	proposalID kernel.UUID,
	role kernel.Role,
	decision ProposalDecision,
	counterPrice kernel.Money,
) (RespondToProposalCommand, error) {
	if err := errors.Join(
		proposalID.Validate(),
		role.Validate(),
	); err != nil {
		return RespondToProposalCommand{}, err
	}

	switch decision {
	case DecisionReject:
	case DecisionCounter:
		if counterPrice.IsZero() {
			return RespondToProposalCommand{}, errs.NewValueIsRequiredError("counter price")
		}
	case DecisionAccept:
		return RespondToProposalCommand{}, errs.NewValueIsInvalidError("decision")
	default:
		return RespondToProposalCommand{}, errs.NewValueIsInvalidError("decision")
	}

	return RespondToProposalCommand{
		proposalID:   proposalID,
		role:         role,
		decision:     decision,
		counterPrice: counterPrice,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// NewAcceptProposalCommand creates a command accepting a proposal. The
// accepted fulfiller's assignment is created under assignmentID with the
// given windows.
func NewAcceptProposalCommand(
	proposalID kernel.UUID,
	role kernel.Role,
	assignmentID kernel.UUID,
	pickupFrom, pickupTo time.Time,
	deliveryFrom, deliveryTo time.Time,
) (RespondToProposalCommand, error) {
	if err := errors.Join(
		proposalID.Validate(),
		role.Validate(),
		assignmentID.Validate(),
	); err != nil {
		return RespondToProposalCommand{}, err
	}

	pickup, err := assignment.NewWindow(pickupFrom, pickupTo)
	if err != nil {
		return RespondToProposalCommand{}, err
	}

	delivery, err := assignment.NewWindow(deliveryFrom, deliveryTo)
	if err != nil {
		return RespondToProposalCommand{}, err
	}

	return RespondToProposalCommand{
		proposalID:   proposalID,
		role:         role,
		decision:     DecisionAccept,
		assignmentID: assignmentID,
		pickup:       pickup,
		delivery:     delivery,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through a constructor.
func (c RespondToProposalCommand) Validate() error {
	return c.guard.Validate(ErrRespondToProposalCommandIsNotConstructed)
}

// ProposalID returns the proposal being answered.
func (c RespondToProposalCommand) ProposalID() kernel.UUID {
	return c.proposalID
}

// Role returns who answers.
func (c RespondToProposalCommand) Role() kernel.Role {
	return c.role
}

// Decision returns the answer.
func (c RespondToProposalCommand) Decision() ProposalDecision {
	return c.decision
}

// CounterPrice returns the counter offer. Meaningful only for counters.
func (c RespondToProposalCommand) CounterPrice() kernel.Money {
	return c.counterPrice
}

// AssignmentID returns the identifier the accepted leg is stored under.
// Meaningful only for accepts.
func (c RespondToProposalCommand) AssignmentID() kernel.UUID {
	return c.assignmentID
}

// Pickup returns the accepted leg's pickup window.
func (c RespondToProposalCommand) Pickup() assignment.Window {
	return c.pickup
}

// Delivery returns the accepted leg's delivery window.
func (c RespondToProposalCommand) Delivery() assignment.Window {
	return c.delivery
}
