// Package proposal contains the Proposal aggregate: a fulfiller's price
// and terms offer against an open order.
//
// A proposal has its own small lifecycle (Pending, CounterProposed,
// Accepted, Rejected). Accepting one triggers a slot reservation and the
// creation of an Assignment in the same transaction; the proposal itself
// carries only the negotiated per-slot price.
package proposal

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrProposalIsNotConstructed = errors.New(
	"Proposal must be created via NewProposal or RestoreProposal",
)

// ErrForbiddenForRole indicates the response exists in the proposal
// lifecycle but the acting role may not give it. It is an authorization
// failure and is never silently downgraded.
var ErrForbiddenForRole = errors.New("proposal response is forbidden for role")

// Status represents the lifecycle state of a proposal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending is a fresh offer awaiting the requester's response.
	StatusPending

	// StatusCounterProposed is a requester counter awaiting the
	// fulfiller's response.
	StatusCounterProposed

	// StatusAccepted means the offer was agreed. Terminal.
	StatusAccepted

	// StatusRejected means the offer was declined. Terminal.
	StatusRejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:         "Unknown",
		StatusPending:         "Pending",
		StatusCounterProposed: "CounterProposed",
		StatusAccepted:        "Accepted",
		StatusRejected:        "Rejected",
	}
}

// String returns the internal code name of the proposal status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate rejects StatusUnknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid proposal status", s),
		)
	}
	return nil
}

// IsTerminal reports whether the proposal permits no further responses.
func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Proposal is a fulfiller's offer to take one slot of an order at a
// price. The price under negotiation is always per slot.
type Proposal struct {
	id           kernel.UUID
	orderID      kernel.UUID
	fulfillerID  kernel.UUID
	status       Status
	offeredPrice kernel.Money
	counterPrice *kernel.Money

	guard guard.ConstructorGuard
}

// NewProposal creates a pending offer from a fulfiller.
func NewProposal(
	id kernel.UUID,
	orderID kernel.UUID,
	fulfillerID kernel.UUID,
	offeredPrice kernel.Money,
) (*Proposal, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		fulfillerID.Validate(),
	); err != nil {
		return nil, err
	}
	if offeredPrice.IsZero() {
		return nil, errs.NewValueIsRequiredError("offered price")
	}

	return &Proposal{
		id:           id,
		orderID:      orderID,
		fulfillerID:  fulfillerID,
		status:       StatusPending,
		offeredPrice: offeredPrice,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// RestoreProposal reconstructs a proposal from persistence.
func RestoreProposal(
	id kernel.UUID,
	orderID kernel.UUID,
	fulfillerID kernel.UUID,
	status Status,
	offeredPrice kernel.Money,
	counterPrice *kernel.Money,
) (*Proposal, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		fulfillerID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Proposal{
		id:           id,
		orderID:      orderID,
		fulfillerID:  fulfillerID,
		status:       status,
		offeredPrice: offeredPrice,
		counterPrice: counterPrice,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Proposal was created through a constructor.
func (p *Proposal) Validate() error {
	if p == nil {
		return ErrProposalIsNotConstructed
	}
	return p.guard.Validate(ErrProposalIsNotConstructed)
}

// ID returns the proposal's unique identifier.
func (p *Proposal) ID() kernel.UUID {
	return p.id
}

// OrderID returns the order the proposal targets.
func (p *Proposal) OrderID() kernel.UUID {
	return p.orderID
}

// FulfillerID returns the offering fulfiller.
func (p *Proposal) FulfillerID() kernel.UUID {
	return p.fulfillerID
}

// Status returns the proposal's current status.
func (p *Proposal) Status() Status {
	return p.status
}

// OfferedPrice returns the fulfiller's original per-slot offer.
func (p *Proposal) OfferedPrice() kernel.Money {
	return p.offeredPrice
}

// CounterPrice returns the requester's counter price, or nil when the
// proposal was never countered.
func (p *Proposal) CounterPrice() *kernel.Money {
	return p.counterPrice
}

// AgreedPrice returns the price in force: the counter when one was made,
// the original offer otherwise. Only meaningful once the proposal is
// accepted.
func (p *Proposal) AgreedPrice() kernel.Money {
	if p.counterPrice != nil {
		return *p.counterPrice
	}
	return p.offeredPrice
}

// assertResponder checks whose table the offer is on. A pending offer
// awaits the requester, a countered offer awaits the fulfiller; a
// terminal proposal awaits no one.
func (p *Proposal) assertResponder(role kernel.Role) error {
	switch p.status {
	case StatusPending:
		if role != kernel.RoleRequester {
			return fmt.Errorf("%w: a pending proposal awaits the requester, got %s",
				ErrForbiddenForRole, role)
		}
	case StatusCounterProposed:
		if role != kernel.RoleFulfiller {
			return fmt.Errorf("%w: a countered proposal awaits the fulfiller, got %s",
				ErrForbiddenForRole, role)
		}
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			errors.New("the proposal permits no further responses"),
		)
	}
	return nil
}

// Counter records the requester's counter offer. Only a pending proposal
// may be countered, and only by the requester.
func (p *Proposal) Counter(price kernel.Money, role kernel.Role) error {
	if p.status != StatusPending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			errors.New("only a pending proposal can be countered"),
		)
	}
	if err := p.assertResponder(role); err != nil {
		return err
	}
	if price.IsZero() {
		return errs.NewValueIsRequiredError("counter price")
	}

	p.status = StatusCounterProposed
	p.counterPrice = &price
	return nil
}

// Accept closes the negotiation in agreement. A pending offer is accepted
// by the requester; a countered offer is accepted by the fulfiller.
func (p *Proposal) Accept(role kernel.Role) error {
	if err := p.assertResponder(role); err != nil {
		return err
	}

	p.status = StatusAccepted
	return nil
}

// Reject closes the negotiation in disagreement. Either side may reject
// the offer currently on their table.
func (p *Proposal) Reject(role kernel.Role) error {
	if err := p.assertResponder(role); err != nil {
		return err
	}

	p.status = StatusRejected
	return nil
}
