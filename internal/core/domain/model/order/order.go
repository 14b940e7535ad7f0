package order

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrSlotUnavailable indicates that a slot reservation could not be
	// honored: capacity is exhausted or the order no longer accepts
	// reservations. Callers treat it as "already taken" and refresh
	// availability; it is recoverable, not a defect.
	ErrSlotUnavailable = errors.New("slot unavailable")
)

// maxRequiredSlots bounds how many trucks a single order may request.
const maxRequiredSlots = 100

// Order is the aggregate root for a shipment request. It owns the capacity
// ledger counters and the order-level status, and is the only place where
// either may change.
//
// Invariants, enforced by every constructor and mutator:
//   - 0 <= acceptedSlots <= requiredSlots
//   - an accepted-family status requires acceptedSlots >= 1
//   - StatusOpen requires acceptedSlots < requiredSlots
//
// Order is not safe for concurrent mutation; concurrent slot claims are
// serialized by the storage layer (row lock on the order row), never by
// an in-process mutex.
type Order struct {
	id            kernel.UUID
	requesterID   kernel.UUID
	status        Status
	requiredSlots int
	acceptedSlots int
	pricing       PricingTerms

	guard guard.ConstructorGuard
}

// NewOrder creates an open order with no accepted slots.
// The pricing terms must be constructed and requiredSlots must be at
// least 1.
func NewOrder(
	id kernel.UUID,
	requesterID kernel.UUID,
	pricing PricingTerms,
	requiredSlots int,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		requesterID.Validate(),
		pricing.Validate(),
	); err != nil {
		return nil, err
	}

	if requiredSlots < 1 || requiredSlots > maxRequiredSlots {
		return nil, errs.NewValueIsOutOfRangeError("required slots", requiredSlots, 1, maxRequiredSlots)
	}

	return &Order{
		id:            id,
		requesterID:   requesterID,
		status:        StatusOpen,
		requiredSlots: requiredSlots,
		acceptedSlots: 0,
		pricing:       pricing,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// RestoreOrder reconstructs an order from persistence. All capacity and
// status invariants are re-checked so that corrupt rows never become live
// aggregates.
func RestoreOrder(
	id kernel.UUID,
	requesterID kernel.UUID,
	pricing PricingTerms,
	requiredSlots int,
	acceptedSlots int,
	status Status,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		requesterID.Validate(),
		pricing.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if requiredSlots < 1 || requiredSlots > maxRequiredSlots {
		return nil, errs.NewValueIsOutOfRangeError("required slots", requiredSlots, 1, maxRequiredSlots)
	}
	if acceptedSlots < 0 || acceptedSlots > requiredSlots {
		return nil, errs.NewValueIsOutOfRangeError("accepted slots", acceptedSlots, 0, requiredSlots)
	}
	if status.IsAcceptedFamily() && acceptedSlots < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s requires at least one accepted slot", status),
		)
	}
	if status == StatusOpen && acceptedSlots >= requiredSlots {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("Open requires free capacity, got %d of %d slots accepted", acceptedSlots, requiredSlots),
		)
	}

	return &Order{
		id:            id,
		requesterID:   requesterID,
		status:        status,
		requiredSlots: requiredSlots,
		acceptedSlots: acceptedSlots,
		pricing:       pricing,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// RequesterID returns the identifier of the actor who created the order.
func (o *Order) RequesterID() kernel.UUID {
	return o.requesterID
}

// Status returns the current order-level status.
func (o *Order) Status() Status {
	return o.status
}

// RequiredSlots returns how many truck slots the shipment needs.
func (o *Order) RequiredSlots() int {
	return o.requiredSlots
}

// AcceptedSlots returns how many slots are currently claimed.
func (o *Order) AcceptedSlots() int {
	return o.acceptedSlots
}

// Pricing returns the order's pricing terms.
func (o *Order) Pricing() PricingTerms {
	return o.pricing
}

// HasFreeSlots reports whether at least one slot is unclaimed.
func (o *Order) HasFreeSlots() bool {
	return o.acceptedSlots < o.requiredSlots
}

// ReserveSlot claims one slot on the order. It fails with
// ErrSlotUnavailable when the order no longer accepts reservations or has
// no free capacity. When the last slot is claimed the order leaves Open
// and enters Accepted automatically.
//
// The caller must hold the order row lock for the enclosing transaction;
// the check-and-increment here is only atomic relative to concurrent
// reservations because the storage layer serializes access to the row.
func (o *Order) ReserveSlot() error {
	if !o.status.AcceptsReservations() {
		return fmt.Errorf("%w: order is %s", ErrSlotUnavailable, o.status)
	}
	if !o.HasFreeSlots() {
		return fmt.Errorf("%w: all %d slots are taken", ErrSlotUnavailable, o.requiredSlots)
	}

	o.acceptedSlots++
	if o.acceptedSlots == o.requiredSlots {
		o.status = StatusAccepted
	}

	return nil
}

// ReleaseSlot gives one claimed slot back. The order reopens to Open only
// when it is still in the pre-pickup stage and the caller confirms no
// accepted leg has moved past Accepted (reopen); once any leg has
// progressed, released capacity never reopens the order.
func (o *Order) ReleaseSlot(reopen bool) error {
	if o.acceptedSlots == 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"accepted slots",
			errors.New("no accepted slots to release"),
		)
	}

	o.acceptedSlots--
	if reopen && o.status.IsPrePickup() && o.HasFreeSlots() {
		o.status = StatusOpen
	}

	return nil
}

// TransitionTo moves the order to a new status on behalf of a role. The
// transition guard is consulted immediately before the mutation; any
// UI-side enablement is advisory only. Capacity invariants are re-checked
// so a transition can never smuggle the order into an accepted-family
// status without accepted slots.
func (o *Order) TransitionTo(to Status, role kernel.Role) error {
	if err := AssertTransition(o.status, to, role); err != nil {
		return err
	}

	if to.IsAcceptedFamily() && o.acceptedSlots < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			errors.New("the target status requires at least one accepted slot"),
		)
	}

	o.status = to
	return nil
}
