package assignment

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrAssignmentIsNotConstructed = errors.New(
	"Assignment must be created via NewAssignment or RestoreAssignment",
)

// Window is the agreed time window for a pickup or delivery.
type Window struct {
	from time.Time
	to   time.Time
}

// NewWindow creates a time window. The end must be after the start.
func NewWindow(from, to time.Time) (Window, error) {
	if from.IsZero() || to.IsZero() {
		return Window{}, errs.NewValueIsRequiredError("window bounds")
	}
	if !to.After(from) {
		return Window{}, errs.NewValueIsInvalidErrorWithCause(
			"window",
			fmt.Errorf("end %s is not after start %s", to.Format(time.RFC3339), from.Format(time.RFC3339)),
		)
	}
	return Window{from: from, to: to}, nil
}

// From returns the window start.
func (w Window) From() time.Time { return w.from }

// To returns the window end.
func (w Window) To() time.Time { return w.to }

// Assignment binds one fulfiller to one slot of an order. It carries that
// fulfiller's own per-slot price; the order aggregate total is never
// stored here, so no read of an assignment can leak it.
type Assignment struct {
	id          kernel.UUID
	orderID     kernel.UUID
	fulfillerID kernel.UUID
	status      Status
	agreedPrice kernel.Money
	pickup      Window
	delivery    Window

	guard guard.ConstructorGuard
}

// NewAssignment creates an assignment for a freshly reserved slot.
// Reservation-created assignments start in Accepted: the fulfiller claimed
// the slot, so there is no pending offer to respond to.
func NewAssignment(
	id kernel.UUID,
	orderID kernel.UUID,
	fulfillerID kernel.UUID,
	agreedPrice kernel.Money,
	pickup Window,
	delivery Window,
) (*Assignment, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		fulfillerID.Validate(),
	); err != nil {
		return nil, err
	}

	return &Assignment{
		id:          id,
		orderID:     orderID,
		fulfillerID: fulfillerID,
		status:      StatusAccepted,
		agreedPrice: agreedPrice,
		pickup:      pickup,
		delivery:    delivery,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreAssignment reconstructs an assignment from persistence.
func RestoreAssignment(
	id kernel.UUID,
	orderID kernel.UUID,
	fulfillerID kernel.UUID,
	status Status,
	agreedPrice kernel.Money,
	pickup Window,
	delivery Window,
) (*Assignment, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		fulfillerID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Assignment{
		id:          id,
		orderID:     orderID,
		fulfillerID: fulfillerID,
		status:      status,
		agreedPrice: agreedPrice,
		pickup:      pickup,
		delivery:    delivery,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Assignment was created through a constructor.
func (a *Assignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

// ID returns the assignment's unique identifier.
func (a *Assignment) ID() kernel.UUID {
	return a.id
}

// OrderID returns the owning order's identifier.
func (a *Assignment) OrderID() kernel.UUID {
	return a.orderID
}

// FulfillerID returns the identifier of the fulfiller on this leg.
func (a *Assignment) FulfillerID() kernel.UUID {
	return a.fulfillerID
}

// Status returns the assignment's current leg status.
func (a *Assignment) Status() Status {
	return a.status
}

// AgreedPrice returns this fulfiller's own per-slot price. It is the only
// price an assignment knows about.
func (a *Assignment) AgreedPrice() kernel.Money {
	return a.agreedPrice
}

// Pickup returns the agreed pickup window.
func (a *Assignment) Pickup() Window {
	return a.pickup
}

// Delivery returns the agreed delivery window.
func (a *Assignment) Delivery() Window {
	return a.delivery
}

// IsActive reports whether the assignment still occupies a slot.
func (a *Assignment) IsActive() bool {
	return a.status.IsActive()
}

// TransitionTo moves the leg to a new status on behalf of a role, gated
// by the leg transition table.
func (a *Assignment) TransitionTo(to Status, role kernel.Role) error {
	if err := AssertLegTransition(a.status, to, role); err != nil {
		return err
	}

	a.status = to
	return nil
}

// Release transitions the assignment to Cancelled or Rejected when its
// slot is given back. Any other target status is refused. Assignments are
// never deleted; the terminal status is the audit trail.
func (a *Assignment) Release(to Status) error {
	if to != StatusCancelled && to != StatusRejected {
		return errs.NewValueIsInvalidErrorWithCause(
			"release status",
			fmt.Errorf("%s is not a release status", to),
		)
	}
	if a.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("assignment is already %s", a.status),
		)
	}

	a.status = to
	return nil
}
