// Package progress contains the per-leg progress record: the fine-grained
// status of one (order, fulfiller) pair.
//
// Progress records are created lazily on the first post-acceptance
// movement of a leg. When a record exists it is authoritative over the
// assignment's own status for that pair; readers resolve the two through
// the services.ResolveLegStatus function. Updates move monotonically
// forward through the leg machine, except under an explicit
// administrative override. Copying terminal assignment statuses back onto
// progress records is a reconciliation job's business, not this package's.
package progress

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrProgressIsNotConstructed = errors.New(
	"Progress must be created via NewProgress or RestoreProgress",
)

// Progress is the authoritative fine-grained status of one fulfiller's
// leg. One record per (order, fulfiller) pair, upserted.
type Progress struct {
	orderID     kernel.UUID
	fulfillerID kernel.UUID
	status      assignment.Status
	updatedAt   time.Time

	guard guard.ConstructorGuard
}

// NewProgress creates the first progress record for a leg. The initial
// status must describe movement: a leg that has not moved past Accepted
// has no progress to record yet, and resolution falls back to the
// assignment.
func NewProgress(
	orderID kernel.UUID,
	fulfillerID kernel.UUID,
	status assignment.Status,
	at time.Time,
) (*Progress, error) {
	if err := errors.Join(
		orderID.Validate(),
		fulfillerID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if !status.HasMovedPastAccepted() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a movement status", status),
		)
	}

	return &Progress{
		orderID:     orderID,
		fulfillerID: fulfillerID,
		status:      status,
		updatedAt:   at,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreProgress reconstructs a progress record from persistence.
func RestoreProgress(
	orderID kernel.UUID,
	fulfillerID kernel.UUID,
	status assignment.Status,
	updatedAt time.Time,
) (*Progress, error) {
	if err := errors.Join(
		orderID.Validate(),
		fulfillerID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Progress{
		orderID:     orderID,
		fulfillerID: fulfillerID,
		status:      status,
		updatedAt:   updatedAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Progress was created through a constructor.
func (p *Progress) Validate() error {
	if p == nil {
		return ErrProgressIsNotConstructed
	}
	return p.guard.Validate(ErrProgressIsNotConstructed)
}

// OrderID returns the owning order's identifier.
func (p *Progress) OrderID() kernel.UUID {
	return p.orderID
}

// FulfillerID returns the fulfiller whose leg this record tracks.
func (p *Progress) FulfillerID() kernel.UUID {
	return p.fulfillerID
}

// Status returns the current leg status.
func (p *Progress) Status() assignment.Status {
	return p.status
}

// UpdatedAt returns when the record last changed.
func (p *Progress) UpdatedAt() time.Time {
	return p.updatedAt
}

// Advance moves the leg status forward on behalf of a role, gated by the
// leg transition table. Forward-only: the table has no backward edges, so
// monotonicity follows from transition legality.
func (p *Progress) Advance(to assignment.Status, role kernel.Role, at time.Time) error {
	if err := assignment.AssertLegTransition(p.status, to, role); err != nil {
		return err
	}

	p.status = to
	p.updatedAt = at
	return nil
}

// Override sets the leg status directly, bypassing the transition table.
// This is the explicit administrative escape hatch for correcting a
// mis-reported leg; it accepts any valid status, including backward moves.
func (p *Progress) Override(to assignment.Status, at time.Time) error {
	if err := to.Validate(); err != nil {
		return err
	}

	p.status = to
	p.updatedAt = at
	return nil
}
