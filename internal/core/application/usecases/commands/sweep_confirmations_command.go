package commands

import (
	"errors"
	"time"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	ErrSweepConfirmationsCommandIsNotConstructed = errors.New(
		"SweepConfirmationsCommand must be created via NewSweepConfirmationsCommand constructor",
	)
)

// SweepConfirmationsCommand represents one run of the confirmation
// timeout sweep: orders that have waited for the requester's confirmation
// since before the cutoff are confirmed automatically.
type SweepConfirmationsCommand struct { //nolint:recvcheck //using for validation
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewSweepConfirmationsCommand creates a sweep command. The cutoff is the
// newest moment an unconfirmed delivery may date from and still be swept;
// the caller computes it from the configured confirmation timeout.
func NewSweepConfirmationsCommand(cutoff time.Time) (SweepConfirmationsCommand, error) {
	if cutoff.IsZero() {
		return SweepConfirmationsCommand{}, errs.NewValueIsRequiredError("cutoff")
	}

	return SweepConfirmationsCommand{
		cutoff: cutoff,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SweepConfirmationsCommand) Validate() error {
	return c.guard.Validate(ErrSweepConfirmationsCommandIsNotConstructed)
}

// Cutoff returns the sweep cutoff moment.
func (c SweepConfirmationsCommand) Cutoff() time.Time {
	return c.cutoff
}
