package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/progress"
)

// ProgressRepository defines the persistence contract for leg progress
// records. At most one record exists per order and fulfiller pair; the
// record is created lazily on the first movement update and overwritten
// by later ones.
type ProgressRepository interface {
	// Upsert persists the progress record, inserting it on the first
	// update and replacing the stored status afterwards.
	Upsert(ctx context.Context, record *progress.Progress) error

	// Get retrieves the progress record for the order and fulfiller pair.
	// Returns errs.ObjectNotFoundError when no update has been posted yet.
	Get(ctx context.Context, orderID, fulfillerID kernel.UUID) (*progress.Progress, error)
}
