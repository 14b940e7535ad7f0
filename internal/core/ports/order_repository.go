// Package ports defines repository interfaces for the freight domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their status and capacity state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order aggregate and locks its row for the
	// remainder of the current transaction. Concurrent callers block until
	// the lock is released, which serializes capacity changes on the order.
	// Must only be called inside an active unit of work transaction.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllOpen retrieves all orders that still accept slot reservations.
	// Used for the public order board.
	GetAllOpen(ctx context.Context) ([]*order.Order, error)

	// GetAllPendingConfirmationBefore retrieves orders awaiting delivery
	// confirmation whose last change happened before the cutoff. Used by
	// the confirmation timeout sweep.
	GetAllPendingConfirmationBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
