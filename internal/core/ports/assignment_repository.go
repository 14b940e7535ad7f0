package ports

import (
	"context"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/kernel"
)

// AssignmentRepository defines the persistence contract for assignment
// aggregates. An assignment records one fulfiller occupying one truck slot
// on an order; at most one active assignment may exist per order and
// fulfiller pair.
type AssignmentRepository interface {
	// Add persists a new assignment. Returns order.ErrSlotUnavailable if
	// the fulfiller already holds an active assignment on the same order.
	Add(ctx context.Context, aggregate *assignment.Assignment) error

	// Update persists changes to an existing assignment.
	Update(ctx context.Context, aggregate *assignment.Assignment) error

	// Get retrieves an assignment by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error)

	// GetActive retrieves the active assignment held by the fulfiller on
	// the order. Assignments in Cancelled or Rejected status are not active.
	GetActive(ctx context.Context, orderID, fulfillerID kernel.UUID) (*assignment.Assignment, error)

	// GetAllByOrder retrieves every assignment recorded for the order,
	// active and released alike.
	GetAllByOrder(ctx context.Context, orderID kernel.UUID) ([]*assignment.Assignment, error)
}
