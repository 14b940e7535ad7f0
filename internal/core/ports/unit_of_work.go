package ports

import (
	"context"
)

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository instance bound to the current transaction.
	// Repository will use the transaction started by Begin().
	OrderRepository() OrderRepository

	// AssignmentRepository returns an AssignmentRepository instance bound to the current transaction.
	AssignmentRepository() AssignmentRepository

	// ProgressRepository returns a ProgressRepository instance bound to the current transaction.
	ProgressRepository() ProgressRepository

	// ProposalRepository returns a ProposalRepository instance bound to the current transaction.
	ProposalRepository() ProposalRepository
}
