// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"freight/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// AssignmentRepoFactory provides access to assignment repository within a transaction.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// ProgressRepoFactory provides access to progress repository within a transaction.
	ProgressRepoFactory interface {
		ProgressRepository() ports.ProgressRepository
	}

	// ProposalRepoFactory provides access to proposal repository within a transaction.
	ProposalRepoFactory interface {
		ProposalRepository() ports.ProposalRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used when commands only modify order aggregates.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CapacityUoW manages transactions that change the slot ledger.
	// Slot reservations and releases touch the order and its assignments
	// together, so both repositories share one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
	//   // ... claim the slot, record the assignment
	//
	//   err = uow.Commit(ctx)
	CapacityUoW interface {
		TxManager
		OrderRepoFactory
		AssignmentRepoFactory
	}

	// CapacityUoWFactory creates new capacity unit of work instances.
	CapacityUoWFactory interface {
		Create() CapacityUoW
	}

	// ProgressUoW manages transactions for leg progress updates.
	ProgressUoW interface {
		TxManager
		OrderRepoFactory
		AssignmentRepoFactory
		ProgressRepoFactory
	}

	// ProgressUoWFactory creates new progress unit of work instances.
	ProgressUoWFactory interface {
		Create() ProgressUoW
	}

	// ProposalUoW manages transactions for the negotiation workflow.
	// Accepting a proposal claims a slot in the same transaction, so the
	// order and assignment repositories ride along.
	ProposalUoW interface {
		TxManager
		OrderRepoFactory
		AssignmentRepoFactory
		ProposalRepoFactory
	}

	// ProposalUoWFactory creates new proposal unit of work instances.
	ProposalUoWFactory interface {
		Create() ProposalUoW
	}
)
