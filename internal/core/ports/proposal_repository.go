package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/proposal"
)

// ProposalRepository defines the persistence contract for price proposals
// exchanged during order negotiation.
type ProposalRepository interface {
	// Add persists a new proposal.
	Add(ctx context.Context, aggregate *proposal.Proposal) error

	// Update persists changes to an existing proposal.
	Update(ctx context.Context, aggregate *proposal.Proposal) error

	// Get retrieves a proposal by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*proposal.Proposal, error)

	// GetAllOpenByOrder retrieves the proposals on the order that are
	// still awaiting a decision from either side.
	GetAllOpenByOrder(ctx context.Context, orderID kernel.UUID) ([]*proposal.Proposal, error)
}
