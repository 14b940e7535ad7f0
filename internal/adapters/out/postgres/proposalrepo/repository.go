package proposalrepo

import (
	"context"
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/proposal"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProposalRepository implements ProposalRepository using GORM.
type GormProposalRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormProposalRepository creates a new GORM proposal repository.
func NewGormProposalRepository(db *gorm.DB, tracker aggregateTracker) *GormProposalRepository {
	return &GormProposalRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add persists a new proposal.
func (r *GormProposalRepository) Add(ctx context.Context, offer *proposal.Proposal) error {
	if err := offer.Validate(); err != nil {
		return err
	}

	dto := fromDomain(offer)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(offer.ID(), offer)
	return nil
}

// Update persists changes to an existing proposal.
func (r *GormProposalRepository) Update(ctx context.Context, offer *proposal.Proposal) error {
	if err := offer.Validate(); err != nil {
		return err
	}

	dto := fromDomain(offer)
	result := r.db.WithContext(ctx).
		Model(&ProposalDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("proposalID", offer.ID().String())
	}

	r.tracker.TrackAggregate(offer.ID(), offer)
	return nil
}

// Get retrieves a proposal by its unique identifier.
func (r *GormProposalRepository) Get(ctx context.Context, id kernel.UUID) (*proposal.Proposal, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProposalDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("proposalID", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllOpenByOrder retrieves all proposals on the order that still await a
// response from either party.
func (r *GormProposalRepository) GetAllOpenByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*proposal.Proposal, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ProposalDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND status IN (?, ?)",
			orderID.Bytes(), int(proposal.StatusPending), int(proposal.StatusCounterProposed)).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	offers := make([]*proposal.Proposal, 0, len(dtos))
	for _, dto := range dtos {
		offer, err := toDomain(dto)
		if err != nil {
			return nil, fmt.Errorf("restore proposal %s: %w", dto.ID, err)
		}
		offers = append(offers, offer)
	}

	return offers, nil
}
