// Package proposalrepo persists price negotiation proposals.
package proposalrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/proposal"

	"github.com/google/uuid"
)

// ProposalDTO represents the database structure for persisting proposals.
// CounterPrice is nullable; it is only set once the requester counters.
type ProposalDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;index"`
	FulfillerID  uuid.UUID `gorm:"type:uuid;index"`
	Status       int       `gorm:"index"`
	OfferedPrice int64
	CounterPrice *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the database table name for proposal entities.
func (ProposalDTO) TableName() string {
	return "proposals"
}

func fromDomain(offer *proposal.Proposal) ProposalDTO {
	dto := ProposalDTO{
		ID:           offer.ID().Bytes(),
		OrderID:      offer.OrderID().Bytes(),
		FulfillerID:  offer.FulfillerID().Bytes(),
		Status:       int(offer.Status()),
		OfferedPrice: offer.OfferedPrice().Amount(),
	}

	if counter := offer.CounterPrice(); counter != nil {
		amount := counter.Amount()
		dto.CounterPrice = &amount
	}

	return dto
}

func toDomain(dto ProposalDTO) (*proposal.Proposal, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	fulfillerID, err := kernel.UUIDFromBytes(dto.FulfillerID[:])
	if err != nil {
		return nil, err
	}

	offeredPrice, err := kernel.NewMoney(dto.OfferedPrice)
	if err != nil {
		return nil, err
	}

	var counterPrice *kernel.Money
	if dto.CounterPrice != nil {
		counter, err := kernel.NewMoney(*dto.CounterPrice)
		if err != nil {
			return nil, err
		}
		counterPrice = &counter
	}

	return proposal.RestoreProposal(
		id,
		orderID,
		fulfillerID,
		proposal.Status(dto.Status),
		offeredPrice,
		counterPrice,
	)
}
