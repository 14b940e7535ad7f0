// Package progressrepo persists leg progress records. One row exists per
// order and fulfiller pair, created on the first movement report and
// overwritten by later ones.
package progressrepo

import (
	"time"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/progress"

	"github.com/google/uuid"
)

// ProgressDTO represents the database structure for leg progress records.
// The order and fulfiller identifiers form the composite primary key.
type ProgressDTO struct {
	OrderID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	FulfillerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status      int
	UpdatedAt   time.Time
}

// TableName specifies the database table name for progress records.
func (ProgressDTO) TableName() string {
	return "leg_progress"
}

func fromDomain(record *progress.Progress) ProgressDTO {
	return ProgressDTO{
		OrderID:     record.OrderID().Bytes(),
		FulfillerID: record.FulfillerID().Bytes(),
		Status:      int(record.Status()),
		UpdatedAt:   record.UpdatedAt(),
	}
}

func toDomain(dto ProgressDTO) (*progress.Progress, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	fulfillerID, err := kernel.UUIDFromBytes(dto.FulfillerID[:])
	if err != nil {
		return nil, err
	}

	return progress.RestoreProgress(
		orderID,
		fulfillerID,
		assignment.Status(dto.Status),
		dto.UpdatedAt,
	)
}
