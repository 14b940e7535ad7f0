// Package assignmentrepo persists assignment aggregates. A partial unique
// index keeps at most one active assignment per order and fulfiller pair;
// the repository maps violations of it to the domain's capacity error.
package assignmentrepo

import (
	"time"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AssignmentDTO represents the database structure for persisting assignments.
type AssignmentDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID `gorm:"type:uuid;index"`
	FulfillerID  uuid.UUID `gorm:"type:uuid;index"`
	Status       int
	AgreedPrice  int64
	PickupFrom   time.Time
	PickupTo     time.Time
	DeliveryFrom time.Time
	DeliveryTo   time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the database table name for assignment entities.
func (AssignmentDTO) TableName() string {
	return "assignments"
}

// fromDomain converts an assignment aggregate to its database representation.
func fromDomain(aggregate *assignment.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:           aggregate.ID().Bytes(),
		OrderID:      aggregate.OrderID().Bytes(),
		FulfillerID:  aggregate.FulfillerID().Bytes(),
		Status:       int(aggregate.Status()),
		AgreedPrice:  aggregate.AgreedPrice().Amount(),
		PickupFrom:   aggregate.Pickup().From(),
		PickupTo:     aggregate.Pickup().To(),
		DeliveryFrom: aggregate.Delivery().From(),
		DeliveryTo:   aggregate.Delivery().To(),
	}
}

// toDomain converts a database DTO to an assignment aggregate.
func toDomain(dto AssignmentDTO) (*assignment.Assignment, error) {
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

	agreedPrice, err := kernel.NewMoney(dto.AgreedPrice)
	if err != nil {
		return nil, err
	}

	pickup, err := assignment.NewWindow(dto.PickupFrom, dto.PickupTo)
	if err != nil {
		return nil, err
	}

	delivery, err := assignment.NewWindow(dto.DeliveryFrom, dto.DeliveryTo)
	if err != nil {
		return nil, err
	}

	return assignment.RestoreAssignment(
		id,
		orderID,
		fulfillerID,
		assignment.Status(dto.Status),
		agreedPrice,
		pickup,
		delivery,
	)
}
