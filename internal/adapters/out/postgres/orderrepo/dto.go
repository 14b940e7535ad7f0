// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The pricing terms are flattened into the row; UpdatedAt doubles as the
// marker for how long the order has waited in its current status, which the
// confirmation timeout sweep keys on.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RequesterID   uuid.UUID  `gorm:"type:uuid;index"`
	Status        int        `gorm:"index"`
	RequiredSlots int
	AcceptedSlots int
	Pricing       PricingDTO `gorm:"embedded"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// PricingDTO represents the embedded pricing terms within the order table.
// Monetary amounts are stored in minor units.
type PricingDTO struct {
	Mode        int   `gorm:"column:pricing_mode"`
	FixedAmount int64 `gorm:"column:fixed_amount"`
	Rate        int64 `gorm:"column:rate"`
	DistanceKm  int64 `gorm:"column:distance_km"`
	WeightKg    int64 `gorm:"column:weight_kg"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	pricing := aggregate.Pricing()

	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		RequesterID:   aggregate.RequesterID().Bytes(),
		Status:        int(aggregate.Status()),
		RequiredSlots: aggregate.RequiredSlots(),
		AcceptedSlots: aggregate.AcceptedSlots(),
		Pricing: PricingDTO{
			Mode:        int(pricing.Mode()),
			FixedAmount: pricing.FixedAmount().Amount(),
			Rate:        pricing.Rate().Amount(),
			DistanceKm:  pricing.DistanceKm(),
			WeightKg:    pricing.WeightKg(),
		},
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// All capacity and status invariants are re-checked by RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	requesterID, err := kernel.UUIDFromBytes(dto.RequesterID[:])
	if err != nil {
		return nil, err
	}

	fixedAmount, err := kernel.NewMoney(dto.Pricing.FixedAmount)
	if err != nil {
		return nil, err
	}

	rate, err := kernel.NewMoney(dto.Pricing.Rate)
	if err != nil {
		return nil, err
	}

	pricing, err := order.RestorePricingTerms(
		order.PricingMode(dto.Pricing.Mode),
		fixedAmount,
		rate,
		dto.Pricing.DistanceKm,
		dto.Pricing.WeightKg,
	)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		requesterID,
		pricing,
		dto.RequiredSlots,
		dto.AcceptedSlots,
		order.Status(dto.Status),
	)
}
