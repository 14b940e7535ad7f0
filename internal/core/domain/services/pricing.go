package services

import (
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
)

// PerSlotPrice is the shared pricing function: the single place where a
// per-slot price is computed from pricing terms. Every rendered price,
// requester total and fulfiller share alike, derives from this function,
// which keeps the two views exact multiples of one another.
//
//	Fixed:       fixed amount
//	PerDistance: rate x distance (km)
//	PerWeight:   rate x weight (kg) / WeightUnitDivisor
func PerSlotPrice(terms order.PricingTerms) kernel.Money {
	switch terms.Mode() {
	case order.PricingFixed:
		return terms.FixedAmount()
	case order.PricingPerDistance:
		return terms.Rate().MultiplyBy(terms.DistanceKm())
	case order.PricingPerWeight:
		return terms.Rate().MultiplyBy(terms.WeightKg()).DivideBy(order.WeightUnitDivisor)
	default:
		return kernel.Money{}
	}
}

// Total is the order aggregate price: per-slot price times required slots.
func Total(terms order.PricingTerms, requiredSlots int) kernel.Money {
	return PerSlotPrice(terms).MultiplyBy(int64(requiredSlots))
}
