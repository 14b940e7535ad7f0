package order

import (
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"freight/internal/pkg/guard"
)

// PricingMode selects how the per-slot price of an order is computed.
type PricingMode int

const (
	// PricingModeUnknown represents an invalid or undefined mode.
	PricingModeUnknown PricingMode = iota

	// PricingFixed prices each slot at a flat amount.
	PricingFixed

	// PricingPerDistance prices each slot as rate x distance (km).
	PricingPerDistance

	// PricingPerWeight prices each slot as rate x weight in tonnes
	// (weight is recorded in kg; see WeightUnitDivisor).
	PricingPerWeight
)

// WeightUnitDivisor converts the recorded weight (kg) into the unit the
// per-weight rate applies to (tonnes).
const WeightUnitDivisor = 1000

func getPricingModeStrings() map[PricingMode]string {
	return map[PricingMode]string{
		PricingModeUnknown: "Unknown",
		PricingFixed:       "Fixed",
		PricingPerDistance: "PerDistance",
		PricingPerWeight:   "PerWeight",
	}
}

// String returns the code name of the pricing mode.
func (m PricingMode) String() string {
	if s, ok := getPricingModeStrings()[m]; ok {
		return s
	}
	return "Unknown"
}

// Validate rejects PricingModeUnknown and out-of-range values.
func (m PricingMode) Validate() error {
	if _, ok := getPricingModeStrings()[m]; !ok || m == PricingModeUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"pricing mode",
			fmt.Errorf("%d is not a valid pricing mode", m),
		)
	}
	return nil
}

var ErrPricingTermsAreNotConstructed = fmt.Errorf(
	"PricingTerms must be created via NewPricingTerms constructor: %w", errs.ErrValueIsRequired,
)

// PricingTerms is a value object holding the inputs of the shared pricing
// function: the mode plus whichever of fixed amount, per-unit rate,
// distance and weight the mode needs. The per-slot price itself is
// computed by services.PerSlotPrice so that every view of the price,
// requester total and fulfiller share alike, derives from one function.
type PricingTerms struct {
	mode        PricingMode
	fixedAmount kernel.Money
	rate        kernel.Money
	distanceKm  int64
	weightKg    int64

	guard guard.ConstructorGuard
}

// NewFixedPricing creates terms that price every slot at a flat amount.
func NewFixedPricing(amount kernel.Money) (PricingTerms, error) {
	if amount.IsZero() {
		return PricingTerms{}, errs.NewValueIsRequiredError("fixed amount")
	}
	return PricingTerms{
		mode:        PricingFixed,
		fixedAmount: amount,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// NewPerDistancePricing creates terms that price every slot as
// rate x distanceKm.
func NewPerDistancePricing(rate kernel.Money, distanceKm int64) (PricingTerms, error) {
	if rate.IsZero() {
		return PricingTerms{}, errs.NewValueIsRequiredError("per-distance rate")
	}
	if distanceKm <= 0 {
		return PricingTerms{}, errs.NewValueIsInvalidErrorWithCause(
			"distance",
			fmt.Errorf("%d km is not positive", distanceKm),
		)
	}
	return PricingTerms{
		mode:       PricingPerDistance,
		rate:       rate,
		distanceKm: distanceKm,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// NewPerWeightPricing creates terms that price every slot as
// rate x (weightKg / WeightUnitDivisor).
func NewPerWeightPricing(rate kernel.Money, weightKg int64) (PricingTerms, error) {
	if rate.IsZero() {
		return PricingTerms{}, errs.NewValueIsRequiredError("per-weight rate")
	}
	if weightKg <= 0 {
		return PricingTerms{}, errs.NewValueIsInvalidErrorWithCause(
			"weight",
			fmt.Errorf("%d kg is not positive", weightKg),
		)
	}
	return PricingTerms{
		mode:     PricingPerWeight,
		rate:     rate,
		weightKg: weightKg,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// RestorePricingTerms reconstructs terms from persistence without
// re-running mode-specific input validation; stored terms were validated
// on the way in.
func RestorePricingTerms(
	mode PricingMode, fixedAmount, rate kernel.Money, distanceKm, weightKg int64,
) (PricingTerms, error) {
	if err := mode.Validate(); err != nil {
		return PricingTerms{}, err
	}
	return PricingTerms{
		mode:        mode,
		fixedAmount: fixedAmount,
		rate:        rate,
		distanceKm:  distanceKm,
		weightKg:    weightKg,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the terms were created through a constructor.
func (t PricingTerms) Validate() error {
	return t.guard.Validate(ErrPricingTermsAreNotConstructed)
}

// Mode returns the pricing mode.
func (t PricingTerms) Mode() PricingMode {
	return t.mode
}

// FixedAmount returns the flat per-slot amount (PricingFixed only).
func (t PricingTerms) FixedAmount() kernel.Money {
	return t.fixedAmount
}

// Rate returns the per-unit rate (PricingPerDistance / PricingPerWeight).
func (t PricingTerms) Rate() kernel.Money {
	return t.rate
}

// DistanceKm returns the shipment distance in kilometers.
func (t PricingTerms) DistanceKm() int64 {
	return t.distanceKm
}

// WeightKg returns the cargo weight in kilograms.
func (t PricingTerms) WeightKg() int64 {
	return t.weightKg
}
