package kernel

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Money is a value object representing an amount in minor currency units
// (cents). The platform operates in a single currency, so Money carries no
// currency code.
//
// Money is immutable; arithmetic methods return new values. Negative
// amounts are rejected at construction, which keeps every price in the
// system non-negative by construction.
type Money struct {
	amount int64
}

// NewMoney creates a Money value from an amount in minor units.
// The amount must not be negative.
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%d is negative", amount),
		)
	}
	return Money{amount: amount}, nil
}

// Amount returns the amount in minor currency units.
func (m Money) Amount() int64 {
	return m.amount
}

// MultiplyBy returns the amount multiplied by a non-negative factor.
// Used to derive an order total from its per-slot price.
func (m Money) MultiplyBy(factor int64) Money {
	if factor < 0 {
		factor = 0
	}
	return Money{amount: m.amount * factor}
}

// DivideBy returns the amount divided by a positive divisor, truncating
// toward zero. Used to convert a per-tonne rate applied to kilograms.
func (m Money) DivideBy(divisor int64) Money {
	if divisor <= 0 {
		return Money{}
	}
	return Money{amount: m.amount / divisor}
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// IsLessThan reports whether this amount is strictly below the other.
func (m Money) IsLessThan(other Money) bool {
	return m.amount < other.amount
}

// IsEqual reports whether two Money values carry the same amount.
func (m Money) IsEqual(other Money) bool {
	return m.amount == other.amount
}

// String formats the amount with two decimal places, for logs and labels.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.amount/100, m.amount%100)
}
