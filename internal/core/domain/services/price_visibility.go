package services

import (
	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
)

// MinimumPriceTable is the external reference table for the minimum-price
// compliance check. Implementations are collaborators; a nil table
// disables the check. The check only ever annotates a view with a
// warning, it never blocks rendering.
type MinimumPriceTable interface {
	// MinimumFor returns the minimum lawful per-slot price for a pricing
	// mode. The second return is false when no minimum is defined.
	MinimumFor(mode order.PricingMode) (kernel.Money, bool)
}

// PriceView is what one viewer is allowed to see of an order's price.
// Total is nil exactly when the viewer must not see the aggregate: a
// fulfiller on a multi-slot order only ever receives their own per-slot
// figure.
type PriceView struct {
	// PerSlot is the price of one truck slot: the viewer's own agreed
	// price when an assignment exists, the declared per-slot price
	// otherwise.
	PerSlot kernel.Money

	// Total is the order aggregate, present only for viewers entitled
	// to it.
	Total *kernel.Money

	// RequiredSlots is included for viewers who see the breakdown.
	RequiredSlots int

	// Actionable is false for read-only viewers (admin, unauthenticated).
	Actionable bool

	// BelowMinimum annotates a per-slot price under the compliance
	// minimum. Informational only; it never blocks rendering.
	BelowMinimum bool
}

// PriceVisibility computes the price view a given viewer may see. It is
// the only legitimate path by which a price reaches a fulfiller-facing
// surface.
//
// It never returns an error: on incomplete context it falls back to the
// most restrictive visibility, treating an unknown role as a fulfiller.
type PriceVisibility struct {
	minimums MinimumPriceTable
}

// NewPriceVisibility creates the guard. minimums may be nil, disabling
// the compliance annotation.
func NewPriceVisibility(minimums MinimumPriceTable) PriceVisibility {
	return PriceVisibility{minimums: minimums}
}

// ViewFor applies the visibility rules, first match wins:
//
//  1. Requester: total plus the per-slot breakdown.
//  2. Fulfiller on a single-slot order: the single price.
//  3. Fulfiller on a multi-slot order: only their own agreed price (or
//     the declared per-slot price pre-agreement); the total is never
//     rendered.
//  4. Any other viewer: the total, marked non-actionable.
//
// An unknown role takes the fulfiller branch. asg may be nil when the
// viewer has no assignment on the order.
func (v PriceVisibility) ViewFor(
	o *order.Order,
	asg *assignment.Assignment,
	viewerRole kernel.Role,
	viewerID kernel.UUID,
) PriceView {
	mode := o.Pricing().Mode()
	perSlot := PerSlotPrice(o.Pricing())
	total := Total(o.Pricing(), o.RequiredSlots())

	switch viewerRole {
	case kernel.RoleRequester:
		return v.annotate(mode, PriceView{
			PerSlot:       perSlot,
			Total:         &total,
			RequiredSlots: o.RequiredSlots(),
			Actionable:    true,
		})

	case kernel.RoleFulfiller, kernel.RoleUnknown:
		own := perSlot
		if asg != nil && asg.FulfillerID().IsEqual(viewerID) && !asg.AgreedPrice().IsZero() {
			own = asg.AgreedPrice()
		}

		if o.RequiredSlots() == 1 {
			// Single slot: the per-slot price and the total coincide,
			// so there is nothing to withhold.
			return v.annotate(mode, PriceView{
				PerSlot:       own,
				Total:         &own,
				RequiredSlots: 1,
				Actionable:    viewerRole == kernel.RoleFulfiller,
			})
		}

		return v.annotate(mode, PriceView{
			PerSlot:       own,
			Total:         nil,
			RequiredSlots: o.RequiredSlots(),
			Actionable:    viewerRole == kernel.RoleFulfiller,
		})

	default:
		return v.annotate(mode, PriceView{
			PerSlot:       perSlot,
			Total:         &total,
			RequiredSlots: o.RequiredSlots(),
			Actionable:    false,
		})
	}
}

func (v PriceVisibility) annotate(mode order.PricingMode, view PriceView) PriceView {
	if v.minimums == nil {
		return view
	}

	// The annotation compares the per-slot figure; minimums are defined
	// per slot, not per order.
	if minimum, ok := v.minimums.MinimumFor(mode); ok && view.PerSlot.IsLessThan(minimum) {
		view.BelowMinimum = true
	}

	return view
}
