package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrGetPriceViewQueryIsNotConstructed = errors.New(
		"GetPriceViewQuery must be created via NewGetPriceViewQuery constructor",
	)
)

// GetPriceViewQuery retrieves the price of an order as one viewer is
// allowed to see it. What the response contains depends on the viewer:
// requesters see the total with the per-slot breakdown, fulfillers on
// multi-slot orders only ever see their own slot's price.
type GetPriceViewQuery struct {
	orderID    kernel.UUID
	viewerID   kernel.UUID
	viewerRole kernel.Role

	guard guard.ConstructorGuard
}

// NewGetPriceViewQuery creates a price view query for one viewer.
// An unrecognized viewer role falls back to the most restrictive view; it
// is not an error here.
func NewGetPriceViewQuery(
	orderID kernel.UUID,
	viewerID kernel.UUID,
	viewerRole kernel.Role,
) (GetPriceViewQuery, error) {
	if err := errors.Join(
		orderID.Validate(),
		viewerID.Validate(),
	); err != nil {
		return GetPriceViewQuery{}, err
	}

	return GetPriceViewQuery{
		orderID:    orderID,
		viewerID:   viewerID,
		viewerRole: viewerRole,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPriceViewQuery) Validate() error {
	return q.guard.Validate(ErrGetPriceViewQueryIsNotConstructed)
}

// OrderID returns the priced order.
func (q GetPriceViewQuery) OrderID() kernel.UUID {
	return q.orderID
}

// ViewerID returns who is looking.
func (q GetPriceViewQuery) ViewerID() kernel.UUID {
	return q.viewerID
}

// ViewerRole returns the viewer's role.
func (q GetPriceViewQuery) ViewerRole() kernel.Role {
	return q.viewerRole
}

// GetPriceViewQueryResponse is the viewer-scoped price. Total is nil for
// viewers who must not see the aggregate.
type GetPriceViewQueryResponse struct {
	PerSlot       int64
	Total         *int64
	RequiredSlots int
	Actionable    bool
	BelowMinimum  bool
}
