package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/guard"
)

var (
	ErrResolveLegStatusQueryIsNotConstructed = errors.New(
		"ResolveLegStatusQuery must be created via NewResolveLegStatusQuery constructor",
	)
)

// ResolveLegStatusQuery resolves the current status of one fulfiller's leg
// on an order. A progress record, when present, is authoritative; the
// assignment is the fallback for legs that never reported movement.
type ResolveLegStatusQuery struct {
	orderID     kernel.UUID
	fulfillerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewResolveLegStatusQuery creates a query for one leg's status.
func NewResolveLegStatusQuery(orderID, fulfillerID kernel.UUID) (ResolveLegStatusQuery, error) {
	if err := errors.Join(
		orderID.Validate(),
		fulfillerID.Validate(),
	); err != nil {
		return ResolveLegStatusQuery{}, err
	}

	return ResolveLegStatusQuery{
		orderID:     orderID,
		fulfillerID: fulfillerID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ResolveLegStatusQuery) Validate() error {
	return q.guard.Validate(ErrResolveLegStatusQueryIsNotConstructed)
}

// OrderID returns the order the leg belongs to.
func (q ResolveLegStatusQuery) OrderID() kernel.UUID {
	return q.orderID
}

// FulfillerID returns the leg's fulfiller.
func (q ResolveLegStatusQuery) FulfillerID() kernel.UUID {
	return q.fulfillerID
}

// ResolveLegStatusQueryResponse carries the resolved status together with
// which source produced it. The label is the approved user-facing text.
type ResolveLegStatusQueryResponse struct {
	StatusLabel string
	Source      services.StatusSource
}
