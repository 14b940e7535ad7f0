// Package queries contains read-side operations in the CQRS architecture.
// Query handlers read the database directly with raw SQL and return flat
// response models; they never mutate state and never render raw internal
// status codes.
package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrGetOpenOrdersQueryIsNotConstructed = errors.New(
		"GetOpenOrdersQuery must be created via NewGetOpenOrdersQuery constructor",
	)
)

// GetOpenOrdersQuery retrieves the public order board: every order that
// still accepts slot reservations.
//
// Example:
//
//	query := NewGetOpenOrdersQuery()
//	handler := NewGetOpenOrdersQueryHandler(db)
//
//	board, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load the order board: %w", err)
//	}
//	fmt.Printf("%d orders accepting reservations\n", len(board))
type GetOpenOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOpenOrdersQuery creates a query for the order board.
// This is a parameterless query.
func NewGetOpenOrdersQuery() GetOpenOrdersQuery {
	return GetOpenOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenOrdersQueryIsNotConstructed)
}

// GetOpenOrdersQueryResponse is one board row. The status is carried as
// its approved label; the per-slot price is what a fulfiller would earn
// for one slot under the declared terms.
type GetOpenOrdersQueryResponse struct {
	ID            kernel.UUID
	StatusLabel   string
	RequiredSlots int
	FreeSlots     int
	PerSlotPrice  kernel.Money
}
