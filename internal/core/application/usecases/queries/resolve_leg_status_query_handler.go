package queries

import (
	"context"
	"database/sql"
	"errors"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/services"

	"gorm.io/gorm"
)

// ResolveLegStatusQueryHandler resolves one leg's status from the read
// side. The precedence matches the domain resolver: progress record
// first, active assignment second, unknown when neither exists.
type ResolveLegStatusQueryHandler struct {
	db *gorm.DB
}

// NewResolveLegStatusQueryHandler creates a handler for leg status queries.
func NewResolveLegStatusQueryHandler(db *gorm.DB) ResolveLegStatusQueryHandler {
	return ResolveLegStatusQueryHandler{db: db}
}

// Handle executes the query. A leg with no progress record and no active
// assignment resolves to the unknown source with the fallback label.
func (h ResolveLegStatusQueryHandler) Handle(
	ctx context.Context,
	query ResolveLegStatusQuery,
) (ResolveLegStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ResolveLegStatusQueryResponse{}, err
	}

	var status int

	err := h.db.WithContext(ctx).Raw(`
		SELECT status
		FROM leg_progress
		WHERE order_id = ? AND fulfiller_id = ?
	`, query.OrderID().Bytes(), query.FulfillerID().Bytes()).Row().Scan(&status)
	if err == nil {
		return ResolveLegStatusQueryResponse{
			StatusLabel: services.LegStatusLabel(assignment.Status(status)),
			Source:      services.SourceProgress,
		}, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return ResolveLegStatusQueryResponse{}, err
	}

	err = h.db.WithContext(ctx).Raw(`
		SELECT status
		FROM assignments
		WHERE order_id = ? AND fulfiller_id = ? AND status NOT IN (?, ?)
	`, query.OrderID().Bytes(), query.FulfillerID().Bytes(),
		int(assignment.StatusCancelled), int(assignment.StatusRejected)).Row().Scan(&status)
	if err == nil {
		return ResolveLegStatusQueryResponse{
			StatusLabel: services.LegStatusLabel(assignment.Status(status)),
			Source:      services.SourceAssignment,
		}, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return ResolveLegStatusQueryResponse{}, err
	}

	return ResolveLegStatusQueryResponse{
		StatusLabel: services.LegStatusLabel(assignment.StatusUnknown),
		Source:      services.SourceUnknown,
	}, nil
}
