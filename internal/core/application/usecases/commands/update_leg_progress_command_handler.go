package commands

import (
	"context"
	"errors"
	"time"

	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/progress"
	"freight/internal/pkg/errs"
)

// UpdateLegProgressCommandHandler handles leg movement reports.
//
// Progress records are created lazily: a leg that never reported movement
// has no record, and its status resolves from the assignment. Once a
// record exists it is the authoritative source and only moves forward
// through the leg transition table.
type UpdateLegProgressCommandHandler struct {
	uowFactory ProgressUoWFactory
}

// NewUpdateLegProgressCommandHandler creates a handler for leg progress updates.
func NewUpdateLegProgressCommandHandler(uowFactory ProgressUoWFactory) UpdateLegProgressCommandHandler {
	return UpdateLegProgressCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the leg progress command.
// The first report is validated against the assignment's status; later
// reports advance the existing record.
func (h *UpdateLegProgressCommandHandler) Handle(ctx context.Context, cmd UpdateLegProgressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	leg, err := uow.AssignmentRepository().GetActive(ctx, cmd.OrderID(), cmd.FulfillerID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	record, err := uow.ProgressRepository().Get(ctx, cmd.OrderID(), cmd.FulfillerID())
	switch {
	case err == nil:
		if err = h.advance(record, cmd, now); err != nil {
			return err
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		record, err = h.firstReport(leg, cmd, now)
		if err != nil {
			return err
		}
	default:
		return err
	}

	if err = uow.ProgressRepository().Upsert(ctx, record); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *UpdateLegProgressCommandHandler) advance(
	record *progress.Progress,
	cmd UpdateLegProgressCommand,
	now time.Time,
) error {
	if cmd.Override() {
		return record.Override(cmd.To(), now)
	}
	return record.Advance(cmd.To(), cmd.Role(), now)
}

// The first report has no record to advance from, so the assignment's
// status anchors the transition check.
func (h *UpdateLegProgressCommandHandler) firstReport(
	leg *assignment.Assignment,
	cmd UpdateLegProgressCommand,
	now time.Time,
) (*progress.Progress, error) {
	if !cmd.Override() {
		if err := assignment.AssertLegTransition(leg.Status(), cmd.To(), cmd.Role()); err != nil {
			return nil, err
		}
	}

	return progress.NewProgress(cmd.OrderID(), cmd.FulfillerID(), cmd.To(), now)
}
