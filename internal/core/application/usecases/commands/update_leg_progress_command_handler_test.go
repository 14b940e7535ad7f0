package commands_test

import (
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/progress"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func progressCmd(
	t *testing.T,
	orderID, fulfillerID kernel.UUID,
	to assignment.Status,
	role kernel.Role,
	override bool,
) commands.UpdateLegProgressCommand {
	t.Helper()
	cmd, err := commands.NewUpdateLegProgressCommand(orderID, fulfillerID, to, role, override)
	require.NoError(t, err)
	return cmd
}

func TestNewUpdateLegProgressCommand_OverrideRequiresAdmin(t *testing.T) {
	_, err := commands.NewUpdateLegProgressCommand(
		kernel.NewUUID(), kernel.NewUUID(), assignment.StatusLoaded, kernel.RoleFulfiller, true)

	require.ErrorIs(t, err, assignment.ErrLegForbiddenForRole)
}

func TestUpdateLegProgressCommandHandler_Handle_FirstReportCreatesRecord(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	fulfillerID := kernel.NewUUID()
	leg := restoredLeg(t, orderID, fulfillerID, assignment.StatusAccepted)
	cmd := progressCmd(t, orderID, fulfillerID, assignment.StatusLoading, kernel.RoleFulfiller, false)

	legRepo := new(MockAssignmentRepository)
	progRepo := new(MockProgressRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("AssignmentRepository").Return(legRepo)
	uow.On("ProgressRepository").Return(progRepo)
	legRepo.On("GetActive", mock.Anything, orderID, fulfillerID).Return(leg, nil).Once()
	progRepo.On("Get", mock.Anything, orderID, fulfillerID).
		Return(nil, errs.NewObjectNotFoundError("progress", orderID.String())).Once()
	progRepo.On("Upsert", mock.Anything, mock.AnythingOfType("*progress.Progress")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockProgressUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateLegProgressCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))
	progRepo.AssertExpectations(t)
}

func TestUpdateLegProgressCommandHandler_Handle_FirstReportMustFollowAssignment(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	fulfillerID := kernel.NewUUID()
	leg := restoredLeg(t, orderID, fulfillerID, assignment.StatusAccepted)
	// Accepted -> InTransit skips Loading and Loaded.
	cmd := progressCmd(t, orderID, fulfillerID, assignment.StatusInTransit, kernel.RoleFulfiller, false)

	legRepo := new(MockAssignmentRepository)
	progRepo := new(MockProgressRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("AssignmentRepository").Return(legRepo)
	uow.On("ProgressRepository").Return(progRepo)
	legRepo.On("GetActive", mock.Anything, orderID, fulfillerID).Return(leg, nil).Once()
	progRepo.On("Get", mock.Anything, orderID, fulfillerID).
		Return(nil, errs.NewObjectNotFoundError("progress", orderID.String())).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockProgressUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateLegProgressCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, assignment.ErrIllegalLegTransition)
	progRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestUpdateLegProgressCommandHandler_Handle_AdvancesExistingRecord(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	fulfillerID := kernel.NewUUID()
	leg := restoredLeg(t, orderID, fulfillerID, assignment.StatusLoading)
	record, err := progress.RestoreProgress(orderID, fulfillerID, assignment.StatusLoading, time.Now())
	require.NoError(t, err)
	cmd := progressCmd(t, orderID, fulfillerID, assignment.StatusLoaded, kernel.RoleFulfiller, false)

	legRepo := new(MockAssignmentRepository)
	progRepo := new(MockProgressRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("AssignmentRepository").Return(legRepo)
	uow.On("ProgressRepository").Return(progRepo)
	legRepo.On("GetActive", mock.Anything, orderID, fulfillerID).Return(leg, nil).Once()
	progRepo.On("Get", mock.Anything, orderID, fulfillerID).Return(record, nil).Once()
	progRepo.On("Upsert", mock.Anything, record).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockProgressUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateLegProgressCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, assignment.StatusLoaded, record.Status())
}

func TestUpdateLegProgressCommandHandler_Handle_AdminOverrideBypassesTable(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	fulfillerID := kernel.NewUUID()
	leg := restoredLeg(t, orderID, fulfillerID, assignment.StatusInTransit)
	record, err := progress.RestoreProgress(orderID, fulfillerID, assignment.StatusInTransit, time.Now())
	require.NoError(t, err)
	// Backwards move, only possible through the admin override.
	cmd := progressCmd(t, orderID, fulfillerID, assignment.StatusLoaded, kernel.RoleAdmin, true)

	legRepo := new(MockAssignmentRepository)
	progRepo := new(MockProgressRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("AssignmentRepository").Return(legRepo)
	uow.On("ProgressRepository").Return(progRepo)
	legRepo.On("GetActive", mock.Anything, orderID, fulfillerID).Return(leg, nil).Once()
	progRepo.On("Get", mock.Anything, orderID, fulfillerID).Return(record, nil).Once()
	progRepo.On("Upsert", mock.Anything, record).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockProgressUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateLegProgressCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, assignment.StatusLoaded, record.Status())
}
