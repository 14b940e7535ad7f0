package commands_test

import (
	"testing"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(amount)
	require.NoError(t, err)
	return m
}

func TestSubmitProposalCommandHandler_Handle_OpensNegotiation(t *testing.T) {
	ctx := t.Context()
	aggregate := restoredOrder(t, 2, 0, order.StatusOpen)

	cmd, err := commands.NewSubmitProposalCommand(
		kernel.NewUUID(), aggregate.ID(), kernel.NewUUID(), money(t, 80_000))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	proposalRepo := new(MockProposalRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("ProposalRepository").Return(proposalRepo)
	orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	proposalRepo.On("Add", mock.Anything, mock.AnythingOfType("*proposal.Proposal")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockProposalUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitProposalCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.StatusInNegotiation, aggregate.Status())
}

func TestSubmitProposalCommandHandler_Handle_SecondProposalKeepsStatus(t *testing.T) {
	ctx := t.Context()
	aggregate := restoredOrder(t, 2, 0, order.StatusInNegotiation)

	cmd, err := commands.NewSubmitProposalCommand(
		kernel.NewUUID(), aggregate.ID(), kernel.NewUUID(), money(t, 70_000))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	proposalRepo := new(MockProposalRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("ProposalRepository").Return(proposalRepo)
	orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	proposalRepo.On("Add", mock.Anything, mock.AnythingOfType("*proposal.Proposal")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockProposalUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitProposalCommandHandler(factory)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.StatusInNegotiation, aggregate.Status())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSubmitProposalCommandHandler_Handle_ClosedOrder(t *testing.T) {
	ctx := t.Context()
	aggregate := restoredOrder(t, 2, 2, order.StatusAccepted)

	cmd, err := commands.NewSubmitProposalCommand(
		kernel.NewUUID(), aggregate.ID(), kernel.NewUUID(), money(t, 70_000))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockProposalUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitProposalCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, order.ErrIllegalTransition)
}
