package commands_test

import (
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/proposal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingProposal(t *testing.T, orderID kernel.UUID, offered int64) *proposal.Proposal {
	t.Helper()
	p, err := proposal.NewProposal(kernel.NewUUID(), orderID, kernel.NewUUID(), money(t, offered))
	require.NoError(t, err)
	return p
}

func TestRespondToProposalCommandHandler_Handle_Counter(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	offer := pendingProposal(t, orderID, 80_000)

	cmd, err := commands.NewRespondToProposalCommand(
		offer.ID(), kernel.RoleRequester, commands.DecisionCounter, money(t, 90_000))
	require.NoError(t, err)

	proposalRepo := new(MockProposalRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ProposalRepository").Return(proposalRepo)
	proposalRepo.On("Get", mock.Anything, offer.ID()).Return(offer, nil).Once()
	proposalRepo.On("Update", mock.Anything, offer).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockProposalUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRespondToProposalCommandHandler(factory, NoopNotifier{})
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, proposal.StatusCounterProposed, offer.Status())
	require.NotNil(t, offer.CounterPrice())
	assert.Equal(t, int64(90_000), offer.CounterPrice().Amount())
}

func TestRespondToProposalCommandHandler_Handle_AcceptReservesSlot(t *testing.T) {
	ctx := t.Context()
	aggregate := restoredOrder(t, 2, 0, order.StatusInNegotiation)
	offer := pendingProposal(t, aggregate.ID(), 80_000)

	start := time.Now().Add(24 * time.Hour)
	cmd, err := commands.NewAcceptProposalCommand(
		offer.ID(), kernel.RoleRequester, kernel.NewUUID(),
		start, start.Add(4*time.Hour),
		start.Add(48*time.Hour), start.Add(52*time.Hour),
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	legRepo := new(MockAssignmentRepository)
	proposalRepo := new(MockProposalRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("AssignmentRepository").Return(legRepo)
	uow.On("ProposalRepository").Return(proposalRepo)
	proposalRepo.On("Get", mock.Anything, offer.ID()).Return(offer, nil).Once()
	orderRepo.On("GetForUpdate", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	legRepo.On("Add", mock.Anything, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Once()
	orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	proposalRepo.On("Update", mock.Anything, offer).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockProposalUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRespondToProposalCommandHandler(factory, NoopNotifier{})
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, proposal.StatusAccepted, offer.Status())
	assert.Equal(t, 1, aggregate.AcceptedSlots())
}

func TestRespondToProposalCommandHandler_Handle_RejectLastReopensOrder(t *testing.T) {
	ctx := t.Context()
	aggregate := restoredOrder(t, 2, 0, order.StatusInNegotiation)
	offer := pendingProposal(t, aggregate.ID(), 80_000)

	cmd, err := commands.NewRespondToProposalCommand(
		offer.ID(), kernel.RoleRequester, commands.DecisionReject, kernel.Money{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	proposalRepo := new(MockProposalRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("ProposalRepository").Return(proposalRepo)
	proposalRepo.On("Get", mock.Anything, offer.ID()).Return(offer, nil).Once()
	proposalRepo.On("GetAllOpenByOrder", mock.Anything, aggregate.ID()).
		Return([]*proposal.Proposal{offer}, nil).Once()
	orderRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once()
	orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	proposalRepo.On("Update", mock.Anything, offer).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockProposalUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRespondToProposalCommandHandler(factory, NoopNotifier{})
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, proposal.StatusRejected, offer.Status())
	assert.Equal(t, order.StatusOpen, aggregate.Status())
}

func TestRespondToProposalCommandHandler_Handle_RejectWithOthersKeepsNegotiation(t *testing.T) {
	ctx := t.Context()
	aggregate := restoredOrder(t, 2, 0, order.StatusInNegotiation)
	offer := pendingProposal(t, aggregate.ID(), 80_000)
	other := pendingProposal(t, aggregate.ID(), 85_000)

	cmd, err := commands.NewRespondToProposalCommand(
		offer.ID(), kernel.RoleRequester, commands.DecisionReject, kernel.Money{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	proposalRepo := new(MockProposalRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("ProposalRepository").Return(proposalRepo)
	proposalRepo.On("Get", mock.Anything, offer.ID()).Return(offer, nil).Once()
	proposalRepo.On("GetAllOpenByOrder", mock.Anything, aggregate.ID()).
		Return([]*proposal.Proposal{offer, other}, nil).Once()
	proposalRepo.On("Update", mock.Anything, offer).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockProposalUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRespondToProposalCommandHandler(factory, NoopNotifier{})
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, order.StatusInNegotiation, aggregate.Status())
	orderRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestRespondToProposalCommandHandler_Handle_FulfillerAcceptsOwnOfferFails(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	offer := pendingProposal(t, orderID, 80_000)

	start := time.Now().Add(24 * time.Hour)
	cmd, err := commands.NewAcceptProposalCommand(
		offer.ID(), kernel.RoleFulfiller, kernel.NewUUID(),
		start, start.Add(4*time.Hour),
		start.Add(48*time.Hour), start.Add(52*time.Hour),
	)
	require.NoError(t, err)

	proposalRepo := new(MockProposalRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ProposalRepository").Return(proposalRepo)
	proposalRepo.On("Get", mock.Anything, offer.ID()).Return(offer, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockProposalUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRespondToProposalCommandHandler(factory, NoopNotifier{})
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.Equal(t, proposal.StatusPending, offer.Status())
}
