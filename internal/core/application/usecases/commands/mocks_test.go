package commands_test

import (
	"context"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/progress"
	"freight/internal/core/domain/model/proposal"
	"freight/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllOpen(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllPendingConfirmationBefore(
	ctx context.Context, cutoff time.Time,
) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetActive(
	ctx context.Context, orderID, fulfillerID kernel.UUID,
) (*assignment.Assignment, error) {
	args := m.Called(ctx, orderID, fulfillerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetAllByOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]*assignment.Assignment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assignment.Assignment), args.Error(1)
}

type MockProgressRepository struct{ mock.Mock }

func (m *MockProgressRepository) Upsert(ctx context.Context, p *progress.Progress) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProgressRepository) Get(
	ctx context.Context, orderID, fulfillerID kernel.UUID,
) (*progress.Progress, error) {
	args := m.Called(ctx, orderID, fulfillerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*progress.Progress), args.Error(1)
}

type MockProposalRepository struct{ mock.Mock }

func (m *MockProposalRepository) Add(ctx context.Context, p *proposal.Proposal) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProposalRepository) Update(ctx context.Context, p *proposal.Proposal) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProposalRepository) Get(ctx context.Context, id kernel.UUID) (*proposal.Proposal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*proposal.Proposal), args.Error(1)
}

func (m *MockProposalRepository) GetAllOpenByOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]*proposal.Proposal, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*proposal.Proposal), args.Error(1)
}

// MockUoW serves every unit of work shape the handlers use; tests stub
// only the repositories their handler touches.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

func (m *MockUoW) ProgressRepository() ports.ProgressRepository {
	args := m.Called()
	return args.Get(0).(ports.ProgressRepository)
}

func (m *MockUoW) ProposalRepository() ports.ProposalRepository {
	args := m.Called()
	return args.Get(0).(ports.ProposalRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCapacityUoWFactory struct{ mock.Mock }

func (m *MockCapacityUoWFactory) Create() commands.CapacityUoW {
	args := m.Called()
	return args.Get(0).(commands.CapacityUoW)
}

type MockProgressUoWFactory struct{ mock.Mock }

func (m *MockProgressUoWFactory) Create() commands.ProgressUoW {
	args := m.Called()
	return args.Get(0).(commands.ProgressUoW)
}

type MockProposalUoWFactory struct{ mock.Mock }

func (m *MockProposalUoWFactory) Create() commands.ProposalUoW {
	args := m.Called()
	return args.Get(0).(commands.ProposalUoW)
}

// NoopNotifier satisfies the notifier port without recording anything;
// handler tests assert persistence, not signaling.
type NoopNotifier struct{}

func (NoopNotifier) NotifySlotReserved(context.Context, kernel.UUID, int, int) error { return nil }
func (NoopNotifier) NotifySlotReleased(context.Context, kernel.UUID, int, int) error { return nil }
func (NoopNotifier) NotifyStatusChanged(context.Context, kernel.UUID, order.Status) error {
	return nil
}
