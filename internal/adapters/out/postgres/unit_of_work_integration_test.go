package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	postgres_adapter "freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/assignmentrepo"
	"freight/internal/adapters/out/postgres/orderrepo"
	"freight/internal/adapters/out/postgres/progressrepo"
	"freight/internal/adapters/out/postgres/proposalrepo"
	"freight/internal/core/domain/model/assignment"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/model/progress"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres_adapter.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&assignmentrepo.AssignmentDTO{},
		&progressrepo.ProgressDTO{},
		&proposalrepo.ProposalDTO{},
	)
	suite.Require().NoError(err)

	err = db.Exec(assignmentrepo.ActiveAssignmentIndexSQL()).Error
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, assignments, leg_progress, proposals").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(requiredSlots int) *order.Order {
	amount, err := kernel.NewMoney(300_000)
	suite.Require().NoError(err)
	pricing, err := order.NewFixedPricing(amount)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), pricing, requiredSlots)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *UnitOfWorkIntegrationTestSuite) newAssignment(orderID, fulfillerID kernel.UUID) *assignment.Assignment {
	price, err := kernel.NewMoney(300_000)
	suite.Require().NoError(err)

	now := time.Now()
	pickup, err := assignment.NewWindow(now.Add(time.Hour), now.Add(2*time.Hour))
	suite.Require().NoError(err)
	delivery, err := assignment.NewWindow(now.Add(3*time.Hour), now.Add(4*time.Hour))
	suite.Require().NoError(err)

	leg, err := assignment.NewAssignment(kernel.NewUUID(), orderID, fulfillerID, price, pickup, delivery)
	suite.Require().NoError(err)
	return leg
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	// Repeated Begin is a no-op, not a nested transaction.
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Commit without an active transaction fails.
	err = uow.Commit(ctx)
	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction)

	err = uow.Rollback(ctx)
	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := context.Background()
	aggregate := suite.newOrder(2)
	leg := suite.newAssignment(aggregate.ID(), kernel.NewUUID())

	uow := suite.factory.Create()
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, aggregate)
	suite.Require().NoError(err)
	err = uow.AssignmentRepository().Add(ctx, leg)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	verifier := suite.factory.Create()
	restored, err := verifier.OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(restored.ID().IsEqual(aggregate.ID()))

	legs, err := verifier.AssignmentRepository().GetAllByOrder(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Len(legs, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChanges() {
	ctx := context.Background()
	aggregate := suite.newOrder(1)

	uow := suite.factory.Create()
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, aggregate)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	_, err = suite.factory.Create().OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestActiveAssignmentIndex_RejectsDuplicateFulfiller() {
	ctx := context.Background()
	aggregate := suite.newOrder(3)
	fulfillerID := kernel.NewUUID()

	uow := suite.factory.Create()
	err := uow.OrderRepository().Add(ctx, aggregate)
	suite.Require().NoError(err)
	err = uow.AssignmentRepository().Add(ctx, suite.newAssignment(aggregate.ID(), fulfillerID))
	suite.Require().NoError(err)

	err = uow.AssignmentRepository().Add(ctx, suite.newAssignment(aggregate.ID(), fulfillerID))
	suite.Require().ErrorIs(err, order.ErrSlotUnavailable)

	// A released leg frees the pair for a fresh reservation.
	legs, err := uow.AssignmentRepository().GetAllByOrder(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().Len(legs, 1)

	err = legs[0].Release(assignment.StatusCancelled)
	suite.Require().NoError(err)
	err = uow.AssignmentRepository().Update(ctx, legs[0])
	suite.Require().NoError(err)

	err = uow.AssignmentRepository().Add(ctx, suite.newAssignment(aggregate.ID(), fulfillerID))
	suite.Require().NoError(err)
}

// TestConcurrentReservations_NeverOversellSlots hammers one order with
// parallel reservation transactions. However the scheduler interleaves
// them, exactly requiredSlots reservations may land.
func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentReservations_NeverOversellSlots() {
	ctx := context.Background()
	const requiredSlots = 2
	const contenders = 8

	aggregate := suite.newOrder(requiredSlots)
	err := suite.factory.Create().OrderRepository().Add(ctx, aggregate)
	suite.Require().NoError(err)

	reserve := func(fulfillerID kernel.UUID) error {
		uow := suite.factory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer uow.Rollback(ctx)

		locked, err := uow.OrderRepository().GetForUpdate(ctx, aggregate.ID())
		if err != nil {
			return err
		}
		if err := locked.ReserveSlot(); err != nil {
			return err
		}
		if err := uow.AssignmentRepository().Add(ctx, suite.newAssignment(locked.ID(), fulfillerID)); err != nil {
			return err
		}
		if err := uow.OrderRepository().Update(ctx, locked); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}

	var wg sync.WaitGroup
	results := make(chan error, contenders)
	for range contenders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- reserve(kernel.NewUUID())
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			suite.ErrorIs(err, order.ErrSlotUnavailable)
		}
	}
	suite.Equal(requiredSlots, succeeded)

	restored, err := suite.factory.Create().OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(requiredSlots, restored.AcceptedSlots())
	suite.Equal(order.StatusAccepted, restored.Status())

	legs, err := suite.factory.Create().AssignmentRepository().GetAllByOrder(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Len(legs, requiredSlots)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestProgressRepository_UpsertOverwrites() {
	ctx := context.Background()
	aggregate := suite.newOrder(1)
	fulfillerID := kernel.NewUUID()
	leg := suite.newAssignment(aggregate.ID(), fulfillerID)

	uow := suite.factory.Create()
	err := uow.OrderRepository().Add(ctx, aggregate)
	suite.Require().NoError(err)
	err = uow.AssignmentRepository().Add(ctx, leg)
	suite.Require().NoError(err)

	err = leg.TransitionTo(assignment.StatusLoading, kernel.RoleFulfiller)
	suite.Require().NoError(err)

	firstReport, err := progress.NewProgress(aggregate.ID(), fulfillerID, assignment.StatusLoading, time.Now())
	suite.Require().NoError(err)
	err = uow.ProgressRepository().Upsert(ctx, firstReport)
	suite.Require().NoError(err)

	err = firstReport.Advance(assignment.StatusLoaded, kernel.RoleFulfiller, time.Now())
	suite.Require().NoError(err)
	err = uow.ProgressRepository().Upsert(ctx, firstReport)
	suite.Require().NoError(err)

	stored, err := uow.ProgressRepository().Get(ctx, aggregate.ID(), fulfillerID)
	suite.Require().NoError(err)
	suite.Equal(assignment.StatusLoaded, stored.Status())
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
