package cmd

import (
	"log/slog"
	"os"
	"time"

	"freight/internal/adapters/out/notify"
	"freight/internal/adapters/out/postgres"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/order"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. All handlers
// share one unit of work factory and one capacity notifier.
type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	notifier   ports.CapacityNotifier
	logger     *slog.Logger
}

// NewCompositionRoot creates the application object graph on top of an
// open database connection.
func NewCompositionRoot(configs Config, gormDB *gorm.DB) CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	return CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notify.NewSlogCapacityNotifier(logger),
		logger:     logger,
	}
}

// Logger returns the shared structured logger.
func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) capacityUoWFactory() commands.CapacityUoWFactory {
	return FuncCapacityUoWFactory(func() commands.CapacityUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) progressUoWFactory() commands.ProgressUoWFactory {
	return FuncProgressUoWFactory(func() commands.ProgressUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) proposalUoWFactory() commands.ProposalUoWFactory {
	return FuncProposalUoWFactory(func() commands.ProposalUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateReserveSlotCommandHandler() commands.ReserveSlotCommandHandler {
	return commands.NewReserveSlotCommandHandler(c.capacityUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateReleaseSlotCommandHandler() commands.ReleaseSlotCommandHandler {
	return commands.NewReleaseSlotCommandHandler(c.capacityUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateUpdateLegProgressCommandHandler() commands.UpdateLegProgressCommandHandler {
	return commands.NewUpdateLegProgressCommandHandler(c.progressUoWFactory())
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.capacityUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	return commands.NewConfirmDeliveryCommandHandler(c.capacityUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateSubmitProposalCommandHandler() commands.SubmitProposalCommandHandler {
	return commands.NewSubmitProposalCommandHandler(c.proposalUoWFactory())
}

func (c *CompositionRoot) CreateRespondToProposalCommandHandler() commands.RespondToProposalCommandHandler {
	return commands.NewRespondToProposalCommandHandler(c.proposalUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateSweepConfirmationsCommandHandler() commands.SweepConfirmationsCommandHandler {
	return commands.NewSweepConfirmationsCommandHandler(c.capacityUoWFactory(), c.notifier)
}

func (c *CompositionRoot) CreateGetOpenOrdersQueryHandler() queries.GetOpenOrdersQueryHandler {
	return queries.NewGetOpenOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateResolveLegStatusQueryHandler() queries.ResolveLegStatusQueryHandler {
	return queries.NewResolveLegStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPriceViewQueryHandler() queries.GetPriceViewQueryHandler {
	visibility := services.NewPriceVisibility(NewConfigMinimumPriceTable(c.configs))
	return queries.NewGetPriceViewQueryHandler(c.gormDB, visibility)
}

func (c *CompositionRoot) CreateGetAllowedActionsQueryHandler() queries.GetAllowedActionsQueryHandler {
	return queries.NewGetAllowedActionsQueryHandler(c.gormDB)
}

// CreateJobManager wires the background jobs with the configured
// confirmation timeout.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	timeout := time.Duration(c.configs.ConfirmationTimeoutHours) * time.Hour
	return jobs.NewJobManager(c.CreateSweepConfirmationsCommandHandler(), timeout, c.logger)
}

// ConfigMinimumPriceTable resolves minimum lawful per-slot prices from
// static configuration.
type ConfigMinimumPriceTable struct {
	minimums map[order.PricingMode]int64
}

// NewConfigMinimumPriceTable builds the table from config values.
// Modes configured to zero carry no minimum.
func NewConfigMinimumPriceTable(configs Config) ConfigMinimumPriceTable {
	return ConfigMinimumPriceTable{
		minimums: map[order.PricingMode]int64{
			order.PricingFixed:       configs.MinFixedPrice,
			order.PricingPerDistance: configs.MinPerDistanceRate,
			order.PricingPerWeight:   configs.MinPerWeightRate,
		},
	}
}

// MinimumFor returns the minimum per-slot price for the mode, if one is
// configured.
func (t ConfigMinimumPriceTable) MinimumFor(mode order.PricingMode) (kernel.Money, bool) {
	amount, ok := t.minimums[mode]
	if !ok || amount <= 0 {
		return kernel.Money{}, false
	}

	minimum, err := kernel.NewMoney(amount)
	if err != nil {
		return kernel.Money{}, false
	}
	return minimum, true
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCapacityUoWFactory func() commands.CapacityUoW

func (f FuncCapacityUoWFactory) Create() commands.CapacityUoW {
	return f()
}

type FuncProgressUoWFactory func() commands.ProgressUoW

func (f FuncProgressUoWFactory) Create() commands.ProgressUoW {
	return f()
}

type FuncProposalUoWFactory func() commands.ProposalUoW

func (f FuncProposalUoWFactory) Create() commands.ProposalUoW {
	return f()
}
