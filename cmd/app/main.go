package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"freight/cmd"
	httpin "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/postgres/assignmentrepo"
	"freight/internal/adapters/out/postgres/orderrepo"
	"freight/internal/adapters/out/postgres/progressrepo"
	"freight/internal/adapters/out/postgres/proposalrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	// Missing .env is fine in containerized deployments where the
	// environment is injected directly.
	_ = godotenv.Load(".env")

	return cmd.Config{
		HTTPPort:                 envOrDefault("HTTP_PORT", "8080"),
		DBHost:                   envOrDefault("DB_HOST", "localhost"),
		DBPort:                   envOrDefault("DB_PORT", "5432"),
		DBUser:                   envOrDefault("DB_USER", "postgres"),
		DBPassword:               envOrDefault("DB_PASSWORD", "postgres"),
		DBName:                   envOrDefault("DB_NAME", "freight"),
		DBSslMode:                envOrDefault("DB_SSLMODE", "disable"),
		ConfirmationTimeoutHours: envIntOrDefault("CONFIRMATION_TIMEOUT_HOURS", 72),
		MinFixedPrice:            envInt64OrDefault("MIN_FIXED_PRICE", 0),
		MinPerDistanceRate:       envInt64OrDefault("MIN_PER_DISTANCE_RATE", 0),
		MinPerWeightRate:         envInt64OrDefault("MIN_PER_WEIGHT_RATE", 0),
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func envInt64OrDefault(key string, fallback int64) int64 {
	value, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil {
		return fallback
	}
	return value
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost,
		configs.DBPort,
		configs.DBUser,
		configs.DBPassword,
		configs.DBName,
		configs.DBSslMode,
	)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&assignmentrepo.AssignmentDTO{},
		&progressrepo.ProgressDTO{},
		&proposalrepo.ProposalDTO{},
	)
	if err != nil {
		return nil, err
	}

	// AutoMigrate cannot express a partial unique index.
	if err := gormDB.Exec(assignmentrepo.ActiveAssignmentIndexSQL()).Error; err != nil {
		return nil, err
	}

	return gormDB, nil
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateReserveSlotCommandHandler(),
		app.CreateReleaseSlotCommandHandler(),
		app.CreateUpdateLegProgressCommandHandler(),
		app.CreateTransitionOrderCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateConfirmDeliveryCommandHandler(),
		app.CreateSubmitProposalCommandHandler(),
		app.CreateRespondToProposalCommandHandler(),
		app.CreateGetOpenOrdersQueryHandler(),
		app.CreateResolveLegStatusQueryHandler(),
		app.CreateGetPriceViewQueryHandler(),
		app.CreateGetAllowedActionsQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
