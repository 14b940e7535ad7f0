package jobs

import (
	"context"
	"log/slog"
	"time"

	"freight/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ConfirmationTimeoutJob auto-confirms deliveries the requester has left
// unconfirmed past the timeout. Runs every minute; each tick sweeps every
// order that crossed the cutoff.
type ConfirmationTimeoutJob struct {
	handler commands.SweepConfirmationsCommandHandler
	timeout time.Duration
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewConfirmationTimeoutJob creates a new job for sweeping expired
// delivery confirmations.
func NewConfirmationTimeoutJob(
	handler commands.SweepConfirmationsCommandHandler,
	timeout time.Duration,
	logger *slog.Logger,
) *ConfirmationTimeoutJob {
	return &ConfirmationTimeoutJob{
		handler: handler,
		timeout: timeout,
		cron:    cron.New(),
		logger:  logger.With("component", "confirmation_timeout_job"),
	}
}

// Start begins the confirmation timeout job to run every minute.
func (j *ConfirmationTimeoutJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewSweepConfirmationsCommand(time.Now().Add(-j.timeout))
		if err != nil {
			j.logger.ErrorContext(ctx, "Confirmation timeout job misconfigured", "error", err)
			return
		}

		swept, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Confirmation timeout sweep failed", "error", err, "swept", swept)
			return
		}
		if swept > 0 {
			j.logger.InfoContext(ctx, "Auto-confirmed expired deliveries", "swept", swept)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Confirmation timeout job started (running every minute)",
		"timeout", j.timeout.String())
	return nil
}

// Stop stops the confirmation timeout job.
func (j *ConfirmationTimeoutJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Confirmation timeout job stopped")
}
