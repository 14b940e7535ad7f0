package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"freight/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	confirmationTimeoutJob *ConfirmationTimeoutJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	sweepHandler commands.SweepConfirmationsCommandHandler,
	confirmationTimeout time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		confirmationTimeoutJob: NewConfirmationTimeoutJob(sweepHandler, confirmationTimeout, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.confirmationTimeoutJob.Start(); err != nil {
		return fmt.Errorf("failed to start confirmation timeout job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.confirmationTimeoutJob.Stop()
}
