package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"workplans/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// SubmissionJob manages the scheduled submission of queued work orders.
// Each tick it submits at most one order whose plan is ready, so a slow or
// failing LIMS never blocks the rest of the queue for more than one tick.
type SubmissionJob struct {
	handler  commands.SubmitNextOrderCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewSubmissionJob creates a new job for submitting ready work orders.
// The schedule is a six-field cron expression with a seconds column, e.g.
// "*/5 * * * * *" to run every five seconds.
func NewSubmissionJob(
	handler commands.SubmitNextOrderCommandHandler,
	schedule string,
	logger *slog.Logger,
) *SubmissionJob {
	return &SubmissionJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "submission_job"),
	}
}

// Start begins the submission job on its schedule.
func (j *SubmissionJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewSubmitNextOrderCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// An empty queue is the normal case, not a failure
			if !errors.Is(err, commands.ErrNoOrderReady) {
				j.logger.ErrorContext(ctx, "Work order submission job failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Work order submission job started", "schedule", j.schedule)
	return nil
}

// Stop stops the submission job.
func (j *SubmissionJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Work order submission job stopped")
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	submissionJob *SubmissionJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	submitNextOrderHandler commands.SubmitNextOrderCommandHandler,
	submissionSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		submissionJob: NewSubmissionJob(submitNextOrderHandler, submissionSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.submissionJob.Start(); err != nil {
		return fmt.Errorf("failed to start submission job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.submissionJob.Stop()
}
