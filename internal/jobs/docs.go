// Package jobs provides scheduled background tasks for the work plans
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order processing.
//
// # Available Jobs
//
// 1. SubmissionJob - Periodically submits the next work order whose plan is
// ready: the plan has a project, is not cancelled, and every earlier stage
// is completed.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(submitNextOrderHandler, "*/5 * * * * *", logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The submission job takes a six-field cron expression with a seconds
// column, configured via SUBMISSION_JOB_SCHEDULE. Each tick handles at most
// one order, so the schedule bounds the submission rate.
//
// # Error Handling
//
// - The submission job ignores the expected empty-queue case (ErrNoOrderReady)
// - All other failures are logged; the order involved is marked broken by
//   the command handler and is never retried automatically
package jobs
