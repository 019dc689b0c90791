// File: internal/jobs/view_sweeper.go
package jobs

import (
	"time"

	"mottars_backend/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// IdleSweeper closes views that have not been touched for a while.
type IdleSweeper interface {
	SweepIdle(maxIdle time.Duration) int
}

// ViewSweeperJob periodically tears down abandoned detail visits,
// verification flows and listing drafts, cancelling their pending tasks.
type ViewSweeperJob struct {
	views         IdleSweeper
	logger        *zap.Logger
	schedule      string
	maxIdle       time.Duration
	cronScheduler *cron.Cron
}

// NewViewSweeperJob creates a new ViewSweeperJob.
func NewViewSweeperJob(views IdleSweeper, logger *zap.Logger, cfg *config.Config) *ViewSweeperJob {
	scheduler := cron.New(
		cron.WithLogger(NewCronLogger(logger.Named("cron"))),
		cron.WithChain(cron.SkipIfStillRunning(NewCronLogger(logger.Named("cron")))),
	)
	return &ViewSweeperJob{
		views:         views,
		logger:        logger.Named("ViewSweeperJob"),
		schedule:      cfg.ViewSweepSchedule,
		maxIdle:       cfg.ViewIdleTimeout,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the cron job. An empty schedule or a
// non-positive idle timeout disables it.
func (j *ViewSweeperJob) SetupAndStart() error {
	if j.schedule == "" || j.maxIdle <= 0 {
		j.logger.Warn("View sweeper disabled (VIEW_SWEEP_SCHEDULE or VIEW_IDLE_TIMEOUT_MINUTES not set).")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(j.schedule, j.RunOnce)
	if err != nil {
		j.logger.Error("Failed to schedule view sweeper", zap.String("schedule", j.schedule), zap.Error(err))
		return err
	}

	j.logger.Info("View sweeper scheduled",
		zap.String("schedule", j.schedule),
		zap.Duration("maxIdle", j.maxIdle),
		zap.Any("jobID", jobID),
	)
	j.cronScheduler.Start()
	return nil
}

// RunOnce performs a single sweep.
func (j *ViewSweeperJob) RunOnce() {
	closed := j.views.SweepIdle(j.maxIdle)
	if closed > 0 {
		j.logger.Info("Closed idle views", zap.Int("count", closed))
	}
}

// Stop gracefully stops the cron scheduler.
func (j *ViewSweeperJob) Stop() {
	if j.cronScheduler == nil {
		return
	}
	stopCtx := j.cronScheduler.Stop()
	select {
	case <-stopCtx.Done():
		j.logger.Info("View sweeper stopped.")
	case <-time.After(10 * time.Second):
		j.logger.Warn("View sweeper stop timed out.")
	}
}
