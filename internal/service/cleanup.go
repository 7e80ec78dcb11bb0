package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mhollis/agentcare/internal/port/artifactstore"
)

// CleanupJob periodically removes generated artifacts older than maxAge.
type CleanupJob struct {
	store  artifactstore.Store
	maxAge time.Duration
	cron   *cron.Cron
}

// NewCleanupJob schedules store cleanup on the given cron expression
// (standard five-field syntax). The job does not run until Start.
func NewCleanupJob(store artifactstore.Store, schedule string, maxAge time.Duration) (*CleanupJob, error) {
	j := &CleanupJob{
		store:  store,
		maxAge: maxAge,
		cron:   cron.New(),
	}
	if _, err := j.cron.AddFunc(schedule, j.run); err != nil {
		return nil, err
	}
	return j, nil
}

// Start begins the schedule in its own goroutine.
func (j *CleanupJob) Start() {
	j.cron.Start()
}

// Stop halts the schedule and waits for an in-flight run to finish.
func (j *CleanupJob) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

func (j *CleanupJob) run() {
	removed, err := j.store.Cleanup(context.Background(), j.maxAge)
	if err != nil {
		slog.Error("artifact cleanup failed", "error", err)
		return
	}
	if removed > 0 {
		slog.Info("artifact cleanup removed files", "count", removed, "max_age", j.maxAge)
	}
}
