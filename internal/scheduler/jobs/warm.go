// Package jobs holds the scheduled jobs of the dashboard service.
package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/epsdash/pkg/logger"
)

// Warmer refreshes cached snapshots of a date; an empty date means the latest
type Warmer interface {
	Warm(ctx context.Context, date string) (string, error)
}

// WarmCacheJob prefetches the latest screening snapshot after the daily batch
type WarmCacheJob struct {
	warmer   Warmer
	schedule string
	logger   *logger.Logger
}

// NewWarmCacheJob creates a new cache warm-up job
func NewWarmCacheJob(warmer Warmer, schedule string, log *logger.Logger) *WarmCacheJob {
	return &WarmCacheJob{
		warmer:   warmer,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *WarmCacheJob) Name() string {
	return "warm_cache"
}

// Schedule returns the cron schedule (default Tue-Sat 07:30, after the US close batch)
func (j *WarmCacheJob) Schedule() string {
	return j.schedule
}

// Run warms the cache for the latest date and returns that date
func (j *WarmCacheJob) Run(ctx context.Context) (string, error) {
	j.logger.Debug("Starting scheduled cache warm-up")

	date, err := j.warmer.Warm(ctx, "")
	if err != nil {
		return "", fmt.Errorf("warm cache: %w", err)
	}

	j.logger.WithField("date", date).Info("Cache warm-up completed")
	return date, nil
}
