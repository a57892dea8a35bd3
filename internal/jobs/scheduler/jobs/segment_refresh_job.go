package jobs

import (
	"context"
	"fmt"
	"time"

	"campaign-engine/internal/observability"
)

type SegmentRefresher interface {
	RefreshDue(ctx context.Context) (int, error)
}

// SegmentRefreshJob re-evaluates segments whose refresh interval elapsed
type SegmentRefreshJob struct {
	segments SegmentRefresher
	logger   *observability.Logger
	interval time.Duration
}

// NewSegmentRefreshJob creates a new segment refresh job
func NewSegmentRefreshJob(segments SegmentRefresher, logger *observability.Logger, interval time.Duration) *SegmentRefreshJob {
	if interval == 0 {
		interval = 1 * time.Minute
	}

	return &SegmentRefreshJob{
		segments: segments,
		logger:   logger,
		interval: interval,
	}
}

// Name returns the job name
func (j *SegmentRefreshJob) Name() string {
	return "segment_refresh"
}

// Schedule returns how often the job should run
func (j *SegmentRefreshJob) Schedule() time.Duration {
	return j.interval
}

// Run refreshes every due segment
func (j *SegmentRefreshJob) Run(ctx context.Context) error {
	refreshed, err := j.segments.RefreshDue(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh segments: %w", err)
	}
	if refreshed > 0 {
		j.logger.Info(ctx, fmt.Sprintf("Refreshed %d segments", refreshed))
	}
	return nil
}
