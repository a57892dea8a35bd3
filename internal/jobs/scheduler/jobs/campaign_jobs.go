package jobs

import (
	"context"
	"fmt"
	"time"

	"campaign-engine/internal/observability"
)

const DefaultLaunchLimit = 100

// CampaignRunner is the slice of the campaign processor the scheduler drives
type CampaignRunner interface {
	LaunchDue(ctx context.Context, limit int) (int, error)
	DispatchActive(ctx context.Context) (int, error)
}

// CampaignStartJob launches scheduled and recurring campaigns once due
type CampaignStartJob struct {
	campaigns CampaignRunner
	logger    *observability.Logger
	interval  time.Duration
	limit     int
}

// NewCampaignStartJob creates a new campaign start job
func NewCampaignStartJob(campaigns CampaignRunner, logger *observability.Logger, interval time.Duration) *CampaignStartJob {
	if interval == 0 {
		interval = 1 * time.Minute
	}

	return &CampaignStartJob{
		campaigns: campaigns,
		logger:    logger,
		interval:  interval,
		limit:     DefaultLaunchLimit,
	}
}

// Name returns the job name
func (j *CampaignStartJob) Name() string {
	return "campaign_start"
}

// Schedule returns how often the job should run
func (j *CampaignStartJob) Schedule() time.Duration {
	return j.interval
}

// Run launches every due campaign
func (j *CampaignStartJob) Run(ctx context.Context) error {
	launched, err := j.campaigns.LaunchDue(ctx, j.limit)
	if err != nil {
		return fmt.Errorf("failed to launch due campaigns: %w", err)
	}
	if launched > 0 {
		j.logger.Info(ctx, fmt.Sprintf("Launched %d due campaigns", launched))
	}
	return nil
}

// CampaignDispatchJob sends the next batch of every running campaign. One
// batch per campaign per tick keeps pause and cancel effective at batch
// boundaries.
type CampaignDispatchJob struct {
	campaigns CampaignRunner
	logger    *observability.Logger
	interval  time.Duration
}

// NewCampaignDispatchJob creates a new campaign dispatch job
func NewCampaignDispatchJob(campaigns CampaignRunner, logger *observability.Logger, interval time.Duration) *CampaignDispatchJob {
	if interval == 0 {
		interval = 5 * time.Second
	}

	return &CampaignDispatchJob{
		campaigns: campaigns,
		logger:    logger,
		interval:  interval,
	}
}

// Name returns the job name
func (j *CampaignDispatchJob) Name() string {
	return "campaign_dispatch"
}

// Schedule returns how often the job should run
func (j *CampaignDispatchJob) Schedule() time.Duration {
	return j.interval
}

// Run dispatches one batch for each active campaign
func (j *CampaignDispatchJob) Run(ctx context.Context) error {
	dispatched, err := j.campaigns.DispatchActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to dispatch active campaigns: %w", err)
	}
	if dispatched > 0 {
		j.logger.Debug(ctx, fmt.Sprintf("Dispatched %d campaign batches", dispatched))
	}
	return nil
}
