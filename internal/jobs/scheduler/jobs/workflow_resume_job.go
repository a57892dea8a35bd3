package jobs

import (
	"context"
	"fmt"
	"time"

	"campaign-engine/internal/clock"
	"campaign-engine/internal/observability"
)

type WorkflowTicker interface {
	Tick(ctx context.Context, now time.Time) (int, error)
}

// WorkflowResumeJob resumes workflow instances whose wait has elapsed or
// whose retry is due
type WorkflowResumeJob struct {
	workflows WorkflowTicker
	clock     clock.Clock
	logger    *observability.Logger
	interval  time.Duration
}

// NewWorkflowResumeJob creates a new workflow resume job
func NewWorkflowResumeJob(workflows WorkflowTicker, clk clock.Clock, logger *observability.Logger, interval time.Duration) *WorkflowResumeJob {
	if interval == 0 {
		interval = 10 * time.Second
	}

	return &WorkflowResumeJob{
		workflows: workflows,
		clock:     clk,
		logger:    logger,
		interval:  interval,
	}
}

// Name returns the job name
func (j *WorkflowResumeJob) Name() string {
	return "workflow_resume"
}

// Schedule returns how often the job should run
func (j *WorkflowResumeJob) Schedule() time.Duration {
	return j.interval
}

// Run advances every due workflow instance
func (j *WorkflowResumeJob) Run(ctx context.Context) error {
	resumed, err := j.workflows.Tick(ctx, j.clock.Now())
	if err != nil {
		return fmt.Errorf("failed to resume workflows: %w", err)
	}
	if resumed > 0 {
		j.logger.Debug(ctx, fmt.Sprintf("Resumed %d workflow instances", resumed))
	}
	return nil
}
