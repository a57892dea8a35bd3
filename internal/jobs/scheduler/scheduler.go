package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"campaign-engine/internal/observability"

	"github.com/google/uuid"
)

// Job is a periodic engine task: starting due campaigns, dispatching
// batches, refreshing segments, resuming workflows.
type Job interface {
	Name() string
	Run(ctx context.Context) error
	// Schedule is the pause between the end of one run and the start of
	// the next.
	Schedule() time.Duration
}

// Scheduler runs registered jobs on fixed delays. Runs of one job never
// overlap, and a run that outlasts its interval is followed by the next
// one only after the full pause.
type Scheduler struct {
	jobs   []Job
	logger *observability.Logger
	wg     sync.WaitGroup
	now    func() time.Time
}

var ErrInvalidInterval = errors.New("scheduled job interval must be positive")

func New(logger *observability.Logger) *Scheduler {
	return &Scheduler{
		logger: logger,
		now:    time.Now,
	}
}

// Register adds a job. Jobs with a non-positive interval are refused.
func (s *Scheduler) Register(job Job) error {
	ctx := jobContext(context.Background(), job)
	if job.Schedule() <= 0 {
		err := fmt.Errorf("%w: %s has %s", ErrInvalidInterval, job.Name(), job.Schedule())
		s.logger.Error(ctx, "Refusing scheduled job", err)
		return err
	}
	s.jobs = append(s.jobs, job)
	s.logger.Info(ctx, fmt.Sprintf("Registered scheduled job: %s (every %s)", job.Name(), job.Schedule()))
	return nil
}

// Start runs every job immediately and then on its delay. It blocks until
// ctx is done and every in-flight run has returned.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info(ctx, fmt.Sprintf("Starting scheduler with %d jobs", len(s.jobs)))

	for _, job := range s.jobs {
		s.wg.Add(1)
		go func(job Job) {
			defer s.wg.Done()
			s.loop(jobContext(ctx, job), job)
		}(job)
	}

	<-ctx.Done()
	s.wg.Wait()
	s.logger.Info(ctx, "Scheduler stopped")
	return ctx.Err()
}

// RunOnce executes every registered job once, in registration order, and
// returns the errors of all failed jobs.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	var errs []error
	for _, job := range s.jobs {
		if err := s.execute(jobContext(ctx, job), job); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", job.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, fmt.Sprintf("Stopping scheduled job: %s", job.Name()))
			return
		case <-timer.C:
			_ = s.execute(ctx, job)
			timer.Reset(job.Schedule())
		}
	}
}

// execute performs one run and records its outcome.
func (s *Scheduler) execute(ctx context.Context, job Job) error {
	ctx = observability.WithFields(ctx, observability.Field{Key: "run_id", Value: uuid.NewString()})
	start := s.now()

	err := job.Run(ctx)
	took := s.now().Sub(start)
	observability.SchedulerJobDuration.WithLabelValues(job.Name()).Observe(took.Seconds())

	if took > job.Schedule() {
		observability.SchedulerJobOverruns.WithLabelValues(job.Name()).Inc()
		s.logger.Warn(ctx, fmt.Sprintf("Job %s took %v, longer than its %v interval", job.Name(), took, job.Schedule()))
	}

	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			observability.SchedulerJobRuns.WithLabelValues(job.Name(), "cancelled").Inc()
			return err
		}
		observability.SchedulerJobRuns.WithLabelValues(job.Name(), "error").Inc()
		s.logger.Error(ctx, fmt.Sprintf("Job %s failed after %v", job.Name(), took), err)
		return err
	}

	observability.SchedulerJobRuns.WithLabelValues(job.Name(), "success").Inc()
	observability.SchedulerJobLastSuccess.WithLabelValues(job.Name()).Set(float64(s.now().Unix()))
	s.logger.Debug(ctx, fmt.Sprintf("Job %s completed in %v", job.Name(), took))
	return nil
}

func jobContext(ctx context.Context, job Job) context.Context {
	return observability.WithFields(ctx,
		observability.Field{Key: "scheduled_job", Value: job.Name()},
		observability.Field{Key: "interval", Value: job.Schedule().String()},
	)
}
