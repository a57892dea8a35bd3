package jobs

import (
	"context"
	"errors"
	"fmt"

	"campaign-engine/internal/observability"

	"github.com/hibiken/asynq"
)

// Enqueuer is the part of the asynq client the Client depends on.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// Client handles enqueueing background jobs
type Client struct {
	client Enqueuer
	logger *observability.Logger
}

// NewClient creates a new job client
func NewClient(opt asynq.RedisClientOpt, logger *observability.Logger) *Client {
	return NewClientWithEnqueuer(asynq.NewClient(opt), logger)
}

func NewClientWithEnqueuer(enqueuer Enqueuer, logger *observability.Logger) *Client {
	return &Client{
		client: enqueuer,
		logger: logger,
	}
}

// Close closes the client connection
func (c *Client) Close() error {
	return c.client.Close()
}

// EnqueueWorkflowWebhook enqueues a call_webhook step. A task already
// enqueued under the same id counts as success.
func (c *Client) EnqueueWorkflowWebhook(ctx context.Context, payload WorkflowWebhookPayload) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "task_id", Value: payload.TaskID},
		observability.Field{Key: "instance_id", Value: payload.InstanceID},
	)

	task, err := NewWorkflowWebhookTask(payload)
	if err != nil {
		c.logger.Error(ctx, "failed to create workflow webhook task", err)
		return fmt.Errorf("failed to create workflow webhook task: %w", err)
	}

	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
			c.logger.Debug(ctx, "workflow webhook task already enqueued")
			return nil
		}
		c.logger.Error(ctx, "failed to enqueue workflow webhook task", err)
		return fmt.Errorf("failed to enqueue workflow webhook task: %w", err)
	}

	c.logger.Info(ctx, fmt.Sprintf("enqueued workflow webhook task: %s (queue: %s)", info.ID, info.Queue))
	return nil
}
