package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"campaign-engine/internal/channels"
	"campaign-engine/internal/jobs"
	"campaign-engine/internal/observability"

	"github.com/hibiken/asynq"
)

// WebhookWorker delivers call_webhook workflow steps
type WebhookWorker struct {
	secret     string
	httpClient *http.Client
	now        func() time.Time
	logger     *observability.Logger
}

// NewWebhookWorker creates a new webhook worker. Requests are signed with
// secret.
func NewWebhookWorker(secret string, timeout time.Duration, logger *observability.Logger) *WebhookWorker {
	return &WebhookWorker{
		secret: secret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		now:    time.Now,
		logger: logger,
	}
}

type webhookBody struct {
	InstanceID string          `json:"workflow_instance_id"`
	RuleID     string          `json:"rule_id"`
	CustomerID string          `json:"customer_id"`
	EventID    string          `json:"event_id"`
	Step       int             `json:"step"`
	Event      json.RawMessage `json:"event"`
}

// ProcessWorkflowWebhookTask processes a workflow webhook task (for Asynq).
// Server errors are retried by asynq with the same idempotency key; client
// errors are not.
func (w *WebhookWorker) ProcessWorkflowWebhookTask(ctx context.Context, task *asynq.Task) error {
	var payload jobs.WorkflowWebhookPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		w.logger.Error(ctx, "failed to unmarshal workflow webhook payload", err)
		return fmt.Errorf("failed to unmarshal workflow webhook payload: %w: %w", err, asynq.SkipRetry)
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "task_id", Value: payload.TaskID},
		observability.Field{Key: "instance_id", Value: payload.InstanceID},
		observability.Field{Key: "url", Value: payload.URL},
	)

	event, err := json.Marshal(payload.Event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w: %w", err, asynq.SkipRetry)
	}
	body, err := json.Marshal(webhookBody{
		InstanceID: payload.InstanceID.String(),
		RuleID:     payload.RuleID.String(),
		CustomerID: payload.CustomerID,
		EventID:    payload.EventID,
		Step:       payload.Step,
		Event:      event,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal webhook body: %w: %w", err, asynq.SkipRetry)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, payload.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w: %w", err, asynq.SkipRetry)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(channels.SignatureHeader, channels.Sign(w.secret, body, w.now().Unix()))
	req.Header.Set(channels.IdempotencyHeader, payload.TaskID)

	start := time.Now()
	resp, err := w.httpClient.Do(req)
	if err != nil {
		w.logger.Error(ctx, "failed to call workflow webhook", err)
		return fmt.Errorf("failed to call workflow webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 10240))

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "status_code", Value: resp.StatusCode},
		observability.Field{Key: "duration_ms", Value: time.Since(start).Milliseconds()},
	)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		w.logger.Info(ctx, "workflow webhook delivered")
		return nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		err := fmt.Errorf("webhook returned %d", resp.StatusCode)
		w.logger.Error(ctx, "workflow webhook failed, will retry", err)
		return err
	default:
		err := fmt.Errorf("webhook rejected with %d", resp.StatusCode)
		w.logger.Error(ctx, "workflow webhook rejected", err)
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}
}
