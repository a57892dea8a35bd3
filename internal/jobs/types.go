package jobs

import (
	"encoding/json"
	"time"

	"campaign-engine/internal/store"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Job type constants
const (
	TypeWorkflowWebhook = "workflow:webhook"
)

// Queue names
const (
	QueueHigh   = "high"
	QueueMedium = "medium"
	QueueLow    = "low"
)

// Queues is the asynq queue priority map used by the worker process.
var Queues = map[string]int{
	QueueHigh:   6,
	QueueMedium: 3,
	QueueLow:    1,
}

const webhookMaxRetry = 5

// WorkflowWebhookPayload is one call_webhook step of a workflow instance.
type WorkflowWebhookPayload struct {
	TaskID     string              `json:"task_id"`
	InstanceID uuid.UUID           `json:"instance_id"`
	RuleID     uuid.UUID           `json:"rule_id"`
	CustomerID string              `json:"customer_id"`
	EventID    string              `json:"event_id"`
	Step       int                 `json:"step"`
	URL        string              `json:"url"`
	Event      store.LoggedPayload `json:"event"`
	EnqueuedAt time.Time           `json:"enqueued_at"`
}

// NewWorkflowWebhookTask creates a webhook task. The task id dedups
// re-enqueues of the same step.
func NewWorkflowWebhookTask(payload WorkflowWebhookPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeWorkflowWebhook, data,
		asynq.Queue(QueueMedium),
		asynq.MaxRetry(webhookMaxRetry),
		asynq.TaskID(payload.TaskID),
	), nil
}
