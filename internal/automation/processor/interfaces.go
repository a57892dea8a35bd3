package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=processor

import (
	"context"
	"time"

	"campaign-engine/internal/channels"
	"campaign-engine/internal/clients/profile"
	"campaign-engine/internal/clients/renderer"
	"campaign-engine/internal/events"
	"campaign-engine/internal/jobs"
	"campaign-engine/internal/store"

	"github.com/google/uuid"
)

// RuleStore defines the database operations required by AutomationProcessor
type RuleStore interface {
	// Trigger rules
	CreateTriggerRule(ctx context.Context, params store.CreateTriggerRuleParams) (store.TriggerRule, error)
	GetTriggerRuleByID(ctx context.Context, ruleID uuid.UUID) (store.TriggerRule, error)
	ListEnabledTriggerRules(ctx context.Context) ([]store.TriggerRule, error)
	SetTriggerRuleEnabled(ctx context.Context, ruleID uuid.UUID, enabled bool) (store.TriggerRule, error)

	// Workflow instances
	CreateWorkflowInstance(ctx context.Context, params store.CreateWorkflowInstanceParams) (store.WorkflowInstance, bool, error)
	GetWorkflowInstance(ctx context.Context, id uuid.UUID) (store.WorkflowInstance, error)
	AdvanceWorkflowInstance(ctx context.Context, id uuid.UUID, expectedStep int, params store.AdvanceWorkflowParams) (store.WorkflowInstance, error)
	ListDueWorkflowInstances(ctx context.Context, now time.Time, limit int) ([]store.WorkflowInstance, error)
}

// ContentSource resolves send_content steps
type ContentSource interface {
	Get(ctx context.Context, contentID uuid.UUID) (store.Content, error)
}

// ProfileSource loads the customer a workflow acts on
type ProfileSource interface {
	GetCustomer(ctx context.Context, customerID string) (profile.Customer, error)
}

type Renderer interface {
	Render(ctx context.Context, key, templateID string, variables map[string]string) (renderer.Rendered, error)
}

type ChannelRegistry interface {
	Get(channel string) (channels.Adapter, error)
}

// SegmentMembership applies update_segment steps and customer change events
type SegmentMembership interface {
	AddMember(ctx context.Context, segmentID uuid.UUID, customerID string) error
	RemoveMember(ctx context.Context, segmentID uuid.UUID, customerID string) error
	Suppress(ctx context.Context, customerID, reason string) error
	HandleCustomerEvent(ctx context.Context, e events.Event) error
}

// OptOutSink is told about consent revocations so running dispatches skip
// the customer.
type OptOutSink interface {
	HandleCustomerEvent(ctx context.Context, e events.Event) error
}

// WebhookEnqueuer schedules call_webhook deliveries
type WebhookEnqueuer interface {
	EnqueueWorkflowWebhook(ctx context.Context, payload jobs.WorkflowWebhookPayload) error
}

type EventPublisher interface {
	Publish(ctx context.Context, e events.Event) error
}
