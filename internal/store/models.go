package store

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"campaign-engine/internal/criteria"

	"github.com/google/uuid"
)

// JSON stores any JSON-encodable value in a JSONB column.
type JSON[T any] struct {
	V T
}

func NewJSON[T any](v T) JSON[T] {
	return JSON[T]{V: v}
}

// Value implements the driver.Valuer interface for JSON
func (j JSON[T]) Value() (driver.Value, error) {
	b, err := json.Marshal(j.V)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Scan implements the sql.Scanner interface for JSON
func (j *JSON[T]) Scan(value interface{}) error {
	var zero T
	if value == nil {
		j.V = zero
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("incompatible type for JSON")
	}

	if len(bytes) == 0 || string(bytes) == "null" {
		j.V = zero
		return nil
	}
	return json.Unmarshal(bytes, &j.V)
}

// StringArray is a custom type for PostgreSQL text[] arrays
type StringArray []string

// Value implements the driver.Valuer interface for StringArray
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	quoted := make([]string, len(a))
	for i, s := range a {
		quoted[i] = `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
	}
	return "{" + strings.Join(quoted, ",") + "}", nil
}

// Scan implements the sql.Scanner interface for StringArray
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}

	var str string
	switch v := value.(type) {
	case []byte:
		str = string(v)
	case string:
		str = v
	default:
		return fmt.Errorf("unsupported type for StringArray: %T", value)
	}

	str = strings.TrimSuffix(strings.TrimPrefix(str, "{"), "}")
	if str == "" {
		*a = []string{}
		return nil
	}

	parts := strings.Split(str, ",")
	for i, p := range parts {
		parts[i] = strings.Trim(p, `"`)
	}
	*a = parts
	return nil
}

// ============================================================================
// Segments
// ============================================================================

type SegmentType string

const (
	SegmentTypeStatic  SegmentType = "static"
	SegmentTypeDynamic SegmentType = "dynamic"
)

type Segment struct {
	ID               uuid.UUID               `db:"id"`
	Name             string                  `db:"name"`
	Type             SegmentType             `db:"type"`
	Criteria         JSON[criteria.Criteria] `db:"criteria"`
	RefreshCadence   string                  `db:"refresh_cadence"`
	CachedSize       int                     `db:"cached_size"`
	SnapshotVersion  int64                   `db:"snapshot_version"`
	SnapshotChecksum string                  `db:"snapshot_checksum"`
	LastRefreshedAt  *time.Time              `db:"last_refreshed_at"`
	CreatedAt        time.Time               `db:"created_at"`
	UpdatedAt        time.Time               `db:"updated_at"`
	DeletedAt        *time.Time              `db:"deleted_at"`
}

// Suppression records a customer who must never be messaged again.
type Suppression struct {
	CustomerID string    `db:"customer_id"`
	Reason     string    `db:"reason"`
	CreatedAt  time.Time `db:"created_at"`
}

// ============================================================================
// Content
// ============================================================================

type ContentStatus string

const (
	ContentStatusDraft    ContentStatus = "draft"
	ContentStatusApproved ContentStatus = "approved"
	ContentStatusArchived ContentStatus = "archived"
)

// ContentVariant is one weighted alternative of a piece of content.
type ContentVariant struct {
	ID      string `json:"id" validate:"required"`
	Weight  int    `json:"weight" validate:"gte=0"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body"`
}

type Content struct {
	ID         uuid.UUID              `db:"id"`
	Name       string                 `db:"name"`
	Channel    string                 `db:"channel"`
	Version    int                    `db:"version"`
	Status     ContentStatus          `db:"status"`
	TemplateID string                 `db:"template_id"`
	Variants   JSON[[]ContentVariant] `db:"variants"`
	CreatedAt  time.Time              `db:"created_at"`
	UpdatedAt  time.Time              `db:"updated_at"`
}

// ============================================================================
// Campaigns
// ============================================================================

type CampaignType string

const (
	CampaignTypeEmail        CampaignType = "email"
	CampaignTypeSMS          CampaignType = "sms"
	CampaignTypePush         CampaignType = "push"
	CampaignTypeSocial       CampaignType = "social"
	CampaignTypeMultiChannel CampaignType = "multi_channel"
)

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusScheduled CampaignStatus = "scheduled"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusFailed    CampaignStatus = "failed"
)

// Terminal reports whether no further transition is possible.
func (s CampaignStatus) Terminal() bool {
	return s == CampaignStatusCompleted || s == CampaignStatusFailed
}

// Goal is a metric target a campaign is measured against.
type Goal struct {
	Metric string `json:"metric" validate:"required,oneof=sent delivered opened clicked converted bounced"`
	Target int64  `json:"target" validate:"gt=0"`
}

type Campaign struct {
	ID              uuid.UUID      `db:"id"`
	Name            string         `db:"name"`
	Type            CampaignType   `db:"type"`
	Channels        StringArray    `db:"channels"`
	Status          CampaignStatus `db:"status"`
	SegmentID       uuid.UUID      `db:"segment_id"`
	ContentID       uuid.UUID      `db:"content_id"`
	StartAt         time.Time      `db:"start_at"`
	EndAt           *time.Time     `db:"end_at"`
	Timezone        string         `db:"timezone"`
	Recurrence      string         `db:"recurrence"`
	BudgetTotal     int64          `db:"budget_total"`
	BudgetSpent     int64          `db:"budget_spent"`
	CostPerSend     int64          `db:"cost_per_send"`
	Goals           JSON[[]Goal]   `db:"goals"`
	BatchSize       int            `db:"batch_size"`
	FailureReason   *string        `db:"failure_reason"`
	RunNumber       int            `db:"run_number"`
	SnapshotVersion int64          `db:"snapshot_version"`
	TotalRecipients int            `db:"total_recipients"`
	TotalBatches    int            `db:"total_batches"`
	NextBatch       int            `db:"next_batch"`
	NextRunAt       *time.Time     `db:"next_run_at"`
	LaunchedAt      *time.Time     `db:"launched_at"`
	CompletedAt     *time.Time     `db:"completed_at"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

// RunInProgress reports whether the current run still has batches left.
func (c Campaign) RunInProgress() bool {
	return c.RunNumber > 0 && c.NextBatch > 0 && c.NextBatch <= c.TotalBatches
}

// ============================================================================
// Dispatch ledger
// ============================================================================

type DispatchStatus string

const (
	DispatchStatusPending    DispatchStatus = "pending"
	DispatchStatusDispatched DispatchStatus = "dispatched"
	DispatchStatusSent       DispatchStatus = "sent"
	DispatchStatusFailed     DispatchStatus = "failed"
	DispatchStatusSkipped    DispatchStatus = "skipped"
)

func (s DispatchStatus) Terminal() bool {
	return s == DispatchStatusSent || s == DispatchStatusFailed || s == DispatchStatusSkipped
}

// DispatchKey identifies one ledger row.
type DispatchKey struct {
	CampaignID  uuid.UUID
	RunNumber   int
	RecipientID string
	Channel     string
}

type DispatchRecord struct {
	CampaignID        uuid.UUID      `db:"campaign_id"`
	RunNumber         int            `db:"run_number"`
	RecipientID       string         `db:"recipient_id"`
	Channel           string         `db:"channel"`
	BatchNumber       int            `db:"batch_number"`
	Status            DispatchStatus `db:"status"`
	Attempts          int            `db:"attempts"`
	ErrorCode         *string        `db:"error_code"`
	ErrorMessage      *string        `db:"error_message"`
	ProviderMessageID *string        `db:"provider_message_id"`
	DispatchedAt      *time.Time     `db:"dispatched_at"`
	CompletedAt       *time.Time     `db:"completed_at"`
	CreatedAt         time.Time      `db:"created_at"`
}

func (r DispatchRecord) Key() DispatchKey {
	return DispatchKey{CampaignID: r.CampaignID, RunNumber: r.RunNumber, RecipientID: r.RecipientID, Channel: r.Channel}
}

// DispatchOutcome is the terminal result written back to a ledger row.
type DispatchOutcome struct {
	Status            DispatchStatus
	Attempts          int
	ErrorCode         string
	ErrorMessage      string
	ProviderMessageID string
}

// DispatchCounts aggregates ledger rows of one run by status.
type DispatchCounts struct {
	Pending    int `db:"pending"`
	Dispatched int `db:"dispatched"`
	Sent       int `db:"sent"`
	Failed     int `db:"failed"`
	Skipped    int `db:"skipped"`
}

func (c DispatchCounts) Total() int {
	return c.Pending + c.Dispatched + c.Sent + c.Failed + c.Skipped
}

// Open counts rows without a terminal outcome.
func (c DispatchCounts) Open() int {
	return c.Pending + c.Dispatched
}

// ============================================================================
// Trigger rules and workflow instances
// ============================================================================

type StepType string

const (
	StepSendContent   StepType = "send_content"
	StepWait          StepType = "wait"
	StepUpdateSegment StepType = "update_segment"
	StepCallWebhook   StepType = "call_webhook"
)

type SegmentAction string

const (
	SegmentActionAdd      SegmentAction = "add"
	SegmentActionRemove   SegmentAction = "remove"
	SegmentActionSuppress SegmentAction = "suppress"
)

// WorkflowStep is one ordered action of a trigger rule.
type WorkflowStep struct {
	Type          StepType      `json:"type" validate:"required,oneof=send_content wait update_segment call_webhook"`
	ContentID     *uuid.UUID    `json:"content_id,omitempty"`
	Channel       string        `json:"channel,omitempty"`
	DelaySeconds  int64         `json:"delay_seconds,omitempty" validate:"gte=0"`
	SegmentID     *uuid.UUID    `json:"segment_id,omitempty"`
	SegmentAction SegmentAction `json:"segment_action,omitempty"`
	WebhookURL    string        `json:"webhook_url,omitempty"`
}

func (s WorkflowStep) Delay() time.Duration {
	return time.Duration(s.DelaySeconds) * time.Second
}

type TriggerRule struct {
	ID        uuid.UUID               `db:"id"`
	Name      string                  `db:"name"`
	EventType string                  `db:"event_type"`
	Criteria  JSON[criteria.Criteria] `db:"criteria"`
	Steps     JSON[[]WorkflowStep]    `db:"steps"`
	Enabled   bool                    `db:"enabled"`
	CreatedAt time.Time               `db:"created_at"`
	UpdatedAt time.Time               `db:"updated_at"`
}

type WorkflowStatus string

const (
	WorkflowStatusPending   WorkflowStatus = "pending"
	WorkflowStatusWaiting   WorkflowStatus = "waiting"
	WorkflowStatusCompleted WorkflowStatus = "completed"
	WorkflowStatusFailed    WorkflowStatus = "failed"
	WorkflowStatusCancelled WorkflowStatus = "cancelled"
)

func (s WorkflowStatus) Terminal() bool {
	return s == WorkflowStatusCompleted || s == WorkflowStatusFailed || s == WorkflowStatusCancelled
}

type WorkflowInstance struct {
	ID         uuid.UUID           `db:"id"`
	CustomerID string              `db:"customer_id"`
	RuleID     uuid.UUID           `db:"rule_id"`
	EventID    string              `db:"event_id"`
	Payload    JSON[LoggedPayload] `db:"payload"`
	StepIndex  int                 `db:"step_index"`
	Status     WorkflowStatus      `db:"status"`
	ResumeAt   *time.Time          `db:"resume_at"`
	Attempts   int                 `db:"attempts"`
	LastError  *string             `db:"last_error"`
	CreatedAt  time.Time           `db:"created_at"`
	UpdatedAt  time.Time           `db:"updated_at"`
}

// Key is the dedup key of the instance.
func (w WorkflowInstance) Key() string {
	return fmt.Sprintf("%s:%s:%s", w.CustomerID, w.RuleID, w.EventID)
}

// LoggedPayload is the triggering event's data kept with an instance.
type LoggedPayload struct {
	EventType  string                    `json:"event_type"`
	CampaignID *string                   `json:"campaign_id,omitempty"`
	Properties map[string]criteria.Value `json:"properties,omitempty"`
}

// ============================================================================
// Event log and metric rollups
// ============================================================================

// LoggedEvent is one row of the append-only event log.
type LoggedEvent struct {
	Seq        int64                   `db:"seq"`
	ID         string                  `db:"id"`
	Type       string                  `db:"type"`
	OccurredAt time.Time               `db:"occurred_at"`
	CustomerID string                  `db:"customer_id"`
	CampaignID *string                 `db:"campaign_id"`
	Payload    JSON[LoggedPayload]     `db:"payload"`
	Metadata   JSON[map[string]string] `db:"metadata"`
}

type Metric string

const (
	MetricSent      Metric = "sent"
	MetricDelivered Metric = "delivered"
	MetricOpened    Metric = "opened"
	MetricClicked   Metric = "clicked"
	MetricConverted Metric = "converted"
	MetricBounced   Metric = "bounced"
)

// RollupIncrement is one counted occurrence keyed by the event that caused it.
type RollupIncrement struct {
	EventID    string
	CampaignID string
	Date       time.Time
	Metric     Metric
}

type MetricRollup struct {
	CampaignID string    `db:"campaign_id"`
	Date       time.Time `db:"rollup_date"`
	Sent       int64     `db:"sent"`
	Delivered  int64     `db:"delivered"`
	Opened     int64     `db:"opened"`
	Clicked    int64     `db:"clicked"`
	Converted  int64     `db:"converted"`
	Bounced    int64     `db:"bounced"`
}

// Get returns the counter for a metric.
func (r MetricRollup) Get(m Metric) int64 {
	switch m {
	case MetricSent:
		return r.Sent
	case MetricDelivered:
		return r.Delivered
	case MetricOpened:
		return r.Opened
	case MetricClicked:
		return r.Clicked
	case MetricConverted:
		return r.Converted
	case MetricBounced:
		return r.Bounced
	}
	return 0
}

// Add increments the counter for a metric by n.
func (r *MetricRollup) Add(m Metric, n int64) {
	switch m {
	case MetricSent:
		r.Sent += n
	case MetricDelivered:
		r.Delivered += n
	case MetricOpened:
		r.Opened += n
	case MetricClicked:
		r.Clicked += n
	case MetricConverted:
		r.Converted += n
	case MetricBounced:
		r.Bounced += n
	}
}

// RollupDate truncates t to its UTC calendar date.
func RollupDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
