package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=processor

import (
	"context"
	"time"

	"campaign-engine/internal/channels"
	"campaign-engine/internal/clients/profile"
	"campaign-engine/internal/clients/renderer"
	"campaign-engine/internal/events"
	"campaign-engine/internal/segments/snapshot"
	"campaign-engine/internal/store"

	"github.com/google/uuid"
)

// CampaignStore defines the database operations required by CampaignProcessor
type CampaignStore interface {
	// Campaigns
	CreateCampaign(ctx context.Context, params store.CreateCampaignParams) (store.Campaign, error)
	GetCampaignByID(ctx context.Context, campaignID uuid.UUID) (store.Campaign, error)
	ScheduleCampaign(ctx context.Context, campaignID uuid.UUID, nextRunAt time.Time) (store.Campaign, error)
	UpdateCampaignStatus(ctx context.Context, campaignID uuid.UUID, from []store.CampaignStatus, to store.CampaignStatus, reason *string) (store.Campaign, error)
	StartCampaignRun(ctx context.Context, campaignID uuid.UUID, params store.StartRunParams) (store.Campaign, error)
	AdvanceCampaignBatch(ctx context.Context, campaignID uuid.UUID, runNumber, batch int) (store.Campaign, error)
	AddCampaignSpend(ctx context.Context, campaignID uuid.UUID, amount int64) error
	FinishCampaignRun(ctx context.Context, campaignID uuid.UUID, runNumber int, nextRunAt time.Time) (store.Campaign, error)
	ListDueCampaigns(ctx context.Context, now time.Time, limit int) ([]store.Campaign, error)
	ListCampaignsByStatus(ctx context.Context, status store.CampaignStatus) ([]store.Campaign, error)
	ListLiveCampaignsBySegment(ctx context.Context, segmentID uuid.UUID) ([]store.Campaign, error)

	// Dispatch ledger
	InsertDispatchRecords(ctx context.Context, records []store.DispatchRecord) error
	GetBatchDispatchRecords(ctx context.Context, campaignID uuid.UUID, runNumber, batch int) ([]store.DispatchRecord, error)
	MarkDispatched(ctx context.Context, key store.DispatchKey, at time.Time) (bool, error)
	RecordDispatchOutcome(ctx context.Context, key store.DispatchKey, outcome store.DispatchOutcome, at time.Time) (bool, error)
	FailInterruptedDispatches(ctx context.Context, campaignID uuid.UUID, runNumber, batch int, code string, at time.Time) (int, error)
	CountDispatchOutcomes(ctx context.Context, campaignID uuid.UUID, runNumber int) (store.DispatchCounts, error)
	DeletePendingDispatches(ctx context.Context, campaignID uuid.UUID, runNumber int) error
	AcquireDispatchLease(ctx context.Context, campaignID uuid.UUID, owner string, now, until time.Time) (bool, error)
	ReleaseDispatchLease(ctx context.Context, campaignID uuid.UUID, owner string) error

	// Suppressions and rollups
	ListSuppressions(ctx context.Context) ([]string, error)
	GetMetricRollups(ctx context.Context, campaignID string) ([]store.MetricRollup, error)
}

// ContentSource resolves campaign content
type ContentSource interface {
	Get(ctx context.Context, contentID uuid.UUID) (store.Content, error)
}

// SegmentSource resolves campaign audiences
type SegmentSource interface {
	GetSegment(ctx context.Context, segmentID uuid.UUID) (store.Segment, error)
	Snapshot(ctx context.Context, segmentID uuid.UUID) (*snapshot.Lease, error)
}

// ProfileSource loads recipient attributes and addresses at batch time
type ProfileSource interface {
	BatchGetCustomers(ctx context.Context, ids []string) ([]profile.Customer, error)
}

// Renderer renders a template once per cache key
type Renderer interface {
	Render(ctx context.Context, key, templateID string, variables map[string]string) (renderer.Rendered, error)
}

// ChannelRegistry resolves the adapter for a channel
type ChannelRegistry interface {
	Get(channel string) (channels.Adapter, error)
}

// EventPublisher emits campaign lifecycle and delivery events
type EventPublisher interface {
	Publish(ctx context.Context, e events.Event) error
	PublishBatch(ctx context.Context, evs []events.Event) error
}
