package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=interfaces.go -destination=mocks_test.go -package=processor

import (
	"context"
	"time"

	"campaign-engine/internal/store"
)

// EventStore defines the database operations required by IngestProcessor
type EventStore interface {
	// Event log
	AppendEvent(ctx context.Context, e store.LoggedEvent) (bool, error)
	ListEventLog(ctx context.Context, afterSeq int64, limit int) ([]store.LoggedEvent, error)

	// Rollups
	ApplyRollupEvent(ctx context.Context, inc store.RollupIncrement) (bool, error)
	GetMetricRollup(ctx context.Context, campaignID string, date time.Time) (store.MetricRollup, error)
	GetMetricRollups(ctx context.Context, campaignID string) ([]store.MetricRollup, error)
	ResetRollups(ctx context.Context) error
}

// SeenSet is the bounded recently-seen filter in front of the rollup ledger.
// It may forget ids; the ledger stays authoritative.
type SeenSet interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}
