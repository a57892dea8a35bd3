package processor

import (
	"context"
	"fmt"
	"time"

	"campaign-engine/internal/enginerrors"
	"campaign-engine/internal/events"
	"campaign-engine/internal/observability"
	"campaign-engine/internal/store"
)

const DefaultReplayPageSize = 1000

// IngestProcessor appends stream events to the event log and folds them
// into per-campaign daily rollups, counting each event id once.
type IngestProcessor struct {
	store    EventStore
	seen     SeenSet
	logger   *observability.Logger
	pageSize int
}

// New creates an ingest processor. seen may be nil, in which case every
// event goes straight to the ledger.
func New(store EventStore, seen SeenSet, logger *observability.Logger) *IngestProcessor {
	return &IngestProcessor{
		store:    store,
		seen:     seen,
		logger:   logger,
		pageSize: DefaultReplayPageSize,
	}
}

func (p *IngestProcessor) Name() string {
	return "ingest"
}

// MetricFor maps an event type to the counter it increments.
func MetricFor(eventType string) (store.Metric, bool) {
	if eventType == events.TypeConversionTracked {
		return store.MetricConverted, true
	}
	switch events.Action(eventType) {
	case "sent":
		return store.MetricSent, true
	case "delivered":
		return store.MetricDelivered, true
	case "opened":
		return store.MetricOpened, true
	case "clicked":
		return store.MetricClicked, true
	case "bounced":
		return store.MetricBounced, true
	}
	return "", false
}

// Process handles one event from the stream
func (p *IngestProcessor) Process(ctx context.Context, e events.Event) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "event_id", Value: e.ID},
		observability.Field{Key: "event_type", Value: e.Type},
	)

	if err := e.Validate(); err != nil {
		observability.EventsIngested.WithLabelValues("invalid").Inc()
		return enginerrors.Validation(enginerrors.CodeInvalidInput, err.Error())
	}

	if p.seen != nil {
		seen, err := p.seen.Seen(ctx, e.ID)
		if err != nil {
			p.logger.Warn(ctx, "seen set unavailable, falling back to ledger: "+err.Error())
		} else if seen {
			observability.EventsIngested.WithLabelValues("duplicate").Inc()
			p.logger.Debug(ctx, "event recently seen, skipped")
			return nil
		}
	}

	counted, err := p.ingest(ctx, e)
	if err != nil {
		return err
	}

	// marked only once durable, a failed attempt must stay redeliverable
	if p.seen != nil {
		if err := p.seen.Mark(ctx, e.ID); err != nil {
			p.logger.Warn(ctx, "failed to mark event as seen: "+err.Error())
		}
	}

	if counted {
		observability.EventsIngested.WithLabelValues("counted").Inc()
	} else {
		observability.EventsIngested.WithLabelValues("duplicate").Inc()
	}
	return nil
}

// ingest writes the event to the log and applies its rollup. Both writes are
// idempotent on the event id, so a retry after a partial failure converges.
// It reports whether a counter was incremented.
func (p *IngestProcessor) ingest(ctx context.Context, e events.Event) (bool, error) {
	if _, err := p.store.AppendEvent(ctx, toLogged(e)); err != nil {
		p.logger.Error(ctx, "failed to append event", err)
		return false, enginerrors.DataSourceUnavailable("failed to append event", err)
	}
	return p.fold(ctx, e.ID, e.Type, e.CampaignID, e.Timestamp)
}

func (p *IngestProcessor) fold(ctx context.Context, eventID, eventType string, campaignID *string, at time.Time) (bool, error) {
	metric, ok := MetricFor(eventType)
	if !ok || campaignID == nil || *campaignID == "" {
		return false, nil
	}
	applied, err := p.store.ApplyRollupEvent(ctx, store.RollupIncrement{
		EventID:    eventID,
		CampaignID: *campaignID,
		Date:       store.RollupDate(at),
		Metric:     metric,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to apply rollup", err)
		return false, enginerrors.DataSourceUnavailable("failed to apply rollup", err)
	}
	return applied, nil
}

func toLogged(e events.Event) store.LoggedEvent {
	return store.LoggedEvent{
		ID:         e.ID,
		Type:       e.Type,
		OccurredAt: e.Timestamp.UTC(),
		CustomerID: e.CustomerID,
		CampaignID: e.CampaignID,
		Payload: store.NewJSON(store.LoggedPayload{
			EventType:  e.Type,
			CampaignID: e.CampaignID,
			Properties: e.Properties,
		}),
		Metadata: store.NewJSON(e.Metadata),
	}
}

// Replay feeds events through the ledger without the recently-seen filter.
// Any interleaving of duplicates yields the same rollups as processing each
// distinct event once.
func (p *IngestProcessor) Replay(ctx context.Context, evs []events.Event) (int, error) {
	counted := 0
	for _, e := range evs {
		if err := ctx.Err(); err != nil {
			return counted, err
		}
		if err := e.Validate(); err != nil {
			p.logger.Warn(observability.WithFields(ctx, observability.Field{Key: "event_id", Value: e.ID}),
				"skipping invalid event during replay: "+err.Error())
			continue
		}
		ok, err := p.ingest(ctx, e)
		if err != nil {
			return counted, err
		}
		if ok {
			counted++
		}
	}
	return counted, nil
}

// Rebuild clears every rollup and recomputes them from the event log.
func (p *IngestProcessor) Rebuild(ctx context.Context) (int, error) {
	if err := p.store.ResetRollups(ctx); err != nil {
		return 0, fmt.Errorf("failed to reset rollups: %w", err)
	}

	var afterSeq int64
	counted := 0
	for {
		page, err := p.store.ListEventLog(ctx, afterSeq, p.pageSize)
		if err != nil {
			return counted, fmt.Errorf("failed to read event log: %w", err)
		}
		for _, le := range page {
			ok, err := p.fold(ctx, le.ID, le.Type, le.CampaignID, le.OccurredAt)
			if err != nil {
				return counted, err
			}
			if ok {
				counted++
			}
			afterSeq = le.Seq
		}
		if len(page) < p.pageSize {
			break
		}
	}

	p.logger.Info(observability.WithFields(ctx, observability.Field{Key: "counted", Value: counted}),
		"rollups rebuilt from event log")
	return counted, nil
}

// Rollup returns the counters of one campaign for the UTC date of day.
func (p *IngestProcessor) Rollup(ctx context.Context, campaignID string, day time.Time) (store.MetricRollup, error) {
	r, err := p.store.GetMetricRollup(ctx, campaignID, store.RollupDate(day))
	if err != nil {
		return store.MetricRollup{}, fmt.Errorf("failed to get rollup: %w", err)
	}
	return r, nil
}

// Rollups returns every daily rollup of a campaign, oldest first.
func (p *IngestProcessor) Rollups(ctx context.Context, campaignID string) ([]store.MetricRollup, error) {
	rs, err := p.store.GetMetricRollups(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rollups: %w", err)
	}
	return rs, nil
}
