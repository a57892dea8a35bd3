package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const sqlAppendEvent = `
INSERT INTO event_log (id, type, occurred_at, customer_id, campaign_id, payload, metadata)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO NOTHING
`

// AppendEvent adds an event to the log. It returns false when the id was
// already logged.
func (s *Store) AppendEvent(ctx context.Context, e LoggedEvent) (bool, error) {
	res, err := s.db.ExecContext(ctx, sqlAppendEvent,
		e.ID, e.Type, e.OccurredAt, e.CustomerID, e.CampaignID, e.Payload, e.Metadata)
	if err != nil {
		return false, fmt.Errorf("failed to append event: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows == 1, nil
}

const sqlListEventLog = `
SELECT seq, id, type, occurred_at, customer_id, campaign_id, payload, metadata
FROM event_log
WHERE seq > $1
ORDER BY seq ASC
LIMIT $2
`

// ListEventLog pages through the log in append order
func (s *Store) ListEventLog(ctx context.Context, afterSeq int64, limit int) ([]LoggedEvent, error) {
	var evs []LoggedEvent
	if err := s.db.SelectContext(ctx, &evs, sqlListEventLog, afterSeq, limit); err != nil {
		return nil, fmt.Errorf("failed to list event log: %w", err)
	}
	return evs, nil
}

const sqlInsertRollupEvent = `
INSERT INTO rollup_events (event_id, campaign_id, rollup_date, metric)
VALUES ($1, $2, $3, $4)
ON CONFLICT (event_id) DO NOTHING
`

// One statement per counter keeps the column name out of string building.
var sqlIncrementRollup = map[Metric]string{
	MetricSent:      rollupUpsert("sent"),
	MetricDelivered: rollupUpsert("delivered"),
	MetricOpened:    rollupUpsert("opened"),
	MetricClicked:   rollupUpsert("clicked"),
	MetricConverted: rollupUpsert("converted"),
	MetricBounced:   rollupUpsert("bounced"),
}

func rollupUpsert(column string) string {
	return `
INSERT INTO metric_rollups (campaign_id, rollup_date, ` + column + `)
VALUES ($1, $2, 1)
ON CONFLICT (campaign_id, rollup_date) DO UPDATE SET ` + column + ` = metric_rollups.` + column + ` + 1
`
}

// ApplyRollupEvent counts inc exactly once per event id. It returns false
// if the event id had already been counted.
func (s *Store) ApplyRollupEvent(ctx context.Context, inc RollupIncrement) (bool, error) {
	query, ok := sqlIncrementRollup[inc.Metric]
	if !ok {
		return false, fmt.Errorf("unknown metric %q", inc.Metric)
	}

	applied := false
	err := s.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, sqlInsertRollupEvent, inc.EventID, inc.CampaignID, inc.Date, inc.Metric)
		if err != nil {
			return fmt.Errorf("failed to record rollup event: %w", err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return nil
		}
		if _, err := tx.ExecContext(ctx, query, inc.CampaignID, inc.Date); err != nil {
			return fmt.Errorf("failed to increment rollup: %w", err)
		}
		applied = true
		return nil
	})
	return applied, err
}

const sqlGetMetricRollup = `
SELECT campaign_id, rollup_date, sent, delivered, opened, clicked, converted, bounced
FROM metric_rollups
WHERE campaign_id = $1 AND rollup_date = $2
`

const sqlGetMetricRollups = `
SELECT campaign_id, rollup_date, sent, delivered, opened, clicked, converted, bounced
FROM metric_rollups
WHERE campaign_id = $1
ORDER BY rollup_date ASC
`

// GetMetricRollups returns the rollups of one campaign, oldest date first
func (s *Store) GetMetricRollups(ctx context.Context, campaignID string) ([]MetricRollup, error) {
	var rollups []MetricRollup
	err := s.db.SelectContext(ctx, &rollups, sqlGetMetricRollups, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to get metric rollups: %w", err)
	}
	return rollups, nil
}

// GetMetricRollup returns one (campaign, date) rollup; missing rows are zero
func (s *Store) GetMetricRollup(ctx context.Context, campaignID string, date time.Time) (MetricRollup, error) {
	var rollups []MetricRollup
	err := s.db.SelectContext(ctx, &rollups, sqlGetMetricRollup, campaignID, RollupDate(date))
	if err != nil {
		return MetricRollup{}, fmt.Errorf("failed to get metric rollup: %w", err)
	}
	if len(rollups) == 0 {
		return MetricRollup{CampaignID: campaignID, Date: RollupDate(date)}, nil
	}
	return rollups[0], nil
}

const (
	sqlClearRollupEvents  = `DELETE FROM rollup_events`
	sqlClearMetricRollups = `DELETE FROM metric_rollups`
)

// ResetRollups clears every rollup and its ledger ahead of a full replay
func (s *Store) ResetRollups(ctx context.Context) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, sqlClearRollupEvents); err != nil {
			return fmt.Errorf("failed to clear rollup events: %w", err)
		}
		if _, err := tx.ExecContext(ctx, sqlClearMetricRollups); err != nil {
			return fmt.Errorf("failed to clear metric rollups: %w", err)
		}
		return nil
	})
}
