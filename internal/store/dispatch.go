package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const dispatchColumns = `campaign_id, run_number, recipient_id, channel, batch_number, status, attempts, error_code, error_message, provider_message_id, dispatched_at, completed_at, created_at`

const sqlInsertDispatchRecord = `
INSERT INTO dispatch_records (campaign_id, run_number, recipient_id, channel, batch_number)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (campaign_id, run_number, recipient_id, channel) DO NOTHING
`

// InsertDispatchRecords writes pending ledger rows; existing rows are left untouched
func (s *Store) InsertDispatchRecords(ctx context.Context, records []DispatchRecord) error {
	if len(records) == 0 {
		return nil
	}

	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		stmt, err := tx.PrepareContext(ctx, sqlInsertDispatchRecord)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, r := range records {
			_, err := stmt.ExecContext(ctx, r.CampaignID, r.RunNumber, r.RecipientID, r.Channel, r.BatchNumber)
			if err != nil {
				return fmt.Errorf("failed to insert dispatch record: %w", err)
			}
		}
		return nil
	})
}

const sqlGetBatchDispatchRecords = `
SELECT ` + dispatchColumns + `
FROM dispatch_records
WHERE campaign_id = $1 AND run_number = $2 AND batch_number = $3
ORDER BY recipient_id ASC, channel ASC
`

// GetBatchDispatchRecords retrieves every ledger row of one batch
func (s *Store) GetBatchDispatchRecords(ctx context.Context, campaignID uuid.UUID, runNumber, batch int) ([]DispatchRecord, error) {
	var records []DispatchRecord
	err := s.db.SelectContext(ctx, &records, sqlGetBatchDispatchRecords, campaignID, runNumber, batch)
	if err != nil {
		return nil, fmt.Errorf("failed to get batch dispatch records: %w", err)
	}
	return records, nil
}

const sqlMarkDispatched = `
UPDATE dispatch_records
SET status = 'dispatched', dispatched_at = $5
WHERE campaign_id = $1 AND run_number = $2 AND recipient_id = $3 AND channel = $4 AND status = 'pending'
`

// MarkDispatched claims a pending ledger row before the adapter is called.
// It returns false when the row was not pending.
func (s *Store) MarkDispatched(ctx context.Context, key DispatchKey, at time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx, sqlMarkDispatched, key.CampaignID, key.RunNumber, key.RecipientID, key.Channel, at)
	if err != nil {
		return false, fmt.Errorf("failed to mark dispatched: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows == 1, nil
}

const sqlRecordDispatchOutcome = `
UPDATE dispatch_records
SET status = $5,
    attempts = $6,
    error_code = NULLIF($7, ''),
    error_message = NULLIF($8, ''),
    provider_message_id = NULLIF($9, ''),
    completed_at = $10
WHERE campaign_id = $1 AND run_number = $2 AND recipient_id = $3 AND channel = $4
  AND status IN ('pending', 'dispatched')
`

// RecordDispatchOutcome writes the terminal outcome of a ledger row. Rows
// that already carry an outcome are never overwritten.
func (s *Store) RecordDispatchOutcome(ctx context.Context, key DispatchKey, outcome DispatchOutcome, at time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx, sqlRecordDispatchOutcome,
		key.CampaignID, key.RunNumber, key.RecipientID, key.Channel,
		outcome.Status, outcome.Attempts, outcome.ErrorCode, outcome.ErrorMessage, outcome.ProviderMessageID, at)
	if err != nil {
		return false, fmt.Errorf("failed to record dispatch outcome: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows == 1, nil
}

const sqlFailInterruptedDispatches = `
UPDATE dispatch_records
SET status = 'failed', error_code = $4, error_message = 'dispatch interrupted before an outcome was recorded', completed_at = $5
WHERE campaign_id = $1 AND run_number = $2 AND batch_number = $3 AND status = 'dispatched'
`

// FailInterruptedDispatches resolves rows left dispatched by a crash without re-sending them
func (s *Store) FailInterruptedDispatches(ctx context.Context, campaignID uuid.UUID, runNumber, batch int, code string, at time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, sqlFailInterruptedDispatches, campaignID, runNumber, batch, code, at)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve interrupted dispatches: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(rows), nil
}

const sqlCountDispatchOutcomes = `
SELECT
    COUNT(*) FILTER (WHERE status = 'pending')    AS pending,
    COUNT(*) FILTER (WHERE status = 'dispatched') AS dispatched,
    COUNT(*) FILTER (WHERE status = 'sent')       AS sent,
    COUNT(*) FILTER (WHERE status = 'failed')     AS failed,
    COUNT(*) FILTER (WHERE status = 'skipped')    AS skipped
FROM dispatch_records
WHERE campaign_id = $1 AND run_number = $2
`

// CountDispatchOutcomes aggregates the ledger of one run by status
func (s *Store) CountDispatchOutcomes(ctx context.Context, campaignID uuid.UUID, runNumber int) (DispatchCounts, error) {
	var counts DispatchCounts
	err := s.db.GetContext(ctx, &counts, sqlCountDispatchOutcomes, campaignID, runNumber)
	if err != nil {
		return DispatchCounts{}, fmt.Errorf("failed to count dispatch outcomes: %w", err)
	}
	return counts, nil
}

const sqlDeletePendingDispatches = `
DELETE FROM dispatch_records
WHERE campaign_id = $1 AND run_number = $2 AND status = 'pending'
`

// DeletePendingDispatches removes unclaimed rows of a run that never started,
// so a retried launch can rebuild the run's ledger from a fresh snapshot.
func (s *Store) DeletePendingDispatches(ctx context.Context, campaignID uuid.UUID, runNumber int) error {
	if _, err := s.db.ExecContext(ctx, sqlDeletePendingDispatches, campaignID, runNumber); err != nil {
		return fmt.Errorf("failed to delete pending dispatches: %w", err)
	}
	return nil
}

const sqlAcquireDispatchLease = `
INSERT INTO dispatch_leases (campaign_id, owner, expires_at)
VALUES ($1, $2, $4)
ON CONFLICT (campaign_id) DO UPDATE
SET owner = EXCLUDED.owner, expires_at = EXCLUDED.expires_at
WHERE dispatch_leases.owner = EXCLUDED.owner OR dispatch_leases.expires_at < $3
`

// AcquireDispatchLease claims or renews the right to dispatch a campaign's
// batches until the given time. It returns false while another owner holds
// an unexpired lease.
func (s *Store) AcquireDispatchLease(ctx context.Context, campaignID uuid.UUID, owner string, now, until time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx, sqlAcquireDispatchLease, campaignID, owner, now, until)
	if err != nil {
		return false, fmt.Errorf("failed to acquire dispatch lease: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows == 1, nil
}

const sqlReleaseDispatchLease = `
DELETE FROM dispatch_leases
WHERE campaign_id = $1 AND owner = $2
`

// ReleaseDispatchLease drops a lease held by owner
func (s *Store) ReleaseDispatchLease(ctx context.Context, campaignID uuid.UUID, owner string) error {
	if _, err := s.db.ExecContext(ctx, sqlReleaseDispatchLease, campaignID, owner); err != nil {
		return fmt.Errorf("failed to release dispatch lease: %w", err)
	}
	return nil
}
