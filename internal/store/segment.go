package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campaign-engine/internal/criteria"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// CreateSegmentParams represents parameters for creating a segment
type CreateSegmentParams struct {
	Name           string
	Type           SegmentType
	Criteria       criteria.Criteria
	RefreshCadence string
}

const segmentColumns = `id, name, type, criteria, refresh_cadence, cached_size, snapshot_version, snapshot_checksum, last_refreshed_at, created_at, updated_at, deleted_at`

const sqlCreateSegment = `
INSERT INTO segments (name, type, criteria, refresh_cadence)
VALUES ($1, $2, $3, $4)
RETURNING ` + segmentColumns

// CreateSegment creates a new segment
func (s *Store) CreateSegment(ctx context.Context, params CreateSegmentParams) (Segment, error) {
	var segment Segment
	err := s.db.GetContext(ctx, &segment, sqlCreateSegment,
		params.Name,
		params.Type,
		NewJSON(params.Criteria),
		params.RefreshCadence)
	if err != nil {
		return Segment{}, fmt.Errorf("failed to create segment: %w", err)
	}
	return segment, nil
}

const sqlGetSegmentByID = `
SELECT ` + segmentColumns + `
FROM segments
WHERE id = $1 AND deleted_at IS NULL
`

// GetSegmentByID retrieves a live segment by ID
func (s *Store) GetSegmentByID(ctx context.Context, segmentID uuid.UUID) (Segment, error) {
	var segment Segment
	err := s.db.GetContext(ctx, &segment, sqlGetSegmentByID, segmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Segment{}, ErrNotFound
		}
		return Segment{}, fmt.Errorf("failed to get segment: %w", err)
	}
	return segment, nil
}

const sqlListSegments = `
SELECT ` + segmentColumns + `
FROM segments
WHERE deleted_at IS NULL
ORDER BY created_at ASC
`

// ListSegments retrieves all live segments
func (s *Store) ListSegments(ctx context.Context) ([]Segment, error) {
	var segments []Segment
	err := s.db.SelectContext(ctx, &segments, sqlListSegments)
	if err != nil {
		return nil, fmt.Errorf("failed to list segments: %w", err)
	}
	return segments, nil
}

// UpdateSegmentParams represents parameters for updating a segment
type UpdateSegmentParams struct {
	Name           *string
	Criteria       *criteria.Criteria
	RefreshCadence *string
}

const sqlUpdateSegment = `
UPDATE segments
SET name = COALESCE($2, name),
    criteria = COALESCE($3, criteria),
    refresh_cadence = COALESCE($4, refresh_cadence),
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND deleted_at IS NULL
RETURNING ` + segmentColumns

// UpdateSegment updates a segment definition
func (s *Store) UpdateSegment(ctx context.Context, segmentID uuid.UUID, params UpdateSegmentParams) (Segment, error) {
	var crit interface{}
	if params.Criteria != nil {
		crit = NewJSON(*params.Criteria)
	}

	var segment Segment
	err := s.db.GetContext(ctx, &segment, sqlUpdateSegment,
		segmentID,
		params.Name,
		crit,
		params.RefreshCadence)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Segment{}, ErrNotFound
		}
		return Segment{}, fmt.Errorf("failed to update segment: %w", err)
	}
	return segment, nil
}

const sqlDeleteSegment = `
UPDATE segments
SET deleted_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND deleted_at IS NULL
`

// DeleteSegment soft deletes a segment
func (s *Store) DeleteSegment(ctx context.Context, segmentID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, sqlDeleteSegment, segmentID)
	if err != nil {
		return fmt.Errorf("failed to delete segment: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordSegmentRefreshParams carries the result of a refresh.
type RecordSegmentRefreshParams struct {
	Version     int64
	Checksum    string
	Size        int
	RefreshedAt time.Time
}

const sqlRecordSegmentRefresh = `
UPDATE segments
SET snapshot_version = $2,
    snapshot_checksum = $3,
    cached_size = $4,
    last_refreshed_at = $5,
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND deleted_at IS NULL
`

// RecordSegmentRefresh stores the metadata of the published snapshot
func (s *Store) RecordSegmentRefresh(ctx context.Context, segmentID uuid.UUID, params RecordSegmentRefreshParams) error {
	res, err := s.db.ExecContext(ctx, sqlRecordSegmentRefresh,
		segmentID, params.Version, params.Checksum, params.Size, params.RefreshedAt)
	if err != nil {
		return fmt.Errorf("failed to record segment refresh: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

const sqlDeleteSegmentMembers = `DELETE FROM segment_members WHERE segment_id = $1`

const sqlInsertSegmentMember = `
INSERT INTO segment_members (segment_id, customer_id, version)
VALUES ($1, $2, $3)
`

// ReplaceSegmentMembers swaps the persisted membership of a segment in one transaction
func (s *Store) ReplaceSegmentMembers(ctx context.Context, segmentID uuid.UUID, version int64, members []string) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, sqlDeleteSegmentMembers, segmentID); err != nil {
			return fmt.Errorf("failed to clear segment members: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, sqlInsertSegmentMember)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for _, id := range members {
			if _, err := stmt.ExecContext(ctx, segmentID, id, version); err != nil {
				return fmt.Errorf("failed to insert segment member: %w", err)
			}
		}
		return nil
	})
}

const sqlGetSegmentMembers = `
SELECT customer_id FROM segment_members
WHERE segment_id = $1
ORDER BY customer_id ASC
`

// GetSegmentMembers returns the persisted membership sorted by customer id
func (s *Store) GetSegmentMembers(ctx context.Context, segmentID uuid.UUID) ([]string, error) {
	var members []string
	err := s.db.SelectContext(ctx, &members, sqlGetSegmentMembers, segmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get segment members: %w", err)
	}
	return members, nil
}

const sqlAddStaticMember = `
INSERT INTO segment_static_members (segment_id, customer_id)
VALUES ($1, $2)
ON CONFLICT (segment_id, customer_id) DO NOTHING
`

// AddStaticMember adds a customer to a static segment's explicit id set
func (s *Store) AddStaticMember(ctx context.Context, segmentID uuid.UUID, customerID string) error {
	if _, err := s.db.ExecContext(ctx, sqlAddStaticMember, segmentID, customerID); err != nil {
		return fmt.Errorf("failed to add static member: %w", err)
	}
	return nil
}

const sqlRemoveStaticMember = `
DELETE FROM segment_static_members WHERE segment_id = $1 AND customer_id = $2
`

// RemoveStaticMember removes a customer from a static segment's explicit id set
func (s *Store) RemoveStaticMember(ctx context.Context, segmentID uuid.UUID, customerID string) error {
	if _, err := s.db.ExecContext(ctx, sqlRemoveStaticMember, segmentID, customerID); err != nil {
		return fmt.Errorf("failed to remove static member: %w", err)
	}
	return nil
}

const sqlGetStaticMembers = `
SELECT customer_id FROM segment_static_members
WHERE segment_id = $1
ORDER BY customer_id ASC
`

// GetStaticMembers returns a static segment's explicit id set
func (s *Store) GetStaticMembers(ctx context.Context, segmentID uuid.UUID) ([]string, error) {
	var members []string
	err := s.db.SelectContext(ctx, &members, sqlGetStaticMembers, segmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get static members: %w", err)
	}
	return members, nil
}

const sqlAddSuppression = `
INSERT INTO suppressions (customer_id, reason)
VALUES ($1, $2)
ON CONFLICT (customer_id) DO NOTHING
`

// AddSuppression records a customer on the suppression list
func (s *Store) AddSuppression(ctx context.Context, customerID, reason string) error {
	if _, err := s.db.ExecContext(ctx, sqlAddSuppression, customerID, reason); err != nil {
		return fmt.Errorf("failed to add suppression: %w", err)
	}
	return nil
}

const sqlListSuppressions = `SELECT customer_id FROM suppressions ORDER BY customer_id ASC`

// ListSuppressions returns every suppressed customer id
func (s *Store) ListSuppressions(ctx context.Context) ([]string, error) {
	var ids []string
	if err := s.db.SelectContext(ctx, &ids, sqlListSuppressions); err != nil {
		return nil, fmt.Errorf("failed to list suppressions: %w", err)
	}
	return ids, nil
}
