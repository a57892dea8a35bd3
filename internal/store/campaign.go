package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreateCampaignParams represents parameters for creating a campaign
type CreateCampaignParams struct {
	Name        string
	Type        CampaignType
	Channels    []string
	SegmentID   uuid.UUID
	ContentID   uuid.UUID
	StartAt     time.Time
	EndAt       *time.Time
	Timezone    string
	Recurrence  string
	BudgetTotal int64
	CostPerSend int64
	Goals       []Goal
	BatchSize   int
}

const campaignColumns = `id, name, type, channels, status, segment_id, content_id, start_at, end_at, timezone, recurrence,
budget_total, budget_spent, cost_per_send, goals, batch_size, failure_reason, run_number, snapshot_version,
total_recipients, total_batches, next_batch, next_run_at, launched_at, completed_at, created_at, updated_at`

const sqlCreateCampaign = `
INSERT INTO campaigns (name, type, channels, segment_id, content_id, start_at, end_at, timezone, recurrence,
                       budget_total, cost_per_send, goals, batch_size)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING ` + campaignColumns

// CreateCampaign creates a draft campaign
func (s *Store) CreateCampaign(ctx context.Context, params CreateCampaignParams) (Campaign, error) {
	var campaign Campaign
	err := s.db.GetContext(ctx, &campaign, sqlCreateCampaign,
		params.Name,
		params.Type,
		StringArray(params.Channels),
		params.SegmentID,
		params.ContentID,
		params.StartAt,
		params.EndAt,
		params.Timezone,
		params.Recurrence,
		params.BudgetTotal,
		params.CostPerSend,
		NewJSON(params.Goals),
		params.BatchSize)
	if err != nil {
		return Campaign{}, fmt.Errorf("failed to create campaign: %w", err)
	}
	return campaign, nil
}

const sqlGetCampaignByID = `
SELECT ` + campaignColumns + `
FROM campaigns
WHERE id = $1
`

// GetCampaignByID retrieves a campaign by ID
func (s *Store) GetCampaignByID(ctx context.Context, campaignID uuid.UUID) (Campaign, error) {
	var campaign Campaign
	err := s.db.GetContext(ctx, &campaign, sqlGetCampaignByID, campaignID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Campaign{}, ErrNotFound
		}
		return Campaign{}, fmt.Errorf("failed to get campaign: %w", err)
	}
	return campaign, nil
}

const sqlScheduleCampaign = `
UPDATE campaigns
SET status = 'scheduled', next_run_at = $2, updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND status = 'draft'
RETURNING ` + campaignColumns

// ScheduleCampaign moves a draft campaign to scheduled
func (s *Store) ScheduleCampaign(ctx context.Context, campaignID uuid.UUID, nextRunAt time.Time) (Campaign, error) {
	var campaign Campaign
	err := s.db.GetContext(ctx, &campaign, sqlScheduleCampaign, campaignID, nextRunAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Campaign{}, ErrConflict
		}
		return Campaign{}, fmt.Errorf("failed to schedule campaign: %w", err)
	}
	return campaign, nil
}

const sqlUpdateCampaignStatus = `
UPDATE campaigns
SET status = $3,
    failure_reason = COALESCE($4, failure_reason),
    completed_at = CASE WHEN $3::text IN ('completed', 'failed') THEN CURRENT_TIMESTAMP ELSE completed_at END,
    next_run_at = CASE WHEN $3::text IN ('completed', 'failed') THEN NULL ELSE next_run_at END,
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND status = ANY($2::text[])
RETURNING ` + campaignColumns

// UpdateCampaignStatus transitions a campaign if it is currently in one of from
func (s *Store) UpdateCampaignStatus(ctx context.Context, campaignID uuid.UUID, from []CampaignStatus, to CampaignStatus, reason *string) (Campaign, error) {
	fromArr := make(StringArray, len(from))
	for i, f := range from {
		fromArr[i] = string(f)
	}

	var campaign Campaign
	err := s.db.GetContext(ctx, &campaign, sqlUpdateCampaignStatus, campaignID, fromArr, to, reason)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Campaign{}, ErrConflict
		}
		return Campaign{}, fmt.Errorf("failed to update campaign status: %w", err)
	}
	return campaign, nil
}

// StartRunParams pins the snapshot and shape of one dispatch run.
type StartRunParams struct {
	RunNumber       int
	SnapshotVersion int64
	TotalRecipients int
	TotalBatches    int
	LaunchedAt      time.Time
}

const sqlStartCampaignRun = `
UPDATE campaigns
SET status = 'active',
    run_number = $2,
    snapshot_version = $3,
    total_recipients = $4,
    total_batches = $5,
    next_batch = 1,
    next_run_at = NULL,
    launched_at = COALESCE(launched_at, $6),
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND run_number = $2 - 1 AND status IN ('scheduled', 'active')
RETURNING ` + campaignColumns

// StartCampaignRun activates the next run of a campaign
func (s *Store) StartCampaignRun(ctx context.Context, campaignID uuid.UUID, params StartRunParams) (Campaign, error) {
	var campaign Campaign
	err := s.db.GetContext(ctx, &campaign, sqlStartCampaignRun,
		campaignID, params.RunNumber, params.SnapshotVersion, params.TotalRecipients, params.TotalBatches, params.LaunchedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Campaign{}, ErrConflict
		}
		return Campaign{}, fmt.Errorf("failed to start campaign run: %w", err)
	}
	return campaign, nil
}

const sqlAdvanceCampaignBatch = `
UPDATE campaigns
SET next_batch = $3 + 1, updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND run_number = $2 AND next_batch = $3
RETURNING ` + campaignColumns

// AdvanceCampaignBatch moves the batch cursor past batch
func (s *Store) AdvanceCampaignBatch(ctx context.Context, campaignID uuid.UUID, runNumber, batch int) (Campaign, error) {
	var campaign Campaign
	err := s.db.GetContext(ctx, &campaign, sqlAdvanceCampaignBatch, campaignID, runNumber, batch)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Campaign{}, ErrConflict
		}
		return Campaign{}, fmt.Errorf("failed to advance campaign batch: %w", err)
	}
	return campaign, nil
}

const sqlAddCampaignSpend = `
UPDATE campaigns
SET budget_spent = budget_spent + $2, updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND $2 >= 0
`

// AddCampaignSpend increases the spent budget; spend never decreases
func (s *Store) AddCampaignSpend(ctx context.Context, campaignID uuid.UUID, amount int64) error {
	res, err := s.db.ExecContext(ctx, sqlAddCampaignSpend, campaignID, amount)
	if err != nil {
		return fmt.Errorf("failed to add campaign spend: %w", err)
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

const sqlFinishCampaignRun = `
UPDATE campaigns
SET next_run_at = $3, updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND run_number = $2 AND status = 'active'
RETURNING ` + campaignColumns

// FinishCampaignRun parks an active recurring campaign until its next occurrence
func (s *Store) FinishCampaignRun(ctx context.Context, campaignID uuid.UUID, runNumber int, nextRunAt time.Time) (Campaign, error) {
	var campaign Campaign
	err := s.db.GetContext(ctx, &campaign, sqlFinishCampaignRun, campaignID, runNumber, nextRunAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Campaign{}, ErrConflict
		}
		return Campaign{}, fmt.Errorf("failed to finish campaign run: %w", err)
	}
	return campaign, nil
}

const sqlListDueCampaigns = `
SELECT ` + campaignColumns + `
FROM campaigns
WHERE status IN ('scheduled', 'active') AND next_run_at IS NOT NULL AND next_run_at <= $1
ORDER BY next_run_at ASC
LIMIT $2
`

// ListDueCampaigns returns campaigns whose next run is due
func (s *Store) ListDueCampaigns(ctx context.Context, now time.Time, limit int) ([]Campaign, error) {
	var campaigns []Campaign
	err := s.db.SelectContext(ctx, &campaigns, sqlListDueCampaigns, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list due campaigns: %w", err)
	}
	return campaigns, nil
}

const sqlListCampaignsByStatus = `
SELECT ` + campaignColumns + `
FROM campaigns
WHERE status = $1
ORDER BY updated_at ASC
`

// ListCampaignsByStatus returns campaigns in the given status
func (s *Store) ListCampaignsByStatus(ctx context.Context, status CampaignStatus) ([]Campaign, error) {
	var campaigns []Campaign
	err := s.db.SelectContext(ctx, &campaigns, sqlListCampaignsByStatus, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns by status: %w", err)
	}
	return campaigns, nil
}

const sqlListCampaignsBySegment = `
SELECT ` + campaignColumns + `
FROM campaigns
WHERE segment_id = $1 AND status IN ('scheduled', 'active', 'paused')
`

// ListLiveCampaignsBySegment returns non-terminal campaigns targeting a segment
func (s *Store) ListLiveCampaignsBySegment(ctx context.Context, segmentID uuid.UUID) ([]Campaign, error) {
	var campaigns []Campaign
	err := s.db.SelectContext(ctx, &campaigns, sqlListCampaignsBySegment, segmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns by segment: %w", err)
	}
	return campaigns, nil
}
