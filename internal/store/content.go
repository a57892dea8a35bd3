package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type CreateContentParams struct {
	Name       string
	Channel    string
	TemplateID string
	Variants   []ContentVariant
}

const contentColumns = `id, name, channel, version, status, template_id, variants, created_at, updated_at`

const sqlCreateContent = `
INSERT INTO contents (name, channel, template_id, variants)
VALUES ($1, $2, $3, $4)
RETURNING ` + contentColumns

// CreateContent creates a draft content at version 1
func (s *Store) CreateContent(ctx context.Context, params CreateContentParams) (Content, error) {
	var content Content
	err := s.db.GetContext(ctx, &content, sqlCreateContent,
		params.Name, params.Channel, params.TemplateID, NewJSON(params.Variants))
	if err != nil {
		return Content{}, fmt.Errorf("failed to create content: %w", err)
	}
	return content, nil
}

const sqlGetContentByID = `
SELECT ` + contentColumns + `
FROM contents
WHERE id = $1
`

// GetContentByID retrieves a content by ID
func (s *Store) GetContentByID(ctx context.Context, contentID uuid.UUID) (Content, error) {
	var content Content
	err := s.db.GetContext(ctx, &content, sqlGetContentByID, contentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Content{}, ErrNotFound
		}
		return Content{}, fmt.Errorf("failed to get content: %w", err)
	}
	return content, nil
}

// Editing bumps the version and sends the content back through approval.
const sqlUpdateContentVariants = `
UPDATE contents
SET variants = $2,
    template_id = COALESCE($3, template_id),
    version = version + 1,
    status = 'draft',
    updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND status <> 'archived'
RETURNING ` + contentColumns

// UpdateContentVariants edits a content's variants and template
func (s *Store) UpdateContentVariants(ctx context.Context, contentID uuid.UUID, variants []ContentVariant, templateID *string) (Content, error) {
	var content Content
	err := s.db.GetContext(ctx, &content, sqlUpdateContentVariants, contentID, NewJSON(variants), templateID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Content{}, ErrNotFound
		}
		return Content{}, fmt.Errorf("failed to update content: %w", err)
	}
	return content, nil
}

const sqlSetContentStatus = `
UPDATE contents
SET status = $3, updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND status = $2
RETURNING ` + contentColumns

// SetContentStatus moves a content from one status to another
func (s *Store) SetContentStatus(ctx context.Context, contentID uuid.UUID, from, to ContentStatus) (Content, error) {
	var content Content
	err := s.db.GetContext(ctx, &content, sqlSetContentStatus, contentID, from, to)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Content{}, ErrConflict
		}
		return Content{}, fmt.Errorf("failed to set content status: %w", err)
	}
	return content, nil
}
