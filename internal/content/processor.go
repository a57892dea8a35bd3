package content

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=content

import (
	"context"
	"errors"
	"fmt"

	"campaign-engine/internal/enginerrors"
	"campaign-engine/internal/observability"
	"campaign-engine/internal/store"

	"github.com/google/uuid"
)

// ContentStore defines the database operations required by Processor
type ContentStore interface {
	CreateContent(ctx context.Context, params store.CreateContentParams) (store.Content, error)
	GetContentByID(ctx context.Context, contentID uuid.UUID) (store.Content, error)
	UpdateContentVariants(ctx context.Context, contentID uuid.UUID, variants []store.ContentVariant, templateID *string) (store.Content, error)
	SetContentStatus(ctx context.Context, contentID uuid.UUID, from, to store.ContentStatus) (store.Content, error)
}

var (
	ErrContentNotFound = errors.New("content not found")
	ErrNotDraft        = errors.New("content is not a draft")
	ErrArchived        = errors.New("content is archived")
)

type Processor struct {
	store  ContentStore
	logger *observability.Logger
}

func New(store ContentStore, logger *observability.Logger) Processor {
	return Processor{
		store:  store,
		logger: logger,
	}
}

type CreateParams struct {
	Name       string                 `validate:"required,max=255"`
	Channel    string                 `validate:"required,oneof=email sms push social"`
	TemplateID string                 `validate:"required"`
	Variants   []store.ContentVariant `validate:"required,min=1,dive"`
}

// Create stores a new draft at version 1
func (p *Processor) Create(ctx context.Context, params CreateParams) (store.Content, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "content_name", Value: params.Name})

	if err := enginerrors.ValidateStruct(params); err != nil {
		return store.Content{}, err
	}
	if err := validateVariants(params.Variants); err != nil {
		return store.Content{}, err
	}

	c, err := p.store.CreateContent(ctx, store.CreateContentParams{
		Name:       params.Name,
		Channel:    params.Channel,
		TemplateID: params.TemplateID,
		Variants:   params.Variants,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create content", err)
		return store.Content{}, fmt.Errorf("failed to create content: %w", err)
	}
	return c, nil
}

// Get returns content by id
func (p *Processor) Get(ctx context.Context, contentID uuid.UUID) (store.Content, error) {
	c, err := p.store.GetContentByID(ctx, contentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Content{}, enginerrors.NotFound(enginerrors.CodeContentNotFound, ErrContentNotFound.Error())
		}
		return store.Content{}, fmt.Errorf("failed to get content: %w", err)
	}
	return c, nil
}

// Approve moves a draft to approved. Only approved content can be scheduled.
func (p *Processor) Approve(ctx context.Context, contentID uuid.UUID) (store.Content, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "content_id", Value: contentID})

	c, err := p.store.SetContentStatus(ctx, contentID, store.ContentStatusDraft, store.ContentStatusApproved)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return store.Content{}, p.transitionError(ctx, contentID, ErrNotDraft)
		}
		return store.Content{}, fmt.Errorf("failed to approve content: %w", err)
	}
	p.logger.Info(ctx, fmt.Sprintf("approved content version %d", c.Version))
	return c, nil
}

// Archive retires content from any non-archived state
func (p *Processor) Archive(ctx context.Context, contentID uuid.UUID) (store.Content, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "content_id", Value: contentID})

	current, err := p.Get(ctx, contentID)
	if err != nil {
		return store.Content{}, err
	}
	if current.Status == store.ContentStatusArchived {
		return store.Content{}, enginerrors.Conflict(enginerrors.CodeInvalidTransition, ErrArchived.Error())
	}

	c, err := p.store.SetContentStatus(ctx, contentID, current.Status, store.ContentStatusArchived)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return store.Content{}, enginerrors.Conflict(enginerrors.CodeInvalidTransition, "content changed concurrently")
		}
		return store.Content{}, fmt.Errorf("failed to archive content: %w", err)
	}
	return c, nil
}

// Edit replaces the variants, bumps the version and returns the content to
// draft, so it needs approval again.
func (p *Processor) Edit(ctx context.Context, contentID uuid.UUID, variants []store.ContentVariant, templateID *string) (store.Content, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "content_id", Value: contentID})

	if len(variants) == 0 {
		return store.Content{}, enginerrors.Validation(enginerrors.CodeInvalidInput, "at least one variant is required")
	}
	for _, v := range variants {
		if err := enginerrors.ValidateStruct(v); err != nil {
			return store.Content{}, err
		}
	}
	if err := validateVariants(variants); err != nil {
		return store.Content{}, err
	}

	c, err := p.store.UpdateContentVariants(ctx, contentID, variants, templateID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Content{}, enginerrors.NotFound(enginerrors.CodeContentNotFound, "content not found or archived")
		}
		return store.Content{}, fmt.Errorf("failed to edit content: %w", err)
	}
	p.logger.Info(ctx, fmt.Sprintf("content edited, now at version %d", c.Version))
	return c, nil
}

func (p *Processor) transitionError(ctx context.Context, contentID uuid.UUID, cause error) error {
	if _, err := p.Get(ctx, contentID); err != nil {
		return err
	}
	return enginerrors.Conflict(enginerrors.CodeInvalidTransition, cause.Error())
}

func validateVariants(variants []store.ContentVariant) error {
	seen := make(map[string]struct{}, len(variants))
	total := 0
	for _, v := range variants {
		if _, dup := seen[v.ID]; dup {
			return enginerrors.Validation(enginerrors.CodeInvalidInput, fmt.Sprintf("duplicate variant id %q", v.ID))
		}
		seen[v.ID] = struct{}{}
		total += v.Weight
	}
	if total <= 0 {
		return enginerrors.Validation(enginerrors.CodeInvalidInput, "variant weights must sum to more than zero")
	}
	return nil
}
