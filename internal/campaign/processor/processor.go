package processor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"campaign-engine/internal/channels"
	"campaign-engine/internal/clock"
	"campaign-engine/internal/enginerrors"
	"campaign-engine/internal/events"
	"campaign-engine/internal/observability"
	"campaign-engine/internal/segments/snapshot"
	"campaign-engine/internal/store"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

var (
	ErrCampaignNotFound   = errors.New("campaign not found")
	ErrInvalidTransition  = errors.New("campaign status does not allow this transition")
	ErrNotActive          = errors.New("campaign is not active")
	ErrRunInProgress      = errors.New("campaign run already in progress")
	ErrNotDue             = errors.New("campaign start time has not been reached")
	ErrInvalidTimezone    = errors.New("unknown timezone")
	ErrInvalidRecurrence  = errors.New("recurrence must be a standard cron expression")
	ErrChannelsRequired   = errors.New("multi_channel campaigns must list their channels")
	ErrEndBeforeStart     = errors.New("end time must be after start time")
	ErrContentNotApproved = errors.New("content is not approved")
	ErrDispatchLeaseHeld  = errors.New("campaign is being dispatched by another replica")
)

const DefaultBatchSize = 1000

const (
	DefaultLeaseDuration    = 2 * time.Minute
	DefaultDeliveryTimeout  = 30 * time.Second
	DefaultBatchRetryBudget = time.Minute
)

type Options struct {
	BatchSize             int
	MaxAttempts           int
	InitialBackoff        time.Duration
	MaxBackoff            time.Duration
	FailureRatioThreshold float64

	// LeaseDuration is how long a replica owns a campaign's dispatching
	// after its last renewal. It is kept at least twice DeliveryTimeout so
	// every adapter call ends inside the lease that claimed its row.
	LeaseDuration time.Duration
	// DeliveryTimeout bounds one recipient's send including retries.
	DeliveryTimeout time.Duration
	// BatchRetryBudget bounds the time a batch spends backing off. Once it
	// is used up transient errors are no longer retried.
	BatchRetryBudget time.Duration
}

type CampaignProcessor struct {
	store     CampaignStore
	contents  ContentSource
	segments  SegmentSource
	profiles  ProfileSource
	renderer  Renderer
	channels  ChannelRegistry
	publisher EventPublisher
	clock     clock.Clock
	logger    *observability.Logger
	opts      Options
	owner     string // dispatch lease owner, unique per process

	locks   sync.Map // uuid.UUID -> *sync.Mutex, one dispatcher per campaign
	optOuts sync.Map // customer id -> struct{}, consent revoked since process start

	leaseMu sync.Mutex
	leases  map[uuid.UUID]*snapshot.Lease
}

func New(
	store CampaignStore,
	contents ContentSource,
	segments SegmentSource,
	profiles ProfileSource,
	renderer Renderer,
	registry ChannelRegistry,
	publisher EventPublisher,
	clk clock.Clock,
	logger *observability.Logger,
	opts Options,
) *CampaignProcessor {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 1
	}
	if opts.InitialBackoff <= 0 {
		opts.InitialBackoff = 500 * time.Millisecond
	}
	if opts.MaxBackoff < opts.InitialBackoff {
		opts.MaxBackoff = opts.InitialBackoff
	}
	if opts.DeliveryTimeout <= 0 {
		opts.DeliveryTimeout = DefaultDeliveryTimeout
	}
	if opts.LeaseDuration <= 0 {
		opts.LeaseDuration = DefaultLeaseDuration
	}
	if opts.LeaseDuration < 2*opts.DeliveryTimeout {
		opts.LeaseDuration = 2 * opts.DeliveryTimeout
	}
	if opts.BatchRetryBudget <= 0 {
		opts.BatchRetryBudget = DefaultBatchRetryBudget
	}
	return &CampaignProcessor{
		store:     store,
		contents:  contents,
		segments:  segments,
		profiles:  profiles,
		renderer:  renderer,
		channels:  registry,
		publisher: publisher,
		clock:     clk,
		logger:    logger,
		opts:      opts,
		owner:     uuid.NewString(),
		leases:    make(map[uuid.UUID]*snapshot.Lease),
	}
}

// CreateCampaignParams represents parameters for creating a campaign
type CreateCampaignParams struct {
	Name        string             `validate:"required,max=255"`
	Type        store.CampaignType `validate:"required,oneof=email sms push social multi_channel"`
	Channels    []string           `validate:"omitempty,dive,oneof=email sms push social"`
	SegmentID   uuid.UUID          `validate:"required"`
	ContentID   uuid.UUID          `validate:"required"`
	StartAt     time.Time          `validate:"required"`
	EndAt       *time.Time
	Timezone    string
	Recurrence  string
	BudgetTotal int64        `validate:"gte=0"`
	CostPerSend int64        `validate:"gte=0"`
	Goals       []store.Goal `validate:"dive"`
	BatchSize   int          `validate:"gte=0"`
}

// CreateCampaign stores a draft. StartAt and EndAt are read as wall-clock
// times in Timezone (UTC when empty).
func (p *CampaignProcessor) CreateCampaign(ctx context.Context, params CreateCampaignParams) (store.Campaign, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "campaign_name", Value: params.Name},
		observability.Field{Key: "campaign_type", Value: params.Type},
	)

	if err := enginerrors.ValidateStruct(params); err != nil {
		return store.Campaign{}, err
	}

	if params.Timezone == "" {
		params.Timezone = "UTC"
	}
	loc, err := time.LoadLocation(params.Timezone)
	if err != nil {
		return store.Campaign{}, enginerrors.Validation(enginerrors.CodeInvalidInput, ErrInvalidTimezone.Error())
	}
	startAt := inZone(params.StartAt, loc)
	var endAt *time.Time
	if params.EndAt != nil {
		e := inZone(*params.EndAt, loc)
		if !e.After(startAt) {
			return store.Campaign{}, enginerrors.Validation(enginerrors.CodeInvalidInput, ErrEndBeforeStart.Error())
		}
		endAt = &e
	}
	if params.Recurrence != "" {
		if _, err := cron.ParseStandard(params.Recurrence); err != nil {
			return store.Campaign{}, enginerrors.Validation(enginerrors.CodeInvalidInput, ErrInvalidRecurrence.Error())
		}
	}

	chans, err := campaignChannels(params.Type, params.Channels)
	if err != nil {
		return store.Campaign{}, err
	}
	batchSize := params.BatchSize
	if batchSize == 0 {
		batchSize = p.opts.BatchSize
	}

	campaign, err := p.store.CreateCampaign(ctx, store.CreateCampaignParams{
		Name:        params.Name,
		Type:        params.Type,
		Channels:    chans,
		SegmentID:   params.SegmentID,
		ContentID:   params.ContentID,
		StartAt:     startAt,
		EndAt:       endAt,
		Timezone:    params.Timezone,
		Recurrence:  params.Recurrence,
		BudgetTotal: params.BudgetTotal,
		CostPerSend: params.CostPerSend,
		Goals:       params.Goals,
		BatchSize:   batchSize,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create campaign", err)
		return store.Campaign{}, fmt.Errorf("failed to create campaign: %w", err)
	}
	return campaign, nil
}

// GetCampaign returns a campaign by id
func (p *CampaignProcessor) GetCampaign(ctx context.Context, campaignID uuid.UUID) (store.Campaign, error) {
	campaign, err := p.store.GetCampaignByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Campaign{}, enginerrors.NotFound(enginerrors.CodeCampaignNotFound, ErrCampaignNotFound.Error())
		}
		return store.Campaign{}, fmt.Errorf("failed to get campaign: %w", err)
	}
	return campaign, nil
}

// Schedule moves a draft to scheduled once its content is approved and its
// segment resolves.
func (p *CampaignProcessor) Schedule(ctx context.Context, campaignID uuid.UUID) (store.Campaign, error) {
	ctx = observability.WithFields(ctx, observability.CampaignID(campaignID))

	campaign, err := p.GetCampaign(ctx, campaignID)
	if err != nil {
		return store.Campaign{}, err
	}
	if campaign.Status != store.CampaignStatusDraft {
		return store.Campaign{}, invalidTransition(campaign.Status, store.CampaignStatusScheduled)
	}

	c, err := p.contents.Get(ctx, campaign.ContentID)
	if err != nil {
		return store.Campaign{}, err
	}
	if c.Status != store.ContentStatusApproved {
		return store.Campaign{}, enginerrors.Validation(enginerrors.CodeContentNotApproved, ErrContentNotApproved.Error())
	}
	if _, err := p.segments.GetSegment(ctx, campaign.SegmentID); err != nil {
		if enginerrors.KindOf(err) == enginerrors.KindNotFound {
			return store.Campaign{}, enginerrors.Validation(enginerrors.CodeSegmentNotFound, "segment not found")
		}
		return store.Campaign{}, err
	}

	scheduled, err := p.store.ScheduleCampaign(ctx, campaignID, campaign.StartAt)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return store.Campaign{}, invalidTransition(campaign.Status, store.CampaignStatusScheduled)
		}
		return store.Campaign{}, fmt.Errorf("failed to schedule campaign: %w", err)
	}

	observability.CampaignTransitions.WithLabelValues(string(store.CampaignStatusScheduled)).Inc()
	p.logger.Info(ctx, "campaign scheduled")
	return scheduled, nil
}

// Pause stops dispatch at the next batch boundary
func (p *CampaignProcessor) Pause(ctx context.Context, campaignID uuid.UUID) (store.Campaign, error) {
	return p.transition(ctx, campaignID, []store.CampaignStatus{store.CampaignStatusActive}, store.CampaignStatusPaused, nil)
}

// Resume continues a paused campaign from its next undispatched batch
func (p *CampaignProcessor) Resume(ctx context.Context, campaignID uuid.UUID) (store.Campaign, error) {
	return p.transition(ctx, campaignID, []store.CampaignStatus{store.CampaignStatusPaused}, store.CampaignStatusActive, nil)
}

// Complete ends an active or paused campaign. Undispatched recipients of the
// current run are dropped.
func (p *CampaignProcessor) Complete(ctx context.Context, campaignID uuid.UUID) (store.Campaign, error) {
	campaign, err := p.transition(ctx, campaignID,
		[]store.CampaignStatus{store.CampaignStatusActive, store.CampaignStatusPaused}, store.CampaignStatusCompleted, nil)
	if err != nil {
		return store.Campaign{}, err
	}
	p.closeRun(ctx, campaign)
	p.emitLifecycle(ctx, campaign, events.TypeCampaignCompleted, "")
	return campaign, nil
}

// Fail moves any non-terminal campaign to failed with a reason code
func (p *CampaignProcessor) Fail(ctx context.Context, campaignID uuid.UUID, code string) (store.Campaign, error) {
	ctx = observability.WithFields(ctx,
		observability.CampaignID(campaignID),
		observability.Field{Key: "failure_reason", Value: code},
	)
	campaign, err := p.transition(ctx, campaignID, []store.CampaignStatus{
		store.CampaignStatusDraft,
		store.CampaignStatusScheduled,
		store.CampaignStatusActive,
		store.CampaignStatusPaused,
	}, store.CampaignStatusFailed, &code)
	if err != nil {
		return store.Campaign{}, err
	}
	p.closeRun(ctx, campaign)
	p.emitLifecycle(ctx, campaign, events.TypeCampaignFailed, code)
	p.logger.Warn(ctx, "campaign failed")
	return campaign, nil
}

// SegmentDeleted fails every live campaign that targets the deleted
// segment with SEGMENT_DELETED.
func (p *CampaignProcessor) SegmentDeleted(ctx context.Context, segmentID uuid.UUID) error {
	ctx = observability.WithFields(ctx, observability.SegmentID(segmentID))

	live, err := p.store.ListLiveCampaignsBySegment(ctx, segmentID)
	if err != nil {
		return fmt.Errorf("failed to list campaigns of deleted segment: %w", err)
	}
	var errs []error
	for _, campaign := range live {
		if _, err := p.Fail(ctx, campaign.ID, enginerrors.CodeSegmentDeleted); err != nil {
			// a campaign that just reached a terminal state keeps it
			if enginerrors.KindOf(err) == enginerrors.KindConflict {
				continue
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (p *CampaignProcessor) transition(ctx context.Context, campaignID uuid.UUID, from []store.CampaignStatus, to store.CampaignStatus, reason *string) (store.Campaign, error) {
	ctx = observability.WithFields(ctx,
		observability.CampaignID(campaignID),
		observability.Field{Key: "to_status", Value: to},
	)

	campaign, err := p.store.UpdateCampaignStatus(ctx, campaignID, from, to, reason)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			current, getErr := p.GetCampaign(ctx, campaignID)
			if getErr != nil {
				return store.Campaign{}, getErr
			}
			return store.Campaign{}, invalidTransition(current.Status, to)
		}
		p.logger.Error(ctx, "failed to update campaign status", err)
		return store.Campaign{}, fmt.Errorf("failed to update campaign status: %w", err)
	}

	observability.CampaignTransitions.WithLabelValues(string(to)).Inc()
	p.logger.Info(ctx, "campaign status changed")
	return campaign, nil
}

// closeRun releases the pinned snapshot and drops rows that will never be
// dispatched.
func (p *CampaignProcessor) closeRun(ctx context.Context, campaign store.Campaign) {
	p.releaseLease(campaign.ID)
	if campaign.RunNumber == 0 {
		return
	}
	if err := p.store.DeletePendingDispatches(ctx, campaign.ID, campaign.RunNumber); err != nil {
		p.logger.Error(ctx, "failed to drop pending dispatches", err)
	}
}

// HandleCustomerEvent records consent revocations so in-flight batches stop
// sending to the customer immediately.
func (p *CampaignProcessor) HandleCustomerEvent(ctx context.Context, e events.Event) error {
	if e.Type != events.TypeCustomerConsentRevoked || e.CustomerID == "" {
		return nil
	}
	p.optOuts.Store(e.CustomerID, struct{}{})
	return nil
}

func (p *CampaignProcessor) optedOut(customerID string) bool {
	_, ok := p.optOuts.Load(customerID)
	return ok
}

func (p *CampaignProcessor) lock(campaignID uuid.UUID) *sync.Mutex {
	l, _ := p.locks.LoadOrStore(campaignID, &sync.Mutex{})
	return l.(*sync.Mutex)
}

func (p *CampaignProcessor) holdLease(campaignID uuid.UUID, lease *snapshot.Lease) {
	p.leaseMu.Lock()
	prev := p.leases[campaignID]
	p.leases[campaignID] = lease
	p.leaseMu.Unlock()
	if prev != nil {
		_ = prev.Release()
	}
}

func (p *CampaignProcessor) releaseLease(campaignID uuid.UUID) {
	p.leaseMu.Lock()
	lease := p.leases[campaignID]
	delete(p.leases, campaignID)
	p.leaseMu.Unlock()
	if lease != nil {
		_ = lease.Release()
	}
}

func (p *CampaignProcessor) emitLifecycle(ctx context.Context, campaign store.Campaign, eventType, reason string) {
	if p.publisher == nil {
		return
	}
	id := campaign.ID.String()
	e := events.Event{
		ID:         events.IdempotencyID(eventType, id, strconv.Itoa(campaign.RunNumber)),
		Type:       eventType,
		Timestamp:  p.clock.Now(),
		CampaignID: &id,
		Metadata:   map[string]string{"run_number": strconv.Itoa(campaign.RunNumber)},
	}
	if reason != "" {
		e.Metadata["reason"] = reason
	}
	if err := p.publisher.Publish(ctx, e); err != nil {
		p.logger.Error(ctx, "failed to publish "+eventType, err)
	}
}

func invalidTransition(from, to store.CampaignStatus) error {
	return enginerrors.Conflict(enginerrors.CodeInvalidTransition,
		fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition.Error(), from, to))
}

// campaignChannels derives the send channels: single-channel types send on
// themselves, multi_channel campaigns need an explicit list.
func campaignChannels(t store.CampaignType, listed []string) ([]string, error) {
	if t != store.CampaignTypeMultiChannel {
		if len(listed) > 0 && (len(listed) != 1 || listed[0] != string(t)) {
			return nil, enginerrors.Validation(enginerrors.CodeInvalidInput, "channels must match the campaign type")
		}
		return []string{string(t)}, nil
	}
	if len(listed) == 0 {
		return nil, enginerrors.Validation(enginerrors.CodeInvalidInput, ErrChannelsRequired.Error())
	}
	seen := make(map[string]struct{}, len(listed))
	out := make([]string, 0, len(listed))
	for _, ch := range listed {
		if !channels.Valid(ch) {
			return nil, enginerrors.Validation(enginerrors.CodeInvalidInput, fmt.Sprintf("unknown channel %q", ch))
		}
		if _, dup := seen[ch]; dup {
			continue
		}
		seen[ch] = struct{}{}
		out = append(out, ch)
	}
	return out, nil
}

// inZone reinterprets the wall clock of t in loc.
func inZone(t time.Time, loc *time.Location) time.Time {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	return time.Date(y, mo, d, h, mi, s, t.Nanosecond(), loc).UTC()
}
