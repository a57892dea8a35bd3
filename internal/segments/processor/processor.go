package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"campaign-engine/internal/clients/profile"
	"campaign-engine/internal/clock"
	"campaign-engine/internal/criteria"
	"campaign-engine/internal/enginerrors"
	"campaign-engine/internal/events"
	"campaign-engine/internal/observability"
	"campaign-engine/internal/segments/snapshot"
	"campaign-engine/internal/store"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// SegmentStore defines the database operations required by SegmentProcessor
type SegmentStore interface {
	CreateSegment(ctx context.Context, params store.CreateSegmentParams) (store.Segment, error)
	GetSegmentByID(ctx context.Context, segmentID uuid.UUID) (store.Segment, error)
	ListSegments(ctx context.Context) ([]store.Segment, error)
	UpdateSegment(ctx context.Context, segmentID uuid.UUID, params store.UpdateSegmentParams) (store.Segment, error)
	DeleteSegment(ctx context.Context, segmentID uuid.UUID) error
	RecordSegmentRefresh(ctx context.Context, segmentID uuid.UUID, params store.RecordSegmentRefreshParams) error
	ReplaceSegmentMembers(ctx context.Context, segmentID uuid.UUID, version int64, members []string) error
	GetSegmentMembers(ctx context.Context, segmentID uuid.UUID) ([]string, error)
	AddStaticMember(ctx context.Context, segmentID uuid.UUID, customerID string) error
	RemoveStaticMember(ctx context.Context, segmentID uuid.UUID, customerID string) error
	GetStaticMembers(ctx context.Context, segmentID uuid.UUID) ([]string, error)
	AddSuppression(ctx context.Context, customerID, reason string) error
	ListSuppressions(ctx context.Context) ([]string, error)
}

// ProfileSource is the customer attribute store segments are evaluated against
type ProfileSource interface {
	Customers(ctx context.Context, cursor string, limit int) (profile.Page, error)
	ChangedSince(ctx context.Context, since time.Time) ([]profile.Customer, error)
}

// DeletionListener is told about a segment once it is deleted
type DeletionListener interface {
	SegmentDeleted(ctx context.Context, segmentID uuid.UUID) error
}

// EventPublisher emits segment lifecycle events
type EventPublisher interface {
	Publish(ctx context.Context, e events.Event) error
}

var (
	ErrSegmentNotFound   = errors.New("segment not found")
	ErrNotStatic         = errors.New("explicit membership is only allowed on static segments")
	ErrInvalidCadence    = errors.New("refresh cadence must be a duration or a cron expression")
	ErrCriteriaOnStatic  = errors.New("static segments do not take criteria")
	ErrMissingCustomerID = errors.New("customer id is required")
)

// Refresh modes, used as the metrics label
const (
	ModeFull        = "full"
	ModeIncremental = "incremental"
)

type Options struct {
	Workers  int
	PageSize int
}

type SegmentProcessor struct {
	store     SegmentStore
	profiles  ProfileSource
	snapshots *snapshot.Registry
	publisher EventPublisher
	clock     clock.Clock
	logger    *observability.Logger
	opts      Options

	locks sync.Map // uuid.UUID -> *sync.Mutex, one refresh per segment at a time

	mu        sync.Mutex
	dirty     bool
	listeners []DeletionListener
}

func New(store SegmentStore, profiles ProfileSource, snapshots *snapshot.Registry, publisher EventPublisher, clk clock.Clock, logger *observability.Logger, opts Options) *SegmentProcessor {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 1000
	}
	return &SegmentProcessor{
		store:     store,
		profiles:  profiles,
		snapshots: snapshots,
		publisher: publisher,
		clock:     clk,
		logger:    logger,
		opts:      opts,
	}
}

type CreateSegmentParams struct {
	Name           string            `validate:"required,max=255"`
	Type           store.SegmentType `validate:"required,oneof=static dynamic"`
	Criteria       criteria.Criteria
	RefreshCadence string
}

// CreateSegment validates and stores a segment. Dynamic segments must carry a
// valid criteria tree.
func (p *SegmentProcessor) CreateSegment(ctx context.Context, params CreateSegmentParams) (store.Segment, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "segment_name", Value: params.Name},
		observability.Field{Key: "segment_type", Value: params.Type},
	)

	if err := enginerrors.ValidateStruct(params); err != nil {
		return store.Segment{}, err
	}
	if err := validateDefinition(params.Type, params.Criteria); err != nil {
		return store.Segment{}, err
	}
	if err := validateCadence(params.RefreshCadence); err != nil {
		return store.Segment{}, err
	}

	segment, err := p.store.CreateSegment(ctx, store.CreateSegmentParams{
		Name:           params.Name,
		Type:           params.Type,
		Criteria:       params.Criteria,
		RefreshCadence: params.RefreshCadence,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create segment", err)
		return store.Segment{}, fmt.Errorf("failed to create segment: %w", err)
	}

	p.logger.Info(ctx, "segment created")
	return segment, nil
}

type UpdateSegmentParams struct {
	Name           *string
	Criteria       *criteria.Criteria
	RefreshCadence *string
}

// UpdateSegment changes a segment definition. The published snapshot is left
// alone until the next refresh.
func (p *SegmentProcessor) UpdateSegment(ctx context.Context, segmentID uuid.UUID, params UpdateSegmentParams) (store.Segment, error) {
	ctx = observability.WithFields(ctx, observability.SegmentID(segmentID))

	current, err := p.GetSegment(ctx, segmentID)
	if err != nil {
		return store.Segment{}, err
	}
	if params.Name != nil && *params.Name == "" {
		return store.Segment{}, enginerrors.Validation(enginerrors.CodeInvalidInput, "name cannot be empty")
	}
	if params.Criteria != nil {
		if err := validateDefinition(current.Type, *params.Criteria); err != nil {
			return store.Segment{}, err
		}
	}
	if params.RefreshCadence != nil {
		if err := validateCadence(*params.RefreshCadence); err != nil {
			return store.Segment{}, err
		}
	}

	segment, err := p.store.UpdateSegment(ctx, segmentID, store.UpdateSegmentParams{
		Name:           params.Name,
		Criteria:       params.Criteria,
		RefreshCadence: params.RefreshCadence,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Segment{}, notFound()
		}
		p.logger.Error(ctx, "failed to update segment", err)
		return store.Segment{}, fmt.Errorf("failed to update segment: %w", err)
	}
	return segment, nil
}

// GetSegment returns a live segment
func (p *SegmentProcessor) GetSegment(ctx context.Context, segmentID uuid.UUID) (store.Segment, error) {
	segment, err := p.store.GetSegmentByID(ctx, segmentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Segment{}, notFound()
		}
		return store.Segment{}, fmt.Errorf("failed to get segment: %w", err)
	}
	return segment, nil
}

// OnDelete registers a listener called after every segment deletion
func (p *SegmentProcessor) OnDelete(l DeletionListener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, l)
}

// DeleteSegment soft deletes the segment and drops its snapshots, then tells
// the deletion listeners. A listener error is logged only: campaigns still
// targeting the segment also fail at their next batch boundary.
func (p *SegmentProcessor) DeleteSegment(ctx context.Context, segmentID uuid.UUID) error {
	ctx = observability.WithFields(ctx, observability.SegmentID(segmentID))

	if err := p.store.DeleteSegment(ctx, segmentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound()
		}
		p.logger.Error(ctx, "failed to delete segment", err)
		return fmt.Errorf("failed to delete segment: %w", err)
	}
	p.snapshots.Drop(segmentID)
	observability.SegmentSize.DeleteLabelValues(segmentID.String())
	observability.SnapshotVersionsRetained.DeleteLabelValues(segmentID.String())
	p.logger.Info(ctx, "segment deleted")

	p.mu.Lock()
	listeners := append([]DeletionListener(nil), p.listeners...)
	p.mu.Unlock()
	for _, l := range listeners {
		if err := l.SegmentDeleted(ctx, segmentID); err != nil {
			p.logger.Error(ctx, "segment deletion listener failed", err)
		}
	}
	return nil
}

// GetSize returns the member count of the current snapshot, falling back to
// the cached size persisted by the last refresh.
func (p *SegmentProcessor) GetSize(ctx context.Context, segmentID uuid.UUID) (int, error) {
	if snap, ok := p.snapshots.Current(segmentID); ok {
		return snap.Size(), nil
	}
	segment, err := p.GetSegment(ctx, segmentID)
	if err != nil {
		return 0, err
	}
	return segment.CachedSize, nil
}

// Snapshot pins the current snapshot of a segment. The caller must release
// the lease once it no longer reads from it. After a restart the persisted
// membership is loaded back into the registry first.
func (p *SegmentProcessor) Snapshot(ctx context.Context, segmentID uuid.UUID) (*snapshot.Lease, error) {
	lease, err := p.snapshots.Acquire(segmentID)
	if err == nil {
		return lease, nil
	}
	if !errors.Is(err, snapshot.ErrNoSnapshot) {
		return nil, err
	}

	if _, err := p.hydrate(ctx, segmentID); err != nil {
		return nil, err
	}
	return p.snapshots.Acquire(segmentID)
}

// SnapshotVersion pins a specific retained version, as recorded by a running
// campaign.
func (p *SegmentProcessor) SnapshotVersion(ctx context.Context, segmentID uuid.UUID, version int64) (*snapshot.Lease, error) {
	if _, ok := p.snapshots.Current(segmentID); !ok {
		if _, err := p.hydrate(ctx, segmentID); err != nil {
			return nil, err
		}
	}
	return p.snapshots.AcquireVersion(segmentID, version)
}

// hydrate loads the last persisted membership, or runs a full refresh when
// the segment was never refreshed.
func (p *SegmentProcessor) hydrate(ctx context.Context, segmentID uuid.UUID) (*snapshot.Snapshot, error) {
	segment, err := p.GetSegment(ctx, segmentID)
	if err != nil {
		return nil, err
	}
	if segment.LastRefreshedAt == nil || segment.SnapshotVersion == 0 {
		return p.Refresh(ctx, segmentID)
	}

	lock := p.lock(segmentID)
	lock.Lock()
	defer lock.Unlock()

	if snap, ok := p.snapshots.Current(segmentID); ok {
		return snap, nil
	}
	members, err := p.store.GetSegmentMembers(ctx, segmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load segment members: %w", err)
	}
	snap := snapshot.Build(segmentID, segment.SnapshotVersion, members, *segment.LastRefreshedAt)
	if err := p.snapshots.Publish(snap); err != nil && !errors.Is(err, snapshot.ErrStaleVersion) {
		return nil, err
	}
	current, _ := p.snapshots.Current(segmentID)
	return current, nil
}

// Refresh recomputes membership from scratch. Any source error aborts the
// refresh and leaves the previous snapshot published.
func (p *SegmentProcessor) Refresh(ctx context.Context, segmentID uuid.UUID) (*snapshot.Snapshot, error) {
	ctx = observability.WithFields(ctx,
		observability.SegmentID(segmentID),
		observability.Field{Key: "refresh_mode", Value: ModeFull},
	)
	start := time.Now()

	lock := p.lock(segmentID)
	lock.Lock()
	defer lock.Unlock()

	segment, err := p.GetSegment(ctx, segmentID)
	if err != nil {
		return nil, err
	}
	// changes made while the scan runs fall after the watermark and are
	// picked up by the next incremental refresh
	asOf := p.clock.Now()

	suppressed, err := p.suppressionSet(ctx)
	if err != nil {
		observe(ModeFull, "error", start)
		return nil, err
	}

	var ids []string
	if segment.Type == store.SegmentTypeStatic {
		ids, err = p.staticMembers(ctx, segmentID, suppressed)
	} else {
		ids, err = p.scan(ctx, segment.Criteria.V, suppressed)
	}
	if err != nil {
		observe(ModeFull, "error", start)
		p.logger.Error(ctx, "segment refresh aborted, keeping previous snapshot", err)
		return nil, err
	}

	snap, err := p.publish(ctx, segment, ids, asOf)
	if err != nil {
		observe(ModeFull, "error", start)
		return nil, err
	}
	observe(ModeFull, "success", start)
	return snap, nil
}

// RefreshIncremental folds customers changed since the last refresh into the
// previous snapshot. Segments without a usable previous snapshot get a full
// refresh instead.
func (p *SegmentProcessor) RefreshIncremental(ctx context.Context, segmentID uuid.UUID) (*snapshot.Snapshot, error) {
	segment, err := p.GetSegment(ctx, segmentID)
	if err != nil {
		return nil, err
	}
	if segment.Type == store.SegmentTypeStatic || segment.LastRefreshedAt == nil {
		return p.Refresh(ctx, segmentID)
	}
	if _, ok := p.snapshots.Current(segmentID); !ok {
		if _, err := p.hydrate(ctx, segmentID); err != nil {
			return nil, err
		}
	}

	ctx = observability.WithFields(ctx,
		observability.SegmentID(segmentID),
		observability.Field{Key: "refresh_mode", Value: ModeIncremental},
	)
	start := time.Now()

	lock := p.lock(segmentID)
	lock.Lock()
	defer lock.Unlock()

	prev, ok := p.snapshots.Current(segmentID)
	if !ok {
		return nil, snapshot.ErrNoSnapshot
	}

	suppressed, err := p.suppressionSet(ctx)
	if err != nil {
		observe(ModeIncremental, "error", start)
		return nil, err
	}

	asOf := p.clock.Now()
	changed, err := p.profiles.ChangedSince(ctx, *segment.LastRefreshedAt)
	if err != nil {
		observe(ModeIncremental, "error", start)
		p.logger.Error(ctx, "incremental refresh aborted, keeping previous snapshot", err)
		return nil, enginerrors.DataSourceUnavailable("customer changes unavailable", err)
	}

	members := make(map[string]struct{}, prev.Size())
	for _, id := range prev.Members() {
		if _, gone := suppressed[id]; !gone {
			members[id] = struct{}{}
		}
	}
	for _, c := range changed {
		delete(members, c.ID)
		if matches(segment.Criteria.V, c, suppressed) {
			members[c.ID] = struct{}{}
		}
	}

	ids := make([]string, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}

	snap, err := p.publish(ctx, segment, ids, asOf)
	if err != nil {
		observe(ModeIncremental, "error", start)
		return nil, err
	}
	observe(ModeIncremental, "success", start)
	return snap, nil
}

// RefreshDue runs every refresh that is owed at now: a full refresh once a
// segment's cadence has elapsed, and an incremental one for the remaining
// dynamic segments when customer events arrived since the last pass. It
// returns the number of segments refreshed.
func (p *SegmentProcessor) RefreshDue(ctx context.Context) (int, error) {
	segments, err := p.store.ListSegments(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list segments: %w", err)
	}

	p.mu.Lock()
	dirty := p.dirty
	p.dirty = false
	p.mu.Unlock()

	now := p.clock.Now()
	refreshed := 0
	var firstErr error
	for _, segment := range segments {
		var err error
		switch {
		case cadenceElapsed(segment, now):
			_, err = p.Refresh(ctx, segment.ID)
		case dirty && segment.LastRefreshedAt != nil:
			_, err = p.RefreshIncremental(ctx, segment.ID)
		default:
			continue
		}
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		refreshed++
	}

	if firstErr != nil && dirty {
		p.markDirty()
	}
	// leases released by finished campaign runs show up here
	for _, segment := range segments {
		p.observeRetained(segment.ID)
	}
	return refreshed, firstErr
}

// HandleCustomerEvent reacts to profile changes: updates mark segments for an
// incremental refresh, consent revocations also add the customer to the
// suppression list.
func (p *SegmentProcessor) HandleCustomerEvent(ctx context.Context, e events.Event) error {
	switch e.Type {
	case events.TypeCustomerUpdated:
		p.markDirty()
		return nil
	case events.TypeCustomerConsentRevoked:
		if e.CustomerID == "" {
			return enginerrors.Validation(enginerrors.CodeInvalidInput, ErrMissingCustomerID.Error())
		}
		if err := p.Suppress(ctx, e.CustomerID, "consent_revoked"); err != nil {
			return err
		}
		return nil
	default:
		return nil
	}
}

// Suppress adds a customer to the global suppression list. Every later
// snapshot excludes them.
func (p *SegmentProcessor) Suppress(ctx context.Context, customerID, reason string) error {
	ctx = observability.WithFields(ctx, observability.CustomerID(customerID))

	if err := p.store.AddSuppression(ctx, customerID, reason); err != nil {
		p.logger.Error(ctx, "failed to add suppression", err)
		return fmt.Errorf("failed to add suppression: %w", err)
	}
	p.markDirty()
	p.logger.Info(ctx, "customer suppressed")
	return nil
}

// AddMember puts a customer into a static segment
func (p *SegmentProcessor) AddMember(ctx context.Context, segmentID uuid.UUID, customerID string) error {
	if err := p.checkStatic(ctx, segmentID, customerID); err != nil {
		return err
	}
	if err := p.store.AddStaticMember(ctx, segmentID, customerID); err != nil {
		return fmt.Errorf("failed to add segment member: %w", err)
	}
	p.markDirty()
	return nil
}

// RemoveMember takes a customer out of a static segment
func (p *SegmentProcessor) RemoveMember(ctx context.Context, segmentID uuid.UUID, customerID string) error {
	if err := p.checkStatic(ctx, segmentID, customerID); err != nil {
		return err
	}
	if err := p.store.RemoveStaticMember(ctx, segmentID, customerID); err != nil {
		return fmt.Errorf("failed to remove segment member: %w", err)
	}
	p.markDirty()
	return nil
}

func (p *SegmentProcessor) checkStatic(ctx context.Context, segmentID uuid.UUID, customerID string) error {
	if customerID == "" {
		return enginerrors.Validation(enginerrors.CodeInvalidInput, ErrMissingCustomerID.Error())
	}
	segment, err := p.GetSegment(ctx, segmentID)
	if err != nil {
		return err
	}
	if segment.Type != store.SegmentTypeStatic {
		return enginerrors.Validation(enginerrors.CodeInvalidInput, ErrNotStatic.Error())
	}
	return nil
}

// scan pages through every customer and evaluates pages in parallel. Each
// worker returns its own matches for a page; nothing is shared between them.
func (p *SegmentProcessor) scan(ctx context.Context, c criteria.Criteria, suppressed map[string]struct{}) ([]string, error) {
	g, gctx := errgroup.WithContext(ctx)
	pages := make(chan []profile.Customer, p.opts.Workers)
	results := make(chan []string, p.opts.Workers)

	g.Go(func() error {
		defer close(pages)
		cursor := ""
		for {
			page, err := p.profiles.Customers(gctx, cursor, p.opts.PageSize)
			if err != nil {
				return enginerrors.DataSourceUnavailable("customer source unavailable", err)
			}
			select {
			case pages <- page.Customers:
			case <-gctx.Done():
				return gctx.Err()
			}
			if page.NextCursor == "" {
				return nil
			}
			cursor = page.NextCursor
		}
	})

	var workers sync.WaitGroup
	for i := 0; i < p.opts.Workers; i++ {
		workers.Add(1)
		g.Go(func() error {
			defer workers.Done()
			for batch := range pages {
				matched := make([]string, 0, len(batch))
				for _, customer := range batch {
					if matches(c, customer, suppressed) {
						matched = append(matched, customer.ID)
					}
				}
				select {
				case results <- matched:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		workers.Wait()
		close(results)
	}()

	var ids []string
	for matched := range results {
		ids = append(ids, matched...)
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}

func (p *SegmentProcessor) staticMembers(ctx context.Context, segmentID uuid.UUID, suppressed map[string]struct{}) ([]string, error) {
	explicit, err := p.store.GetStaticMembers(ctx, segmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load static members: %w", err)
	}
	ids := make([]string, 0, len(explicit))
	for _, id := range explicit {
		if _, ok := suppressed[id]; !ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (p *SegmentProcessor) suppressionSet(ctx context.Context) (map[string]struct{}, error) {
	ids, err := p.store.ListSuppressions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load suppressions: %w", err)
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// publish persists membership and swaps the snapshot in. An unchanged
// membership keeps its version, so repeated refreshes are idempotent.
// asOf is the time the source was read from and becomes the watermark of
// the next incremental refresh.
func (p *SegmentProcessor) publish(ctx context.Context, segment store.Segment, ids []string, asOf time.Time) (*snapshot.Snapshot, error) {
	version := segment.SnapshotVersion
	if current, ok := p.snapshots.Current(segment.ID); ok && current.Version > version {
		version = current.Version
	}

	candidate := snapshot.Build(segment.ID, version+1, ids, asOf)
	if current, ok := p.snapshots.Current(segment.ID); ok && current.Checksum == candidate.Checksum {
		if err := p.recordRefresh(ctx, segment.ID, current, asOf); err != nil {
			return nil, err
		}
		p.emit(ctx, current)
		return current, nil
	}

	if err := p.store.ReplaceSegmentMembers(ctx, segment.ID, candidate.Version, candidate.Members()); err != nil {
		p.logger.Error(ctx, "failed to persist segment members", err)
		return nil, fmt.Errorf("failed to persist segment members: %w", err)
	}
	if err := p.recordRefresh(ctx, segment.ID, candidate, asOf); err != nil {
		return nil, err
	}
	if err := p.snapshots.Publish(candidate); err != nil {
		return nil, fmt.Errorf("failed to publish snapshot: %w", err)
	}

	observability.SegmentSize.WithLabelValues(segment.ID.String()).Set(float64(candidate.Size()))
	p.observeRetained(segment.ID)
	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "snapshot_version", Value: candidate.Version},
		observability.Field{Key: "snapshot_size", Value: candidate.Size()},
	), "segment snapshot published")

	p.emit(ctx, candidate)
	return candidate, nil
}

func (p *SegmentProcessor) recordRefresh(ctx context.Context, segmentID uuid.UUID, snap *snapshot.Snapshot, at time.Time) error {
	err := p.store.RecordSegmentRefresh(ctx, segmentID, store.RecordSegmentRefreshParams{
		Version:     snap.Version,
		Checksum:    snap.Checksum,
		Size:        snap.Size(),
		RefreshedAt: at,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return enginerrors.ConsistencyViolation(enginerrors.CodeSegmentDeleted, "segment deleted during refresh")
		}
		p.logger.Error(ctx, "failed to record segment refresh", err)
		return fmt.Errorf("failed to record segment refresh: %w", err)
	}
	return nil
}

// emit publishes segment.refreshed. The snapshot is already committed, so a
// publish failure is logged and not returned.
func (p *SegmentProcessor) emit(ctx context.Context, snap *snapshot.Snapshot) {
	if p.publisher == nil {
		return
	}
	version := strconv.FormatInt(snap.Version, 10)
	err := p.publisher.Publish(ctx, events.Event{
		ID:        events.IdempotencyID(events.TypeSegmentRefreshed, snap.SegmentID.String(), version),
		Type:      events.TypeSegmentRefreshed,
		Timestamp: snap.BuiltAt,
		Properties: map[string]criteria.Value{
			"segment_id": criteria.String(snap.SegmentID.String()),
			"version":    criteria.Int(snap.Version),
			"size":       criteria.Int(int64(snap.Size())),
			"checksum":   criteria.String(snap.Checksum),
		},
	})
	if err != nil {
		p.logger.Error(ctx, "failed to publish segment.refreshed", err)
	}
}

func (p *SegmentProcessor) observeRetained(segmentID uuid.UUID) {
	observability.SnapshotVersionsRetained.WithLabelValues(segmentID.String()).Set(float64(len(p.snapshots.Retained(segmentID))))
}

func (p *SegmentProcessor) lock(segmentID uuid.UUID) *sync.Mutex {
	l, _ := p.locks.LoadOrStore(segmentID, &sync.Mutex{})
	return l.(*sync.Mutex)
}

func (p *SegmentProcessor) markDirty() {
	p.mu.Lock()
	p.dirty = true
	p.mu.Unlock()
}

func matches(c criteria.Criteria, customer profile.Customer, suppressed map[string]struct{}) bool {
	if customer.ConsentRevoked {
		return false
	}
	if _, ok := suppressed[customer.ID]; ok {
		return false
	}
	return criteria.Evaluate(c, customer.Attributes)
}

func observe(mode, result string, start time.Time) {
	observability.SegmentRefreshDuration.WithLabelValues(mode, result).Observe(time.Since(start).Seconds())
}

func notFound() error {
	return enginerrors.NotFound(enginerrors.CodeSegmentNotFound, ErrSegmentNotFound.Error())
}

func validateDefinition(segmentType store.SegmentType, c criteria.Criteria) error {
	if segmentType == store.SegmentTypeStatic {
		if !c.IsZero() {
			return enginerrors.Validation(enginerrors.CodeInvalidCriteria, ErrCriteriaOnStatic.Error())
		}
		return nil
	}
	if c.IsZero() {
		return enginerrors.Validation(enginerrors.CodeInvalidCriteria, "dynamic segments require criteria")
	}
	return c.Validate()
}

// validateCadence accepts "" (on demand only), a Go duration such as "15m",
// or a standard five-field cron expression.
func validateCadence(cadence string) error {
	if cadence == "" {
		return nil
	}
	if d, err := time.ParseDuration(cadence); err == nil {
		if d <= 0 {
			return enginerrors.Validation(enginerrors.CodeInvalidInput, ErrInvalidCadence.Error())
		}
		return nil
	}
	if _, err := cron.ParseStandard(cadence); err != nil {
		return enginerrors.Validation(enginerrors.CodeInvalidInput, ErrInvalidCadence.Error())
	}
	return nil
}

// cadenceElapsed reports whether a full refresh is owed. Segments that were
// never refreshed are always due.
func cadenceElapsed(segment store.Segment, now time.Time) bool {
	if segment.LastRefreshedAt == nil {
		return true
	}
	last := *segment.LastRefreshedAt
	if segment.RefreshCadence == "" {
		return false
	}
	if d, err := time.ParseDuration(segment.RefreshCadence); err == nil {
		return !now.Before(last.Add(d))
	}
	schedule, err := cron.ParseStandard(segment.RefreshCadence)
	if err != nil {
		return false
	}
	return !now.Before(schedule.Next(last))
}
