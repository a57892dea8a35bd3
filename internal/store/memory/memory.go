// Package memory is an in-process implementation of the engine's store
// methods. Processor tests and the single-node demo mode run on it; its
// conditional updates mirror the SQL in package store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"campaign-engine/internal/store"

	"github.com/google/uuid"
)

type workflowKey struct {
	customerID string
	ruleID     uuid.UUID
	eventID    string
}

type dispatchLease struct {
	owner     string
	expiresAt time.Time
}

type rollupKey struct {
	campaignID string
	date       time.Time
}

type Store struct {
	mu  sync.Mutex
	now func() time.Time

	segments       map[uuid.UUID]store.Segment
	staticMembers  map[uuid.UUID]map[string]struct{}
	segmentMembers map[uuid.UUID][]string
	suppressions   map[string]store.Suppression

	contents  map[uuid.UUID]store.Content
	campaigns map[uuid.UUID]store.Campaign
	ledger    map[store.DispatchKey]store.DispatchRecord
	leases    map[uuid.UUID]dispatchLease

	rules         map[uuid.UUID]store.TriggerRule
	instances     map[uuid.UUID]store.WorkflowInstance
	instanceByKey map[workflowKey]uuid.UUID

	eventLog     []store.LoggedEvent
	eventIDs     map[string]struct{}
	rollupEvents map[string]struct{}
	rollups      map[rollupKey]store.MetricRollup

	// Failure injection for tests.
	FailMarkDispatched error
	FailRecordOutcome  error
}

func New() *Store {
	return &Store{
		now:            func() time.Time { return time.Now().UTC() },
		segments:       make(map[uuid.UUID]store.Segment),
		staticMembers:  make(map[uuid.UUID]map[string]struct{}),
		segmentMembers: make(map[uuid.UUID][]string),
		suppressions:   make(map[string]store.Suppression),
		contents:       make(map[uuid.UUID]store.Content),
		campaigns:      make(map[uuid.UUID]store.Campaign),
		ledger:         make(map[store.DispatchKey]store.DispatchRecord),
		leases:         make(map[uuid.UUID]dispatchLease),
		rules:          make(map[uuid.UUID]store.TriggerRule),
		instances:      make(map[uuid.UUID]store.WorkflowInstance),
		instanceByKey:  make(map[workflowKey]uuid.UUID),
		eventIDs:       make(map[string]struct{}),
		rollupEvents:   make(map[string]struct{}),
		rollups:        make(map[rollupKey]store.MetricRollup),
	}
}

// SetClock makes timestamps follow the given clock.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// ============================================================================
// Segments
// ============================================================================

func (s *Store) CreateSegment(ctx context.Context, params store.CreateSegmentParams) (store.Segment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	seg := store.Segment{
		ID:             uuid.New(),
		Name:           params.Name,
		Type:           params.Type,
		Criteria:       store.NewJSON(params.Criteria),
		RefreshCadence: params.RefreshCadence,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.segments[seg.ID] = seg
	return seg, nil
}

func (s *Store) GetSegmentByID(ctx context.Context, segmentID uuid.UUID) (store.Segment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seg, ok := s.segments[segmentID]
	if !ok || seg.DeletedAt != nil {
		return store.Segment{}, store.ErrNotFound
	}
	return seg, nil
}

func (s *Store) ListSegments(ctx context.Context) ([]store.Segment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]store.Segment, 0, len(s.segments))
	for _, seg := range s.segments {
		if seg.DeletedAt == nil {
			out = append(out, seg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) UpdateSegment(ctx context.Context, segmentID uuid.UUID, params store.UpdateSegmentParams) (store.Segment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seg, ok := s.segments[segmentID]
	if !ok || seg.DeletedAt != nil {
		return store.Segment{}, store.ErrNotFound
	}
	if params.Name != nil {
		seg.Name = *params.Name
	}
	if params.Criteria != nil {
		seg.Criteria = store.NewJSON(*params.Criteria)
	}
	if params.RefreshCadence != nil {
		seg.RefreshCadence = *params.RefreshCadence
	}
	seg.UpdatedAt = s.now()
	s.segments[segmentID] = seg
	return seg, nil
}

func (s *Store) DeleteSegment(ctx context.Context, segmentID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seg, ok := s.segments[segmentID]
	if !ok || seg.DeletedAt != nil {
		return store.ErrNotFound
	}
	now := s.now()
	seg.DeletedAt = &now
	s.segments[segmentID] = seg
	return nil
}

func (s *Store) RecordSegmentRefresh(ctx context.Context, segmentID uuid.UUID, params store.RecordSegmentRefreshParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seg, ok := s.segments[segmentID]
	if !ok || seg.DeletedAt != nil {
		return store.ErrNotFound
	}
	at := params.RefreshedAt
	seg.SnapshotVersion = params.Version
	seg.SnapshotChecksum = params.Checksum
	seg.CachedSize = params.Size
	seg.LastRefreshedAt = &at
	s.segments[segmentID] = seg
	return nil
}

func (s *Store) ReplaceSegmentMembers(ctx context.Context, segmentID uuid.UUID, version int64, members []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.segmentMembers[segmentID] = append([]string(nil), members...)
	return nil
}

func (s *Store) GetSegmentMembers(ctx context.Context, segmentID uuid.UUID) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := append([]string(nil), s.segmentMembers[segmentID]...)
	sort.Strings(members)
	return members, nil
}

func (s *Store) AddStaticMember(ctx context.Context, segmentID uuid.UUID, customerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.staticMembers[segmentID]
	if !ok {
		set = make(map[string]struct{})
		s.staticMembers[segmentID] = set
	}
	set[customerID] = struct{}{}
	return nil
}

func (s *Store) RemoveStaticMember(ctx context.Context, segmentID uuid.UUID, customerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.staticMembers[segmentID], customerID)
	return nil
}

func (s *Store) GetStaticMembers(ctx context.Context, segmentID uuid.UUID) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.staticMembers[segmentID]))
	for id := range s.staticMembers[segmentID] {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func (s *Store) AddSuppression(ctx context.Context, customerID, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.suppressions[customerID]; !ok {
		s.suppressions[customerID] = store.Suppression{CustomerID: customerID, Reason: reason, CreatedAt: s.now()}
	}
	return nil
}

func (s *Store) ListSuppressions(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.suppressions))
	for id := range s.suppressions {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

// ============================================================================
// Content
// ============================================================================

func (s *Store) CreateContent(ctx context.Context, params store.CreateContentParams) (store.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c := store.Content{
		ID:         uuid.New(),
		Name:       params.Name,
		Channel:    params.Channel,
		Version:    1,
		Status:     store.ContentStatusDraft,
		TemplateID: params.TemplateID,
		Variants:   store.NewJSON(append([]store.ContentVariant(nil), params.Variants...)),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.contents[c.ID] = c
	return c, nil
}

func (s *Store) GetContentByID(ctx context.Context, contentID uuid.UUID) (store.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contents[contentID]
	if !ok {
		return store.Content{}, store.ErrNotFound
	}
	return c, nil
}

func (s *Store) UpdateContentVariants(ctx context.Context, contentID uuid.UUID, variants []store.ContentVariant, templateID *string) (store.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contents[contentID]
	if !ok || c.Status == store.ContentStatusArchived {
		return store.Content{}, store.ErrNotFound
	}
	c.Variants = store.NewJSON(append([]store.ContentVariant(nil), variants...))
	if templateID != nil {
		c.TemplateID = *templateID
	}
	c.Version++
	c.Status = store.ContentStatusDraft
	c.UpdatedAt = s.now()
	s.contents[contentID] = c
	return c, nil
}

func (s *Store) SetContentStatus(ctx context.Context, contentID uuid.UUID, from, to store.ContentStatus) (store.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contents[contentID]
	if !ok || c.Status != from {
		return store.Content{}, store.ErrConflict
	}
	c.Status = to
	c.UpdatedAt = s.now()
	s.contents[contentID] = c
	return c, nil
}

// ============================================================================
// Campaigns
// ============================================================================

func (s *Store) CreateCampaign(ctx context.Context, params store.CreateCampaignParams) (store.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c := store.Campaign{
		ID:          uuid.New(),
		Name:        params.Name,
		Type:        params.Type,
		Channels:    append(store.StringArray(nil), params.Channels...),
		Status:      store.CampaignStatusDraft,
		SegmentID:   params.SegmentID,
		ContentID:   params.ContentID,
		StartAt:     params.StartAt,
		EndAt:       params.EndAt,
		Timezone:    params.Timezone,
		Recurrence:  params.Recurrence,
		BudgetTotal: params.BudgetTotal,
		CostPerSend: params.CostPerSend,
		Goals:       store.NewJSON(append([]store.Goal(nil), params.Goals...)),
		BatchSize:   params.BatchSize,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.campaigns[c.ID] = c
	return c, nil
}

func (s *Store) GetCampaignByID(ctx context.Context, campaignID uuid.UUID) (store.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaigns[campaignID]
	if !ok {
		return store.Campaign{}, store.ErrNotFound
	}
	return c, nil
}

func (s *Store) ScheduleCampaign(ctx context.Context, campaignID uuid.UUID, nextRunAt time.Time) (store.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaigns[campaignID]
	if !ok || c.Status != store.CampaignStatusDraft {
		return store.Campaign{}, store.ErrConflict
	}
	c.Status = store.CampaignStatusScheduled
	c.NextRunAt = &nextRunAt
	c.UpdatedAt = s.now()
	s.campaigns[campaignID] = c
	return c, nil
}

func (s *Store) UpdateCampaignStatus(ctx context.Context, campaignID uuid.UUID, from []store.CampaignStatus, to store.CampaignStatus, reason *string) (store.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaigns[campaignID]
	if !ok || !statusIn(c.Status, from) {
		return store.Campaign{}, store.ErrConflict
	}
	now := s.now()
	c.Status = to
	if reason != nil {
		r := *reason
		c.FailureReason = &r
	}
	if to.Terminal() {
		c.CompletedAt = &now
		c.NextRunAt = nil
	}
	c.UpdatedAt = now
	s.campaigns[campaignID] = c
	return c, nil
}

func statusIn(status store.CampaignStatus, set []store.CampaignStatus) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}

func (s *Store) StartCampaignRun(ctx context.Context, campaignID uuid.UUID, params store.StartRunParams) (store.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaigns[campaignID]
	if !ok || c.RunNumber != params.RunNumber-1 ||
		(c.Status != store.CampaignStatusScheduled && c.Status != store.CampaignStatusActive) {
		return store.Campaign{}, store.ErrConflict
	}
	c.Status = store.CampaignStatusActive
	c.RunNumber = params.RunNumber
	c.SnapshotVersion = params.SnapshotVersion
	c.TotalRecipients = params.TotalRecipients
	c.TotalBatches = params.TotalBatches
	c.NextBatch = 1
	c.NextRunAt = nil
	if c.LaunchedAt == nil {
		at := params.LaunchedAt
		c.LaunchedAt = &at
	}
	c.UpdatedAt = s.now()
	s.campaigns[campaignID] = c
	return c, nil
}

func (s *Store) AdvanceCampaignBatch(ctx context.Context, campaignID uuid.UUID, runNumber, batch int) (store.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaigns[campaignID]
	if !ok || c.RunNumber != runNumber || c.NextBatch != batch {
		return store.Campaign{}, store.ErrConflict
	}
	c.NextBatch = batch + 1
	c.UpdatedAt = s.now()
	s.campaigns[campaignID] = c
	return c, nil
}

func (s *Store) AddCampaignSpend(ctx context.Context, campaignID uuid.UUID, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaigns[campaignID]
	if !ok || amount < 0 {
		return store.ErrNotFound
	}
	c.BudgetSpent += amount
	s.campaigns[campaignID] = c
	return nil
}

func (s *Store) FinishCampaignRun(ctx context.Context, campaignID uuid.UUID, runNumber int, nextRunAt time.Time) (store.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaigns[campaignID]
	if !ok || c.RunNumber != runNumber || c.Status != store.CampaignStatusActive {
		return store.Campaign{}, store.ErrConflict
	}
	c.NextRunAt = &nextRunAt
	c.UpdatedAt = s.now()
	s.campaigns[campaignID] = c
	return c, nil
}

func (s *Store) ListDueCampaigns(ctx context.Context, now time.Time, limit int) ([]store.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []store.Campaign
	for _, c := range s.campaigns {
		if (c.Status == store.CampaignStatusScheduled || c.Status == store.CampaignStatusActive) &&
			c.NextRunAt != nil && !c.NextRunAt.After(now) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NextRunAt.Before(*out[j].NextRunAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) ListCampaignsByStatus(ctx context.Context, status store.CampaignStatus) ([]store.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []store.Campaign
	for _, c := range s.campaigns {
		if c.Status == status {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.Before(out[j].UpdatedAt) })
	return out, nil
}

func (s *Store) ListLiveCampaignsBySegment(ctx context.Context, segmentID uuid.UUID) ([]store.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []store.Campaign
	for _, c := range s.campaigns {
		if c.SegmentID == segmentID && !c.Status.Terminal() && c.Status != store.CampaignStatusDraft {
			out = append(out, c)
		}
	}
	return out, nil
}

// ============================================================================
// Dispatch ledger
// ============================================================================

func (s *Store) InsertDispatchRecords(ctx context.Context, records []store.DispatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, r := range records {
		key := r.Key()
		if _, exists := s.ledger[key]; exists {
			continue
		}
		s.ledger[key] = store.DispatchRecord{
			CampaignID:  r.CampaignID,
			RunNumber:   r.RunNumber,
			RecipientID: r.RecipientID,
			Channel:     r.Channel,
			BatchNumber: r.BatchNumber,
			Status:      store.DispatchStatusPending,
			CreatedAt:   now,
		}
	}
	return nil
}

func (s *Store) GetBatchDispatchRecords(ctx context.Context, campaignID uuid.UUID, runNumber, batch int) ([]store.DispatchRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []store.DispatchRecord
	for _, r := range s.ledger {
		if r.CampaignID == campaignID && r.RunNumber == runNumber && r.BatchNumber == batch {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RecipientID != out[j].RecipientID {
			return out[i].RecipientID < out[j].RecipientID
		}
		return out[i].Channel < out[j].Channel
	})
	return out, nil
}

func (s *Store) MarkDispatched(ctx context.Context, key store.DispatchKey, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailMarkDispatched != nil {
		return false, s.FailMarkDispatched
	}
	r, ok := s.ledger[key]
	if !ok || r.Status != store.DispatchStatusPending {
		return false, nil
	}
	r.Status = store.DispatchStatusDispatched
	r.DispatchedAt = &at
	s.ledger[key] = r
	return true, nil
}

func (s *Store) RecordDispatchOutcome(ctx context.Context, key store.DispatchKey, outcome store.DispatchOutcome, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailRecordOutcome != nil {
		return false, s.FailRecordOutcome
	}
	r, ok := s.ledger[key]
	if !ok || r.Status.Terminal() {
		return false, nil
	}
	r.Status = outcome.Status
	r.Attempts = outcome.Attempts
	r.ErrorCode = optional(outcome.ErrorCode)
	r.ErrorMessage = optional(outcome.ErrorMessage)
	r.ProviderMessageID = optional(outcome.ProviderMessageID)
	r.CompletedAt = &at
	s.ledger[key] = r
	return true, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (s *Store) FailInterruptedDispatches(ctx context.Context, campaignID uuid.UUID, runNumber, batch int, code string, at time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for key, r := range s.ledger {
		if r.CampaignID != campaignID || r.RunNumber != runNumber || r.BatchNumber != batch ||
			r.Status != store.DispatchStatusDispatched {
			continue
		}
		r.Status = store.DispatchStatusFailed
		r.ErrorCode = optional(code)
		r.ErrorMessage = optional("dispatch interrupted before an outcome was recorded")
		r.CompletedAt = &at
		s.ledger[key] = r
		n++
	}
	return n, nil
}

func (s *Store) CountDispatchOutcomes(ctx context.Context, campaignID uuid.UUID, runNumber int) (store.DispatchCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var counts store.DispatchCounts
	for _, r := range s.ledger {
		if r.CampaignID != campaignID || r.RunNumber != runNumber {
			continue
		}
		switch r.Status {
		case store.DispatchStatusPending:
			counts.Pending++
		case store.DispatchStatusDispatched:
			counts.Dispatched++
		case store.DispatchStatusSent:
			counts.Sent++
		case store.DispatchStatusFailed:
			counts.Failed++
		case store.DispatchStatusSkipped:
			counts.Skipped++
		}
	}
	return counts, nil
}

func (s *Store) DeletePendingDispatches(ctx context.Context, campaignID uuid.UUID, runNumber int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, r := range s.ledger {
		if r.CampaignID == campaignID && r.RunNumber == runNumber && r.Status == store.DispatchStatusPending {
			delete(s.ledger, key)
		}
	}
	return nil
}

func (s *Store) AcquireDispatchLease(ctx context.Context, campaignID uuid.UUID, owner string, now, until time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, held := s.leases[campaignID]; held && l.owner != owner && !l.expiresAt.Before(now) {
		return false, nil
	}
	s.leases[campaignID] = dispatchLease{owner: owner, expiresAt: until}
	return true, nil
}

func (s *Store) ReleaseDispatchLease(ctx context.Context, campaignID uuid.UUID, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, held := s.leases[campaignID]; held && l.owner == owner {
		delete(s.leases, campaignID)
	}
	return nil
}

// DispatchRecords returns every ledger row of a run, for assertions.
func (s *Store) DispatchRecords(campaignID uuid.UUID, runNumber int) []store.DispatchRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []store.DispatchRecord
	for _, r := range s.ledger {
		if r.CampaignID == campaignID && r.RunNumber == runNumber {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BatchNumber != out[j].BatchNumber {
			return out[i].BatchNumber < out[j].BatchNumber
		}
		return out[i].RecipientID < out[j].RecipientID
	})
	return out
}

// SetDispatchStatus overwrites a ledger row's status, simulating a crash
// between claiming a row and recording its outcome.
func (s *Store) SetDispatchStatus(key store.DispatchKey, status store.DispatchStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.ledger[key]; ok {
		r.Status = status
		s.ledger[key] = r
	}
}

// ============================================================================
// Trigger rules and workflow instances
// ============================================================================

func (s *Store) CreateTriggerRule(ctx context.Context, params store.CreateTriggerRuleParams) (store.TriggerRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	r := store.TriggerRule{
		ID:        uuid.New(),
		Name:      params.Name,
		EventType: params.EventType,
		Criteria:  store.NewJSON(params.Criteria),
		Steps:     store.NewJSON(append([]store.WorkflowStep(nil), params.Steps...)),
		Enabled:   params.Enabled,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.rules[r.ID] = r
	return r, nil
}

func (s *Store) GetTriggerRuleByID(ctx context.Context, ruleID uuid.UUID) (store.TriggerRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rules[ruleID]
	if !ok {
		return store.TriggerRule{}, store.ErrNotFound
	}
	return r, nil
}

func (s *Store) ListEnabledTriggerRules(ctx context.Context) ([]store.TriggerRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []store.TriggerRule
	for _, r := range s.rules {
		if r.Enabled {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (s *Store) SetTriggerRuleEnabled(ctx context.Context, ruleID uuid.UUID, enabled bool) (store.TriggerRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rules[ruleID]
	if !ok {
		return store.TriggerRule{}, store.ErrNotFound
	}
	r.Enabled = enabled
	r.UpdatedAt = s.now()
	s.rules[ruleID] = r
	return r, nil
}

func (s *Store) CreateWorkflowInstance(ctx context.Context, params store.CreateWorkflowInstanceParams) (store.WorkflowInstance, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := workflowKey{customerID: params.CustomerID, ruleID: params.RuleID, eventID: params.EventID}
	if id, ok := s.instanceByKey[key]; ok {
		return s.instances[id], false, nil
	}
	now := s.now()
	resume := params.ResumeAt
	w := store.WorkflowInstance{
		ID:         uuid.New(),
		CustomerID: params.CustomerID,
		RuleID:     params.RuleID,
		EventID:    params.EventID,
		Payload:    store.NewJSON(params.Payload),
		Status:     store.WorkflowStatusPending,
		ResumeAt:   &resume,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.instances[w.ID] = w
	s.instanceByKey[key] = w.ID
	return w, true, nil
}

func (s *Store) GetWorkflowInstance(ctx context.Context, id uuid.UUID) (store.WorkflowInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.instances[id]
	if !ok {
		return store.WorkflowInstance{}, store.ErrNotFound
	}
	return w, nil
}

func (s *Store) AdvanceWorkflowInstance(ctx context.Context, id uuid.UUID, expectedStep int, params store.AdvanceWorkflowParams) (store.WorkflowInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.instances[id]
	if !ok || w.StepIndex != expectedStep || w.Status.Terminal() {
		return store.WorkflowInstance{}, store.ErrConflict
	}
	w.StepIndex = params.StepIndex
	w.Status = params.Status
	w.ResumeAt = params.ResumeAt
	w.Attempts = params.Attempts
	w.LastError = params.LastError
	w.UpdatedAt = s.now()
	s.instances[id] = w
	return w, nil
}

func (s *Store) ListDueWorkflowInstances(ctx context.Context, now time.Time, limit int) ([]store.WorkflowInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []store.WorkflowInstance
	for _, w := range s.instances {
		if !w.Status.Terminal() && w.ResumeAt != nil && !w.ResumeAt.After(now) {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ResumeAt.Before(*out[j].ResumeAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// WorkflowInstances returns every instance, for assertions.
func (s *Store) WorkflowInstances() []store.WorkflowInstance {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]store.WorkflowInstance, 0, len(s.instances))
	for _, w := range s.instances {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// ============================================================================
// Event log and rollups
// ============================================================================

func (s *Store) AppendEvent(ctx context.Context, e store.LoggedEvent) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.eventIDs[e.ID]; ok {
		return false, nil
	}
	s.eventIDs[e.ID] = struct{}{}
	e.Seq = int64(len(s.eventLog) + 1)
	s.eventLog = append(s.eventLog, e)
	return true, nil
}

func (s *Store) ListEventLog(ctx context.Context, afterSeq int64, limit int) ([]store.LoggedEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if afterSeq < 0 {
		afterSeq = 0
	}
	if afterSeq >= int64(len(s.eventLog)) {
		return nil, nil
	}
	end := afterSeq + int64(limit)
	if end > int64(len(s.eventLog)) {
		end = int64(len(s.eventLog))
	}
	return append([]store.LoggedEvent(nil), s.eventLog[afterSeq:end]...), nil
}

func (s *Store) ApplyRollupEvent(ctx context.Context, inc store.RollupIncrement) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch inc.Metric {
	case store.MetricSent, store.MetricDelivered, store.MetricOpened,
		store.MetricClicked, store.MetricConverted, store.MetricBounced:
	default:
		return false, fmt.Errorf("unknown metric %q", inc.Metric)
	}
	if _, ok := s.rollupEvents[inc.EventID]; ok {
		return false, nil
	}
	s.rollupEvents[inc.EventID] = struct{}{}

	key := rollupKey{campaignID: inc.CampaignID, date: store.RollupDate(inc.Date)}
	r, ok := s.rollups[key]
	if !ok {
		r = store.MetricRollup{CampaignID: inc.CampaignID, Date: key.date}
	}
	r.Add(inc.Metric, 1)
	s.rollups[key] = r
	return true, nil
}

func (s *Store) GetMetricRollup(ctx context.Context, campaignID string, date time.Time) (store.MetricRollup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := rollupKey{campaignID: campaignID, date: store.RollupDate(date)}
	if r, ok := s.rollups[key]; ok {
		return r, nil
	}
	return store.MetricRollup{CampaignID: campaignID, Date: key.date}, nil
}

func (s *Store) GetMetricRollups(ctx context.Context, campaignID string) ([]store.MetricRollup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []store.MetricRollup
	for k, r := range s.rollups {
		if k.campaignID == campaignID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *Store) ResetRollups(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rollupEvents = make(map[string]struct{})
	s.rollups = make(map[rollupKey]store.MetricRollup)
	return nil
}

// AllRollups returns every rollup keyed "campaign|date", for assertions.
func (s *Store) AllRollups() map[string]store.MetricRollup {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]store.MetricRollup, len(s.rollups))
	for k, r := range s.rollups {
		out[k.campaignID+"|"+k.date.Format("2006-01-02")] = r
	}
	return out
}
