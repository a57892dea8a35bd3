package processor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"campaign-engine/internal/channels"
	"campaign-engine/internal/clients/profile"
	"campaign-engine/internal/content"
	"campaign-engine/internal/criteria"
	"campaign-engine/internal/enginerrors"
	"campaign-engine/internal/events"
	"campaign-engine/internal/observability"
	"campaign-engine/internal/store"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
)

// BatchResult summarises one dispatched batch.
type BatchResult struct {
	RunNumber int
	Batch     int
	Sent      int
	Failed    int
	Skipped   int
	RunDone   bool
	Status    store.CampaignStatus
}

// Launch starts the next run of a due campaign: it pins the current segment
// snapshot and writes the run's whole ledger in pending state before any
// send happens.
func (p *CampaignProcessor) Launch(ctx context.Context, campaignID uuid.UUID) (store.Campaign, error) {
	ctx = observability.WithFields(ctx, observability.CampaignID(campaignID))

	lock := p.lock(campaignID)
	lock.Lock()
	defer lock.Unlock()

	campaign, err := p.GetCampaign(ctx, campaignID)
	if err != nil {
		return store.Campaign{}, err
	}
	switch {
	case campaign.Status != store.CampaignStatusScheduled && campaign.Status != store.CampaignStatusActive:
		return store.Campaign{}, invalidTransition(campaign.Status, store.CampaignStatusActive)
	case campaign.RunInProgress():
		return store.Campaign{}, enginerrors.Conflict(enginerrors.CodeInvalidTransition, ErrRunInProgress.Error())
	case campaign.NextRunAt == nil || p.clock.Now().Before(*campaign.NextRunAt):
		return store.Campaign{}, enginerrors.Conflict(enginerrors.CodeInvalidTransition, ErrNotDue.Error())
	}

	lease, err := p.segments.Snapshot(ctx, campaign.SegmentID)
	if err != nil {
		if enginerrors.KindOf(err) == enginerrors.KindNotFound {
			if _, ferr := p.Fail(ctx, campaign.ID, enginerrors.CodeSegmentDeleted); ferr != nil {
				return store.Campaign{}, ferr
			}
			return store.Campaign{}, enginerrors.ConsistencyViolation(enginerrors.CodeSegmentDeleted, "campaign segment was deleted")
		}
		return store.Campaign{}, err
	}
	snap := lease.Snapshot()
	runNumber := campaign.RunNumber + 1
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "run_number", Value: runNumber},
		observability.Field{Key: "snapshot_version", Value: snap.Version},
	)

	// leftovers of a launch that crashed before the run was claimed
	if err := p.store.DeletePendingDispatches(ctx, campaign.ID, runNumber); err != nil {
		_ = lease.Release()
		return store.Campaign{}, fmt.Errorf("failed to clear stale dispatches: %w", err)
	}

	batchSize := campaign.BatchSize
	if batchSize <= 0 {
		batchSize = p.opts.BatchSize
	}
	totalBatches := (snap.Size() + batchSize - 1) / batchSize
	now := p.clock.Now()

	for b := 0; b < totalBatches; b++ {
		page := snap.Page(b*batchSize, batchSize)
		records := make([]store.DispatchRecord, 0, len(page)*len(campaign.Channels))
		for _, recipient := range page {
			for _, ch := range campaign.Channels {
				records = append(records, store.DispatchRecord{
					CampaignID:  campaign.ID,
					RunNumber:   runNumber,
					RecipientID: recipient,
					Channel:     ch,
					BatchNumber: b + 1,
					Status:      store.DispatchStatusPending,
					CreatedAt:   now,
				})
			}
		}
		if err := p.store.InsertDispatchRecords(ctx, records); err != nil {
			_ = lease.Release()
			p.logger.Error(ctx, "failed to write dispatch ledger", err)
			return store.Campaign{}, fmt.Errorf("failed to write dispatch ledger: %w", err)
		}
	}

	started, err := p.store.StartCampaignRun(ctx, campaign.ID, store.StartRunParams{
		RunNumber:       runNumber,
		SnapshotVersion: snap.Version,
		TotalRecipients: snap.Size(),
		TotalBatches:    totalBatches,
		LaunchedAt:      now,
	})
	if err != nil {
		_ = lease.Release()
		if errors.Is(err, store.ErrConflict) {
			return store.Campaign{}, enginerrors.Conflict(enginerrors.CodeInvalidTransition, ErrRunInProgress.Error())
		}
		return store.Campaign{}, fmt.Errorf("failed to start campaign run: %w", err)
	}
	p.holdLease(campaign.ID, lease)

	if campaign.Status == store.CampaignStatusScheduled {
		observability.CampaignTransitions.WithLabelValues(string(store.CampaignStatusActive)).Inc()
	}
	p.emitLifecycle(ctx, started, events.TypeCampaignLaunched, "")
	p.logger.Info(ctx, fmt.Sprintf("campaign run launched with %d recipients in %d batches", snap.Size(), totalBatches))

	if totalBatches == 0 {
		return p.finishRun(ctx, started)
	}
	return started, nil
}

// DispatchNextBatch sends the campaign's next undispatched batch. Rows are
// marked dispatched before the adapter call, so a crash can never cause a
// second send. The batch runs under the campaign's dispatch lease: while
// another replica holds it the call fails with DISPATCH_LEASE_HELD.
func (p *CampaignProcessor) DispatchNextBatch(ctx context.Context, campaignID uuid.UUID) (BatchResult, error) {
	ctx = observability.WithFields(ctx, observability.CampaignID(campaignID))

	lock := p.lock(campaignID)
	lock.Lock()
	defer lock.Unlock()

	claim, err := p.claimDispatch(ctx, campaignID)
	if err != nil {
		return BatchResult{}, err
	}
	defer claim.release(ctx)

	campaign, err := p.GetCampaign(ctx, campaignID)
	if err != nil {
		return BatchResult{}, err
	}
	if campaign.Status != store.CampaignStatusActive {
		return BatchResult{Status: campaign.Status}, enginerrors.Conflict(enginerrors.CodeInvalidTransition, ErrNotActive.Error())
	}
	if !campaign.RunInProgress() {
		return BatchResult{RunNumber: campaign.RunNumber, RunDone: true, Status: campaign.Status}, nil
	}

	result := BatchResult{RunNumber: campaign.RunNumber, Batch: campaign.NextBatch, Status: campaign.Status}
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "run_number", Value: campaign.RunNumber},
		observability.Field{Key: "batch", Value: campaign.NextBatch},
	)

	if _, err := p.segments.GetSegment(ctx, campaign.SegmentID); err != nil {
		if enginerrors.KindOf(err) == enginerrors.KindNotFound {
			failed, err := p.Fail(ctx, campaign.ID, enginerrors.CodeSegmentDeleted)
			if err != nil {
				return result, err
			}
			result.Status = failed.Status
			return result, enginerrors.ConsistencyViolation(enginerrors.CodeSegmentDeleted, "segment deleted while campaign active")
		}
		return result, err
	}

	c, err := p.contents.Get(ctx, campaign.ContentID)
	if err != nil {
		return result, err
	}
	if c.Status != store.ContentStatusApproved {
		failed, err := p.Fail(ctx, campaign.ID, enginerrors.CodeContentNotApproved)
		if err != nil {
			return result, err
		}
		result.Status = failed.Status
		return result, enginerrors.ConsistencyViolation(enginerrors.CodeContentNotApproved, ErrContentNotApproved.Error())
	}

	if n, err := p.store.FailInterruptedDispatches(ctx, campaign.ID, campaign.RunNumber, campaign.NextBatch,
		enginerrors.CodeDispatchInterrupted, p.clock.Now()); err != nil {
		return result, fmt.Errorf("failed to resolve interrupted dispatches: %w", err)
	} else if n > 0 {
		result.Failed += n
		p.logger.Warn(ctx, fmt.Sprintf("resolved %d interrupted dispatches as failed", n))
	}

	records, err := p.store.GetBatchDispatchRecords(ctx, campaign.ID, campaign.RunNumber, campaign.NextBatch)
	if err != nil {
		return result, fmt.Errorf("failed to load batch: %w", err)
	}
	pending := make([]store.DispatchRecord, 0, len(records))
	for _, r := range records {
		if r.Status == store.DispatchStatusPending {
			pending = append(pending, r)
		}
	}

	if len(pending) > 0 {
		if err := p.sendBatch(ctx, claim, campaign, c, pending, &result); err != nil {
			return result, err
		}
	}

	counts, err := p.store.CountDispatchOutcomes(ctx, campaign.ID, campaign.RunNumber)
	if err != nil {
		return result, fmt.Errorf("failed to count dispatch outcomes: %w", err)
	}
	if p.failureRatioExceeded(counts) {
		failed, err := p.Fail(ctx, campaign.ID, enginerrors.CodeFailureRatioExceeded)
		if err != nil {
			return result, err
		}
		result.Status = failed.Status
		return result, nil
	}

	advanced, err := p.store.AdvanceCampaignBatch(ctx, campaign.ID, campaign.RunNumber, campaign.NextBatch)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return result, enginerrors.Conflict(enginerrors.CodeInvalidTransition, "batch advanced concurrently")
		}
		return result, fmt.Errorf("failed to advance batch: %w", err)
	}
	observability.BatchesDispatched.WithLabelValues(string(campaign.Type)).Inc()
	p.logger.Info(ctx, fmt.Sprintf("batch dispatched: %d sent, %d failed, %d skipped", result.Sent, result.Failed, result.Skipped))

	if !advanced.RunInProgress() {
		finished, err := p.finishRun(ctx, advanced)
		if err != nil {
			return result, err
		}
		result.RunDone = true
		result.Status = finished.Status
	}
	return result, nil
}

// Run dispatches batches until the run is done or the campaign leaves the
// active state.
func (p *CampaignProcessor) Run(ctx context.Context, campaignID uuid.UUID) (store.Campaign, error) {
	for {
		if err := ctx.Err(); err != nil {
			return store.Campaign{}, err
		}
		result, err := p.DispatchNextBatch(ctx, campaignID)
		if err != nil {
			if enginerrors.KindOf(err) == enginerrors.KindConflict && result.Status != "" && result.Status != store.CampaignStatusActive {
				return p.GetCampaign(ctx, campaignID)
			}
			return store.Campaign{}, err
		}
		if result.RunDone || result.Status != store.CampaignStatusActive {
			return p.GetCampaign(ctx, campaignID)
		}
	}
}

// Recover resolves ledger rows orphaned in dispatched state by a crash. They
// are recorded failed with DISPATCH_INTERRUPTED and never re-sent. It returns
// the number of rows resolved.
func (p *CampaignProcessor) Recover(ctx context.Context) (int, error) {
	total := 0
	for _, status := range []store.CampaignStatus{store.CampaignStatusActive, store.CampaignStatusPaused} {
		campaigns, err := p.store.ListCampaignsByStatus(ctx, status)
		if err != nil {
			return total, fmt.Errorf("failed to list %s campaigns: %w", status, err)
		}
		for _, campaign := range campaigns {
			if !campaign.RunInProgress() {
				continue
			}
			n, err := p.recoverCampaign(ctx, campaign)
			if err != nil {
				return total, fmt.Errorf("failed to recover campaign %s: %w", campaign.ID, err)
			}
			if n > 0 {
				p.logger.Warn(observability.WithFields(ctx,
					observability.CampaignID(campaign.ID),
					observability.Field{Key: "run_number", Value: campaign.RunNumber},
				), fmt.Sprintf("recovered %d interrupted dispatches", n))
			}
			total += n
		}
	}
	return total, nil
}

// recoverCampaign resolves the interrupted rows of one campaign unless
// another replica holds its dispatch lease; that replica may still be
// waiting on the adapter for those rows.
func (p *CampaignProcessor) recoverCampaign(ctx context.Context, campaign store.Campaign) (int, error) {
	lock := p.lock(campaign.ID)
	lock.Lock()
	defer lock.Unlock()

	claim, err := p.claimDispatch(ctx, campaign.ID)
	if err != nil {
		if enginerrors.KindOf(err) == enginerrors.KindConflict {
			return 0, nil
		}
		return 0, err
	}
	defer claim.release(ctx)

	return p.store.FailInterruptedDispatches(ctx, campaign.ID, campaign.RunNumber, campaign.NextBatch,
		enginerrors.CodeDispatchInterrupted, p.clock.Now())
}

// LaunchDue launches every campaign whose next run is due and returns how
// many were launched.
func (p *CampaignProcessor) LaunchDue(ctx context.Context, limit int) (int, error) {
	due, err := p.store.ListDueCampaigns(ctx, p.clock.Now(), limit)
	if err != nil {
		return 0, fmt.Errorf("failed to list due campaigns: %w", err)
	}
	launched := 0
	for _, campaign := range due {
		if _, err := p.Launch(ctx, campaign.ID); err != nil {
			if enginerrors.KindOf(err) == enginerrors.KindConflict {
				continue
			}
			p.logger.Error(observability.WithFields(ctx, observability.CampaignID(campaign.ID)),
				"failed to launch campaign", err)
			continue
		}
		launched++
	}
	return launched, nil
}

// DispatchActive sends one batch for every active campaign with a run in
// progress. It returns the number of batches dispatched.
func (p *CampaignProcessor) DispatchActive(ctx context.Context) (int, error) {
	active, err := p.store.ListCampaignsByStatus(ctx, store.CampaignStatusActive)
	if err != nil {
		return 0, fmt.Errorf("failed to list active campaigns: %w", err)
	}
	dispatched := 0
	for _, campaign := range active {
		if !campaign.RunInProgress() {
			continue
		}
		if _, err := p.DispatchNextBatch(ctx, campaign.ID); err != nil {
			if enginerrors.CodeOf(err) == enginerrors.CodeDispatchLeaseHeld {
				p.logger.Debug(observability.WithFields(ctx, observability.CampaignID(campaign.ID)),
					"campaign is dispatched by another replica")
				continue
			}
			p.logger.Error(observability.WithFields(ctx, observability.CampaignID(campaign.ID)),
				"failed to dispatch batch", err)
			continue
		}
		dispatched++
	}
	return dispatched, nil
}

type renderedVariant struct {
	variant store.ContentVariant
	subject string
	body    string
}

func (p *CampaignProcessor) sendBatch(ctx context.Context, claim *dispatchClaim, campaign store.Campaign, c store.Content, pending []store.DispatchRecord, result *BatchResult) error {
	suppressed, err := p.store.ListSuppressions(ctx)
	if err != nil {
		return fmt.Errorf("failed to load suppressions: %w", err)
	}
	suppressedSet := make(map[string]struct{}, len(suppressed))
	for _, id := range suppressed {
		suppressedSet[id] = struct{}{}
	}

	ids := make([]string, 0, len(pending))
	seen := make(map[string]struct{}, len(pending))
	for _, r := range pending {
		if _, ok := seen[r.RecipientID]; !ok {
			seen[r.RecipientID] = struct{}{}
			ids = append(ids, r.RecipientID)
		}
	}
	customers, err := p.profiles.BatchGetCustomers(ctx, ids)
	if err != nil {
		return enginerrors.DataSourceUnavailable("recipient profiles unavailable", err)
	}
	byID := make(map[string]profile.Customer, len(customers))
	for _, customer := range customers {
		byID[customer.ID] = customer
	}

	// render every variant this batch uses exactly once
	rendered := make(map[string]renderedVariant)
	campaignKey := campaign.ID.String()
	for _, id := range ids {
		v, ok := content.SelectVariant(c.Variants.V, campaignKey, id)
		if !ok {
			return enginerrors.Validation(enginerrors.CodeInvalidInput, "content has no selectable variant")
		}
		if _, done := rendered[v.ID]; done {
			continue
		}
		out, err := p.renderer.Render(ctx, content.CacheKey(c, v.ID), c.TemplateID, map[string]string{
			"variant_id": v.ID,
			"subject":    v.Subject,
			"body":       v.Body,
		})
		if err != nil {
			return enginerrors.TransientChannel(enginerrors.CodeChannelUnavailable, "render failed", err)
		}
		rendered[v.ID] = renderedVariant{variant: v, subject: out.Subject, body: out.Body}
	}

	spent := campaign.BudgetSpent
	sort.Slice(pending, func(i, j int) bool {
		if pending[i].RecipientID != pending[j].RecipientID {
			return pending[i].RecipientID < pending[j].RecipientID
		}
		return pending[i].Channel < pending[j].Channel
	})

	// sent events go out in one write once the batch stops, also on error
	var sent []events.Event
	defer func() { p.publishSent(ctx, sent) }()

	retryDeadline := p.clock.Now().Add(p.opts.BatchRetryBudget)
	for _, r := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		key := r.Key()
		customer, known := byID[r.RecipientID]

		var skip *store.DispatchOutcome
		switch {
		case p.revoked(customer, suppressedSet, r.RecipientID):
			skip = &store.DispatchOutcome{Status: store.DispatchStatusSkipped, ErrorCode: enginerrors.CodeConsentRevoked, ErrorMessage: "customer revoked consent"}
		case !known:
			skip = &store.DispatchOutcome{Status: store.DispatchStatusSkipped, ErrorCode: enginerrors.CodeNoAddress, ErrorMessage: "customer not found"}
		case campaign.BudgetTotal > 0 && spent+campaign.CostPerSend > campaign.BudgetTotal:
			skip = &store.DispatchOutcome{Status: store.DispatchStatusSkipped, ErrorCode: enginerrors.CodeBudgetExhausted, ErrorMessage: "campaign budget exhausted"}
		}
		if skip != nil {
			applied, err := p.record(ctx, key, *skip)
			if err != nil {
				return err
			}
			if applied {
				result.Skipped++
			}
			continue
		}

		now, err := claim.renew(ctx)
		if err != nil {
			return err
		}
		ok, err := p.store.MarkDispatched(ctx, key, now)
		if err != nil {
			return fmt.Errorf("failed to mark dispatched: %w", err)
		}
		if !ok {
			continue
		}

		v, _ := content.SelectVariant(c.Variants.V, campaignKey, r.RecipientID)
		rv := rendered[v.ID]
		msg := channels.Message{
			Subject: content.Personalize(rv.subject, customer.Attributes),
			Body:    content.Personalize(rv.body, customer.Attributes),
		}
		idempotencyKey := IdempotencyKey(r)

		outcome := p.deliver(ctx, r.Channel, channels.Recipient{CustomerID: customer.ID, Address: customer.Address(r.Channel)}, msg, idempotencyKey, retryDeadline)
		applied, err := p.record(ctx, key, outcome)
		if err != nil {
			return err
		}
		if !applied {
			// another writer resolved the row first; its outcome stands
			p.logger.Warn(observability.WithFields(ctx, observability.Field{Key: "recipient_id", Value: r.RecipientID}),
				"dispatch outcome already recorded, dropping this one")
			continue
		}

		switch outcome.Status {
		case store.DispatchStatusSent:
			result.Sent++
			if campaign.CostPerSend > 0 {
				if err := p.store.AddCampaignSpend(ctx, campaign.ID, campaign.CostPerSend); err != nil {
					return fmt.Errorf("failed to add campaign spend: %w", err)
				}
				spent += campaign.CostPerSend
			}
			sent = append(sent, p.sentEvent(campaign, r, v.ID, idempotencyKey))
		case store.DispatchStatusSkipped:
			result.Skipped++
		default:
			result.Failed++
		}
	}
	return nil
}

// deliver calls the adapter, retrying transient errors with exponential
// backoff under one idempotency key. One delivery never outlasts
// DeliveryTimeout, and once the batch passes retryDeadline a transient
// error is final.
func (p *CampaignProcessor) deliver(ctx context.Context, channel string, to channels.Recipient, msg channels.Message, idempotencyKey string, retryDeadline time.Time) store.DispatchOutcome {
	adapter, err := p.channels.Get(channel)
	if err != nil {
		return store.DispatchOutcome{Status: store.DispatchStatusFailed, ErrorCode: enginerrors.CodeOf(err), ErrorMessage: err.Error()}
	}

	ctx, cancel := context.WithTimeout(ctx, p.opts.DeliveryTimeout)
	defer cancel()

	maxTries := uint(p.opts.MaxAttempts)
	maxElapsed := p.opts.DeliveryTimeout
	if left := retryDeadline.Sub(p.clock.Now()); left <= 0 {
		maxTries = 1
	} else if left < maxElapsed {
		maxElapsed = left
	}

	attempts := 0
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.opts.InitialBackoff
	b.MaxInterval = p.opts.MaxBackoff

	out, err := backoff.Retry(ctx, func() (channels.Outcome, error) {
		attempts++
		out, err := adapter.Send(ctx, to, msg, idempotencyKey)
		if err != nil && !enginerrors.Retryable(err) {
			return out, backoff.Permanent(err)
		}
		return out, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(maxTries), backoff.WithMaxElapsedTime(maxElapsed))
	if err != nil {
		code := enginerrors.CodeOf(err)
		if code == "" || code == enginerrors.CodeInternal {
			code = enginerrors.CodeChannelUnavailable
		}
		return store.DispatchOutcome{Status: store.DispatchStatusFailed, Attempts: attempts, ErrorCode: code, ErrorMessage: err.Error()}
	}

	switch out.Status {
	case channels.StatusAccepted:
		return store.DispatchOutcome{Status: store.DispatchStatusSent, Attempts: attempts, ProviderMessageID: out.ProviderMessageID}
	case channels.StatusSkipped:
		return store.DispatchOutcome{Status: store.DispatchStatusSkipped, Attempts: attempts, ErrorCode: out.Code, ErrorMessage: out.Reason}
	default:
		return store.DispatchOutcome{Status: store.DispatchStatusFailed, Attempts: attempts, ErrorCode: out.Code, ErrorMessage: out.Reason}
	}
}

// record writes a row's outcome and reports whether this call resolved it.
func (p *CampaignProcessor) record(ctx context.Context, key store.DispatchKey, outcome store.DispatchOutcome) (bool, error) {
	applied, err := p.store.RecordDispatchOutcome(ctx, key, outcome, p.clock.Now())
	if err != nil {
		p.logger.Error(ctx, "failed to record dispatch outcome", err)
		return false, fmt.Errorf("failed to record dispatch outcome: %w", err)
	}
	if applied {
		observability.RecipientOutcomes.WithLabelValues(key.Channel, string(outcome.Status)).Inc()
	}
	return applied, nil
}

// dispatchClaim is this process's lease on one campaign's dispatching.
type dispatchClaim struct {
	p          *CampaignProcessor
	campaignID uuid.UUID
	until      time.Time
}

func (p *CampaignProcessor) claimDispatch(ctx context.Context, campaignID uuid.UUID) (*dispatchClaim, error) {
	claim := &dispatchClaim{p: p, campaignID: campaignID}
	if err := claim.acquire(ctx, p.clock.Now()); err != nil {
		return nil, err
	}
	return claim, nil
}

func (c *dispatchClaim) acquire(ctx context.Context, now time.Time) error {
	until := now.Add(c.p.opts.LeaseDuration)
	ok, err := c.p.store.AcquireDispatchLease(ctx, c.campaignID, c.p.owner, now, until)
	if err != nil {
		return fmt.Errorf("failed to acquire dispatch lease: %w", err)
	}
	if !ok {
		return enginerrors.Conflict(enginerrors.CodeDispatchLeaseHeld, ErrDispatchLeaseHeld.Error())
	}
	c.until = until
	return nil
}

// renew extends the lease when less than one delivery timeout is left, so
// the send that follows ends before the lease can pass to another replica.
// It returns the time to stamp on the claimed row.
func (c *dispatchClaim) renew(ctx context.Context) (time.Time, error) {
	now := c.p.clock.Now()
	if now.Add(c.p.opts.DeliveryTimeout).Before(c.until) {
		return now, nil
	}
	if err := c.acquire(ctx, now); err != nil {
		return time.Time{}, err
	}
	return now, nil
}

func (c *dispatchClaim) release(ctx context.Context) {
	if err := c.p.store.ReleaseDispatchLease(context.WithoutCancel(ctx), c.campaignID, c.p.owner); err != nil {
		c.p.logger.Error(ctx, "failed to release dispatch lease", err)
	}
}

func (p *CampaignProcessor) revoked(customer profile.Customer, suppressed map[string]struct{}, recipientID string) bool {
	if customer.ConsentRevoked || p.optedOut(recipientID) {
		return true
	}
	_, ok := suppressed[recipientID]
	return ok
}

// failureRatioExceeded compares failed sends with every send that reached
// an outcome. Skips do not count either way.
func (p *CampaignProcessor) failureRatioExceeded(counts store.DispatchCounts) bool {
	if p.opts.FailureRatioThreshold <= 0 {
		return false
	}
	finished := counts.Sent + counts.Failed
	if finished == 0 {
		return false
	}
	return float64(counts.Failed)/float64(finished) > p.opts.FailureRatioThreshold
}

// finishRun completes the campaign or, for recurring campaigns with another
// occurrence inside their window, parks it until the next run.
func (p *CampaignProcessor) finishRun(ctx context.Context, campaign store.Campaign) (store.Campaign, error) {
	p.releaseLease(campaign.ID)

	if next, ok := nextOccurrence(campaign, p.clock.Now()); ok {
		parked, err := p.store.FinishCampaignRun(ctx, campaign.ID, campaign.RunNumber, next)
		if err != nil {
			return store.Campaign{}, fmt.Errorf("failed to finish campaign run: %w", err)
		}
		p.logger.Info(observability.WithFields(ctx, observability.Field{Key: "next_run_at", Value: next}), "campaign run finished")
		return parked, nil
	}

	done, err := p.store.UpdateCampaignStatus(ctx, campaign.ID,
		[]store.CampaignStatus{store.CampaignStatusActive}, store.CampaignStatusCompleted, nil)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return p.GetCampaign(ctx, campaign.ID)
		}
		return store.Campaign{}, fmt.Errorf("failed to complete campaign: %w", err)
	}
	observability.CampaignTransitions.WithLabelValues(string(store.CampaignStatusCompleted)).Inc()
	p.emitLifecycle(ctx, done, events.TypeCampaignCompleted, "")
	p.logger.Info(ctx, "campaign completed")
	return done, nil
}

func (p *CampaignProcessor) sentEvent(campaign store.Campaign, r store.DispatchRecord, variantID, idempotencyKey string) events.Event {
	campaignID := campaign.ID.String()
	return events.Event{
		ID:         events.IdempotencyID(idempotencyKey, "sent"),
		Type:       events.ChannelEventType(r.Channel, "sent"),
		Timestamp:  p.clock.Now(),
		CustomerID: r.RecipientID,
		CampaignID: &campaignID,
		Properties: map[string]criteria.Value{
			"variant_id": criteria.String(variantID),
			"run_number": criteria.Int(int64(r.RunNumber)),
		},
	}
}

func (p *CampaignProcessor) publishSent(ctx context.Context, sent []events.Event) {
	if p.publisher == nil || len(sent) == 0 {
		return
	}
	if err := p.publisher.PublishBatch(context.WithoutCancel(ctx), sent); err != nil {
		p.logger.Error(ctx, fmt.Sprintf("failed to publish %d sent events", len(sent)), err)
	}
}

// IdempotencyKey is the provider-facing key of one ledger row:
// campaign:run:batch:recipient:channel.
func IdempotencyKey(r store.DispatchRecord) string {
	return r.CampaignID.String() + ":" + strconv.Itoa(r.RunNumber) + ":" + strconv.Itoa(r.BatchNumber) + ":" + r.RecipientID + ":" + r.Channel
}
