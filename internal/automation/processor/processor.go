package processor

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"net/url"
	"strings"
	"sync"
	"time"

	"campaign-engine/internal/channels"
	"campaign-engine/internal/clock"
	"campaign-engine/internal/criteria"
	"campaign-engine/internal/enginerrors"
	"campaign-engine/internal/events"
	"campaign-engine/internal/observability"
	"campaign-engine/internal/store"

	"github.com/google/uuid"
)

var (
	ErrRuleNotFound     = errors.New("trigger rule not found")
	ErrInstanceNotFound = errors.New("workflow instance not found")
	ErrInstanceMoved    = errors.New("workflow instance was advanced concurrently")
)

const (
	DefaultResumeBatch     = 500
	DefaultMaxStepAttempts = 5
	DefaultRetryDelay      = 30 * time.Second

	lockStripes = 64
)

type Options struct {
	// MaxStepAttempts bounds how often a step failing with a retryable error
	// is tried before the instance fails.
	MaxStepAttempts int
	// RetryDelay is multiplied by the attempt number to get the next resume time.
	RetryDelay  time.Duration
	ResumeBatch int
}

// AutomationProcessor matches stream events against trigger rules and runs
// the resulting workflow instances step by step.
type AutomationProcessor struct {
	store     RuleStore
	contents  ContentSource
	profiles  ProfileSource
	renderer  Renderer
	channels  ChannelRegistry
	segments  SegmentMembership
	optOuts   OptOutSink
	webhooks  WebhookEnqueuer
	publisher EventPublisher
	clock     clock.Clock
	logger    *observability.Logger
	opts      Options

	// one writer per customer inside this process; the store CAS on the
	// step index covers other processes
	stripes [lockStripes]sync.Mutex

	revoked sync.Map // customer id -> struct{}
}

func New(
	store RuleStore,
	contents ContentSource,
	profiles ProfileSource,
	renderer Renderer,
	registry ChannelRegistry,
	segments SegmentMembership,
	optOuts OptOutSink,
	webhooks WebhookEnqueuer,
	publisher EventPublisher,
	clk clock.Clock,
	logger *observability.Logger,
	opts Options,
) *AutomationProcessor {
	if opts.MaxStepAttempts <= 0 {
		opts.MaxStepAttempts = DefaultMaxStepAttempts
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	if opts.ResumeBatch <= 0 {
		opts.ResumeBatch = DefaultResumeBatch
	}
	return &AutomationProcessor{
		store:     store,
		contents:  contents,
		profiles:  profiles,
		renderer:  renderer,
		channels:  registry,
		segments:  segments,
		optOuts:   optOuts,
		webhooks:  webhooks,
		publisher: publisher,
		clock:     clk,
		logger:    logger,
		opts:      opts,
	}
}

// Name identifies the processor to the stream consumer.
func (p *AutomationProcessor) Name() string {
	return "automation"
}

// CreateRuleParams represents parameters for creating a trigger rule
type CreateRuleParams struct {
	Name      string `validate:"required,max=255"`
	EventType string `validate:"required,max=255"`
	Criteria  criteria.Criteria
	Steps     []store.WorkflowStep `validate:"required,min=1,dive"`
	Enabled   bool
}

func (p *AutomationProcessor) CreateRule(ctx context.Context, params CreateRuleParams) (store.TriggerRule, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "rule_name", Value: params.Name},
		observability.Field{Key: "event_type", Value: params.EventType},
	)

	if err := enginerrors.ValidateStruct(params); err != nil {
		return store.TriggerRule{}, err
	}
	if !params.Criteria.IsZero() {
		if err := params.Criteria.Validate(); err != nil {
			return store.TriggerRule{}, err
		}
	}
	for i, step := range params.Steps {
		if err := validateStep(step); err != nil {
			return store.TriggerRule{}, enginerrors.Validation(enginerrors.CodeInvalidInput,
				fmt.Sprintf("step %d: %s", i, err.Error()))
		}
	}

	rule, err := p.store.CreateTriggerRule(ctx, store.CreateTriggerRuleParams{
		Name:      params.Name,
		EventType: params.EventType,
		Criteria:  params.Criteria,
		Steps:     params.Steps,
		Enabled:   params.Enabled,
	})
	if err != nil {
		p.logger.Error(ctx, "failed to create trigger rule", err)
		return store.TriggerRule{}, fmt.Errorf("failed to create trigger rule: %w", err)
	}

	ctx = observability.WithFields(ctx, observability.Field{Key: "rule_id", Value: rule.ID})
	p.logger.Info(ctx, "trigger rule created")
	return rule, nil
}

func validateStep(step store.WorkflowStep) error {
	switch step.Type {
	case store.StepSendContent:
		if step.ContentID == nil || *step.ContentID == uuid.Nil {
			return errors.New("send_content requires content_id")
		}
		if step.Channel != "" && !channels.Valid(step.Channel) {
			return fmt.Errorf("unknown channel %q", step.Channel)
		}
	case store.StepWait:
		if step.DelaySeconds <= 0 {
			return errors.New("wait requires a positive delay_seconds")
		}
	case store.StepUpdateSegment:
		switch step.SegmentAction {
		case store.SegmentActionAdd, store.SegmentActionRemove:
			if step.SegmentID == nil || *step.SegmentID == uuid.Nil {
				return errors.New("update_segment requires segment_id")
			}
		case store.SegmentActionSuppress:
		default:
			return fmt.Errorf("unknown segment_action %q", step.SegmentAction)
		}
	case store.StepCallWebhook:
		u, err := url.Parse(step.WebhookURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return errors.New("call_webhook requires an absolute http(s) webhook_url")
		}
	default:
		return fmt.Errorf("unknown step type %q", step.Type)
	}
	return nil
}

func (p *AutomationProcessor) GetRule(ctx context.Context, ruleID uuid.UUID) (store.TriggerRule, error) {
	rule, err := p.store.GetTriggerRuleByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.TriggerRule{}, enginerrors.NotFound(enginerrors.CodeRuleNotFound, ErrRuleNotFound.Error())
		}
		return store.TriggerRule{}, fmt.Errorf("failed to get trigger rule: %w", err)
	}
	return rule, nil
}

func (p *AutomationProcessor) EnableRule(ctx context.Context, ruleID uuid.UUID) (store.TriggerRule, error) {
	return p.setEnabled(ctx, ruleID, true)
}

// DisableRule stops new matches at once. Running instances are cancelled at
// their next step boundary.
func (p *AutomationProcessor) DisableRule(ctx context.Context, ruleID uuid.UUID) (store.TriggerRule, error) {
	return p.setEnabled(ctx, ruleID, false)
}

func (p *AutomationProcessor) setEnabled(ctx context.Context, ruleID uuid.UUID, enabled bool) (store.TriggerRule, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "rule_id", Value: ruleID},
		observability.Field{Key: "enabled", Value: enabled},
	)

	rule, err := p.store.SetTriggerRuleEnabled(ctx, ruleID, enabled)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.TriggerRule{}, enginerrors.NotFound(enginerrors.CodeRuleNotFound, ErrRuleNotFound.Error())
		}
		p.logger.Error(ctx, "failed to update trigger rule", err)
		return store.TriggerRule{}, fmt.Errorf("failed to update trigger rule: %w", err)
	}
	p.logger.Info(ctx, "trigger rule updated")
	return rule, nil
}

// Matches reports whether an event of eventType with attrs fires rule.
func Matches(rule store.TriggerRule, eventType string, attrs criteria.Attributes) bool {
	if !rule.Enabled {
		return false
	}
	if rule.EventType != events.Wildcard && rule.EventType != eventType {
		return false
	}
	c := rule.Criteria.V
	return c.IsZero() || criteria.Evaluate(c, attrs)
}

// Process starts one workflow instance per matching rule. Redelivered events
// map to existing instances and start nothing.
func (p *AutomationProcessor) Process(ctx context.Context, e events.Event) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "event_id", Value: e.ID},
		observability.Field{Key: "event_type", Value: e.Type},
		observability.CustomerID(e.CustomerID),
	)

	if err := p.forwardCustomerEvent(ctx, e); err != nil {
		return err
	}
	if e.CustomerID == "" {
		return nil
	}

	rules, err := p.store.ListEnabledTriggerRules(ctx)
	if err != nil {
		return enginerrors.DataSourceUnavailable("failed to list trigger rules", err)
	}

	attrs := e.Attributes()
	now := p.clock.Now()
	for _, rule := range rules {
		if !Matches(rule, e.Type, attrs) {
			continue
		}
		ruleCtx := observability.WithFields(ctx, observability.Field{Key: "rule_id", Value: rule.ID})

		instance, created, err := p.store.CreateWorkflowInstance(ruleCtx, store.CreateWorkflowInstanceParams{
			CustomerID: e.CustomerID,
			RuleID:     rule.ID,
			EventID:    e.ID,
			Payload: store.LoggedPayload{
				EventType:  e.Type,
				CampaignID: e.CampaignID,
				Properties: e.Properties,
			},
			ResumeAt: now,
		})
		if err != nil {
			return enginerrors.DataSourceUnavailable("failed to create workflow instance", err)
		}
		if !created {
			p.logger.Debug(ruleCtx, "workflow instance already exists")
			continue
		}
		observability.WorkflowInstances.WithLabelValues("started").Inc()

		// left pending and due on failure, the next tick picks it up
		if _, err := p.Advance(ruleCtx, instance.ID); err != nil {
			p.logger.Error(ruleCtx, "failed to advance new workflow instance", err)
		}
	}
	return nil
}

func (p *AutomationProcessor) forwardCustomerEvent(ctx context.Context, e events.Event) error {
	if !strings.HasPrefix(e.Type, "customer.") {
		return nil
	}
	if e.Type == events.TypeCustomerConsentRevoked && e.CustomerID != "" {
		p.revoked.Store(e.CustomerID, struct{}{})
	}
	if p.segments != nil {
		if err := p.segments.HandleCustomerEvent(ctx, e); err != nil {
			return err
		}
	}
	if p.optOuts != nil && e.Type == events.TypeCustomerConsentRevoked {
		if err := p.optOuts.HandleCustomerEvent(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// Tick advances every instance whose resume time has passed. It returns
// how many were advanced.
func (p *AutomationProcessor) Tick(ctx context.Context, now time.Time) (int, error) {
	due, err := p.store.ListDueWorkflowInstances(ctx, now, p.opts.ResumeBatch)
	if err != nil {
		return 0, fmt.Errorf("failed to list due workflow instances: %w", err)
	}

	advanced := 0
	for _, instance := range due {
		if err := ctx.Err(); err != nil {
			return advanced, err
		}
		if _, err := p.Advance(ctx, instance.ID); err != nil {
			p.logger.Error(observability.WithFields(ctx,
				observability.Field{Key: "instance_id", Value: instance.ID}),
				"failed to advance workflow instance", err)
			continue
		}
		advanced++
	}
	return advanced, nil
}

// Advance runs steps of an instance until it waits, fails or finishes.
// Instances not yet due are returned unchanged.
func (p *AutomationProcessor) Advance(ctx context.Context, instanceID uuid.UUID) (store.WorkflowInstance, error) {
	instance, err := p.getInstance(ctx, instanceID)
	if err != nil {
		return store.WorkflowInstance{}, err
	}

	mu := p.stripe(instance.CustomerID)
	mu.Lock()
	defer mu.Unlock()

	// re-read under the lock, a concurrent Advance may have moved it
	instance, err = p.getInstance(ctx, instanceID)
	if err != nil {
		return store.WorkflowInstance{}, err
	}
	if instance.Status.Terminal() {
		return instance, nil
	}
	if instance.ResumeAt != nil && instance.ResumeAt.After(p.clock.Now()) {
		return instance, nil
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "instance_id", Value: instance.ID},
		observability.Field{Key: "rule_id", Value: instance.RuleID},
		observability.CustomerID(instance.CustomerID),
	)

	for {
		if err := ctx.Err(); err != nil {
			return instance, err
		}

		rule, err := p.store.GetTriggerRuleByID(ctx, instance.RuleID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return p.finish(ctx, instance, store.WorkflowStatusCancelled, "rule deleted")
			}
			return instance, enginerrors.DataSourceUnavailable("failed to load trigger rule", err)
		}
		if !rule.Enabled {
			return p.finish(ctx, instance, store.WorkflowStatusCancelled, "rule disabled")
		}

		steps := rule.Steps.V
		if instance.StepIndex >= len(steps) {
			return p.finish(ctx, instance, store.WorkflowStatusCompleted, "")
		}
		step := steps[instance.StepIndex]
		stepCtx := observability.WithFields(ctx,
			observability.Field{Key: "step", Value: instance.StepIndex},
			observability.Field{Key: "step_type", Value: step.Type},
		)

		if step.Type == store.StepWait {
			resumeAt := p.clock.Now().Add(step.Delay())
			instance, err = p.advance(stepCtx, instance, store.AdvanceWorkflowParams{
				StepIndex: instance.StepIndex + 1,
				Status:    store.WorkflowStatusWaiting,
				ResumeAt:  &resumeAt,
			})
			if err != nil {
				return instance, err
			}
			observability.WorkflowInstances.WithLabelValues("waiting").Inc()
			p.logger.Info(observability.WithFields(stepCtx,
				observability.Field{Key: "resume_at", Value: resumeAt}), "workflow instance waiting")
			return instance, nil
		}

		if err := p.runStep(stepCtx, rule, instance, step); err != nil {
			return p.stepFailed(stepCtx, instance, err)
		}

		now := p.clock.Now()
		instance, err = p.advance(stepCtx, instance, store.AdvanceWorkflowParams{
			StepIndex: instance.StepIndex + 1,
			Status:    store.WorkflowStatusPending,
			ResumeAt:  &now,
		})
		if err != nil {
			return instance, err
		}
	}
}

func (p *AutomationProcessor) getInstance(ctx context.Context, id uuid.UUID) (store.WorkflowInstance, error) {
	instance, err := p.store.GetWorkflowInstance(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.WorkflowInstance{}, enginerrors.NotFound(enginerrors.CodeInvalidInput, ErrInstanceNotFound.Error())
		}
		return store.WorkflowInstance{}, enginerrors.DataSourceUnavailable("failed to load workflow instance", err)
	}
	return instance, nil
}

// advance moves the instance conditionally on its current step index.
func (p *AutomationProcessor) advance(ctx context.Context, instance store.WorkflowInstance, params store.AdvanceWorkflowParams) (store.WorkflowInstance, error) {
	next, err := p.store.AdvanceWorkflowInstance(ctx, instance.ID, instance.StepIndex, params)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			p.logger.Warn(ctx, ErrInstanceMoved.Error())
			return instance, enginerrors.Conflict(enginerrors.CodeInvalidTransition, ErrInstanceMoved.Error())
		}
		p.logger.Error(ctx, "failed to advance workflow instance", err)
		return instance, enginerrors.DataSourceUnavailable("failed to advance workflow instance", err)
	}
	return next, nil
}

func (p *AutomationProcessor) finish(ctx context.Context, instance store.WorkflowInstance, status store.WorkflowStatus, reason string) (store.WorkflowInstance, error) {
	params := store.AdvanceWorkflowParams{
		StepIndex: instance.StepIndex,
		Status:    status,
		Attempts:  instance.Attempts,
	}
	if reason != "" {
		params.LastError = &reason
	}
	done, err := p.advance(ctx, instance, params)
	if err != nil {
		return instance, err
	}
	observability.WorkflowInstances.WithLabelValues(string(status)).Inc()
	p.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "status", Value: status},
		observability.Field{Key: "reason", Value: reason},
	), "workflow instance finished")
	return done, nil
}

// stepFailed reschedules the step after a retryable error and fails the
// instance otherwise or once attempts run out.
func (p *AutomationProcessor) stepFailed(ctx context.Context, instance store.WorkflowInstance, cause error) (store.WorkflowInstance, error) {
	attempts := instance.Attempts + 1
	msg := cause.Error()

	if enginerrors.Retryable(cause) && attempts < p.opts.MaxStepAttempts {
		resumeAt := p.clock.Now().Add(p.opts.RetryDelay * time.Duration(attempts))
		next, err := p.advance(ctx, instance, store.AdvanceWorkflowParams{
			StepIndex: instance.StepIndex,
			Status:    store.WorkflowStatusPending,
			ResumeAt:  &resumeAt,
			Attempts:  attempts,
			LastError: &msg,
		})
		if err != nil {
			return instance, err
		}
		p.logger.InfoWithError(observability.WithFields(ctx,
			observability.Field{Key: "attempts", Value: attempts},
			observability.Field{Key: "resume_at", Value: resumeAt},
		), "workflow step failed, retry scheduled", cause)
		return next, nil
	}

	p.logger.Error(observability.WithFields(ctx, observability.Field{Key: "attempts", Value: attempts}),
		"workflow step failed", cause)
	instance.Attempts = attempts
	return p.finish(ctx, instance, store.WorkflowStatusFailed, msg)
}

func (p *AutomationProcessor) stripe(customerID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(customerID))
	return &p.stripes[h.Sum32()%lockStripes]
}

func (p *AutomationProcessor) optedOut(customerID string) bool {
	_, ok := p.revoked.Load(customerID)
	return ok
}
