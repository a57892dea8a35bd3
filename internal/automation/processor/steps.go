package processor

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"campaign-engine/internal/channels"
	"campaign-engine/internal/clients/profile"
	"campaign-engine/internal/content"
	"campaign-engine/internal/criteria"
	"campaign-engine/internal/enginerrors"
	"campaign-engine/internal/events"
	"campaign-engine/internal/jobs"
	"campaign-engine/internal/observability"
	"campaign-engine/internal/store"
)

// StepKey identifies one step of one instance. It is the idempotency key
// handed to channel adapters and the seed of webhook task ids.
func StepKey(instance store.WorkflowInstance, step int) string {
	return instance.Key() + ":" + strconv.Itoa(step)
}

func (p *AutomationProcessor) runStep(ctx context.Context, rule store.TriggerRule, instance store.WorkflowInstance, step store.WorkflowStep) error {
	switch step.Type {
	case store.StepSendContent:
		return p.sendContent(ctx, rule, instance, step)
	case store.StepUpdateSegment:
		return p.updateSegment(ctx, rule, instance, step)
	case store.StepCallWebhook:
		return p.callWebhook(ctx, instance, step)
	default:
		return enginerrors.Validation(enginerrors.CodeInvalidInput, fmt.Sprintf("unknown step type %q", step.Type))
	}
}

func (p *AutomationProcessor) sendContent(ctx context.Context, rule store.TriggerRule, instance store.WorkflowInstance, step store.WorkflowStep) error {
	c, err := p.contents.Get(ctx, *step.ContentID)
	if err != nil {
		if enginerrors.KindOf(err) == enginerrors.KindInternal {
			return enginerrors.DataSourceUnavailable("failed to load content", err)
		}
		return err
	}
	if c.Status != store.ContentStatusApproved {
		return enginerrors.Validation(enginerrors.CodeContentNotApproved, "content is not approved")
	}

	customer, err := p.profiles.GetCustomer(ctx, instance.CustomerID)
	if err != nil {
		if errors.Is(err, profile.ErrCustomerNotFound) {
			p.logger.Warn(ctx, "customer not found, send skipped")
			return nil
		}
		return enginerrors.DataSourceUnavailable("customer profile unavailable", err)
	}
	if customer.ConsentRevoked || p.optedOut(customer.ID) {
		p.logger.Info(ctx, "customer revoked consent, send skipped")
		return nil
	}

	channel := step.Channel
	if channel == "" {
		channel = c.Channel
	}
	address := customer.Address(channel)
	if address == "" {
		p.logger.Info(ctx, "customer has no address for channel, send skipped")
		return nil
	}

	v, ok := content.SelectVariant(c.Variants.V, rule.ID.String(), customer.ID)
	if !ok {
		return enginerrors.Validation(enginerrors.CodeInvalidInput, "content has no selectable variant")
	}
	rendered, err := p.renderer.Render(ctx, content.CacheKey(c, v.ID), c.TemplateID, map[string]string{
		"variant_id": v.ID,
		"subject":    v.Subject,
		"body":       v.Body,
	})
	if err != nil {
		return enginerrors.TransientChannel(enginerrors.CodeChannelUnavailable, "render failed", err)
	}

	attrs := personalization(customer.Attributes, instance.Payload.V.Properties)
	msg := channels.Message{
		Subject: content.Personalize(rendered.Subject, attrs),
		Body:    content.Personalize(rendered.Body, attrs),
	}

	adapter, err := p.channels.Get(channel)
	if err != nil {
		return err
	}
	key := StepKey(instance, instance.StepIndex)
	outcome, err := adapter.Send(ctx, channels.Recipient{CustomerID: customer.ID, Address: address}, msg, key)
	if err != nil {
		if enginerrors.KindOf(err) == enginerrors.KindInternal {
			return enginerrors.TransientChannel(enginerrors.CodeChannelUnavailable, "send failed", err)
		}
		return err
	}

	switch outcome.Status {
	case channels.StatusAccepted:
		p.emitSent(ctx, rule, instance, channel, v.ID, key)
		return nil
	case channels.StatusSkipped:
		p.logger.Info(observability.WithFields(ctx,
			observability.Field{Key: "code", Value: outcome.Code}), "provider skipped send")
		return nil
	default:
		return fmt.Errorf("send rejected (%s): %s", outcome.Code, outcome.Reason)
	}
}

// personalization exposes customer attributes as-is and the triggering
// event's properties under event.*.
func personalization(customer criteria.Attributes, props map[string]criteria.Value) criteria.Attributes {
	out := make(criteria.Attributes, len(customer)+len(props))
	for k, v := range props {
		out["event."+k] = v
	}
	for k, v := range customer {
		out[k] = v
	}
	return out
}

func (p *AutomationProcessor) emitSent(ctx context.Context, rule store.TriggerRule, instance store.WorkflowInstance, channel, variantID, key string) {
	if p.publisher == nil {
		return
	}
	err := p.publisher.Publish(ctx, events.Event{
		ID:         events.IdempotencyID(key, "sent"),
		Type:       events.ChannelEventType(channel, "sent"),
		Timestamp:  p.clock.Now(),
		CustomerID: instance.CustomerID,
		Properties: map[string]criteria.Value{
			"rule_id":    criteria.String(rule.ID.String()),
			"variant_id": criteria.String(variantID),
		},
		Metadata: map[string]string{
			"workflow_instance_id": instance.ID.String(),
		},
	})
	if err != nil {
		p.logger.Error(ctx, "failed to publish sent event", err)
	}
}

func (p *AutomationProcessor) updateSegment(ctx context.Context, rule store.TriggerRule, instance store.WorkflowInstance, step store.WorkflowStep) error {
	var err error
	switch step.SegmentAction {
	case store.SegmentActionAdd:
		err = p.segments.AddMember(ctx, *step.SegmentID, instance.CustomerID)
	case store.SegmentActionRemove:
		err = p.segments.RemoveMember(ctx, *step.SegmentID, instance.CustomerID)
	case store.SegmentActionSuppress:
		p.revoked.Store(instance.CustomerID, struct{}{})
		err = p.segments.Suppress(ctx, instance.CustomerID, "workflow:"+rule.ID.String())
	default:
		return enginerrors.Validation(enginerrors.CodeInvalidInput, fmt.Sprintf("unknown segment_action %q", step.SegmentAction))
	}
	if err != nil && enginerrors.KindOf(err) == enginerrors.KindInternal {
		return enginerrors.DataSourceUnavailable("failed to update segment membership", err)
	}
	return err
}

func (p *AutomationProcessor) callWebhook(ctx context.Context, instance store.WorkflowInstance, step store.WorkflowStep) error {
	err := p.webhooks.EnqueueWorkflowWebhook(ctx, jobs.WorkflowWebhookPayload{
		TaskID:     events.IdempotencyID(StepKey(instance, instance.StepIndex), "webhook"),
		InstanceID: instance.ID,
		RuleID:     instance.RuleID,
		CustomerID: instance.CustomerID,
		EventID:    instance.EventID,
		Step:       instance.StepIndex,
		URL:        step.WebhookURL,
		Event:      instance.Payload.V,
		EnqueuedAt: p.clock.Now(),
	})
	if err != nil {
		return enginerrors.DataSourceUnavailable("failed to enqueue webhook", err)
	}
	return nil
}
