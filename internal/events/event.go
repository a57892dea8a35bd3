package events

import (
	"fmt"
	"strings"
	"time"

	"campaign-engine/internal/criteria"

	"github.com/google/uuid"
)

// Event types
const (
	// Campaign events
	TypeCampaignLaunched  = "campaign.launched"
	TypeCampaignCompleted = "campaign.completed"
	TypeCampaignFailed    = "campaign.failed"

	// Segment events
	TypeSegmentRefreshed = "segment.refreshed"

	// Customer events
	TypeCustomerUpdated        = "customer.updated"
	TypeCustomerConsentRevoked = "customer.consent.revoked"

	// Attribution events
	TypeConversionTracked = "conversion.tracked"

	// Delivery and engagement events, one family per channel
	TypeEmailSent      = "email.sent"
	TypeEmailDelivered = "email.delivered"
	TypeEmailOpened    = "email.opened"
	TypeEmailClicked   = "email.clicked"
	TypeEmailBounced   = "email.bounced"
)

// Wildcard matches every event type in trigger rules.
const Wildcard = "*"

// seed namespace for deterministic idempotency ids
var idNamespace = uuid.MustParse("6f1c6c1e-3b7a-4e43-9d55-2f7e0b4f8a10")

// Event is one immutable, append-only fact on the stream. ID is globally
// unique and is the dedup key for every consumer.
type Event struct {
	ID         string                    `json:"id"`
	Type       string                    `json:"type"`
	Timestamp  time.Time                 `json:"timestamp"`
	CustomerID string                    `json:"customer_id,omitempty"`
	CampaignID *string                   `json:"campaign_id,omitempty"`
	Properties map[string]criteria.Value `json:"properties,omitempty"`
	Metadata   map[string]string         `json:"metadata,omitempty"`
}

// IdempotencyID derives a stable event id from its natural key, so that
// re-publishing the same fact yields the same id.
func IdempotencyID(parts ...string) string {
	return uuid.NewSHA1(idNamespace, []byte(strings.Join(parts, ":"))).String()
}

// ChannelEventType returns the event type for a channel and action, e.g.
// ("sms", "sent") yields "sms.sent".
func ChannelEventType(channel, action string) string {
	return fmt.Sprintf("%s.%s", channel, action)
}

// Attributes flattens the event for predicate evaluation. Properties are
// exposed as-is and the envelope under event.* pseudo fields.
func (e Event) Attributes() criteria.Attributes {
	attrs := make(criteria.Attributes, len(e.Properties)+5)
	for k, v := range e.Properties {
		attrs[k] = v
	}
	attrs["event.type"] = criteria.String(e.Type)
	attrs["event.id"] = criteria.String(e.ID)
	attrs["event.timestamp"] = criteria.Time(e.Timestamp)
	if e.CustomerID != "" {
		attrs["event.customer_id"] = criteria.String(e.CustomerID)
		attrs["customer_id"] = criteria.String(e.CustomerID)
	}
	if e.CampaignID != nil {
		attrs["event.campaign_id"] = criteria.String(*e.CampaignID)
		attrs["campaign_id"] = criteria.String(*e.CampaignID)
	}
	return attrs
}

// PartitionKey keeps events of one customer on one partition; campaign
// lifecycle events partition by campaign.
func (e Event) PartitionKey() string {
	if e.CustomerID != "" {
		return e.CustomerID
	}
	if e.CampaignID != nil {
		return *e.CampaignID
	}
	return e.ID
}

// Validate checks the envelope fields every consumer relies on.
func (e Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("event id is required")
	}
	if e.Type == "" {
		return fmt.Errorf("event type is required")
	}
	if e.Timestamp.IsZero() {
		return fmt.Errorf("event timestamp is required")
	}
	return nil
}

// Channel returns the channel prefix of a delivery event type ("email" for
// "email.sent") or "" for other families.
func Channel(eventType string) string {
	prefix, _, ok := strings.Cut(eventType, ".")
	if !ok {
		return ""
	}
	switch prefix {
	case "email", "sms", "push", "social":
		return prefix
	}
	return ""
}

// Action returns the suffix of a delivery event type ("sent" for "email.sent").
func Action(eventType string) string {
	if Channel(eventType) == "" {
		return ""
	}
	_, action, _ := strings.Cut(eventType, ".")
	return action
}
