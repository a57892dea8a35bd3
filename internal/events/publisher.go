package events

import (
	"context"
	"encoding/json"
	"fmt"

	"campaign-engine/internal/clients/kafka"
	"campaign-engine/internal/observability"
)

// MessageWriter is the transport the publisher writes to.
type MessageWriter interface {
	Publish(ctx context.Context, m kafka.Message) error
	PublishBatch(ctx context.Context, msgs []kafka.Message) error
}

// Publisher handles publishing domain events to Kafka
type Publisher struct {
	writer MessageWriter
	logger *observability.Logger
}

// NewPublisher creates a new event publisher
func NewPublisher(writer MessageWriter, logger *observability.Logger) *Publisher {
	return &Publisher{
		writer: writer,
		logger: logger,
	}
}

// Encode serializes an event into its wire message.
func Encode(e Event) (kafka.Message, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event: %w", err)
	}
	m := kafka.Message{
		ID:      e.ID,
		Key:     e.PartitionKey(),
		Type:    e.Type,
		Payload: payload,
	}
	if e.CustomerID != "" {
		m.Headers = map[string]string{"customer_id": e.CustomerID}
	}
	return m, nil
}

// Decode parses a wire payload into an event.
func Decode(payload []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(payload, &e); err != nil {
		return Event{}, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if err := e.Validate(); err != nil {
		return Event{}, err
	}
	return e, nil
}

// Publish publishes a single event
func (p *Publisher) Publish(ctx context.Context, e Event) error {
	m, err := Encode(e)
	if err != nil {
		p.logger.Error(ctx, "failed to encode event", err)
		return err
	}
	return p.writer.Publish(ctx, m)
}

// PublishBatch publishes events in a single write
func (p *Publisher) PublishBatch(ctx context.Context, evs []Event) error {
	msgs := make([]kafka.Message, 0, len(evs))
	for _, e := range evs {
		m, err := Encode(e)
		if err != nil {
			p.logger.Error(ctx, fmt.Sprintf("failed to encode event %s", e.ID), err)
			return err
		}
		msgs = append(msgs, m)
	}
	return p.writer.PublishBatch(ctx, msgs)
}
