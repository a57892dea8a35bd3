package kafka

import (
	"context"
	"fmt"

	"campaign-engine/internal/observability"

	"github.com/segmentio/kafka-go"
)

// Producer handles publishing events to Kafka
type Producer struct {
	writer *kafka.Writer
	logger *observability.Logger
}

// ProducerConfig contains configuration for Kafka producer
type ProducerConfig struct {
	Brokers []string
	Topic   string
}

// NewProducer creates a new Kafka producer
func NewProducer(config ProducerConfig, logger *observability.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:  kafka.TCP(config.Brokers...),
		Topic: config.Topic,
		// Same key always lands on the same partition
		Balancer:     &kafka.Hash{},
		Async:        false,
		Compression:  kafka.Snappy,
		BatchSize:    100,
		RequiredAcks: kafka.RequireAll,
	}

	return &Producer{
		writer: writer,
		logger: logger,
	}
}

// Message is a serialized event ready for the wire.
type Message struct {
	ID      string
	Key     string
	Type    string
	Payload []byte
	Headers map[string]string
}

func toKafkaMessage(m Message) kafka.Message {
	headers := []kafka.Header{
		{Key: "event_type", Value: []byte(m.Type)},
		{Key: "event_id", Value: []byte(m.ID)},
	}
	for k, v := range m.Headers {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	return kafka.Message{
		Key:     []byte(m.Key),
		Value:   m.Payload,
		Headers: headers,
	}
}

// Publish writes one message to Kafka
func (p *Producer) Publish(ctx context.Context, m Message) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "event_type", Value: m.Type},
		observability.Field{Key: "event_id", Value: m.ID},
	)

	err := p.writer.WriteMessages(ctx, toKafkaMessage(m))
	if err != nil {
		p.logger.Error(ctx, "failed to write message to kafka", err)
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	p.logger.Debug(ctx, fmt.Sprintf("published event %s to kafka", m.Type))
	return nil
}

// PublishBatch publishes multiple messages in one write
func (p *Producer) PublishBatch(ctx context.Context, msgs []Message) error {
	if len(msgs) == 0 {
		return nil
	}

	messages := make([]kafka.Message, len(msgs))
	for i, m := range msgs {
		messages[i] = toKafkaMessage(m)
	}

	err := p.writer.WriteMessages(ctx, messages...)
	if err != nil {
		p.logger.Error(ctx, "failed to write messages to kafka", err)
		return fmt.Errorf("failed to write messages to kafka: %w", err)
	}

	p.logger.Info(ctx, fmt.Sprintf("published %d events to kafka", len(msgs)))
	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	return p.writer.Close()
}
