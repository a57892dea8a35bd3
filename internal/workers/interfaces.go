package workers

import (
	"context"

	"campaign-engine/internal/clients/kafka"
	"campaign-engine/internal/events"

	kafkago "github.com/segmentio/kafka-go"
)

// EventProcessor defines the interface for processing events from Kafka.
// Implementations should be idempotent as events may be redelivered on failure.
type EventProcessor interface {
	// Process handles a single decoded event. A returned error is retried
	// with backoff; once retries are exhausted the message is dead-lettered.
	Process(ctx context.Context, event events.Event) error

	// Name returns the processor name for logging and metrics.
	Name() string
}

// EventConsumer defines the interface for consuming events from Kafka
// and distributing them to the sharded workers.
type EventConsumer interface {
	// Start begins consuming events from Kafka and processing them.
	// Blocks until Stop is called or ctx is cancelled.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the consumer, draining in-flight events.
	Stop()
}

// MessageReader is the part of *kafkago.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// DeadLetterWriter receives messages that could not be processed.
type DeadLetterWriter interface {
	Publish(ctx context.Context, m kafka.Message) error
}
