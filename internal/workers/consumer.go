package workers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"campaign-engine/internal/clients/kafka"
	"campaign-engine/internal/enginerrors"
	"campaign-engine/internal/events"
	"campaign-engine/internal/observability"

	"github.com/cenkalti/backoff/v5"
	kafkago "github.com/segmentio/kafka-go"
)

// ConsumerConfig holds configuration for the Kafka event consumer.
type ConsumerConfig struct {
	// Brokers is the list of Kafka broker addresses.
	Brokers []string

	// ConsumerGroup is the Kafka consumer group ID.
	ConsumerGroup string

	// Topic is the Kafka topic to consume from.
	Topic string

	// NumWorkers is the number of shards. Events with the same partition
	// key are always handled by the same shard.
	NumWorkers int

	// QueueSize is the buffer size of each shard.
	QueueSize int

	// DrainTimeout is the maximum time to wait for in-flight events during shutdown.
	DrainTimeout time.Duration

	// MaxAttempts bounds processing attempts before the message goes to the
	// dead-letter topic.
	MaxAttempts int

	InitialBackoff time.Duration
	MaxBackoff     time.Duration

	// DeadLetterAttempts bounds publishes to the dead-letter topic. A message
	// whose dead-letter publish keeps failing stays uncommitted.
	DeadLetterAttempts int
}

// DefaultConsumerConfig returns sensible defaults for a consumer.
func DefaultConsumerConfig(brokers []string, consumerGroup, topic string) ConsumerConfig {
	return ConsumerConfig{
		Brokers:        brokers,
		ConsumerGroup:  consumerGroup,
		Topic:          topic,
		NumWorkers:     10,
		QueueSize:      100,
		DrainTimeout:   30 * time.Second,
		MaxAttempts:    5,
		InitialBackoff: 200 * time.Millisecond,
		MaxBackoff:     5 * time.Second,

		DeadLetterAttempts: 3,
	}
}

func (c ConsumerConfig) withDefaults() ConsumerConfig {
	d := DefaultConsumerConfig(c.Brokers, c.ConsumerGroup, c.Topic)
	if c.NumWorkers <= 0 {
		c.NumWorkers = d.NumWorkers
	}
	if c.QueueSize <= 0 {
		c.QueueSize = d.QueueSize
	}
	if c.DrainTimeout <= 0 {
		c.DrainTimeout = d.DrainTimeout
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = d.MaxAttempts
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = d.InitialBackoff
	}
	if c.DeadLetterAttempts <= 0 {
		c.DeadLetterAttempts = d.DeadLetterAttempts
	}
	if c.MaxBackoff < c.InitialBackoff {
		c.MaxBackoff = c.InitialBackoff
	}
	return c
}

// consumer implements the EventConsumer interface.
type consumer struct {
	config    ConsumerConfig
	reader    MessageReader
	dlq       DeadLetterWriter
	processor EventProcessor
	logger    *observability.Logger

	pool    *shardedPool
	offsets *offsetTracker

	// Lifecycle management
	mu          sync.Mutex
	started     bool
	cancelFetch context.CancelFunc // cancels the fetch context, guarded by mu
	doneCh      chan struct{}      // closed when Start() returns
	stopping    atomic.Bool
	stopOnce    sync.Once
}

var errAlreadyStarted = errors.New("consumer already started")

// NewConsumer creates a new Kafka event consumer. dlq may be nil, in which
// case exhausted messages are logged and skipped.
func NewConsumer(
	config ConsumerConfig,
	processor EventProcessor,
	dlq DeadLetterWriter,
	logger *observability.Logger,
) EventConsumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        config.Brokers,
		Topic:          config.Topic,
		GroupID:        config.ConsumerGroup,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		StartOffset:    kafkago.FirstOffset,
		CommitInterval: 0, // Manual commit
	})
	return newConsumer(config, reader, processor, dlq, logger)
}

func newConsumer(
	config ConsumerConfig,
	reader MessageReader,
	processor EventProcessor,
	dlq DeadLetterWriter,
	logger *observability.Logger,
) *consumer {
	config = config.withDefaults()

	c := &consumer{
		config:    config,
		reader:    reader,
		dlq:       dlq,
		processor: processor,
		logger:    logger,
		offsets:   newOffsetTracker(),
		doneCh:    make(chan struct{}),
	}
	c.pool = newShardedPool(config.NumWorkers, config.QueueSize, c.handle)

	ctx := observability.WithFields(context.Background(),
		observability.Field{Key: "processor", Value: processor.Name()},
		observability.Field{Key: "consumer_group", Value: config.ConsumerGroup},
		observability.Field{Key: "topic", Value: config.Topic},
		observability.Field{Key: "num_workers", Value: config.NumWorkers},
	)
	logger.Info(ctx, fmt.Sprintf("Initialized consumer for %s processor", processor.Name()))

	return c
}

// Start begins consuming events and blocks until Stop is called or ctx
// is cancelled. A consumer stopped before Start returns immediately.
func (c *consumer) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return errAlreadyStarted
	}
	if c.stopping.Load() {
		c.mu.Unlock()
		return nil
	}
	c.started = true
	fetchCtx, cancel := context.WithCancel(context.Background())
	c.cancelFetch = cancel
	c.mu.Unlock()

	defer close(c.doneCh)
	fetchCtx = observability.WithFields(fetchCtx,
		observability.Field{Key: "consumer_group", Value: c.config.ConsumerGroup},
		observability.Field{Key: "topic", Value: c.config.Topic},
		observability.Field{Key: "processor", Value: c.processor.Name()},
	)

	go func() {
		select {
		case <-ctx.Done():
			c.stopping.Store(true)
			cancel()
		case <-c.doneCh:
		}
	}()

	c.logger.Info(fetchCtx, fmt.Sprintf("Starting consumer for %s with %d workers",
		c.processor.Name(), c.config.NumWorkers))

	// in-flight events finish even after the fetch context is cancelled
	c.pool.start(context.WithoutCancel(fetchCtx))

	c.fetchLoop(fetchCtx)

	c.pool.close()
	if c.pool.wait(c.config.DrainTimeout) {
		c.logger.Info(fetchCtx, "All workers finished processing")
	} else {
		c.logger.Warn(fetchCtx, "Drain timeout - some events may not have completed")
	}

	if err := c.reader.Close(); err != nil {
		c.logger.Error(fetchCtx, "Failed to close Kafka reader", err)
	}

	c.logger.Info(fetchCtx, fmt.Sprintf("Consumer stopped for %s", c.processor.Name()))
	return nil
}

// fetchLoop fetches messages from Kafka until context is cancelled.
func (c *consumer) fetchLoop(ctx context.Context) {
	for {
		if c.stopping.Load() {
			return
		}

		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if c.stopping.Load() || ctx.Err() != nil {
				return // Clean shutdown
			}
			c.logger.Error(ctx, "Failed to fetch message from Kafka", err)
			select {
			case <-time.After(time.Second):
			case <-ctx.Done():
				return
			}
			continue
		}

		c.offsets.track(msg)
		if err := c.pool.submit(ctx, msg); err != nil {
			return
		}
	}
}

// handle processes one message on its shard: decode, process with retries,
// dead-letter on exhaustion, then commit.
func (c *consumer) handle(ctx context.Context, shard int, msg kafkago.Message) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "worker_id", Value: shard},
		observability.Field{Key: "partition", Value: msg.Partition},
		observability.Field{Key: "offset", Value: msg.Offset},
	)

	event, err := events.Decode(msg.Value)
	if err != nil {
		c.logger.Error(ctx, "Failed to decode event", err)
		if !c.deadLetter(ctx, msg, err) {
			return
		}
		c.commit(ctx, msg)
		return
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "event_id", Value: event.ID},
		observability.Field{Key: "event_type", Value: event.Type},
	)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.config.InitialBackoff
	b.MaxInterval = c.config.MaxBackoff

	attempts := 0
	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		attempts++
		if c.stopping.Load() && attempts > 1 {
			return struct{}{}, backoff.Permanent(errStopping)
		}
		err := c.processor.Process(ctx, event)
		if enginerrors.KindOf(err) == enginerrors.KindValidation {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(uint(c.config.MaxAttempts)))

	switch {
	case err == nil:
		observability.EventsConsumed.WithLabelValues(c.processor.Name(), "processed").Inc()
	case errors.Is(err, errStopping):
		// left uncommitted, redelivered after restart
		observability.EventsConsumed.WithLabelValues(c.processor.Name(), "redelivered").Inc()
		return
	default:
		c.logger.Error(ctx, fmt.Sprintf("Failed to process event after %d attempts", attempts), err)
		if !c.deadLetter(ctx, msg, err) {
			return
		}
	}
	c.commit(ctx, msg)
}

var errStopping = errors.New("consumer stopping")

// deadLetter forwards msg to the DLQ. It reports whether the message may be
// committed.
func (c *consumer) deadLetter(ctx context.Context, msg kafkago.Message, cause error) bool {
	observability.EventsConsumed.WithLabelValues(c.processor.Name(), "dead_lettered").Inc()
	if c.dlq == nil {
		c.logger.Warn(ctx, "No dead-letter topic configured, dropping message")
		return true
	}

	m := kafka.Message{
		Key:     string(msg.Key),
		Payload: msg.Value,
		Headers: map[string]string{
			"dlq_reason":       cause.Error(),
			"dlq_processor":    c.processor.Name(),
			"source_topic":     msg.Topic,
			"source_partition": strconv.Itoa(msg.Partition),
			"source_offset":    strconv.FormatInt(msg.Offset, 10),
		},
	}
	for _, h := range msg.Headers {
		switch h.Key {
		case "event_id":
			m.ID = string(h.Value)
		case "event_type":
			m.Type = string(h.Value)
		}
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.config.InitialBackoff
	b.MaxInterval = c.config.MaxBackoff

	attempts := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempts++
		if c.stopping.Load() && attempts > 1 {
			return struct{}{}, backoff.Permanent(errStopping)
		}
		return struct{}{}, c.dlq.Publish(ctx, m)
	}, backoff.WithBackOff(b), backoff.WithMaxTries(uint(c.config.DeadLetterAttempts)))
	if err != nil {
		c.logger.Error(ctx, fmt.Sprintf("Failed to publish to dead-letter topic after %d attempts", attempts), err)
		return false
	}
	c.logger.Warn(ctx, "Event moved to dead-letter topic")
	return true
}

func (c *consumer) commit(ctx context.Context, msg kafkago.Message) {
	upTo, ok := c.offsets.finish(msg)
	if !ok {
		return
	}
	if err := c.reader.CommitMessages(context.WithoutCancel(ctx), upTo); err != nil {
		c.logger.Error(ctx, "Failed to commit offset", err)
	}
}

// Stop gracefully shuts down the consumer.
// It signals the fetch loop to stop, waits for in-flight events to complete,
// and returns only after full shutdown.
func (c *consumer) Stop() {
	c.stopOnce.Do(func() {
		logCtx := observability.WithFields(context.Background(),
			observability.Field{Key: "processor", Value: c.processor.Name()},
		)
		c.logger.Info(logCtx, fmt.Sprintf("Stopping consumer for %s", c.processor.Name()))

		c.mu.Lock()
		c.stopping.Store(true)
		started := c.started
		if c.cancelFetch != nil {
			c.cancelFetch()
		}
		c.mu.Unlock()

		if started {
			<-c.doneCh
		}
	})
}
