package bootstrap

import (
	"context"
	"fmt"

	automationProcessor "campaign-engine/internal/automation/processor"
	campaignProcessor "campaign-engine/internal/campaign/processor"
	"campaign-engine/internal/channels"
	kafkaClient "campaign-engine/internal/clients/kafka"
	"campaign-engine/internal/clients/profile"
	redisClient "campaign-engine/internal/clients/redis"
	"campaign-engine/internal/clients/renderer"
	"campaign-engine/internal/clock"
	"campaign-engine/internal/config"
	"campaign-engine/internal/content"
	"campaign-engine/internal/events"
	ingestProcessor "campaign-engine/internal/ingest/processor"
	"campaign-engine/internal/jobs"
	"campaign-engine/internal/jobs/scheduler"
	scheduledJobs "campaign-engine/internal/jobs/scheduler/jobs"
	"campaign-engine/internal/observability"
	segmentProcessor "campaign-engine/internal/segments/processor"
	"campaign-engine/internal/segments/snapshot"
	"campaign-engine/internal/store"
	"campaign-engine/internal/workers"

	"github.com/hibiken/asynq"
)

const renderCacheSize = 4096

// Dependencies holds all initialized engine dependencies
type Dependencies struct {
	// Core
	Store  *store.Store
	Logger *observability.Logger
	Clock  clock.Clock

	// Processors
	Content    *content.Processor
	Segments   *segmentProcessor.SegmentProcessor
	Campaigns  *campaignProcessor.CampaignProcessor
	Automation *automationProcessor.AutomationProcessor
	Ingest     *ingestProcessor.IngestProcessor

	// Background work
	IngestConsumer  workers.EventConsumer
	TriggerConsumer workers.EventConsumer
	Scheduler       *scheduler.Scheduler

	// Clients (for cleanup)
	KafkaProducer *kafkaClient.Producer
	DLQProducer   *kafkaClient.Producer
	Redis         *redisClient.Client
	JobClient     *jobs.Client
}

// Initialize sets up all engine dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
		Clock:  clock.System(),
	}

	// Initialize database store
	dataStore, err := store.New(cfg.Database.ConnectionString(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	deps.Store = &dataStore

	// Initialize Redis; nil when disabled
	deps.Redis, err = redisClient.NewClient(cfg.Redis, logger)
	if err != nil {
		deps.Cleanup()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	// Initialize Kafka clients
	brokerList := cfg.Kafka.BrokerList()
	deps.KafkaProducer = kafkaClient.NewProducer(kafkaClient.ProducerConfig{
		Brokers: brokerList,
		Topic:   cfg.Kafka.Topic,
	}, logger)
	deps.DLQProducer = kafkaClient.NewProducer(kafkaClient.ProducerConfig{
		Brokers: brokerList,
		Topic:   cfg.Kafka.DLQTopic,
	}, logger)
	publisher := events.NewPublisher(deps.KafkaProducer, logger)

	// Initialize collaborator clients
	profiles := profile.NewClient(cfg.Collaborators.ProfileURL, cfg.Collaborators.Timeout, logger)
	renderCache, err := renderer.NewCache(
		renderer.NewClient(cfg.Collaborators.RendererURL, cfg.Collaborators.Timeout, logger),
		renderCacheSize,
	)
	if err != nil {
		deps.Cleanup()
		return nil, fmt.Errorf("failed to create render cache: %w", err)
	}

	registry, err := newChannelRegistry(cfg, logger)
	if err != nil {
		deps.Cleanup()
		return nil, err
	}

	// Job client for call_webhook steps
	deps.JobClient = jobs.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, logger)

	// Initialize processors
	contentProc := content.New(deps.Store, logger)
	deps.Content = &contentProc

	deps.Segments = segmentProcessor.New(
		deps.Store,
		profiles,
		snapshot.NewRegistry(),
		publisher,
		deps.Clock,
		logger,
		segmentProcessor.Options{
			Workers:  cfg.Segments.RefreshWorkers,
			PageSize: cfg.Segments.PageSize,
		},
	)

	deps.Campaigns = campaignProcessor.New(
		deps.Store,
		deps.Content,
		deps.Segments,
		profiles,
		renderCache,
		registry,
		publisher,
		deps.Clock,
		logger,
		campaignProcessor.Options{
			BatchSize:             cfg.Dispatch.BatchSize,
			MaxAttempts:           cfg.Dispatch.MaxAttempts,
			InitialBackoff:        cfg.Dispatch.InitialBackoff,
			MaxBackoff:            cfg.Dispatch.MaxBackoff,
			FailureRatioThreshold: cfg.Dispatch.FailureRatioThreshold,
			LeaseDuration:         cfg.Dispatch.LeaseDuration,
			DeliveryTimeout:       cfg.Dispatch.DeliveryTimeout,
			BatchRetryBudget:      cfg.Dispatch.BatchRetryBudget,
		},
	)

	deps.Segments.OnDelete(deps.Campaigns)

	deps.Automation = automationProcessor.New(
		deps.Store,
		deps.Content,
		profiles,
		renderCache,
		registry,
		deps.Segments,
		deps.Campaigns,
		deps.JobClient,
		publisher,
		deps.Clock,
		logger,
		automationProcessor.Options{},
	)

	// Redis backs the recently-seen window when configured
	var seen ingestProcessor.SeenSet
	if deps.Redis != nil {
		seen = ingestProcessor.NewRedisSeenSet(deps.Redis, cfg.Ingest.DedupWindow)
	} else {
		seen = ingestProcessor.NewMemorySeenSet(cfg.Ingest.DedupCapacity, cfg.Ingest.DedupWindow)
	}
	deps.Ingest = ingestProcessor.New(deps.Store, seen, logger)

	// Initialize stream consumers, one consumer group per processor
	deps.IngestConsumer = workers.NewConsumer(
		consumerConfig(cfg, cfg.Kafka.IngestGroup, cfg.WorkerPool.IngestWorkers),
		deps.Ingest,
		deps.DLQProducer,
		logger,
	)
	deps.TriggerConsumer = workers.NewConsumer(
		consumerConfig(cfg, cfg.Kafka.TriggerGroup, cfg.WorkerPool.TriggerWorkers),
		deps.Automation,
		deps.DLQProducer,
		logger,
	)

	// Initialize scheduled jobs
	deps.Scheduler = scheduler.New(logger)
	for _, job := range []scheduler.Job{
		scheduledJobs.NewCampaignStartJob(deps.Campaigns, logger, cfg.Scheduler.CampaignStartInterval),
		scheduledJobs.NewCampaignDispatchJob(deps.Campaigns, logger, cfg.Scheduler.CampaignDispatchInterval),
		scheduledJobs.NewSegmentRefreshJob(deps.Segments, logger, cfg.Scheduler.SegmentRefreshInterval),
		scheduledJobs.NewWorkflowResumeJob(deps.Automation, deps.Clock, logger, cfg.Scheduler.WorkflowResumeInterval),
	} {
		if err := deps.Scheduler.Register(job); err != nil {
			return nil, err
		}
	}

	return deps, nil
}

func consumerConfig(cfg *config.Config, group string, numWorkers int) workers.ConsumerConfig {
	c := workers.DefaultConsumerConfig(cfg.Kafka.BrokerList(), group, cfg.Kafka.Topic)
	c.NumWorkers = numWorkers
	c.MaxAttempts = cfg.Kafka.MaxAttempts
	return c
}

// newChannelRegistry registers email unconditionally and the other channels
// when their credentials are configured.
func newChannelRegistry(cfg *config.Config, logger *observability.Logger) (*channels.Registry, error) {
	email, err := channels.NewResendAdapter(cfg.Channels.ResendAPIKey, cfg.Channels.DefaultEmailSender, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create email adapter: %w", err)
	}
	adapters := []channels.Adapter{email}

	if cfg.Channels.TwilioAccountSID != "" {
		adapters = append(adapters, channels.NewTwilioAdapter(
			cfg.Channels.TwilioAccountSID,
			cfg.Channels.TwilioAuthToken,
			cfg.Channels.TwilioFromNumber,
			logger,
		))
	}
	if cfg.Channels.PushWebhookURL != "" {
		adapters = append(adapters, channels.NewWebhookAdapter(channels.Push,
			cfg.Channels.PushWebhookURL, cfg.Channels.WebhookSecret, cfg.Collaborators.Timeout, logger))
	}
	if cfg.Channels.SocialWebhookURL != "" {
		adapters = append(adapters, channels.NewWebhookAdapter(channels.Social,
			cfg.Channels.SocialWebhookURL, cfg.Channels.WebhookSecret, cfg.Collaborators.Timeout, logger))
	}

	registry := channels.NewRegistry(adapters...)
	logger.Info(observability.WithFields(context.Background(),
		observability.Field{Key: "channels", Value: registry.Channels()},
	), "channel adapters registered")
	return registry, nil
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup() {
	if d.KafkaProducer != nil {
		d.KafkaProducer.Close()
	}
	if d.DLQProducer != nil {
		d.DLQProducer.Close()
	}
	if d.JobClient != nil {
		d.JobClient.Close()
	}
	if d.Redis != nil {
		d.Redis.Close()
	}
	if d.Store != nil {
		d.Store.Close()
	}
}
