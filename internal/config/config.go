package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

// Config holds all application configuration
type Config struct {
	Database      DatabaseConfig
	Kafka         KafkaConfig
	Redis         RedisConfig
	Dispatch      DispatchConfig
	Segments      SegmentsConfig
	Ingest        IngestConfig
	Scheduler     SchedulerConfig
	Channels      ChannelsConfig
	Collaborators CollaboratorsConfig
	WorkerPool    WorkerPoolConfig
	Server        ServerConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Username string
	Password string
	Name     string
}

// KafkaConfig holds Kafka/event streaming configuration
type KafkaConfig struct {
	Brokers      string
	Topic        string
	DLQTopic     string
	IngestGroup  string
	TriggerGroup string
	MaxAttempts  int
}

// RedisConfig holds the address for the dedup window and the asynq broker.
// An empty Addr makes the ingest dedup window fall back to process memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// DispatchConfig holds campaign dispatch tuning
type DispatchConfig struct {
	BatchSize             int
	MaxAttempts           int
	InitialBackoff        time.Duration
	MaxBackoff            time.Duration
	FailureRatioThreshold float64
	LeaseDuration         time.Duration
	DeliveryTimeout       time.Duration
	BatchRetryBudget      time.Duration
}

// SegmentsConfig holds segment refresh tuning
type SegmentsConfig struct {
	RefreshWorkers int
	PageSize       int
}

// IngestConfig holds event aggregation settings
type IngestConfig struct {
	DedupWindow   time.Duration
	DedupCapacity int
}

// SchedulerConfig holds job intervals
type SchedulerConfig struct {
	CampaignStartInterval    time.Duration
	CampaignDispatchInterval time.Duration
	SegmentRefreshInterval   time.Duration
	WorkflowResumeInterval   time.Duration
}

// ChannelsConfig holds credentials for outbound channel adapters
type ChannelsConfig struct {
	ResendAPIKey       string
	DefaultEmailSender string
	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioFromNumber   string
	PushWebhookURL     string
	SocialWebhookURL   string
	WebhookSecret      string
}

// CollaboratorsConfig holds base URLs of the profile and rendering services
type CollaboratorsConfig struct {
	ProfileURL  string
	RendererURL string
	Timeout     time.Duration
}

// WorkerPoolConfig holds worker pool configuration for event processing
type WorkerPoolConfig struct {
	IngestWorkers  int // Number of workers for metric aggregation
	TriggerWorkers int // Number of workers for trigger rule matching
	WebhookWorkers int // asynq concurrency for call_webhook tasks
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}

	return fromEnv()
}

func fromEnv() (*Config, error) {
	cfg := &Config{}

	// Database configuration
	var err error
	if cfg.Database.Host, err = requireEnv("DB_HOST"); err != nil {
		return nil, err
	}
	if cfg.Database.Username, err = requireEnv("DB_USERNAME"); err != nil {
		return nil, err
	}
	if cfg.Database.Password, err = requireEnv("DB_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.Database.Name, err = requireEnv("DB_NAME"); err != nil {
		return nil, err
	}

	// Kafka configuration
	if cfg.Kafka.Brokers, err = requireEnv("KAFKA_BROKERS"); err != nil {
		return nil, err
	}
	cfg.Kafka.Topic = getEnvWithDefault("KAFKA_TOPIC", "campaign-events")
	cfg.Kafka.DLQTopic = getEnvWithDefault("KAFKA_DLQ_TOPIC", "campaign-events-dlq")
	cfg.Kafka.IngestGroup = getEnvWithDefault("KAFKA_INGEST_GROUP", "campaign-ingest")
	cfg.Kafka.TriggerGroup = getEnvWithDefault("KAFKA_TRIGGER_GROUP", "campaign-triggers")
	if cfg.Kafka.MaxAttempts, err = intEnv("KAFKA_MAX_ATTEMPTS", "5"); err != nil {
		return nil, err
	}

	// Redis configuration
	cfg.Redis.Addr = getEnvWithDefault("REDIS_ADDR", "")
	cfg.Redis.Password = getEnvWithDefault("REDIS_PASSWORD", "")
	if cfg.Redis.DB, err = intEnv("REDIS_DB", "0"); err != nil {
		return nil, err
	}

	// Dispatch configuration
	if cfg.Dispatch.BatchSize, err = intEnv("DISPATCH_BATCH_SIZE", "1000"); err != nil {
		return nil, err
	}
	if cfg.Dispatch.MaxAttempts, err = intEnv("DISPATCH_MAX_ATTEMPTS", "5"); err != nil {
		return nil, err
	}
	if cfg.Dispatch.InitialBackoff, err = durationEnv("DISPATCH_INITIAL_BACKOFF", "200ms"); err != nil {
		return nil, err
	}
	if cfg.Dispatch.MaxBackoff, err = durationEnv("DISPATCH_MAX_BACKOFF", "10s"); err != nil {
		return nil, err
	}
	if cfg.Dispatch.LeaseDuration, err = durationEnv("DISPATCH_LEASE_DURATION", "2m"); err != nil {
		return nil, err
	}
	if cfg.Dispatch.DeliveryTimeout, err = durationEnv("DISPATCH_DELIVERY_TIMEOUT", "30s"); err != nil {
		return nil, err
	}
	if cfg.Dispatch.BatchRetryBudget, err = durationEnv("DISPATCH_BATCH_RETRY_BUDGET", "1m"); err != nil {
		return nil, err
	}
	ratio := getEnvWithDefault("DISPATCH_FAILURE_RATIO", "0.5")
	cfg.Dispatch.FailureRatioThreshold, err = strconv.ParseFloat(ratio, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DISPATCH_FAILURE_RATIO: %w", err)
	}

	// Segment configuration
	if cfg.Segments.RefreshWorkers, err = intEnv("SEGMENT_REFRESH_WORKERS", "8"); err != nil {
		return nil, err
	}
	if cfg.Segments.PageSize, err = intEnv("SEGMENT_PAGE_SIZE", "5000"); err != nil {
		return nil, err
	}

	// Ingest configuration
	if cfg.Ingest.DedupWindow, err = durationEnv("INGEST_DEDUP_WINDOW", "24h"); err != nil {
		return nil, err
	}
	if cfg.Ingest.DedupCapacity, err = intEnv("INGEST_DEDUP_CAPACITY", "100000"); err != nil {
		return nil, err
	}

	// Scheduler configuration
	if cfg.Scheduler.CampaignStartInterval, err = durationEnv("SCHEDULER_CAMPAIGN_START_INTERVAL", "1s"); err != nil {
		return nil, err
	}
	if cfg.Scheduler.CampaignDispatchInterval, err = durationEnv("SCHEDULER_CAMPAIGN_DISPATCH_INTERVAL", "5s"); err != nil {
		return nil, err
	}
	if cfg.Scheduler.SegmentRefreshInterval, err = durationEnv("SCHEDULER_SEGMENT_REFRESH_INTERVAL", "30s"); err != nil {
		return nil, err
	}
	if cfg.Scheduler.WorkflowResumeInterval, err = durationEnv("SCHEDULER_WORKFLOW_RESUME_INTERVAL", "1s"); err != nil {
		return nil, err
	}

	// Channel configuration
	if cfg.Channels.ResendAPIKey, err = requireEnv("RESEND_API_KEY"); err != nil {
		return nil, err
	}
	if cfg.Channels.DefaultEmailSender, err = requireEnv("DEFAULT_EMAIL_SENDER_ADDRESS"); err != nil {
		return nil, err
	}
	cfg.Channels.TwilioAccountSID = getEnvWithDefault("TWILIO_ACCOUNT_SID", "")
	cfg.Channels.TwilioAuthToken = getEnvWithDefault("TWILIO_AUTH_TOKEN", "")
	cfg.Channels.TwilioFromNumber = getEnvWithDefault("TWILIO_FROM_NUMBER", "")
	cfg.Channels.PushWebhookURL = getEnvWithDefault("PUSH_WEBHOOK_URL", "")
	cfg.Channels.SocialWebhookURL = getEnvWithDefault("SOCIAL_WEBHOOK_URL", "")
	cfg.Channels.WebhookSecret = getEnvWithDefault("CHANNEL_WEBHOOK_SECRET", "")

	// Collaborator configuration
	if cfg.Collaborators.ProfileURL, err = requireEnv("PROFILE_SERVICE_URL"); err != nil {
		return nil, err
	}
	if cfg.Collaborators.RendererURL, err = requireEnv("RENDERER_SERVICE_URL"); err != nil {
		return nil, err
	}
	if cfg.Collaborators.Timeout, err = durationEnv("COLLABORATOR_TIMEOUT", "10s"); err != nil {
		return nil, err
	}

	// Worker pool configuration
	if cfg.WorkerPool.IngestWorkers, err = intEnv("INGEST_WORKERS", "10"); err != nil {
		return nil, err
	}
	if cfg.WorkerPool.TriggerWorkers, err = intEnv("TRIGGER_WORKERS", "10"); err != nil {
		return nil, err
	}
	if cfg.WorkerPool.WebhookWorkers, err = intEnv("WEBHOOK_WORKERS", "10"); err != nil {
		return nil, err
	}

	// Server configuration
	serverPort, err := requireEnv("SERVER_PORT")
	if err != nil {
		return nil, err
	}
	cfg.Server.Port, err = strconv.Atoi(serverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT: %w", err)
	}

	return cfg, nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		c.Username, c.Password, c.Host, c.Name)
}

// BrokerList splits the comma-separated broker string.
func (c *KafkaConfig) BrokerList() []string {
	parts := strings.Split(c.Brokers, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func intEnv(key, defaultValue string) (int, error) {
	v, err := strconv.Atoi(getEnvWithDefault(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return v, nil
}

func durationEnv(key, defaultValue string) (time.Duration, error) {
	v, err := time.ParseDuration(getEnvWithDefault(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return v, nil
}
