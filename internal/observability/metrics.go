package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Engine-wide Prometheus collectors. They register with the default registry
// once at package init, so every processor instance shares them.
var (
	SegmentRefreshDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campaign_engine_segment_refresh_duration_seconds",
			Help:    "Duration of segment refreshes",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
		[]string{"mode", "result"},
	)

	SegmentSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "campaign_engine_segment_size",
			Help: "Member count of the currently published segment snapshot",
		},
		[]string{"segment_id"},
	)

	SnapshotVersionsRetained = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "campaign_engine_snapshot_versions_retained",
			Help: "Snapshot versions of a segment held in memory, current plus leased",
		},
		[]string{"segment_id"},
	)

	BatchesDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_engine_batches_dispatched_total",
			Help: "Total number of campaign batches dispatched",
		},
		[]string{"campaign_type"},
	)

	RecipientOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_engine_recipient_outcomes_total",
			Help: "Per-recipient dispatch outcomes recorded in the ledger",
		},
		[]string{"channel", "status"},
	)

	CampaignTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_engine_campaign_transitions_total",
			Help: "Campaign status transitions",
		},
		[]string{"to"},
	)

	EventsIngested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_engine_events_ingested_total",
			Help: "Events seen by the aggregator by result",
		},
		[]string{"result"},
	)

	WorkflowInstances = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_engine_workflow_instances_total",
			Help: "Workflow instance lifecycle changes",
		},
		[]string{"status"},
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_engine_events_consumed_total",
			Help: "Stream messages handled per consumer by result",
		},
		[]string{"processor", "result"},
	)

	SchedulerJobRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_engine_scheduler_job_runs_total",
			Help: "Scheduled job executions",
		},
		[]string{"job", "result"},
	)

	SchedulerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campaign_engine_scheduler_job_duration_seconds",
			Help:    "Duration of scheduled job runs",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 30, 120, 600},
		},
		[]string{"job"},
	)

	// SchedulerJobLastSuccess is the unix time of the last successful run.
	// Alert on time() minus this exceeding a few intervals.
	SchedulerJobLastSuccess = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "campaign_engine_scheduler_job_last_success_timestamp_seconds",
			Help: "Unix time of the last successful scheduled job run",
		},
		[]string{"job"},
	)

	SchedulerJobOverruns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_engine_scheduler_job_overruns_total",
			Help: "Scheduled job runs that took longer than their interval",
		},
		[]string{"job"},
	)
)
