package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Control-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "relay",
			Subsystem: "control_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "relay",
			Subsystem: "control_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Conversations
	ConversationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "relay",
			Subsystem: "control_api",
			Name:      "conversations_created_total",
			Help:      "Total conversations created",
		},
	)

	ConversationsDeletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "relay",
			Subsystem: "control_api",
			Name:      "conversations_deleted_total",
			Help:      "Total conversations deleted, by trigger",
		},
		[]string{"trigger"},
	)

	MessagesAddedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "relay",
			Subsystem: "control_api",
			Name:      "messages_added_total",
			Help:      "Total messages appended to conversations",
		},
		[]string{"role"},
	)

	// Presets
	PresetsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "relay",
			Subsystem: "control_api",
			Name:      "presets_created_total",
			Help:      "Total presets created, by scope",
		},
		[]string{"scope"},
	)

	PresetUsageTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "relay",
			Subsystem: "control_api",
			Name:      "preset_usage_total",
			Help:      "Total preset retrievals counted toward usage",
		},
	)

	// Cleanup job
	CleanupRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "relay",
			Subsystem: "control_api",
			Name:      "cleanup_runs_total",
			Help:      "Reconciliation job runs, by outcome",
		},
		[]string{"status"},
	)

	CleanupOrphansDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "relay",
			Subsystem: "control_api",
			Name:      "cleanup_orphans_deleted_total",
			Help:      "Empty idle conversations removed by the reconciliation job",
		},
	)
)

// RecordRequest records an HTTP request with all relevant labels
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// RecordMessageAdded records a message appended to a conversation
func RecordMessageAdded(role string) {
	if role == "" {
		role = "unknown"
	}
	MessagesAddedTotal.WithLabelValues(role).Inc()
}

// RecordPresetCreated records a preset creation by scope
func RecordPresetCreated(system bool) {
	scope := "workspace"
	if system {
		scope = "system"
	}
	PresetsCreatedTotal.WithLabelValues(scope).Inc()
}

// RecordConversationDeleted records a conversation deletion by trigger
func RecordConversationDeleted(trigger string) {
	if trigger == "" {
		trigger = "api"
	}
	ConversationsDeletedTotal.WithLabelValues(trigger).Inc()
}
