package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ingestion Metrics
var (
	// TelemetryAcceptedTotal counts samples persisted and published
	TelemetryAcceptedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "telemetry_accepted_total",
			Help: "Total telemetry samples persisted and published",
		},
	)

	// CommandsAcceptedTotal counts commands audited and published
	CommandsAcceptedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "commands_accepted_total",
			Help: "Total device commands persisted and published",
		},
	)

	// RequestsRejectedTotal counts write requests rejected by reason (validation/persistence)
	RequestsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "requests_rejected_total",
			Help: "Write requests rejected, by endpoint and reason",
		},
		[]string{"endpoint", "reason"},
	)
)

// Hub Metrics
var (
	HubConnectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hub_connected_clients",
			Help: "Number of registered subscriber connections",
		},
	)

	HubEventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hub_events_published_total",
			Help: "Events published through the hub, by type",
		},
		[]string{"type"},
	)

	HubMessagesEnqueuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_messages_enqueued_total",
			Help: "Messages handed to subscriber connections",
		},
	)

	HubSkippedNotReadyTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hub_skipped_not_ready_total",
			Help: "Deliveries skipped because the connection was not open",
		},
	)

	// HubDeliveryFailuresTotal counts per-connection send failures (queue_full/closed/write)
	HubDeliveryFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hub_delivery_failures_total",
			Help: "Subscriber delivery failures, by reason",
		},
		[]string{"reason"},
	)

	HubPublishDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hub_publish_duration_seconds",
			Help:    "Time spent fanning one event out to the registry snapshot",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1},
		},
	)

	WebSocketMessageSendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "websocket_message_send_duration_seconds",
			Help:    "Time to write one message to a subscriber socket",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		},
	)
)

// Mirror Metrics
var (
	MirrorRecordsWrittenTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mirror_records_written_total",
			Help: "Events written to the Kafka mirror topic",
		},
	)

	// MirrorRecordsDroppedTotal counts records lost by reason (queue_full/write)
	MirrorRecordsDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mirror_records_dropped_total",
			Help: "Events not written to the Kafka mirror topic, by reason",
		},
		[]string{"reason"},
	)
)
