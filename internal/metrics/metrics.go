package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Stream metrics
	EventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beaconflow_events_total",
			Help: "Total number of SSE events received per source and event type",
		},
		[]string{"source", "event_type"},
	)

	StreamConnects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beaconflow_stream_connects_total",
			Help: "Total number of stream connection attempts",
		},
		[]string{"source", "result"},
	)

	StreamsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "beaconflow_streams_active",
			Help: "Number of currently connected source streams",
		},
	)

	Reconnects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beaconflow_reconnects_total",
			Help: "Total number of reconnect cycles entered per source",
		},
		[]string{"source"},
	)

	// Encoding metrics
	EncodeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beaconflow_encode_errors_total",
			Help: "Total number of payloads dropped as invalid JSON",
		},
		[]string{"source", "event_type"},
	)

	// Delivery metrics
	DeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beaconflow_deliveries_total",
			Help: "Total number of sink deliveries per backend and status",
		},
		[]string{"backend", "status"},
	)

	DeliveryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "beaconflow_delivery_duration_seconds",
			Help:    "Duration of sink delivery calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Heartbeat metrics
	HeartbeatsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beaconflow_heartbeats_total",
			Help: "Total number of heartbeat events emitted per source",
		},
		[]string{"source"},
	)
)
