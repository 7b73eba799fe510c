package supervisor

import (
	"context"
	"log/slog"
	"time"

	"github.com/chainsight-systems/beaconflow/internal/lineproto"
	"github.com/chainsight-systems/beaconflow/internal/metrics"
	"github.com/chainsight-systems/beaconflow/internal/sink"
	"github.com/chainsight-systems/beaconflow/internal/stats"
)

// Pipeline is the encode+deliver path for one source. Every event,
// real or synthesized, goes through here. Failures are logged and
// absorbed: a malformed payload or a rejected delivery drops the
// event and nothing else.
type Pipeline struct {
	enc       *lineproto.Encoder
	snk       sink.Sink
	tags      lineproto.EventTags
	source    string
	network   string
	collector *stats.Collector // optional
	logger    *slog.Logger
}

// NewPipeline builds the delivery path for one source. collector may
// be nil when delivery stats are disabled.
func NewPipeline(enc *lineproto.Encoder, snk sink.Sink, tags lineproto.EventTags, collector *stats.Collector, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		enc:       enc,
		snk:       snk,
		tags:      tags,
		source:    tags.Source,
		network:   tags.Network,
		collector: collector,
		logger:    logger,
	}
}

// Publish encodes one event and delivers its wire line. No retry on
// any failure: malformed payloads will not become valid on retry,
// and delivery is best-effort by contract.
func (p *Pipeline) Publish(ctx context.Context, eventKind string, payload []byte) {
	rec, err := p.enc.Encode(eventKind, payload, p.tags)
	if err != nil {
		metrics.EncodeErrors.WithLabelValues(p.source, eventKind).Inc()
		p.logger.Warn("dropping event with invalid payload",
			"source", p.source,
			"event_type", eventKind,
			"error", err,
		)
		return
	}

	metrics.EventsTotal.WithLabelValues(p.source, eventKind).Inc()

	start := time.Now()
	err = p.snk.Deliver(ctx, rec.Line())
	metrics.DeliveryDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.DeliveriesTotal.WithLabelValues(p.snk.Backend(), "error").Inc()
		p.logger.Warn("delivery failed, event dropped",
			"source", p.source,
			"event_type", eventKind,
			"backend", p.snk.Backend(),
			"error", err,
		)
		return
	}

	metrics.DeliveriesTotal.WithLabelValues(p.snk.Backend(), "ok").Inc()
	if p.collector != nil {
		p.collector.Record(p.source, p.network, 1)
	}
}
