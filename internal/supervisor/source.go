// Package supervisor keeps one stream per configured source alive
// indefinitely, reconnecting on failure and reporting failures as
// events of their own.
package supervisor

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/chainsight-systems/beaconflow/internal/heartbeat"
	"github.com/chainsight-systems/beaconflow/internal/metrics"
)

// Streamer is one stream connection. Stream blocks until the
// connection fails or ctx is cancelled; a nil return means clean
// stop.
type Streamer interface {
	Stream(ctx context.Context) error
}

// Source owns one stream connection and one heartbeat emitter for one
// configured upstream. Any stream failure is converted into an
// sse_error event and resolved by reconnecting after a fixed delay,
// forever. The only way out is cancellation.
type Source struct {
	source         string
	network        string
	stream         Streamer
	pipeline       heartbeat.Publisher
	hb             *heartbeat.Emitter
	reconnectDelay time.Duration
	logger         *slog.Logger
}

// NewSource builds a supervisor for one upstream. hb may be nil to
// run without a heartbeat (used by tests).
func NewSource(source, network string, stream Streamer, pipeline heartbeat.Publisher, hb *heartbeat.Emitter, reconnectDelay time.Duration, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		source:         source,
		network:        network,
		stream:         stream,
		pipeline:       pipeline,
		hb:             hb,
		reconnectDelay: reconnectDelay,
		logger:         logger,
	}
}

// Run blocks until ctx is cancelled. It always returns nil: stream
// failures are this supervisor's job to absorb, not to report up.
func (s *Source) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	// The heartbeat lives for the supervisor's whole lifetime,
	// ticking through reconnect waits.
	if s.hb != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.hb.Run(ctx)
		}()
	}

	for ctx.Err() == nil {
		s.logger.Info("connecting to event stream",
			"source", s.source,
			"network", s.network,
		)

		err := s.stream.Stream(ctx)
		if err == nil {
			// Clean stop on cancellation.
			break
		}
		metrics.StreamConnects.WithLabelValues(s.source, "error").Inc()

		s.logger.Error("event stream failed, reconnecting",
			"source", s.source,
			"network", s.network,
			"error", err,
			"retry_in", s.reconnectDelay,
		)
		s.reportFailure(ctx, err)

		metrics.Reconnects.WithLabelValues(s.source).Inc()
		select {
		case <-ctx.Done():
		case <-time.After(s.reconnectDelay):
		}
	}

	wg.Wait()
	s.logger.Info("source supervisor stopped", "source", s.source)
	return nil
}

// reportFailure synthesizes an sse_error event carrying the failure
// message, delivered through the normal pipeline so the outage shows
// up downstream next to the data it interrupts.
func (s *Source) reportFailure(ctx context.Context, streamErr error) {
	payload, err := json.Marshal(map[string]any{
		"error":     streamErr.Error(),
		"timestamp": float64(time.Now().UnixNano()) / 1e9,
	})
	if err != nil {
		return
	}
	s.pipeline.Publish(ctx, "sse_error", payload)
}
