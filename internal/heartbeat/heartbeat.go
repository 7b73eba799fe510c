// Package heartbeat emits a synthetic liveness event per source on a
// fixed period, independent of real stream traffic.
package heartbeat

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/chainsight-systems/beaconflow/internal/metrics"
)

// Publisher pushes one synthesized event through the same
// encode+deliver path as real stream events. Implementations log and
// absorb their own failures.
type Publisher interface {
	Publish(ctx context.Context, eventKind string, payload []byte)
}

// Emitter ticks for the lifetime of one source supervisor. Delivery
// failures never stop the timer; the heartbeat's absence downstream
// is itself the outage signal.
type Emitter struct {
	source   string
	interval time.Duration
	pub      Publisher
	logger   *slog.Logger
}

// New returns an Emitter for one source.
func New(source string, interval time.Duration, pub Publisher, logger *slog.Logger) *Emitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Emitter{
		source:   source,
		interval: interval,
		pub:      pub,
		logger:   logger,
	}
}

// Run emits one heartbeat immediately, then one per interval, until
// ctx is cancelled.
func (e *Emitter) Run(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	e.emit(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.emit(ctx)
		}
	}
}

func (e *Emitter) emit(ctx context.Context) {
	payload, err := json.Marshal(map[string]float64{
		"heartbeat_timestamp": float64(time.Now().UnixNano()) / 1e9,
	})
	if err != nil {
		e.logger.Error("failed to build heartbeat payload", "source", e.source, "error", err)
		return
	}

	e.logger.Debug("emitting heartbeat", "source", e.source)
	e.pub.Publish(ctx, "heartbeat", payload)
	metrics.HeartbeatsTotal.WithLabelValues(e.source).Inc()
}
