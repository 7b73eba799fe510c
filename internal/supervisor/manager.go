package supervisor

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/chainsight-systems/beaconflow/internal/config"
	"github.com/chainsight-systems/beaconflow/internal/heartbeat"
	"github.com/chainsight-systems/beaconflow/internal/lineproto"
	"github.com/chainsight-systems/beaconflow/internal/sink"
	"github.com/chainsight-systems/beaconflow/internal/sse"
	"github.com/chainsight-systems/beaconflow/internal/stats"
)

// Manager runs one Source supervisor per configured upstream. Each is
// an independent failure domain: a permanently dark source keeps
// cycling its own reconnect loop without touching the others.
type Manager struct {
	sources []*Source
	logger  *slog.Logger
}

// New wires a supervisor tree from configuration: per source, one SSE
// client, one pipeline and one heartbeat, all sharing the encoder and
// sink. collector may be nil.
func New(cfg *config.Config, enc *lineproto.Encoder, snk sink.Sink, collector *stats.Collector, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}

	sources := make([]*Source, 0, len(cfg.Sources))
	for _, sc := range cfg.Sources {
		tags := lineproto.EventTags{
			Source:   sc.Source,
			Network:  sc.Network,
			Endpoint: sc.Endpoint,
		}
		pipeline := NewPipeline(enc, snk, tags, collector, logger)

		client := sse.NewClient(sse.Config{
			Source:      sc.Source,
			BaseURL:     sc.URL,
			Endpoint:    sc.Endpoint,
			Topics:      sc.Topics,
			IdleTimeout: cfg.Stream.IdleTimeout,
		}, func(ev sse.Event) {
			// Dispatched per event off the framing loop. Delivery
			// during shutdown finishes or is abandoned; the sink
			// timeout bounds either way.
			pipeline.Publish(context.Background(), ev.Kind, ev.Data)
		}, logger)

		hb := heartbeat.New(sc.Source, cfg.Heartbeat.Interval, pipeline, logger)

		sources = append(sources, NewSource(
			sc.Source,
			sc.Network,
			client,
			pipeline,
			hb,
			cfg.Stream.ReconnectDelay,
			logger,
		))
	}

	return &Manager{sources: sources, logger: logger}
}

// Run starts every source supervisor and blocks until ctx is
// cancelled and all of them have settled.
func (m *Manager) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, src := range m.sources {
		g.Go(func() error {
			return src.Run(ctx)
		})
	}

	m.logger.Info("ingestion supervisor running", "sources", len(m.sources))
	return g.Wait()
}
