package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chainsight-systems/beaconflow/internal/config"
	"github.com/chainsight-systems/beaconflow/internal/lineproto"
	"github.com/chainsight-systems/beaconflow/internal/logging"
	"github.com/chainsight-systems/beaconflow/internal/server"
	"github.com/chainsight-systems/beaconflow/internal/sink"
	"github.com/chainsight-systems/beaconflow/internal/stats"
	"github.com/chainsight-systems/beaconflow/internal/supervisor"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize structured logging
	logger := logging.New(
		logging.ParseLevel(cfg.Logging.Level),
		cfg.Logging.Format,
	).With(logging.Service("beaconflow"))
	logging.SetDefault(logger)

	slog.Info("Starting beaconflow",
		slog.Int("sources", len(cfg.Sources)),
		slog.String("sink_backend", cfg.Sink.Backend),
		slog.String("log_level", cfg.Logging.Level),
		slog.String("log_format", cfg.Logging.Format),
	)
	if *configPath != "" {
		slog.Info("Loaded configuration", slog.String("config_path", *configPath))
	}
	for _, sc := range cfg.Sources {
		slog.Info("Source configured",
			logging.Source(sc.Source),
			logging.Network(sc.Network),
			logging.URL(sc.URL),
			logging.Endpoint(sc.Endpoint),
		)
	}

	// Initialize sink backend
	var eventSink sink.Sink
	switch cfg.Sink.Backend {
	case "nats":
		natsSink, err := sink.NewNATSSink(sink.NATSConfig{
			URL:     cfg.Sink.NatsURL,
			Subject: cfg.Sink.NatsSubject,
		})
		if err != nil {
			log.Fatalf("Failed to connect NATS sink: %v", err)
		}
		eventSink = natsSink
		log.Printf("Sink: NATS (url: %s, subject: %s)", cfg.Sink.NatsURL, cfg.Sink.NatsSubject)
	default:
		eventSink = sink.NewHTTPSink(cfg.Sink.URL, cfg.Sink.Timeout)
		log.Printf("Sink: HTTP (url: %s, timeout: %s)", cfg.Sink.URL, cfg.Sink.Timeout)
	}
	defer eventSink.Close()

	// Initialize delivery stats collector
	var statsCollector *stats.Collector
	if cfg.Redis.Enabled {
		statsClient, err := stats.NewClient(cfg.Redis.URL)
		if err != nil {
			log.Printf("WARNING: Failed to initialize delivery stats: %v", err)
			log.Println("Continuing without delivery stats")
		} else {
			statsCollector = stats.NewCollector(statsClient, cfg.Redis.FlushInterval, logger.Logger)
			log.Printf("Delivery stats enabled (flush interval: %s)", cfg.Redis.FlushInterval)
			defer statsCollector.Stop()
		}
	} else {
		log.Println("Redis disabled - delivery stats will not be collected")
	}

	// Build the supervisor tree
	encoder := lineproto.NewEncoder(lineproto.NewIgnoreSet(lineproto.DefaultIgnorePaths...))
	manager := supervisor.New(cfg, encoder, eventSink, statsCollector, logger.Logger)

	// Admin server: health probes and metrics
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: server.NewRouter(),
	}
	go func() {
		log.Printf("Admin server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Admin server error: %v", err)
		}
	}()

	// Run until signalled, then let every supervisor settle
	ctx, cancel := context.WithCancel(context.Background())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-quit
		log.Printf("Received %s, shutting down...", sig)
		cancel()
	}()

	if err := manager.Run(ctx); err != nil {
		log.Printf("Supervisor exited with error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Admin server forced to shutdown: %v", err)
	}

	log.Println("Stopped")
}
