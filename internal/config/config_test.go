package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
sources:
  - source: nodeA
    network: mainnet
    url: http://beacon-a:5052
    endpoint: /eth/v1/events
    topics: head,attestation
`

func TestLoad_MinimalFileWithDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Sources) != 1 {
		t.Fatalf("len(Sources) = %d, want 1", len(cfg.Sources))
	}

	src := cfg.Sources[0]
	if src.Source != "nodeA" {
		t.Errorf("Source = %q, want nodeA", src.Source)
	}
	if src.Network != "mainnet" {
		t.Errorf("Network = %q, want mainnet", src.Network)
	}
	if src.Topics != "head,attestation" {
		t.Errorf("Topics = %q", src.Topics)
	}

	// Everything else falls back to defaults
	if cfg.Stream.IdleTimeout != 30*time.Second {
		t.Errorf("Stream.IdleTimeout = %v, want 30s", cfg.Stream.IdleTimeout)
	}
	if cfg.Stream.ReconnectDelay != 5*time.Second {
		t.Errorf("Stream.ReconnectDelay = %v, want 5s", cfg.Stream.ReconnectDelay)
	}
	if cfg.Heartbeat.Interval != time.Minute {
		t.Errorf("Heartbeat.Interval = %v, want 60s", cfg.Heartbeat.Interval)
	}
	if cfg.Sink.Backend != "http" {
		t.Errorf("Sink.Backend = %q, want http", cfg.Sink.Backend)
	}
	if cfg.Sink.Timeout != 5*time.Second {
		t.Errorf("Sink.Timeout = %v, want 5s", cfg.Sink.Timeout)
	}
	if cfg.Redis.Enabled {
		t.Error("Redis.Enabled should be false by default")
	}
	if cfg.Server.Port != 9180 {
		t.Errorf("Server.Port = %d, want 9180", cfg.Server.Port)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
}

func TestLoad_MultipleSources(t *testing.T) {
	content := `
sources:
  - source: nodeA
    network: mainnet
    url: http://beacon-a:5052
    endpoint: /eth/v1/events
  - source: nodeB
    network: holesky
    url: http://beacon-b:5052
    endpoint: /eth/v1/events
sink:
  backend: nats
  nats_url: nats://queue:4222
  nats_subject: beacon.lines
heartbeat:
  interval: 30s
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Sources) != 2 {
		t.Fatalf("len(Sources) = %d, want 2", len(cfg.Sources))
	}
	if cfg.Sink.Backend != "nats" {
		t.Errorf("Sink.Backend = %q, want nats", cfg.Sink.Backend)
	}
	if cfg.Sink.NatsSubject != "beacon.lines" {
		t.Errorf("Sink.NatsSubject = %q", cfg.Sink.NatsSubject)
	}
	if cfg.Heartbeat.Interval != 30*time.Second {
		t.Errorf("Heartbeat.Interval = %v, want 30s", cfg.Heartbeat.Interval)
	}
}

func TestLoad_NoSourcesFails(t *testing.T) {
	_, err := Load(writeConfig(t, "logging:\n  level: debug\n"))
	if err == nil {
		t.Fatal("Load() error = nil, want validation failure for missing sources")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Sources: []SourceConfig{
				{Source: "a", Network: "mainnet", URL: "http://x", Endpoint: "/e"},
			},
			Sink: SinkConfig{Backend: "http"},
		}
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing source id", func(c *Config) { c.Sources[0].Source = "" }},
		{"missing network", func(c *Config) { c.Sources[0].Network = "" }},
		{"missing url", func(c *Config) { c.Sources[0].URL = "" }},
		{"missing endpoint", func(c *Config) { c.Sources[0].Endpoint = "" }},
		{"no sources", func(c *Config) { c.Sources = nil }},
		{"bad backend", func(c *Config) { c.Sink.Backend = "kafka" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() error = nil, want failure")
			}
		})
	}
}
