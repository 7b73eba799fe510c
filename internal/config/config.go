package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Sources   []SourceConfig  `mapstructure:"sources"`
	Stream    StreamConfig    `mapstructure:"stream"`
	Heartbeat HeartbeatConfig `mapstructure:"heartbeat"`
	Sink      SinkConfig      `mapstructure:"sink"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// SourceConfig identifies one upstream beacon node to stream from.
// Values arrive fully resolved; nothing is substituted at runtime.
type SourceConfig struct {
	Source   string `mapstructure:"source"`
	Network  string `mapstructure:"network"`
	URL      string `mapstructure:"url"`
	Endpoint string `mapstructure:"endpoint"`
	Topics   string `mapstructure:"topics"`
}

type StreamConfig struct {
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	ReconnectDelay time.Duration `mapstructure:"reconnect_delay"`
}

type HeartbeatConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type SinkConfig struct {
	Backend     string        `mapstructure:"backend"`
	URL         string        `mapstructure:"url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	NatsURL     string        `mapstructure:"nats_url"`
	NatsSubject string        `mapstructure:"nats_subject"`
}

type RedisConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	URL           string        `mapstructure:"url"`
	FlushInterval time.Duration `mapstructure:"flush_interval"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("stream.idle_timeout", "30s")
	v.SetDefault("stream.reconnect_delay", "5s")
	v.SetDefault("heartbeat.interval", "60s")
	v.SetDefault("sink.backend", "http")
	v.SetDefault("sink.url", "http://localhost:8080/eth-events")
	v.SetDefault("sink.timeout", "5s")
	v.SetDefault("sink.nats_url", "nats://localhost:4222")
	v.SetDefault("sink.nats_subject", "beacon.events")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.url", "redis://localhost:6379")
	v.SetDefault("redis.flush_interval", "30s")
	v.SetDefault("server.port", 9180)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/beaconflow")
	}

	// Environment variables override
	v.SetEnvPrefix("BEACONFLOW")
	v.AutomaticEnv()

	// Read config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found; use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the configuration can actually drive the
// supervisor: at least one source, each fully identified.
func (c *Config) Validate() error {
	if len(c.Sources) == 0 {
		return fmt.Errorf("no sources configured")
	}
	for i, s := range c.Sources {
		if s.Source == "" {
			return fmt.Errorf("sources[%d]: missing source id", i)
		}
		if s.Network == "" {
			return fmt.Errorf("sources[%d] (%s): missing network", i, s.Source)
		}
		if s.URL == "" {
			return fmt.Errorf("sources[%d] (%s): missing url", i, s.Source)
		}
		if s.Endpoint == "" {
			return fmt.Errorf("sources[%d] (%s): missing endpoint", i, s.Source)
		}
	}
	switch c.Sink.Backend {
	case "http", "nats":
	default:
		return fmt.Errorf("unknown sink backend: %s (supported: http, nats)", c.Sink.Backend)
	}
	return nil
}
