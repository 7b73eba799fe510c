package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSSink publishes each wire line to a NATS subject instead of
// posting it over HTTP. Publishing is fire-and-forget (core NATS, no
// ack wait), matching the best-effort delivery contract.
type NATSSink struct {
	conn    *nats.Conn
	subject string
}

// NATSConfig holds NATS sink configuration.
type NATSConfig struct {
	// URL is the NATS server URL (e.g., "nats://localhost:4222").
	URL string

	// Subject is the subject every wire line is published to.
	Subject string

	// Name is the client name for connection identification.
	Name string
}

// NewNATSSink connects to NATS and returns a publishing sink. The
// connection reconnects indefinitely on its own; delivery during an
// outage buffers in the client up to its internal limit and is lost
// beyond that.
func NewNATSSink(cfg NATSConfig) (*NATSSink, error) {
	if cfg.Name == "" {
		cfg.Name = "beaconflow-sink"
	}

	conn, err := nats.Connect(cfg.URL,
		nats.Name(cfg.Name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSSink{
		conn:    conn,
		subject: cfg.Subject,
	}, nil
}

func (s *NATSSink) Backend() string { return "nats" }

// Deliver publishes one line to the configured subject.
func (s *NATSSink) Deliver(ctx context.Context, line string) error {
	if err := ctx.Err(); err != nil {
		return &DeliveryError{Backend: s.Backend(), Err: err}
	}
	if err := s.conn.Publish(s.subject, []byte(line)); err != nil {
		return &DeliveryError{Backend: s.Backend(), Err: err}
	}
	return nil
}

func (s *NATSSink) Close() error {
	return s.conn.Drain()
}
