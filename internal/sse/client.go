// Package sse consumes a beacon node's server-sent event stream and
// hands each named event to a caller-supplied handler.
package sse

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/chainsight-systems/beaconflow/internal/metrics"
)

// Event is one parsed wire event: the value of the "event:" line and
// the raw bytes of the following "data:" line.
type Event struct {
	Kind string
	Data []byte
}

// Handler receives each parsed event. Handlers run on their own
// goroutine; a slow handler never stalls the framing read loop.
type Handler func(ev Event)

// Config describes one stream subscription.
type Config struct {
	// Source is the upstream id, used for logs and metrics only.
	Source string

	// BaseURL is the node URL without a trailing slash.
	BaseURL string

	// Endpoint is the SSE path, with leading slash.
	Endpoint string

	// Topics is the topic-selection list passed as the "topics"
	// query parameter. Empty means no parameter.
	Topics string

	// IdleTimeout bounds how long a silent peer is tolerated before
	// the connection is torn down. Zero disables the watchdog.
	IdleTimeout time.Duration
}

// Client owns one long-lived streaming connection to one source
// endpoint. It carries no retry logic; the supervisor reconnects.
type Client struct {
	cfg        Config
	handler    Handler
	logger     *slog.Logger
	httpClient *http.Client
}

// NewClient returns a Client that will dispatch events to handler.
func NewClient(cfg Config, handler Handler, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:     cfg,
		handler: handler,
		logger:  logger,
		// No overall client timeout: the request is expected to
		// live indefinitely. Liveness is the watchdog's job.
		httpClient: &http.Client{},
	}
}

// URL returns the full stream URL including the topics parameter.
func (c *Client) URL() string {
	u := strings.TrimRight(c.cfg.BaseURL, "/") + c.cfg.Endpoint
	if c.cfg.Topics != "" {
		u += "?topics=" + url.QueryEscape(c.cfg.Topics)
	}
	return u
}

// Stream connects and consumes events until the stream fails or ctx
// is cancelled. Returns nil only on cancellation; otherwise a
// *ConnectionError or *StreamError.
func (c *Client) Stream(ctx context.Context) error {
	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Watchdog: cancel the request when the peer goes silent so a
	// dead TCP connection cannot hold the read loop forever.
	var idleFired atomic.Bool
	var watchdog *time.Timer
	if c.cfg.IdleTimeout > 0 {
		watchdog = time.AfterFunc(c.cfg.IdleTimeout, func() {
			idleFired.Store(true)
			cancel()
		})
		defer watchdog.Stop()
	}

	req, err := http.NewRequestWithContext(streamCtx, http.MethodGet, c.URL(), nil)
	if err != nil {
		return &ConnectionError{URL: c.URL(), Err: err}
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		if idleFired.Load() {
			return &ConnectionError{URL: c.URL(), Err: ErrIdleTimeout}
		}
		return &ConnectionError{URL: c.URL(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ConnectionError{URL: c.URL(), StatusCode: resp.StatusCode}
	}

	c.logger.Info("event stream established",
		"source", c.cfg.Source,
		"url", c.URL(),
	)
	metrics.StreamConnects.WithLabelValues(c.cfg.Source, "ok").Inc()
	metrics.StreamsActive.Inc()
	defer metrics.StreamsActive.Dec()

	err = c.readLoop(resp.Body, watchdog)

	if ctx.Err() != nil {
		return nil
	}
	if idleFired.Load() {
		return &StreamError{Err: ErrIdleTimeout}
	}
	if err == nil {
		err = io.EOF
	}
	return &StreamError{Err: err}
}

// readLoop parses the text/event-stream framing. State machine:
// a bare "event:" line arms the kind, the next "data:" line emits
// the event and disarms. Blank lines separate events. A data line
// with no armed kind is dropped without logging; occasional strays
// are part of the protocol's reality and not actionable.
func (c *Client) readLoop(body io.Reader, watchdog *time.Timer) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var kind string
	for scanner.Scan() {
		if watchdog != nil {
			watchdog.Reset(c.cfg.IdleTimeout)
		}

		line := scanner.Text()
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "event:"):
			kind = strings.TrimSpace(line[len("event:"):])
		case strings.HasPrefix(line, "data:"):
			if kind == "" {
				continue
			}
			ev := Event{
				Kind: kind,
				Data: []byte(strings.TrimSpace(line[len("data:"):])),
			}
			go c.handler(ev)
			kind = ""
		}
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
