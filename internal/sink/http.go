package sink

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPSink posts each wire line as the raw request body to a fixed
// ingestion URL. Stateless besides connection reuse in the client.
type HTTPSink struct {
	url        string
	httpClient *http.Client
}

// NewHTTPSink returns a sink posting to url with the given timeout on
// every delivery.
func NewHTTPSink(url string, timeout time.Duration) *HTTPSink {
	return &HTTPSink{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *HTTPSink) Backend() string { return "http" }

// Deliver posts one line. Any non-2xx status is a delivery failure.
func (s *HTTPSink) Deliver(ctx context.Context, line string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, strings.NewReader(line))
	if err != nil {
		return &DeliveryError{Backend: s.Backend(), Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return &DeliveryError{Backend: s.Backend(), Err: err}
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &DeliveryError{Backend: s.Backend(), Err: fmt.Errorf("response status %d", resp.StatusCode)}
	}

	return nil
}

func (s *HTTPSink) Close() error {
	s.httpClient.CloseIdleConnections()
	return nil
}
