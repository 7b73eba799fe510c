package sse

import (
	"errors"
	"fmt"
)

// ErrIdleTimeout is the cause recorded when the peer goes silent for
// longer than the configured idle timeout.
var ErrIdleTimeout = errors.New("no data received within idle timeout")

// ConnectionError reports a failure to establish the stream: the
// request never succeeded or the server answered with a non-success
// status.
type ConnectionError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *ConnectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("connect %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("connect %s: status %d", e.URL, e.StatusCode)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// StreamError reports a failure after the stream was established:
// a read error, an idle timeout, or the peer closing the connection.
type StreamError struct {
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream: %v", e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }
