// Package sink delivers encoded wire lines to the downstream
// ingestion endpoint. Delivery is best-effort: no sink retries, and
// callers drop lines that fail.
package sink

import (
	"context"
	"fmt"
)

// Sink delivers one wire line downstream.
type Sink interface {
	// Deliver pushes one line. A nil return means the downstream
	// accepted it; any error means the line is lost.
	Deliver(ctx context.Context, line string) error

	// Backend names the transport for logs and metrics.
	Backend() string

	// Close releases the underlying connection.
	Close() error
}

// DeliveryError reports a rejected or failed delivery.
type DeliveryError struct {
	Backend string
	Err     error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("deliver via %s: %v", e.Backend, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
