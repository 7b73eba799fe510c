package logging

import "log/slog"

// Common field names for consistent logging across the service.
const (
	FieldService   = "service"
	FieldSource    = "source"
	FieldNetwork   = "network"
	FieldEventType = "event_type"
	FieldEndpoint  = "endpoint"
	FieldURL       = "url"
	FieldBackend   = "backend"
	FieldStatus    = "status"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
)

// Service returns a slog attribute for the service name.
func Service(name string) slog.Attr {
	return slog.String(FieldService, name)
}

// Source returns a slog attribute for the upstream source id.
func Source(id string) slog.Attr {
	return slog.String(FieldSource, id)
}

// Network returns a slog attribute for the network id.
func Network(id string) slog.Attr {
	return slog.String(FieldNetwork, id)
}

// EventType returns a slog attribute for the SSE event kind.
func EventType(kind string) slog.Attr {
	return slog.String(FieldEventType, kind)
}

// Endpoint returns a slog attribute for the stream endpoint path.
func Endpoint(path string) slog.Attr {
	return slog.String(FieldEndpoint, path)
}

// URL returns a slog attribute for a full request URL.
func URL(url string) slog.Attr {
	return slog.String(FieldURL, url)
}

// Backend returns a slog attribute for the sink backend name.
func Backend(name string) slog.Attr {
	return slog.String(FieldBackend, name)
}

// Status returns a slog attribute for an HTTP status code.
func Status(code int) slog.Attr {
	return slog.Int(FieldStatus, code)
}

// Duration returns a slog attribute for duration in milliseconds.
func Duration(ms int64) slog.Attr {
	return slog.Int64(FieldDuration, ms)
}

// Error returns a slog attribute for an error.
func Error(err error) slog.Attr {
	return slog.String(FieldError, err.Error())
}
