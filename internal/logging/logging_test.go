package logging

import (
	"errors"
	"log/slog"
	"testing"
)

func TestFieldHelpers(t *testing.T) {
	tests := []struct {
		attr    slog.Attr
		wantKey string
		wantVal string
	}{
		{Service("beaconflow"), FieldService, "beaconflow"},
		{Source("nodeA"), FieldSource, "nodeA"},
		{Network("mainnet"), FieldNetwork, "mainnet"},
		{EventType("head"), FieldEventType, "head"},
		{Endpoint("/eth/v1/events"), FieldEndpoint, "/eth/v1/events"},
		{Backend("http"), FieldBackend, "http"},
		{Error(errors.New("boom")), FieldError, "boom"},
	}

	for _, tt := range tests {
		if tt.attr.Key != tt.wantKey {
			t.Errorf("key = %q, want %q", tt.attr.Key, tt.wantKey)
		}
		if tt.attr.Value.String() != tt.wantVal {
			t.Errorf("value = %q, want %q", tt.attr.Value.String(), tt.wantVal)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewReturnsLogger(t *testing.T) {
	for _, format := range []string{"json", "text", ""} {
		l := New(slog.LevelInfo, format)
		if l == nil || l.Logger == nil {
			t.Fatalf("New(info, %q) returned nil logger", format)
		}
	}
}
