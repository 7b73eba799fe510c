package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestGeneratePayloadIsValidJSON(t *testing.T) {
	for _, kind := range eventKinds {
		payload := generatePayload(kind)
		var decoded map[string]any
		if err := json.Unmarshal(payload, &decoded); err != nil {
			t.Errorf("kind %s: invalid JSON: %v", kind, err)
		}
		if len(decoded) == 0 {
			t.Errorf("kind %s: empty payload", kind)
		}
	}
}

func TestGenerateHeadEventShape(t *testing.T) {
	ev := generateEvent("head")

	slot, ok := ev["slot"].(string)
	if !ok {
		t.Fatal("slot must be a digit string, like the beacon API emits")
	}
	for _, r := range slot {
		if r < '0' || r > '9' {
			t.Errorf("slot %q contains non-digit", slot)
		}
	}

	block, ok := ev["block"].(string)
	if !ok || !strings.HasPrefix(block, "0x") {
		t.Errorf("block = %v, want 0x-prefixed hex", ev["block"])
	}
	if len(block) != 2+64 {
		t.Errorf("block root length = %d, want 66", len(block))
	}
}

func TestRandomKindIsKnown(t *testing.T) {
	known := make(map[string]bool, len(eventKinds))
	for _, k := range eventKinds {
		known[k] = true
	}
	for i := 0; i < 100; i++ {
		if k := randomKind(); !known[k] {
			t.Fatalf("randomKind() = %q, not a known kind", k)
		}
	}
}

func TestParseTopics(t *testing.T) {
	if got := parseTopics(""); got != nil {
		t.Errorf("parseTopics(\"\") = %v, want nil", got)
	}

	topics := parseTopics("head, attestation,,block")
	for _, want := range []string{"head", "attestation", "block"} {
		if !topics[want] {
			t.Errorf("topics missing %q", want)
		}
	}
	if len(topics) != 3 {
		t.Errorf("len(topics) = %d, want 3", len(topics))
	}
}
