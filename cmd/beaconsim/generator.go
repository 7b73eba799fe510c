package main

import (
	"encoding/json"
	"strconv"

	"github.com/brianvoe/gofakeit/v6"
)

// eventKinds are the beacon event topics the generator can produce.
var eventKinds = []string{
	"head",
	"attestation",
	"finalized_checkpoint",
	"voluntary_exit",
	"block",
}

func hexRoot() string {
	return "0x" + gofakeit.Regex("[0-9a-f]{64}")
}

func slotString() string {
	return strconv.Itoa(gofakeit.Number(1_000_000, 9_000_000))
}

// generateEvent builds a payload shaped like the beacon node API
// emits for the given event kind: slots and indices as digit strings,
// roots as 0x-prefixed hex.
func generateEvent(kind string) map[string]any {
	switch kind {
	case "head":
		return map[string]any{
			"slot":                         slotString(),
			"block":                        hexRoot(),
			"state":                        hexRoot(),
			"epoch_transition":             gofakeit.Bool(),
			"previous_duty_dependent_root": hexRoot(),
			"current_duty_dependent_root":  hexRoot(),
		}
	case "attestation":
		return map[string]any{
			"aggregation_bits": "0x" + gofakeit.Regex("[0-9a-f]{16}"),
			"signature":        "0x" + gofakeit.Regex("[0-9a-f]{192}"),
			"data": map[string]any{
				"slot":              slotString(),
				"index":             strconv.Itoa(gofakeit.Number(0, 63)),
				"beacon_block_root": hexRoot(),
				"source": map[string]any{
					"epoch": strconv.Itoa(gofakeit.Number(100_000, 300_000)),
					"root":  hexRoot(),
				},
				"target": map[string]any{
					"epoch": strconv.Itoa(gofakeit.Number(100_000, 300_000)),
					"root":  hexRoot(),
				},
			},
		}
	case "finalized_checkpoint":
		return map[string]any{
			"block": hexRoot(),
			"state": hexRoot(),
			"epoch": strconv.Itoa(gofakeit.Number(100_000, 300_000)),
		}
	case "voluntary_exit":
		return map[string]any{
			"message": map[string]any{
				"epoch":           strconv.Itoa(gofakeit.Number(100_000, 300_000)),
				"validator_index": strconv.Itoa(gofakeit.Number(0, 1_000_000)),
			},
			"signature": "0x" + gofakeit.Regex("[0-9a-f]{192}"),
		}
	default: // block
		return map[string]any{
			"slot":                 slotString(),
			"block":                hexRoot(),
			"execution_optimistic": gofakeit.Bool(),
		}
	}
}

func generatePayload(kind string) []byte {
	payload, _ := json.Marshal(generateEvent(kind))
	return payload
}

func randomKind() string {
	return eventKinds[gofakeit.Number(0, len(eventKinds)-1)]
}
