package lineproto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// EncodeError reports a payload that could not be converted to a
// record. These are non-fatal: the caller logs and drops the event.
type EncodeError struct {
	EventKind string
	Err       error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s event: %v", e.EventKind, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// EventTags identifies the origin of an event. The values are fixed
// per source for the process lifetime; none are ever drawn from the
// payload, so payload field names cannot collide with them.
type EventTags struct {
	Source   string
	Network  string
	Endpoint string
}

// Encoder flattens JSON event payloads into line-protocol records.
// It holds no mutable state and is safe for concurrent use by every
// source supervisor.
type Encoder struct {
	ignore IgnoreSet
}

// NewEncoder returns an Encoder that skips the subtrees named by
// ignore.
func NewEncoder(ignore IgnoreSet) *Encoder {
	return &Encoder{ignore: ignore}
}

// Encode converts one raw event into a Record. The timestamp is the
// wall clock at encode time, nanosecond resolution. Fails only when
// payload is not valid JSON.
func (e *Encoder) Encode(eventKind string, payload []byte, tags EventTags) (*Record, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, &EncodeError{EventKind: eventKind, Err: err}
	}

	fields := e.flatten("", root, nil)

	// Constant count field for downstream aggregation.
	fields = append(fields, Field{Key: "count", Value: IntValue(1)})

	return &Record{
		Measurement: Measurement,
		Tags: []Tag{
			{Key: "event_type", Value: eventKind},
			{Key: "source", Value: tags.Source},
			{Key: "network", Value: tags.Network},
			{Key: "endpoint", Value: tags.Endpoint},
		},
		Fields:    fields,
		Timestamp: time.Now().UnixNano(),
	}, nil
}

// flatten walks the decoded JSON value depth-first, joining object
// keys with underscores. Object keys are visited in sorted order so
// identical payloads always yield identical field sequences. Arrays
// are dropped wholesale to bound cardinality.
func (e *Encoder) flatten(prefix string, v any, fields []Field) []Field {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			path := k
			if prefix != "" {
				path = prefix + "_" + k
			}
			if e.ignore.Contains(path) {
				continue
			}
			fields = e.flatten(path, val[k], fields)
		}
		return fields
	case []any:
		return fields
	default:
		return append(fields, Field{Key: prefix, Value: inferValue(val)})
	}
}

// inferValue maps a leaf JSON value onto exactly one field type.
func inferValue(v any) FieldValue {
	switch val := v.(type) {
	case string:
		return inferString(val)
	case json.Number:
		return inferNumber(val)
	case bool:
		return BoolValue(val)
	default:
		// null and anything else keep their textual form.
		if v == nil {
			return StringValue("null")
		}
		return StringValue(fmt.Sprint(v))
	}
}

// inferString applies the string typing rules: hex strings stay
// opaque, digit strings become integers, float literals become
// floats, everything else stays a quoted string.
func inferString(s string) FieldValue {
	if strings.HasPrefix(s, "0x") {
		return StringValue(s)
	}
	if isDigits(s) {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return IntValue(i)
		}
		// Wider than int64: keep the digits verbatim.
		return StringValue(s)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return FloatValue(f)
	}
	return StringValue(s)
}

// inferNumber distinguishes JSON integers from floats.
func inferNumber(n json.Number) FieldValue {
	if i, err := n.Int64(); err == nil && !strings.ContainsAny(n.String(), ".eE") {
		return IntValue(i)
	}
	if f, err := n.Float64(); err == nil {
		return FloatValue(f)
	}
	return StringValue(n.String())
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
