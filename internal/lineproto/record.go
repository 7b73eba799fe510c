// Package lineproto converts beacon node events into typed
// line-protocol records for the downstream ingestion endpoint.
package lineproto

import (
	"strconv"
	"strings"
)

// Measurement is the measurement name carried by every record this
// service produces.
const Measurement = "beacon_event"

// FieldKind identifies the inferred type of a field value.
type FieldKind int

const (
	// KindString renders as a double-quoted string.
	KindString FieldKind = iota
	// KindInt renders with the integer "i" suffix.
	KindInt
	// KindFloat renders as decimal text.
	KindFloat
	// KindBool renders as bare true/false.
	KindBool
)

// FieldValue is a tagged union of the four line-protocol field types.
// Exactly one of the value members is meaningful, selected by Kind.
type FieldValue struct {
	Kind  FieldKind
	Str   string
	Int   int64
	Float float64
	Bool  bool
}

// StringValue returns a quoted-string field value.
func StringValue(s string) FieldValue {
	return FieldValue{Kind: KindString, Str: s}
}

// IntValue returns an integer field value.
func IntValue(i int64) FieldValue {
	return FieldValue{Kind: KindInt, Int: i}
}

// FloatValue returns a float field value.
func FloatValue(f float64) FieldValue {
	return FieldValue{Kind: KindFloat, Float: f}
}

// BoolValue returns a boolean field value.
func BoolValue(b bool) FieldValue {
	return FieldValue{Kind: KindBool, Bool: b}
}

// String renders the value in line-protocol field syntax.
func (v FieldValue) String() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.Int, 10) + "i"
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return `"` + v.Str + `"`
	}
}

// Tag is one tag key/value pair. Tag order is fixed by the encoder.
type Tag struct {
	Key   string
	Value string
}

// Field is one field key/value pair.
type Field struct {
	Key   string
	Value FieldValue
}

// Record is the canonical typed representation of one encoded event:
// a measurement, ordered tags, ordered fields and a nanosecond
// wall-clock timestamp captured at encode time.
type Record struct {
	Measurement string
	Tags        []Tag
	Fields      []Field
	Timestamp   int64
}

// tagEscaper escapes the characters the line protocol reserves in
// tag values.
var tagEscaper = strings.NewReplacer(
	" ", `\ `,
	",", `\,`,
	"=", `\=`,
)

// Line serializes the record to its wire form:
//
//	measurement,tag=v,... field=v,... <unix_nanos>
func (r *Record) Line() string {
	var b strings.Builder

	b.WriteString(r.Measurement)
	for _, t := range r.Tags {
		b.WriteByte(',')
		b.WriteString(t.Key)
		b.WriteByte('=')
		b.WriteString(tagEscaper.Replace(t.Value))
	}

	b.WriteByte(' ')
	for i, f := range r.Fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(f.Key)
		b.WriteByte('=')
		b.WriteString(f.Value.String())
	}

	b.WriteByte(' ')
	b.WriteString(strconv.FormatInt(r.Timestamp, 10))

	return b.String()
}
