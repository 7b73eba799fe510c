package lineproto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldValueString(t *testing.T) {
	assert.Equal(t, `"0x12"`, StringValue("0x12").String())
	assert.Equal(t, "123i", IntValue(123).String())
	assert.Equal(t, "-5i", IntValue(-5).String())
	assert.Equal(t, "1.5", FloatValue(1.5).String())
	assert.Equal(t, "true", BoolValue(true).String())
	assert.Equal(t, "false", BoolValue(false).String())
}

func TestRecordLine(t *testing.T) {
	rec := &Record{
		Measurement: Measurement,
		Tags: []Tag{
			{"event_type", "heartbeat"},
			{"source", "nodeA"},
			{"network", "mainnet"},
			{"endpoint", "/eth/v1/events"},
		},
		Fields: []Field{
			{"heartbeat_timestamp", FloatValue(1700000000.123)},
			{"count", IntValue(1)},
		},
		Timestamp: 1700000000123456789,
	}

	want := "beacon_event,event_type=heartbeat,source=nodeA,network=mainnet," +
		"endpoint=/eth/v1/events heartbeat_timestamp=1700000000.123,count=1i " +
		"1700000000123456789"
	assert.Equal(t, want, rec.Line())
}

func TestRecordLineEscapesTagValues(t *testing.T) {
	rec := &Record{
		Measurement: Measurement,
		Tags: []Tag{
			{"source", "node A,b=c"},
		},
		Fields: []Field{
			{"count", IntValue(1)},
		},
		Timestamp: 42,
	}

	assert.Equal(t, `beacon_event,source=node\ A\,b\=c count=1i 42`, rec.Line())
}

func TestIgnoreSet(t *testing.T) {
	s := NewIgnoreSet("a", "b_c")
	assert.True(t, s.Contains("a"))
	assert.True(t, s.Contains("b_c"))
	assert.False(t, s.Contains("b"))
	assert.False(t, s.Contains(""))
}
