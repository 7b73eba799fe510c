package supervisor

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainsight-systems/beaconflow/internal/heartbeat"
)

// failingStreamer fails every connection attempt until cancelled.
type failingStreamer struct {
	attempts atomic.Int64
}

func (s *failingStreamer) Stream(ctx context.Context) error {
	if ctx.Err() != nil {
		return nil
	}
	s.attempts.Add(1)
	return errors.New("connection refused")
}

// blockingStreamer holds the connection open until cancelled.
type blockingStreamer struct{}

func (s *blockingStreamer) Stream(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

type capturingPublisher struct {
	mu    sync.Mutex
	kinds []string
	data  [][]byte
}

func (p *capturingPublisher) Publish(_ context.Context, eventKind string, payload []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.kinds = append(p.kinds, eventKind)
	p.data = append(p.data, payload)
}

func (p *capturingPublisher) countKind(kind string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, k := range p.kinds {
		if k == kind {
			n++
		}
	}
	return n
}

func TestSourceReconnectsOnRepeatedFailure(t *testing.T) {
	streamer := &failingStreamer{}
	pub := &capturingPublisher{}
	src := NewSource("nodeA", "mainnet", streamer, pub, nil, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- src.Run(ctx)
	}()

	// Let it cycle through at least five failures.
	deadline := time.Now().Add(2 * time.Second)
	for streamer.attempts.Load() < 5 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	require.GreaterOrEqual(t, streamer.attempts.Load(), int64(5), "supervisor stopped retrying")

	// One sse_error per failed attempt.
	errCount := pub.countKind("sse_error")
	assert.GreaterOrEqual(t, errCount, 5)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err, "failures must never propagate out of the supervisor")
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor did not stop after cancel")
	}
}

func TestSourceErrorEventShape(t *testing.T) {
	streamer := &failingStreamer{}
	pub := &capturingPublisher{}
	src := NewSource("nodeA", "mainnet", streamer, pub, nil, 50*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = src.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for pub.countKind("sse_error") < 1 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	pub.mu.Lock()
	defer pub.mu.Unlock()
	require.NotEmpty(t, pub.kinds)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(pub.data[0], &payload))
	assert.Equal(t, "connection refused", payload["error"])
	assert.Contains(t, payload, "timestamp")
}

func TestHeartbeatTicksThroughReconnectWait(t *testing.T) {
	streamer := &failingStreamer{}
	pub := &capturingPublisher{}
	hb := heartbeat.New("nodeA", 15*time.Millisecond, pub, nil)

	// Long reconnect delay: the stream spends nearly all its time in
	// the wait state while the heartbeat keeps going.
	src := NewSource("nodeA", "mainnet", streamer, pub, hb, 500*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- src.Run(ctx)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for pub.countKind("heartbeat") < 5 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	assert.GreaterOrEqual(t, pub.countKind("heartbeat"), 5, "heartbeat must tick during reconnect wait")

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor did not stop after cancel")
	}
}

func TestSourceStopsWhileConnected(t *testing.T) {
	pub := &capturingPublisher{}
	src := NewSource("nodeA", "mainnet", &blockingStreamer{}, pub, nil, 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- src.Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor did not stop while connected")
	}

	// A clean stop is not a failure: no sse_error synthesized.
	assert.Zero(t, pub.countKind("sse_error"))
}
