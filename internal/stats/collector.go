package stats

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Collector accumulates delivery counts in memory and flushes to
// Redis periodically. Safe for concurrent use from every source
// supervisor; the delivery path never blocks on Redis.
type Collector struct {
	client        *Client
	flushInterval time.Duration
	logger        *slog.Logger

	mu      sync.Mutex
	batches map[string]*BatchUpdate // source:network -> batch

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewCollector creates a collector that flushes on flushInterval.
func NewCollector(client *Client, flushInterval time.Duration, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	c := &Collector{
		client:        client,
		flushInterval: flushInterval,
		logger:        logger,
		batches:       make(map[string]*BatchUpdate),
		ctx:           ctx,
		cancel:        cancel,
	}

	c.wg.Add(1)
	go c.flushLoop()

	return c
}

// Record accumulates delivered events for later batch flushing.
func (c *Collector) Record(source, network string, eventCount int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := source + ":" + network
	batch, ok := c.batches[key]
	if !ok {
		batch = NewBatchUpdate(source, network)
		c.batches[key] = batch
	}

	batch.Add(eventCount)
}

// flushLoop runs in the background and flushes accumulated counts
// periodically, with a final flush on shutdown.
func (c *Collector) flushLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			c.flush()
			return
		case <-ticker.C:
			c.flush()
		}
	}
}

// flush writes all accumulated batches to Redis.
func (c *Collector) flush() {
	c.mu.Lock()
	// Swap out the batches map so we can release the lock quickly
	batches := c.batches
	c.batches = make(map[string]*BatchUpdate)
	c.mu.Unlock()

	if len(batches) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for key, batch := range batches {
		if err := c.client.FlushBatch(ctx, batch); err != nil {
			c.logger.Error("failed to flush delivery stats batch",
				"source", batch.Source,
				"network", batch.Network,
				"event_count", batch.EventCount,
				"error", err,
			)
			// Merge the failed batch back for the next attempt.
			c.mu.Lock()
			if existing, ok := c.batches[key]; ok {
				existing.EventCount += batch.EventCount
			} else {
				c.batches[key] = batch
			}
			c.mu.Unlock()
		}
	}
}

// Stop flushes remaining counts and halts the background loop.
func (c *Collector) Stop() {
	c.cancel()
	c.wg.Wait()
}
