// Package stats provides Redis-backed per-source delivery counters.
//
// Designed for multiple forwarder instances writing concurrently.
// Counters are read by dashboards to spot sources that went quiet.
//
// Redis Key Structure:
//
//	beacon:stats:{source}:{network}               - Hash with current stats
//	beacon:hourly:{source}:{network}:{YYYYMMDDHH} - Event count for hour (expires 48h)
//	beacon:daily:{source}:{network}:{YYYYMMDD}    - Event count for day (expires 7d)
package stats

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// BatchUpdate accumulates delivery counts for one source between
// flushes.
type BatchUpdate struct {
	Source     string
	Network    string
	EventCount int64
}

// NewBatchUpdate creates an empty batch for a source.
func NewBatchUpdate(source, network string) *BatchUpdate {
	return &BatchUpdate{Source: source, Network: network}
}

// Add accumulates delivered events into the batch.
func (b *BatchUpdate) Add(eventCount int64) {
	b.EventCount += eventCount
}

// Client provides methods to record per-source delivery statistics.
type Client struct {
	redis *redis.Client
}

// NewClient creates a stats client from a Redis URL and verifies the
// connection.
func NewClient(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &Client{redis: client}, nil
}

// NewClientFromRedis creates a client from an existing Redis connection.
func NewClientFromRedis(client *redis.Client) *Client {
	return &Client{redis: client}
}

// FlushBatch writes one accumulated batch with a single pipeline
// round trip.
func (c *Client) FlushBatch(ctx context.Context, batch *BatchUpdate) error {
	if batch.EventCount == 0 {
		return nil
	}

	now := time.Now()
	hourKey := now.Format("2006010215") // YYYYMMDDHH
	dayKey := now.Format("20060102")    // YYYYMMDD
	key := batch.Source + ":" + batch.Network

	pipe := c.redis.Pipeline()

	statsKey := fmt.Sprintf("beacon:stats:%s", key)
	pipe.HSet(ctx, statsKey, "last_event_at", strconv.FormatInt(now.Unix(), 10))
	pipe.HIncrBy(ctx, statsKey, "total_events", batch.EventCount)

	hourlyKey := fmt.Sprintf("beacon:hourly:%s:%s", key, hourKey)
	pipe.IncrBy(ctx, hourlyKey, batch.EventCount)
	pipe.Expire(ctx, hourlyKey, 48*time.Hour)

	dailyKey := fmt.Sprintf("beacon:daily:%s:%s", key, dayKey)
	pipe.IncrBy(ctx, dailyKey, batch.EventCount)
	pipe.Expire(ctx, dailyKey, 7*24*time.Hour)

	_, err := pipe.Exec(ctx)
	return err
}

// Stats is the current counter snapshot for one source.
type Stats struct {
	Source      string     `json:"source"`
	Network     string     `json:"network"`
	LastEventAt *time.Time `json:"last_event_at,omitempty"`
	TotalEvents int64      `json:"total_events"`
}

// GetStats reads the counter hash for a source.
func (c *Client) GetStats(ctx context.Context, source, network string) (*Stats, error) {
	statsKey := fmt.Sprintf("beacon:stats:%s:%s", source, network)

	values, err := c.redis.HGetAll(ctx, statsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("read stats: %w", err)
	}

	s := &Stats{Source: source, Network: network}
	if v, ok := values["total_events"]; ok {
		s.TotalEvents, _ = strconv.ParseInt(v, 10, 64)
	}
	if v, ok := values["last_event_at"]; ok {
		if unix, err := strconv.ParseInt(v, 10, 64); err == nil {
			t := time.Unix(unix, 0)
			s.LastEventAt = &t
		}
	}
	return s, nil
}

// Close releases the Redis connection.
func (c *Client) Close() error {
	return c.redis.Close()
}
