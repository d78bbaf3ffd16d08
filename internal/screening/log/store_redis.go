package log

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Sorted-set index scored by event timestamp; members are event JSON.
	redisLogKey = "screening:log"
)

// Redis is a redis-backed screening-log store with time-based retention.
// Events older than the retention window are trimmed on every append, so
// the set never accumulates beyond the configured horizon. Recommended for
// deployments with more than one instance.
type Redis struct {
	client    *redis.Client
	retention time.Duration
}

// NewRedis constructs a redis screening-log store. retention bounds how
// long events stay queryable.
func NewRedis(client *redis.Client, retention time.Duration) *Redis {
	return &Redis{client: client, retention: retention}
}

func (s *Redis) Append(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal screening-log event: %w", err)
	}

	cutoff := event.Timestamp.Add(-s.retention).UnixMilli()

	pipe := s.client.Pipeline()
	pipe.ZAdd(ctx, redisLogKey, redis.Z{
		Score:  float64(event.Timestamp.UnixMilli()),
		Member: payload,
	})
	pipe.ZRemRangeByScore(ctx, redisLogKey, "-inf", strconv.FormatInt(cutoff, 10))
	pipe.Expire(ctx, redisLogKey, s.retention)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append screening-log event: %w", err)
	}
	return nil
}

func (s *Redis) ListRecent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 100
	}

	members, err := s.client.ZRevRange(ctx, redisLogKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("list screening-log events: %w", err)
	}

	events := make([]Event, 0, len(members))
	for _, member := range members {
		var event Event
		if err := json.Unmarshal([]byte(member), &event); err != nil {
			return nil, fmt.Errorf("decode screening-log event: %w", err)
		}
		events = append(events, event)
	}
	return events, nil
}
