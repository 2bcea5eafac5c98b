package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// DedupeTTL bounds how long a dedupe marker lives. Long enough to cover any
// realistic retry window for a single reschedule event.
const DedupeTTL = 14 * 24 * time.Hour

// RedisDeduper implements Deduper with SETNX markers.
type RedisDeduper struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisDeduper(client *redis.Client) *RedisDeduper {
	return &RedisDeduper{Client: client, TTL: DedupeTTL}
}

// MarkOnce sets the marker if absent. Reports true only for the call that
// created it.
func (d *RedisDeduper) MarkOnce(ctx context.Context, key string) (bool, error) {
	ok, err := d.Client.SetNX(ctx, key, 1, d.TTL).Result()
	if err != nil {
		return false, fmt.Errorf("dedupe marker %s: %w", key, err)
	}
	return ok, nil
}
