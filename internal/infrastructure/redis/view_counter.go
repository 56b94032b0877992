package redisstore

import (
	"context"
	"fmt"
	"strconv"

	"autoelite/internal/application"
	infraconfig "autoelite/internal/infrastructure/config"

	"github.com/redis/go-redis/v9"
)

var _ application.ViewCounter = (*ViewCounter)(nil)

// ViewCounter buffers vehicle page views in one Redis hash so the API and
// the flusher process can run separately.
type ViewCounter struct {
	Client *redis.Client
	Key    string
}

func NewViewCounter(client *redis.Client) *ViewCounter {
	return &ViewCounter{Client: client, Key: infraconfig.ViewBufferKey}
}

func (c *ViewCounter) Incr(ctx context.Context, vehicleID string) error {
	if err := c.Client.HIncrBy(ctx, c.Key, vehicleID, 1).Err(); err != nil {
		return fmt.Errorf("redis hincrby: %w", err)
	}
	return nil
}

// Drain reads and deletes the hash in one MULTI block, so no increment is
// counted twice or lost between the read and the delete.
func (c *ViewCounter) Drain(ctx context.Context) (map[string]int64, error) {
	var all *redis.MapStringStringCmd
	_, err := c.Client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		all = p.HGetAll(ctx, c.Key)
		p.Del(ctx, c.Key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("redis drain views: %w", err)
	}
	out := make(map[string]int64, len(all.Val()))
	for id, raw := range all.Val() {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		out[id] = n
	}
	return out, nil
}
