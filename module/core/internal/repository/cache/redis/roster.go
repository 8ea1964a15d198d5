package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jschady/geodorm/module/core/domain"
	"github.com/jschady/geodorm/module/core/internal/repository/cache"
)

var _ cache.RosterCache = (*RosterCache)(nil)

const rosterKey = "presence:roster"

type RosterCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRosterCache(client *redis.Client, ttl time.Duration) *RosterCache {
	return &RosterCache{client: client, ttl: ttl}
}

func (c *RosterCache) GetRoster(ctx context.Context) ([]domain.MemberStatus, error) {
	raw, err := c.client.Get(ctx, rosterKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, cache.ErrMiss
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var roster []domain.MemberStatus
	if err := json.Unmarshal(raw, &roster); err != nil {
		// stale or corrupt snapshot, treat as a miss
		return nil, cache.ErrMiss
	}
	return roster, nil
}

func (c *RosterCache) SetRoster(ctx context.Context, roster []domain.MemberStatus) error {
	raw, err := json.Marshal(roster)
	if err != nil {
		return fmt.Errorf("marshal roster: %w", err)
	}
	if err := c.client.Set(ctx, rosterKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RosterCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, rosterKey).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
