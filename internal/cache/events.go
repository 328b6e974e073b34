// Package cache backs the public event pages with a redis
// read-through cache keyed by slug.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/confmed/icms-api/internal/domain"
)

const eventKeyPrefix = "event:"

type EventCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewEventCache(client *redis.Client, ttl time.Duration) *EventCache {
	return &EventCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *EventCache) GetAggregate(ctx context.Context, slug string) (domain.EventAggregate, error) {
	data, err := c.client.Get(ctx, eventKeyPrefix+slug).Result()
	if err != nil {
		return domain.EventAggregate{}, err
	}

	var aggregate domain.EventAggregate
	if err := json.Unmarshal([]byte(data), &aggregate); err != nil {
		return domain.EventAggregate{}, err
	}

	return aggregate, nil
}

func (c *EventCache) SetAggregate(ctx context.Context, slug string, aggregate domain.EventAggregate) error {
	data, err := json.Marshal(aggregate)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, eventKeyPrefix+slug, data, c.ttl).Err()
}

func (c *EventCache) Invalidate(ctx context.Context, slug string) error {
	return c.client.Del(ctx, eventKeyPrefix+slug).Err()
}
