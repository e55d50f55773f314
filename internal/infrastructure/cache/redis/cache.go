// Package redis caches startup data in front of the Postgres RPCs.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/babacardot/suparaise-sub001/internal/application/port/output"
	"github.com/babacardot/suparaise-sub001/internal/domain/entity"
	"github.com/babacardot/suparaise-sub001/internal/infrastructure/env"
)

const (
	PrefixStartup  = "startup:"
	PrefixSettings = "agent_settings:"

	DefaultTTL = 10 * time.Minute
)

var _ output.StartupDataPort = (*StartupCache)(nil)

// Observer receives cache hit and miss events.
type Observer interface {
	CacheHit()
	CacheMiss()
}

type nopObserver struct{}

func (nopObserver) CacheHit()  {}
func (nopObserver) CacheMiss() {}

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, cfg env.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return client, nil
}

// StartupCache is a read-through decorator over a StartupDataPort. Redis
// failures are logged and fall through to the underlying store.
type StartupCache struct {
	client   *redis.Client
	next     output.StartupDataPort
	ttl      time.Duration
	observer Observer
	logger   output.LoggerPort
}

func NewStartupCache(client *redis.Client, next output.StartupDataPort, ttl time.Duration, observer Observer, logger output.LoggerPort) *StartupCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &StartupCache{
		client:   client,
		next:     next,
		ttl:      ttl,
		observer: observer,
		logger:   logger,
	}
}

func (c *StartupCache) GetStartupProfile(ctx context.Context, userID, startupID string) (*entity.StartupProfile, error) {
	key := PrefixStartup + userID + ":" + startupID

	var profile entity.StartupProfile
	if c.get(ctx, key, &profile) {
		return &profile, nil
	}

	fresh, err := c.next.GetStartupProfile(ctx, userID, startupID)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, fresh)
	return fresh, nil
}

func (c *StartupCache) GetAgentSettings(ctx context.Context, userID string) (*entity.AgentSettings, error) {
	key := PrefixSettings + userID

	var settings entity.AgentSettings
	if c.get(ctx, key, &settings) {
		return &settings, nil
	}

	fresh, err := c.next.GetAgentSettings(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, fresh)
	return fresh, nil
}

// Invalidate drops every cached entry for a user's startup.
func (c *StartupCache) Invalidate(ctx context.Context, userID, startupID string) error {
	return c.client.Del(ctx, PrefixStartup+userID+":"+startupID, PrefixSettings+userID).Err()
}

func (c *StartupCache) get(ctx context.Context, key string, v any) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Cache read failed", "key", key, "error", err)
		}
		c.observer.CacheMiss()
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		c.logger.Warn("Dropping undecodable cache entry", "key", key, "error", err)
		_ = c.client.Del(ctx, key).Err()
		c.observer.CacheMiss()
		return false
	}

	c.observer.CacheHit()
	return true
}

func (c *StartupCache) set(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("Cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Cache write failed", "key", key, "error", err)
	}
}
