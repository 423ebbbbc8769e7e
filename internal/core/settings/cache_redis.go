// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

package settings

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/gazetapress/gazeta/internal/platform/constants"
)

// # Redis Read-Through Cache

// cachedStore decorates a [Store] with a Redis read-through cache.
//
// The full key/value map is cached under a single key: the settings table
// holds a handful of rows and the public site reads them on every render,
// so one round trip beats per-key caching. Writes invalidate immediately;
// the TTL only bounds staleness across instances.
type cachedStore struct {
	inner  Store
	client *redis.Client
	logger *slog.Logger
}

// NewCachedStore wraps a settings store with a Redis cache.
func NewCachedStore(inner Store, client *redis.Client, logger *slog.Logger) Store {
	return &cachedStore{inner: inner, client: client, logger: logger}
}

// cacheKey is the single Redis key holding the serialized settings map.
const cacheKey = constants.RedisPrefixSetting + "all"

func (store *cachedStore) Get(context context.Context, key string) (*Setting, error) {
	// Single-key reads bypass the cache; only admin tooling uses them and
	// it wants the authoritative row with its timestamp.
	return store.inner.Get(context, key)
}

func (store *cachedStore) All(context context.Context) (map[string]string, error) {
	if values, ok := store.cached(context); ok {
		return values, nil
	}

	values, err := store.inner.All(context)
	if err != nil {
		return nil, err
	}

	store.fill(context, values)
	return values, nil
}

func (store *cachedStore) Upsert(context context.Context, key, value string) error {
	if err := store.inner.Upsert(context, key, value); err != nil {
		return err
	}

	// Invalidation failure is survivable: the TTL caps how long stale
	// values live, so log and move on.
	if err := store.client.Del(context, cacheKey).Err(); err != nil {
		store.logger.Warn("settings_cache_invalidate_failed", slog.Any("error", err))
	}
	return nil
}

// cached attempts a cache read; any failure counts as a miss.
func (store *cachedStore) cached(context context.Context) (map[string]string, bool) {
	payload, err := store.client.Get(context, cacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			store.logger.Warn("settings_cache_read_failed", slog.Any("error", err))
		}
		return nil, false
	}

	var values map[string]string
	if err := json.Unmarshal(payload, &values); err != nil {
		store.logger.Warn("settings_cache_decode_failed", slog.Any("error", err))
		return nil, false
	}
	return values, true
}

// fill writes the settings map into the cache, best-effort.
func (store *cachedStore) fill(context context.Context, values map[string]string) {
	payload, err := json.Marshal(values)
	if err != nil {
		return
	}
	if err := store.client.Set(context, cacheKey, payload, constants.SettingCacheTTL).Err(); err != nil {
		store.logger.Warn("settings_cache_fill_failed", slog.Any("error", err))
	}
}
