// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

package viewer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/gazetapress/gazeta/internal/platform/apperr"
	"github.com/gazetapress/gazeta/internal/platform/constants"
)

// # Redis Session Store

// redisStore implements [Store] on Redis with a per-session TTL.
type redisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed viewer session store.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

// sessionKey builds the namespaced Redis key for a session.
func sessionKey(id string) string {
	return constants.RedisPrefixViewerSession + id
}

/*
Save upserts a session as JSON, refreshing its TTL.

Description: Every applied event re-saves the session, so the TTL acts as
an idle timeout rather than an absolute lifetime.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Serialization or connectivity failures
*/
func (store *redisStore) Save(context context.Context, session *Session) error {

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("viewer: failed to marshal session: %w", err)
	}

	if err := store.client.Set(context, sessionKey(session.ID), payload, constants.ViewerSessionTTL).Err(); err != nil {
		return fmt.Errorf("redis_viewer_session_save_failed: %w", err)
	}

	return nil
}

/*
Find returns the session with the given ID.

Description: Returns apperr.NotFound when the session is absent or its
idle TTL elapsed.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Session: Hydrated session state
  - error: apperr.NotFound or connectivity errors
*/
func (store *redisStore) Find(context context.Context, id string) (*Session, error) {

	payload, err := store.client.Get(context, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Viewer session")
		}
		return nil, fmt.Errorf("redis_viewer_session_get_failed: %w", err)
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("viewer: failed to unmarshal session: %w", err)
	}

	return &session, nil
}

/*
Delete removes a session.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - error: Connectivity failures
*/
func (store *redisStore) Delete(context context.Context, id string) error {

	if err := store.client.Del(context, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redis_viewer_session_delete_failed: %w", err)
	}

	return nil
}
