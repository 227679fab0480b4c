// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/ibis/internal/platform/apperr"
	"github.com/taibuivan/ibis/internal/platform/constants"
)

// # Session Repository

// RedisSessionRepository implements [SessionRepository] using Redis.
//
// Each session is a JSON value under RedisPrefixSession+hash with the
// session's remaining lifetime as TTL. A per-user set indexes the hashes so
// all sessions of a user can be revoked at once.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a Redis-backed [SessionRepository].
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func sessionKey(tokenHash string) string {
	return constants.RedisPrefixSession + tokenHash
}

func userSessionsKey(userID string) string {
	return constants.RedisPrefixUserSessions + userID
}

/*
Create stores the session with a TTL matching its expiry.

Returns:
  - error: Serialization or Redis failures
*/
func (repository *RedisSessionRepository) Create(ctx context.Context, session *Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("redis_session_create_failed: session already expired")
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_session_marshal_failed: %w", err)
	}

	_, err = repository.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, sessionKey(session.TokenHash), payload, ttl)
		pipe.SAdd(ctx, userSessionsKey(session.UserID), session.TokenHash)
		pipe.Expire(ctx, userSessionsKey(session.UserID), RefreshTokenTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_session_create_failed: %w", err)
	}

	return nil
}

/*
FindByTokenHash returns the session stored under tokenHash.

Returns:
  - *Session: Hydrated session
  - error: apperr.NotFound if absent or expired, or connectivity errors
*/
func (repository *RedisSessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*Session, error) {
	payload, err := repository.client.Get(ctx, sessionKey(tokenHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("redis_session_unmarshal_failed: %w", err)
	}
	session.TokenHash = tokenHash

	return session, nil
}

// Revoke implements [SessionRepository].
func (repository *RedisSessionRepository) Revoke(ctx context.Context, session *Session) error {
	_, err := repository.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, sessionKey(session.TokenHash))
		pipe.SRem(ctx, userSessionsKey(session.UserID), session.TokenHash)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_session_revoke_failed: %w", err)
	}
	return nil
}

// RevokeAll implements [SessionRepository].
func (repository *RedisSessionRepository) RevokeAll(ctx context.Context, userID string) error {
	hashes, err := repository.client.SMembers(ctx, userSessionsKey(userID)).Result()
	if err != nil {
		return fmt.Errorf("redis_session_list_failed: %w", err)
	}

	keys := make([]string, 0, len(hashes)+1)
	for _, hash := range hashes {
		keys = append(keys, sessionKey(hash))
	}
	keys = append(keys, userSessionsKey(userID))

	if err := repository.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis_session_revoke_all_failed: %w", err)
	}
	return nil
}
