package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Witch19/rrhh-console/internal/core/ports"
)

const keyPrefix = "rrhh:session"

// sessionKeys are the entries of one session; their expiries move together.
var sessionKeys = []string{ports.KeyToken, ports.KeyUser}

// CredentialStore keeps session credentials in Redis.
// Key format: rrhh:session:<session_id>:<key>
//
// Every Put refreshes the expiry of the written keys and every Get that of
// both session keys, so a session disappears after ttl without traffic.
type CredentialStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCredentialStore wraps client. A zero ttl keeps keys forever.
func NewCredentialStore(client *redis.Client, ttl time.Duration) *CredentialStore {
	return &CredentialStore{client: client, ttl: ttl}
}

// Open returns the view of one session.
func (s *CredentialStore) Open(sessionID string) ports.CredentialStore {
	return &sessionStore{parent: s, sessionID: sessionID}
}

// Ping checks the connection.
func (s *CredentialStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func sessionKey(sessionID, key string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, sessionID, key)
}

type sessionStore struct {
	parent    *CredentialStore
	sessionID string
}

// Get reads one entry. With a ttl set, the read also pushes back the expiry
// of the session's keys in the same MULTI/EXEC block.
func (s *sessionStore) Get(ctx context.Context, key string) (string, bool, error) {
	k := sessionKey(s.sessionID, key)
	ttl := s.parent.ttl

	var get *redis.StringCmd
	if ttl <= 0 {
		get = s.parent.client.Get(ctx, k)
	} else {
		_, err := s.parent.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			get = pipe.GetEx(ctx, k, ttl)
			for _, sibling := range sessionKeys {
				if sibling != key {
					pipe.Expire(ctx, sessionKey(s.sessionID, sibling), ttl)
				}
			}
			return nil
		})
		if err != nil && !errors.Is(err, redis.Nil) {
			return "", false, fmt.Errorf("redis get %s: %w", key, err)
		}
	}

	v, err := get.Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

// Put writes all entries in one MULTI/EXEC block.
func (s *sessionStore) Put(ctx context.Context, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}
	_, err := s.parent.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range entries {
			pipe.Set(ctx, sessionKey(s.sessionID, k), v, s.parent.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis put session: %w", err)
	}
	return nil
}

func (s *sessionStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = sessionKey(s.sessionID, k)
	}
	if err := s.parent.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}
