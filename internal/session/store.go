package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// Store persists sessions keyed by session id. Get returns found=false for
// unknown or expired ids; callers start a fresh session in that case.
type Store interface {
	Get(ctx context.Context, sessionID string) (*Session, bool, error)
	Save(ctx context.Context, sessionID string, s *Session) error
	Delete(ctx context.Context, sessionID string) error
}

type RedisStore struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewRedisStore(client *redisv9.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*Session, bool, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get session failed: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return nil, false, fmt.Errorf("unmarshal session failed: %w", err)
	}
	return &sess, true, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, sess *Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session failed: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sessionID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete session failed: %w", err)
	}
	return nil
}

func (s *RedisStore) key(sessionID string) string {
	return "docchat:session:" + sessionID
}
