package assistant

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const chatContextPrefix = "chat:ctx:"

// maxStoredTurns bounds the rolling history fed back into classifier prompts.
const maxStoredTurns = 20

// ContextStore keeps the rolling conversation history per session so a
// caller that sends no history still gets pronoun and subject resolution.
type ContextStore interface {
	History(ctx context.Context, sessionID string) ([]Turn, error)
	Append(ctx context.Context, sessionID string, turns []Turn) error
	Clear(ctx context.Context, sessionID string) error
}

// RedisContextStore is the ContextStore over redis with a TTL per session.
type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl}
}

func (s *RedisContextStore) History(ctx context.Context, sessionID string) ([]Turn, error) {
	data, err := s.client.Get(ctx, chatContextPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var turns []Turn
	if err := json.Unmarshal([]byte(data), &turns); err != nil {
		return nil, err
	}
	return turns, nil
}

func (s *RedisContextStore) Append(ctx context.Context, sessionID string, turns []Turn) error {
	existing, err := s.History(ctx, sessionID)
	if err != nil {
		return err
	}
	merged := append(existing, turns...)
	if len(merged) > maxStoredTurns {
		merged = merged[len(merged)-maxStoredTurns:]
	}
	b, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, chatContextPrefix+sessionID, b, s.ttl).Err()
}

func (s *RedisContextStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, chatContextPrefix+sessionID).Err()
}
