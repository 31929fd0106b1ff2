package repository

import (
	"context"
	"encoding/json"
	"time"

	"studyforge/internal/cache"
	"studyforge/internal/domain"
	"studyforge/internal/quizplay"

	"github.com/redis/go-redis/v9"
)

// RedisSessionStore keeps quiz playback sessions in Redis under a TTL.
// Sessions are ephemeral: when the TTL lapses the play-through is simply gone,
// matching the browser behavior of discarding state when the view closes.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore creates a session store with the given TTL.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return cache.GenerateCacheKey("quiz", "session", id)
}

// Save writes the session, refreshing its TTL.
func (s *RedisSessionStore) Save(ctx context.Context, session *quizplay.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return domain.NewInternalError("Failed to serialize session", err)
	}
	if err := s.client.Set(ctx, sessionKey(session.ID), payload, s.ttl).Err(); err != nil {
		return domain.NewInternalError("Failed to store session", err)
	}
	return nil
}

// Get loads a session by id.
func (s *RedisSessionStore) Get(ctx context.Context, id string) (*quizplay.Session, error) {
	payload, err := s.client.Get(ctx, sessionKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.NewSessionNotFoundError(id)
		}
		return nil, domain.NewInternalError("Failed to load session", err)
	}
	var session quizplay.Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, domain.NewInternalError("Failed to deserialize session", err)
	}
	return &session, nil
}

// Delete removes a session. Missing keys are not an error.
func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return domain.NewInternalError("Failed to delete session", err)
	}
	return nil
}
