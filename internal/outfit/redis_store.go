// internal/outfit/redis_store.go
package outfit

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"outfit-orchestrator/internal/common/database"
	apperrors "outfit-orchestrator/internal/common/errors"
	"outfit-orchestrator/internal/models"
)

// RedisStore persists outfits in Redis as JSON blobs.
type RedisStore struct {
	db *database.RedisClient
}

func NewRedisStore(db *database.RedisClient) *RedisStore {
	return &RedisStore{db: db}
}

func (s *RedisStore) Get(ctx context.Context, key string) (*models.GeneratedOutfit, error) {
	raw, err := s.db.Get(ctx, key)
	if err != nil {
		if err == goredis.Nil {
			return nil, ErrNotFound
		}
		return nil, apperrors.NewCacheUnavailableError(err)
	}

	var outfit models.GeneratedOutfit
	if err := json.Unmarshal([]byte(raw), &outfit); err != nil {
		// A corrupt entry is unrecoverable; drop it so the next read regenerates.
		_ = s.db.Del(ctx, key)
		return nil, ErrNotFound
	}
	return &outfit, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, outfit *models.GeneratedOutfit, ttl time.Duration) error {
	raw, err := json.Marshal(outfit)
	if err != nil {
		return apperrors.NewCacheUnavailableError(err)
	}
	if err := s.db.Set(ctx, key, raw, ttl); err != nil {
		return apperrors.NewCacheUnavailableError(err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, key string) error {
	if err := s.db.Del(ctx, key); err != nil {
		return apperrors.NewCacheUnavailableError(err)
	}
	return nil
}
