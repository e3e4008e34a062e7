// internal/outfit/store.go
package outfit

import (
	"context"
	"errors"
	"time"

	"outfit-orchestrator/internal/models"
)

// ErrNotFound is returned by stores when no entry exists for a key.
var ErrNotFound = errors.New("outfit: entry not found")

// Store persists generated outfits keyed by cache key.
type Store interface {
	Get(ctx context.Context, key string) (*models.GeneratedOutfit, error)
	Set(ctx context.Context, key string, outfit *models.GeneratedOutfit, ttl time.Duration) error
	Clear(ctx context.Context, key string) error
}
