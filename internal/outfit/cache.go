// internal/outfit/cache.go
package outfit

import (
	"context"
	"fmt"
	"time"

	apperrors "outfit-orchestrator/internal/common/errors"
	"outfit-orchestrator/internal/common/logger"
	"outfit-orchestrator/internal/common/metrics"
	"outfit-orchestrator/internal/models"
)

// MinUsableConfidence is the floor below which a cached outfit is
// regenerated instead of served.
const MinUsableConfidence = 0.3

// DailyCache stores at most one outfit per user per calendar day.
type DailyCache struct {
	store Store
	ttl   time.Duration
	log   logger.Logger
	clock func() time.Time
}

func NewDailyCache(store Store, ttl time.Duration, log logger.Logger) *DailyCache {
	return &DailyCache{
		store: store,
		ttl:   ttl,
		log:   log,
		clock: time.Now,
	}
}

// Key returns the cache key for one owner and day.
func Key(ownerID string, day time.Time) string {
	return fmt.Sprintf("outfit:daily:%s:%s", ownerID, day.UTC().Format("2006-01-02"))
}

// Read returns today's outfit for ownerID, or nil when absent. An entry
// stamped with a different owner is treated as poisoned: it is deleted and
// the read reports a miss.
func (c *DailyCache) Read(ctx context.Context, ownerID string, day time.Time) *models.GeneratedOutfit {
	key := Key(ownerID, day)
	entry, err := c.store.Get(ctx, key)
	if err != nil {
		if err == ErrNotFound {
			metrics.CacheReads.WithLabelValues("miss").Inc()
		} else {
			metrics.CacheReads.WithLabelValues("corrupt").Inc()
			c.log.Warn("outfit cache read failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return nil
	}

	if entry.OwnerID != "" && entry.OwnerID != ownerID {
		metrics.CacheReads.WithLabelValues("ownership_discard").Inc()
		mismatch := apperrors.NewOwnershipMismatchError(entry.OwnerID, ownerID)
		c.log.Warn("discarding cached outfit with mismatched owner", map[string]interface{}{
			"key":     key,
			"code":    string(apperrors.CodeOf(mismatch)),
			"error":   mismatch.Error(),
			"details": mismatch.Details,
		})
		_ = c.store.Clear(ctx, key)
		return nil
	}

	metrics.CacheReads.WithLabelValues("hit").Inc()
	return entry
}

// Write stores the outfit under the owner's key for the given day, stamping
// the owner on the entry so later reads can validate it.
func (c *DailyCache) Write(ctx context.Context, ownerID string, day time.Time, outfit *models.GeneratedOutfit) error {
	outfit.OwnerID = ownerID
	return c.store.Set(ctx, Key(ownerID, day), outfit, c.ttl)
}

// Clear removes the entry for one owner and day.
func (c *DailyCache) Clear(ctx context.Context, ownerID string, day time.Time) error {
	return c.store.Clear(ctx, Key(ownerID, day))
}

// IsUsable reports whether a cached outfit can be served as-is. Fallback
// placeholders and low-confidence results are regenerated on the next read.
func IsUsable(o *models.GeneratedOutfit) bool {
	if o == nil {
		return false
	}
	if len(o.Items) == 0 {
		return false
	}
	if o.IsFallback {
		return false
	}
	return o.Confidence >= MinUsableConfidence
}
