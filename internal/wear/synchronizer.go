// internal/wear/synchronizer.go
package wear

import (
	"context"
	"time"

	apperrors "outfit-orchestrator/internal/common/errors"
	"outfit-orchestrator/internal/common/logger"
	"outfit-orchestrator/internal/common/metrics"
	"outfit-orchestrator/internal/events"
	"outfit-orchestrator/internal/models"
	"outfit-orchestrator/internal/outfit"
	"outfit-orchestrator/internal/styling"
)

// Synchronizer transitions today's outfit to worn. The remote tracker is
// the source of truth: the cached copy is only mutated after the tracker
// accepts the record.
type Synchronizer struct {
	cache            *outfit.DailyCache
	tracker          Tracker
	bus              *events.Bus
	rebroadcastDelay time.Duration
	log              logger.Logger
	clock            func() time.Time
	afterFunc        func(time.Duration, func()) *time.Timer
}

func NewSynchronizer(
	cache *outfit.DailyCache,
	tracker Tracker,
	bus *events.Bus,
	rebroadcastDelay time.Duration,
	log logger.Logger,
) *Synchronizer {
	return &Synchronizer{
		cache:            cache,
		tracker:          tracker,
		bus:              bus,
		rebroadcastDelay: rebroadcastDelay,
		log:              log,
		clock:            time.Now,
		afterFunc:        time.AfterFunc,
	}
}

// MarkWorn records that the user wore today's outfit. Calling it again for
// an already worn outfit is a no-op.
func (s *Synchronizer) MarkWorn(ctx context.Context, user models.User, notes string, tags []string) (*models.GeneratedOutfit, error) {
	if user.ID == "" {
		return nil, apperrors.NewPreconditionError("user id")
	}

	now := s.clock()
	cached := s.cache.Read(ctx, user.ID, now)
	if cached == nil {
		metrics.WearTransitions.WithLabelValues("not_found").Inc()
		return nil, apperrors.NewOutfitNotFoundError(user.ID, now.UTC().Format("2006-01-02"))
	}

	if cached.IsWorn {
		metrics.WearTransitions.WithLabelValues("noop").Inc()
		return cached, nil
	}

	// Weather is stamped on the entry at generation time, so the record
	// carries the same parameters the outfit was generated under.
	params := styling.Derive(cached.Weather)
	record := Record{
		OutfitID:  cached.ID,
		Items:     cached.Items,
		Timestamp: now.UTC(),
		Occasion:  string(params.Occasion),
		Mood:      string(params.Mood),
		Weather:   cached.Weather,
		Notes:     notes,
		Tags:      tags,
	}
	if err := s.tracker.Track(ctx, user, record); err != nil {
		metrics.WearTransitions.WithLabelValues("failed").Inc()
		s.log.Error("wear tracking rejected record, cache left untouched", map[string]interface{}{
			"user_id":   user.ID,
			"outfit_id": cached.ID,
			"error":     err.Error(),
		})
		return nil, err
	}

	wornAt := now.UTC()
	cached.IsWorn = true
	cached.WornAt = &wornAt
	if err := s.cache.Write(ctx, user.ID, now, cached); err != nil {
		// The record landed; the stale cached flag self-heals on expiry.
		s.log.Warn("failed to persist worn flag to cache", map[string]interface{}{
			"user_id":   user.ID,
			"outfit_id": cached.ID,
			"error":     err.Error(),
		})
	}

	metrics.WearTransitions.WithLabelValues("worn").Inc()

	event := events.OutfitWornEvent{
		OutfitID:   cached.ID,
		OutfitName: cached.Name,
		Timestamp:  wornAt,
	}
	s.bus.Publish(event)

	// Downstream aggregations read eventually consistent stores; a delayed
	// rebroadcast with ForceFresh settles listeners that refreshed too early.
	if s.rebroadcastDelay > 0 {
		s.afterFunc(s.rebroadcastDelay, func() {
			event.ForceFresh = true
			s.bus.Publish(event)
		})
	}

	return cached, nil
}
