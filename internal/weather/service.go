// internal/weather/service.go
package weather

import (
	"context"
	"sync"
	"time"

	"outfit-orchestrator/internal/common/logger"
	"outfit-orchestrator/internal/models"
)

// Service wraps a Provider so callers always get a usable snapshot. A
// provider failure yields the last good reading marked stale, or a
// deterministic fallback snapshot when no reading exists yet.
type Service struct {
	provider   Provider
	staleAfter time.Duration
	log        logger.Logger
	clock      func() time.Time

	mu       sync.RWMutex
	lastGood map[string]models.WeatherSnapshot
}

func NewService(provider Provider, staleAfter time.Duration, log logger.Logger) *Service {
	return &Service{
		provider:   provider,
		staleAfter: staleAfter,
		log:        log.WithFields(map[string]interface{}{"component": "weather"}),
		clock:      func() time.Time { return time.Now().UTC() },
		lastGood:   make(map[string]models.WeatherSnapshot),
	}
}

// Current never returns an error: failures degrade to a stale or fallback
// snapshot so downstream generation always has weather to work with.
func (s *Service) Current(ctx context.Context, location string) models.WeatherSnapshot {
	snap, err := s.provider.FetchByLocation(ctx, location)
	if err == nil {
		s.mu.Lock()
		s.lastGood[location] = snap
		s.mu.Unlock()
		return snap
	}

	s.log.Warn("weather fetch failed, degrading", map[string]interface{}{
		"location": location,
		"error":    err.Error(),
	})

	s.mu.RLock()
	prev, ok := s.lastGood[location]
	s.mu.RUnlock()

	if ok {
		prev.IsStale = s.clock().Sub(prev.FetchedAt) > s.staleAfter
		return prev
	}

	return FallbackSnapshot(location, s.clock())
}

// FallbackSnapshot is the deterministic snapshot used when no reading has
// ever succeeded for a location.
func FallbackSnapshot(location string, now time.Time) models.WeatherSnapshot {
	return models.WeatherSnapshot{
		Temperature: 70,
		Condition:   "Clear",
		Humidity:    50,
		WindSpeed:   5,
		Location:    location,
		IsFallback:  true,
		FetchedAt:   now,
	}
}
