// internal/outfit/orchestrator.go
package outfit

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "outfit-orchestrator/internal/common/errors"
	"outfit-orchestrator/internal/common/logger"
	"outfit-orchestrator/internal/common/metrics"
	"outfit-orchestrator/internal/generation"
	"outfit-orchestrator/internal/models"
	"outfit-orchestrator/internal/styling"
)

// WardrobeSource supplies the user's catalog for generation requests.
type WardrobeSource interface {
	Items(ctx context.Context, user models.User) ([]models.WardrobeItem, error)
}

// Generator produces an outfit from a generation request.
type Generator interface {
	Generate(ctx context.Context, req generation.Request) (*models.GeneratedOutfit, error)
}

// WeatherSource supplies current conditions for the user's location.
type WeatherSource interface {
	Current(ctx context.Context, location string) models.WeatherSnapshot
}

// Orchestrator coordinates the daily generation pipeline: weather in,
// style parameters derived, one generation per user per day, result cached.
type Orchestrator struct {
	weather  WeatherSource
	wardrobe WardrobeSource
	gen      Generator
	cache    *DailyCache
	latch    *GenerationLatch
	location string
	timeout  time.Duration
	log      logger.Logger
	clock    func() time.Time
}

func NewOrchestrator(
	weather WeatherSource,
	wardrobe WardrobeSource,
	gen Generator,
	cache *DailyCache,
	location string,
	timeout time.Duration,
	log logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		weather:  weather,
		wardrobe: wardrobe,
		gen:      gen,
		cache:    cache,
		latch:    NewGenerationLatch(),
		location: location,
		timeout:  timeout,
		log:      log,
		clock:    time.Now,
	}
}

// Today returns the cached outfit for the user's current day without
// triggering generation. Nil means nothing cached.
func (o *Orchestrator) Today(ctx context.Context, user models.User) *models.GeneratedOutfit {
	return o.cache.Read(ctx, user.ID, o.clock())
}

// GenerateDaily returns today's outfit for the user, generating it at most
// once per day. Cached usable entries are served directly; unusable entries
// are cleared and regenerated.
func (o *Orchestrator) GenerateDaily(ctx context.Context, user models.User) (*models.GeneratedOutfit, error) {
	if user.ID == "" {
		return nil, apperrors.NewPreconditionError("user id")
	}

	day := o.clock()

	if cached := o.cache.Read(ctx, user.ID, day); cached != nil {
		if IsUsable(cached) {
			return cached, nil
		}
		// A fallback or low-confidence entry blocks nothing: drop it and
		// let this request regenerate.
		metrics.CacheReads.WithLabelValues("unusable").Inc()
		if err := o.cache.Clear(ctx, user.ID, day); err != nil {
			o.log.Warn("failed to clear unusable cached outfit", map[string]interface{}{
				"user_id": user.ID,
				"error":   err.Error(),
			})
		}
		o.latch.Reset(user.ID, day)
	}

	if !o.latch.TryAcquire(user.ID, day) {
		// Someone else has this day. Either it finished between our read
		// and the acquire, or it is still running.
		if cached := o.cache.Read(ctx, user.ID, day); cached != nil {
			return cached, nil
		}
		if o.latch.State(user.ID, day) == LatchDone {
			// Done with nothing cached means the entry was discarded or
			// expired after completion. Reopen the day.
			o.latch.Reset(user.ID, day)
			if !o.latch.TryAcquire(user.ID, day) {
				metrics.GenerationAttempts.WithLabelValues("in_flight").Inc()
				return nil, apperrors.NewGenerationInFlightError(user.ID, day.UTC().Format("2006-01-02"))
			}
		} else {
			metrics.GenerationAttempts.WithLabelValues("in_flight").Inc()
			return nil, apperrors.NewGenerationInFlightError(user.ID, day.UTC().Format("2006-01-02"))
		}
	}

	outfit, err := o.generate(ctx, user, day)
	o.latch.Release(user.ID, day, err == nil)
	return outfit, err
}

// Regenerate discards today's cached outfit and runs a fresh generation.
func (o *Orchestrator) Regenerate(ctx context.Context, user models.User) (*models.GeneratedOutfit, error) {
	if user.ID == "" {
		return nil, apperrors.NewPreconditionError("user id")
	}

	day := o.clock()
	if err := o.cache.Clear(ctx, user.ID, day); err != nil {
		o.log.Warn("failed to clear cached outfit before regeneration", map[string]interface{}{
			"user_id": user.ID,
			"error":   err.Error(),
		})
	}
	o.latch.Reset(user.ID, day)

	return o.GenerateDaily(ctx, user)
}

// ClearToday removes the user's cached outfit and reopens the day's latch.
func (o *Orchestrator) ClearToday(ctx context.Context, user models.User) error {
	if user.ID == "" {
		return apperrors.NewPreconditionError("user id")
	}
	day := o.clock()
	if err := o.cache.Clear(ctx, user.ID, day); err != nil {
		return err
	}
	o.latch.Reset(user.ID, day)
	return nil
}

func (o *Orchestrator) generate(ctx context.Context, user models.User, day time.Time) (*models.GeneratedOutfit, error) {
	weather := o.weather.Current(ctx, o.location)
	params := styling.Derive(weather)

	items, err := o.wardrobe.Items(ctx, user)
	if err != nil {
		// Generation still proceeds; the service handles an empty catalog.
		o.log.Warn("wardrobe unavailable, generating without catalog", map[string]interface{}{
			"user_id": user.ID,
			"error":   err.Error(),
		})
		items = nil
	}

	genCtx := ctx
	if o.timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	start := o.clock()
	result, err := o.gen.Generate(genCtx, generation.Request{
		Occasion: params.Occasion,
		Style:    params.Style,
		Mood:     params.Mood,
		Weather:  weather,
		Wardrobe: items,
		Profile:  generation.RequestProfile{UserID: user.ID, Name: user.Name},
	})
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.GenerationAttempts.WithLabelValues("fallback").Inc()
		o.log.Error("generation failed, serving fallback outfit", map[string]interface{}{
			"user_id": user.ID,
			"code":    string(apperrors.CodeOf(err)),
			"error":   err.Error(),
		})
		result = o.fallbackOutfit(weather, day)
	} else {
		metrics.GenerationAttempts.WithLabelValues("success").Inc()
		o.finalize(result, weather, day)
	}

	if err := o.cache.Write(ctx, user.ID, day, result); err != nil {
		// The user still gets an outfit; only the dedup guarantee weakens.
		o.log.Error("failed to cache generated outfit", map[string]interface{}{
			"user_id": user.ID,
			"error":   err.Error(),
		})
	}

	return result, nil
}

func (o *Orchestrator) finalize(outfit *models.GeneratedOutfit, weather models.WeatherSnapshot, day time.Time) {
	if outfit.ID == "" {
		outfit.ID = uuid.NewString()
	}
	if outfit.Confidence < 0 {
		outfit.Confidence = 0
	} else if outfit.Confidence > 1 {
		outfit.Confidence = 1
	}
	outfit.Weather = weather
	outfit.GeneratedAt = day.UTC()
}

// fallbackOutfit is the placeholder served when the generation service is
// unreachable. It is cached like any result but never treated as usable,
// so the next read retries.
func (o *Orchestrator) fallbackOutfit(weather models.WeatherSnapshot, day time.Time) *models.GeneratedOutfit {
	return &models.GeneratedOutfit{
		ID:          uuid.NewString(),
		Name:        "Everyday Essentials",
		Items:       nil,
		Weather:     weather,
		Reasoning:   "The styling service is temporarily unavailable. Here is a safe everyday look until a personalized recommendation can be generated.",
		Confidence:  0.5,
		GeneratedAt: day.UTC(),
		IsFallback:  true,
	}
}
