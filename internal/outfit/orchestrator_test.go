// internal/outfit/orchestrator_test.go
package outfit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "outfit-orchestrator/internal/common/errors"
	"outfit-orchestrator/internal/common/logger"
	"outfit-orchestrator/internal/generation"
	"outfit-orchestrator/internal/models"
	"outfit-orchestrator/internal/styling"
)

type stubWeather struct {
	snapshot models.WeatherSnapshot
}

func (s *stubWeather) Current(context.Context, string) models.WeatherSnapshot {
	return s.snapshot
}

type stubWardrobe struct {
	items []models.WardrobeItem
	err   error
	calls int
}

func (s *stubWardrobe) Items(context.Context, models.User) ([]models.WardrobeItem, error) {
	s.calls++
	return s.items, s.err
}

type stubGenerator struct {
	mu      sync.Mutex
	calls   int
	lastReq generation.Request
	result  *models.GeneratedOutfit
	err     error
}

func (s *stubGenerator) Generate(_ context.Context, req generation.Request) (*models.GeneratedOutfit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	out := *s.result
	return &out, nil
}

func (s *stubGenerator) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func generatedOutfit() *models.GeneratedOutfit {
	return &models.GeneratedOutfit{
		Name: "Crisp Morning Layers",
		Items: []models.OutfitItem{
			{ID: "item-1", Name: "Wool Coat", Type: "Outerwear", Color: "Camel"},
			{ID: "item-2", Name: "Dark Jeans", Type: "Bottoms", Color: "Indigo"},
		},
		Reasoning:  "Warm layers for a cold clear day",
		Confidence: 0.9,
	}
}

func newTestOrchestrator(t *testing.T, gen Generator, wardrobe WardrobeSource) *Orchestrator {
	t.Helper()
	cache := NewDailyCache(NewMemoryStore(), 48*time.Hour, logger.NewTestLogger(t))
	weather := &stubWeather{snapshot: models.WeatherSnapshot{
		Temperature: 38,
		Condition:   "Clear",
		Location:    "Seattle",
	}}
	return NewOrchestrator(weather, wardrobe, gen, cache, "Seattle", 0, logger.NewTestLogger(t))
}

func TestGenerateDailyCachesFirstResult(t *testing.T) {
	gen := &stubGenerator{result: generatedOutfit()}
	wardrobe := &stubWardrobe{items: []models.WardrobeItem{{ID: "item-1", Name: "Wool Coat", Type: "Outerwear"}}}
	orch := newTestOrchestrator(t, gen, wardrobe)
	ctx := context.Background()
	user := models.User{ID: "user-1", Name: "Riley"}

	first, err := orch.GenerateDaily(ctx, user)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "user-1", first.OwnerID)

	second, err := orch.GenerateDaily(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, gen.callCount(), "second call must be served from cache")
}

func TestGenerateDailyDerivesStyleFromWeather(t *testing.T) {
	gen := &stubGenerator{result: generatedOutfit()}
	orch := newTestOrchestrator(t, gen, &stubWardrobe{})

	_, err := orch.GenerateDaily(context.Background(), models.User{ID: "user-1"})
	require.NoError(t, err)

	// 38F and clear maps to the cold bucket.
	assert.Equal(t, styling.OccasionCasual, gen.lastReq.Occasion)
	assert.Equal(t, styling.StyleStreetwear, gen.lastReq.Style)
	assert.Equal(t, styling.MoodConfident, gen.lastReq.Mood)
	assert.Equal(t, "Seattle", gen.lastReq.Weather.Location)
}

func TestGenerateDailyEmptyUserID(t *testing.T) {
	gen := &stubGenerator{result: generatedOutfit()}
	orch := newTestOrchestrator(t, gen, &stubWardrobe{})

	out, err := orch.GenerateDaily(context.Background(), models.User{})
	assert.Nil(t, out)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodePreconditionFailed))
	assert.Equal(t, 0, gen.callCount())
}

func TestGenerateDailyWardrobeFailureIsNonFatal(t *testing.T) {
	gen := &stubGenerator{result: generatedOutfit()}
	wardrobe := &stubWardrobe{err: errors.New("wardrobe down")}
	orch := newTestOrchestrator(t, gen, wardrobe)

	out, err := orch.GenerateDaily(context.Background(), models.User{ID: "user-1"})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.False(t, out.IsFallback)
	assert.Empty(t, gen.lastReq.Wardrobe)
}

func TestGenerateDailyFallbackOnGeneratorFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.New("service unavailable")}
	orch := newTestOrchestrator(t, gen, &stubWardrobe{})
	ctx := context.Background()
	user := models.User{ID: "user-1"}

	out, err := orch.GenerateDaily(ctx, user)
	require.NoError(t, err, "fallback path must not surface the generation error")
	require.NotNil(t, out)
	assert.True(t, out.IsFallback)
	assert.Empty(t, out.Items)
	assert.InDelta(t, 0.5, out.Confidence, 1e-9)
	assert.Contains(t, out.Reasoning, "temporarily unavailable")

	// The fallback is cached but not usable, so the next call retries.
	gen.err = nil
	gen.result = generatedOutfit()
	retried, err := orch.GenerateDaily(ctx, user)
	require.NoError(t, err)
	assert.False(t, retried.IsFallback)
	assert.Equal(t, 2, gen.callCount())
}

func TestRegenerateDiscardsCachedOutfit(t *testing.T) {
	gen := &stubGenerator{result: generatedOutfit()}
	orch := newTestOrchestrator(t, gen, &stubWardrobe{})
	ctx := context.Background()
	user := models.User{ID: "user-1"}

	first, err := orch.GenerateDaily(ctx, user)
	require.NoError(t, err)

	second, err := orch.Regenerate(ctx, user)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 2, gen.callCount())
}

func TestClearTodayReopensTheDay(t *testing.T) {
	gen := &stubGenerator{result: generatedOutfit()}
	orch := newTestOrchestrator(t, gen, &stubWardrobe{})
	ctx := context.Background()
	user := models.User{ID: "user-1"}

	_, err := orch.GenerateDaily(ctx, user)
	require.NoError(t, err)
	require.NoError(t, orch.ClearToday(ctx, user))

	assert.Nil(t, orch.Today(ctx, user))

	_, err = orch.GenerateDaily(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 2, gen.callCount())
}

func TestGenerateDailyIsolatesUsers(t *testing.T) {
	gen := &stubGenerator{result: generatedOutfit()}
	orch := newTestOrchestrator(t, gen, &stubWardrobe{})
	ctx := context.Background()

	a, err := orch.GenerateDaily(ctx, models.User{ID: "user-a"})
	require.NoError(t, err)
	b, err := orch.GenerateDaily(ctx, models.User{ID: "user-b"})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, gen.callCount())
	assert.Equal(t, a.ID, orch.Today(ctx, models.User{ID: "user-a"}).ID)
}

func TestGenerateDailyRecoversFromDiscardedEntry(t *testing.T) {
	gen := &stubGenerator{result: generatedOutfit()}
	orch := newTestOrchestrator(t, gen, &stubWardrobe{})
	ctx := context.Background()
	user := models.User{ID: "user-1"}

	_, err := orch.GenerateDaily(ctx, user)
	require.NoError(t, err)

	// The entry vanishes (ownership discard or expiry) while the day's
	// latch still reads Done.
	require.NoError(t, orch.cache.Clear(ctx, user.ID, orch.clock()))

	out, err := orch.GenerateDaily(ctx, user)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, 2, gen.callCount())
}

func TestLatchSingleAcquirePerDay(t *testing.T) {
	latch := NewGenerationLatch()
	day := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)

	require.True(t, latch.TryAcquire("user-1", day))
	assert.False(t, latch.TryAcquire("user-1", day), "in-flight day must not be reacquired")

	latch.Release("user-1", day, true)
	assert.False(t, latch.TryAcquire("user-1", day), "completed day must not be reacquired")
	assert.Equal(t, LatchDone, latch.State("user-1", day))
}

func TestLatchFailedReleaseAllowsRetry(t *testing.T) {
	latch := NewGenerationLatch()
	day := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)

	require.True(t, latch.TryAcquire("user-1", day))
	latch.Release("user-1", day, false)
	assert.True(t, latch.TryAcquire("user-1", day))
}

func TestLatchPrunesPreviousDays(t *testing.T) {
	latch := NewGenerationLatch()
	monday := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	tuesday := monday.Add(24 * time.Hour)

	require.True(t, latch.TryAcquire("user-1", monday))
	latch.Release("user-1", monday, true)

	// A new day prunes Monday's entry and starts fresh.
	require.True(t, latch.TryAcquire("user-1", tuesday))
	latch.Release("user-1", tuesday, true)
	assert.Equal(t, LatchIdle, latch.State("user-1", monday))
}
