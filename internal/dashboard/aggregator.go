// internal/dashboard/aggregator.go
package dashboard

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"outfit-orchestrator/internal/common/logger"
	"outfit-orchestrator/internal/common/metrics"
	"outfit-orchestrator/internal/events"
	"outfit-orchestrator/internal/models"
)

// Progress weights. These are business heuristics carried over verbatim;
// changing them changes every user's displayed progress.
const (
	weightStyleGoals      = 0.2
	weightWardrobeSize    = 0.3
	weightColorVariety    = 0.25
	weightSeasonalBalance = 0.25
)

const (
	defaultTargetSize = 50
	colorVarietyGoal  = 10
	minCategoryItems  = 3

	statusWellBalanced    = "Well balanced"
	statusFairlyBalanced  = "Fairly balanced"
	statusUnbalanced      = "Unbalanced"
	statusMissingCoverage = "Missing seasonal coverage"
)

var seasons = []string{"Spring", "Summer", "Fall", "Winter"}

var gapCategories = []string{"Tops", "Bottoms", "Outerwear", "Shoes", "Accessories"}

type weekMemo struct {
	value     int
	fetchedAt time.Time
}

// Aggregator assembles the dashboard model from five independent sources.
// Every source degrades to its zero default on failure; the aggregation
// itself never fails.
type Aggregator struct {
	summary    SummarySource
	history    HistorySource
	trending   TrendingSource
	suggestion SuggestionSource
	topItems   TopItemsSource
	log        logger.Logger
	clock      func() time.Time

	memoMu      sync.Mutex
	memos       map[string]weekMemo
	memoTTL     time.Duration
	unsubscribe func()
}

func NewAggregator(
	summary SummarySource,
	history HistorySource,
	trending TrendingSource,
	suggestion SuggestionSource,
	topItems TopItemsSource,
	bus *events.Bus,
	memoTTL time.Duration,
	log logger.Logger,
) *Aggregator {
	if memoTTL <= 0 {
		memoTTL = time.Minute
	}
	a := &Aggregator{
		summary:    summary,
		history:    history,
		trending:   trending,
		suggestion: suggestion,
		topItems:   topItems,
		log:        log,
		clock:      time.Now,
		memos:      make(map[string]weekMemo),
		memoTTL:    memoTTL,
	}
	if bus != nil {
		ch, cancel := bus.Subscribe()
		a.unsubscribe = cancel
		go a.watchWornEvents(ch)
	}
	return a
}

// Close stops the worn-event listener.
func (a *Aggregator) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}

// Aggregate recomputes the dashboard model for one user. Sources are
// fetched concurrently and a failing source contributes its zero default.
func (a *Aggregator) Aggregate(ctx context.Context, user models.User) *models.DashboardModel {
	var (
		wg          sync.WaitGroup
		summary     WardrobeSummary
		weekCount   int
		collections []models.Collection
		suggestion  models.TodaysSuggestion
		topItems    []models.TopItem
	)

	wg.Add(5)
	go func() {
		defer wg.Done()
		s, err := a.summary.Summary(ctx, user)
		if err != nil {
			a.recordFailure("summary", user.ID, err)
			return
		}
		summary = s
	}()
	go func() {
		defer wg.Done()
		n, ok := a.memoizedWeek(user.ID)
		if ok {
			weekCount = n
			return
		}
		n, err := a.history.OutfitsThisWeek(ctx, user)
		if err != nil {
			a.recordFailure("history", user.ID, err)
			return
		}
		weekCount = n
		a.storeWeekMemo(user.ID, n)
	}()
	go func() {
		defer wg.Done()
		c, err := a.trending.Trending(ctx, user)
		if err != nil {
			a.recordFailure("trending", user.ID, err)
			return
		}
		collections = c
	}()
	go func() {
		defer wg.Done()
		s, err := a.suggestion.TodaysSuggestion(ctx, user)
		if err != nil {
			a.recordFailure("suggestion", user.ID, err)
			return
		}
		suggestion = s
	}()
	go func() {
		defer wg.Done()
		items, err := a.topItems.TopItems(ctx, user)
		if err != nil {
			a.recordFailure("top_items", user.ID, err)
			return
		}
		topItems = items
	}()
	wg.Wait()

	balance := seasonalBalance(summary.ItemsBySeason)

	return &models.DashboardModel{
		TotalItems:      summary.TotalItems,
		Favorites:       summary.Favorites,
		StyleGoals:      summary.StyleGoalsMet,
		OutfitsThisWeek: weekCount,
		OverallProgress: overallProgress(summary, balance.Score),
		SeasonalBalance: balance,
		Suggestion:      suggestion,
		Collections:     collections,
		Gaps:            wardrobeGaps(summary.ItemsByCategory),
		TopItems:        topItems,
	}
}

func (a *Aggregator) recordFailure(source, userID string, err error) {
	metrics.DashboardSourceFailures.WithLabelValues(source).Inc()
	a.log.Warn("dashboard source failed, using zero default", map[string]interface{}{
		"source":  source,
		"user_id": userID,
		"error":   err.Error(),
	})
}

func (a *Aggregator) watchWornEvents(ch <-chan events.OutfitWornEvent) {
	for range ch {
		// Any wear transition can change this week's count.
		a.memoMu.Lock()
		a.memos = make(map[string]weekMemo)
		a.memoMu.Unlock()
	}
}

func (a *Aggregator) memoizedWeek(userID string) (int, bool) {
	a.memoMu.Lock()
	defer a.memoMu.Unlock()
	memo, ok := a.memos[userID]
	if !ok || a.clock().Sub(memo.fetchedAt) > a.memoTTL {
		return 0, false
	}
	return memo.value, true
}

func (a *Aggregator) storeWeekMemo(userID string, value int) {
	a.memoMu.Lock()
	a.memos[userID] = weekMemo{value: value, fetchedAt: a.clock()}
	a.memoMu.Unlock()
}

// overallProgress folds the four sub-scores into one integer percent.
func overallProgress(summary WardrobeSummary, seasonalScore int) int {
	goal := ratioPercent(summary.StyleGoalsMet, summary.StyleGoalsTotal)

	target := summary.TargetSize
	if target <= 0 {
		target = defaultTargetSize
	}
	size := ratioPercent(summary.TotalItems, target)

	variety := ratioPercent(len(summary.ColorCounts), colorVarietyGoal)

	progress := float64(goal)*weightStyleGoals +
		float64(size)*weightWardrobeSize +
		float64(variety)*weightColorVariety +
		float64(seasonalScore)*weightSeasonalBalance
	return int(math.Round(progress))
}

// ratioPercent clamps n/d to [0,1] and scales to an integer percent.
func ratioPercent(n, d int) int {
	if d <= 0 || n <= 0 {
		return 0
	}
	if n >= d {
		return 100
	}
	return int(math.Round(float64(n) / float64(d) * 100))
}

// seasonalBalance scores half on how many seasons are represented and half
// on how evenly items spread across them.
func seasonalBalance(bySeason map[string]int) models.SeasonalBalance {
	represented := 0
	minCount, maxCount := -1, 0
	for _, season := range seasons {
		count := bySeason[season]
		if count > 0 {
			represented++
		}
		if minCount < 0 || count < minCount {
			minCount = count
		}
		if count > maxCount {
			maxCount = count
		}
	}

	coverage := float64(represented) / float64(len(seasons))
	evenness := 0.0
	if maxCount > 0 {
		evenness = float64(minCount) / float64(maxCount)
	}
	score := int(math.Round((coverage*0.5 + evenness*0.5) * 100))

	status := statusUnbalanced
	switch {
	case represented < len(seasons):
		status = statusMissingCoverage
	case score >= 80:
		status = statusWellBalanced
	case score >= 50:
		status = statusFairlyBalanced
	}

	return models.SeasonalBalance{Score: score, Status: status}
}

// wardrobeGaps flags categories with fewer than three items. Zero items is
// a high priority gap, one or two is medium.
func wardrobeGaps(byCategory map[string]int) []models.WardrobeGap {
	var gaps []models.WardrobeGap
	for _, category := range gapCategories {
		count := byCategory[category]
		if count >= minCategoryItems {
			continue
		}
		priority := "medium"
		if count == 0 {
			priority = "high"
		}
		gaps = append(gaps, models.WardrobeGap{
			Category:  category,
			ItemCount: count,
			Priority:  priority,
		})
	}
	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].ItemCount < gaps[j].ItemCount
	})
	return gaps
}
