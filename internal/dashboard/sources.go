// internal/dashboard/sources.go
package dashboard

import (
	"context"

	"outfit-orchestrator/internal/models"
)

// WardrobeSummary is the raw summary the aggregator derives progress,
// balance, and gap figures from.
type WardrobeSummary struct {
	TotalItems      int            `json:"totalItems"`
	Favorites       int            `json:"favorites"`
	StyleGoalsMet   int            `json:"styleGoalsMet"`
	StyleGoalsTotal int            `json:"styleGoalsTotal"`
	TargetSize      int            `json:"targetSize"`
	ItemsByCategory map[string]int `json:"itemsByCategory"`
	ColorCounts     map[string]int `json:"colorCounts"`
	ItemsBySeason   map[string]int `json:"itemsBySeason"`
}

// SummarySource reports aggregate wardrobe figures.
type SummarySource interface {
	Summary(ctx context.Context, user models.User) (WardrobeSummary, error)
}

// HistorySource reports how many outfits the user wore in the current week.
type HistorySource interface {
	OutfitsThisWeek(ctx context.Context, user models.User) (int, error)
}

// TrendingSource lists the collections currently trending for the user.
type TrendingSource interface {
	Trending(ctx context.Context, user models.User) ([]models.Collection, error)
}

// SuggestionSource reports today's recommended outfit, if any.
type SuggestionSource interface {
	TodaysSuggestion(ctx context.Context, user models.User) (models.TodaysSuggestion, error)
}

// TopItemsSource lists the user's most worn items.
type TopItemsSource interface {
	TopItems(ctx context.Context, user models.User) ([]models.TopItem, error)
}
