// internal/models/dashboard.go
package models

// Collection is a named grouping of wardrobe items shown on the dashboard.
type Collection struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// WardrobeGap flags a category the wardrobe is thin on.
type WardrobeGap struct {
	Category  string `json:"category"`
	ItemCount int    `json:"itemCount"`
	Priority  string `json:"priority"` // "high" or "medium"
}

// TopItem is a most-worn wardrobe item.
type TopItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	WearCount int    `json:"wearCount"`
}

// SeasonalBalance is the derived seasonal coverage score and its status text.
type SeasonalBalance struct {
	Score  int    `json:"score"`
	Status string `json:"status"`
}

// TodaysSuggestion is the dashboard's view of today's recommended outfit.
type TodaysSuggestion struct {
	OutfitID   string  `json:"outfitId,omitempty"`
	Name       string  `json:"name,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	IsWorn     bool    `json:"isWorn,omitempty"`
}

// DashboardModel is the derived UI model the dashboard aggregator produces.
// It is a read-side projection recomputed on every fetch; nothing in it is
// persisted by the aggregator.
type DashboardModel struct {
	TotalItems      int              `json:"totalItems"`
	Favorites       int              `json:"favorites"`
	StyleGoals      int              `json:"styleGoals"`
	OutfitsThisWeek int              `json:"outfitsThisWeek"`
	OverallProgress int              `json:"overallProgress"` // integer percent
	SeasonalBalance SeasonalBalance  `json:"seasonalBalance"`
	Suggestion      TodaysSuggestion `json:"suggestion"`
	Collections     []Collection     `json:"collections"`
	Gaps            []WardrobeGap    `json:"gaps"`
	TopItems        []TopItem        `json:"topItems"`
}
