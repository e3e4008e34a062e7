// internal/models/wardrobe.go
package models

// WardrobeItem is a single garment from the user's stored wardrobe catalog.
type WardrobeItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Color      string `json:"color"`
	WearCount  int    `json:"wearCount"`
	IsFavorite bool   `json:"isFavorite"`

	// DiversityScore is a heuristic priority favoring rarely-worn items
	// during generation. Higher means "pick me more often".
	DiversityScore float64 `json:"diversityScore"`
}
