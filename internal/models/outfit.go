// internal/models/outfit.go
package models

import "time"

// OutfitItem is one garment of a generated outfit.
type OutfitItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Color string `json:"color,omitempty"`
}

// GeneratedOutfit is the single daily recommendation for one user. It is
// created by the orchestrator, persisted to the daily cache, mutated in
// place when marked worn, and cleared on regenerate or ownership mismatch.
type GeneratedOutfit struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Items       []OutfitItem    `json:"items"`
	Weather     WeatherSnapshot `json:"weather"`
	Reasoning   string          `json:"reasoning"`
	Confidence  float64         `json:"confidence"` // always within [0,1]
	GeneratedAt time.Time       `json:"generatedAt"`
	IsWorn      bool            `json:"isWorn"`
	WornAt      *time.Time      `json:"wornAt,omitempty"`
	IsFallback  bool            `json:"isFallback"`
	OwnerID     string          `json:"ownerId"`
}
