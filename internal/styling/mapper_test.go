// internal/styling/mapper_test.go
package styling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"outfit-orchestrator/internal/models"
)

func TestDerive_TemperatureBuckets(t *testing.T) {
	tests := []struct {
		name     string
		temp     float64
		expected StyleParams
	}{
		{"hot", 95, StyleParams{OccasionCasual, StyleAthleisure, MoodEnergetic}},
		{"hot boundary", 90, StyleParams{OccasionCasual, StyleAthleisure, MoodEnergetic}},
		{"warm", 87, StyleParams{OccasionCasual, StyleCasual, MoodRelaxed}},
		{"mild", 70, StyleParams{OccasionCasual, StyleMinimalist, MoodComfortable}},
		{"chilly", 44, StyleParams{OccasionCasual, StyleStreetwear, MoodRelaxed}},
		{"cold", 38, StyleParams{OccasionCasual, StyleStreetwear, MoodConfident}},
		{"freezing", 30, StyleParams{OccasionCasual, StyleClassic, MoodComfortable}},
		{"frigid", 10, StyleParams{OccasionCasual, StyleClassic, MoodCozy}},
		{"frigid boundary", 25, StyleParams{OccasionCasual, StyleClassic, MoodCozy}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := Derive(models.WeatherSnapshot{Temperature: tt.temp, Condition: "Clear"})
			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestDerive_ConditionKeywordsWinOverTemperature(t *testing.T) {
	tests := []struct {
		name      string
		condition string
		temp      float64
		expected  StyleParams
	}{
		{"hot thunderstorm", "Thunderstorm", 95, StyleParams{OccasionCasual, StyleClassic, MoodCozy}},
		{"warm rain", "Light Rain", 86, StyleParams{OccasionCasual, StyleClassic, MoodRelaxed}},
		{"drizzle", "Patchy drizzle nearby", 60, StyleParams{OccasionCasual, StyleClassic, MoodRelaxed}},
		{"snow", "Heavy Snow", 28, StyleParams{OccasionCasual, StyleClassic, MoodComfortable}},
		{"fog", "Dense Fog", 55, StyleParams{OccasionCasual, StyleClassic, MoodRelaxed}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := Derive(models.WeatherSnapshot{Temperature: tt.temp, Condition: tt.condition})
			assert.Equal(t, tt.expected, params)
		})
	}
}

// 95F and clear skies recommend casual athleisure.
func TestDerive_HotClear(t *testing.T) {
	params := Derive(models.WeatherSnapshot{Temperature: 95, Condition: "Clear"})
	assert.Equal(t, OccasionCasual, params.Occasion)
	assert.Equal(t, StyleAthleisure, params.Style)
}

// Derive must be total: any snapshot, however odd, yields values from the
// accepted vocabulary.
func TestDerive_TotalOverOddInputs(t *testing.T) {
	snapshots := []models.WeatherSnapshot{
		{},
		{Temperature: math.NaN(), Condition: ""},
		{Temperature: math.Inf(1), Condition: "???"},
		{Temperature: math.Inf(-1), Condition: "unknown-condition"},
		{Temperature: -200, Condition: "RAIN AND SNOW AND FIRE"},
		{Temperature: 300, Condition: "clear", IsFallback: true, IsStale: true},
	}

	for _, snap := range snapshots {
		params := Derive(snap)
		assert.Contains(t, Occasions(), params.Occasion)
		assert.Contains(t, Styles(), params.Style)
		assert.Contains(t, Moods(), params.Mood)
	}
}

func TestDerive_Deterministic(t *testing.T) {
	snap := models.WeatherSnapshot{Temperature: 42, Condition: "Partly Cloudy"}
	first := Derive(snap)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Derive(snap))
	}
}
