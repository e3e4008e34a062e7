// internal/styling/mapper.go
package styling

import (
	"strings"

	"outfit-orchestrator/internal/models"
)

// Temperature buckets in degrees Fahrenheit. Condition keywords always win
// over temperature.
const (
	tempHot      = 90
	tempWarm     = 85
	tempChilly   = 45
	tempCold     = 40
	tempFreezing = 32
	tempFrigid   = 25
)

// Derive maps a weather snapshot onto the generation service's accepted
// occasion/style/mood vocabulary. It is pure and total: any input, including
// the zero snapshot, yields a valid triple.
func Derive(w models.WeatherSnapshot) StyleParams {
	cond := strings.ToLower(w.Condition)

	switch {
	case containsAny(cond, "thunder", "storm", "hail"):
		return StyleParams{OccasionCasual, StyleClassic, MoodCozy}
	case containsAny(cond, "snow", "sleet", "ice", "blizzard", "flurr"):
		return StyleParams{OccasionCasual, StyleClassic, MoodComfortable}
	case containsAny(cond, "rain", "drizzle", "shower", "mist", "fog"):
		return StyleParams{OccasionCasual, StyleClassic, MoodRelaxed}
	}

	t := w.Temperature
	switch {
	case t >= tempHot:
		return StyleParams{OccasionCasual, StyleAthleisure, MoodEnergetic}
	case t >= tempWarm:
		return StyleParams{OccasionCasual, StyleCasual, MoodRelaxed}
	case t <= tempFrigid:
		return StyleParams{OccasionCasual, StyleClassic, MoodCozy}
	case t <= tempFreezing:
		return StyleParams{OccasionCasual, StyleClassic, MoodComfortable}
	case t <= tempCold:
		return StyleParams{OccasionCasual, StyleStreetwear, MoodConfident}
	case t <= tempChilly:
		return StyleParams{OccasionCasual, StyleStreetwear, MoodRelaxed}
	default:
		return StyleParams{OccasionCasual, StyleMinimalist, MoodComfortable}
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
