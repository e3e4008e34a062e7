// internal/styling/params.go
package styling

// Occasion, Style, and Mood values are the only vocabulary the generation
// service accepts.
type Occasion string

const (
	OccasionCasual   Occasion = "Casual"
	OccasionWork     Occasion = "Work"
	OccasionAthletic Occasion = "Athletic"
	OccasionEvening  Occasion = "Evening"
)

type Style string

const (
	StyleCasual     Style = "Casual"
	StyleClassic    Style = "Classic"
	StyleAthleisure Style = "Athleisure"
	StyleStreetwear Style = "Streetwear"
	StyleMinimalist Style = "Minimalist"
)

type Mood string

const (
	MoodRelaxed     Mood = "Relaxed"
	MoodCozy        Mood = "Cozy"
	MoodConfident   Mood = "Confident"
	MoodEnergetic   Mood = "Energetic"
	MoodComfortable Mood = "Comfortable"
)

// StyleParams is the parameter triple derived from a weather snapshot and
// handed to the generation service.
type StyleParams struct {
	Occasion Occasion `json:"occasion"`
	Style    Style    `json:"style"`
	Mood     Mood     `json:"mood"`
}

// Occasions lists the accepted occasion vocabulary.
func Occasions() []Occasion {
	return []Occasion{OccasionCasual, OccasionWork, OccasionAthletic, OccasionEvening}
}

// Styles lists the accepted style vocabulary.
func Styles() []Style {
	return []Style{StyleCasual, StyleClassic, StyleAthleisure, StyleStreetwear, StyleMinimalist}
}

// Moods lists the accepted mood vocabulary.
func Moods() []Mood {
	return []Mood{MoodRelaxed, MoodCozy, MoodConfident, MoodEnergetic, MoodComfortable}
}
