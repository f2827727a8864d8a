package domain

import "fmt"

// Mood is one of the fixed labels produced by the weather classifier and
// consumed by the recommendation weighting.
type Mood string

const (
	MoodVibrantHappy Mood = "Vibrant and Happy"
	MoodWarmRelaxed  Mood = "Warm and Relaxed"
	MoodCozy         Mood = "Cozy"
	MoodSad          Mood = "Sad"
	MoodPeaceful     Mood = "Peaceful"
	MoodThoughtful   Mood = "Thoughtful"
	MoodRestless     Mood = "Restless"
	MoodMysterious   Mood = "Mysterious"
	MoodIntense      Mood = "Intense"
	MoodDarkBrooding Mood = "Dark and Brooding"
	MoodBalancedCalm Mood = "Balanced and Calm"
)

// Moods lists every label the classifier can produce.
var Moods = []Mood{
	MoodVibrantHappy,
	MoodWarmRelaxed,
	MoodCozy,
	MoodSad,
	MoodPeaceful,
	MoodThoughtful,
	MoodRestless,
	MoodMysterious,
	MoodIntense,
	MoodDarkBrooding,
	MoodBalancedCalm,
}

// Classify maps a weather observation to a mood. The checks form a decision
// list evaluated top to bottom with first-match-wins; the conditions overlap,
// so the order is part of the contract and must not be rearranged. Condition
// matching is a case-insensitive substring test ("light rain" matches "rain").
// Classify is total: it always returns a label.
func Classify(s WeatherSnapshot) Mood {
	day := s.Period() == PeriodDay

	switch {
	case s.TemperatureC > 30 && s.conditionContains("clear") && day:
		return MoodVibrantHappy
	case s.TemperatureC > 30 && s.conditionContains("clear") && !day:
		return MoodWarmRelaxed
	case s.TemperatureC > 25 && s.conditionContains("rain"):
		return MoodCozy
	case s.TemperatureC < 10 && s.conditionContains("rain"):
		return MoodSad
	case s.TemperatureC < 0 && s.conditionContains("snow"):
		return MoodPeaceful
	case s.TemperatureC >= 10 && s.TemperatureC <= 25 && s.conditionContains("clouds") && s.WindSpeed < 5:
		return MoodThoughtful
	case s.WindSpeed > 10 && s.Humidity > 80:
		return MoodRestless
	case s.VisibilityKm < 2:
		return MoodMysterious
	case s.conditionContains("thunderstorm"):
		return MoodIntense
	// Unreachable: the visibility check above already catches this regardless
	// of day period. Kept so the branch order reads as the full cascade.
	case !day && s.VisibilityKm < 2:
		return MoodDarkBrooding
	default:
		return MoodBalancedCalm
	}
}

// moodWeights biases similarity scoring toward the feature dimensions that
// matter for a mood. Moods without an entry use defaultWeights.
var moodWeights = map[Mood]map[string]float64{
	MoodVibrantHappy: {"energy": 0.8, "valence": 0.9, "danceability": 0.7},
	MoodWarmRelaxed:  {"acousticness": 0.9, "valence": 0.7, "energy": 0.6},
	MoodCozy:         {"acousticness": 0.8, "valence": 0.7, "energy": 0.5},
	MoodSad:          {"acousticness": 0.7, "valence": 0.3, "energy": 0.4},
	MoodPeaceful:     {"instrumentalness": 0.8, "acousticness": 0.9},
}

var defaultWeights = map[string]float64{"energy": 0.5, "valence": 0.5, "danceability": 0.5}

// MoodWeights returns the feature weighting for a mood. The result is always
// non-empty and must be treated as read-only.
func MoodWeights(m Mood) map[string]float64 {
	if w, ok := moodWeights[m]; ok {
		return w
	}
	return defaultWeights
}

// MoodDescription is the description used when creating a mood playlist.
func MoodDescription(m Mood) string {
	return fmt.Sprintf("A playlist for the %s mood", m)
}
