package domain

// SongMood is the coarse per-track mood bucket used by the daily summary.
// It is distinct from the weather-derived Mood labels.
type SongMood string

const (
	SongMoodHappy     SongMood = "Happy"
	SongMoodEnergetic SongMood = "Energetic"
	SongMoodSad       SongMood = "Sad"
	SongMoodCalm      SongMood = "Calm"
	SongMoodNeutral   SongMood = "Neutral"
)

// DetermineSongMood buckets a track by its valence and energy values.
func DetermineSongMood(valence, energy float64) SongMood {
	switch {
	case valence >= 0.7 && energy >= 0.7:
		return SongMoodHappy
	case valence < 0.4 && energy >= 0.6:
		return SongMoodEnergetic
	case valence < 0.4 && energy < 0.4:
		return SongMoodSad
	case valence >= 0.4 && energy >= 0.4:
		return SongMoodCalm
	default:
		return SongMoodNeutral
	}
}
