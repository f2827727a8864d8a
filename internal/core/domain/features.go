package domain

import "math"

// FeatureVector maps an audio feature dimension (energy, valence, ...) to a
// value in [0, 1]. A nil or empty map means the track carries no features.
type FeatureVector map[string]float64

// ProfileDimensions are the dimensions aggregated into a taste profile.
var ProfileDimensions = []string{"energy", "valence", "danceability", "acousticness"}

// HistoryEntry is one played track from the user's recent listening history.
type HistoryEntry struct {
	Track Track
}

// BuildTasteProfile computes the per-dimension arithmetic mean over every
// history entry that carries a non-empty feature vector. A dimension absent
// on an individual track contributes 0 for that track. With zero qualifying
// entries every dimension is 0: an explicit zero profile, not an error.
func BuildTasteProfile(history []HistoryEntry) FeatureVector {
	totals := make(FeatureVector, len(ProfileDimensions))
	for _, dim := range ProfileDimensions {
		totals[dim] = 0
	}

	count := 0
	for _, entry := range history {
		features := entry.Track.Features
		if len(features) == 0 {
			continue
		}
		count++
		for _, dim := range ProfileDimensions {
			totals[dim] += features[dim]
		}
	}

	if count == 0 {
		return totals
	}

	for _, dim := range ProfileDimensions {
		totals[dim] /= float64(count)
	}
	return totals
}

// Similarity scores how closely a candidate's features agree with the taste
// profile under a mood weighting: sum of weight*(1-|profile-candidate|) over
// the weighted dimensions, normalized by the weight sum. The result is in
// [0, 1] whenever feature values are; identical vectors score 1.0. A feature
// missing on either side reads as 0, deliberately penalizing incomplete
// candidate metadata.
func Similarity(profile, candidate FeatureVector, weights map[string]float64) float64 {
	var score, weightSum float64
	for feature, weight := range weights {
		score += weight * (1 - math.Abs(profile[feature]-candidate[feature]))
		weightSum += weight
	}
	return score / weightSum
}
