package domain

import "sort"

// MaxRecommendations caps how many tracks a ranking pass returns.
const MaxRecommendations = 20

// Rank scores every candidate that carries a feature vector against the taste
// profile under the mood's weighting, orders them ascending by score, and
// returns the first MaxRecommendations tracks. Candidates without features
// are excluded before scoring, not scored as zero. The sort is stable, so
// ties keep their input order. Callers wanting best-match-first must
// reverse explicitly.
func Rank(profile FeatureVector, candidates []Track, mood Mood) []Track {
	weights := MoodWeights(mood)

	scored := make([]ScoredTrack, 0, len(candidates))
	for _, c := range candidates {
		if len(c.Features) == 0 {
			continue
		}
		scored = append(scored, ScoredTrack{
			Track: c,
			Score: Similarity(profile, c.Features, weights),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score < scored[j].Score
	})

	limit := len(scored)
	if limit > MaxRecommendations {
		limit = MaxRecommendations
	}

	ranked := make([]Track, limit)
	for i := 0; i < limit; i++ {
		ranked[i] = scored[i].Track
	}
	return ranked
}
