package services

import (
	"context"
	"fmt"

	"github.com/whitmore-labs/skylark/internal/core/domain"
)

// MoodSummary describes the predominant mood of the user's recent listening.
type MoodSummary struct {
	Mood    domain.SongMood `json:"mood_label"`
	Summary string          `json:"summary"`
}

// DailyMoodSummary buckets each recently played track by valence and energy
// and reports the predominant bucket. Entries without feature data are
// skipped; with no usable entries the summary is Neutral.
func (s *Recommender) DailyMoodSummary(ctx context.Context, cred domain.Credential) (MoodSummary, error) {
	var history []domain.HistoryEntry
	err := s.withRefresh(ctx, &cred, func(c domain.Credential) error {
		var herr error
		history, herr = s.history.RecentHistory(ctx, c)
		return herr
	})
	if err != nil {
		return MoodSummary{}, fmt.Errorf("service: fetch listening history: %w", err)
	}

	counts := make(map[domain.SongMood]int)
	var order []domain.SongMood
	for _, entry := range history {
		features := entry.Track.Features
		if len(features) == 0 {
			continue
		}
		mood := domain.DetermineSongMood(features["valence"], features["energy"])
		if counts[mood] == 0 {
			order = append(order, mood)
		}
		counts[mood]++
	}

	if len(order) == 0 {
		return MoodSummary{
			Mood:    domain.SongMoodNeutral,
			Summary: "No listening history available for today.",
		}, nil
	}

	// Ties resolve to the mood seen first in the history.
	predominant := order[0]
	for _, mood := range order[1:] {
		if counts[mood] > counts[predominant] {
			predominant = mood
		}
	}

	return MoodSummary{
		Mood:    predominant,
		Summary: fmt.Sprintf("Today's predominant mood based on your listening history is '%s'.", predominant),
	}, nil
}
