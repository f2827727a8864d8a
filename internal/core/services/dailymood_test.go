package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whitmore-labs/skylark/internal/core/domain"
)

func historyTrack(valence, energy float64) domain.HistoryEntry {
	return domain.HistoryEntry{Track: domain.Track{
		ID:       "t",
		Features: domain.FeatureVector{"valence": valence, "energy": energy},
	}}
}

func TestDailyMoodSummary(t *testing.T) {
	f := newFixture(t)
	f.history.entries = []domain.HistoryEntry{
		historyTrack(0.8, 0.9), // Happy
		historyTrack(0.9, 0.8), // Happy
		historyTrack(0.2, 0.2), // Sad
	}

	summary, err := f.svc.DailyMoodSummary(context.Background(), cred())
	require.NoError(t, err)
	assert.Equal(t, domain.SongMoodHappy, summary.Mood)
	assert.Contains(t, summary.Summary, "'Happy'")
}

func TestDailyMoodSummary_EmptyHistory(t *testing.T) {
	f := newFixture(t)
	f.history.entries = nil

	summary, err := f.svc.DailyMoodSummary(context.Background(), cred())
	require.NoError(t, err)
	assert.Equal(t, domain.SongMoodNeutral, summary.Mood)
	assert.Equal(t, "No listening history available for today.", summary.Summary)
}

func TestDailyMoodSummary_SkipsFeaturelessEntries(t *testing.T) {
	f := newFixture(t)
	f.history.entries = []domain.HistoryEntry{
		{Track: domain.Track{ID: "nofeat"}},
		historyTrack(0.5, 0.5), // Calm
	}

	summary, err := f.svc.DailyMoodSummary(context.Background(), cred())
	require.NoError(t, err)
	assert.Equal(t, domain.SongMoodCalm, summary.Mood)
}

func TestDailyMoodSummary_TieResolvesToFirstSeen(t *testing.T) {
	f := newFixture(t)
	f.history.entries = []domain.HistoryEntry{
		historyTrack(0.2, 0.2), // Sad
		historyTrack(0.8, 0.9), // Happy
		historyTrack(0.9, 0.8), // Happy
		historyTrack(0.1, 0.3), // Sad
	}

	summary, err := f.svc.DailyMoodSummary(context.Background(), cred())
	require.NoError(t, err)
	assert.Equal(t, domain.SongMoodSad, summary.Mood)
}

func TestDailyMoodSummary_RefreshesExpiredCredential(t *testing.T) {
	f := newFixture(t)
	f.history.expireFirst = true
	f.history.entries = []domain.HistoryEntry{historyTrack(0.5, 0.5)}

	summary, err := f.svc.DailyMoodSummary(context.Background(), cred())
	require.NoError(t, err)
	assert.Equal(t, domain.SongMoodCalm, summary.Mood)
	assert.Equal(t, 1, f.refresher.calls)
}
