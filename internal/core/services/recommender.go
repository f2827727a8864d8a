// Package services wires the core recommendation flow: weather to mood,
// listening history to taste profile, candidate ranking, and playlist sync.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/whitmore-labs/skylark/internal/core/domain"
	"github.com/whitmore-labs/skylark/internal/core/ports"
	"github.com/whitmore-labs/skylark/internal/metrics"
)

// Recommender coordinates the providers behind one recommendation request.
type Recommender struct {
	weather   ports.WeatherProvider
	history   ports.HistoryProvider
	pool      ports.CandidatePool
	playlists ports.PlaylistStore
	refresher ports.CredentialRefresher
	repo      ports.RecommendationRepository
	analyzer  ports.FeatureAnalyzer // optional, may be nil
	log       zerolog.Logger

	now   func() time.Time
	newID func() string
}

// NewRecommender constructs a Recommender.
func NewRecommender(
	weather ports.WeatherProvider,
	history ports.HistoryProvider,
	pool ports.CandidatePool,
	playlists ports.PlaylistStore,
	refresher ports.CredentialRefresher,
	repo ports.RecommendationRepository,
	analyzer ports.FeatureAnalyzer,
	log zerolog.Logger,
) *Recommender {
	return &Recommender{
		weather:   weather,
		history:   history,
		pool:      pool,
		playlists: playlists,
		refresher: refresher,
		repo:      repo,
		analyzer:  analyzer,
		log:       log,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Result is the outcome of one recommendation request. SyncErr is non-nil
// when ranking succeeded but the playlist could not be resolved or appended
// to; the ranked tracks are still usable in that case.
type Result struct {
	Snapshot       domain.WeatherSnapshot
	Recommendation domain.Recommendation
	SyncErr        error
}

// Recommend runs the full flow for a location: fetch weather, classify the
// mood, build the taste profile from recent listening, rank the mood's
// candidate pool, and sync the top tracks into the mood's playlist.
//
// Failure of the candidate search wraps domain.ErrPoolUnreachable and aborts:
// ranking could not run. Failure of playlist sync is reported in
// Result.SyncErr wrapping domain.ErrSyncUnavailable; the ranked list is
// returned regardless so the caller can still show it.
func (s *Recommender) Recommend(ctx context.Context, cred domain.Credential, location string) (Result, error) {
	snapshot, err := s.weather.Fetch(ctx, location)
	if err != nil {
		return Result{}, fmt.Errorf("service: fetch weather: %w", err)
	}

	mood := domain.Classify(snapshot)
	metrics.Classifications.WithLabelValues(string(mood)).Inc()
	s.log.Info().Str("mood", string(mood)).Str("condition", snapshot.Condition).
		Float64("temperature", snapshot.TemperatureC).Msg("classified weather")

	var history []domain.HistoryEntry
	err = s.withRefresh(ctx, &cred, func(c domain.Credential) error {
		var herr error
		history, herr = s.history.RecentHistory(ctx, c)
		return herr
	})
	if err != nil {
		return Result{}, fmt.Errorf("service: fetch listening history: %w", err)
	}

	profile := domain.BuildTasteProfile(history)

	var candidates []domain.Track
	err = s.withRefresh(ctx, &cred, func(c domain.Credential) error {
		var serr error
		candidates, serr = s.pool.SearchByMood(ctx, mood, c)
		return serr
	})
	if err != nil {
		return Result{}, fmt.Errorf("service: %w: %w", domain.ErrPoolUnreachable, err)
	}

	if err := s.repo.CacheTracks(ctx, candidates); err != nil {
		s.log.Warn().Err(err).Msg("failed to cache candidate tracks")
	}
	if s.analyzer != nil {
		// Featureless candidates can't be ranked now; queue their previews
		// so the cache fills in for later runs.
		for _, c := range candidates {
			if len(c.Features) == 0 && c.PreviewURL != "" {
				s.analyzer.Submit(c)
			}
		}
	}

	ranked := domain.Rank(profile, candidates, mood)
	metrics.Recommendations.Inc()

	rec := domain.Recommendation{
		ID:        s.newID(),
		Mood:      mood,
		Tracks:    ranked,
		CreatedAt: s.now(),
	}

	playlistID, syncErr := s.syncPlaylist(ctx, &cred, mood, ranked)
	if syncErr != nil {
		metrics.SyncFailures.Inc()
		s.log.Warn().Err(syncErr).Str("mood", string(mood)).Msg("playlist sync unavailable")
	} else {
		rec.PlaylistID = playlistID
	}

	if err := s.repo.Save(ctx, rec); err != nil {
		s.log.Warn().Err(err).Str("id", rec.ID).Msg("failed to persist recommendation")
	}

	return Result{Snapshot: snapshot, Recommendation: rec, SyncErr: syncErr}, nil
}

// GetRecommendation loads a previously persisted recommendation.
func (s *Recommender) GetRecommendation(ctx context.Context, id string) (domain.Recommendation, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Recommendation{}, fmt.Errorf("service: load recommendation: %w", err)
	}
	return rec, nil
}

// syncPlaylist resolves the destination playlist for the mood and appends the
// ranked track URIs in order. No deduplication against existing contents:
// repeated calls for the same mood re-insert the same tracks.
func (s *Recommender) syncPlaylist(ctx context.Context, cred *domain.Credential, mood domain.Mood, tracks []domain.Track) (string, error) {
	playlistID, err := s.ensurePlaylist(ctx, cred, mood)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrSyncUnavailable, err)
	}

	if len(tracks) == 0 {
		return playlistID, nil
	}

	uris := make([]string, len(tracks))
	for i, t := range tracks {
		uris[i] = t.URI()
	}

	err = s.withRefresh(ctx, cred, func(c domain.Credential) error {
		return s.playlists.Append(ctx, playlistID, uris, c)
	})
	if err != nil {
		return "", fmt.Errorf("%w: append tracks: %w", domain.ErrSyncUnavailable, err)
	}

	return playlistID, nil
}

// ensurePlaylist finds the playlist named after the mood, creating a
// non-public one with the mood description when none exists. The name is the
// lookup key, so repeated calls resolve to the same playlist.
func (s *Recommender) ensurePlaylist(ctx context.Context, cred *domain.Credential, mood domain.Mood) (string, error) {
	var playlistID string
	err := s.withRefresh(ctx, cred, func(c domain.Credential) error {
		var ferr error
		playlistID, ferr = s.playlists.FindByName(ctx, string(mood), c)
		return ferr
	})
	if err == nil {
		return playlistID, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("find playlist: %w", err)
	}

	err = s.withRefresh(ctx, cred, func(c domain.Credential) error {
		var cerr error
		playlistID, cerr = s.playlists.Create(ctx, string(mood), domain.MoodDescription(mood), false, c)
		return cerr
	})
	if err != nil {
		return "", fmt.Errorf("create playlist: %w", err)
	}
	return playlistID, nil
}

// withRefresh runs an external call with the current credential. On the first
// expired-credential signal it refreshes exactly once and retries the same
// call exactly once; a second failure is terminal for that call.
func (s *Recommender) withRefresh(ctx context.Context, cred *domain.Credential, call func(domain.Credential) error) error {
	err := call(*cred)
	if !errors.Is(err, domain.ErrCredentialExpired) {
		return err
	}

	fresh, rerr := s.refresher.Refresh(ctx, cred.RefreshToken)
	if rerr != nil {
		return fmt.Errorf("refresh credential: %w", rerr)
	}
	if fresh.RefreshToken == "" {
		fresh.RefreshToken = cred.RefreshToken
	}
	*cred = fresh

	metrics.ProviderRetries.Inc()
	return call(*cred)
}
