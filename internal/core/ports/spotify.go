package ports

import (
	"context"

	"github.com/whitmore-labs/skylark/internal/core/domain"
)

// HistoryProvider returns the user's most recent plays, bounded by the
// provider. An empty slice, never nil, when there is no data. Calls that hit
// an expired credential return an error wrapping domain.ErrCredentialExpired.
type HistoryProvider interface {
	RecentHistory(ctx context.Context, cred domain.Credential) ([]domain.HistoryEntry, error)
}

// CandidatePool searches the catalog for tracks matching a mood. Every
// returned candidate is already enriched with its feature vector where the
// catalog has one.
type CandidatePool interface {
	SearchByMood(ctx context.Context, mood domain.Mood, cred domain.Credential) ([]domain.Track, error)
}

// PlaylistStore is the external playlist surface: lookup by exact name,
// creation, and ordered append. FindByName returns domain.ErrNotFound when no
// playlist carries the name.
type PlaylistStore interface {
	FindByName(ctx context.Context, name string, cred domain.Credential) (string, error)
	Create(ctx context.Context, name, description string, public bool, cred domain.Credential) (string, error)
	Append(ctx context.Context, playlistID string, trackURIs []string, cred domain.Credential) error
}

// CredentialRefresher exchanges a refresh token for a fresh credential.
type CredentialRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (domain.Credential, error)
}
