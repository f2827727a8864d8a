package ports

import (
	"context"

	"github.com/whitmore-labs/skylark/internal/core/domain"
)

// RecommendationRepository persists completed rankings locally so they can be
// shown again without re-running the flow, and caches candidate tracks seen
// along the way.
type RecommendationRepository interface {
	Save(ctx context.Context, rec domain.Recommendation) error
	GetByID(ctx context.Context, id string) (domain.Recommendation, error)

	// CacheTracks upserts candidate tracks into the local track cache.
	// Cached features are never overwritten with an empty vector.
	CacheTracks(ctx context.Context, tracks []domain.Track) error

	// UpdateTrackEnergy patches the analyzed energy of a cached track that
	// had no catalog features.
	UpdateTrackEnergy(ctx context.Context, trackID string, energy float64) error
}

// FeatureAnalyzer accepts tracks whose feature vector is missing for
// background preview analysis. Submit never blocks.
type FeatureAnalyzer interface {
	Submit(track domain.Track)
}
