package worker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whitmore-labs/skylark/internal/core/domain"
)

type fakeRepo struct {
	mu      sync.Mutex
	updates map[string]float64
	err     error
}

func (f *fakeRepo) Save(ctx context.Context, rec domain.Recommendation) error { return nil }

func (f *fakeRepo) GetByID(ctx context.Context, id string) (domain.Recommendation, error) {
	return domain.Recommendation{}, domain.ErrNotFound
}

func (f *fakeRepo) CacheTracks(ctx context.Context, tracks []domain.Track) error { return nil }

func (f *fakeRepo) UpdateTrackEnergy(ctx context.Context, trackID string, energy float64) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updates == nil {
		f.updates = map[string]float64{}
	}
	f.updates[trackID] = energy
	return nil
}

func withAnalyzer(t *testing.T, fn func(url string) (float64, error)) {
	t.Helper()
	orig := AnalyzePreviewFunc
	AnalyzePreviewFunc = fn
	t.Cleanup(func() { AnalyzePreviewFunc = orig })
}

func TestPool_AnalyzesAndPatches(t *testing.T) {
	withAnalyzer(t, func(url string) (float64, error) {
		assert.Equal(t, "http://cdn/p1.mp3", url)
		return 0.42, nil
	})

	repo := &fakeRepo{}
	pool := NewPool(repo, 10, zerolog.Nop())
	pool.Start(2)

	pool.Submit(domain.Track{ID: "t1", PreviewURL: "http://cdn/p1.mp3"})
	pool.Stop()

	require.Len(t, repo.updates, 1)
	assert.InDelta(t, 0.42, repo.updates["t1"], 1e-9)
}

func TestPool_SkipsTracksWithoutPreview(t *testing.T) {
	withAnalyzer(t, func(url string) (float64, error) {
		t.Fatal("analyzer must not run without a preview url")
		return 0, nil
	})

	repo := &fakeRepo{}
	pool := NewPool(repo, 10, zerolog.Nop())
	pool.Start(1)

	pool.Submit(domain.Track{ID: "t1"})
	pool.Stop()

	assert.Empty(t, repo.updates)
}

func TestPool_AnalyzerFailureLeavesCacheUntouched(t *testing.T) {
	withAnalyzer(t, func(url string) (float64, error) {
		return 0, errors.New("decode failed")
	})

	repo := &fakeRepo{}
	pool := NewPool(repo, 10, zerolog.Nop())
	pool.Start(1)

	pool.Submit(domain.Track{ID: "t1", PreviewURL: "http://cdn/p1.mp3"})
	pool.Stop()

	assert.Empty(t, repo.updates)
}

func TestPool_FullQueueDropsJob(t *testing.T) {
	repo := &fakeRepo{}
	pool := NewPool(repo, 1, zerolog.Nop())
	// Workers not started: the queue holds one job, the second is dropped.
	pool.Submit(domain.Track{ID: "t1", PreviewURL: "u"})
	pool.Submit(domain.Track{ID: "t2", PreviewURL: "u"})

	assert.Len(t, pool.jobs, 1)
}
