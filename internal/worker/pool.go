// Package worker provides background preview analysis for tracks the catalog
// has no audio features for.
package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/whitmore-labs/skylark/internal/core/domain"
	"github.com/whitmore-labs/skylark/internal/core/ports"
)

// Pool manages background workers that analyze track previews and patch the
// local track cache with the estimated energy.
type Pool struct {
	repo ports.RecommendationRepository
	jobs chan domain.Track
	log  zerolog.Logger
	wg   sync.WaitGroup
}

// compile-time interface assertion
var _ ports.FeatureAnalyzer = (*Pool)(nil)

// NewPool creates a worker pool with the given queue size.
func NewPool(repo ports.RecommendationRepository, queueSize int, log zerolog.Logger) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{repo: repo, jobs: make(chan domain.Track, queueSize), log: log}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for track := range p.jobs {
				p.process(track)
			}
		}()
	}
}

// Stop waits for workers to finish after closing the queue.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Submit queues a track without blocking; a full queue drops the job.
func (p *Pool) Submit(track domain.Track) {
	select {
	case p.jobs <- track:
	default:
		p.log.Warn().Str("track", track.ID).Msg("dropping preview analysis job")
	}
}

func (p *Pool) process(track domain.Track) {
	if track.PreviewURL == "" {
		p.log.Debug().Str("track", track.ID).Msg("no preview url, skipping analysis")
		return
	}

	energy, err := AnalyzePreviewFunc(track.PreviewURL)
	if err != nil {
		p.log.Warn().Err(err).Str("track", track.ID).Msg("preview analysis failed")
		return
	}

	if err := p.repo.UpdateTrackEnergy(context.Background(), track.ID, energy); err != nil {
		p.log.Warn().Err(err).Str("track", track.ID).Msg("failed to update track energy")
		return
	}
	p.log.Info().Str("track", track.ID).Float64("energy", energy).Msg("analyzed preview")
}
