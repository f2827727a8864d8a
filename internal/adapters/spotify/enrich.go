package spotify

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/whitmore-labs/skylark/internal/core/domain"
)

const featureBatchSize = 50

// enrichFeatures fills in the feature vector of every track in place via the
// batch audio-features endpoint. Batches run concurrently with a bounded
// fan-out. Tracks the catalog has no features for keep a nil vector; the
// ranker excludes them.
func (c *Client) enrichFeatures(ctx context.Context, cred domain.Credential, tracks []domain.Track) error {
	if len(tracks) == 0 {
		return nil
	}

	index := make(map[string][]int, len(tracks))
	ids := make([]string, 0, len(tracks))
	for i, t := range tracks {
		if t.ID == "" {
			continue
		}
		if _, seen := index[t.ID]; !seen {
			ids = append(ids, t.ID)
		}
		index[t.ID] = append(index[t.ID], i)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	results := make([][]*audioFeatures, (len(ids)+featureBatchSize-1)/featureBatchSize)
	for batch := 0; batch*featureBatchSize < len(ids); batch++ {
		start := batch * featureBatchSize
		end := start + featureBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		chunk := ids[start:end]
		slot := batch

		g.Go(func() error {
			features, err := c.fetchFeatureBatch(gctx, cred, chunk)
			if err != nil {
				return err
			}
			results[slot] = features
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, batch := range results {
		for _, f := range batch {
			if f == nil {
				continue
			}
			for _, i := range index[f.ID] {
				tracks[i].Features = mapFeatureVector(*f)
			}
		}
	}
	return nil
}

func (c *Client) fetchFeatureBatch(ctx context.Context, cred domain.Credential, ids []string) ([]*audioFeatures, error) {
	endpoint := fmt.Sprintf("%s/audio-features?ids=%s", c.baseURL, strings.Join(ids, ","))

	body, err := c.do(ctx, http.MethodGet, endpoint, nil, cred)
	if err != nil {
		return nil, err
	}

	var page audioFeaturesPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("spotify adapter: decode audio features: %w", err)
	}
	return page.AudioFeatures, nil
}
