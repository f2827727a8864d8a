package spotify

import (
	"strings"

	"github.com/whitmore-labs/skylark/internal/core/domain"
)

// mapTrackToDomain converts a raw Spotify track to a clean domain track.
// features can be nil when the endpoint that produced the track does not
// carry them; enrichment fills the vector in afterwards.
func mapTrackToDomain(st spotifyTrack, features *audioFeatures) domain.Track {
	artistNames := make([]string, 0, len(st.Artists))
	for _, a := range st.Artists {
		artistNames = append(artistNames, a.Name)
	}

	dt := domain.Track{
		ID:         st.ID,
		Title:      st.Name,
		Artist:     strings.Join(artistNames, ", "),
		Album:      st.Album.Name,
		PreviewURL: st.PreviewURL,
	}

	if features != nil {
		dt.Features = mapFeatureVector(*features)
	}
	return dt
}

func mapFeatureVector(f audioFeatures) domain.FeatureVector {
	return domain.FeatureVector{
		"energy":           f.Energy,
		"valence":          f.Valence,
		"danceability":     f.Danceability,
		"acousticness":     f.Acousticness,
		"instrumentalness": f.Instrumentalness,
	}
}
