package spotify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whitmore-labs/skylark/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.Client(), srv.URL, zerolog.Nop())
}

func testCred() domain.Credential {
	return domain.Credential{AccessToken: "token-1", RefreshToken: "refresh-1"}
}

func featuresHandler(t *testing.T, byID map[string]map[string]float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids := strings.Split(r.URL.Query().Get("ids"), ",")
		var out struct {
			AudioFeatures []map[string]any `json:"audio_features"`
		}
		for _, id := range ids {
			f, ok := byID[id]
			if !ok {
				out.AudioFeatures = append(out.AudioFeatures, nil)
				continue
			}
			entry := map[string]any{"id": id}
			for k, v := range f {
				entry[k] = v
			}
			out.AudioFeatures = append(out.AudioFeatures, entry)
		}
		require.NoError(t, json.NewEncoder(w).Encode(out))
	}
}

func TestRecentHistory(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/me/player/recently-played", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"items": [
			{"track": {"id": "t1", "name": "First", "artists": [{"name": "A"}, {"name": "B"}], "album": {"name": "LP"}}},
			{"track": {"id": "t2", "name": "Second", "artists": [{"name": "C"}]}}
		]}`))
	})
	mux.HandleFunc("/audio-features", featuresHandler(t, map[string]map[string]float64{
		"t1": {"energy": 0.8, "valence": 0.6, "danceability": 0.7, "acousticness": 0.2},
	}))

	client := newTestClient(t, mux)
	entries, err := client.RecentHistory(context.Background(), testCred())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "First", entries[0].Track.Title)
	assert.Equal(t, "A, B", entries[0].Track.Artist)
	assert.Equal(t, "LP", entries[0].Track.Album)
	assert.InDelta(t, 0.8, entries[0].Track.Features["energy"], 1e-9)

	// t2 has no catalog features and keeps an empty vector.
	assert.Empty(t, entries[1].Track.Features)
}

func TestSearchByMood(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Cozy", r.URL.Query().Get("q"))
		assert.Equal(t, "track", r.URL.Query().Get("type"))
		w.Write([]byte(`{"tracks": {"items": [
			{"id": "s1", "name": "Fireside", "artists": [{"name": "X"}], "preview_url": "http://cdn/p1.mp3"},
			{"id": "s2", "name": "Hearth", "artists": [{"name": "Y"}]}
		]}}`))
	})
	mux.HandleFunc("/audio-features", featuresHandler(t, map[string]map[string]float64{
		"s1": {"energy": 0.3, "valence": 0.6, "acousticness": 0.9},
		"s2": {"energy": 0.4, "valence": 0.7, "acousticness": 0.8},
	}))

	client := newTestClient(t, mux)
	tracks, err := client.SearchByMood(context.Background(), domain.MoodCozy, testCred())
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, "http://cdn/p1.mp3", tracks[0].PreviewURL)
	assert.InDelta(t, 0.9, tracks[0].Features["acousticness"], 1e-9)
	assert.InDelta(t, 0.4, tracks[1].Features["energy"], 1e-9)
}

func TestFindByName(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/me/playlists", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": [
			{"id": "pl-1", "name": "Cozy Extended"},
			{"id": "pl-2", "name": "Cozy"},
			{"id": "pl-3", "name": "Cozy"}
		]}`))
	})

	client := newTestClient(t, mux)

	// Exact equality only, first match wins.
	id, err := client.FindByName(context.Background(), "Cozy", testCred())
	require.NoError(t, err)
	assert.Equal(t, "pl-2", id)

	_, err = client.FindByName(context.Background(), "Sad", testCred())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/me/playlists", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var req createPlaylistRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Cozy", req.Name)
		assert.Equal(t, "A playlist for the Cozy mood", req.Description)
		assert.False(t, req.Public)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "pl-new"}`))
	})

	client := newTestClient(t, mux)
	id, err := client.Create(context.Background(), "Cozy", "A playlist for the Cozy mood", false, testCred())
	require.NoError(t, err)
	assert.Equal(t, "pl-new", id)
}

func TestAppend(t *testing.T) {
	var got addTracksRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/playlists/pl-1/tracks", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"snapshot_id": "snap"}`))
	})

	client := newTestClient(t, mux)
	uris := []string{"spotify:track:a", "spotify:track:b"}
	require.NoError(t, client.Append(context.Background(), "pl-1", uris, testCred()))
	assert.Equal(t, uris, got.URIs)
}

func TestExpiredCredentialSignal(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.RecentHistory(context.Background(), testCred())
	require.ErrorIs(t, err, domain.ErrCredentialExpired)

	_, err = client.SearchByMood(context.Background(), domain.MoodSad, testCred())
	require.ErrorIs(t, err, domain.ErrCredentialExpired)

	_, err = client.FindByName(context.Background(), "Sad", testCred())
	require.ErrorIs(t, err, domain.ErrCredentialExpired)

	err = client.Append(context.Background(), "pl-1", []string{"spotify:track:a"}, testCred())
	require.ErrorIs(t, err, domain.ErrCredentialExpired)
}

func TestServerErrorIsNotExpiredSignal(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := client.SearchByMood(context.Background(), domain.MoodSad, testCred())
	require.Error(t, err)
	require.NotErrorIs(t, err, domain.ErrCredentialExpired)
}
