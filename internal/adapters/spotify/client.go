// Package spotify implements the listening-history, candidate-pool, and
// playlist-store ports against the Spotify Web API.
package spotify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/whitmore-labs/skylark/internal/core/domain"
	"github.com/whitmore-labs/skylark/internal/core/ports"
)

const (
	defaultBaseURL = "https://api.spotify.com/v1"

	historyLimit   = 50
	candidateLimit = 50
)

// Client is an HTTP client for the Spotify adapter. Credentials are passed
// per call, never stored on the client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        zerolog.Logger
}

// compile-time interface assertions
var (
	_ ports.HistoryProvider = (*Client)(nil)
	_ ports.CandidatePool   = (*Client)(nil)
	_ ports.PlaylistStore   = (*Client)(nil)
)

// NewClient constructs a new Spotify client.
func NewClient(httpClient *http.Client, baseURL string, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		log:        log,
	}
}

// RecentHistory returns the user's most recently played tracks, each enriched
// with its audio feature vector where the catalog has one. The result is
// empty, never nil, when the user has no history.
func (c *Client) RecentHistory(ctx context.Context, cred domain.Credential) ([]domain.HistoryEntry, error) {
	endpoint := fmt.Sprintf("%s/me/player/recently-played?limit=%d", c.baseURL, historyLimit)

	body, err := c.do(ctx, http.MethodGet, endpoint, nil, cred)
	if err != nil {
		return nil, err
	}

	var page recentlyPlayedPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("spotify adapter: decode history: %w", err)
	}

	tracks := make([]domain.Track, 0, len(page.Items))
	for _, item := range page.Items {
		tracks = append(tracks, mapTrackToDomain(item.Track, nil))
	}

	if err := c.enrichFeatures(ctx, cred, tracks); err != nil {
		return nil, err
	}

	entries := make([]domain.HistoryEntry, len(tracks))
	for i, t := range tracks {
		entries[i] = domain.HistoryEntry{Track: t}
	}
	return entries, nil
}

// SearchByMood queries the catalog for tracks matching the mood label and
// enriches each result with its feature vector before handing it to the
// ranker.
func (c *Client) SearchByMood(ctx context.Context, mood domain.Mood, cred domain.Credential) ([]domain.Track, error) {
	query := url.Values{}
	query.Set("q", string(mood))
	query.Set("type", "track")
	query.Set("limit", fmt.Sprintf("%d", candidateLimit))

	endpoint := fmt.Sprintf("%s/search?%s", c.baseURL, query.Encode())

	body, err := c.do(ctx, http.MethodGet, endpoint, nil, cred)
	if err != nil {
		return nil, err
	}

	var page searchPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("spotify adapter: decode search: %w", err)
	}

	tracks := make([]domain.Track, 0, len(page.Tracks.Items))
	for _, st := range page.Tracks.Items {
		tracks = append(tracks, mapTrackToDomain(st, nil))
	}

	if err := c.enrichFeatures(ctx, cred, tracks); err != nil {
		return nil, err
	}
	return tracks, nil
}

// FindByName scans the user's playlists for the first one whose name equals
// name exactly. Returns domain.ErrNotFound when no playlist matches.
func (c *Client) FindByName(ctx context.Context, name string, cred domain.Credential) (string, error) {
	endpoint := fmt.Sprintf("%s/me/playlists", c.baseURL)

	body, err := c.do(ctx, http.MethodGet, endpoint, nil, cred)
	if err != nil {
		return "", err
	}

	var page playlistPage
	if err := json.Unmarshal(body, &page); err != nil {
		return "", fmt.Errorf("spotify adapter: decode playlists: %w", err)
	}

	for _, pl := range page.Items {
		if pl.Name == name {
			return pl.ID, nil
		}
	}
	return "", fmt.Errorf("spotify adapter: playlist %q: %w", name, domain.ErrNotFound)
}

// Create makes a new playlist for the current user and returns its id.
func (c *Client) Create(ctx context.Context, name, description string, public bool, cred domain.Credential) (string, error) {
	endpoint := fmt.Sprintf("%s/me/playlists", c.baseURL)
	payload := createPlaylistRequest{Name: name, Description: description, Public: public}

	body, err := c.do(ctx, http.MethodPost, endpoint, payload, cred)
	if err != nil {
		return "", err
	}

	var created createdPlaylist
	if err := json.Unmarshal(body, &created); err != nil {
		return "", fmt.Errorf("spotify adapter: decode created playlist: %w", err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("spotify adapter: created playlist has no id")
	}
	return created.ID, nil
}

// Append adds the track URIs to the playlist in the order given. No
// deduplication against existing contents happens here or upstream.
func (c *Client) Append(ctx context.Context, playlistID string, trackURIs []string, cred domain.Credential) error {
	endpoint := fmt.Sprintf("%s/playlists/%s/tracks", c.baseURL, playlistID)
	payload := addTracksRequest{URIs: trackURIs}

	_, err := c.do(ctx, http.MethodPost, endpoint, payload, cred)
	return err
}

// do performs one authenticated request. A 401 response surfaces as
// domain.ErrCredentialExpired so the service layer can run its single
// refresh-and-retry.
func (c *Client) do(ctx context.Context, method, endpoint string, payload any, cred domain.Credential) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("spotify adapter: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+cred.AccessToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("spotify adapter: %w", domain.ErrCredentialExpired)
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated:
		return nil, fmt.Errorf("spotify adapter: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: read response: %w", err)
	}
	return body, nil
}
