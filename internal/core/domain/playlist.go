package domain

import "time"

// Playlist is an externally persisted playlist. The name doubles as the
// lookup key: at most one playlist per mood name per user is treated as
// canonical, and a naming collision is the caller's responsibility. The
// engine only finds playlists by name and appends to them.
type Playlist struct {
	ID     string
	Name   string
	Tracks []Track
}

// Recommendation is the locally persisted record of one completed ranking:
// the mood it was generated for, the destination playlist if sync succeeded,
// and the ranked tracks in order.
type Recommendation struct {
	ID         string
	Mood       Mood
	PlaylistID string // empty when playlist sync was unavailable
	Tracks     []Track
	CreatedAt  time.Time
}
