package domain

// Track represents a musical track in the domain layer.
type Track struct {
	ID         string
	Title      string
	Artist     string
	Album      string // optional
	PreviewURL string // optional 30-second audio preview
	Features   FeatureVector
}

// ScoredTrack pairs a candidate with its similarity score during one ranking
// pass. It never outlives the pass that produced it.
type ScoredTrack struct {
	Track Track
	Score float64
}

// URI returns the track identifier in the provider's URI form used when
// appending to playlists.
func (t Track) URI() string {
	return "spotify:track:" + t.ID
}
