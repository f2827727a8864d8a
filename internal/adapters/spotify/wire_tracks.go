package spotify

// spotifyTrack represents a track object in Spotify API responses.
type spotifyTrack struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		Name string `json:"name"`
	} `json:"album"`
	PreviewURL string `json:"preview_url"`
}

// audioFeatures represents the audio-features object for one track. Entries
// for unknown ids come back null, so callers see *audioFeatures.
type audioFeatures struct {
	ID               string  `json:"id"`
	Energy           float64 `json:"energy"`
	Valence          float64 `json:"valence"`
	Danceability     float64 `json:"danceability"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
}

// audioFeaturesPage is the batch audio-features response.
type audioFeaturesPage struct {
	AudioFeatures []*audioFeatures `json:"audio_features"`
}
