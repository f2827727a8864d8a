package spotify

// searchPage is the track-search response.
type searchPage struct {
	Tracks struct {
		Items []spotifyTrack `json:"items"`
	} `json:"tracks"`
}
