package spotify

// recentlyPlayedPage is the response of the recently-played endpoint.
type recentlyPlayedPage struct {
	Items []struct {
		Track spotifyTrack `json:"track"`
	} `json:"items"`
}
