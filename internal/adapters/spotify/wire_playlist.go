package spotify

// playlistPage is the response of the current user's playlists endpoint.
type playlistPage struct {
	Items []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"items"`
}

// createPlaylistRequest is the request body for creating a playlist.
type createPlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Public      bool   `json:"public"`
}

// createdPlaylist is the response body of a successful playlist creation.
type createdPlaylist struct {
	ID string `json:"id"`
}

// addTracksRequest is the request body for appending tracks to a playlist.
type addTracksRequest struct {
	URIs []string `json:"uris"`
}
