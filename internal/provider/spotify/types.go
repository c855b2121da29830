package spotify

// Spotify Web API JSON response types, limited to the fields the catalog
// surface consumes.

// SearchResponse is the top-level response from the search endpoint. Only the
// sections matching the requested types are populated.
type SearchResponse struct {
	Artists *ArtistPage `json:"artists,omitempty"`
	Albums  *AlbumPage  `json:"albums,omitempty"`
}

// ArtistPage is a paged list of artists.
type ArtistPage struct {
	Items []Artist `json:"items"`
	Total int      `json:"total"`
}

// AlbumPage is a paged list of albums.
type AlbumPage struct {
	Items []Album `json:"items"`
	Total int     `json:"total"`
}

// Artist represents a Spotify artist object.
type Artist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Genres       []string     `json:"genres"`
	Popularity   int          `json:"popularity"`
	Followers    Followers    `json:"followers"`
	Images       []Image      `json:"images"`
	ExternalURLs ExternalURLs `json:"external_urls"`
}

// Followers carries the follower count of an artist.
type Followers struct {
	Total int `json:"total"`
}

// Album represents a Spotify album object. Search results carry the summary
// fields; a detail fetch also fills Tracks.
type Album struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	AlbumType            string       `json:"album_type"`
	ReleaseDate          string       `json:"release_date"`
	ReleaseDatePrecision string       `json:"release_date_precision"`
	TotalTracks          int          `json:"total_tracks"`
	Artists              []Artist     `json:"artists"`
	Images               []Image      `json:"images"`
	ExternalURLs         ExternalURLs `json:"external_urls"`
	Tracks               *TrackPage   `json:"tracks,omitempty"`
}

// TrackPage is a paged list of tracks embedded in an album detail response.
type TrackPage struct {
	Items []Track `json:"items"`
	Total int     `json:"total"`
}

// TopTracksResponse is the response from the artist top-tracks endpoint.
type TopTracksResponse struct {
	Tracks []Track `json:"tracks"`
}

// Track represents a Spotify track object.
type Track struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	DurationMS   int          `json:"duration_ms"`
	TrackNumber  int          `json:"track_number"`
	PreviewURL   string       `json:"preview_url"`
	ExternalURLs ExternalURLs `json:"external_urls"`
	Album        *Album       `json:"album,omitempty"`
}

// Image is a Spotify-hosted image.
type Image struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ExternalURLs holds the public web links of an entity.
type ExternalURLs struct {
	Spotify string `json:"spotify"`
}
