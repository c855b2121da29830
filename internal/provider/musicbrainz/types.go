package musicbrainz

// MusicBrainz WS/2 JSON response types. Optional fields are pointers or
// zero-valued so partial payloads decode without error.

// ReleaseGroupSearchResponse is the top-level response from the
// release-group search endpoint.
type ReleaseGroupSearchResponse struct {
	Count         int            `json:"count"`
	Offset        int            `json:"offset"`
	ReleaseGroups []ReleaseGroup `json:"release-groups"`
}

// ReleaseGroup represents a MusicBrainz release group entity.
type ReleaseGroup struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	PrimaryType      string         `json:"primary-type"`
	SecondaryTypes   []string       `json:"secondary-types"`
	FirstReleaseDate string         `json:"first-release-date"`
	ArtistCredit     []ArtistCredit `json:"artist-credit"`
	Releases         []Release      `json:"releases"`
}

// ReleaseSearchResponse is the top-level response from the release search endpoint.
type ReleaseSearchResponse struct {
	Count    int       `json:"count"`
	Offset   int       `json:"offset"`
	Releases []Release `json:"releases"`
}

// Release represents a MusicBrainz release entity. Search results carry only
// the identity fields; a detail fetch with relationship includes also fills
// Relations and Media.
type Release struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Status       string           `json:"status"`
	Date         string           `json:"date"`
	Country      string           `json:"country"`
	ArtistCredit []ArtistCredit   `json:"artist-credit"`
	ReleaseGroup *ReleaseGroupRef `json:"release-group,omitempty"`
	Relations    []Relation       `json:"relations"`
	Media        []Medium         `json:"media"`
}

// ReleaseGroupRef is the abbreviated release-group object embedded in a release.
type ReleaseGroupRef struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	PrimaryType string `json:"primary-type"`
}

// ArtistCredit is one entry of a release's ordered artist credit list.
type ArtistCredit struct {
	Name       string  `json:"name"`
	JoinPhrase string  `json:"joinphrase"`
	Artist     *Artist `json:"artist,omitempty"`
}

// Artist is a linked MusicBrainz artist entity.
type Artist struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	SortName string `json:"sort-name"`
}

// Medium is one physical or digital medium of a release (disc, side, etc.).
type Medium struct {
	Position int     `json:"position"`
	Format   string  `json:"format"`
	Tracks   []Track `json:"tracks"`
}

// Track is a single track entry on a medium.
type Track struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Position  int        `json:"position"`
	Recording *Recording `json:"recording,omitempty"`
}

// Recording is the audio-content identity behind a track, with its own
// relationship list.
type Recording struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Relations []Relation `json:"relations"`
}

// Relation is a typed relationship attached to a release or recording.
// Contributor identity may arrive in several shapes; all are decoded so the
// extraction layer can apply its precedence rules.
type Relation struct {
	Type               string         `json:"type"`
	TargetType         string         `json:"target-type"`
	Direction          string         `json:"direction"`
	Attributes         []string       `json:"attributes"`
	Artist             *Artist        `json:"artist,omitempty"`
	ArtistCredit       []ArtistCredit `json:"artist-credit"`
	TargetCredit       string         `json:"target-credit"`
	ArtistCreditPhrase string         `json:"artist-credit-phrase"`
	Name               string         `json:"name"`
}
