// Package credits resolves an album (title, artist, optional year) to a
// MusicBrainz release and extracts a flat, deduplicated list of personnel
// credits from its relationship graph.
//
// The pipeline is a cascade: a resolver tries a sequence of search
// strategies until one yields a positive-scoring candidate, a selector picks
// the member release with the richest relationship data, and an extractor
// flattens release- and recording-level relations into credit records. Every
// stage is stateless; all upstream failures degrade to an empty result.
package credits

import "context"

// Source identifies the metadata service credits are extracted from.
const Source = "musicbrainz"

// Query identifies the album to look up.
type Query struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Year   int    `json:"year,omitempty"` // 0 = unknown
}

// Candidate is a search hit from the metadata service: either a work-group
// (release-group) or a concrete release.
type Candidate struct {
	ID          string // provider-scoped id of the hit itself
	GroupID     string // owning work-group id; equals ID for work-group hits
	Title       string
	Artist      string // artist credit names, concatenated in order
	Year        int    // release year when reported, else 0
	PrimaryType string // e.g. "album"; empty for releases
	Status      string // e.g. "official"; empty for work-groups
}

// ScoredCandidate pairs a candidate with its match score. Higher is better;
// the score is deterministic for identical inputs.
type ScoredCandidate struct {
	Candidate
	Score int
}

// ResolvedTarget is the outcome of resolution: a work-group id, a release
// id, or neither (no match).
type ResolvedTarget struct {
	GroupID   string `json:"group_id,omitempty"`
	ReleaseID string `json:"release_id,omitempty"`
}

// IsZero reports whether resolution found nothing.
func (t ResolvedTarget) IsZero() bool { return t.GroupID == "" && t.ReleaseID == "" }

// Scope distinguishes where a relation was attached.
type Scope string

// Relation scopes.
const (
	ScopeRelease   Scope = "release"
	ScopeRecording Scope = "recording"
)

// Credit is a single deduplicated (role, contributor) fact.
type Credit struct {
	Role  string `json:"role"`
	Name  string `json:"name"`
	MBID  string `json:"mbid,omitempty"`
	Scope Scope  `json:"scope"`
}

// Result is the envelope returned to callers. Credits contains no two
// entries with the same (role, name) pair under case-insensitive comparison.
type Result struct {
	Source    string   `json:"source"`
	MatchedID string   `json:"matched_id,omitempty"`
	Credits   []Credit `json:"credits"`
}

// GroupRelease is one member release of a work-group.
type GroupRelease struct {
	ID     string
	Status string
}

// Release is a concrete release with its full relationship graph.
type Release struct {
	ID        string
	Relations []Relation
	Media     []Medium
}

// Medium is one disc/side of a release.
type Medium struct {
	Tracks []Track
}

// Track is a track slot on a medium.
type Track struct {
	Recording *Recording
}

// Recording carries the per-track relationship list.
type Recording struct {
	Relations []Relation
}

// Relation is a raw typed relationship. Contributor identity may be present
// in several alternative fields; extraction applies a fixed precedence.
type Relation struct {
	Type               string // role, as reported (any case)
	ArtistName         string // linked artist display name
	ArtistID           string // linked artist id
	TargetCredit       string
	ArtistCreditPhrase string
	Name               string // raw fallback name
}

// MetadataService is the upstream surface the pipeline consumes. The
// production implementation is the MusicBrainz adapter; tests supply fakes.
type MetadataService interface {
	// SearchReleaseGroups searches work-groups by title and artist. A zero
	// year omits the date constraint.
	SearchReleaseGroups(ctx context.Context, title, artist string, year int) ([]Candidate, error)

	// SearchReleases searches individual releases by title and artist.
	SearchReleases(ctx context.Context, title, artist string, year int) ([]Candidate, error)

	// GetGroupReleases returns the member releases of a work-group.
	GetGroupReleases(ctx context.Context, groupID string) ([]GroupRelease, error)

	// GetRelease fetches a release with full relationship, media, track and
	// recording nesting.
	GetRelease(ctx context.Context, releaseID string) (*Release, error)
}
