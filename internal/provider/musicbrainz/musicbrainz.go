// Package musicbrainz adapts the MusicBrainz WS/2 API to the credit
// pipeline's metadata service interface.
package musicbrainz

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Gatallah-de/Artist-Explorer/internal/cache"
	"github.com/Gatallah-de/Artist-Explorer/internal/credits"
	"github.com/Gatallah-de/Artist-Explorer/internal/provider"
	"github.com/Gatallah-de/Artist-Explorer/internal/version"
)

const defaultBaseURL = "https://musicbrainz.org/ws/2"

// searchLimit caps how many candidates each search request returns.
const searchLimit = 10

// releaseInc requests the full relationship graph on a release fetch.
const releaseInc = "recordings+media+artist-credits+labels+url-rels+recording-rels+artist-rels+label-rels+work-rels"

// Adapter implements credits.MetadataService over the MusicBrainz API.
type Adapter struct {
	client  *http.Client
	limiter *provider.RateLimiterMap
	cache   *cache.TTL
	logger  *slog.Logger
	baseURL string
}

// New creates a MusicBrainz adapter with the default base URL.
func New(limiter *provider.RateLimiterMap, responses *cache.TTL, logger *slog.Logger) *Adapter {
	return NewWithBaseURL(limiter, responses, logger, defaultBaseURL)
}

// NewWithBaseURL creates a MusicBrainz adapter with a custom base URL (for testing).
func NewWithBaseURL(limiter *provider.RateLimiterMap, responses *cache.TTL, logger *slog.Logger, baseURL string) *Adapter {
	return &Adapter{
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: limiter,
		cache:   responses,
		logger:  logger.With(slog.String("provider", "musicbrainz")),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// SearchReleaseGroups searches work-groups by exact-quoted title and artist,
// optionally constrained by release date year.
func (a *Adapter) SearchReleaseGroups(ctx context.Context, title, artist string, year int) ([]credits.Candidate, error) {
	params := url.Values{
		"query": {luceneQuery(title, artist, year)},
		"fmt":   {"json"},
		"limit": {strconv.Itoa(searchLimit)},
	}
	body, err := a.doRequest(ctx, a.baseURL+"/release-group?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp ReleaseGroupSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing release-group search response: %w", err)
	}

	results := make([]credits.Candidate, 0, len(resp.ReleaseGroups))
	for _, rg := range resp.ReleaseGroups {
		results = append(results, credits.Candidate{
			ID:          rg.ID,
			GroupID:     rg.ID,
			Title:       rg.Title,
			Artist:      joinArtistCredit(rg.ArtistCredit),
			Year:        yearOf(rg.FirstReleaseDate),
			PrimaryType: strings.ToLower(rg.PrimaryType),
		})
	}
	return results, nil
}

// SearchReleases searches individual releases by exact-quoted title and artist.
func (a *Adapter) SearchReleases(ctx context.Context, title, artist string, year int) ([]credits.Candidate, error) {
	params := url.Values{
		"query": {luceneQuery(title, artist, year)},
		"fmt":   {"json"},
		"limit": {strconv.Itoa(searchLimit)},
	}
	body, err := a.doRequest(ctx, a.baseURL+"/release?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp ReleaseSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing release search response: %w", err)
	}

	results := make([]credits.Candidate, 0, len(resp.Releases))
	for _, rel := range resp.Releases {
		c := credits.Candidate{
			ID:     rel.ID,
			Title:  rel.Title,
			Artist: joinArtistCredit(rel.ArtistCredit),
			Year:   yearOf(rel.Date),
			Status: strings.ToLower(rel.Status),
		}
		if rel.ReleaseGroup != nil {
			c.GroupID = rel.ReleaseGroup.ID
		}
		results = append(results, c)
	}
	return results, nil
}

// GetGroupReleases returns the member releases of a work-group with their status.
func (a *Adapter) GetGroupReleases(ctx context.Context, groupID string) ([]credits.GroupRelease, error) {
	params := url.Values{
		"inc": {"releases"},
		"fmt": {"json"},
	}
	body, err := a.doRequest(ctx, a.baseURL+"/release-group/"+url.PathEscape(groupID)+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var rg ReleaseGroup
	if err := json.Unmarshal(body, &rg); err != nil {
		return nil, fmt.Errorf("parsing release-group response: %w", err)
	}

	members := make([]credits.GroupRelease, 0, len(rg.Releases))
	for _, rel := range rg.Releases {
		members = append(members, credits.GroupRelease{ID: rel.ID, Status: rel.Status})
	}
	return members, nil
}

// GetRelease fetches a release with its full relationship, media, track and
// recording nesting.
func (a *Adapter) GetRelease(ctx context.Context, releaseID string) (*credits.Release, error) {
	params := url.Values{
		"inc": {releaseInc},
		"fmt": {"json"},
	}
	body, err := a.doRequest(ctx, a.baseURL+"/release/"+url.PathEscape(releaseID)+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var rel Release
	if err := json.Unmarshal(body, &rel); err != nil {
		return nil, fmt.Errorf("parsing release response: %w", err)
	}
	return mapRelease(&rel), nil
}

// doRequest executes an HTTP GET with rate limiting, response caching, and
// standard headers.
func (a *Adapter) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	if body, ok := a.cache.Get(reqURL); ok {
		return body, nil
	}

	if err := a.limiter.Wait(ctx, provider.NameMusicBrainz); err != nil {
		return nil, &provider.ErrProviderUnavailable{
			Provider: provider.NameMusicBrainz,
			Cause:    fmt.Errorf("rate limiter: %w", err),
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent())
	req.Header.Set("Accept", "application/json")

	a.logger.Debug("requesting", slog.String("url", reqURL))

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &provider.ErrProviderUnavailable{
			Provider: provider.NameMusicBrainz,
			Cause:    err,
		}
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &provider.ErrNotFound{
			Provider: provider.NameMusicBrainz,
			ID:       reqURL,
		}
	}

	if resp.StatusCode == http.StatusServiceUnavailable || resp.StatusCode == http.StatusTooManyRequests {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &provider.ErrProviderUnavailable{
			Provider:   provider.NameMusicBrainz,
			Cause:      fmt.Errorf("HTTP %d", resp.StatusCode),
			RetryAfter: 2 * time.Second,
		}
	}

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &provider.ErrProviderUnavailable{
			Provider: provider.NameMusicBrainz,
			Cause:    fmt.Errorf("unexpected HTTP %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	a.cache.Set(reqURL, body)
	return body, nil
}

// luceneQuery builds the structured search expression, e.g.
// `release:"OK Computer" AND artist:"Radiohead" AND date:1997`.
func luceneQuery(title, artist string, year int) string {
	terms := []string{
		`release:"` + escapeQuotes(title) + `"`,
		`artist:"` + escapeQuotes(artist) + `"`,
	}
	if year != 0 {
		terms = append(terms, "date:"+strconv.Itoa(year))
	}
	return strings.Join(terms, " AND ")
}

// escapeQuotes escapes embedded double quotes for a quoted Lucene phrase.
func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// joinArtistCredit concatenates the ordered artist credit names.
func joinArtistCredit(acs []ArtistCredit) string {
	names := make([]string, 0, len(acs))
	for _, ac := range acs {
		if ac.Name != "" {
			names = append(names, ac.Name)
		}
	}
	return strings.Join(names, " ")
}

// yearOf extracts the year from a MusicBrainz date string (YYYY,
// YYYY-MM or YYYY-MM-DD). Returns 0 when absent or unparseable.
func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return y
}

// mapRelease converts a raw release payload into the pipeline's model.
func mapRelease(rel *Release) *credits.Release {
	out := &credits.Release{
		ID:        rel.ID,
		Relations: mapRelations(rel.Relations),
	}
	for _, med := range rel.Media {
		m := credits.Medium{Tracks: make([]credits.Track, 0, len(med.Tracks))}
		for _, trk := range med.Tracks {
			t := credits.Track{}
			if trk.Recording != nil {
				t.Recording = &credits.Recording{
					Relations: mapRelations(trk.Recording.Relations),
				}
			}
			m.Tracks = append(m.Tracks, t)
		}
		out.Media = append(out.Media, m)
	}
	return out
}

// mapRelations flattens a raw relation list, resolving the linked artist
// from either the direct artist object or the first artist-credit entry.
func mapRelations(rels []Relation) []credits.Relation {
	out := make([]credits.Relation, 0, len(rels))
	for _, r := range rels {
		mapped := credits.Relation{
			Type:               r.Type,
			TargetCredit:       r.TargetCredit,
			ArtistCreditPhrase: r.ArtistCreditPhrase,
			Name:               r.Name,
		}

		artist := r.Artist
		if artist == nil && len(r.ArtistCredit) > 0 {
			artist = r.ArtistCredit[0].Artist
		}
		if artist != nil {
			mapped.ArtistName = artist.Name
			mapped.ArtistID = artist.ID
		}

		out = append(out, mapped)
	}
	return out
}

func userAgent() string {
	return fmt.Sprintf("ArtistExplorer/%s (https://github.com/Gatallah-de/Artist-Explorer)", version.Version)
}
