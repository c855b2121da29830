// Package spotify adapts the Spotify Web API as the catalog provider.
// Authentication uses the client-credentials flow; the token source caches
// and refreshes the access token transparently.
package spotify

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

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/Gatallah-de/Artist-Explorer/internal/cache"
	"github.com/Gatallah-de/Artist-Explorer/internal/provider"
)

const (
	defaultBaseURL  = "https://api.spotify.com/v1"
	defaultTokenURL = "https://accounts.spotify.com/api/token"
)

// searchLimit caps search result pages.
const searchLimit = 8

// albumsLimit caps the artist discography page.
const albumsLimit = 50

// maxRetries bounds retry attempts after a 429 response.
const maxRetries = 2

// Adapter is the Spotify catalog client.
type Adapter struct {
	client  *http.Client
	limiter *provider.RateLimiterMap
	cache   *cache.TTL
	logger  *slog.Logger
	baseURL string
	market  string
	enabled bool
}

// New creates a Spotify adapter against the production endpoints.
func New(clientID, clientSecret, market string, limiter *provider.RateLimiterMap, responses *cache.TTL, logger *slog.Logger) *Adapter {
	return NewWithBaseURL(clientID, clientSecret, market, limiter, responses, logger, defaultBaseURL, defaultTokenURL)
}

// NewWithBaseURL creates a Spotify adapter with custom API and token
// endpoints (for testing).
func NewWithBaseURL(clientID, clientSecret, market string, limiter *provider.RateLimiterMap, responses *cache.TTL, logger *slog.Logger, baseURL, tokenURL string) *Adapter {
	a := &Adapter{
		limiter: limiter,
		cache:   responses,
		logger:  logger.With(slog.String("provider", "spotify")),
		baseURL: strings.TrimRight(baseURL, "/"),
		market:  market,
		enabled: clientID != "" && clientSecret != "",
	}

	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}
	a.client = &http.Client{
		Timeout: 15 * time.Second,
		Transport: &oauth2.Transport{
			Source: conf.TokenSource(context.Background()),
		},
	}
	return a
}

// Enabled reports whether client credentials were configured.
func (a *Adapter) Enabled() bool {
	return a.enabled
}

// SearchArtists searches the catalog for artists matching the query.
func (a *Adapter) SearchArtists(ctx context.Context, query string) ([]provider.Artist, error) {
	params := url.Values{
		"q":     {query},
		"type":  {"artist"},
		"limit": {strconv.Itoa(searchLimit)},
	}
	body, err := a.doRequest(ctx, a.baseURL+"/search?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing artist search response: %w", err)
	}
	if resp.Artists == nil {
		return nil, nil
	}

	results := make([]provider.Artist, 0, len(resp.Artists.Items))
	for _, item := range resp.Artists.Items {
		results = append(results, mapArtist(item))
	}
	return results, nil
}

// SearchAlbums searches the catalog for albums matching the query.
func (a *Adapter) SearchAlbums(ctx context.Context, query string) ([]provider.Album, error) {
	params := url.Values{
		"q":     {query},
		"type":  {"album"},
		"limit": {strconv.Itoa(searchLimit)},
	}
	body, err := a.doRequest(ctx, a.baseURL+"/search?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing album search response: %w", err)
	}
	if resp.Albums == nil {
		return nil, nil
	}

	results := make([]provider.Album, 0, len(resp.Albums.Items))
	for _, item := range resp.Albums.Items {
		results = append(results, mapAlbum(item))
	}
	return results, nil
}

// GetArtist fetches full artist metadata.
func (a *Adapter) GetArtist(ctx context.Context, id string) (*provider.Artist, error) {
	body, err := a.doRequest(ctx, a.baseURL+"/artists/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}

	var artist Artist
	if err := json.Unmarshal(body, &artist); err != nil {
		return nil, fmt.Errorf("parsing artist response: %w", err)
	}
	mapped := mapArtist(artist)
	return &mapped, nil
}

// GetArtistTopTracks fetches the artist's top tracks for the configured market.
func (a *Adapter) GetArtistTopTracks(ctx context.Context, id string) ([]provider.Track, error) {
	params := url.Values{"market": {a.market}}
	body, err := a.doRequest(ctx, a.baseURL+"/artists/"+url.PathEscape(id)+"/top-tracks?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp TopTracksResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parsing top-tracks response: %w", err)
	}

	results := make([]provider.Track, 0, len(resp.Tracks))
	for _, item := range resp.Tracks {
		results = append(results, mapTrack(item))
	}
	return results, nil
}

// GetArtistAlbums fetches the artist's albums, collapsing variant editions
// that share a normalized title. The first occurrence wins, which matches
// the API's popularity ordering.
func (a *Adapter) GetArtistAlbums(ctx context.Context, id string) ([]provider.Album, error) {
	params := url.Values{
		"include_groups": {"album,single"},
		"market":         {a.market},
		"limit":          {strconv.Itoa(albumsLimit)},
	}
	body, err := a.doRequest(ctx, a.baseURL+"/artists/"+url.PathEscape(id)+"/albums?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var page AlbumPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("parsing artist albums response: %w", err)
	}

	seen := make(map[string]bool, len(page.Items))
	results := make([]provider.Album, 0, len(page.Items))
	for _, item := range page.Items {
		key := normalizeTitle(item.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		results = append(results, mapAlbum(item))
	}
	return results, nil
}

// GetAlbum fetches full album metadata including the tracklist.
func (a *Adapter) GetAlbum(ctx context.Context, id string) (*provider.Album, error) {
	body, err := a.doRequest(ctx, a.baseURL+"/albums/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}

	var album Album
	if err := json.Unmarshal(body, &album); err != nil {
		return nil, fmt.Errorf("parsing album response: %w", err)
	}
	mapped := mapAlbum(album)
	if album.Tracks != nil {
		mapped.Tracks = make([]provider.Track, 0, len(album.Tracks.Items))
		for _, item := range album.Tracks.Items {
			mapped.Tracks = append(mapped.Tracks, mapTrack(item))
		}
	}
	return &mapped, nil
}

// doRequest executes an authenticated GET with rate limiting, response
// caching, and bounded retries on 429.
func (a *Adapter) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	if !a.enabled {
		return nil, &provider.ErrAuthRequired{Provider: provider.NameSpotify}
	}
	if body, ok := a.cache.Get(reqURL); ok {
		return body, nil
	}

	for attempt := 0; ; attempt++ {
		if err := a.limiter.Wait(ctx, provider.NameSpotify); err != nil {
			return nil, &provider.ErrProviderUnavailable{
				Provider: provider.NameSpotify,
				Cause:    fmt.Errorf("rate limiter: %w", err),
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := a.client.Do(req)
		if err != nil {
			return nil, &provider.ErrProviderUnavailable{
				Provider: provider.NameSpotify,
				Cause:    err,
			}
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			wait := retryAfter(resp)
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close() //nolint:errcheck
			if attempt >= maxRetries {
				return nil, &provider.ErrProviderUnavailable{
					Provider:   provider.NameSpotify,
					Cause:      fmt.Errorf("rate limited after %d retries", maxRetries),
					RetryAfter: wait,
				}
			}
			a.logger.Debug("rate limited, retrying",
				slog.Duration("wait", wait),
				slog.Int("attempt", attempt+1))
			if err := sleepContext(ctx, wait); err != nil {
				return nil, err
			}
			continue
		}

		body, err := a.readResponse(resp, reqURL)
		if err != nil {
			return nil, err
		}
		a.cache.Set(reqURL, body)
		return body, nil
	}
}

func (a *Adapter) readResponse(resp *http.Response, reqURL string) ([]byte, error) {
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &provider.ErrNotFound{Provider: provider.NameSpotify, ID: reqURL}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &provider.ErrAuthRequired{Provider: provider.NameSpotify}
	case resp.StatusCode != http.StatusOK:
		return nil, &provider.ErrProviderUnavailable{
			Provider: provider.NameSpotify,
			Cause:    fmt.Errorf("unexpected HTTP %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}

// retryAfter parses the Retry-After header, defaulting to one second.
func retryAfter(resp *http.Response) time.Duration {
	if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return time.Second
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// normalizeTitle collapses edition variants of an album title to a single
// dedup key: lowercase, parenthetical segments removed, whitespace squeezed.
func normalizeTitle(title string) string {
	var b strings.Builder
	depth := 0
	for _, r := range strings.ToLower(title) {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				b.WriteRune(r)
			}
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func mapArtist(in Artist) provider.Artist {
	return provider.Artist{
		ID:         in.ID,
		Name:       in.Name,
		Images:     mapImages(in.Images),
		Genres:     in.Genres,
		Popularity: in.Popularity,
		Followers:  in.Followers.Total,
	}
}

func mapAlbum(in Album) provider.Album {
	out := provider.Album{
		ID:    in.ID,
		Title: in.Name,
		Year:  yearOf(in.ReleaseDate),
		URL:   in.ExternalURLs.Spotify,
	}
	if len(in.Images) > 0 {
		out.CoverURL = in.Images[0].URL
	}
	for _, ar := range in.Artists {
		out.Artists = append(out.Artists, provider.Artist{ID: ar.ID, Name: ar.Name})
	}
	return out
}

func mapTrack(in Track) provider.Track {
	return provider.Track{
		ID:          in.ID,
		Name:        in.Name,
		DurationMS:  in.DurationMS,
		TrackNumber: in.TrackNumber,
		PreviewURL:  in.PreviewURL,
		ExternalURL: in.ExternalURLs.Spotify,
	}
}

func mapImages(in []Image) []provider.Image {
	if len(in) == 0 {
		return nil
	}
	out := make([]provider.Image, 0, len(in))
	for _, img := range in {
		out = append(out, provider.Image{URL: img.URL, Width: img.Width, Height: img.Height})
	}
	return out
}

// yearOf extracts the year from a release date string (YYYY, YYYY-MM or
// YYYY-MM-DD). Returns 0 when absent or unparseable.
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
