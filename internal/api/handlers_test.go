package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/Gatallah-de/Artist-Explorer/internal/catalog"
	"github.com/Gatallah-de/Artist-Explorer/internal/credits"
	"github.com/Gatallah-de/Artist-Explorer/internal/provider"
)

type fakeCatalogService struct {
	searchFn          func(ctx context.Context, query string) (*catalog.SearchResults, error)
	artistPageFn      func(ctx context.Context, id string) (*catalog.ArtistView, error)
	artistTopTracksFn func(ctx context.Context, id string) ([]provider.Track, error)
	artistAlbumsFn    func(ctx context.Context, id string) ([]provider.Album, error)
	albumPageFn       func(ctx context.Context, id string) (*provider.Album, error)
	searchArtistsFn   func(ctx context.Context, query string) ([]provider.Artist, error)
	searchAlbumsFn    func(ctx context.Context, query string) ([]provider.Album, error)
}

func (f *fakeCatalogService) Search(ctx context.Context, query string) (*catalog.SearchResults, error) {
	if f.searchFn == nil {
		return &catalog.SearchResults{Artists: []provider.Artist{}, Albums: []provider.Album{}}, nil
	}
	return f.searchFn(ctx, query)
}

func (f *fakeCatalogService) ArtistPage(ctx context.Context, id string) (*catalog.ArtistView, error) {
	if f.artistPageFn == nil {
		return nil, &provider.ErrNotFound{Provider: provider.NameSpotify, ID: id}
	}
	return f.artistPageFn(ctx, id)
}

func (f *fakeCatalogService) ArtistTopTracks(ctx context.Context, id string) ([]provider.Track, error) {
	if f.artistTopTracksFn == nil {
		return nil, nil
	}
	return f.artistTopTracksFn(ctx, id)
}

func (f *fakeCatalogService) ArtistAlbums(ctx context.Context, id string) ([]provider.Album, error) {
	if f.artistAlbumsFn == nil {
		return nil, nil
	}
	return f.artistAlbumsFn(ctx, id)
}

func (f *fakeCatalogService) AlbumPage(ctx context.Context, id string) (*provider.Album, error) {
	if f.albumPageFn == nil {
		return nil, &provider.ErrNotFound{Provider: provider.NameSpotify, ID: id}
	}
	return f.albumPageFn(ctx, id)
}

func (f *fakeCatalogService) SearchArtists(ctx context.Context, query string) ([]provider.Artist, error) {
	if f.searchArtistsFn == nil {
		return nil, nil
	}
	return f.searchArtistsFn(ctx, query)
}

func (f *fakeCatalogService) SearchAlbums(ctx context.Context, query string) ([]provider.Album, error) {
	if f.searchAlbumsFn == nil {
		return nil, nil
	}
	return f.searchAlbumsFn(ctx, query)
}

type fakeCreditsService struct {
	getCreditsFn func(ctx context.Context, q credits.Query) credits.Result
}

func (f *fakeCreditsService) GetCredits(ctx context.Context, q credits.Query) credits.Result {
	if f.getCreditsFn == nil {
		return credits.Result{Source: credits.Source, Credits: []credits.Credit{}}
	}
	return f.getCreditsFn(ctx, q)
}

func newTestRouter(t *testing.T, cat CatalogService, cred CreditsService) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	r := NewRouter(RouterDeps{
		CatalogService: cat,
		CreditsService: cred,
		Logger:         logger,
		StaticDir:      t.TempDir(),
	})
	return r.Handler()
}

func doGet(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t, &fakeCatalogService{}, &fakeCreditsService{})
	w := doGet(t, h, "/api/v1/health")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestSearch(t *testing.T) {
	h := newTestRouter(t, &fakeCatalogService{
		searchFn: func(ctx context.Context, query string) (*catalog.SearchResults, error) {
			if query != "radiohead" {
				t.Errorf("unexpected query %q", query)
			}
			return &catalog.SearchResults{
				Artists: []provider.Artist{{ID: "ar-1", Name: "Radiohead"}},
				Albums:  []provider.Album{{ID: "al-1", Title: "OK Computer"}},
			}, nil
		},
	}, &fakeCreditsService{})

	w := doGet(t, h, "/api/v1/search?q=radiohead")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	var body catalog.SearchResults
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(body.Artists) != 1 || len(body.Albums) != 1 {
		t.Errorf("unexpected results: %+v", body)
	}
}

func TestSearchMissingQuery(t *testing.T) {
	h := newTestRouter(t, &fakeCatalogService{}, &fakeCreditsService{})
	w := doGet(t, h, "/api/v1/search")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), "error") {
		t.Errorf("expected error envelope, got %s", w.Body.String())
	}
}

func TestGetArtist(t *testing.T) {
	h := newTestRouter(t, &fakeCatalogService{
		artistPageFn: func(ctx context.Context, id string) (*catalog.ArtistView, error) {
			return &catalog.ArtistView{
				Artist:    provider.Artist{ID: id, Name: "Radiohead"},
				TopTracks: []provider.Track{{ID: "tr-1", Name: "Karma Police"}},
				Albums:    []provider.Album{},
			}, nil
		},
	}, &fakeCreditsService{})

	w := doGet(t, h, "/api/v1/artists/ar-1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	var view catalog.ArtistView
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if view.Artist.Name != "Radiohead" || len(view.TopTracks) != 1 {
		t.Errorf("unexpected view: %+v", view)
	}
}

func TestGetArtistTopTracks(t *testing.T) {
	h := newTestRouter(t, &fakeCatalogService{
		artistTopTracksFn: func(ctx context.Context, id string) ([]provider.Track, error) {
			return []provider.Track{{ID: "tr-1", Name: "Karma Police"}}, nil
		},
	}, &fakeCreditsService{})

	w := doGet(t, h, "/api/v1/artists/ar-1/top-tracks")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	var body struct {
		Tracks []provider.Track `json:"tracks"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(body.Tracks) != 1 || body.Tracks[0].Name != "Karma Police" {
		t.Errorf("unexpected tracks: %+v", body.Tracks)
	}
}

func TestGetArtistAlbumsEmptyIsNotNull(t *testing.T) {
	h := newTestRouter(t, &fakeCatalogService{}, &fakeCreditsService{})

	w := doGet(t, h, "/api/v1/artists/ar-1/albums")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), `"albums":[]`) {
		t.Errorf("expected empty albums array, got %s", w.Body.String())
	}
}

func TestGetArtistNotFound(t *testing.T) {
	h := newTestRouter(t, &fakeCatalogService{}, &fakeCreditsService{})
	w := doGet(t, h, "/api/v1/artists/missing")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestGetAlbumCredits(t *testing.T) {
	var gotQuery credits.Query
	h := newTestRouter(t, &fakeCatalogService{
		albumPageFn: func(ctx context.Context, id string) (*provider.Album, error) {
			return &provider.Album{
				ID:      id,
				Title:   "OK Computer",
				Year:    1997,
				Artists: []provider.Artist{{ID: "ar-1", Name: "Radiohead"}},
			}, nil
		},
	}, &fakeCreditsService{
		getCreditsFn: func(ctx context.Context, q credits.Query) credits.Result {
			gotQuery = q
			return credits.Result{
				Source:    credits.Source,
				MatchedID: "rel-1",
				Credits: []credits.Credit{
					{Role: "producer", Name: "Nigel Godrich", Scope: credits.ScopeRelease},
				},
			}
		},
	})

	w := doGet(t, h, "/api/v1/albums/al-1/credits")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	if gotQuery.Title != "OK Computer" || gotQuery.Artist != "Radiohead" || gotQuery.Year != 1997 {
		t.Errorf("unexpected credits query: %+v", gotQuery)
	}

	var result credits.Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if result.Source != "musicbrainz" || len(result.Credits) != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestGetAlbumCreditsNoMatchIsStill200(t *testing.T) {
	h := newTestRouter(t, &fakeCatalogService{
		albumPageFn: func(ctx context.Context, id string) (*provider.Album, error) {
			return &provider.Album{ID: id, Title: "Obscure Album"}, nil
		},
	}, &fakeCreditsService{
		getCreditsFn: func(ctx context.Context, q credits.Query) credits.Result {
			return credits.Result{Source: credits.Source, Credits: []credits.Credit{}}
		},
	})

	w := doGet(t, h, "/api/v1/albums/al-x/credits")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var result credits.Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(result.Credits) != 0 {
		t.Errorf("expected empty credits, got %+v", result.Credits)
	}
}

func TestArtistImage(t *testing.T) {
	h := newTestRouter(t, &fakeCatalogService{
		searchArtistsFn: func(ctx context.Context, query string) ([]provider.Artist, error) {
			return []provider.Artist{
				{ID: "ar-0", Name: "No Image"},
				{ID: "ar-1", Name: "Radiohead", Images: []provider.Image{{URL: "https://img/radiohead.jpg"}}},
			}, nil
		},
	}, &fakeCreditsService{})

	w := doGet(t, h, "/api/v1/artist-image?name=Radiohead")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "https://img/radiohead.jpg") {
		t.Errorf("expected image URL, got %s", w.Body.String())
	}
}

func TestArtistImageNone(t *testing.T) {
	h := newTestRouter(t, &fakeCatalogService{}, &fakeCreditsService{})
	w := doGet(t, h, "/api/v1/artist-image?name=Nobody")

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
}

func TestProviderUnavailableMapsTo502(t *testing.T) {
	h := newTestRouter(t, &fakeCatalogService{
		searchFn: func(ctx context.Context, query string) (*catalog.SearchResults, error) {
			return nil, &provider.ErrProviderUnavailable{Provider: provider.NameSpotify}
		},
	}, &fakeCreditsService{})

	w := doGet(t, h, "/api/v1/search?q=x")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadGateway)
	}
}

func TestAuthRequiredMapsTo503(t *testing.T) {
	h := newTestRouter(t, &fakeCatalogService{
		searchFn: func(ctx context.Context, query string) (*catalog.SearchResults, error) {
			return nil, &provider.ErrAuthRequired{Provider: provider.NameSpotify}
		},
	}, &fakeCreditsService{})

	w := doGet(t, h, "/api/v1/search?q=x")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}

func TestPageShells(t *testing.T) {
	h := newTestRouter(t, &fakeCatalogService{}, &fakeCreditsService{})

	cases := []struct {
		path   string
		marker string
	}{
		{"/", `data-page="search"`},
		{"/artist/ar-1", `data-page="artist"`},
		{"/album/al-1", `data-page="album"`},
		{"/favorites", `data-page="favorites"`},
		{"/about", `data-page="about"`},
	}
	for _, c := range cases {
		w := doGet(t, h, c.path)
		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want %d", c.path, w.Code, http.StatusOK)
			continue
		}
		if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("%s: content type = %q", c.path, ct)
		}
		if !strings.Contains(w.Body.String(), c.marker) {
			t.Errorf("%s: missing marker %q", c.path, c.marker)
		}
	}
}

func TestSecurityHeadersApplied(t *testing.T) {
	h := newTestRouter(t, &fakeCatalogService{}, &fakeCreditsService{})
	w := doGet(t, h, "/api/v1/health")

	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := w.Header().Get("X-Request-Id"); got == "" {
		t.Error("expected a request id header")
	}
}
