package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Gatallah-de/Artist-Explorer/internal/api/middleware"
	"github.com/Gatallah-de/Artist-Explorer/internal/catalog"
	"github.com/Gatallah-de/Artist-Explorer/internal/credits"
	"github.com/Gatallah-de/Artist-Explorer/internal/provider"
)

// CatalogService is the page-data surface the handlers consume.
type CatalogService interface {
	Search(ctx context.Context, query string) (*catalog.SearchResults, error)
	ArtistPage(ctx context.Context, id string) (*catalog.ArtistView, error)
	ArtistTopTracks(ctx context.Context, id string) ([]provider.Track, error)
	ArtistAlbums(ctx context.Context, id string) ([]provider.Album, error)
	AlbumPage(ctx context.Context, id string) (*provider.Album, error)
	SearchArtists(ctx context.Context, query string) ([]provider.Artist, error)
	SearchAlbums(ctx context.Context, query string) ([]provider.Album, error)
}

// CreditsService resolves personnel credits for an album.
type CreditsService interface {
	GetCredits(ctx context.Context, q credits.Query) credits.Result
}

// RouterDeps bundles all dependencies needed by the HTTP router.
type RouterDeps struct {
	CatalogService CatalogService
	CreditsService CreditsService
	Logger         *slog.Logger
	BasePath       string
	StaticDir      string
}

// Router sets up all HTTP routes for the application.
type Router struct {
	catalogService CatalogService
	creditsService CreditsService
	logger         *slog.Logger
	basePath       string
	staticAssets   *StaticAssets
}

// NewRouter creates a new Router with all routes configured.
func NewRouter(deps RouterDeps) *Router {
	return &Router{
		catalogService: deps.CatalogService,
		creditsService: deps.CreditsService,
		logger:         deps.Logger,
		basePath:       deps.BasePath,
		staticAssets:   NewStaticAssets(deps.StaticDir, deps.Logger),
	}
}

// StaticAssets exposes the asset manager so a dev-mode watcher can rescan it.
func (r *Router) StaticAssets() *StaticAssets {
	return r.staticAssets
}

// Handler returns the fully configured HTTP handler with middleware applied.
func (r *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	bp := r.basePath

	// API routes
	mux.HandleFunc("GET "+bp+"/api/v1/health", r.handleHealth)
	mux.HandleFunc("GET "+bp+"/api/v1/search", r.handleSearch)
	mux.HandleFunc("GET "+bp+"/api/v1/search/artists", r.handleSearchArtists)
	mux.HandleFunc("GET "+bp+"/api/v1/search/albums", r.handleSearchAlbums)
	mux.HandleFunc("GET "+bp+"/api/v1/artists/{id}", r.handleGetArtist)
	mux.HandleFunc("GET "+bp+"/api/v1/artists/{id}/top-tracks", r.handleGetArtistTopTracks)
	mux.HandleFunc("GET "+bp+"/api/v1/artists/{id}/albums", r.handleGetArtistAlbums)
	mux.HandleFunc("GET "+bp+"/api/v1/albums/{id}", r.handleGetAlbum)
	mux.HandleFunc("GET "+bp+"/api/v1/albums/{id}/credits", r.handleGetAlbumCredits)
	mux.HandleFunc("GET "+bp+"/api/v1/artist-image", r.handleArtistImage)

	// Web routes
	mux.Handle("GET "+bp+"/static/", r.staticAssets.Handler(bp))
	mux.HandleFunc("GET "+bp+"/artist/{id}", r.handleArtistPage)
	mux.HandleFunc("GET "+bp+"/album/{id}", r.handleAlbumPage)
	mux.HandleFunc("GET "+bp+"/favorites", r.handleFavoritesPage)
	mux.HandleFunc("GET "+bp+"/about", r.handleAboutPage)
	mux.HandleFunc("GET "+bp+"/", r.handleIndex)

	apiLimiter := middleware.NewIPRateLimiter()
	var h http.Handler = apiLimiter.Middleware(mux)
	h = middleware.SecurityHeaders(h)
	h = middleware.Logging(r.logger)(h)
	// Outermost so every log line can carry the request id.
	return middleware.RequestID(h)
}
