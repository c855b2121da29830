// Package catalog assembles page-level views from the catalog and biography
// providers. Independent upstream calls for a view run concurrently.
package catalog

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Gatallah-de/Artist-Explorer/internal/provider"
	"github.com/Gatallah-de/Artist-Explorer/internal/provider/wikipedia"
)

// CatalogProvider is the artist/album catalog surface the service consumes.
type CatalogProvider interface {
	SearchArtists(ctx context.Context, query string) ([]provider.Artist, error)
	SearchAlbums(ctx context.Context, query string) ([]provider.Album, error)
	GetArtist(ctx context.Context, id string) (*provider.Artist, error)
	GetArtistTopTracks(ctx context.Context, id string) ([]provider.Track, error)
	GetArtistAlbums(ctx context.Context, id string) ([]provider.Album, error)
	GetAlbum(ctx context.Context, id string) (*provider.Album, error)
}

// BioProvider supplies optional artist biography text.
type BioProvider interface {
	GetSummary(ctx context.Context, title string) (*wikipedia.Summary, error)
}

// SearchResults holds both halves of a combined search.
type SearchResults struct {
	Artists []provider.Artist `json:"artists"`
	Albums  []provider.Album  `json:"albums"`
}

// ArtistView is everything an artist page shows.
type ArtistView struct {
	Artist    provider.Artist    `json:"artist"`
	TopTracks []provider.Track   `json:"top_tracks"`
	Albums    []provider.Album   `json:"albums"`
	Bio       *wikipedia.Summary `json:"bio,omitempty"`
}

// Service is the page-data facade.
type Service struct {
	catalog CatalogProvider
	bio     BioProvider
	logger  *slog.Logger
}

// NewService creates a catalog service. bio may be nil to disable biographies.
func NewService(catalog CatalogProvider, bio BioProvider, logger *slog.Logger) *Service {
	return &Service{
		catalog: catalog,
		bio:     bio,
		logger:  logger.With(slog.String("service", "catalog")),
	}
}

// Search runs artist and album search concurrently. Either half failing
// fails the whole search.
func (s *Service) Search(ctx context.Context, query string) (*SearchResults, error) {
	var results SearchResults
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		artists, err := s.catalog.SearchArtists(gctx, query)
		if err != nil {
			return err
		}
		results.Artists = artists
		return nil
	})
	g.Go(func() error {
		albums, err := s.catalog.SearchAlbums(gctx, query)
		if err != nil {
			return err
		}
		results.Albums = albums
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if results.Artists == nil {
		results.Artists = []provider.Artist{}
	}
	if results.Albums == nil {
		results.Albums = []provider.Album{}
	}
	return &results, nil
}

// SearchArtists searches artists only.
func (s *Service) SearchArtists(ctx context.Context, query string) ([]provider.Artist, error) {
	return s.catalog.SearchArtists(ctx, query)
}

// SearchAlbums searches albums only.
func (s *Service) SearchAlbums(ctx context.Context, query string) ([]provider.Album, error) {
	return s.catalog.SearchAlbums(ctx, query)
}

// ArtistTopTracks returns the artist's top tracks only.
func (s *Service) ArtistTopTracks(ctx context.Context, id string) ([]provider.Track, error) {
	return s.catalog.GetArtistTopTracks(ctx, id)
}

// ArtistAlbums returns the artist's discography only.
func (s *Service) ArtistAlbums(ctx context.Context, id string) ([]provider.Album, error) {
	return s.catalog.GetArtistAlbums(ctx, id)
}

// ArtistPage assembles the artist view. The artist fetch is required; top
// tracks, albums, and biography degrade to empty on failure.
func (s *Service) ArtistPage(ctx context.Context, id string) (*ArtistView, error) {
	artist, err := s.catalog.GetArtist(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &ArtistView{Artist: *artist}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tracks, err := s.catalog.GetArtistTopTracks(gctx, id)
		if err != nil {
			s.logger.Debug("top tracks unavailable", slog.String("artist", id), slog.Any("error", err))
			return nil
		}
		view.TopTracks = tracks
		return nil
	})
	g.Go(func() error {
		albums, err := s.catalog.GetArtistAlbums(gctx, id)
		if err != nil {
			s.logger.Debug("albums unavailable", slog.String("artist", id), slog.Any("error", err))
			return nil
		}
		view.Albums = albums
		return nil
	})
	if s.bio != nil {
		name := artist.Name
		g.Go(func() error {
			sum, err := s.bio.GetSummary(gctx, name)
			if err != nil {
				s.logger.Debug("biography unavailable", slog.String("artist", name), slog.Any("error", err))
				return nil
			}
			view.Bio = sum
			return nil
		})
	}
	_ = g.Wait()

	if view.TopTracks == nil {
		view.TopTracks = []provider.Track{}
	}
	if view.Albums == nil {
		view.Albums = []provider.Album{}
	}
	return view, nil
}

// AlbumPage fetches the album with its tracklist.
func (s *Service) AlbumPage(ctx context.Context, id string) (*provider.Album, error) {
	return s.catalog.GetAlbum(ctx, id)
}
