// Package templates renders the HTML page shells. Pages are thin: the header,
// an anchor element carrying the page kind and entity id, and the script
// include. All data loading happens client-side against the JSON API.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// AssetPaths holds cache-busted URLs for the static assets every page loads.
type AssetPaths struct {
	CSS   string
	AppJS string
}

// IndexPage is the search landing page.
func IndexPage(a AssetPaths) templ.Component {
	return page(a, "Artist Explorer", "search", "")
}

// ArtistPage is the artist detail shell.
func ArtistPage(a AssetPaths, id string) templ.Component {
	return page(a, "Artist - Artist Explorer", "artist", id)
}

// AlbumPage is the album detail shell.
func AlbumPage(a AssetPaths, id string) templ.Component {
	return page(a, "Album - Artist Explorer", "album", id)
}

// FavoritesPage lists locally saved favorites.
func FavoritesPage(a AssetPaths) templ.Component {
	return page(a, "Favorites - Artist Explorer", "favorites", "")
}

// AboutPage describes the application and its data sources. It is the one
// page rendered entirely on the server.
func AboutPage(a AssetPaths) templ.Component {
	return pageWithBody(a, "About - Artist Explorer", "about", "", aboutBody)
}

const aboutBody = `<h1>About</h1>` +
	`<p>Artist Explorer is a small music discovery site. Search for an artist ` +
	`or album, browse top tracks and discographies, and dig into who actually ` +
	`made a record.</p>` +
	`<p>Catalog data and audio previews come from the Spotify Web API. ` +
	`Recording credits are matched and aggregated from MusicBrainz. Artist ` +
	`biographies come from Wikipedia.</p>` +
	`<p>Favorites are stored in your browser only. Nothing is sent to a server.</p>`

func page(a AssetPaths, title, kind, id string) templ.Component {
	return pageWithBody(a, title, kind, id, "")
}

// pageWithBody emits the full document. body is trusted, pre-escaped HTML
// placed inside the main element; dynamic values are escaped individually.
func pageWithBody(a AssetPaths, title, kind, id, body string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b []byte
		b = append(b, "<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\"><meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"><title>"...)
		b = append(b, templ.EscapeString(title)...)
		b = append(b, "</title><link rel=\"icon\" type=\"image/png\" sizes=\"32x32\" href=\"/static/img/favicon-32x32.png\"><link rel=\"icon\" type=\"image/png\" sizes=\"16x16\" href=\"/static/img/favicon-16x16.png\"><link rel=\"apple-touch-icon\" href=\"/static/img/apple-touch-icon.png\"><link rel=\"stylesheet\" href=\""...)
		b = append(b, templ.EscapeString(a.CSS)...)
		b = append(b, "\"></head><body><header class=\"site-header\"><nav><a class=\"brand\" href=\"/\">Artist Explorer</a><a href=\"/favorites\">Favorites</a><a href=\"/about\">About</a></nav></header><main id=\"app\" data-page=\""...)
		b = append(b, templ.EscapeString(kind)...)
		if id != "" {
			b = append(b, "\" data-id=\""...)
			b = append(b, templ.EscapeString(id)...)
		}
		b = append(b, "\">"...)
		b = append(b, body...)
		b = append(b, "</main><script src=\""...)
		b = append(b, templ.EscapeString(a.AppJS)...)
		b = append(b, "\" defer></script></body></html>"...)
		_, err := w.Write(b)
		return err
	})
}
