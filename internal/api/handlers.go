package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/Gatallah-de/Artist-Explorer/internal/provider"
	"github.com/Gatallah-de/Artist-Explorer/internal/version"
	"github.com/Gatallah-de/Artist-Explorer/web/templates"
)

func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
		"commit":  version.Commit,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// assets returns cache-busted asset paths for templates.
func (r *Router) assets() templates.AssetPaths {
	return templates.AssetPaths{
		CSS:   r.staticAssets.Path("/css/styles.css"),
		AppJS: r.staticAssets.Path("/js/app.js"),
	}
}

func (r *Router) handleIndex(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path != r.basePath+"/" && req.URL.Path != r.basePath {
		http.NotFound(w, req)
		return
	}
	renderTempl(w, req, templates.IndexPage(r.assets()))
}

func (r *Router) handleArtistPage(w http.ResponseWriter, req *http.Request) {
	renderTempl(w, req, templates.ArtistPage(r.assets(), req.PathValue("id")))
}

func (r *Router) handleAlbumPage(w http.ResponseWriter, req *http.Request) {
	renderTempl(w, req, templates.AlbumPage(r.assets(), req.PathValue("id")))
}

func (r *Router) handleFavoritesPage(w http.ResponseWriter, req *http.Request) {
	renderTempl(w, req, templates.FavoritesPage(r.assets()))
}

func (r *Router) handleAboutPage(w http.ResponseWriter, req *http.Request) {
	renderTempl(w, req, templates.AboutPage(r.assets()))
}

func renderTempl(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

// writeProviderError maps upstream adapter errors to response envelopes.
func (r *Router) writeProviderError(w http.ResponseWriter, err error) {
	var notFound *provider.ErrNotFound
	var unavailable *provider.ErrProviderUnavailable
	var authRequired *provider.ErrAuthRequired

	switch {
	case errors.As(err, &notFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.As(err, &authRequired):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "catalog provider not configured"})
	case errors.As(err, &unavailable):
		if secs := int(unavailable.RetryAfter.Seconds()); secs > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(secs))
		}
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream provider unavailable"})
	default:
		r.logger.Error("handler error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encode error", http.StatusInternalServerError)
	}
}
