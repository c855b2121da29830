package api

import (
	"net/http"
	"strings"
)

// queryParam extracts and trims the q parameter, enforcing a sane length cap.
func queryParam(req *http.Request) (string, bool) {
	q := strings.TrimSpace(req.URL.Query().Get("q"))
	if q == "" || len(q) > 200 {
		return "", false
	}
	return q, true
}

func (r *Router) handleSearch(w http.ResponseWriter, req *http.Request) {
	q, ok := queryParam(req)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing or invalid query"})
		return
	}

	results, err := r.catalogService.Search(req.Context(), q)
	if err != nil {
		r.writeProviderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (r *Router) handleSearchArtists(w http.ResponseWriter, req *http.Request) {
	q, ok := queryParam(req)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing or invalid query"})
		return
	}

	artists, err := r.catalogService.SearchArtists(req.Context(), q)
	if err != nil {
		r.writeProviderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"artists": artists})
}

func (r *Router) handleSearchAlbums(w http.ResponseWriter, req *http.Request) {
	q, ok := queryParam(req)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing or invalid query"})
		return
	}

	albums, err := r.catalogService.SearchAlbums(req.Context(), q)
	if err != nil {
		r.writeProviderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"albums": albums})
}

// handleArtistImage resolves a best-effort thumbnail for an artist name.
// Responds 204 when nothing suitable is found.
func (r *Router) handleArtistImage(w http.ResponseWriter, req *http.Request) {
	name := strings.TrimSpace(req.URL.Query().Get("name"))
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing name"})
		return
	}

	artists, err := r.catalogService.SearchArtists(req.Context(), name)
	if err != nil {
		r.writeProviderError(w, err)
		return
	}
	for _, a := range artists {
		if len(a.Images) > 0 {
			writeJSON(w, http.StatusOK, map[string]string{"url": a.Images[0].URL})
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
