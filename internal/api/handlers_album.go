package api

import (
	"net/http"

	"github.com/Gatallah-de/Artist-Explorer/internal/credits"
)

func (r *Router) handleGetAlbum(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing album id"})
		return
	}

	album, err := r.catalogService.AlbumPage(req.Context(), id)
	if err != nil {
		r.writeProviderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, album)
}

// handleGetAlbumCredits resolves personnel credits for an album. The album is
// looked up first so the matcher gets its title, primary artist, and year.
// An unmatched album is a 200 with empty credits, not an error.
func (r *Router) handleGetAlbumCredits(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing album id"})
		return
	}

	album, err := r.catalogService.AlbumPage(req.Context(), id)
	if err != nil {
		r.writeProviderError(w, err)
		return
	}

	q := credits.Query{Title: album.Title, Year: album.Year}
	if len(album.Artists) > 0 {
		q.Artist = album.Artists[0].Name
	}
	writeJSON(w, http.StatusOK, r.creditsService.GetCredits(req.Context(), q))
}
