package api

import (
	"net/http"

	"github.com/Gatallah-de/Artist-Explorer/internal/provider"
)

func (r *Router) handleGetArtist(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing artist id"})
		return
	}

	view, err := r.catalogService.ArtistPage(req.Context(), id)
	if err != nil {
		r.writeProviderError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (r *Router) handleGetArtistTopTracks(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing artist id"})
		return
	}

	tracks, err := r.catalogService.ArtistTopTracks(req.Context(), id)
	if err != nil {
		r.writeProviderError(w, err)
		return
	}
	if tracks == nil {
		tracks = []provider.Track{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"tracks": tracks})
}

func (r *Router) handleGetArtistAlbums(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing artist id"})
		return
	}

	albums, err := r.catalogService.ArtistAlbums(req.Context(), id)
	if err != nil {
		r.writeProviderError(w, err)
		return
	}
	if albums == nil {
		albums = []provider.Album{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"albums": albums})
}
