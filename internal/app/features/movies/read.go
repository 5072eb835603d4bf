// internal/app/features/movies/read.go
package movies

import (
	"net/http"

	"github.com/dalemusser/moviehub/internal/app/system/httpjson"
	"github.com/dalemusser/moviehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeList handles GET /movies.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	res, err := h.Movies.List(ctx)
	if err != nil {
		httpjson.InternalError(w, h.Log, "movies: list failed", err)
		return
	}
	httpjson.FromResult(w, res, "movies")
}

// ServeSearchName handles GET /movies/search?name=.
func (h *Handler) ServeSearchName(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	res, err := h.Movies.SearchByName(ctx, r.URL.Query().Get("name"))
	if err != nil {
		httpjson.InternalError(w, h.Log, "movies: search by name failed", err)
		return
	}
	httpjson.FromResult(w, res, "movies")
}

// ServeSearchGenre handles GET /movies/searchgenre?genre=.
func (h *Handler) ServeSearchGenre(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	res, err := h.Movies.SearchByGenre(ctx, r.URL.Query().Get("genre"))
	if err != nil {
		httpjson.InternalError(w, h.Log, "movies: search by genre failed", err)
		return
	}
	httpjson.FromResult(w, res, "movies")
}

// ServeGet handles GET /movies/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	res, err := h.Movies.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httpjson.InternalError(w, h.Log, "movies: get failed", err)
		return
	}
	httpjson.FromResult(w, res, "movie")
}
