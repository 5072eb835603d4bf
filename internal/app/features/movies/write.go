// internal/app/features/movies/write.go
package movies

import (
	"net/http"

	"github.com/dalemusser/moviehub/internal/app/services/moviesvc"
	"github.com/dalemusser/moviehub/internal/app/system/httpjson"
	"github.com/dalemusser/moviehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleCreate handles POST /movies/addmovie.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in moviesvc.Input
	if err := httpjson.Decode(w, r, &in); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, httpjson.BadBodyMessage)
		return
	}

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	res, err := h.Movies.Create(ctx, in)
	if err != nil {
		httpjson.InternalError(w, h.Log, "movies: create failed", err)
		return
	}
	if res.Success {
		h.Log.Info("movie created", zap.String("movie_id", res.Data.ID.Hex()))
	}
	httpjson.FromResult(w, res, "movie")
}

// HandleUpdate handles PATCH /movies/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in moviesvc.Input
	if err := httpjson.Decode(w, r, &in); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, httpjson.BadBodyMessage)
		return
	}

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	res, err := h.Movies.Update(ctx, chi.URLParam(r, "id"), in)
	if err != nil {
		httpjson.InternalError(w, h.Log, "movies: update failed", err)
		return
	}
	httpjson.FromResult(w, res, "movie")
}

// HandleDelete handles DELETE /movies/{id} and removes the movie's
// subscriptions with it.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithLong(r.Context())
	defer cancel()

	res, err := h.Movies.Delete(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httpjson.InternalError(w, h.Log, "movies: delete failed", err)
		return
	}
	if !res.Success {
		httpjson.Fail(w, res.StatusCode, res.Message)
		return
	}

	h.Log.Info("movie deleted",
		zap.String("movie_id", res.Data.Movie.ID.Hex()),
		zap.Int64("subscriptions_removed", res.Data.SubscriptionsRemoved))

	body := httpjson.Envelope(res.Message, "movie", res.Data.Movie)
	body["subscriptionsRemoved"] = res.Data.SubscriptionsRemoved
	httpjson.Write(w, res.StatusCode, body)
}
