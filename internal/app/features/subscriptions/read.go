// internal/app/features/subscriptions/read.go
package subscriptions

import (
	"net/http"

	"github.com/dalemusser/moviehub/internal/app/system/httpjson"
	"github.com/dalemusser/moviehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeListAll handles GET /subs.
func (h *Handler) ServeListAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	res, err := h.Subs.ListAll(ctx)
	if err != nil {
		httpjson.InternalError(w, h.Log, "subscriptions: list failed", err)
		return
	}
	httpjson.FromResult(w, res, "subscriptions")
}

// ServeGet handles GET /subs/subscription?memberId=&movieId=.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	q := r.URL.Query()
	res, err := h.Subs.GetSubscription(ctx, q.Get("memberId"), q.Get("movieId"))
	if err != nil {
		httpjson.InternalError(w, h.Log, "subscriptions: get failed", err)
		return
	}
	httpjson.FromResult(w, res, "subscription")
}

// ServeMoviesByMember handles GET /subs/members/{memberId}/movies.
func (h *Handler) ServeMoviesByMember(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	res, err := h.Subs.GetMoviesByMember(ctx, chi.URLParam(r, "memberId"))
	if err != nil {
		httpjson.InternalError(w, h.Log, "subscriptions: movies by member failed", err)
		return
	}
	httpjson.FromResult(w, res, "movies")
}

// ServeMembersByMovie handles GET /subs/movies/{movieId}.
func (h *Handler) ServeMembersByMovie(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	res, err := h.Subs.GetMembersByMovie(ctx, chi.URLParam(r, "movieId"))
	if err != nil {
		httpjson.InternalError(w, h.Log, "subscriptions: members by movie failed", err)
		return
	}
	httpjson.FromResult(w, res, "members")
}

// ServeSubscriptionsByMember handles GET /subs/members/{memberId}/subscriptions.
func (h *Handler) ServeSubscriptionsByMember(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	res, err := h.Subs.GetSubscriptionsByMember(ctx, chi.URLParam(r, "memberId"))
	if err != nil {
		httpjson.InternalError(w, h.Log, "subscriptions: by member failed", err)
		return
	}
	httpjson.FromResult(w, res, "subscriptions")
}

// ServeSubscriptionsByMovie handles GET /subs/movies/{movieId}/subscriptions.
func (h *Handler) ServeSubscriptionsByMovie(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	res, err := h.Subs.GetSubscriptionsByMovie(ctx, chi.URLParam(r, "movieId"))
	if err != nil {
		httpjson.InternalError(w, h.Log, "subscriptions: by movie failed", err)
		return
	}
	httpjson.FromResult(w, res, "subscriptions")
}

// ServeMemberStats handles GET /subs/members/{memberId}/stats.
func (h *Handler) ServeMemberStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	res, err := h.Subs.GetMemberMovieCount(ctx, chi.URLParam(r, "memberId"))
	if err != nil {
		httpjson.InternalError(w, h.Log, "subscriptions: member stats failed", err)
		return
	}
	httpjson.FromResult(w, res, "data")
}

// ServeMovieStats handles GET /subs/movies/{movieId}/stats.
func (h *Handler) ServeMovieStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	res, err := h.Subs.GetMovieMemberCount(ctx, chi.URLParam(r, "movieId"))
	if err != nil {
		httpjson.InternalError(w, h.Log, "subscriptions: movie stats failed", err)
		return
	}
	httpjson.FromResult(w, res, "data")
}
