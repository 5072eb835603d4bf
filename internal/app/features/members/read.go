// internal/app/features/members/read.go
package members

import (
	"net/http"

	"github.com/dalemusser/moviehub/internal/app/system/httpjson"
	"github.com/dalemusser/moviehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeList handles GET /members.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	res, err := h.Members.List(ctx)
	if err != nil {
		httpjson.InternalError(w, h.Log, "members: list failed", err)
		return
	}
	httpjson.FromResult(w, res, "members")
}

// ServeSearchCity handles GET /members/searchcity?city=.
func (h *Handler) ServeSearchCity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	res, err := h.Members.SearchByCity(ctx, r.URL.Query().Get("city"))
	if err != nil {
		httpjson.InternalError(w, h.Log, "members: search by city failed", err)
		return
	}
	httpjson.FromResult(w, res, "members")
}

// ServeGet handles GET /members/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	res, err := h.Members.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httpjson.InternalError(w, h.Log, "members: get failed", err)
		return
	}
	httpjson.FromResult(w, res, "member")
}
