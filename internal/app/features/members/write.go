// internal/app/features/members/write.go
package members

import (
	"net/http"

	"github.com/dalemusser/moviehub/internal/app/services/membersvc"
	"github.com/dalemusser/moviehub/internal/app/system/httpjson"
	"github.com/dalemusser/moviehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleCreate handles POST /members/addmember.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in membersvc.Input
	if err := httpjson.Decode(w, r, &in); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, httpjson.BadBodyMessage)
		return
	}

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	res, err := h.Members.Create(ctx, in)
	if err != nil {
		httpjson.InternalError(w, h.Log, "members: create failed", err)
		return
	}
	if res.Success {
		h.Log.Info("member created", zap.String("member_id", res.Data.ID.Hex()))
	}
	httpjson.FromResult(w, res, "member")
}

// HandleUpdate handles PATCH /members/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in membersvc.Input
	if err := httpjson.Decode(w, r, &in); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, httpjson.BadBodyMessage)
		return
	}

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	res, err := h.Members.Update(ctx, chi.URLParam(r, "id"), in)
	if err != nil {
		httpjson.InternalError(w, h.Log, "members: update failed", err)
		return
	}
	httpjson.FromResult(w, res, "member")
}

// HandleDelete handles DELETE /members/{id}. The member's subscriptions go
// with it; their count is reported as subscriptionsRemoved.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithLong(r.Context())
	defer cancel()

	res, err := h.Members.Delete(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httpjson.InternalError(w, h.Log, "members: delete failed", err)
		return
	}
	if !res.Success {
		httpjson.Fail(w, res.StatusCode, res.Message)
		return
	}

	h.Log.Info("member deleted",
		zap.String("member_id", res.Data.Member.ID.Hex()),
		zap.Int64("subscriptions_removed", res.Data.SubscriptionsRemoved))

	body := httpjson.Envelope(res.Message, "member", res.Data.Member)
	body["subscriptionsRemoved"] = res.Data.SubscriptionsRemoved
	httpjson.Write(w, res.StatusCode, body)
}
