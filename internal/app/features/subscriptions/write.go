// internal/app/features/subscriptions/write.go
package subscriptions

import (
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/moviehub/internal/app/services/subscriptionsvc"
	"github.com/dalemusser/moviehub/internal/app/system/httpjson"
	"github.com/dalemusser/moviehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleAdd handles POST /subs/addsubscription. watchedDate is optional and
// defaults to now.
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var body pairBody
	if err := httpjson.Decode(w, r, &body); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, httpjson.BadBodyMessage)
		return
	}

	var watched *time.Time
	if strings.TrimSpace(body.WatchedDate) != "" {
		t, ok := subscriptionsvc.ParseDate(body.WatchedDate)
		if !ok {
			httpjson.Fail(w, http.StatusBadRequest, subscriptionsvc.MsgInvalidDate)
			return
		}
		watched = &t
	}

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	res, err := h.Subs.AddSubscription(ctx, body.MemberID, body.MovieID, watched)
	if err != nil {
		httpjson.InternalError(w, h.Log, "subscriptions: add failed", err)
		return
	}
	if res.Success {
		h.Log.Info("subscription created",
			zap.String("member_id", res.Data.MemberID.Hex()),
			zap.String("movie_id", res.Data.MovieID.Hex()))
	}
	httpjson.FromResult(w, res, "subscription")
}

// HandleUpdateDate handles PATCH /subs/updatedate.
func (h *Handler) HandleUpdateDate(w http.ResponseWriter, r *http.Request) {
	var body pairBody
	if err := httpjson.Decode(w, r, &body); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, httpjson.BadBodyMessage)
		return
	}

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	res, err := h.Subs.UpdateWatchedDate(ctx, body.MemberID, body.MovieID, body.WatchedDate)
	if err != nil {
		httpjson.InternalError(w, h.Log, "subscriptions: update date failed", err)
		return
	}
	httpjson.FromResult(w, res, "subscription")
}

// HandleRemove handles DELETE /subs/removesubscription. The pair comes in
// the JSON body.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	var body pairBody
	if err := httpjson.Decode(w, r, &body); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, httpjson.BadBodyMessage)
		return
	}

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	res, err := h.Subs.RemoveSubscription(ctx, body.MemberID, body.MovieID)
	if err != nil {
		httpjson.InternalError(w, h.Log, "subscriptions: remove failed", err)
		return
	}
	if res.Success {
		h.Log.Info("subscription removed",
			zap.String("member_id", res.Data.MemberID.Hex()),
			zap.String("movie_id", res.Data.MovieID.Hex()))
	}
	httpjson.FromResult(w, res, "subscription")
}
