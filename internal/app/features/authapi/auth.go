// internal/app/features/authapi/auth.go
package authapi

import (
	"net/http"

	"github.com/dalemusser/moviehub/internal/app/services/authsvc"
	"github.com/dalemusser/moviehub/internal/app/system/auth"
	"github.com/dalemusser/moviehub/internal/app/system/httpjson"
	"github.com/dalemusser/moviehub/internal/app/system/result"
	"github.com/dalemusser/moviehub/internal/app/system/timeouts"
	"github.com/dalemusser/moviehub/internal/domain/models"
	"go.uber.org/zap"
)

// HandleSignup handles POST /auth/signup. A new account is signed in
// immediately.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var in authsvc.SignupInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, httpjson.BadBodyMessage)
		return
	}

	ctx, cancel := timeouts.WithMedium(r.Context())
	defer cancel()

	res, err := h.Auth.Signup(ctx, in)
	if err != nil {
		httpjson.InternalError(w, h.Log, "auth: signup failed", err)
		return
	}
	h.respondSignedIn(w, r, res, "signup")
}

// HandleLogin handles POST /auth/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in authsvc.LoginInput
	if err := httpjson.Decode(w, r, &in); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, httpjson.BadBodyMessage)
		return
	}

	ctx, cancel := timeouts.WithShort(r.Context())
	defer cancel()

	res, err := h.Auth.Login(ctx, in)
	if err != nil {
		httpjson.InternalError(w, h.Log, "auth: login failed", err)
		return
	}
	if !res.Success {
		h.Log.Info("login rejected", zap.String("username", in.Username))
	}
	h.respondSignedIn(w, r, res, "login")
}

// respondSignedIn writes the cookie for a successful result and the
// {success, message, user} body.
func (h *Handler) respondSignedIn(w http.ResponseWriter, r *http.Request, res result.Result[models.AppUser], op string) {
	if !res.Success {
		httpjson.FromResult(w, res, "user")
		return
	}
	if err := h.SessionMgr.SignIn(w, r, authsvc.SessionUser(res.Data)); err != nil {
		httpjson.InternalError(w, h.Log, "auth: "+op+" save session", err)
		return
	}
	h.Log.Info("user signed in",
		zap.String("op", op),
		zap.String("user_id", res.Data.ID.Hex()),
		zap.String("username", res.Data.Username))
	httpjson.FromResult(w, res, "user")
}

// HandleLogout handles POST /auth/logout. It succeeds without a session.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("logout: save session", zap.Error(err))
	}
	httpjson.Write(w, http.StatusOK, httpjson.Envelope(MsgLoggedOut, "", nil))
}

// ServeAuthCheck handles GET /auth/authCheck.
func (h *Handler) ServeAuthCheck(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Fail(w, http.StatusUnauthorized, auth.MsgNoToken)
		return
	}
	httpjson.Write(w, http.StatusOK, httpjson.Envelope(MsgAuthenticated, "user", u))
}
