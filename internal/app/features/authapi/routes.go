// internal/app/features/authapi/routes.go
package authapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts the auth routes. limit wraps signup and login; pass
// ratelimit.ByRealIP(...) in production.
func Routes(h *Handler, limit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(lr chi.Router) {
		lr.Use(limit)
		lr.Post("/signup", h.HandleSignup)
		lr.Post("/login", h.HandleLogin)
	})
	r.Post("/logout", h.HandleLogout)

	r.Group(func(pr chi.Router) {
		pr.Use(h.SessionMgr.RequireSignedIn)
		pr.Get("/authCheck", h.ServeAuthCheck)
	})

	return r
}
