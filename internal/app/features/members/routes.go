// internal/app/features/members/routes.go
package members

import (
	"github.com/dalemusser/moviehub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the member routes under the path where the caller mounts it.
// Typically: r.Mount("/members", members.Routes(handler, sessionMgr))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeList)
		pr.Get("/searchcity", h.ServeSearchCity)
		pr.Post("/addmember", h.HandleCreate)

		pr.Get("/{id}", h.ServeGet)
		pr.Patch("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
