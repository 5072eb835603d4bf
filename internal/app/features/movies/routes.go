// internal/app/features/movies/routes.go
package movies

import (
	"github.com/dalemusser/moviehub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the movie routes. Typically: r.Mount("/movies", movies.Routes(h, sm))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeList)
		pr.Get("/search", h.ServeSearchName)
		pr.Get("/searchgenre", h.ServeSearchGenre)
		pr.Post("/addmovie", h.HandleCreate)

		pr.Get("/{id}", h.ServeGet)
		pr.Patch("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
