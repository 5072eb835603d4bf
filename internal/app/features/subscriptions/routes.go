// internal/app/features/subscriptions/routes.go
package subscriptions

import (
	"github.com/dalemusser/moviehub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the subscription routes. Typically: r.Mount("/subs", subscriptions.Routes(h, sm))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeListAll)
		pr.Get("/subscription", h.ServeGet)

		pr.Get("/members/{memberId}/movies", h.ServeMoviesByMember)
		pr.Get("/members/{memberId}/subscriptions", h.ServeSubscriptionsByMember)
		pr.Get("/members/{memberId}/stats", h.ServeMemberStats)

		pr.Get("/movies/{movieId}", h.ServeMembersByMovie)
		pr.Get("/movies/{movieId}/subscriptions", h.ServeSubscriptionsByMovie)
		pr.Get("/movies/{movieId}/stats", h.ServeMovieStats)

		pr.Post("/addsubscription", h.HandleAdd)
		pr.Patch("/updatedate", h.HandleUpdateDate)
		pr.Delete("/removesubscription", h.HandleRemove)
	})

	return r
}
