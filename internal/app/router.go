package app

import (
	"time"

	"challengeTracker/internal/handlers"
	"challengeTracker/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func newRouter(h *handlers.ChallengeHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.RateLimit(100))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Route("/challenges", func(r chi.Router) {

		r.Get("/", h.GetActiveChallenges) // GET /challenges
		r.Post("/", h.PostChallenge)      // POST /challenges

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetChallengeByID)       // GET /challenges/{id}
			r.Put("/", h.UpdateChallengeByID)    // PUT /challenges/{id}
			r.Delete("/", h.DeleteChallengeByID) // DELETE /challenges/{id}

			r.Post("/archive", h.ArchiveChallenge)       // POST /challenges/{id}/archive
			r.Post("/unarchive", h.UnarchiveChallenge)   // POST /challenges/{id}/unarchive
			r.Post("/duplicate", h.DuplicateChallenge)   // POST /challenges/{id}/duplicate

			r.Post("/notes", h.PostNote) // POST /challenges/{id}/notes

			r.Route("/notes/{noteId}", func(r chi.Router) {
				r.Put("/", h.UpdateNote)    // PUT /challenges/{id}/notes/{noteId}
				r.Delete("/", h.DeleteNote) // DELETE /challenges/{id}/notes/{noteId}
			})
		})

		r.Get("/archived", h.GetArchivedChallenges) // GET /challenges/archived
		r.Get("/all", h.GetAllChallenges)           // GET /challenges/all
	})

	r.Get("/stats", h.GetStats)             // GET /stats
	r.Get("/suggestions", h.GetSuggestions) // GET /suggestions
	r.Get("/quotes/random", h.GetRandomQuote)

	r.Get("/health", h.HealthCheck)

	return r
}
