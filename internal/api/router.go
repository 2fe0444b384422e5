package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

// NewRouter builds the Chi router with all routes configured. Health,
// registration, and login are unauthenticated; everything else requires a
// bearer token. Rate limiting is applied globally: 60 requests per minute
// per IP.
func NewRouter(handlers *Handlers, tokens TokenSource, db dbPinger, redisClient redisPinger, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(httprate.LimitByIP(60, time.Minute))

	r.Get("/api/v1/health", HealthHandlerFunc(db, redisClient, log))

	r.Post("/api/v1/users", handlers.Register)
	r.Post("/api/v1/users/login", handlers.Login)

	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(tokens))

		r.Route("/api/v1/users", func(r chi.Router) {
			r.Get("/profile", handlers.GetProfile)
			r.Put("/profile", handlers.UpdateProfile)
			r.Get("/preferences", handlers.GetPreferences)
			r.Put("/preferences", handlers.UpdatePreferences)
			r.Put("/password", handlers.ChangePassword)
			r.Delete("/account", handlers.DeleteAccount)
		})

		r.Route("/api/v1/attractions", func(r chi.Router) {
			r.Get("/search", handlers.SearchAttractions)
			r.Get("/validate", handlers.ValidateDestination)
		})

		r.Route("/api/v1/itineraries", func(r chi.Router) {
			r.Post("/", handlers.CreateItinerary)
			r.Get("/", handlers.ListItineraries)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", handlers.GetItinerary)
				r.Put("/", handlers.UpdateItinerary)
				r.Delete("/", handlers.DeleteItinerary)
				r.Post("/clone", handlers.CloneItinerary)
				r.Post("/share", handlers.ShareItinerary)
				r.Post("/items", handlers.AddItem)
				r.Put("/items/{itemId}", handlers.UpdateItem)
				r.Delete("/items", handlers.DeleteItem)
				r.Get("/attractions", handlers.ListItineraryAttractions)
				r.Put("/reorder", handlers.ReorderItems)
				r.Get("/recommendations", handlers.GetRecommendations)
			})
		})
	})

	return r
}

// Ensure chi.Mux implements http.Handler.
var _ http.Handler = (*chi.Mux)(nil)
