package router

import (
	_ "embed"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/travelwiz/travelwiz/internal/api/auth"
	"github.com/travelwiz/travelwiz/internal/api/chat"
	"github.com/travelwiz/travelwiz/internal/api/itinerary"
	"github.com/travelwiz/travelwiz/internal/api/planner"
)

//go:embed openapi.json
var openapiSpec []byte

// Config carries the handlers and middleware the router mounts.
type Config struct {
	AuthHandler            *auth.Handler
	PlannerHandler         *planner.Handler
	ItineraryHandler       *itinerary.Handler
	ChatHandler            *chat.Handler
	AuthenticateMiddleware func(http.Handler) http.Handler
}

// SetupRouter builds the application route tree. Server-wide middleware
// (request ID, logging, recoverer) is applied before mounting this router.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(openapiSpec)
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes.
		r.Group(func(r chi.Router) {
			r.Post("/auth/register", cfg.AuthHandler.Register)
			r.Post("/auth/login", cfg.AuthHandler.Login)
			r.Post("/auth/refresh", cfg.AuthHandler.RefreshSession)
			r.Get("/auth/{provider}", cfg.AuthHandler.BeginOAuth)
			r.Get("/auth/{provider}/callback", cfg.AuthHandler.OAuthCallback)
		})

		// Protected routes.
		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthenticateMiddleware)

			r.Post("/auth/logout", cfg.AuthHandler.Logout)

			// Generation hits external services, so it gets a tighter
			// per-IP budget than the rest of the API.
			r.Group(func(r chi.Router) {
				r.Use(httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
				r.Post("/generate", cfg.PlannerHandler.Generate)
			})

			r.Route("/itineraries", func(r chi.Router) {
				r.Post("/", cfg.ItineraryHandler.CreateItinerary)
				r.Get("/", cfg.ItineraryHandler.GetItineraries)
				r.Get("/{itineraryID}", cfg.ItineraryHandler.GetItinerary)
				r.Delete("/{itineraryID}", cfg.ItineraryHandler.DeleteItinerary)
			})

			r.Group(func(r chi.Router) {
				r.Use(httprate.Limit(30, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
				r.Post("/chat", cfg.ChatHandler.Chat)
			})
		})
	})

	return r
}
