package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vhforbes/boot-webserver/pkg/health"
	"github.com/vhforbes/boot-webserver/pkg/middleware"

	"github.com/vhforbes/boot-webserver/internal/service"
)

// RouterConfig bundles the collaborators the router wires together.
type RouterConfig struct {
	Sessions      *service.SessionService
	Users         *service.UserService
	Chirps        *service.ChirpService
	Webhooks      *service.WebhookService
	HealthHandler *health.Handler
	Hits          *HitCounter
	PolkaKey      string
	Platform      string
	FileserverDir string
	CORS          CORSConfig
	Logger        *slog.Logger
}

// NewRouter creates a chi router with all chirpy routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(CORS(cfg.CORS))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("chirpy"))

	// Health check endpoints
	r.Get("/health/live", cfg.HealthHandler.LivenessHandler())
	r.Get("/health/ready", cfg.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	sessionHandler := NewSessionHandler(cfg.Sessions, cfg.Logger)
	userHandler := NewUserHandler(cfg.Users, cfg.Logger)
	chirpHandler := NewChirpHandler(cfg.Chirps, cfg.Logger)
	webhookHandler := NewWebhookHandler(cfg.Webhooks, cfg.PolkaKey, cfg.Logger)
	adminHandler := NewAdminHandler(cfg.Users, cfg.Hits, cfg.Platform == "dev", cfg.Logger)

	requireAuth := middleware.Auth(cfg.Sessions.Authenticate)

	// Public API endpoints
	r.Get("/api/healthz", Readiness)
	r.Get("/api/chirps", chirpHandler.List)
	r.Get("/api/chirps/{chirpID}", chirpHandler.Get)

	r.Group(func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/api/users", userHandler.Create)
		r.Post("/api/login", sessionHandler.Login)
		r.Post("/api/refresh", sessionHandler.Refresh)
		r.Post("/api/revoke", sessionHandler.Revoke)
		r.Post("/api/polka/webhooks", webhookHandler.Handle)
	})

	// Authenticated endpoints
	r.Group(func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(requireAuth)

		r.Put("/api/users", userHandler.Update)
		r.Post("/api/chirps", chirpHandler.Create)
	})

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Delete("/api/chirps/{chirpID}", chirpHandler.Delete)
	})

	// Admin endpoints
	r.Get("/admin/metrics", adminHandler.Metrics)
	r.Post("/admin/reset", adminHandler.Reset)

	// Static app, every hit feeds the visit counter.
	fileServer := http.StripPrefix("/app", http.FileServer(http.Dir(cfg.FileserverDir)))
	r.Handle("/app/*", cfg.Hits.Middleware(fileServer))
	r.Handle("/app", cfg.Hits.Middleware(fileServer))

	return r
}
