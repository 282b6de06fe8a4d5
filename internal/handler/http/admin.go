package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"

	apperrors "github.com/vhforbes/boot-webserver/pkg/errors"
	"github.com/vhforbes/boot-webserver/pkg/httputil"

	"github.com/vhforbes/boot-webserver/internal/service"
)

// HitCounter counts fileserver visits. It is injected into the handlers that
// need it rather than living in package state.
type HitCounter struct {
	hits atomic.Int64
}

// NewHitCounter creates a zeroed hit counter.
func NewHitCounter() *HitCounter {
	return &HitCounter{}
}

// Add records a single visit.
func (c *HitCounter) Add() {
	c.hits.Add(1)
}

// Load returns the current visit count.
func (c *HitCounter) Load() int64 {
	return c.hits.Load()
}

// Reset zeroes the visit count.
func (c *HitCounter) Reset() {
	c.hits.Store(0)
}

// Middleware counts every request passing through it.
func (c *HitCounter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.Add()
		next.ServeHTTP(w, r)
	})
}

// AdminHandler serves the admin metrics page and the destructive reset
// endpoint.
type AdminHandler struct {
	users  *service.UserService
	hits   *HitCounter
	isDev  bool
	logger *slog.Logger
}

// NewAdminHandler creates a new admin HTTP handler.
func NewAdminHandler(users *service.UserService, hits *HitCounter, isDev bool, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{users: users, hits: hits, isDev: isDev, logger: logger}
}

// Metrics handles GET /admin/metrics
func (h *AdminHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<html>
  <body>
    <h1>Welcome, Chirpy Admin</h1>
    <p>Chirpy has been visited %d times!</p>
  </body>
</html>
`, h.hits.Load())
}

// Reset handles POST /admin/reset. It only works on the dev platform, where
// it deletes all users and zeroes the hit counter.
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if !h.isDev {
		httputil.WriteError(w, r, apperrors.Forbidden("reset is only allowed on the dev platform"), h.logger)
		return
	}

	if err := h.users.DeleteAllUsers(r.Context()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.hits.Reset()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Metrics reset"))
}

// Readiness handles GET /api/healthz
func Readiness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
