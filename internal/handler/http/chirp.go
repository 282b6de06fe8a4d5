package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/vhforbes/boot-webserver/pkg/errors"
	"github.com/vhforbes/boot-webserver/pkg/httputil"
	"github.com/vhforbes/boot-webserver/pkg/middleware"
	"github.com/vhforbes/boot-webserver/pkg/validator"

	"github.com/vhforbes/boot-webserver/internal/service"
)

// ChirpHandler handles HTTP requests for chirp endpoints.
type ChirpHandler struct {
	chirps *service.ChirpService
	logger *slog.Logger
}

// NewChirpHandler creates a new chirp HTTP handler.
func NewChirpHandler(chirps *service.ChirpService, logger *slog.Logger) *ChirpHandler {
	return &ChirpHandler{chirps: chirps, logger: logger}
}

// ChirpRequest is the JSON request body for posting a chirp.
type ChirpRequest struct {
	Body string `json:"body" validate:"required"`
}

// Create handles POST /api/chirps
func (h *ChirpHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), h.logger)
		return
	}

	var req ChirpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.BadRequest("invalid request body"), h.logger)
		return
	}

	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	chirp, err := h.chirps.CreateChirp(r.Context(), userID, req.Body)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, chirp)
}

// List handles GET /api/chirps with an optional author_id filter.
func (h *ChirpHandler) List(w http.ResponseWriter, r *http.Request) {
	authorID := r.URL.Query().Get("author_id")

	chirps, err := h.chirps.ListChirps(r.Context(), authorID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, chirps)
}

// Get handles GET /api/chirps/{chirpID}
func (h *ChirpHandler) Get(w http.ResponseWriter, r *http.Request) {
	chirpID := chi.URLParam(r, "chirpID")

	chirp, err := h.chirps.GetChirp(r.Context(), chirpID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, chirp)
}

// Delete handles DELETE /api/chirps/{chirpID}
func (h *ChirpHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		httputil.WriteError(w, r, apperrors.Unauthorized("authentication required"), h.logger)
		return
	}

	chirpID := chi.URLParam(r, "chirpID")

	if err := h.chirps.DeleteChirp(r.Context(), userID, chirpID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
