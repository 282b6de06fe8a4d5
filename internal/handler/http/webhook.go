package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	apperrors "github.com/vhforbes/boot-webserver/pkg/errors"
	"github.com/vhforbes/boot-webserver/pkg/httputil"

	"github.com/vhforbes/boot-webserver/internal/auth"
	"github.com/vhforbes/boot-webserver/internal/service"
)

// WebhookHandler handles payment-provider webhook callbacks. Callers
// authenticate with a static API key, not a user session.
type WebhookHandler struct {
	webhooks *service.WebhookService
	polkaKey string
	logger   *slog.Logger
}

// NewWebhookHandler creates a new webhook HTTP handler.
func NewWebhookHandler(webhooks *service.WebhookService, polkaKey string, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{webhooks: webhooks, polkaKey: polkaKey, logger: logger}
}

// WebhookRequest is the JSON request body sent by Polka.
type WebhookRequest struct {
	Event string `json:"event"`
	Data  struct {
		UserID string `json:"user_id"`
	} `json:"data"`
}

// Handle handles POST /api/polka/webhooks
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	key, err := auth.GetAPIKey(r.Header)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if err := auth.ValidateAPIKey(key, h.polkaKey); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	var req WebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.BadRequest("invalid request body"), h.logger)
		return
	}

	if req.Event == "" {
		httputil.WriteError(w, r, apperrors.BadRequest("event is required"), h.logger)
		return
	}

	if err := h.webhooks.ProcessEvent(r.Context(), req.Event, req.Data.UserID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
