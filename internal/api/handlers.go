package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgrunert/antwort/internal/models"
)

// errorResponse is the uniform error payload: the machine-readable kind plus
// the German user message.
type errorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// settingsResponse never echoes the stored API key: the empty shallower
// api_key field shadows the embedded one and omitempty drops it from the
// output. api_key_set tells clients whether a key is configured.
type settingsResponse struct {
	models.Settings
	APIKey    string `json:"api_key,omitempty"`
	APIKeySet bool   `json:"api_key_set"`
}

func redactSettings(s models.Settings) settingsResponse {
	return settingsResponse{Settings: s, APIKeySet: s.APIKey != ""}
}

// NewRouter builds the HTTP surface over the service.
func NewRouter(svc *Service, logger *slog.Logger) http.Handler {
	h := &handlers{svc: svc, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))

	r.Get("/healthz", h.health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/suggestions", h.generate)
		r.Post("/rewrite", h.rewrite)
		r.Get("/settings", h.getSettings)
		r.Put("/settings", h.putSettings)
		r.Get("/history", h.listHistory)
		r.Delete("/history", h.clearHistory)
		r.Delete("/history/{id}", h.deleteHistoryEntry)
		r.Get("/presets", h.presets)
	})

	return r
}

type handlers struct {
	svc    *Service
	logger *slog.Logger
}

func (h *handlers) generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, err)
		return
	}

	result, err := h.svc.Generate(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handlers) rewrite(w http.ResponseWriter, r *http.Request) {
	var req RewriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, err)
		return
	}

	result, err := h.svc.Rewrite(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handlers) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.Settings(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, redactSettings(settings))
}

func (h *handlers) putSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		h.badRequest(w, err)
		return
	}

	if err := h.svc.SaveSettings(r.Context(), settings); err != nil {
		h.writeError(w, r, err)
		return
	}

	// Respond with what was actually stored: a blank submitted key keeps the
	// previous one, so the decoded request is not authoritative.
	stored, err := h.svc.Settings(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, redactSettings(stored))
}

func (h *handlers) listHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.History(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if entries == nil {
		entries = []models.ConversationEntry{}
	}
	h.writeJSON(w, http.StatusOK, entries)
}

func (h *handlers) deleteHistoryEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.DeleteHistoryEntry(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) clearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearHistory(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) presets(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.Presets())
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Healthy(r.Context()); err != nil {
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

func (h *handlers) badRequest(w http.ResponseWriter, err error) {
	h.writeJSON(w, http.StatusBadRequest, errorResponse{
		Kind:    string(models.ErrUnexpected),
		Message: "Ungültige Anfrage",
	})
	h.logger.Warn("Rejected malformed request body", "error", err)
}

func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var genErr *models.GenerationError
	if !errors.As(err, &genErr) {
		h.logger.Error("Request failed", "path", r.URL.Path, "error", err)
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{
			Kind:    string(models.ErrUnexpected),
			Message: models.UserMessage(models.ErrUnexpected),
		})
		return
	}

	status := statusForKind(genErr.Kind)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Generation failed", "path", r.URL.Path, "kind", genErr.Kind, "error", err)
	} else {
		h.logger.Warn("Generation rejected", "path", r.URL.Path, "kind", genErr.Kind)
	}
	h.writeJSON(w, status, errorResponse{Kind: string(genErr.Kind), Message: genErr.Message})
}

// statusForKind maps error kinds to HTTP statuses.
func statusForKind(kind models.ErrorKind) int {
	switch kind {
	case models.ErrInputBlank:
		return http.StatusBadRequest
	case models.ErrMissingCredentials, models.ErrInputTooLong:
		return http.StatusUnprocessableEntity
	case models.ErrUnauthorized:
		return http.StatusUnauthorized
	case models.ErrForbidden:
		return http.StatusForbidden
	case models.ErrRateLimited:
		return http.StatusTooManyRequests
	case models.ErrTimeout:
		return http.StatusGatewayTimeout
	case models.ErrNoConnectivity, models.ErrTransport, models.ErrEmptyReply:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
