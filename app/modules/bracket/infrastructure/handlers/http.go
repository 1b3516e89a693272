package brackethandlers

import (
	"log/slog"
	"net/http"

	authhandlers "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/infrastructure/handlers"
	bracketservice "github.com/Black-And-White-Club/slackline-champs/app/modules/bracket/application"
	"github.com/Black-And-White-Club/slackline-champs/internal/httpx"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// HTTPHandlers serves bracket and match routes.
type HTTPHandlers struct {
	service bracketservice.Service
	logger  *slog.Logger
}

func NewHTTPHandlers(service bracketservice.Service, logger *slog.Logger) *HTTPHandlers {
	return &HTTPHandlers{service: service, logger: logger}
}

// Routes registers the bracket routes on r.
func (h *HTTPHandlers) Routes(r chi.Router) {
	r.Post("/championships/{id}/bracket", h.HandleGenerate)
	r.Get("/championships/{id}/bracket", h.HandleGet)
	r.Delete("/championships/{id}/bracket", h.HandleReset)

	r.Get("/matches/{id}", h.HandleGetMatch)
	r.Post("/matches/{id}/start", h.HandleStart)
	r.Post("/matches/{id}/result", h.HandleResult)
	r.Post("/matches/{id}/decide", h.HandleDecide)
}

type resultRequest struct {
	WinnerID uuid.UUID `json:"winner_id"`
}

func (h *HTTPHandlers) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	caller, ok := authhandlers.Caller(w, r)
	if !ok {
		return
	}
	id, err := httpx.URLUUID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	var req bracketservice.GenerateRequest
	if r.ContentLength != 0 {
		if err := httpx.DecodeJSON(r, &req); err != nil {
			httpx.WriteError(w, r, h.logger, err)
			return
		}
	}

	b, err := h.service.GenerateBracket(r.Context(), caller, id, req)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, b)
}

func (h *HTTPHandlers) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLUUID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	b, err := h.service.GetBracket(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, b)
}

func (h *HTTPHandlers) HandleReset(w http.ResponseWriter, r *http.Request) {
	caller, ok := authhandlers.Caller(w, r)
	if !ok {
		return
	}
	id, err := httpx.URLUUID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	if err := h.service.ResetBracket(r.Context(), caller, id); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HTTPHandlers) HandleGetMatch(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLUUID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	m, err := h.service.GetMatch(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, m)
}

func (h *HTTPHandlers) HandleStart(w http.ResponseWriter, r *http.Request) {
	caller, ok := authhandlers.Caller(w, r)
	if !ok {
		return
	}
	id, err := httpx.URLUUID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	m, err := h.service.StartMatch(r.Context(), caller, id)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, m)
}

func (h *HTTPHandlers) HandleResult(w http.ResponseWriter, r *http.Request) {
	caller, ok := authhandlers.Caller(w, r)
	if !ok {
		return
	}
	id, err := httpx.URLUUID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	var req resultRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	m, err := h.service.RecordResult(r.Context(), caller, id, req.WinnerID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, m)
}

func (h *HTTPHandlers) HandleDecide(w http.ResponseWriter, r *http.Request) {
	caller, ok := authhandlers.Caller(w, r)
	if !ok {
		return
	}
	id, err := httpx.URLUUID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	m, err := h.service.DecideMatch(r.Context(), caller, id)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, m)
}
