package championshiphandlers

import (
	"log/slog"
	"net/http"

	authhandlers "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/infrastructure/handlers"
	championshipservice "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/application"
	championshipdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/championship/domain"
	"github.com/Black-And-White-Club/slackline-champs/internal/httpx"
	"github.com/go-chi/chi/v5"
)

// HTTPHandlers serves the championship REST API.
type HTTPHandlers struct {
	service championshipservice.Service
	logger  *slog.Logger
}

// NewHTTPHandlers creates the championship HTTP handlers.
func NewHTTPHandlers(service championshipservice.Service, logger *slog.Logger) *HTTPHandlers {
	return &HTTPHandlers{service: service, logger: logger}
}

// Routes registers the championship routes on r. Paths are flat so other
// modules can add routes under /championships/{id}.
func (h *HTTPHandlers) Routes(r chi.Router) {
	r.Get("/dashboard", h.HandleDashboard)
	r.Post("/championships", h.HandleCreate)
	r.Get("/championships", h.HandleList)
	r.Get("/championships/{id}", h.HandleGet)
	r.Patch("/championships/{id}/status", h.HandleUpdateStatus)
	r.Delete("/championships/{id}", h.HandleDelete)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *HTTPHandlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := authhandlers.Caller(w, r)
	if !ok {
		return
	}

	var req championshipservice.CreateChampionshipRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	c, err := h.service.CreateChampionship(r.Context(), caller.Subject, req)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, c)
}

func (h *HTTPHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	caller, ok := authhandlers.Caller(w, r)
	if !ok {
		return
	}

	list, err := h.service.ListChampionships(r.Context(), caller.Subject, r.URL.Query().Get("status"))
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *HTTPHandlers) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLUUID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	c, err := h.service.GetChampionship(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

func (h *HTTPHandlers) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := authhandlers.Caller(w, r)
	if !ok {
		return
	}
	id, err := httpx.URLUUID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	var req updateStatusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	c, err := h.service.UpdateStatus(r.Context(), caller, id, championshipdomain.Status(req.Status))
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c)
}

func (h *HTTPHandlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	caller, ok := authhandlers.Caller(w, r)
	if !ok {
		return
	}
	id, err := httpx.URLUUID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	if err := h.service.DeleteChampionship(r.Context(), caller, id); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HTTPHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	caller, ok := authhandlers.Caller(w, r)
	if !ok {
		return
	}

	d, err := h.service.GetDashboard(r.Context(), caller.Subject)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, d)
}
