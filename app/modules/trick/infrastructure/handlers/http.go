package trickhandlers

import (
	"log/slog"
	"net/http"

	authhandlers "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/infrastructure/handlers"
	trickservice "github.com/Black-And-White-Club/slackline-champs/app/modules/trick/application"
	trickdomain "github.com/Black-And-White-Club/slackline-champs/app/modules/trick/domain"
	"github.com/Black-And-White-Club/slackline-champs/internal/httpx"
	"github.com/go-chi/chi/v5"
)

// HTTPHandlers serves the trick catalog.
type HTTPHandlers struct {
	service trickservice.Service
	logger  *slog.Logger
}

func NewHTTPHandlers(service trickservice.Service, logger *slog.Logger) *HTTPHandlers {
	return &HTTPHandlers{service: service, logger: logger}
}

// Routes registers the trick routes on r.
func (h *HTTPHandlers) Routes(r chi.Router) {
	r.Get("/tricks", h.HandleList)
	r.Post("/tricks", h.HandleCreate)
	r.Get("/tricks/{id}", h.HandleGet)
}

func (h *HTTPHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.service.ListTricks(r.Context(), q.Get("q"), q.Get("type"))
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *HTTPHandlers) HandleCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := authhandlers.Caller(w, r)
	if !ok {
		return
	}

	var def trickdomain.Definition
	if err := httpx.DecodeJSON(r, &def); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	t, err := h.service.CreateTrick(r.Context(), caller, def)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, t)
}

func (h *HTTPHandlers) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLUUID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	t, err := h.service.GetTrick(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, t)
}
