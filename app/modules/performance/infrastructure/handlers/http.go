package performancehandlers

import (
	"log/slog"
	"net/http"
	"strconv"

	authhandlers "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/infrastructure/handlers"
	performanceservice "github.com/Black-And-White-Club/slackline-champs/app/modules/performance/application"
	"github.com/Black-And-White-Club/slackline-champs/internal/httpx"
	"github.com/go-chi/chi/v5"
)

// HTTPHandlers serves performance scoring.
type HTTPHandlers struct {
	service performanceservice.Service
	logger  *slog.Logger
}

func NewHTTPHandlers(service performanceservice.Service, logger *slog.Logger) *HTTPHandlers {
	return &HTTPHandlers{service: service, logger: logger}
}

// Routes registers the performance routes on r.
func (h *HTTPHandlers) Routes(r chi.Router) {
	r.Post("/matches/{id}/performances", h.HandleSubmit)
	r.Get("/matches/{id}/performances", h.HandleList)
	r.Get("/championships/{id}/scores.png", h.HandleScoreChart)
}

func (h *HTTPHandlers) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	caller, ok := authhandlers.Caller(w, r)
	if !ok {
		return
	}
	matchID, err := httpx.URLUUID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	var req performanceservice.SubmitRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	p, err := h.service.SubmitPerformance(r.Context(), caller, matchID, req)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, p)
}

func (h *HTTPHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	matchID, err := httpx.URLUUID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	list, err := h.service.ListPerformances(r.Context(), matchID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *HTTPHandlers) HandleScoreChart(w http.ResponseWriter, r *http.Request) {
	championshipID, err := httpx.URLUUID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	png, err := h.service.ScoreChart(r.Context(), championshipID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
