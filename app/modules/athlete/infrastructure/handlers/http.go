package athletehandlers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	athleteservice "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/application"
	athletedomain "github.com/Black-And-White-Club/slackline-champs/app/modules/athlete/domain"
	authhandlers "github.com/Black-And-White-Club/slackline-champs/app/modules/auth/infrastructure/handlers"
	"github.com/Black-And-White-Club/slackline-champs/internal/apperrors"
	"github.com/Black-And-White-Club/slackline-champs/internal/httpx"
	"github.com/go-chi/chi/v5"
)

// DefaultMaxUploadBytes bounds roster uploads when no limit is configured.
const DefaultMaxUploadBytes int64 = 5 << 20

// HTTPHandlers serves the athlete REST API.
type HTTPHandlers struct {
	service        athleteservice.Service
	logger         *slog.Logger
	maxUploadBytes int64
}

// NewHTTPHandlers creates the athlete HTTP handlers.
func NewHTTPHandlers(service athleteservice.Service, logger *slog.Logger, maxUploadBytes int64) *HTTPHandlers {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &HTTPHandlers{service: service, logger: logger, maxUploadBytes: maxUploadBytes}
}

// Routes registers the athlete routes on r.
func (h *HTTPHandlers) Routes(r chi.Router) {
	r.Post("/championships/{id}/athletes", h.HandleRegister)
	r.Get("/championships/{id}/athletes", h.HandleList)
	r.Post("/championships/{id}/athletes/import", h.HandleImport)
	r.Get("/athletes/{id}", h.HandleGet)
	r.Delete("/athletes/{id}", h.HandleRemove)
}

func (h *HTTPHandlers) HandleRegister(w http.ResponseWriter, r *http.Request) {
	caller, ok := authhandlers.Caller(w, r)
	if !ok {
		return
	}
	championshipID, err := httpx.URLUUID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	var reg athletedomain.Registration
	if err := httpx.DecodeJSON(r, &reg); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	a, err := h.service.RegisterAthlete(r.Context(), caller, championshipID, reg)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, a)
}

func (h *HTTPHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	championshipID, err := httpx.URLUUID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	list, err := h.service.ListAthletes(r.Context(), championshipID)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *HTTPHandlers) HandleImport(w http.ResponseWriter, r *http.Request) {
	caller, ok := authhandlers.Caller(w, r)
	if !ok {
		return
	}
	championshipID, err := httpx.URLUUID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	fileName, data, err := h.readRoster(w, r)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	result, err := h.service.ImportAthletes(r.Context(), caller, championshipID, fileName, data)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, result)
}

// readRoster reads the multipart "file" field within the upload limit.
func (h *HTTPHandlers) readRoster(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", nil, apperrors.Validation(fmt.Sprintf("roster exceeds %d bytes", h.maxUploadBytes))
		}
		return "", nil, apperrors.Validation("expected a multipart form with a file field")
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, apperrors.Validation("missing file field")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read roster: %w", err)
	}
	return header.Filename, data, nil
}

func (h *HTTPHandlers) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.URLUUID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	a, err := h.service.GetAthlete(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, a)
}

func (h *HTTPHandlers) HandleRemove(w http.ResponseWriter, r *http.Request) {
	caller, ok := authhandlers.Caller(w, r)
	if !ok {
		return
	}
	id, err := httpx.URLUUID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}

	if err := h.service.RemoveAthlete(r.Context(), caller, id); err != nil {
		httpx.WriteError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
