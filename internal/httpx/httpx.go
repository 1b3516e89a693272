// Package httpx holds the JSON response helpers shared by the module HTTP handlers.
package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Black-And-White-Club/slackline-champs/internal/apperrors"
	"github.com/Black-And-White-Club/slackline-champs/internal/observability/attr"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Status maps err to an HTTP status and the message safe to show the caller.
// Unclassified errors become a generic 500.
func Status(err error) (int, string) {
	var de *apperrors.Error
	if !errors.As(err, &de) {
		return http.StatusInternalServerError, "internal error"
	}
	switch de.Kind {
	case apperrors.KindValidation:
		return http.StatusBadRequest, de.Msg
	case apperrors.KindNotFound:
		return http.StatusNotFound, de.Msg
	case apperrors.KindForbidden:
		return http.StatusForbidden, de.Msg
	case apperrors.KindConflict:
		return http.StatusConflict, de.Msg
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes err as {"error": "..."} and logs server-side failures.
func WriteError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, msg := Status(err)
	if status >= http.StatusInternalServerError && logger != nil {
		logger.ErrorContext(r.Context(), "Request failed",
			attr.ExtractCorrelationID(r.Context()),
			attr.String("method", r.Method),
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
	}
	WriteJSON(w, status, map[string]string{"error": msg})
}

// DecodeJSON decodes the request body into v, rejecting unknown fields.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperrors.Validation(fmt.Sprintf("invalid request body: %v", err))
	}
	return nil
}

// URLUUID parses the chi URL parameter name as a UUID.
func URLUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, apperrors.Validation(fmt.Sprintf("invalid %s", name))
	}
	return id, nil
}
