package restapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sudface/frequency/internal/logging"
	"github.com/sudface/frequency/internal/schedule"
)

// invalidAPIKeyResponse sends a 401 Unauthorized response
func (api *RestAPI) invalidAPIKeyResponse(w http.ResponseWriter, r *http.Request) {
	api.sendError(w, r, http.StatusUnauthorized, "permission denied")
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "request failed", err,
		slog.String("path", r.URL.Path),
		slog.String("component", "http_server"))
	api.sendError(w, r, http.StatusInternalServerError, "internal server error")
}

// validationErrorResponse sends a 400 Bad Request response with field-specific validation errors
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	response := struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}{
		FieldErrors: fieldErrors,
	}
	api.writeJSON(w, r, http.StatusBadRequest, "application/json", response)
}

// planErrorResponse maps a failed day plan to a response: no services is a
// 404, an abandoned request a 503.
func (api *RestAPI) planErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, schedule.ErrNoActiveServices):
		api.sendError(w, r, http.StatusNotFound, schedule.ErrNoActiveServices.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		api.sendError(w, r, http.StatusServiceUnavailable, "request cancelled")
	default:
		api.serverErrorResponse(w, r, err)
	}
}
