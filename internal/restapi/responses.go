package restapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	geojson "github.com/paulmach/go.geojson"
	"github.com/sudface/frequency/internal/logging"
	"github.com/sudface/frequency/internal/models"
)

const geoJSONContentType = "application/geo+json"

func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	api.writeJSON(w, r, response.Code, "application/json", response)
}

func (api *RestAPI) sendError(w http.ResponseWriter, r *http.Request, code int, text string) {
	api.sendResponse(w, r, models.NewResponse(code, nil, text))
}

func (api *RestAPI) sendNotFound(w http.ResponseWriter, r *http.Request) {
	api.sendError(w, r, http.StatusNotFound, "resource not found")
}

func (api *RestAPI) sendMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	api.sendError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

// sendGeoJSON writes a bare feature collection, the same document the
// batch run writes to disk.
func (api *RestAPI) sendGeoJSON(w http.ResponseWriter, r *http.Request, fc *geojson.FeatureCollection) {
	b, err := fc.MarshalJSON()
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	w.Header().Set("Content-Type", geoJSONContentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(b); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to write response", err,
			slog.String("component", "http_server"))
	}
}

// writeJSON encodes v before writing the header so an encoding failure
// can still become a 500.
func (api *RestAPI) writeJSON(w http.ResponseWriter, r *http.Request, status int, contentType string, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		if status != http.StatusInternalServerError {
			api.serverErrorResponse(w, r, err)
		}
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(append(b, '\n')); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to write response", err,
			slog.String("component", "http_server"))
	}
}
