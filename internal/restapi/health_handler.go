package restapi

import (
	"net/http"

	"github.com/sudface/frequency/internal/models"
)

type healthStatus struct {
	Status      string `json:"status"`
	LastUpdated int64  `json:"lastUpdated,omitempty"`
}

func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	if api.GtfsManager == nil || api.GtfsManager.Feed() == nil {
		api.sendResponse(w, r, models.NewResponse(http.StatusServiceUnavailable, healthStatus{Status: "loading"}, "feed not loaded"))
		return
	}
	api.sendResponse(w, r, models.NewOKResponse(healthStatus{
		Status:      "ok",
		LastUpdated: api.GtfsManager.LastUpdated().UnixMilli(),
	}))
}
