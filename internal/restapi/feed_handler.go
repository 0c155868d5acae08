package restapi

import (
	"net/http"

	"github.com/sudface/frequency/internal/models"
)

func (api *RestAPI) feedHandler(w http.ResponseWriter, r *http.Request) {
	feed := api.GtfsManager.Feed()
	if feed == nil {
		api.sendError(w, r, http.StatusServiceUnavailable, "feed not loaded")
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(models.NewFeedSummary(feed, api.GtfsManager.LastUpdated())))
}
