package restapi

import (
	"net/http"

	"github.com/sudface/frequency/internal/models"
)

func (api *RestAPI) profilesHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewListResponse(models.NewProfileList(api.AllProfiles())))
}
