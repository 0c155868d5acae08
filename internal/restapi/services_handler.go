package restapi

import (
	"net/http"
	"time"

	"github.com/sudface/frequency/internal/models"
	"github.com/sudface/frequency/internal/utils"
)

func (api *RestAPI) servicesHandler(w http.ResponseWriter, r *http.Request) {
	date, fieldErrors, ok := utils.ParseDateParameter("date", utils.ExtractIDFromParams(r, "date"), time.Local)
	if !ok {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	plan, err := api.dayPlan(r.Context(), date)
	if err != nil {
		api.planErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(models.NewServiceDay(plan.Resolution)))
}
