package restapi

import (
	"net/http"
	"time"

	"github.com/sudface/frequency/internal/models"
	"github.com/sudface/frequency/internal/utils"
)

// detailsHandler serves the detail dump for a date, the document the
// details run writes to details_<date>.json.
func (api *RestAPI) detailsHandler(w http.ResponseWriter, r *http.Request) {
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

	w.Header().Set("X-Run-Id", plan.RunID)
	api.writeJSON(w, r, http.StatusOK, "application/json", models.NewDetailDump(plan, plan.Feed()))
}
