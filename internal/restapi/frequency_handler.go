package restapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sudface/frequency/internal/utils"
)

func (api *RestAPI) frequencyHandler(w http.ResponseWriter, r *http.Request) {
	fieldErrors := make(map[string][]string)

	name := utils.ExtractIDFromParams(r, "profile")
	if err := utils.ValidateID(name); err != nil {
		fieldErrors["profile"] = append(fieldErrors["profile"], err.Error())
	}
	date, dateErrors, _ := utils.ParseDateParameter("date", utils.ExtractIDFromParams(r, "date"), time.Local)
	for k, v := range dateErrors {
		fieldErrors[k] = append(fieldErrors[k], v...)
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	profile, ok := api.Profile(name)
	if !ok {
		api.sendError(w, r, http.StatusNotFound, "unknown profile "+strconv.Quote(name))
		return
	}

	plan, err := api.dayPlan(r.Context(), date)
	if err != nil {
		api.planErrorResponse(w, r, err)
		return
	}
	if err := r.Context().Err(); err != nil {
		api.planErrorResponse(w, r, err)
		return
	}

	fc, missing := api.StopPoints(plan, profile)
	w.Header().Set("X-Run-Id", plan.RunID)
	w.Header().Set("X-Missing-Geometry", strconv.Itoa(len(missing)))
	api.sendGeoJSON(w, r, fc)
}
