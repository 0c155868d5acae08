package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	geojson "github.com/paulmach/go.geojson"
	"github.com/sudface/frequency/internal/appconf"
	"github.com/sudface/frequency/internal/export"
	"github.com/sudface/frequency/internal/gtfs"
	"github.com/sudface/frequency/internal/logging"
	"github.com/sudface/frequency/internal/models"
	"github.com/sudface/frequency/internal/schedule"
)

// Mode is what a batch run produces.
type Mode string

const (
	ModeWeekday Mode = "weekday"
	ModeWeekend Mode = "weekend"
	ModeDetails Mode = "details"
)

// ErrUnknownMode is returned for a mode without a matching profile.
var ErrUnknownMode = errors.New("unknown run mode")

// RunSummary describes a finished batch run.
type RunSummary struct {
	RunID           string
	Date            gtfs.Date
	Weekday         time.Weekday
	Mode            Mode
	ActiveServices  int
	RetainedTrips   int
	StopsEmitted    int
	SkippedVisits   int
	MissingGeometry []string
	Output          string
	Duration        time.Duration
}

// Run computes mode for date over the current feed and writes the result
// into the output directory. Nothing is written when the date has no active
// service.
func (app *Application) Run(ctx context.Context, mode Mode, date gtfs.Date) (*RunSummary, error) {
	start := time.Now()

	var profile schedule.Profile
	if mode != ModeDetails {
		p, ok := app.Profile(string(mode))
		if !ok {
			return nil, fmt.Errorf("%w: %s (profiles: %s)", ErrUnknownMode, mode,
				strings.Join(appconf.ProfileNames(app.AllProfiles()), ", "))
		}
		profile = p
	}

	plan, err := app.Planner().Plan(ctx, date)
	if err != nil {
		return nil, err
	}

	summary := &RunSummary{
		RunID:          plan.RunID,
		Date:           date,
		Weekday:        plan.Resolution.Weekday,
		Mode:           mode,
		ActiveServices: len(plan.Resolution.Services),
		RetainedTrips:  len(plan.Trips),
		SkippedVisits:  plan.SkippedVisits,
	}

	logger := app.logger().With(slog.String("run_id", plan.RunID))
	switch mode {
	case ModeDetails:
		dump := models.NewDetailDump(plan, plan.Feed())
		summary.StopsEmitted = len(dump.Times)
		summary.Output, err = export.WriteDetails(app.Config.OutputDir, date, dump, logger)
	default:
		fc, missing := app.StopPoints(plan, profile)
		summary.StopsEmitted = len(fc.Features)
		summary.MissingGeometry = missing
		summary.Output, err = export.WritePoints(app.Config.OutputDir, profile.Name, fc, logger)
	}
	if err != nil {
		return nil, err
	}

	summary.Duration = time.Since(start)
	logging.LogOperation(logger, "run_summary",
		slog.String("date", date.String()),
		slog.String("weekday", summary.Weekday.String()),
		slog.String("mode", string(mode)),
		slog.Int("active_services", summary.ActiveServices),
		slog.Int("retained_trips", summary.RetainedTrips),
		slog.Int("stops_emitted", summary.StopsEmitted),
		slog.Int("skipped_visits", summary.SkippedVisits),
		slog.Any("missing_geometry", summary.MissingGeometry),
		slog.String("output", summary.Output),
		slog.Duration("duration", summary.Duration))

	return summary, nil
}

// StopPoints computes profile over plan and formats the stop features.
// Stops that cannot be located are logged and counted, never guessed.
func (app *Application) StopPoints(plan *schedule.DayPlan, profile schedule.Profile) (*geojson.FeatureCollection, []string) {
	records := plan.Frequencies(profile)

	start := time.Now()
	fc, missing := models.NewStopPoints(records, plan.Feed())
	plan.Metrics().ObserveStage(schedule.StageFormat, time.Since(start))

	plan.Metrics().AddMissingGeometry(len(missing))
	for _, id := range missing {
		logging.LogWarning(app.logger(), "stop without geometry skipped",
			slog.String("run_id", plan.RunID),
			slog.String("stop_id", id),
			slog.String("component", "output_formatter"))
	}
	return fc, missing
}
