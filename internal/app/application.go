package app

import (
	"log/slog"

	"github.com/sudface/frequency/internal/appconf"
	"github.com/sudface/frequency/internal/gtfs"
	"github.com/sudface/frequency/internal/metrics"
	"github.com/sudface/frequency/internal/schedule"
)

// Application holds the dependencies shared by the batch runs, the HTTP
// handlers and their middleware.
type Application struct {
	Config      appconf.Config
	GtfsConfig  gtfs.Config
	Logger      *slog.Logger
	GtfsManager *gtfs.Manager
	Metrics     *metrics.Collector
	Profiles    map[string]schedule.Profile
}

// Planner returns a planner over the current feed.
func (app *Application) Planner() *schedule.Planner {
	p := &schedule.Planner{
		Feed:       app.GtfsManager.Feed(),
		RouteTypes: app.Config.RouteTypes,
		Logger:     app.Logger,
	}
	if app.Metrics != nil {
		p.Metrics = app.Metrics
	}
	return p
}

// AllProfiles returns the configured window profiles, or the built-in ones
// when none are configured.
func (app *Application) AllProfiles() map[string]schedule.Profile {
	if app.Profiles == nil {
		return schedule.DefaultProfiles()
	}
	return app.Profiles
}

// Profile looks up a window profile by name.
func (app *Application) Profile(name string) (schedule.Profile, bool) {
	p, ok := app.AllProfiles()[name]
	return p, ok
}

func (app *Application) logger() *slog.Logger {
	if app.Logger == nil {
		return slog.Default()
	}
	return app.Logger
}
