package restapi

import (
	"log/slog"
	"time"

	"github.com/sudface/frequency/internal/app"
	"github.com/sudface/frequency/internal/gtfs"
)

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
	plans       *planCache
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
// and day-plan cache. The cache is emptied whenever the feed reloads.
func NewRestAPI(app *app.Application) *RestAPI {
	api := &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second),
		plans:       newPlanCache(app.Config.CacheSize),
	}
	if app.GtfsManager != nil {
		app.GtfsManager.OnReload(func(*gtfs.Feed) {
			api.plans.purge()
		})
	}
	return api
}

// Close stops background work started by NewRestAPI.
func (api *RestAPI) Close() {
	if api.rateLimiter != nil {
		api.rateLimiter.Stop()
	}
}

func (api *RestAPI) logger() *slog.Logger {
	if api.Logger == nil {
		return slog.Default()
	}
	return api.Logger
}
