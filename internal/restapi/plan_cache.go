package restapi

import (
	"context"

	"github.com/bluele/gcache"
	"github.com/sudface/frequency/internal/gtfs"
	"github.com/sudface/frequency/internal/schedule"
)

const defaultPlanCacheSize = 32

// planKey includes the feed so a plan built from a replaced feed is never
// served after a reload.
type planKey struct {
	feed *gtfs.Feed
	date gtfs.Date
}

type planCache struct {
	cache gcache.Cache
}

func newPlanCache(size int) *planCache {
	if size <= 0 {
		size = defaultPlanCacheSize
	}
	return &planCache{cache: gcache.New(size).LRU().Build()}
}

func (c *planCache) get(key planKey) (*schedule.DayPlan, bool) {
	v, err := c.cache.Get(key)
	if err != nil {
		return nil, false
	}
	plan, ok := v.(*schedule.DayPlan)
	return plan, ok
}

func (c *planCache) set(key planKey, plan *schedule.DayPlan) {
	_ = c.cache.Set(key, plan)
}

func (c *planCache) purge() {
	c.cache.Purge()
}

// dayPlan returns the resolved plan for date, building and caching it on a
// miss. Dates without services are not cached.
func (api *RestAPI) dayPlan(ctx context.Context, date gtfs.Date) (*schedule.DayPlan, error) {
	planner := api.Planner()
	key := planKey{feed: planner.Feed, date: date}

	if plan, ok := api.plans.get(key); ok {
		api.observeCache(true)
		return plan, nil
	}
	api.observeCache(false)

	plan, err := planner.Plan(ctx, date)
	if err != nil {
		return nil, err
	}
	api.plans.set(key, plan)
	return plan, nil
}

func (api *RestAPI) observeCache(hit bool) {
	if api.Metrics != nil {
		api.Metrics.PlanCache(hit)
	}
}
