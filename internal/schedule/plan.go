package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sudface/frequency/internal/gtfs"
	"github.com/sudface/frequency/internal/logging"
)

// Stage names reported to Metrics.
const (
	StageResolve   = "resolve"
	StageFilter    = "filter"
	StageAggregate = "aggregate"
	StageCompute   = "compute"
	StageFormat    = "format"
)

// Metrics receives pipeline measurements. A nil Metrics on the Planner
// discards them.
type Metrics interface {
	ObserveStage(stage string, d time.Duration)
	SetDayCounts(services, trips, stops int)
	AddSkippedVisits(n int)
	AddMissingGeometry(n int)
}

type noopMetrics struct{}

func (noopMetrics) ObserveStage(string, time.Duration) {}
func (noopMetrics) SetDayCounts(int, int, int)         {}
func (noopMetrics) AddSkippedVisits(int)               {}
func (noopMetrics) AddMissingGeometry(int)             {}

// DayPlan is everything resolved for one date: the active services, the
// retained trips and the ordered visits per stop. It is read only once
// built and may be shared between requests.
type DayPlan struct {
	RunID         string
	Date          gtfs.Date
	Resolution    *Resolution
	Routes        RouteSet
	Trips         map[string]TripInfo
	Visits        StopVisits
	SkippedVisits int

	planner *Planner
}

// Planner runs the calendar, trip and visit stages against one feed.
type Planner struct {
	Feed *gtfs.Feed
	// RouteTypes lists the eligible route_type values, BusRouteType when
	// empty.
	RouteTypes []int
	Metrics    Metrics
	Logger     *slog.Logger
}

func (p *Planner) metrics() Metrics {
	if p.Metrics == nil {
		return noopMetrics{}
	}
	return p.Metrics
}

func (p *Planner) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

// Plan resolves date against the feed. Errors wrap ErrNoActiveServices when
// nothing runs on the date.
func (p *Planner) Plan(ctx context.Context, date gtfs.Date) (*DayPlan, error) {
	runID := uuid.NewString()
	logger := p.logger().With(slog.String("run_id", runID), slog.String("date", date.String()))
	m := p.metrics()

	start := time.Now()
	res, err := ResolveServices(date, p.Feed.Calendar(), p.Feed.CalendarDates())
	m.ObserveStage(StageResolve, time.Since(start))
	for _, id := range res.Conflicts {
		logging.LogWarning(logger, "service both added and removed on date, removal wins",
			slog.String("service_id", id),
			slog.String("component", "calendar_resolver"))
	}
	if err != nil {
		logging.LogError(logger, "no active services", err,
			slog.String("weekday", res.Weekday.String()),
			slog.String("component", "calendar_resolver"))
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	routes := EligibleRoutes(p.Feed.Routes(), p.RouteTypes)
	trips := FilterTrips(p.Feed.Trips(), res.Services, routes)
	m.ObserveStage(StageFilter, time.Since(start))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	visits, skipped := AggregateVisits(p.Feed.StopTimes(), trips)
	m.ObserveStage(StageAggregate, time.Since(start))

	m.SetDayCounts(len(res.Services), len(trips), len(visits))
	m.AddSkippedVisits(skipped)
	if skipped > 0 {
		logging.LogWarning(logger, "visits without arrival time skipped",
			slog.Int("count", skipped),
			slog.String("component", "visit_aggregator"))
	}

	logging.LogOperation(logger, "day_plan_built",
		slog.String("weekday", res.Weekday.String()),
		slog.Int("active_services", len(res.Services)),
		slog.Int("eligible_routes", len(routes)),
		slog.Int("retained_trips", len(trips)),
		slog.Int("stops_with_visits", len(visits)))

	return &DayPlan{
		RunID:         runID,
		Date:          date,
		Resolution:    res,
		Routes:        routes,
		Trips:         trips,
		Visits:        visits,
		SkippedVisits: skipped,
		planner:       p,
	}, nil
}

// Frequencies computes profile over the plan.
func (plan *DayPlan) Frequencies(profile Profile) []Record {
	start := time.Now()
	records := ComputeFrequencies(plan.Visits, profile)
	plan.Metrics().ObserveStage(StageCompute, time.Since(start))
	return records
}

// Metrics returns the sink the plan reports to, never nil.
func (plan *DayPlan) Metrics() Metrics {
	if plan.planner == nil {
		return noopMetrics{}
	}
	return plan.planner.metrics()
}

// Feed returns the feed the plan was built from.
func (plan *DayPlan) Feed() *gtfs.Feed {
	if plan.planner == nil {
		return nil
	}
	return plan.planner.Feed
}
