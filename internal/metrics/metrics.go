package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	StageDuration *prometheus.HistogramVec // stage label: resolve|filter|aggregate|compute|format

	ActiveServices prometheus.Gauge
	RetainedTrips  prometheus.Gauge
	StopsWithVisit prometheus.Gauge

	SkippedVisits   prometheus.Counter
	MissingGeometry prometheus.Counter

	FeedReloads    *prometheus.CounterVec // result label: ok|error
	FeedLastLoaded prometheus.Gauge

	PlanCacheHits   prometheus.Counter
	PlanCacheMisses prometheus.Counter

	HTTPRequests *prometheus.CounterVec // route and status labels
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "frequency_stage_duration_seconds",
			Help:    "Duration of each pipeline stage.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 15),
		}, []string{"stage"}),
		ActiveServices: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "frequency_active_services",
			Help: "Service patterns active on the last planned date.",
		}),
		RetainedTrips: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "frequency_retained_trips",
			Help: "Trips retained on the last planned date.",
		}),
		StopsWithVisit: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "frequency_stops_with_visits",
			Help: "Stops visited on the last planned date.",
		}),
		SkippedVisits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "frequency_skipped_visits_total",
			Help: "Stop times of retained trips dropped for lack of an arrival time.",
		}),
		MissingGeometry: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "frequency_missing_geometry_total",
			Help: "Stops left out of feature collections for lack of coordinates.",
		}),
		FeedReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "frequency_feed_reloads_total",
			Help: "Feed loads by result.",
		}, []string{"result"}),
		FeedLastLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "frequency_feed_last_loaded_timestamp_seconds",
			Help: "Unix time of the last successful feed load.",
		}),
		PlanCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "frequency_plan_cache_hits_total",
			Help: "Day plans served from the cache.",
		}),
		PlanCacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "frequency_plan_cache_misses_total",
			Help: "Day plans built on demand.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "frequency_http_requests_total",
			Help: "HTTP requests by route and status.",
		}, []string{"route", "status"}),
	}

	reg.MustRegister(
		c.StageDuration,
		c.ActiveServices, c.RetainedTrips, c.StopsWithVisit,
		c.SkippedVisits, c.MissingGeometry,
		c.FeedReloads, c.FeedLastLoaded,
		c.PlanCacheHits, c.PlanCacheMisses,
		c.HTTPRequests,
	)

	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// Registry exposes the private registry, for tests and extra collectors.
func (c *Collector) Registry() *prometheus.Registry { return c.reg }

func (c *Collector) ObserveStage(stage string, d time.Duration) {
	c.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (c *Collector) SetDayCounts(services, trips, stops int) {
	c.ActiveServices.Set(float64(services))
	c.RetainedTrips.Set(float64(trips))
	c.StopsWithVisit.Set(float64(stops))
}

func (c *Collector) AddSkippedVisits(n int) {
	c.SkippedVisits.Add(float64(n))
}

func (c *Collector) AddMissingGeometry(n int) {
	c.MissingGeometry.Add(float64(n))
}

// FeedLoaded records the outcome of a feed load.
func (c *Collector) FeedLoaded(err error, at time.Time) {
	if err != nil {
		c.FeedReloads.WithLabelValues("error").Inc()
		return
	}
	c.FeedReloads.WithLabelValues("ok").Inc()
	c.FeedLastLoaded.Set(float64(at.Unix()))
}

func (c *Collector) PlanCache(hit bool) {
	if hit {
		c.PlanCacheHits.Inc()
		return
	}
	c.PlanCacheMisses.Inc()
}

func (c *Collector) ObserveRequest(route string, status int) {
	c.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}
