package gtfs

import (
	"fmt"
	"sort"
)

// Feed is the immutable, indexed view of a loaded feed. It is built once per
// load and shared by reference between pipeline runs.
type Feed struct {
	tables *Tables

	routes map[string]Route
	stops  map[string]Stop
	trips  map[string]Trip
}

// NewFeed indexes the tables. Duplicate primary keys are rejected since the
// lookups would silently depend on row order otherwise.
func NewFeed(tables *Tables) (*Feed, error) {
	if tables == nil {
		return nil, fmt.Errorf("nil tables")
	}
	f := &Feed{
		tables: tables,
		routes: make(map[string]Route, len(tables.Routes)),
		stops:  make(map[string]Stop, len(tables.Stops)),
		trips:  make(map[string]Trip, len(tables.Trips)),
	}
	for _, r := range tables.Routes {
		if _, dup := f.routes[r.RouteID]; dup {
			return nil, fmt.Errorf("%s: duplicate route_id %q", RoutesFile, r.RouteID)
		}
		f.routes[r.RouteID] = r
	}
	for _, s := range tables.Stops {
		if _, dup := f.stops[s.StopID]; dup {
			return nil, fmt.Errorf("%s: duplicate stop_id %q", StopsFile, s.StopID)
		}
		f.stops[s.StopID] = s
	}
	for _, t := range tables.Trips {
		if _, dup := f.trips[t.TripID]; dup {
			return nil, fmt.Errorf("%s: duplicate trip_id %q", TripsFile, t.TripID)
		}
		f.trips[t.TripID] = t
	}
	return f, nil
}

func (f *Feed) Calendar() []ServicePattern         { return f.tables.Calendar }
func (f *Feed) CalendarDates() []CalendarException { return f.tables.CalendarDates }
func (f *Feed) Routes() []Route                    { return f.tables.Routes }
func (f *Feed) Trips() []Trip                      { return f.tables.Trips }
func (f *Feed) StopTimes() []StopTime              { return f.tables.StopTimes }
func (f *Feed) Stops() []Stop                      { return f.tables.Stops }
func (f *Feed) Tables() *Tables                    { return f.tables }

func (f *Feed) Route(id string) (Route, bool) {
	r, ok := f.routes[id]
	return r, ok
}

func (f *Feed) Stop(id string) (Stop, bool) {
	s, ok := f.stops[id]
	return s, ok
}

func (f *Feed) Trip(id string) (Trip, bool) {
	t, ok := f.trips[id]
	return t, ok
}

// ServiceRange returns the earliest and latest dates any service pattern or
// exception refers to. ok is false for a feed without calendar data.
func (f *Feed) ServiceRange() (first, last Date, ok bool) {
	var dates []Date
	for _, s := range f.tables.Calendar {
		dates = append(dates, s.StartDate, s.EndDate)
	}
	for _, e := range f.tables.CalendarDates {
		dates = append(dates, e.Date)
	}
	if len(dates) == 0 {
		return 0, 0, false
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })
	return dates[0], dates[len(dates)-1], true
}
