package schedule

import "github.com/sudface/frequency/internal/gtfs"

// BusRouteType is the extended GTFS route_type of a bus service.
const BusRouteType = 700

// TripInfo is what the later stages need to know about a retained trip.
type TripInfo struct {
	RouteID     string
	DirectionID int
}

// RouteSet is a set of route ids.
type RouteSet map[string]struct{}

func (s RouteSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// EligibleRoutes returns the routes whose route_type is one of types. With no
// types given, only BusRouteType routes are eligible.
func EligibleRoutes(routes []gtfs.Route, types []int) RouteSet {
	if len(types) == 0 {
		types = []int{BusRouteType}
	}
	wanted := make(map[int]bool, len(types))
	for _, t := range types {
		wanted[t] = true
	}

	set := make(RouteSet)
	for _, r := range routes {
		if wanted[r.Type] {
			set[r.RouteID] = struct{}{}
		}
	}
	return set
}

// FilterTrips keeps the trips that run on an active service along an
// eligible route, keyed by trip id.
func FilterTrips(trips []gtfs.Trip, services ServiceSet, routes RouteSet) map[string]TripInfo {
	kept := make(map[string]TripInfo)
	for _, t := range trips {
		if services.Contains(t.ServiceID) && routes.Contains(t.RouteID) {
			kept[t.TripID] = TripInfo{RouteID: t.RouteID, DirectionID: t.DirectionID}
		}
	}
	return kept
}
