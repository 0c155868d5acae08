package schedule

import (
	"sort"

	"github.com/sudface/frequency/internal/gtfs"
)

// Visit is one retained trip calling at a stop.
type Visit struct {
	TripID  string
	Arrival gtfs.ClockTime
}

// Minutes is the arrival as minutes since the start of the service day.
func (v Visit) Minutes() int {
	return v.Arrival.Minutes()
}

// StopVisits maps a stop id to its visits in ascending arrival order.
type StopVisits map[string][]Visit

// StopIDs returns the stops with at least one visit, ascending.
func (sv StopVisits) StopIDs() []string {
	ids := make([]string, 0, len(sv))
	for id := range sv {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// AggregateVisits groups the stop_times rows of retained trips by stop and
// orders every group by arrival. The sort is stable, so visits sharing an
// arrival keep their row order. Rows without an arrival time cannot be
// placed on the timeline; they are dropped and counted in skipped.
func AggregateVisits(stopTimes []gtfs.StopTime, trips map[string]TripInfo) (visits StopVisits, skipped int) {
	visits = make(StopVisits)
	for _, st := range stopTimes {
		if _, ok := trips[st.TripID]; !ok {
			continue
		}
		if st.ArrivalTime == nil {
			skipped++
			continue
		}
		visits[st.StopID] = append(visits[st.StopID], Visit{TripID: st.TripID, Arrival: *st.ArrivalTime})
	}

	for _, group := range visits {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Arrival < group[j].Arrival
		})
	}
	return visits, skipped
}
