package models

import (
	"encoding/json"

	"github.com/sudface/frequency/internal/gtfs"
	"github.com/sudface/frequency/internal/schedule"
)

// DetailDump is the raw per-stop timeline of one date with lookup tables for
// the ids it mentions. Entries are written as JSON arrays to keep the file
// compact.
type DetailDump struct {
	Routes map[string]RouteLabel   `json:"routes"`
	Stops  map[string]StopLabel    `json:"stops"`
	Trips  map[string]TripLabel    `json:"trips"`
	Times  map[string]StopTimeline `json:"times"`
}

// RouteLabel is written as [short name, long name].
type RouteLabel struct {
	ShortName string
	LongName  string
}

func (r RouteLabel) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{r.ShortName, r.LongName})
}

// StopLabel is written as [name, [lat, lon]], or [name, null] for a stop
// without coordinates.
type StopLabel struct {
	Name      string
	Latitude  *float64
	Longitude *float64
}

func (s StopLabel) MarshalJSON() ([]byte, error) {
	var position *[2]float64
	if s.Latitude != nil && s.Longitude != nil {
		position = &[2]float64{*s.Latitude, *s.Longitude}
	}
	return json.Marshal([2]interface{}{s.Name, position})
}

// TripLabel is written as [route id, direction id].
type TripLabel struct {
	RouteID     string
	DirectionID int
}

func (t TripLabel) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{t.RouteID, t.DirectionID})
}

// StopTimeline is written as [minutes, trip ids, gaps]. Minutes and trip ids
// are aligned; gaps are the raw consecutive differences, zeros included.
type StopTimeline struct {
	Minutes []int
	TripIDs []string
	Gaps    []int
}

func (s StopTimeline) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]interface{}{s.Minutes, s.TripIDs, s.Gaps})
}

// NewDetailDump builds the dump of plan. Routes are the eligible routes, stops
// every stop of the feed and trips the retained trips.
func NewDetailDump(plan *schedule.DayPlan, feed *gtfs.Feed) DetailDump {
	dump := DetailDump{
		Routes: make(map[string]RouteLabel, len(plan.Routes)),
		Stops:  make(map[string]StopLabel, len(feed.Stops())),
		Trips:  make(map[string]TripLabel, len(plan.Trips)),
		Times:  make(map[string]StopTimeline, len(plan.Visits)),
	}

	for id := range plan.Routes {
		if r, ok := feed.Route(id); ok {
			dump.Routes[id] = RouteLabel{ShortName: r.ShortName, LongName: r.LongName}
		}
	}
	for _, s := range feed.Stops() {
		dump.Stops[s.StopID] = StopLabel{Name: s.Name, Latitude: s.Latitude, Longitude: s.Longitude}
	}
	for id, info := range plan.Trips {
		dump.Trips[id] = TripLabel{RouteID: info.RouteID, DirectionID: info.DirectionID}
	}
	for stopID, visits := range plan.Visits {
		minutes := schedule.Minutes(visits)
		tripIDs := make([]string, len(visits))
		for i, v := range visits {
			tripIDs[i] = v.TripID
		}
		dump.Times[stopID] = StopTimeline{Minutes: minutes, TripIDs: tripIDs, Gaps: schedule.Gaps(minutes)}
	}
	return dump
}
