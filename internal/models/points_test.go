package models

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sudface/frequency/internal/gtfs"
	"github.com/sudface/frequency/internal/gtfs/gtfstest"
	"github.com/sudface/frequency/internal/schedule"
)

func samplePlan(t *testing.T, date string) (*schedule.DayPlan, *gtfs.Feed) {
	t.Helper()

	tables, err := gtfs.LoadTables(context.Background(), gtfstest.WriteDir(t, gtfstest.Sample()), nil)
	require.NoError(t, err)
	feed, err := gtfs.NewFeed(tables)
	require.NoError(t, err)

	d, err := gtfs.ParseDate(date)
	require.NoError(t, err)
	plan, err := (&schedule.Planner{Feed: feed}).Plan(context.Background(), d)
	require.NoError(t, err)
	return plan, feed
}

func TestNewStopPoints(t *testing.T) {
	plan, feed := samplePlan(t, gtfstest.Weekday)
	records := plan.Frequencies(schedule.DefaultProfiles()[schedule.WeekdayProfile])

	fc, missing := NewStopPoints(records, feed)

	assert.Equal(t, []string{"S3"}, missing, "stop without coordinates is skipped")
	require.Len(t, fc.Features, 2)

	s1 := fc.Features[0]
	assert.Equal(t, []float64{151.21, -33.86}, s1.Geometry.Point, "coordinates are lon, lat")
	assert.Equal(t, map[string]interface{}{
		"id":     "S1",
		"name":   "Harbour St",
		"am":     15,
		"pm":     1440,
		"dayBph": 0.2,
		"interB": 0.0,
	}, s1.Properties)

	assert.Equal(t, "S2", propertyID(fc.Features[1].Properties))
	assert.Equal(t, 1440, fc.Features[1].Properties["am"])

	b, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "geometry": {"type": "Point", "coordinates": [151.21, -33.86]},
			 "properties": {"id": "S1", "name": "Harbour St", "am": 15, "pm": 1440, "dayBph": 0.2, "interB": 0}},
			{"type": "Feature", "geometry": {"type": "Point", "coordinates": [151.22, -33.87]},
			 "properties": {"id": "S2", "name": "Hill Rd", "am": 1440, "pm": 1440, "dayBph": 0, "interB": 0}}
		]
	}`, string(b))
}

func propertyID(props map[string]interface{}) string {
	id, _ := props["id"].(string)
	return id
}

func TestNewStopPointsUnknownStop(t *testing.T) {
	_, feed := samplePlan(t, gtfstest.Weekday)
	records := []schedule.Record{{StopID: "ghost"}}

	fc, missing := NewStopPoints(records, feed)
	assert.Empty(t, fc.Features)
	assert.Equal(t, []string{"ghost"}, missing)

	b, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(b))
}

func TestNewStopPointsWeekend(t *testing.T) {
	plan, feed := samplePlan(t, gtfstest.Saturday)
	records := plan.Frequencies(schedule.DefaultProfiles()[schedule.WeekendProfile])

	fc, missing := NewStopPoints(records, feed)
	assert.Empty(t, missing)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, 0.1, fc.Features[0].Properties["satBph"])
}
