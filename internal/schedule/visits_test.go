package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sudface/frequency/internal/gtfs"
)

func at(t *testing.T, s string) *gtfs.ClockTime {
	t.Helper()
	c, err := gtfs.ParseClockTime(s)
	require.NoError(t, err)
	return &c
}

func TestAggregateVisits(t *testing.T) {
	trips := map[string]TripInfo{
		"a": {RouteID: "R1"},
		"b": {RouteID: "R1"},
		"c": {RouteID: "R1"},
	}
	stopTimes := []gtfs.StopTime{
		{TripID: "a", StopID: "S1", ArrivalTime: at(t, "08:00:00")},
		{TripID: "x", StopID: "S1", ArrivalTime: at(t, "06:00:00")},
		{TripID: "b", StopID: "S1", ArrivalTime: at(t, "07:30:00")},
		{TripID: "c", StopID: "S1", ArrivalTime: at(t, "07:30:00")},
		{TripID: "a", StopID: "S2", ArrivalTime: at(t, "25:10:00")},
		{TripID: "b", StopID: "S2", ArrivalTime: at(t, "09:00:00")},
		{TripID: "c", StopID: "S2"},
		{TripID: "x", StopID: "S3", ArrivalTime: at(t, "07:00:00")},
	}

	visits, skipped := AggregateVisits(stopTimes, trips)

	assert.Equal(t, 1, skipped)
	assert.Equal(t, []string{"S1", "S2"}, visits.StopIDs(), "stops only visited by dropped trips are absent")

	s1 := visits["S1"]
	require.Len(t, s1, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{s1[0].TripID, s1[1].TripID, s1[2].TripID})
	assert.Equal(t, 450, s1[0].Minutes())

	s2 := visits["S2"]
	require.Len(t, s2, 2)
	assert.Equal(t, "b", s2[0].TripID)
	assert.Equal(t, 1510, s2[1].Minutes(), "times past midnight stay past midnight")
}

func TestAggregateVisitsStableOnTies(t *testing.T) {
	trips := map[string]TripInfo{"t1": {}, "t2": {}, "t3": {}, "t4": {}}
	build := func(order ...string) []gtfs.StopTime {
		rows := make([]gtfs.StopTime, 0, len(order))
		for _, id := range order {
			rows = append(rows, gtfs.StopTime{TripID: id, StopID: "S", ArrivalTime: at(t, "07:20:00")})
		}
		return rows
	}

	for _, order := range [][]string{{"t1", "t2", "t3", "t4"}, {"t4", "t2", "t3", "t1"}} {
		visits, _ := AggregateVisits(build(order...), trips)
		got := make([]string, 0, 4)
		for _, v := range visits["S"] {
			got = append(got, v.TripID)
		}
		assert.Equal(t, order, got)
	}
}

func TestAggregateVisitsEmpty(t *testing.T) {
	visits, skipped := AggregateVisits(nil, nil)
	assert.Empty(t, visits)
	assert.Zero(t, skipped)
	assert.Equal(t, []string{}, visits.StopIDs())
}
