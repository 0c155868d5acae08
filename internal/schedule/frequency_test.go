package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sudface/frequency/internal/gtfs"
)

var (
	amPeak = Window{Key: "am", Start: 420, End: 510, Mode: ModeAverage}
	amRate = Window{Key: "amBph", Start: 420, End: 510, Mode: ModeRate, Hours: 1.5}
)

func TestGaps(t *testing.T) {
	assert.Equal(t, []int{5, 0, 20}, Gaps([]int{420, 425, 425, 445}))
	assert.Equal(t, []int{}, Gaps([]int{420}))
	assert.Equal(t, []int{}, Gaps(nil))
}

func TestComputeWindowAverage(t *testing.T) {
	t.Run("floor of the mean gap", func(t *testing.T) {
		stat := ComputeWindow([]int{425, 430, 450}, amPeak)
		assert.Equal(t, 12, stat.Headway)
		assert.Equal(t, 3, stat.Visits)
		assert.Equal(t, 2, stat.Gaps)
		assert.Equal(t, 12, stat.Value())
	})

	t.Run("bounds are exclusive", func(t *testing.T) {
		stat := ComputeWindow([]int{420, 425, 430, 450, 510}, amPeak)
		assert.Equal(t, 3, stat.Visits)
		assert.Equal(t, 12, stat.Headway)
	})

	t.Run("four visits strictly inside", func(t *testing.T) {
		w := Window{Key: "am", Start: 415, End: 510, Mode: ModeAverage}
		stat := ComputeWindow([]int{420, 425, 430, 450}, w)
		assert.Equal(t, 10, stat.Headway)
		assert.Equal(t, 3, stat.Gaps)
	})

	t.Run("no visit gives the sentinel", func(t *testing.T) {
		assert.Equal(t, SentinelHeadway, ComputeWindow(nil, amPeak).Headway)
		assert.Equal(t, SentinelHeadway, ComputeWindow([]int{300, 600}, amPeak).Headway)
	})

	t.Run("single visit gives the sentinel", func(t *testing.T) {
		stat := ComputeWindow([]int{450}, amPeak)
		assert.Equal(t, 1440, stat.Headway)
		assert.Equal(t, 1, stat.Visits)
	})

	t.Run("only zero gaps gives the sentinel", func(t *testing.T) {
		stat := ComputeWindow([]int{450, 450, 450}, amPeak)
		assert.Equal(t, SentinelHeadway, stat.Headway)
		assert.Equal(t, 3, stat.Visits)
		assert.Zero(t, stat.Gaps)
	})

	t.Run("duplicate visit does not change the average", func(t *testing.T) {
		base := ComputeWindow([]int{425, 440, 460}, amPeak)
		dup := ComputeWindow([]int{425, 440, 440, 460}, amPeak)
		assert.Equal(t, base.Headway, dup.Headway)
		assert.Equal(t, 17, dup.Headway)
	})
}

func TestComputeWindowRate(t *testing.T) {
	t.Run("gaps per hour", func(t *testing.T) {
		// 4 gaps over 1.5h
		stat := ComputeWindow([]int{425, 440, 455, 470, 485}, amRate)
		assert.Equal(t, 2.7, stat.Rate)
		assert.Equal(t, 2.7, stat.Value())
	})

	t.Run("single visit gives zero", func(t *testing.T) {
		stat := ComputeWindow([]int{450}, amRate)
		assert.Equal(t, 0.0, stat.Rate)
	})

	t.Run("empty window gives zero", func(t *testing.T) {
		assert.Equal(t, 0.0, ComputeWindow(nil, amRate).Rate)
	})

	t.Run("duplicate visit does not change the rate", func(t *testing.T) {
		base := ComputeWindow([]int{425, 440, 460}, amRate)
		dup := ComputeWindow([]int{425, 440, 440, 460}, amRate)
		assert.Equal(t, base.Rate, dup.Rate)
		assert.Equal(t, 1.3, dup.Rate)
	})

	t.Run("divisor defaults to the window length", func(t *testing.T) {
		w := Window{Key: "w", Start: 0, End: 120, Mode: ModeRate}
		assert.Equal(t, 2.0, w.Divisor())
		assert.Equal(t, 1.0, ComputeWindow([]int{10, 20, 30}, w).Rate)
	})

	t.Run("divisor overrides the window length", func(t *testing.T) {
		day := DefaultProfiles()[WeekdayProfile].Windows[2]
		require.Equal(t, "dayBph", day.Key)
		assert.Equal(t, 13.0, day.Divisor())
		// 2 gaps / 13h = 0.1538
		assert.Equal(t, 0.2, ComputeWindow([]int{430, 440, 460}, day).Rate)
	})
}

func TestRoundTenths(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.14, 0.1},
		{0.16, 0.2},
		{0.25, 0.2},
		{0.75, 0.8},
		{2.5 / 10, 0.2},
		{1.0 / 3, 0.3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, roundTenths(tt.in), "roundTenths(%v)", tt.in)
	}
}

func TestComputeFrequencies(t *testing.T) {
	visit := func(trip string, minute int) Visit {
		return Visit{TripID: trip, Arrival: gtfs.ClockTime(minute * 60)}
	}
	visits := StopVisits{
		"S2": {visit("a", 445)},
		"S1": {visit("a", 430), visit("b", 440), visit("c", 440), visit("d", 460)},
	}

	records := ComputeFrequencies(visits, DefaultProfiles()[WeekdayProfile])
	require.Len(t, records, 2)

	s1 := records[0]
	assert.Equal(t, "S1", s1.StopID)
	require.Len(t, s1.Stats, 4)
	assert.Equal(t, "am", s1.Stats[0].Key)
	assert.Equal(t, 15, s1.Stats[0].Headway)
	assert.Equal(t, "pm", s1.Stats[1].Key)
	assert.Equal(t, SentinelHeadway, s1.Stats[1].Headway)
	assert.Equal(t, "dayBph", s1.Stats[2].Key)
	assert.Equal(t, 0.2, s1.Stats[2].Rate)
	assert.Equal(t, "interB", s1.Stats[3].Key)
	assert.Equal(t, 0.0, s1.Stats[3].Rate)

	s2 := records[1]
	assert.Equal(t, "S2", s2.StopID)
	assert.Equal(t, SentinelHeadway, s2.Stats[0].Headway)
	assert.Equal(t, 0.0, s2.Stats[2].Rate)
}

func TestComputeStopSortsUnorderedInput(t *testing.T) {
	visits := []Visit{{TripID: "b", Arrival: 460 * 60}, {TripID: "a", Arrival: 430 * 60}}
	rec := ComputeStop("S", visits, Profile{Name: "p", Windows: []Window{amPeak}})
	assert.Equal(t, 30, rec.Stats[0].Headway)
	assert.Equal(t, "b", visits[0].TripID, "input is not reordered")
}
