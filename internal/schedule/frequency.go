package schedule

import (
	"math"
	"sort"
)

// SentinelHeadway is the average headway reported when a window has no gap
// to average: a full day, meaning no effective service.
const SentinelHeadway = 24 * 60

// Stat is the statistic of one window at one stop.
type Stat struct {
	Key  string
	Mode Mode
	// Headway is set in average mode, Rate in rate mode.
	Headway int
	Rate    float64
	// Visits is the number of visits inside the window, Gaps the number of
	// non-zero gaps between them.
	Visits int
	Gaps   int
}

// Value returns the reported number: the headway in average mode, the rate
// otherwise.
func (s Stat) Value() any {
	if s.Mode == ModeAverage {
		return s.Headway
	}
	return s.Rate
}

// Record holds the window statistics of one stop, in profile order.
type Record struct {
	StopID string
	Stats  []Stat
}

// Minutes converts visits to minutes since the start of the service day.
func Minutes(visits []Visit) []int {
	out := make([]int, len(visits))
	for i, v := range visits {
		out[i] = v.Minutes()
	}
	return out
}

// Gaps returns the differences between consecutive values. Zero gaps are
// kept.
func Gaps(minutes []int) []int {
	if len(minutes) < 2 {
		return []int{}
	}
	out := make([]int, len(minutes)-1)
	for i := 1; i < len(minutes); i++ {
		out[i-1] = minutes[i] - minutes[i-1]
	}
	return out
}

// windowGaps keeps the ascending minutes strictly inside w and returns their
// count with the non-zero gaps between them.
func windowGaps(minutes []int, w Window) (inside int, gaps []int) {
	var prev int
	for _, m := range minutes {
		if !w.Contains(m) {
			continue
		}
		if inside > 0 {
			if d := m - prev; d != 0 {
				gaps = append(gaps, d)
			}
		}
		prev = m
		inside++
	}
	return inside, gaps
}

// ComputeWindow computes the statistic of w over ascending minutes.
//
// Average mode reports the floor of the mean gap, or SentinelHeadway when
// there is no gap. Rate mode reports the gap count per hour of the window,
// rounded to one decimal with ties to even; no gap gives 0.
func ComputeWindow(minutes []int, w Window) Stat {
	inside, gaps := windowGaps(minutes, w)
	stat := Stat{Key: w.Key, Mode: w.Mode, Visits: inside, Gaps: len(gaps)}

	switch w.Mode {
	case ModeAverage:
		if len(gaps) == 0 {
			stat.Headway = SentinelHeadway
			break
		}
		sum := 0
		for _, g := range gaps {
			sum += g
		}
		stat.Headway = sum / len(gaps)
	case ModeRate:
		stat.Rate = roundTenths(float64(len(gaps)) / w.Divisor())
	}
	return stat
}

func roundTenths(x float64) float64 {
	return math.RoundToEven(x*10) / 10
}

// ComputeStop computes every window of profile for one stop.
func ComputeStop(stopID string, visits []Visit, profile Profile) Record {
	minutes := Minutes(visits)
	if !sort.IntsAreSorted(minutes) {
		sort.Ints(minutes)
	}

	rec := Record{StopID: stopID, Stats: make([]Stat, 0, len(profile.Windows))}
	for _, w := range profile.Windows {
		rec.Stats = append(rec.Stats, ComputeWindow(minutes, w))
	}
	return rec
}

// ComputeFrequencies computes profile for every stop with visits. Records
// are ordered by stop id.
func ComputeFrequencies(visits StopVisits, profile Profile) []Record {
	records := make([]Record, 0, len(visits))
	for _, stopID := range visits.StopIDs() {
		records = append(records, ComputeStop(stopID, visits[stopID], profile))
	}
	return records
}
