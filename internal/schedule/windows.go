package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode selects the statistic a window reports.
type Mode string

const (
	// ModeAverage reports the mean headway in whole minutes.
	ModeAverage Mode = "average"
	// ModeRate reports visits per hour with one decimal.
	ModeRate Mode = "rate"
)

// Window is a named time-of-day interval. Bounds are minutes since the
// start of the service day and both are exclusive.
type Window struct {
	Key   string  `json:"key"`
	Start int     `json:"start"`
	End   int     `json:"end"`
	Mode  Mode    `json:"mode"`
	Hours float64 `json:"hours,omitempty"`
}

// Contains reports whether minute lies strictly inside the window.
func (w Window) Contains(minute int) bool {
	return w.Start < minute && minute < w.End
}

// Divisor is the number of hours a rate is spread over: Hours when set,
// otherwise the window length.
func (w Window) Divisor() float64 {
	if w.Hours > 0 {
		return w.Hours
	}
	return float64(w.End-w.Start) / 60
}

func (w Window) Validate() error {
	if w.Key == "" {
		return fmt.Errorf("window without key")
	}
	if w.End <= w.Start {
		return fmt.Errorf("window %s: end %s is not after start %s", w.Key, FormatMinuteOfDay(w.End), FormatMinuteOfDay(w.Start))
	}
	switch w.Mode {
	case ModeAverage, ModeRate:
	default:
		return fmt.Errorf("window %s: unknown mode %q", w.Key, w.Mode)
	}
	if w.Hours < 0 {
		return fmt.Errorf("window %s: negative hours", w.Key)
	}
	return nil
}

// Profile is an ordered list of windows computed together, such as the
// weekday peaks.
type Profile struct {
	Name    string   `json:"name"`
	Windows []Window `json:"windows"`
}

func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile without name")
	}
	if len(p.Windows) == 0 {
		return fmt.Errorf("profile %s has no windows", p.Name)
	}
	seen := make(map[string]bool, len(p.Windows))
	for _, w := range p.Windows {
		if err := w.Validate(); err != nil {
			return fmt.Errorf("profile %s: %w", p.Name, err)
		}
		if w.Key == "id" || w.Key == "name" {
			return fmt.Errorf("profile %s: window key %q is reserved", p.Name, w.Key)
		}
		if seen[w.Key] {
			return fmt.Errorf("profile %s: duplicate window %s", p.Name, w.Key)
		}
		seen[w.Key] = true
	}
	return nil
}

const (
	WeekdayProfile = "weekday"
	WeekendProfile = "weekend"
)

// DefaultProfiles returns the weekday and weekend profiles.
func DefaultProfiles() map[string]Profile {
	return map[string]Profile{
		WeekdayProfile: {
			Name: WeekdayProfile,
			Windows: []Window{
				{Key: "am", Start: 7 * 60, End: 8*60 + 30, Mode: ModeAverage},
				{Key: "pm", Start: 16*60 + 30, End: 18*60 + 30, Mode: ModeAverage},
				{Key: "dayBph", Start: 7 * 60, End: 20 * 60, Mode: ModeRate, Hours: 13},
				{Key: "interB", Start: 9*60 + 30, End: 14*60 + 30, Mode: ModeRate, Hours: 5},
			},
		},
		WeekendProfile: {
			Name: WeekendProfile,
			Windows: []Window{
				{Key: "satBph", Start: 9 * 60, End: 19 * 60, Mode: ModeRate, Hours: 10},
			},
		},
	}
}

// ParseMinuteOfDay parses HH:MM into minutes. Hours past 23 are allowed for
// windows reaching beyond midnight.
func ParseMinuteOfDay(s string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid time of day %q, use HH:MM", s)
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 {
		return 0, fmt.Errorf("invalid time of day %q, use HH:MM", s)
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time of day %q, use HH:MM", s)
	}
	return hours*60 + minutes, nil
}

func FormatMinuteOfDay(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
