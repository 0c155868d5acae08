package models

import (
	"sort"

	"github.com/sudface/frequency/internal/schedule"
)

// WindowSummary is a window with its bounds written as HH:MM.
type WindowSummary struct {
	Key   string        `json:"key"`
	Start string        `json:"start"`
	End   string        `json:"end"`
	Mode  schedule.Mode `json:"mode"`
	Hours float64       `json:"hours"`
}

type ProfileSummary struct {
	Name    string          `json:"name"`
	Windows []WindowSummary `json:"windows"`
}

// NewProfileList returns the profiles sorted by name. Hours is the divisor
// a rate window actually uses.
func NewProfileList(profiles map[string]schedule.Profile) []ProfileSummary {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	list := make([]ProfileSummary, 0, len(names))
	for _, name := range names {
		p := profiles[name]
		windows := make([]WindowSummary, 0, len(p.Windows))
		for _, w := range p.Windows {
			ws := WindowSummary{
				Key:   w.Key,
				Start: schedule.FormatMinuteOfDay(w.Start),
				End:   schedule.FormatMinuteOfDay(w.End),
				Mode:  w.Mode,
			}
			if w.Mode == schedule.ModeRate {
				ws.Hours = w.Divisor()
			}
			windows = append(windows, ws)
		}
		list = append(list, ProfileSummary{Name: p.Name, Windows: windows})
	}
	return list
}
