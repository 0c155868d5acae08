package models

import (
	"github.com/sudface/frequency/internal/schedule"
)

// ServiceDay describes the calendar resolution of one date.
type ServiceDay struct {
	Date      string   `json:"date"`
	Weekday   string   `json:"weekday"`
	Services  []string `json:"services"`
	Base      []string `json:"base"`
	Added     []string `json:"added"`
	Removed   []string `json:"removed"`
	Conflicts []string `json:"conflicts"`
}

func NewServiceDay(res *schedule.Resolution) ServiceDay {
	return ServiceDay{
		Date:      res.Date.String(),
		Weekday:   res.Weekday.String(),
		Services:  res.Services.IDs(),
		Base:      nonNil(res.Base),
		Added:     nonNil(res.Added),
		Removed:   nonNil(res.Removed),
		Conflicts: nonNil(res.Conflicts),
	}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
