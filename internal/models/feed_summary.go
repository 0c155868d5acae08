package models

import (
	"time"

	"github.com/sudface/frequency/internal/gtfs"
)

// FeedSummary describes the loaded feed.
type FeedSummary struct {
	Tables           map[string]int `json:"tables"`
	FirstServiceDate string         `json:"firstServiceDate,omitempty"`
	LastServiceDate  string         `json:"lastServiceDate,omitempty"`
	Bounds           *gtfs.Bounds   `json:"bounds,omitempty"`
	LastUpdated      int64          `json:"lastUpdated"`
}

func NewFeedSummary(feed *gtfs.Feed, lastUpdated time.Time) FeedSummary {
	summary := FeedSummary{
		Tables:      feed.Tables().Counts(),
		LastUpdated: lastUpdated.UnixNano() / int64(time.Millisecond),
	}
	if first, last, ok := feed.ServiceRange(); ok {
		summary.FirstServiceDate = first.String()
		summary.LastServiceDate = last.String()
	}
	if b, ok := feed.Bounds(); ok {
		summary.Bounds = &b
	}
	return summary
}
