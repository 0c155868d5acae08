package gtfs

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jamespfennell/gtfs"
)

// Summary describes a zipped feed as parsed by the full static parser.
type Summary struct {
	Source   string `json:"source"`
	Agencies int    `json:"agencies"`
	Routes   int    `json:"routes"`
	Stops    int    `json:"stops"`
	Services int    `json:"services"`
	Trips    int    `json:"trips"`
	Warnings int    `json:"warnings"`

	// FirstServiceDate and LastServiceDate bound the dates any service refers to.
	FirstServiceDate Date `json:"firstServiceDate,omitempty"`
	LastServiceDate  Date `json:"lastServiceDate,omitempty"`
}

// Inspect parses a zipped feed (local file or URL) with the complete static
// parser and summarises it. It is a sanity check run before analysis; the
// analysis itself reads the raw tables through LoadTables.
func Inspect(ctx context.Context, source string, client *http.Client) (*Summary, error) {
	b, err := rawGtfsData(ctx, source, client)
	if err != nil {
		return nil, err
	}

	staticData, err := gtfs.ParseStatic(b, gtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("error parsing GTFS data: %w", err)
	}

	return summarize(source, staticData), nil
}

func summarize(source string, staticData *gtfs.Static) *Summary {
	s := &Summary{
		Source:   source,
		Agencies: len(staticData.Agencies),
		Routes:   len(staticData.Routes),
		Stops:    len(staticData.Stops),
		Services: len(staticData.Services),
		Trips:    len(staticData.Trips),
		Warnings: len(staticData.Warnings),
	}
	for _, svc := range staticData.Services {
		start, end := DateOf(svc.StartDate), DateOf(svc.EndDate)
		if s.FirstServiceDate == 0 || start < s.FirstServiceDate {
			s.FirstServiceDate = start
		}
		if end > s.LastServiceDate {
			s.LastServiceDate = end
		}
	}
	return s
}
