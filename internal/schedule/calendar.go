package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sudface/frequency/internal/gtfs"
)

// ErrNoActiveServices means no service pattern runs on the requested date.
// Nothing can be computed for such a date, so callers abort the run.
var ErrNoActiveServices = errors.New("no matching services for this date")

// ServiceSet is a set of service ids.
type ServiceSet map[string]struct{}

func (s ServiceSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the members in ascending order.
func (s ServiceSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Resolution is the outcome of resolving the calendar for one date.
type Resolution struct {
	Date     gtfs.Date
	Weekday  time.Weekday
	Services ServiceSet

	// Base holds the patterns selected by weekday and validity alone.
	Base []string
	// Added and Removed list the exception ids dated on Date.
	Added   []string
	Removed []string
	// Conflicts lists ids that are both added and removed on Date. They end
	// up removed.
	Conflicts []string
}

// ResolveServices returns the service patterns active on date. A pattern is
// active when it recurs on the date's weekday within its validity range, or
// when an ADDED exception names the date, unless a REMOVED exception names
// the date. REMOVED always wins, whatever the row order.
//
// The returned Resolution is never nil. When the set is empty the error
// wraps ErrNoActiveServices.
func ResolveServices(date gtfs.Date, patterns []gtfs.ServicePattern, exceptions []gtfs.CalendarException) (*Resolution, error) {
	weekday := date.Weekday()
	res := &Resolution{
		Date:     date,
		Weekday:  weekday,
		Services: make(ServiceSet),
	}

	for _, p := range patterns {
		if p.Covers(date) && p.RunsOn(weekday) {
			res.Services[p.ServiceID] = struct{}{}
		}
	}
	res.Base = res.Services.IDs()

	added := make(ServiceSet)
	removed := make(ServiceSet)
	for _, e := range exceptions {
		if e.Date != date {
			continue
		}
		switch e.Kind {
		case gtfs.ExceptionAdded:
			added[e.ServiceID] = struct{}{}
		case gtfs.ExceptionRemoved:
			removed[e.ServiceID] = struct{}{}
		}
	}

	for id := range added {
		res.Services[id] = struct{}{}
	}
	for id := range removed {
		delete(res.Services, id)
		if added.Contains(id) {
			res.Conflicts = append(res.Conflicts, id)
		}
	}
	sort.Strings(res.Conflicts)
	res.Added = added.IDs()
	res.Removed = removed.IDs()

	if len(res.Services) == 0 {
		return res, fmt.Errorf("%w: %s", ErrNoActiveServices, date)
	}
	return res, nil
}
