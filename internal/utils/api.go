package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sudface/frequency/internal/gtfs"
)

// ParseDateParameter parses a service date parameter. It accepts YYYYMMDD,
// YYYY-MM-DD, an epoch timestamp in milliseconds, and "today" or an empty
// value for the current date in loc.
// It returns the date, any field errors and whether parsing succeeded.
func ParseDateParameter(key, value string, loc *time.Location) (gtfs.Date, map[string][]string, bool) {
	if loc == nil {
		loc = time.Local
	}
	value = strings.TrimSpace(value)

	invalid := func() (gtfs.Date, map[string][]string, bool) {
		return 0, map[string][]string{
			key: {fmt.Sprintf("Invalid field value for field %q.", key)},
		}, false
	}

	switch {
	case value == "" || strings.EqualFold(value, "today"):
		return gtfs.DateOf(time.Now().In(loc)), nil, true
	case strings.Contains(value, "-"):
		t, err := time.Parse("2006-01-02", value)
		if err != nil {
			return invalid()
		}
		return gtfs.DateOf(t), nil, true
	case len(value) == 8:
		if ValidateDate(value) != nil {
			return invalid()
		}
		d, err := gtfs.ParseDate(value)
		if err != nil {
			return invalid()
		}
		return d, nil, true
	}

	epochMillis, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return invalid()
	}
	return gtfs.DateOf(time.UnixMilli(epochMillis).In(loc)), nil, true
}
