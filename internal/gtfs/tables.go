package gtfs

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a service calendar date stored as YYYYMMDD, the way GTFS writes it.
type Date int

// ParseDate parses a YYYYMMDD date string.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse("20060102", s)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q, use YYYYMMDD", s)
	}
	return DateOf(t), nil
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date(y*10000 + int(m)*100 + d)
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	v := int(d)
	return time.Date(v/10000, time.Month(v/100%100), v%100, 0, 0, 0, 0, time.UTC)
}

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

func (d Date) String() string {
	return fmt.Sprintf("%08d", int(d))
}

func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// ClockTime is a time of the service day in seconds. It is not bounded by
// 24h: trips running past midnight keep counting (25:10:00 and so on).
type ClockTime int

// ParseClockTime parses H:MM:SS or HH:MM:SS. Hours above 23 are kept as is.
func ParseClockTime(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid time %q, use HH:MM:SS", s)
	}
	var fields [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("invalid time %q, use HH:MM:SS", s)
		}
		fields[i] = v
	}
	if fields[1] > 59 || fields[2] > 59 {
		return 0, fmt.Errorf("invalid time %q: minutes and seconds must be below 60", s)
	}
	return ClockTime(fields[0]*3600 + fields[1]*60 + fields[2]), nil
}

// Minutes returns hour*60 + minute; seconds are dropped.
func (c ClockTime) Minutes() int {
	return int(c) / 60
}

func (c ClockTime) String() string {
	v := int(c)
	return fmt.Sprintf("%02d:%02d:%02d", v/3600, v/60%60, v%60)
}

func (c *ClockTime) UnmarshalText(text []byte) error {
	parsed, err := ParseClockTime(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c ClockTime) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ExceptionKind is the calendar_dates exception_type.
type ExceptionKind int

const (
	ExceptionAdded   ExceptionKind = 1
	ExceptionRemoved ExceptionKind = 2
)

func (k ExceptionKind) String() string {
	switch k {
	case ExceptionAdded:
		return "added"
	case ExceptionRemoved:
		return "removed"
	default:
		return "unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// ServicePattern corresponds to a single row in calendar.txt.
type ServicePattern struct {
	ServiceID string `csv:"service_id" validate:"required"`
	Monday    bool   `csv:"monday"`
	Tuesday   bool   `csv:"tuesday"`
	Wednesday bool   `csv:"wednesday"`
	Thursday  bool   `csv:"thursday"`
	Friday    bool   `csv:"friday"`
	Saturday  bool   `csv:"saturday"`
	Sunday    bool   `csv:"sunday"`
	StartDate Date   `csv:"start_date" validate:"required"`
	EndDate   Date   `csv:"end_date" validate:"required,gtefield=StartDate"`
}

// RunsOn reports whether the weekly recurrence flag for day is set.
func (s ServicePattern) RunsOn(day time.Weekday) bool {
	switch day {
	case time.Monday:
		return s.Monday
	case time.Tuesday:
		return s.Tuesday
	case time.Wednesday:
		return s.Wednesday
	case time.Thursday:
		return s.Thursday
	case time.Friday:
		return s.Friday
	case time.Saturday:
		return s.Saturday
	case time.Sunday:
		return s.Sunday
	}
	return false
}

// Covers reports whether date lies in [StartDate, EndDate].
func (s ServicePattern) Covers(date Date) bool {
	return s.StartDate <= date && date <= s.EndDate
}

// CalendarException corresponds to a single row in calendar_dates.txt.
type CalendarException struct {
	ServiceID string        `csv:"service_id" validate:"required"`
	Date      Date          `csv:"date" validate:"required"`
	Kind      ExceptionKind `csv:"exception_type" validate:"oneof=1 2"`
}

// Route corresponds to a single row in routes.txt.
type Route struct {
	RouteID   string `csv:"route_id" validate:"required"`
	Type      int    `csv:"route_type" validate:"gte=0"`
	ShortName string `csv:"route_short_name,omitempty"`
	LongName  string `csv:"route_long_name,omitempty"`
}

// Trip corresponds to a single row in trips.txt.
type Trip struct {
	TripID      string `csv:"trip_id" validate:"required"`
	RouteID     string `csv:"route_id" validate:"required"`
	ServiceID   string `csv:"service_id" validate:"required"`
	DirectionID int    `csv:"direction_id,omitempty" validate:"oneof=0 1"`
}

// StopTime corresponds to a single row in stop_times.txt. ArrivalTime is nil
// for rows that leave arrival_time empty (untimed intermediate stops).
type StopTime struct {
	TripID      string     `csv:"trip_id" validate:"required"`
	StopID      string     `csv:"stop_id" validate:"required"`
	ArrivalTime *ClockTime `csv:"arrival_time,omitempty"`
}

// Stop corresponds to a single row in stops.txt.
type Stop struct {
	StopID    string   `csv:"stop_id" validate:"required"`
	Name      string   `csv:"stop_name,omitempty"`
	Latitude  *float64 `csv:"stop_lat,omitempty" validate:"omitempty,latitude"`
	Longitude *float64 `csv:"stop_lon,omitempty" validate:"omitempty,longitude"`
}

// HasLocation reports whether both coordinates are present.
func (s Stop) HasLocation() bool {
	return s.Latitude != nil && s.Longitude != nil
}

// Tables holds the raw rows of the six tables the analysis reads.
type Tables struct {
	Calendar      []ServicePattern
	CalendarDates []CalendarException
	Routes        []Route
	Trips         []Trip
	StopTimes     []StopTime
	Stops         []Stop
}

// Counts returns the row count per table file name.
func (t *Tables) Counts() map[string]int {
	return map[string]int{
		CalendarFile:      len(t.Calendar),
		CalendarDatesFile: len(t.CalendarDates),
		RoutesFile:        len(t.Routes),
		TripsFile:         len(t.Trips),
		StopTimesFile:     len(t.StopTimes),
		StopsFile:         len(t.Stops),
	}
}
