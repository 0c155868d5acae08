package gtfs

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jszwec/csvutil"
	"github.com/sudface/frequency/internal/logging"
)

const (
	CalendarFile      = "calendar.txt"
	CalendarDatesFile = "calendar_dates.txt"
	RoutesFile        = "routes.txt"
	TripsFile         = "trips.txt"
	StopTimesFile     = "stop_times.txt"
	StopsFile         = "stops.txt"
)

// ErrMissingTable is returned when a required feed file is absent.
var ErrMissingTable = errors.New("missing required GTFS table")

var requiredColumns = map[string][]string{
	CalendarFile:      {"service_id", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday", "start_date", "end_date"},
	CalendarDatesFile: {"service_id", "date", "exception_type"},
	RoutesFile:        {"route_id", "route_type"},
	TripsFile:         {"route_id", "service_id", "trip_id"},
	StopTimesFile:     {"trip_id", "stop_id", "arrival_time"},
	StopsFile:         {"stop_id"},
}

var validate = validator.New()

// LoadTables reads the six tables of a feed from a directory, a zip file or a
// zip URL. Every row is validated; the first invalid row aborts the load.
func LoadTables(ctx context.Context, source string, client *http.Client) (*Tables, error) {
	src, err := openSource(ctx, source, client)
	if err != nil {
		return nil, err
	}
	defer logging.SafeCloseWithLogging(src, logging.FromContext(ctx), "gtfs_source")

	return readTables(ctx, src)
}

func readTables(ctx context.Context, src tableSource) (*Tables, error) {
	t := &Tables{}
	var err error

	if t.Calendar, err = decodeTable[ServicePattern](src, CalendarFile, true); err != nil {
		return nil, err
	}
	if t.CalendarDates, err = decodeTable[CalendarException](src, CalendarDatesFile, true); err != nil {
		return nil, err
	}
	if t.Calendar == nil && t.CalendarDates == nil {
		return nil, fmt.Errorf("%w: one of %s or %s", ErrMissingTable, CalendarFile, CalendarDatesFile)
	}
	if t.Routes, err = decodeTable[Route](src, RoutesFile, false); err != nil {
		return nil, err
	}
	if t.Trips, err = decodeTable[Trip](src, TripsFile, false); err != nil {
		return nil, err
	}
	if t.Stops, err = decodeTable[Stop](src, StopsFile, false); err != nil {
		return nil, err
	}
	if t.StopTimes, err = decodeTable[StopTime](src, StopTimesFile, false); err != nil {
		return nil, err
	}

	attrs := []slog.Attr{slog.String("component", "gtfs_loader")}
	for name, n := range t.Counts() {
		attrs = append(attrs, slog.Int(strings.TrimSuffix(name, ".txt"), n))
	}
	logging.LogOperation(logging.FromContext(ctx), "gtfs_tables_loaded", attrs...)

	return t, nil
}

// decodeTable decodes one feed file into typed rows. A missing optional file
// yields a nil slice; a present but empty file yields an empty, non-nil one.
func decodeTable[T any](src tableSource, name string, optional bool) ([]T, error) {
	rc, err := src.open(name)
	if errors.Is(err, fs.ErrNotExist) {
		if optional {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrMissingTable, name)
	}
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", name, err)
	}
	defer rc.Close() // nolint:errcheck

	rows, err := decodeRows[T](rc, name)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func decodeRows[T any](r io.Reader, name string) ([]T, error) {
	br := bufio.NewReader(r)
	skipBOM(br)

	cr := csv.NewReader(br)
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	dec, err := csvutil.NewDecoder(cr)
	if errors.Is(err, io.EOF) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading %s header: %w", name, err)
	}
	if missing := missingColumns(dec.Header(), requiredColumns[name]); len(missing) > 0 {
		return nil, fmt.Errorf("%s: missing columns %s", name, strings.Join(missing, ", "))
	}

	rows := []T{}
	for line := 2; ; line++ {
		var row T
		err := dec.Decode(&row)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", name, line, err)
		}
		if err := validate.Struct(row); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", name, line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func skipBOM(br *bufio.Reader) {
	if b, err := br.Peek(3); err == nil && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = br.Discard(3)
	}
}

func missingColumns(header, required []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}
	var missing []string
	for _, col := range required {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	return missing
}
