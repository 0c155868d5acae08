// Package gtfstest writes small GTFS feeds for tests.
package gtfstest

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/klauspost/compress/zip"
)

// Dates the sample feed is built around.
const (
	Weekday     = "20260119" // Monday, WK runs
	Holiday     = "20260216" // Monday, WK removed and SAT added
	Saturday    = "20260221" // SAT runs
	Sunday      = "20260222" // nothing runs
	OutOfRange  = "20270104" // Monday after every pattern expired
	SampleRoute = "R1"
)

// Sample returns the files of a small feed: two bus routes and a rail route,
// a weekday and a Saturday pattern, one untimed visit, one visit past
// midnight and a stop without coordinates (S3).
func Sample() map[string]string {
	return map[string]string{
		"agency.txt": `agency_id,agency_name,agency_url,agency_timezone
A,Harbour Transit,https://transit.example.com,Australia/Sydney
`,
		"calendar.txt": `service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date
WK,1,1,1,1,1,0,0,20260101,20261231
SAT,0,0,0,0,0,1,0,20260101,20261231
`,
		"calendar_dates.txt": `service_id,date,exception_type
WK,20260216,2
SAT,20260216,1
`,
		"routes.txt": `route_id,agency_id,route_short_name,route_long_name,route_type
R1,A,1,Harbour Loop,700
R2,A,2,Hill Line,700
TR,A,T1,Rail Line,2
`,
		"trips.txt": `route_id,service_id,trip_id,direction_id
R1,WK,wk1,0
R1,WK,wk2,0
R1,WK,wk3,1
R2,WK,wk4,0
TR,WK,rail1,0
R1,SAT,sat1,0
R1,SAT,sat2,1
`,
		"stops.txt": `stop_id,stop_name,stop_lat,stop_lon
S1,Harbour St,-33.86,151.21
S2,Hill Rd,-33.87,151.22
S3,Depot,,
S4,Unused,-33.9,151.3
`,
		"stop_times.txt": `trip_id,arrival_time,departure_time,stop_id,stop_sequence
wk1,07:10:00,07:10:00,S1,1
wk1,07:25:00,07:25:00,S2,2
wk2,07:20:00,07:20:00,S1,1
wk2,,,S2,2
wk3,07:40:00,07:40:00,S1,1
wk4,07:20:00,07:20:00,S1,1
wk4,25:10:00,25:10:00,S3,2
rail1,07:30:00,07:30:00,S1,1
sat1,09:30:00,09:30:00,S1,1
sat2,10:00:00,10:00:00,S1,1
`,
	}
}

// WriteDir writes files into a fresh temporary directory and returns it.
func WriteDir(t testing.TB, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return dir
}

// ZipBytes returns files as a zip archive, optionally below a folder.
func ZipBytes(t testing.TB, files map[string]string, folder string) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "feed.zip")
	writeZip(t, path, files, folder)
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return b
}

// WriteZip writes files as feed.zip into a temporary directory and returns
// the archive path.
func WriteZip(t testing.TB, files map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "feed.zip")
	writeZip(t, path, files, "")
	return path
}

func writeZip(t testing.TB, path string, files map[string]string, folder string) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close() // nolint:errcheck

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	zw := zip.NewWriter(f)
	for _, name := range names {
		entry := name
		if folder != "" {
			entry = folder + "/" + name
		}
		w, err := zw.Create(entry)
		if err != nil {
			t.Fatalf("failed to add %s: %v", entry, err)
		}
		if _, err := w.Write([]byte(files[name])); err != nil {
			t.Fatalf("failed to write %s: %v", entry, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to finish archive: %v", err)
	}
}

// Without returns a copy of files with the named entries removed.
func Without(files map[string]string, names ...string) map[string]string {
	out := make(map[string]string, len(files))
	for k, v := range files {
		out[k] = v
	}
	for _, n := range names {
		delete(out, n)
	}
	return out
}

// With returns a copy of files with the given entries replaced.
func With(files map[string]string, name, content string) map[string]string {
	out := Without(files)
	out[name] = content
	return out
}
