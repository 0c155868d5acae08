package export

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sudface/frequency/internal/models"
)

func TestFileNames(t *testing.T) {
	assert.Equal(t, "points_weekday.geojson", PointsFileName("weekday"))
	assert.Equal(t, "points_weekend.geojson", PointsFileName("weekend"))
	assert.Equal(t, "details_20260117.json", DetailsFileName(20260117))
}

func TestWritePoints(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	fc := geojson.NewFeatureCollection()
	f := geojson.NewPointFeature([]float64{151.21, -33.86})
	f.SetProperty("id", "S1")
	fc.AddFeature(f)

	path, err := WritePoints(dir, "weekday", fc, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "points_weekday.geojson"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	parsed, err := geojson.UnmarshalFeatureCollection(b)
	require.NoError(t, err)
	require.Len(t, parsed.Features, 1)
	assert.Equal(t, "S1", parsed.Features[0].PropertyMustString("id"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary file is left behind")
}

func TestWriteDetails(t *testing.T) {
	dir := t.TempDir()
	dump := models.DetailDump{
		Routes: map[string]models.RouteLabel{"R1": {ShortName: "1", LongName: "Harbour Loop"}},
		Stops:  map[string]models.StopLabel{},
		Trips:  map[string]models.TripLabel{"wk1": {RouteID: "R1"}},
		Times:  map[string]models.StopTimeline{"S1": {Minutes: []int{430}, TripIDs: []string{"wk1"}, Gaps: []int{}}},
	}

	path, err := WriteDetails(dir, 20260119, dump, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "details_20260119.json"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.JSONEq(t, `{"S1": [[430], ["wk1"], []]}`, string(decoded["times"]))
}

func TestWriteJSONFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")

	err := writeJSON(path, map[string]float64{"x": math.NaN()}, nil)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
