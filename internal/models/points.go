package models

import (
	geojson "github.com/paulmach/go.geojson"
	"github.com/sudface/frequency/internal/gtfs"
	"github.com/sudface/frequency/internal/schedule"
)

// NewStopPoints turns frequency records into a collection of Point features,
// one per stop, with the stop id, its name and one property per window.
//
// A stop that is missing from the stops table or has no coordinates cannot
// be placed on a map. It is left out and its id is returned in missing.
func NewStopPoints(records []schedule.Record, feed *gtfs.Feed) (fc *geojson.FeatureCollection, missing []string) {
	fc = geojson.NewFeatureCollection()
	for _, rec := range records {
		stop, ok := feed.Stop(rec.StopID)
		if !ok || !stop.HasLocation() {
			missing = append(missing, rec.StopID)
			continue
		}

		f := geojson.NewPointFeature([]float64{*stop.Longitude, *stop.Latitude})
		f.SetProperty("id", stop.StopID)
		f.SetProperty("name", stop.Name)
		for _, stat := range rec.Stats {
			f.SetProperty(stat.Key, stat.Value())
		}
		fc.AddFeature(f)
	}
	return fc, missing
}
