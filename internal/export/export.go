// Package export writes analysis results to disk.
package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	geojson "github.com/paulmach/go.geojson"
	"github.com/sudface/frequency/internal/gtfs"
	"github.com/sudface/frequency/internal/logging"
	"github.com/sudface/frequency/internal/models"
)

// PointsFileName is the feature collection file of a profile.
func PointsFileName(profile string) string {
	return "points_" + profile + ".geojson"
}

// DetailsFileName is the detail dump file of a date.
func DetailsFileName(date gtfs.Date) string {
	return "details_" + date.String() + ".json"
}

// WritePoints writes fc into dir and returns the file path.
func WritePoints(dir, profile string, fc *geojson.FeatureCollection, logger *slog.Logger) (string, error) {
	path := filepath.Join(dir, PointsFileName(profile))
	return path, writeJSON(path, fc, logger)
}

// WriteDetails writes dump into dir and returns the file path.
func WriteDetails(dir string, date gtfs.Date, dump models.DetailDump, logger *slog.Logger) (string, error) {
	path := filepath.Join(dir, DetailsFileName(date))
	return path, writeJSON(path, dump, logger)
}

// writeJSON encodes v next to path and renames it into place, so a failed
// run never leaves a truncated file behind.
func writeJSON(path string, v any, logger *slog.Logger) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	err = func() (err error) {
		defer logging.HandleDeferredError(&err, tmp.Close, logger, "close_"+filepath.Base(path))
		if err := json.NewEncoder(tmp).Encode(v); err != nil {
			return fmt.Errorf("error encoding %s: %w", filepath.Base(path), err)
		}
		return nil
	}()
	if err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}
