package gtfsdb

import (
	"context"
	"database/sql"

	"github.com/sudface/frequency/internal/gtfs"
)

// insertStops keeps missing coordinates as NULL.
func insertStops(ctx context.Context, tx *sql.Tx, stops []gtfs.Stop) error {
	return insertBatch(ctx, tx, "stops", `
		INSERT OR REPLACE INTO stops (
			seq, stop_id, stop_name, stop_lat, stop_lon
		) VALUES (?, ?, ?, ?, ?);
	`, stops, func(seq int, s gtfs.Stop) []any {
		return []any{seq, s.StopID, toNullString(s.Name), toNullFloat64(s.Latitude), toNullFloat64(s.Longitude)}
	})
}

func listStops(ctx context.Context, q querier) ([]gtfs.Stop, error) {
	return queryRows(ctx, q, "stops", `
		SELECT stop_id, stop_name, stop_lat, stop_lon FROM stops ORDER BY seq
	`, func(rows *sql.Rows) (gtfs.Stop, error) {
		var s gtfs.Stop
		var name sql.NullString
		var lat, lon sql.NullFloat64
		err := rows.Scan(&s.StopID, &name, &lat, &lon)
		s.Name = name.String
		s.Latitude, s.Longitude = fromNullFloat64(lat), fromNullFloat64(lon)
		return s, err
	})
}
