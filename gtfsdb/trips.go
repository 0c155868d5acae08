package gtfsdb

import (
	"context"
	"database/sql"

	"github.com/sudface/frequency/internal/gtfs"
)

func insertTrips(ctx context.Context, tx *sql.Tx, trips []gtfs.Trip) error {
	return insertBatch(ctx, tx, "trips", `
		INSERT OR REPLACE INTO trips (
			seq, trip_id, route_id, service_id, direction_id
		) VALUES (?, ?, ?, ?, ?);
	`, trips, func(seq int, t gtfs.Trip) []any {
		return []any{seq, t.TripID, t.RouteID, t.ServiceID, t.DirectionID}
	})
}

func listTrips(ctx context.Context, q querier) ([]gtfs.Trip, error) {
	return queryRows(ctx, q, "trips", `
		SELECT trip_id, route_id, service_id, direction_id FROM trips ORDER BY seq
	`, func(rows *sql.Rows) (gtfs.Trip, error) {
		var t gtfs.Trip
		err := rows.Scan(&t.TripID, &t.RouteID, &t.ServiceID, &t.DirectionID)
		return t, err
	})
}
