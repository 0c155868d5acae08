package gtfsdb

import (
	"context"
	"database/sql"

	"github.com/sudface/frequency/internal/gtfs"
)

// insertStopTimes stores an empty arrival_time as NULL.
func insertStopTimes(ctx context.Context, tx *sql.Tx, stopTimes []gtfs.StopTime) error {
	return insertBatch(ctx, tx, "stop_times", `
		INSERT INTO stop_times (seq, trip_id, stop_id, arrival_time) VALUES (?, ?, ?, ?);
	`, stopTimes, func(seq int, st gtfs.StopTime) []any {
		arrival := sql.NullInt64{}
		if st.ArrivalTime != nil {
			arrival = sql.NullInt64{Int64: int64(*st.ArrivalTime), Valid: true}
		}
		return []any{seq, st.TripID, st.StopID, arrival}
	})
}

func listStopTimes(ctx context.Context, q querier) ([]gtfs.StopTime, error) {
	return queryRows(ctx, q, "stop_times", `
		SELECT trip_id, stop_id, arrival_time FROM stop_times ORDER BY seq
	`, func(rows *sql.Rows) (gtfs.StopTime, error) {
		var st gtfs.StopTime
		var arrival sql.NullInt64
		err := rows.Scan(&st.TripID, &st.StopID, &arrival)
		if arrival.Valid {
			at := gtfs.ClockTime(arrival.Int64)
			st.ArrivalTime = &at
		}
		return st, err
	})
}
