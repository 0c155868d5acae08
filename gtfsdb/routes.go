package gtfsdb

import (
	"context"
	"database/sql"

	"github.com/sudface/frequency/internal/gtfs"
)

func insertRoutes(ctx context.Context, tx *sql.Tx, routes []gtfs.Route) error {
	return insertBatch(ctx, tx, "routes", `
		INSERT OR REPLACE INTO routes (
			seq, route_id, route_type, route_short_name, route_long_name
		) VALUES (?, ?, ?, ?, ?);
	`, routes, func(seq int, r gtfs.Route) []any {
		return []any{seq, r.RouteID, r.Type, toNullString(r.ShortName), toNullString(r.LongName)}
	})
}

func listRoutes(ctx context.Context, q querier) ([]gtfs.Route, error) {
	return queryRows(ctx, q, "routes", `
		SELECT route_id, route_type, route_short_name, route_long_name FROM routes ORDER BY seq
	`, func(rows *sql.Rows) (gtfs.Route, error) {
		var r gtfs.Route
		var short, long sql.NullString
		err := rows.Scan(&r.RouteID, &r.Type, &short, &long)
		r.ShortName, r.LongName = short.String, long.String
		return r, err
	})
}
