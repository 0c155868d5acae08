package gtfsdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sudface/frequency/internal/gtfs"
)

var importedTables = []string{"calendar", "calendar_dates", "routes", "trips", "stops", "stop_times"}

// replaceTables clears the analysed tables and inserts tables inside tx.
func replaceTables(ctx context.Context, tx *sql.Tx, tables *gtfs.Tables) error {
	for _, name := range importedTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+name); err != nil {
			return fmt.Errorf("error clearing %s: %w", name, err)
		}
	}

	if err := insertCalendar(ctx, tx, tables.Calendar); err != nil {
		return err
	}
	if err := insertCalendarDates(ctx, tx, tables.CalendarDates); err != nil {
		return err
	}
	if err := insertRoutes(ctx, tx, tables.Routes); err != nil {
		return err
	}
	if err := insertTrips(ctx, tx, tables.Trips); err != nil {
		return err
	}
	if err := insertStops(ctx, tx, tables.Stops); err != nil {
		return err
	}
	return insertStopTimes(ctx, tx, tables.StopTimes)
}

// insertBatch prepares query once and executes it for every row.
func insertBatch[T any](ctx context.Context, tx *sql.Tx, table, query string, rows []T, args func(seq int, row T) []any) error {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("error preparing statement: %w", err)
	}
	defer stmt.Close() // nolint:errcheck

	for i, row := range rows {
		if _, err := stmt.ExecContext(ctx, args(i, row)...); err != nil {
			return fmt.Errorf("error inserting %s row %d: %w", table, i+1, err)
		}
	}
	return nil
}
