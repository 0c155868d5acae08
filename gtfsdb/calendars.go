package gtfsdb

import (
	"context"
	"database/sql"

	"github.com/sudface/frequency/internal/gtfs"
)

func insertCalendar(ctx context.Context, tx *sql.Tx, patterns []gtfs.ServicePattern) error {
	return insertBatch(ctx, tx, "calendar", `
		INSERT OR REPLACE INTO calendar (
			seq, service_id, monday, tuesday, wednesday, thursday,
			friday, saturday, sunday, start_date, end_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`, patterns, func(seq int, s gtfs.ServicePattern) []any {
		return []any{
			seq, s.ServiceID, boolToInt(s.Monday), boolToInt(s.Tuesday), boolToInt(s.Wednesday), boolToInt(s.Thursday),
			boolToInt(s.Friday), boolToInt(s.Saturday), boolToInt(s.Sunday), int64(s.StartDate), int64(s.EndDate),
		}
	})
}

func listCalendar(ctx context.Context, q querier) ([]gtfs.ServicePattern, error) {
	return queryRows(ctx, q, "calendar", `
		SELECT service_id, monday, tuesday, wednesday, thursday, friday, saturday, sunday, start_date, end_date
		FROM calendar ORDER BY seq
	`, func(rows *sql.Rows) (gtfs.ServicePattern, error) {
		var s gtfs.ServicePattern
		var days [7]int64
		var start, end int64
		err := rows.Scan(&s.ServiceID, &days[0], &days[1], &days[2], &days[3], &days[4], &days[5], &days[6], &start, &end)
		s.Monday, s.Tuesday, s.Wednesday = days[0] != 0, days[1] != 0, days[2] != 0
		s.Thursday, s.Friday, s.Saturday, s.Sunday = days[3] != 0, days[4] != 0, days[5] != 0, days[6] != 0
		s.StartDate, s.EndDate = gtfs.Date(start), gtfs.Date(end)
		return s, err
	})
}

func insertCalendarDates(ctx context.Context, tx *sql.Tx, exceptions []gtfs.CalendarException) error {
	return insertBatch(ctx, tx, "calendar_dates", `
		INSERT INTO calendar_dates (seq, service_id, date, exception_type) VALUES (?, ?, ?, ?);
	`, exceptions, func(seq int, e gtfs.CalendarException) []any {
		return []any{seq, e.ServiceID, int64(e.Date), int64(e.Kind)}
	})
}

func listCalendarDates(ctx context.Context, q querier) ([]gtfs.CalendarException, error) {
	return queryRows(ctx, q, "calendar_dates", `
		SELECT service_id, date, exception_type FROM calendar_dates ORDER BY seq
	`, func(rows *sql.Rows) (gtfs.CalendarException, error) {
		var e gtfs.CalendarException
		var date, kind int64
		err := rows.Scan(&e.ServiceID, &date, &kind)
		e.Date, e.Kind = gtfs.Date(date), gtfs.ExceptionKind(kind)
		return e, err
	})
}
