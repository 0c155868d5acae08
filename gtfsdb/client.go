package gtfsdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sudface/frequency/internal/gtfs"
	"github.com/sudface/frequency/internal/logging"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotImported is returned by LoadTables before any feed was imported.
var ErrNotImported = errors.New("no GTFS feed imported")

// Client stores the analysed GTFS tables in SQLite so later runs can skip
// parsing the text files.
type Client struct {
	config        Config
	DB            *sql.DB
	importRuntime time.Duration
}

// NewClient creates a new Client with the provided configuration
func NewClient(config Config) (*Client, error) {
	db, err := createDB(config)
	if err != nil {
		return nil, err
	}

	return &Client{
		config: config,
		DB:     db,
	}, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

// ImportFromSource reads the tables from a feed directory, zip file or zip
// URL and stores them. It reports whether anything was written.
func (c *Client) ImportFromSource(ctx context.Context, source string) (bool, error) {
	tables, err := gtfs.LoadTables(ctx, source, nil)
	if err != nil {
		return false, err
	}
	return c.ImportTables(ctx, tables, source)
}

// ImportTables replaces the stored tables with tables. An import whose
// content hash matches the stored one is skipped and reports false.
func (c *Client) ImportTables(ctx context.Context, tables *gtfs.Tables, source string) (imported bool, err error) {
	logger := logging.FromContext(ctx).With(slog.String("component", "gtfsdb"))
	startTime := time.Now()
	defer func() {
		c.importRuntime = time.Since(startTime)
	}()

	hash, err := tablesHash(tables)
	if err != nil {
		return false, err
	}

	existing, err := c.GetImportMetadata(ctx)
	switch {
	case err == nil && existing.FileHash == hash:
		logging.LogOperation(logger, "gtfs_import_skipped",
			slog.String("source", source),
			slog.String("reason", "unchanged"))
		return false, nil
	case err != nil && !errors.Is(err, ErrNotImported):
		return false, err
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, logger, "import_tables")

	if err := replaceTables(ctx, tx, tables); err != nil {
		return false, err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO import_metadata (id, file_hash, file_source, import_time)
		VALUES (1, ?, ?, ?);
	`, hash, source, time.Now().UnixMilli()); err != nil {
		return false, fmt.Errorf("error storing import metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("error committing transaction: %w", err)
	}

	if c.config.verbose {
		logging.LogOperation(logger, "gtfs_import_completed",
			slog.String("source", source),
			slog.Int("stops", len(tables.Stops)),
			slog.Int("trips", len(tables.Trips)),
			slog.Int("stop_times", len(tables.StopTimes)),
			slog.Duration("duration", time.Since(startTime)))
	}
	return true, nil
}

// GetImportMetadata returns ErrNotImported when the store is empty.
func (c *Client) GetImportMetadata(ctx context.Context) (ImportMetadata, error) {
	var m ImportMetadata
	err := c.DB.QueryRowContext(ctx,
		`SELECT file_hash, file_source, import_time FROM import_metadata WHERE id = 1`,
	).Scan(&m.FileHash, &m.FileSource, &m.ImportTime)
	if errors.Is(err, sql.ErrNoRows) {
		return m, ErrNotImported
	}
	if err != nil {
		return m, fmt.Errorf("error reading import metadata: %w", err)
	}
	return m, nil
}

// LoadTables reads the stored tables back in their original row order. It
// lets the Client stand in for a feed source in gtfs.Manager.
func (c *Client) LoadTables(ctx context.Context) (*gtfs.Tables, error) {
	if _, err := c.GetImportMetadata(ctx); err != nil {
		return nil, err
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, logging.FromContext(ctx), "load_tables")

	t := &gtfs.Tables{}
	if t.Calendar, err = listCalendar(ctx, tx); err != nil {
		return nil, err
	}
	if t.CalendarDates, err = listCalendarDates(ctx, tx); err != nil {
		return nil, err
	}
	if t.Routes, err = listRoutes(ctx, tx); err != nil {
		return nil, err
	}
	if t.Trips, err = listTrips(ctx, tx); err != nil {
		return nil, err
	}
	if t.Stops, err = listStops(ctx, tx); err != nil {
		return nil, err
	}
	if t.StopTimes, err = listStopTimes(ctx, tx); err != nil {
		return nil, err
	}
	return t, nil
}

// ImportRuntime returns how long the last import took.
func (c *Client) ImportRuntime() time.Duration {
	return c.importRuntime
}
