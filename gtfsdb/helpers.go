package gtfsdb

import (
	"context"
	"crypto/sha256"
	"database/sql"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sudface/frequency/internal/appconf"
	"github.com/sudface/frequency/internal/gtfs"
)

//go:embed schema.sql
var ddl string

const memoryDB = ":memory:"

// createDB opens the SQLite database and creates the tables.
func createDB(config Config) (*sql.DB, error) {
	if config.Env == appconf.Test && config.DBPath != memoryDB {
		return nil, errors.New("test database must use in-memory storage, got " + config.DBPath)
	}

	db, err := sql.Open("sqlite", config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	configureConnectionPool(db, config.DBPath)

	if err := performDatabaseMigration(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error performing database migration: %w", err)
	}

	return db, nil
}

// configureConnectionPool sizes the pool. Every connection to :memory: opens
// its own empty database, so in-memory stores get exactly one.
func configureConnectionPool(db *sql.DB, path string) {
	if path == memoryDB {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		return
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
}

func performDatabaseMigration(ctx context.Context, db *sql.DB) error {
	statements := strings.Split(ddl, "-- migrate")
	for _, stmt := range statements {
		trimmedStmt := strings.TrimSpace(stmt)
		if trimmedStmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, trimmedStmt); err != nil {
			return fmt.Errorf("error executing DDL statement [%s]: %w", trimmedStmt, err)
		}
	}
	return nil
}

// tablesHash fingerprints the table contents so an unchanged feed is not
// written twice.
func tablesHash(tables *gtfs.Tables) (string, error) {
	b, err := json.Marshal(tables)
	if err != nil {
		return "", fmt.Errorf("error hashing tables: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// queryRows runs query and scans every row with scan.
func queryRows[T any](ctx context.Context, q querier, table, query string, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying %s: %w", table, err)
	}
	defer rows.Close() // nolint:errcheck

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning %s: %w", table, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", table, err)
	}
	return out, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// toNullString converts a string to sql.NullString
func toNullString(s string) sql.NullString {
	return sql.NullString{
		String: s,
		Valid:  s != "",
	}
}

func toNullFloat64(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func fromNullFloat64(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
