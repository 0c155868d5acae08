package gtfsdb

import (
	"context"
	"fmt"
)

// TableCounts returns the row count of every stored table.
func (c *Client) TableCounts(ctx context.Context) (map[string]int, error) {
	rows, err := c.DB.QueryContext(ctx, "SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'")
	if err != nil {
		return nil, fmt.Errorf("failed to query table names: %w", err)
	}
	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, tableName)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, table := range tables {
		var count int
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
		if err := c.DB.QueryRowContext(ctx, query).Scan(&count); err != nil {
			return nil, err
		}
		counts[table] = count
	}

	return counts, nil
}
