package gtfs

import (
	"context"
	"sync/atomic"
)

// StaticLoader serves fixed tables, or Err when set. It stands in for a real
// source in tests of code built on the Manager.
type StaticLoader struct {
	Tables *Tables
	Err    error

	calls atomic.Int32
}

func (l *StaticLoader) LoadTables(ctx context.Context) (*Tables, error) {
	l.calls.Add(1)
	if l.Err != nil {
		return nil, l.Err
	}
	return l.Tables, nil
}

// Calls returns how many times the tables were requested.
func (l *StaticLoader) Calls() int {
	return int(l.calls.Load())
}
