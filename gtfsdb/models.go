package gtfsdb

import "time"

// ImportMetadata describes the tables currently stored.
type ImportMetadata struct {
	FileHash   string
	FileSource string
	ImportTime int64 // unix milliseconds
}

// ImportedAt returns ImportTime as a time.
func (m ImportMetadata) ImportedAt() time.Time {
	return time.UnixMilli(m.ImportTime)
}
