package store

import "time"

// RunStore records match runs.
type RunStore interface {
	Record(r Run) error
	Recent(limit int) ([]Run, error)
	Cleanup(olderThan time.Duration) error
	Close() error
}

var (
	_ RunStore = (*SQLiteStore)(nil)
	_ RunStore = (*NopStore)(nil)
)
