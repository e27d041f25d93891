package store

import "time"

// NopStore discards every run. Used when history is disabled.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) Record(r Run) error { return nil }

func (s *NopStore) Recent(limit int) ([]Run, error) { return nil, nil }

func (s *NopStore) Cleanup(olderThan time.Duration) error { return nil }

func (s *NopStore) Close() error { return nil }
