package cdr

import "sync"

// Store holds every accepted call record for the life of the process. It has
// exactly two writers — the one-shot historical seed and the live ingestor —
// and arbitrarily many concurrent lookup readers. Records are never mutated
// or removed once appended; there is no eviction.
type Store struct {
	mu      sync.RWMutex
	records []Record
}

func NewStore() *Store {
	return &Store{}
}

// Append adds one accepted record. Visible to every snapshot taken after it
// returns.
func (s *Store) Append(r Record) {
	s.mu.Lock()
	s.records = append(s.records, r)
	s.mu.Unlock()
}

// Seed installs the historical batch. Live ingestion may already have
// appended records if it won the race with the bulk load, so the batch is
// merged in front of the existing contents rather than replacing them —
// neither side loses records.
func (s *Store) Seed(batch []Record) {
	s.mu.Lock()
	merged := make([]Record, 0, len(batch)+len(s.records))
	merged = append(merged, batch...)
	merged = append(merged, s.records...)
	s.records = merged
	s.mu.Unlock()
}

// Snapshot returns a point-in-time copy of all records. It reflects every
// append that completed before the call and stays valid while appends
// continue.
func (s *Store) Snapshot() []Record {
	s.mu.RLock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	s.mu.RUnlock()
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
