package cdr

import (
	"fmt"
	"sync"
	"testing"
)

func testRecord(n int) Record {
	return Record{
		UniqueID:    fmt.Sprintf("1699000000.%d", n),
		Channel:     "2510",
		Destination: fmt.Sprintf("555%07d", n),
		EndTime:     "2024-01-01 10:00:00",
	}
}

func TestAppendAndSnapshot(t *testing.T) {
	s := NewStore()
	s.Append(testRecord(1))
	s.Append(testRecord(2))

	snap := s.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 records, got %d", len(snap))
	}
	if snap[0].UniqueID != "1699000000.1" || snap[1].UniqueID != "1699000000.2" {
		t.Errorf("unexpected snapshot order: %v", snap)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.Append(testRecord(1))

	snap := s.Snapshot()
	snap[0].Destination = "mutated"

	if got := s.Snapshot()[0].Destination; got != "5550000001" {
		t.Errorf("store record changed through snapshot: %q", got)
	}
}

func TestSeedMergesWithExistingAppends(t *testing.T) {
	s := NewStore()

	// A live event lands before the bulk load finishes.
	s.Append(testRecord(99))
	s.Seed([]Record{testRecord(1), testRecord(2)})

	snap := s.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 records after seed, got %d", len(snap))
	}
	if snap[0].UniqueID != "1699000000.1" {
		t.Errorf("expected seeded records first, got %q", snap[0].UniqueID)
	}
	if snap[2].UniqueID != "1699000000.99" {
		t.Errorf("expected live append preserved, got %q", snap[2].UniqueID)
	}
}

func TestConcurrentAppendAndRead(t *testing.T) {
	const writers = 50

	s := NewStore()
	var wg sync.WaitGroup

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Append(testRecord(n))
		}(i)
	}
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, r := range s.Snapshot() {
				// Every observed record must be fully formed, never torn.
				if r.Channel != "2510" || len(r.Destination) != 10 {
					t.Errorf("malformed record in snapshot: %+v", r)
				}
			}
			s.Latest("5550000001")
		}()
	}
	wg.Wait()

	if got := s.Len(); got != writers {
		t.Errorf("expected %d records after all appends, got %d", writers, got)
	}
}

func TestConcurrentSeedAndAppend(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		s.Seed([]Record{testRecord(1), testRecord(2)})
	}()
	go func() {
		defer wg.Done()
		s.Append(testRecord(3))
	}()
	wg.Wait()

	if got := s.Len(); got != 3 {
		t.Errorf("seed and append lost records: expected 3, got %d", got)
	}
}
