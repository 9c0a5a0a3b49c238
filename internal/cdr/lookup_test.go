package cdr

import "testing"

func TestLatest_PicksNewestByEndTime(t *testing.T) {
	s := NewStore()
	s.Append(Record{UniqueID: "a", Channel: "2510", Destination: "5551234567", EndTime: "2024-03-01 09:00:00"})
	s.Append(Record{UniqueID: "b", Channel: "2510", Destination: "5551234567", EndTime: "2024-01-01 10:00:00"})

	rec, ok := s.Latest("5551234567")
	if !ok {
		t.Fatal("expected a match")
	}
	if rec.UniqueID != "a" {
		t.Errorf("expected the March record, got %q at %s", rec.UniqueID, rec.EndTime)
	}
}

func TestLatest_MatchesChannel(t *testing.T) {
	s := NewStore()
	s.Append(Record{UniqueID: "a", Channel: "2510", Destination: "5551234567", EndTime: "2024-01-01 10:00:00"})

	rec, ok := s.Latest("2510")
	if !ok {
		t.Fatal("expected a match on channel")
	}
	if rec.UniqueID != "a" {
		t.Errorf("unexpected record %q", rec.UniqueID)
	}
}

func TestLatest_Miss(t *testing.T) {
	s := NewStore()
	s.Append(Record{UniqueID: "a", Channel: "2510", Destination: "5551234567", EndTime: "2024-01-01 10:00:00"})

	if _, ok := s.Latest("5559999999"); ok {
		t.Error("expected no match for unknown number")
	}
}

func TestLatest_NoQueryNormalization(t *testing.T) {
	s := NewStore()
	s.Append(Record{UniqueID: "a", Channel: "2510", Destination: "5551234567", EndTime: "2024-01-01 10:00:00"})

	// Matching is exact; a raw channel string never equals the stored
	// normalized form.
	if _, ok := s.Latest("PJSIP/2510-0000020a"); ok {
		t.Error("expected raw channel query to miss")
	}
}

func TestLatest_RepeatedCallsAgree(t *testing.T) {
	s := NewStore()
	// Two records sharing an endtime: ties are arbitrary but must be stable
	// while the store is unchanged.
	s.Append(Record{UniqueID: "a", Channel: "2510", Destination: "5551234567", EndTime: "2024-02-01 12:00:00"})
	s.Append(Record{UniqueID: "b", Channel: "2511", Destination: "5551234567", EndTime: "2024-02-01 12:00:00"})

	first, ok := s.Latest("5551234567")
	if !ok {
		t.Fatal("expected a match")
	}
	for i := 0; i < 10; i++ {
		again, ok := s.Latest("5551234567")
		if !ok {
			t.Fatal("expected a match on repeat")
		}
		if again.UniqueID != first.UniqueID {
			t.Fatalf("repeat lookup changed answer: %q then %q", first.UniqueID, again.UniqueID)
		}
	}
}

func TestLatest_MalformedEndTimeSortsLast(t *testing.T) {
	s := NewStore()
	s.Append(Record{UniqueID: "bad", Channel: "2510", Destination: "5551234567", EndTime: "not-a-timestamp"})
	s.Append(Record{UniqueID: "good", Channel: "2510", Destination: "5551234567", EndTime: "2024-01-01 10:00:00"})

	rec, ok := s.Latest("5551234567")
	if !ok {
		t.Fatal("expected a match")
	}
	if rec.UniqueID != "good" {
		t.Errorf("expected parseable timestamp to win, got %q", rec.UniqueID)
	}
}
