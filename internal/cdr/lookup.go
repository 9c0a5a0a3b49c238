package cdr

import (
	"sort"
	"time"
)

// Latest returns the most recently completed call whose destination or
// channel equals number. Matching is exact string equality on both fields;
// the query argument is not normalized. It reports false when nothing
// matches.
func (s *Store) Latest(number string) (Record, bool) {
	var matches []Record
	for _, r := range s.Snapshot() {
		if r.Destination == number || r.Channel == number {
			matches = append(matches, r)
		}
	}
	if len(matches) == 0 {
		return Record{}, false
	}

	// Stable sort keeps equal timestamps in snapshot order, so repeated
	// lookups on an unchanged store return the same record.
	sort.SliceStable(matches, func(i, j int) bool {
		return endTimeValue(matches[i].EndTime).After(endTimeValue(matches[j].EndTime))
	})
	return matches[0], true
}

// endTimeValue parses a record timestamp for ordering. A malformed timestamp
// sorts after every well-formed one.
func endTimeValue(s string) time.Time {
	t, err := time.Parse(EndTimeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
