package incidents

import (
	"slices"
	"time"
)

// Store owns the loaded dataset. It is read-only after construction.
type Store struct {
	records []Record
	defects []*RowError
	bounds  Window
}

// NewStore builds a store over records sorted by date. Defects are the rows
// that were skipped while loading.
func NewStore(records []Record, defects []*RowError) *Store {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b Record) int {
		return a.Date.Compare(b.Date)
	})

	s := &Store{records: sorted, defects: defects}
	if len(sorted) > 0 {
		s.bounds = Window{Start: sorted[0].Day(), End: sorted[len(sorted)-1].Day()}
	}
	return s
}

// Records returns the loaded records ordered by date.
func (s *Store) Records() []Record {
	if s == nil {
		return nil
	}
	return s.records
}

// Defects returns the rows skipped during a lenient load.
func (s *Store) Defects() []*RowError {
	if s == nil {
		return nil
	}
	return s.defects
}

// Len returns the number of loaded records.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// IsEmpty reports whether the store holds no records.
func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

// Bounds returns the window from the earliest to the latest record date.
// It is the zero Window for an empty store.
func (s *Store) Bounds() Window {
	if s == nil {
		return Window{}
	}
	return s.bounds
}

// MinDate returns the earliest record day.
func (s *Store) MinDate() time.Time {
	return s.Bounds().Start
}

// MaxDate returns the latest record day.
func (s *Store) MaxDate() time.Time {
	return s.Bounds().End
}

// Aggregate buckets the records inside window by day.
func (s *Store) Aggregate(window Window) []DailyAggregate {
	return Aggregate(s.InWindow(window), window)
}

// InWindow returns the records falling inside window, in date order.
func (s *Store) InWindow(window Window) []Record {
	if s.IsEmpty() {
		return nil
	}
	lo, hi := s.span(window)
	return s.records[lo:hi]
}

// RecordsOn returns the records of a single calendar day.
func (s *Store) RecordsOn(day time.Time) []Record {
	day = Day(day)
	return s.InWindow(Window{Start: day, End: day})
}

// span returns the index range of records within window using the date order.
func (s *Store) span(window Window) (int, int) {
	lo, _ := slices.BinarySearchFunc(s.records, window.Start, func(r Record, t time.Time) int {
		return r.Day().Compare(t)
	})
	next := window.End.AddDate(0, 0, 1)
	hi, _ := slices.BinarySearchFunc(s.records, next, func(r Record, t time.Time) int {
		return r.Day().Compare(t)
	})
	if hi < lo {
		hi = lo
	}
	return lo, hi
}
