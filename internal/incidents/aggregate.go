package incidents

import (
	"slices"
	"time"

	"github.com/samber/lo"
)

// DailyAggregate summarises the records of one calendar day.
type DailyAggregate struct {
	Day       time.Time `json:"day"`
	Incidents int       `json:"incidents"`
	Killed    int       `json:"killed"`
	Injured   int       `json:"injured"`
}

// Max returns the largest of the three measures.
func (a DailyAggregate) Max() int {
	return max(a.Incidents, a.Killed, a.Injured)
}

// Totals is the sum of the three measures over a window.
type Totals struct {
	Incidents int
	Killed    int
	Injured   int
}

// Aggregate keeps the records inside window, buckets them by calendar day
// and sums each bucket. The result is ordered by day ascending. An empty
// filtered set yields an empty slice.
func Aggregate(records []Record, window Window) []DailyAggregate {
	inside := lo.Filter(records, func(r Record, _ int) bool {
		return window.Contains(r.Date)
	})
	if len(inside) == 0 {
		return []DailyAggregate{}
	}

	buckets := lo.GroupBy(inside, func(r Record) time.Time {
		return r.Day()
	})
	aggs := lo.MapToSlice(buckets, func(day time.Time, bucket []Record) DailyAggregate {
		return DailyAggregate{
			Day:       day,
			Incidents: len(bucket),
			Killed:    lo.SumBy(bucket, func(r Record) int { return r.Killed }),
			Injured:   lo.SumBy(bucket, func(r Record) int { return r.Injured }),
		}
	})
	slices.SortFunc(aggs, func(a, b DailyAggregate) int {
		return a.Day.Compare(b.Day)
	})
	return aggs
}

// Sum totals the measures of aggs.
func Sum(aggs []DailyAggregate) Totals {
	return lo.Reduce(aggs, func(t Totals, a DailyAggregate, _ int) Totals {
		t.Incidents += a.Incidents
		t.Killed += a.Killed
		t.Injured += a.Injured
		return t
	}, Totals{})
}

// MaxValue returns the largest measure over all buckets, 0 when empty.
func MaxValue(aggs []DailyAggregate) int {
	m := 0
	for _, a := range aggs {
		m = max(m, a.Max())
	}
	return m
}

// Nearest returns the bucket whose day is closest to t and its index.
// When t lies exactly between two buckets the earlier one wins. aggs must be
// sorted by day.
func Nearest(aggs []DailyAggregate, t time.Time) (DailyAggregate, int, error) {
	if len(aggs) == 0 {
		return DailyAggregate{}, -1, ErrNoData
	}
	i, _ := slices.BinarySearchFunc(aggs, t, func(a DailyAggregate, t time.Time) int {
		return a.Day.Compare(t)
	})
	switch {
	case i == 0:
		return aggs[0], 0, nil
	case i == len(aggs):
		return aggs[i-1], i - 1, nil
	}
	before, after := aggs[i-1], aggs[i]
	if t.Sub(before.Day) <= after.Day.Sub(t) {
		return before, i - 1, nil
	}
	return after, i, nil
}
