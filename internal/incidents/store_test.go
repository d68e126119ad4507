package incidents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_SortsAndBounds(t *testing.T) {
	s := NewStore(fixtureRecords(), nil)

	require.Equal(t, 6, s.Len())
	assert.False(t, s.IsEmpty())
	assert.Equal(t, date("2015-06-30"), s.MinDate())
	assert.Equal(t, date("2015-08-01"), s.MaxDate())
	for i := 1; i < s.Len(); i++ {
		assert.False(t, s.Records()[i].Date.Before(s.Records()[i-1].Date))
	}
}

func TestStore_InWindowMatchesFilter(t *testing.T) {
	s := NewStore(fixtureRecords(), nil)

	got := s.InWindow(window("2015-07-04", "2015-07-05"))

	ids := make([]int, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	assert.ElementsMatch(t, []int{1, 2, 3}, ids)
	assert.Equal(t, Aggregate(fixtureRecords(), window("2015-07-04", "2015-07-05")),
		s.Aggregate(window("2015-07-04", "2015-07-05")))
}

func TestStore_RecordsOn(t *testing.T) {
	s := NewStore(fixtureRecords(), nil)

	assert.Len(t, s.RecordsOn(date("2015-07-04")), 2)
	assert.Empty(t, s.RecordsOn(date("2015-07-06")))
}

func TestStore_NilAndEmpty(t *testing.T) {
	var s *Store
	assert.True(t, s.IsEmpty())
	assert.Zero(t, s.Len())
	assert.True(t, s.Bounds().IsZero())
	assert.Nil(t, s.Records())
	assert.Empty(t, s.Aggregate(window("2015-01-01", "2015-12-31")))

	empty := NewStore(nil, []*RowError{{Line: 2, Column: ColumnKilled}})
	assert.True(t, empty.IsEmpty())
	assert.Len(t, empty.Defects(), 1)
	assert.Empty(t, empty.RecordsOn(date("2015-07-04")))
}

func TestTopRegions(t *testing.T) {
	records := fixtureRecords()

	got := TopRegions(records, 2)

	require.NotEmpty(t, got)
	assert.Equal(t, "Ohio", got[0].Region)
	assert.Equal(t, 3, got[0].Count)
	assert.LessOrEqual(t, len(got), 2)

	assert.Equal(t, []RegionCount{
		{Region: "Ohio", Count: 3},
		{Region: "Illinois", Count: 2},
		{Region: "Texas", Count: 1},
	}, TopRegions(records, 3))

	assert.Nil(t, TopRegions(records, 0))
	assert.Nil(t, TopRegions(nil, 3))
}

func TestTopRegions_ExactCounts(t *testing.T) {
	var records []Record
	for i, region := range []string{"Ohio", "Texas", "Ohio", "Utah", "Texas", "Ohio", "Iowa", "Utah", "Ohio"} {
		records = append(records, Record{ID: i + 1, Date: date("2015-07-04"), Region: region})
	}
	exact := map[string]int{"Ohio": 4, "Texas": 2, "Utah": 2, "Iowa": 1}

	got := TopRegions(records, 2)

	require.NotEmpty(t, got)
	assert.Equal(t, RegionCount{Region: "Ohio", Count: 4}, got[0])
	for _, rc := range got {
		assert.Equal(t, exact[rc.Region], rc.Count, rc.Region)
	}
}
