package incidents

import (
	"cmp"
	"slices"

	"github.com/keilerkonzept/topk"
	"github.com/samber/lo"
)

// RegionCount is the incident count of a region.
type RegionCount struct {
	Region string
	Count  int
}

// TopRegions returns up to k regions with the most incidents among records,
// ordered by count descending and then by name. A heavy-keeper sketch picks
// the candidates; their counts are then taken exactly from records.
func TopRegions(records []Record, k int) []RegionCount {
	if k < 1 || len(records) == 0 {
		return nil
	}
	sketch := topk.New(k)
	for _, r := range records {
		if r.Region == "" {
			continue
		}
		sketch.Incr(r.Region)
	}

	exact := lo.CountValuesBy(records, func(r Record) string { return r.Region })
	out := make([]RegionCount, 0, k)
	for _, item := range sketch.SortedSlice() {
		if n := exact[item.Item]; item.Item != "" && n > 0 {
			out = append(out, RegionCount{Region: item.Item, Count: n})
		}
	}
	slices.SortFunc(out, func(a, b RegionCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Region, b.Region)
	})
	return out
}
