package stats

import (
	"sort"

	"github.com/verte-zerg/cryptex/internal/model"
)

// FastestRuns returns up to n runs ordered by duration, ties broken by the
// earlier run.
func FastestRuns(runs []model.RunAggregate, n int) []model.RunAggregate {
	if n <= 0 || len(runs) == 0 {
		return nil
	}
	items := make([]model.RunAggregate, len(runs))
	copy(items, runs)
	sort.Slice(items, func(i, j int) bool {
		if items[i].DurationMs == items[j].DurationMs {
			return items[i].ID < items[j].ID
		}
		return items[i].DurationMs < items[j].DurationMs
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
