package stats

import (
	"testing"

	"github.com/verte-zerg/cryptex/internal/model"
)

func TestFastestRuns(t *testing.T) {
	runs := []model.RunAggregate{
		{ID: 1, RunRecord: model.RunRecord{DurationMs: 9000}},
		{ID: 2, RunRecord: model.RunRecord{DurationMs: 4000}},
		{ID: 3, RunRecord: model.RunRecord{DurationMs: 4000}},
	}
	top := FastestRuns(runs, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(top))
	}
	if top[0].ID != 2 || top[1].ID != 3 {
		t.Fatalf("unexpected order: %+v", top)
	}
	if runs[0].ID != 1 {
		t.Fatalf("input was reordered")
	}
}
