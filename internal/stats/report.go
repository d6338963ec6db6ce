package stats

import (
	"context"

	"github.com/verte-zerg/cryptex/internal/model"
	"github.com/verte-zerg/cryptex/internal/store"
)

// fastestCount is how many runs the report keeps in its leaderboard.
const fastestCount = 5

// Report contains precomputed data for stats rendering.
type Report struct {
	Runs    []model.RunAggregate
	Summary Summary
	Fastest []model.RunAggregate
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	runs, err := st.ListRuns(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Runs:    runs,
		Summary: Summarize(runs),
		Fastest: FastestRuns(runs, fastestCount),
	}, nil
}
