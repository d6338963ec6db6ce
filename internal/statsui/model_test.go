package statsui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/cryptex/internal/model"
	"github.com/verte-zerg/cryptex/internal/store"
)

func seededStore(t *testing.T, durations ...int64) *store.Store {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "cryptex.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	for i, d := range durations {
		start := time.Date(2026, 1, 1+i, 12, 0, 0, 0, time.UTC)
		run := model.RunRecord{
			RunID:      fmt.Sprintf("run-%d", i),
			StartedAt:  start,
			EndedAt:    start.Add(time.Duration(d) * time.Millisecond),
			Dials:      4,
			Taps:       6,
			Advances:   5,
			DurationMs: d,
		}
		if _, err := st.InsertRun(context.Background(), run); err != nil {
			t.Fatalf("insert run: %v", err)
		}
	}
	return st
}

func TestOverviewShowsSummary(t *testing.T) {
	m := NewModel(seededStore(t, 9000, 4000), model.StatsConfig{})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()
	for _, want := range []string{"Overview", "Runs", "Best", "4.0s", "Fastest"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestRunsTabListsRuns(t *testing.T) {
	m := NewModel(seededStore(t, 9000, 4000), model.StatsConfig{})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.activeTab != tabRuns {
		t.Fatalf("expected runs tab, got %d", m.activeTab)
	}
	if view := m.View(); !strings.Contains(view, "9.0s") || !strings.Contains(view, "Turns") {
		t.Fatalf("expected run rows:\n%s", view)
	}
}

func TestEmptyStore(t *testing.T) {
	m := NewModel(seededStore(t), model.StatsConfig{})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	if view := m.View(); !strings.Contains(view, "No solved runs yet.") {
		t.Fatalf("expected empty message:\n%s", view)
	}
}

func TestApplyFilterValidates(t *testing.T) {
	m := NewModel(seededStore(t, 1000, 2000, 3000), model.StatsConfig{})
	m.startFilter()
	m.filterInputs[1].SetValue("x")
	if err := m.applyFilter(); err == nil {
		t.Fatalf("expected invalid last to fail")
	}
	m.filterInputs[0].SetValue("2026-01-02")
	m.filterInputs[1].SetValue("1")
	if err := m.applyFilter(); err != nil {
		t.Fatalf("apply filter: %v", err)
	}
	m.refreshReport()
	if len(m.report.Runs) != 1 || m.report.Runs[0].DurationMs != 3000 {
		t.Fatalf("unexpected filtered runs: %+v", m.report.Runs)
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("abcdefgh", 5); got != "ab..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
}
