// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/verte-zerg/cryptex/internal/model"
)

const (
	sparkChars = " .:-=+*#%@"
	labelWidth = 15
)

// Summary condenses a set of solved runs.
type Summary struct {
	Runs          int
	BestMs        int64
	AverageMs     float64
	MedianMs      float64
	AvgAdvances   float64
	TapAccuracy   float64
	CooldownDrops int
}

// Summarize computes the run summary. TapAccuracy is the share of taps that
// advanced a dial.
func Summarize(runs []model.RunAggregate) Summary {
	if len(runs) == 0 {
		return Summary{}
	}
	s := Summary{Runs: len(runs), BestMs: runs[0].DurationMs}
	durations := make([]float64, len(runs))
	var total, advances float64
	taps := 0
	for i, r := range runs {
		durations[i] = float64(r.DurationMs)
		total += float64(r.DurationMs)
		advances += float64(r.Advances)
		taps += r.Taps
		s.CooldownDrops += r.CooldownDrops
		if r.DurationMs < s.BestMs {
			s.BestMs = r.DurationMs
		}
	}
	count := float64(len(runs))
	s.AverageMs = total / count
	s.AvgAdvances = advances / count
	if taps > 0 {
		s.TapAccuracy = advances / float64(taps)
	}
	sort.Float64s(durations)
	mid := len(durations) / 2
	if len(durations)%2 == 0 {
		s.MedianMs = (durations[mid-1] + durations[mid]) / 2
	} else {
		s.MedianMs = durations[mid]
	}
	return s
}

// Durations returns the run durations in seconds, in run order.
func Durations(runs []model.RunAggregate) []float64 {
	out := make([]float64, len(runs))
	for i, r := range runs {
		out[i] = float64(r.DurationMs) / 1000
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// FormatDuration renders milliseconds as seconds with one decimal.
func FormatDuration(ms int64) string {
	return fmt.Sprintf("%.1fs", float64(ms)/1000)
}

// RenderOptions controls plain-text rendering.
type RenderOptions struct {
	Color bool
	// Width caps the trend sparkline; zero means unlimited.
	Width int
}

// RenderSummary prints the summary block for runs.
func RenderSummary(w io.Writer, runs []model.RunAggregate, opts RenderOptions) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No solved runs yet.")
		return err
	}
	s := Summarize(runs)
	title := color.New(color.FgYellow, color.Bold)
	value := color.New(color.FgHiWhite)
	if !opts.Color {
		title.DisableColor()
		value.DisableColor()
	}
	lines := [][2]string{
		{"Runs", fmt.Sprintf("%d", s.Runs)},
		{"Best", FormatDuration(s.BestMs)},
		{"Average", FormatDuration(int64(s.AverageMs))},
		{"Median", FormatDuration(int64(s.MedianMs))},
		{"Avg turns", fmt.Sprintf("%.1f", s.AvgAdvances)},
		{"Tap accuracy", fmt.Sprintf("%.1f%%", s.TapAccuracy*100)},
		{"Cooldown drops", fmt.Sprintf("%d", s.CooldownDrops)},
		{"Trend", Sparkline(trendValues(runs, opts.Width))},
	}
	if _, err := title.Fprintln(w, "Summary"); err != nil {
		return err
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%-*s %s\n", labelWidth, l[0]+":", value.Sprint(l[1])); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func trendValues(runs []model.RunAggregate, width int) []float64 {
	values := MovingAverage(Durations(runs), 3)
	limit := width - labelWidth - 1
	if width > 0 && limit > 0 && len(values) > limit {
		values = values[len(values)-limit:]
	}
	return values
}

// RenderRunTable prints one row per run, newest first.
func RenderRunTable(w io.Writer, runs []model.RunAggregate, now time.Time) error {
	if len(runs) == 0 {
		return nil
	}
	headers, rows := RunRows(runs, now)
	cols := make([]column, len(headers))
	for i, h := range headers {
		cols[i] = column{title: h, right: i > 0}
	}
	for _, line := range formatTable(cols, rows) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RunRows returns the table headers and one row per run, newest first.
func RunRows(runs []model.RunAggregate, now time.Time) ([]string, [][]string) {
	headers := []string{"When", "Time", "Turns", "Taps", "Drags"}
	rows := make([][]string, 0, len(runs))
	for i := len(runs) - 1; i >= 0; i-- {
		r := runs[i]
		rows = append(rows, []string{
			humanize.RelTime(r.EndedAt, now, "ago", "from now"),
			FormatDuration(r.DurationMs),
			fmt.Sprintf("%d", r.Advances),
			fmt.Sprintf("%d", r.Taps),
			fmt.Sprintf("%d", r.Drags),
		})
	}
	return headers, rows
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// PlainOptions picks render options for w: colour and width only when w is
// a terminal.
func PlainOptions(w io.Writer) RenderOptions {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return RenderOptions{}
	}
	opts := RenderOptions{Color: true}
	if width, _, err := term.GetSize(int(f.Fd())); err == nil {
		opts.Width = width
	}
	return opts
}
