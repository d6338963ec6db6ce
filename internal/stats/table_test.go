package stats

import (
	"strings"
	"testing"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	cols := []column{{title: "When"}, {title: "Time", right: true}, {title: "Turns", right: true}}
	rows := [][]string{
		{"2 hours ago", "12.5s", "9"},
		{"now", "8.0s", "11"},
	}
	lines := formatTable(cols, rows)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if want := "When" + strings.Repeat(" ", 9) + "Time Turns"; lines[0] != want {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "2 hours ago 12.5s     9" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if want := "now" + strings.Repeat(" ", 10) + "8.0s" + strings.Repeat(" ", 4) + "11"; lines[2] != want {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestDisplayWidthCountsWideRunes(t *testing.T) {
	if got := displayWidth("a鍵"); got != 3 {
		t.Fatalf("expected width 3, got %d", got)
	}
}
