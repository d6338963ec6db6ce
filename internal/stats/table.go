package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// column describes one plain-text table column.
type column struct {
	title string
	right bool
}

// formatTable pads every cell to its column's widest value. Rows shorter
// than the header are padded with empty cells.
func formatTable(cols []column, rows [][]string) []string {
	if len(cols) == 0 {
		return nil
	}
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = displayWidth(c.title)
	}
	for _, row := range rows {
		for i := range cols {
			if i < len(row) {
				widths[i] = max(widths[i], displayWidth(row[i]))
			}
		}
	}

	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.title
	}
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, formatRow(cols, titles, widths))
	for _, row := range rows {
		lines = append(lines, formatRow(cols, row, widths))
	}
	return lines
}

func formatRow(cols []column, row []string, widths []int) string {
	cells := make([]string, len(cols))
	for i, c := range cols {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		cells[i] = padCell(cell, widths[i], c.right)
	}
	return strings.Join(cells, " ")
}

func padCell(value string, width int, rightAlign bool) string {
	if rightAlign {
		return runewidth.FillLeft(value, width)
	}
	return runewidth.FillRight(value, width)
}

func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}
