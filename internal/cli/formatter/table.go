package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// RenderTable renders an aligned table with a header separator line.
// Widths are measured on visible text so styled cells line up. A positive
// maxCol truncates wider cells with an ellipsis.
func RenderTable(headers []string, rows [][]string, maxCol int) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)

	cell := func(row []string, i int) string {
		if i >= len(row) {
			return ""
		}
		if maxCol > 0 {
			return Truncate(row[i], maxCol)
		}
		return row[i]
	}

	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols; i++ {
			widths[i] = max(widths[i], lipgloss.Width(cell(row, i)))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, render func(string) string) {
		for i, c := range cells {
			b.WriteString(render(c))
			if i < cols-1 {
				pad := max(widths[i]-lipgloss.Width(c), 0)
				b.WriteString(strings.Repeat(" ", pad+colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })

	seps := make([]string, cols)
	for i, w := range widths {
		seps[i] = strings.Repeat("─", w)
	}
	writeRow(seps, func(s string) string { return StyleDim.Render(s) })

	for _, row := range rows {
		cells := make([]string, cols)
		for i := range cells {
			cells[i] = cell(row, i)
		}
		writeRow(cells, func(s string) string { return s })
	}
	return b.String()
}

// Truncate shortens s to at most n visible characters.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
