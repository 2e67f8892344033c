package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table renders rows under headers with the CLI styles.
func Table(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return SubtleStyle.Render("(none)")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtleStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})
	return t.Render()
}

// KeyValues renders aligned "key  value" lines.
func KeyValues(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		if w := lipgloss.Width(p[0]); w > width {
			width = w
		}
	}

	lines := make([]string, len(pairs))
	for i, p := range pairs {
		key := BoldStyle.Width(width + 2).Render(p[0])
		lines[i] = key + p[1]
	}
	return strings.Join(lines, "\n")
}
