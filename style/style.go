// Package style holds the shared colors and table styling.
package style

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

var (
	TableBorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // Subtle warm grey border
	HlRowStyle       = lipgloss.NewStyle().Background(lipgloss.Color("236")) // Roast brown row
	MutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("246")) // Warm muted grey text
	HeadStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("180"))
	FooterStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	ErrorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	UnStyle          = lipgloss.NewStyle()

	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)
)

// RowStyler returns a StyleFunc that highlights the selected row
// and right aligns the columns flagged as amounts.
func RowStyler(selectedRow int, amounts []bool) func(row, col int) lipgloss.Style {
	return func(row, col int) lipgloss.Style {
		st := UnStyle
		if row == selectedRow {
			st = HlRowStyle
		}
		if col < len(amounts) && amounts[col] {
			st = st.Align(lipgloss.Right)
		}
		return st
	}
}

// StyleTable applies consistent table styling for borders and separators
func StyleTable(tbl *table.Table) {
	tbl.Border(lipgloss.Border{
		Top:         "─",
		Middle:      "─",
		MiddleLeft:  "─",
		MiddleRight: "─",
	}).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderStyle(TableBorderStyle)
}
