package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// RenderTable renders rows under headers with a rounded border in the
// active theme. Rows whose index is in errorRows use the error color.
func RenderTable(headers []string, rows [][]string, errorRows map[int]bool) string {
	colors := GetCurrentTheme().Table
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(colors.Header)
	cell := lipgloss.NewStyle().Padding(0, 1).Foreground(colors.Cell)
	failed := cell.Foreground(colors.Error)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colors.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case errorRows[row]:
				return failed
			default:
				return cell
			}
		})
	return t.String()
}
