package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// vncard colors and styles
var (
	ColorBlue   = lipgloss.Color("63")
	ColorPurple = lipgloss.Color("141")
	ColorGreen  = lipgloss.Color("42")
	ColorYellow = lipgloss.Color("220")
	ColorRed    = lipgloss.Color("196")
	ColorGray   = lipgloss.Color("240")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorBlue)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	// TableHeaderStyle is used by the sources listing.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorBlue).
				PaddingRight(2)

	TableCellStyle = lipgloss.NewStyle().
			PaddingRight(2)

	IconSuccess = "✅"
	IconWarning = "⚠️ "
	IconError   = "❌"
	IconCard    = "🪪"
	IconSearch  = "🔍"
)

// Successf prints a styled success line.
func Successf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", IconSuccess, SuccessStyle.Render(fmt.Sprintf(format, args...)))
}

// Warnf prints a styled warning line.
func Warnf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s%s\n", IconWarning, WarningStyle.Render(fmt.Sprintf(format, args...)))
}

// Errorf prints a styled error line.
func Errorf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", IconError, ErrorStyle.Render(fmt.Sprintf(format, args...)))
}

// Hintf prints dimmed help text.
func Hintf(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, HelpStyle.Render(fmt.Sprintf(format, args...)))
}

// Table renders rows as aligned columns, the first row being the header.
func Table(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	lines := make([]string, 0, len(rows))
	for r, row := range rows {
		cells := make([]string, 0, len(row))
		for i, cell := range row {
			style := TableCellStyle
			if r == 0 {
				style = TableHeaderStyle
			}
			if i < len(widths) {
				style = style.Width(widths[i] + style.GetPaddingRight())
			}
			cells = append(cells, style.Render(cell))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
