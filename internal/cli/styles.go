// Package cli provides styled terminal output for fino's non-interactive commands.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the accent used for titles and prompts.
	PrimaryColor = lipgloss.Color("#89B4FA")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#A6E3A1")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#F9E2AF")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#F38BA8")
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#94E2D5")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#6C7086")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	InfoStyle    = lipgloss.NewStyle().Foreground(InfoColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)

	// BoxStyle is used for bordered summaries.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 1)

	// TableHeaderStyle is used for column headings.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(PrimaryColor)

	// IncomeStyle and ExpenseStyle color signed amounts.
	IncomeStyle  = lipgloss.NewStyle().Foreground(SuccessColor)
	ExpenseStyle = lipgloss.NewStyle().Foreground(ErrorColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	ChartIcon   = "📊"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// RenderBox renders content under a title in a rounded box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.UnsetMargins().Render(title)
	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, boxTitle, content))
}
