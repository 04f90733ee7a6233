package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Normal      lipgloss.Style
	Bold        lipgloss.Style
	Label       lipgloss.Style
	Selected    lipgloss.Style
	TableHeader lipgloss.Style
	Header      lipgloss.Style
	Footer      lipgloss.Style
	BorderedBox lipgloss.Style
	Modal       lipgloss.Style
	StatusError lipgloss.Style
	StatusInfo  lipgloss.Style
	Income      lipgloss.Style
	Expense     lipgloss.Style
	Primary     lipgloss.Color
	Muted       lipgloss.Color
	Border      lipgloss.Color
	Foreground  lipgloss.Color
	Error       lipgloss.Color
	Success     lipgloss.Color
}

// Default is the default theme.
var Default = newTheme(palette{
	primary:    "#7c3aed",
	foreground: "#fafafa",
	subtle:     "#a3a3a3",
	muted:      "#737373",
	border:     "#404040",
	selectedFg: "#fafafa",
	success:    "#10b981",
	errorFg:    "#ef4444",
	info:       "#3b82f6",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(palette{
	primary:    "#cba6f7",
	foreground: "#cdd6f4",
	subtle:     "#a6adc8",
	muted:      "#6c7086",
	border:     "#45475a",
	selectedFg: "#1e1e2e",
	success:    "#a6e3a1",
	errorFg:    "#f38ba8",
	info:       "#89dceb",
})

// Names lists the themes GetTheme understands.
var Names = []string{"default", "catppuccin-mocha"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

type palette struct {
	primary    string
	foreground string
	subtle     string
	muted      string
	border     string
	selectedFg string
	success    string
	errorFg    string
	info       string
}

func newTheme(p palette) Theme {
	fg := lipgloss.Color(p.foreground)
	border := lipgloss.Color(p.border)

	return Theme{
		Primary:    lipgloss.Color(p.primary),
		Muted:      lipgloss.Color(p.muted),
		Border:     border,
		Foreground: fg,
		Error:      lipgloss.Color(p.errorFg),
		Success:    lipgloss.Color(p.success),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.primary)),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.subtle)),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.subtle)),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(p.primary)).
			Foreground(lipgloss.Color(p.selectedFg)).
			Bold(true),
		TableHeader: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(border).
			BorderBottom(true).
			Bold(true).
			Padding(0, 1),
		Header: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)).
			Padding(0, 1),
		BorderedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.primary)).
			Padding(1, 2),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.errorFg)).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.info)).
			Bold(true),
		Income: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.success)),
		Expense: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.errorFg)),
	}
}
