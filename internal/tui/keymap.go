package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// List actions
	Details        key.Binding
	CategoryFilter key.Binding
	DateFilter     key.Binding
	TypeFilter     key.Binding
	ToggleSort     key.Binding
	Refresh        key.Binding
	ClearFilters   key.Binding

	// Details
	Back key.Binding

	// Input
	Commit key.Binding
	Cancel key.Binding

	// Application
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home/g", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End/G", "last"),
		),

		// List actions
		Details: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "details"),
		),
		CategoryFilter: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "category"),
		),
		DateFilter: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "date range"),
		),
		TypeFilter: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "type"),
		),
		ToggleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear filters"),
		),

		// Details
		Back: key.NewBinding(
			key.WithKeys("esc", "q", "b"),
			key.WithHelp("Esc/q/b", "back"),
		),

		// Input
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "apply"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c", "ctrl+q"),
			key.WithHelp("Esc", "cancel"),
		),

		// Application
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q/Esc", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Details, k.CategoryFilter, k.DateFilter,
		k.TypeFilter, k.ToggleSort, k.ClearFilters, k.Refresh, k.Quit,
	}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Details, k.CategoryFilter, k.DateFilter, k.TypeFilter},
		{k.ToggleSort, k.ClearFilters, k.Refresh, k.Quit},
	}
}

// ModeHelp adapts a fixed binding list to help.KeyMap.
type ModeHelp []key.Binding

func (h ModeHelp) ShortHelp() []key.Binding  { return h }
func (h ModeHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

// DetailsHelp returns the bindings shown while the details modal is open.
func (k KeyMap) DetailsHelp() ModeHelp {
	return ModeHelp{k.Back}
}

// InputHelp returns the bindings shown while editing a filter.
func (k KeyMap) InputHelp() ModeHelp {
	return ModeHelp{k.Commit, k.Cancel}
}

// ReportHelp returns the bindings shown by the report view.
func (k KeyMap) ReportHelp() ModeHelp {
	return ModeHelp{k.Quit}
}
