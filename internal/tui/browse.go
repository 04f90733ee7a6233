package tui

import (
	"context"

	"github.com/Veraticus/fino/internal/browse"
	"github.com/Veraticus/fino/internal/model"
	"github.com/Veraticus/fino/internal/service"
	"github.com/Veraticus/fino/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Layout rows reserved around the table body.
const (
	headerHeight      = 3 // bordered single line
	footerHeight      = 2 // status line and help
	tableHeaderHeight = 2 // titles and underline
)

// BrowseModel hosts a browse.State in a bubbletea program. All state changes
// go through browse.State transitions; the model only translates keys and
// renders snapshots.
type BrowseModel struct {
	ctx      context.Context
	err      error
	source   service.RecordSource
	theme    themes.Theme
	keymap   KeyMap
	help     help.Model
	table    table.Model
	input    textinput.Model
	state    browse.State
	width    int
	height   int
	offset   int
	quitting bool
}

// NewBrowseModel creates the browser over an initial snapshot. source is used
// for refreshes.
func NewBrowseModel(ctx context.Context, records []model.Record, source service.RecordSource, opts ...Option) BrowseModel {
	cfg := newConfig(opts)

	input := textinput.New()
	input.CharLimit = 64
	input.Prompt = "> "

	m := BrowseModel{
		ctx:    ctx,
		source: source,
		theme:  cfg.Theme,
		keymap: DefaultKeyMap(),
		help:   help.New(),
		input:  input,
		table:  newRecordTable(cfg.Theme),
		state:  browse.New(records),
	}
	m.resize(cfg.Width, cfg.Height)
	return m
}

// State returns the current browse state.
func (m BrowseModel) State() browse.State {
	return m.state
}

// Err returns the error that ended the program, if any.
func (m BrowseModel) Err() error {
	return m.err
}

// Init starts the redraw ticker.
func (m BrowseModel) Init() tea.Cmd {
	return tick(BrowseRedrawInterval)
}

// Update handles messages and updates the model.
func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tick(BrowseRedrawInterval)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case recordsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.quitting = true
			return m, tea.Quit
		}
		m.state = m.state.Refresh(msg.records)
		m.syncOffset()
		return m, nil

	case tea.KeyMsg:
		switch m.state.Mode() {
		case browse.ModeInput:
			return m.updateInput(msg)
		case browse.ModeDetails:
			return m.updateDetails(msg)
		default:
			return m.updateList(msg)
		}
	}

	return m, nil
}

func (m BrowseModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit), key.Matches(msg, m.keymap.ForceQuit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Up):
		m.state = m.state.MoveSelection(-1)
	case key.Matches(msg, m.keymap.Down):
		m.state = m.state.MoveSelection(1)
	case key.Matches(msg, m.keymap.PageUp):
		m.state = m.state.PageUp()
	case key.Matches(msg, m.keymap.PageDown):
		m.state = m.state.PageDown()
	case key.Matches(msg, m.keymap.Home):
		m.state = m.state.Home()
	case key.Matches(msg, m.keymap.End):
		m.state = m.state.End()
	case key.Matches(msg, m.keymap.Details):
		m.state = m.state.OpenDetails()
	case key.Matches(msg, m.keymap.CategoryFilter):
		return m.startInput(browse.InputCategory)
	case key.Matches(msg, m.keymap.DateFilter):
		return m.startInput(browse.InputDateRange)
	case key.Matches(msg, m.keymap.TypeFilter):
		m.state = m.state.CycleKindFilter()
	case key.Matches(msg, m.keymap.ToggleSort):
		m.state = m.state.ToggleSort()
	case key.Matches(msg, m.keymap.ClearFilters):
		m.state = m.state.ClearFilters()
	case key.Matches(msg, m.keymap.Refresh):
		if m.source != nil {
			return m, loadRecords(m.ctx, m.source)
		}
	}

	m.syncOffset()
	return m, nil
}

func (m BrowseModel) updateDetails(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.Back) {
		m.state = m.state.CloseDetails()
	}
	return m, nil
}

func (m BrowseModel) startInput(kind browse.InputKind) (tea.Model, tea.Cmd) {
	m.state = m.state.StartInput(kind)
	m.input.SetValue(m.state.Input())
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m BrowseModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Cancel):
		m.state = m.state.CancelInput()
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keymap.Commit):
		m.state = m.state.SetInput(m.input.Value()).CommitInput()
		if m.state.Mode() != browse.ModeInput {
			m.input.Blur()
			m.syncOffset()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.state = m.state.SetInput(m.input.Value())
	return m, cmd
}

// resize recomputes the table size and reports the visible row count to the
// state as its page size.
func (m *BrowseModel) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width

	rows := max(1, height-headerHeight-footerHeight-tableHeaderHeight)
	m.state = m.state.SetPageSize(rows)
	m.table.SetColumns(recordColumns(width))
	m.table.SetWidth(width)
	m.table.SetHeight(rows + tableHeaderHeight)
	m.syncOffset()
}

// syncOffset keeps the selected row inside the visible window.
func (m *BrowseModel) syncOffset() {
	selected, ok := m.state.Selected()
	if !ok {
		m.offset = 0
		return
	}
	m.offset = scrollOffset(m.offset, selected, m.state.PageSize(), m.state.Len())
}

// scrollOffset returns the first visible row so that selected stays within a
// window of pageSize rows, moving the window as little as possible.
func scrollOffset(offset, selected, pageSize, total int) int {
	if selected < offset {
		offset = selected
	}
	if selected >= offset+pageSize {
		offset = selected - pageSize + 1
	}
	return max(0, min(offset, total-pageSize))
}
