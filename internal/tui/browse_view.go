package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/fino/internal/browse"
	"github.com/Veraticus/fino/internal/common"
	"github.com/Veraticus/fino/internal/model"
	"github.com/Veraticus/fino/internal/tui/themes"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const (
	maxDescriptionWidth = 42
	idWidth             = 8
	noMatchesMessage    = "No transactions match the current filters"
)

// Fixed column widths; Description takes what is left.
var fixedColumns = []table.Column{
	{Title: "Date", Width: 10},
	{Title: "Amount", Width: 12},
	{Title: "Type", Width: 8},
	{Title: "Category", Width: 16},
	{Title: "Id", Width: idWidth},
}

func newRecordTable(theme themes.Theme) table.Model {
	t := table.New(
		table.WithColumns(recordColumns(80)),
		table.WithFocused(true),
	)

	s := table.DefaultStyles()
	s.Header = theme.TableHeader
	s.Selected = theme.Selected
	t.SetStyles(s)
	return t
}

func recordColumns(width int) []table.Column {
	used := 0
	for _, c := range fixedColumns {
		used += c.Width + 2 // cell padding
	}
	descWidth := max(12, min(maxDescriptionWidth, width-used-2))

	return []table.Column{
		fixedColumns[0],
		{Title: "Description", Width: descWidth},
		fixedColumns[1],
		fixedColumns[2],
		fixedColumns[3],
		fixedColumns[4],
	}
}

func recordRow(r model.Record) table.Row {
	return table.Row{
		r.Date.Format(model.DateLayout),
		truncateDescription(r.Description),
		r.Amount.StringFixed(2),
		string(r.Kind),
		r.Category,
		shortID(r.ID),
	}
}

func truncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= maxDescriptionWidth {
		return s
	}
	return string(runes[:maxDescriptionWidth-3]) + "..."
}

func shortID(id string) string {
	if len(id) <= idWidth {
		return id
	}
	return id[:idWidth]
}

// View renders the UI.
func (m BrowseModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state.Mode() {
	case browse.ModeDetails:
		return m.renderOverlay(m.renderDetails(), m.help.View(m.keymap.DetailsHelp()))
	case browse.ModeInput:
		return m.renderOverlay(m.renderInput(), m.help.View(m.keymap.InputHelp()))
	default:
		return lipgloss.JoinVertical(lipgloss.Left,
			m.renderHeader(),
			m.renderTable(),
			m.renderFooter(),
		)
	}
}

func (m BrowseModel) renderHeader() string {
	f := m.state.Filter()

	category := "all"
	if f.Category != "" {
		category = f.Category
	}
	kind := "all"
	if f.Kind != "" {
		kind = string(f.Kind)
	}
	dates := "all"
	if f.From != nil || f.To != nil {
		dates = browse.FormatDateRange(f.From, f.To)
	}

	summary := fmt.Sprintf("Sort: %s | Category: %s | Type: %s | Date: %s | Rows: %d/%d",
		m.state.SortOrder(), category, kind, dates, m.state.Len(), len(m.state.Records()))

	line := m.theme.Title.Render("FINO Browse") + "  " + m.theme.Subtitle.Render(summary)
	return m.theme.Header.Width(max(0, m.width-2)).Render(line)
}

func (m BrowseModel) renderTable() string {
	if m.state.Len() == 0 {
		body := m.theme.StatusInfo.Render(noMatchesMessage)
		return lipgloss.Place(m.width, m.state.PageSize()+tableHeaderHeight,
			lipgloss.Center, lipgloss.Center, body)
	}

	end := min(m.offset+m.state.PageSize(), m.state.Len())
	rows := make([]table.Row, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		rows = append(rows, recordRow(m.state.VisibleRecord(i)))
	}

	t := m.table
	t.SetRows(rows)
	if selected, ok := m.state.Selected(); ok {
		t.SetCursor(selected - m.offset)
	}
	return t.View()
}

func (m BrowseModel) renderFooter() string {
	status := ""
	if r, ok := m.state.SelectedRecord(); ok {
		status = fmt.Sprintf("%s  %s  %s", r.Date.Format(model.DateLayout), r.Category, r.Amount.StringFixed(2))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Footer.Render(status),
		m.theme.Footer.Render(m.help.View(m.keymap)),
	)
}

// renderOverlay centers a modal on the screen above a help line.
func (m BrowseModel) renderOverlay(modal, helpLine string) string {
	body := lipgloss.Place(m.width, max(1, m.height-1), lipgloss.Center, lipgloss.Center, modal)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.theme.Footer.Render(helpLine))
}

func (m BrowseModel) renderDetails() string {
	r, ok := m.state.Details()
	if !ok {
		return ""
	}

	amountStyle := m.theme.Expense
	if r.Kind == model.KindIncome {
		amountStyle = m.theme.Income
	}

	fields := []struct {
		label string
		value string
	}{
		{"Id", r.ID},
		{"Date", r.Date.Format(model.DateLayout)},
		{"Description", r.Description},
		{"Amount", amountStyle.Render(r.Amount.StringFixed(2))},
		{"Type", string(r.Kind)},
		{"Category", r.Category},
	}

	lines := []string{m.theme.Title.Render("Transaction Details"), ""}
	for _, f := range fields {
		lines = append(lines, m.theme.Label.Render(fmt.Sprintf("%-12s", f.label))+" "+f.value)
	}
	return m.theme.Modal.Render(strings.Join(lines, "\n"))
}

// inputErrorMessage drops the sentinel prefix from filter errors.
func inputErrorMessage(err error) string {
	return strings.TrimPrefix(err.Error(), common.ErrInvalidFilterInput.Error()+": ")
}

func (m BrowseModel) renderInput() string {
	lines := []string{
		m.theme.Title.Render("Filter: " + m.state.InputKind().Prompt()),
		"",
		m.input.View(),
	}
	if err := m.state.InputError(); err != nil {
		lines = append(lines, "", m.theme.StatusError.Render(inputErrorMessage(err)))
	}
	lines = append(lines, "", m.theme.Subtitle.Render("Leave empty to clear this filter"))

	width := max(40, min(60, m.width-4))
	return m.theme.Modal.Width(width).Render(strings.Join(lines, "\n"))
}
