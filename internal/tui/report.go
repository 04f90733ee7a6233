package tui

import (
	"github.com/Veraticus/fino/internal/report"
	"github.com/Veraticus/fino/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const minChartHeight = 6

// ReportModel displays a built report until the user quits.
type ReportModel struct {
	data     *report.Data
	theme    themes.Theme
	keymap   KeyMap
	help     help.Model
	width    int
	height   int
	quitting bool
}

// NewReportModel creates the report view for data.
func NewReportModel(data *report.Data, opts ...Option) ReportModel {
	cfg := newConfig(opts)
	m := ReportModel{
		data:   data,
		theme:  cfg.Theme,
		keymap: DefaultKeyMap(),
		help:   help.New(),
		width:  cfg.Width,
		height: cfg.Height,
	}
	m.help.Width = cfg.Width
	return m
}

// Init starts the redraw ticker.
func (m ReportModel) Init() tea.Cmd {
	return tick(ReportRedrawInterval)
}

// Update handles messages and updates the model.
func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tick(ReportRedrawInterval)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.Quit) || key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the UI.
func (m ReportModel) View() string {
	if m.quitting {
		return ""
	}

	title := m.theme.Title.Render("FINO Report") + "  " + m.theme.Subtitle.Render(m.data.Title())
	footer := m.theme.Footer.Render(m.help.View(m.keymap.ReportHelp()))

	available := max(2*minChartHeight, m.height-lipgloss.Height(title)-lipgloss.Height(footer))
	chartHeight := max(minChartHeight, available*3/5)
	bottomHeight := max(minChartHeight, available-chartHeight)

	pieWidth := m.width / 2
	tableWidth := m.width - pieWidth

	chart := m.box("Spending by period", m.width, chartHeight,
		report.RenderChart(m.data, innerSize(m.width), innerSize(chartHeight)-1))
	pie := m.box("Share by category", pieWidth, bottomHeight,
		report.RenderPie(m.data, innerSize(pieWidth), innerSize(bottomHeight)-1))
	categories := m.box("Categories", tableWidth, bottomHeight,
		report.RenderCategoryTable(m.data))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		chart,
		lipgloss.JoinHorizontal(lipgloss.Top, pie, categories),
		footer,
	)
}

// box draws content inside a titled border of the given outer size.
func (m ReportModel) box(title string, width, height int, content string) string {
	body := lipgloss.JoinVertical(lipgloss.Left, m.theme.Label.Render(title), content)
	return m.theme.BorderedBox.
		Width(innerSize(width)).
		Height(innerSize(height)).
		MaxHeight(height).
		Render(body)
}

func innerSize(outer int) int {
	return max(1, outer-2)
}
