package tui

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/fino/internal/common"
	"github.com/Veraticus/fino/internal/model"
	"github.com/Veraticus/fino/internal/report"
	"github.com/Veraticus/fino/internal/testutil"
	tuitest "github.com/Veraticus/fino/internal/tui/testing"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

func reportData(t *testing.T, records ...model.Record) *report.Data {
	t.Helper()
	data, err := report.Build(records, mustDate(t, "2025-01-01"), mustDate(t, "2025-01-07"), 0)
	require.NoError(t, err)
	return data
}

func TestReportModel_View(t *testing.T) {
	data := reportData(t,
		testutil.Expense("1", "2025-01-02", "Food", "10"),
		testutil.Expense("2", "2025-01-05", "Rent", "50"),
	)
	m := NewReportModel(data, WithSize(100, 40))

	r := tuitest.NewTestRenderer()
	r.Send(m, tuitest.WindowSize(100, 40))
	view := r.Plain()

	assert.Contains(t, view, "FINO Report")
	assert.Contains(t, view, "01.01.2025 - 07.01.2025 (1-day buckets)")
	assert.Contains(t, view, "Spending by period")
	assert.Contains(t, view, "Share by category")
	assert.True(t, tuitest.ContainsInOrder(view, "Category", "Rent", "50.00", "Food", "10.00"))
	assert.Contains(t, view, "01-01")
}

func TestReportModel_NoExpenses(t *testing.T) {
	m := NewReportModel(reportData(t), WithSize(100, 40))

	assert.Contains(t, tuitest.StripANSI(m.View()), report.NoExpensesMessage)
}

func TestReportModel_Quit(t *testing.T) {
	for _, msg := range []tea.Msg{tuitest.KeyPress("q"), tuitest.KeyEsc()} {
		m := NewReportModel(reportData(t))

		r := tuitest.NewTestRenderer()
		next := r.Send(m, msg)

		cmd := r.LastCommand()
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.Empty(t, next.View())
	}
}

func TestReportModel_OtherKeysIgnored(t *testing.T) {
	m := NewReportModel(reportData(t))

	r := tuitest.NewTestRenderer()
	r.Send(m, tuitest.KeyPress("x"), tuitest.KeyDown())

	assert.Nil(t, r.LastCommand())
	assert.Contains(t, r.Plain(), "FINO Report")
}

func TestRunReport_InvalidRange(t *testing.T) {
	err := RunReport(context.Background(), nil, mustDate(t, "2025-02-01"), mustDate(t, "2025-01-01"), 0)
	require.ErrorIs(t, err, common.ErrInvalidDateRange)
}

func TestRunReport_QuitsOnKey(t *testing.T) {
	var out bytes.Buffer
	records := []model.Record{testutil.Expense("1", "2025-01-02", "Food", "10")}

	err := RunReport(context.Background(), records, mustDate(t, "2025-01-01"), mustDate(t, "2025-01-07"), 0,
		WithIO(strings.NewReader("q"), &out))

	require.NoError(t, err)
}

func TestRunBrowse_QuitsOnKey(t *testing.T) {
	var out bytes.Buffer
	records := browseRecords()
	store := testutil.SetupTestDB(t, records...)

	err := RunBrowse(context.Background(), records, store, WithIO(strings.NewReader("q"), &out))

	require.NoError(t, err)
}
