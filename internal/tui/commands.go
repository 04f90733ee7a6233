package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/fino/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// refreshTimeout bounds a single refresh query.
const refreshTimeout = 10 * time.Second

// tick schedules the next redraw.
func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadRecords re-reads every record from source.
func loadRecords(ctx context.Context, source service.RecordSource) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
		defer cancel()

		records, err := source.GetAllRecords(ctx)
		if err != nil {
			return recordsLoadedMsg{err: fmt.Errorf("failed to refresh records: %w", err)}
		}
		return recordsLoadedMsg{records: records}
	}
}
