package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Veraticus/fino/internal/common"
	"github.com/Veraticus/fino/internal/model"
	"github.com/Veraticus/fino/internal/report"
	"github.com/Veraticus/fino/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// RunBrowse runs the interactive transaction browser over records until the
// user quits. source is re-read on refresh; a refresh failure ends the
// browser and is returned.
func RunBrowse(ctx context.Context, records []model.Record, source service.RecordSource, opts ...Option) error {
	cfg := newConfig(opts)
	m := NewBrowseModel(ctx, records, source, opts...)

	final, err := run(ctx, cfg, m)
	if err != nil {
		return err
	}
	if bm, ok := final.(BrowseModel); ok && bm.Err() != nil {
		return bm.Err()
	}
	return nil
}

// RunReport builds the expense report for [start, end] from records and
// displays it until the user quits. The bucket width is chosen automatically
// unless bucketDays is positive.
func RunReport(ctx context.Context, records []model.Record, start, end time.Time, bucketDays int, opts ...Option) error {
	data, err := report.Build(records, start, end, bucketDays)
	if err != nil {
		return err
	}

	cfg := newConfig(opts)
	_, err = run(ctx, cfg, NewReportModel(data, opts...))
	return err
}

// run owns the terminal for the lifetime of one program and restores it on
// every exit path.
func run(ctx context.Context, cfg Config, m tea.Model) (tea.Model, error) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.AltScreen {
		defer cleanupTerminal()
	}

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if cfg.Input != nil {
		programOpts = append(programOpts, tea.WithInput(cfg.Input))
	}
	if cfg.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(cfg.Output))
	}

	final, err := tea.NewProgram(m, programOpts...).Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return final, fmt.Errorf("interrupted: %w", ctx.Err())
	}
	if err != nil {
		return final, common.NewTerminalError("run", fmt.Errorf("TUI error: %w", err))
	}
	return final, nil
}

// cleanupTerminal restores the terminal in case the program exited without
// doing so. Errors are ignored; this is best-effort.
func cleanupTerminal() {
	_, _ = os.Stdout.Write([]byte("\033[?1049l")) // Exit alternate screen
	_, _ = os.Stdout.Write([]byte("\033[?25h"))   // Show cursor
	_, _ = os.Stdout.Write([]byte("\033[m"))      // Reset colors
}
