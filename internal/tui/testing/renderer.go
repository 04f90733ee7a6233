// Package testing provides test utilities for TUI models.
package testing

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// TestRenderer drives a Bubble Tea model without a terminal, recording the
// view after every update.
type TestRenderer struct {
	// Output contains the last rendered view
	Output string

	// Commands contains all non-nil commands returned by Update calls
	Commands []tea.Cmd

	// UpdateCount tracks how many times Update was called
	UpdateCount int
}

// NewTestRenderer creates a new test renderer.
func NewTestRenderer() *TestRenderer {
	return &TestRenderer{}
}

// Update sends a message to the model and captures the result.
func (r *TestRenderer) Update(model tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	r.UpdateCount++

	next, cmd := model.Update(msg)
	if cmd != nil {
		r.Commands = append(r.Commands, cmd)
	}
	r.Output = next.View()

	return next, cmd
}

// Send applies msgs in order and returns the resulting model.
func (r *TestRenderer) Send(model tea.Model, msgs ...tea.Msg) tea.Model {
	for _, msg := range msgs {
		model, _ = r.Update(model, msg)
	}
	return model
}

// LastCommand returns the most recent command, or nil if no commands were generated.
func (r *TestRenderer) LastCommand() tea.Cmd {
	if len(r.Commands) == 0 {
		return nil
	}
	return r.Commands[len(r.Commands)-1]
}

// Plain returns the last output with ANSI codes removed.
func (r *TestRenderer) Plain() string {
	return StripANSI(r.Output)
}

// Lines returns the plain output split by newlines.
func (r *TestRenderer) Lines() []string {
	return strings.Split(r.Plain(), "\n")
}
