// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Database errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Input errors.
	ErrInvalidDateRange   = errors.New("start date must not be after end date")
	ErrInvalidFilterInput = errors.New("invalid filter input")
	ErrInvalidRecord      = errors.New("invalid record")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// TerminalError reports a failure to drive the terminal: entering or leaving
// the alternate screen, drawing a frame, or reading input.
type TerminalError struct {
	Err error
	Op  string
}

func (e *TerminalError) Error() string {
	return fmt.Sprintf("terminal %s failed: %v", e.Op, e.Err)
}

func (e *TerminalError) Unwrap() error {
	return e.Err
}

// NewTerminalError wraps err as a terminal I/O failure during op.
func NewTerminalError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &TerminalError{Op: op, Err: err}
}

// IsTerminalError reports whether err came from the terminal layer.
func IsTerminalError(err error) bool {
	var termErr *TerminalError
	return errors.As(err, &termErr)
}
