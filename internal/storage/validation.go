// Package storage provides the SQLite-backed record source for fino.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Veraticus/fino/internal/common"
	"github.com/Veraticus/fino/internal/model"
)

// Limits enforced on stored text fields.
const (
	MaxDescriptionLength = 255
	MaxCategoryLength    = 50
)

// Validation errors.
var (
	ErrNilContext  = errors.New("context cannot be nil")
	ErrEmptyString = errors.New("string parameter cannot be empty")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// ValidateRecord checks the fields every stored record must carry.
func ValidateRecord(r model.Record) error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: missing ID", common.ErrInvalidRecord)
	}
	if r.Date.IsZero() {
		return fmt.Errorf("%w: missing date", common.ErrInvalidRecord)
	}
	if r.Kind != model.KindIncome && r.Kind != model.KindExpense {
		return fmt.Errorf("%w: invalid kind %q", common.ErrInvalidRecord, r.Kind)
	}
	if utf8.RuneCountInString(r.Description) > MaxDescriptionLength {
		return fmt.Errorf("%w: description longer than %d characters", common.ErrInvalidRecord, MaxDescriptionLength)
	}
	if strings.TrimSpace(r.Category) == "" {
		return fmt.Errorf("%w: missing category", common.ErrInvalidRecord)
	}
	if utf8.RuneCountInString(r.Category) > MaxCategoryLength {
		return fmt.Errorf("%w: category longer than %d characters", common.ErrInvalidRecord, MaxCategoryLength)
	}
	return nil
}
