package browse

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/fino/internal/common"
	"github.com/Veraticus/fino/internal/model"
)

// isoDateLen is the length of a YYYY-MM-DD date.
const isoDateLen = len(model.DateLayout)

// ParseDateRange parses filter text of the form "A..B", "A,B" or "A-B" where
// A and B are YYYY-MM-DD dates. Either side may be empty to leave that bound
// open. Errors wrap common.ErrInvalidFilterInput.
func ParseDateRange(input string) (from, to *time.Time, err error) {
	s := strings.TrimSpace(input)

	left, right, ok := strings.Cut(s, "..")
	if !ok {
		left, right, ok = strings.Cut(s, ",")
	}
	if !ok {
		left, right, ok = splitDashRange(s)
	}
	if !ok {
		return nil, nil, fmt.Errorf("%w: invalid date range, use YYYY-MM-DD..YYYY-MM-DD", common.ErrInvalidFilterInput)
	}

	if from, err = parseBound(left); err != nil {
		return nil, nil, err
	}
	if to, err = parseBound(right); err != nil {
		return nil, nil, err
	}

	if from != nil && to != nil && from.After(*to) {
		return nil, nil, fmt.Errorf("%w: invalid range, start date must be <= end date", common.ErrInvalidFilterInput)
	}
	return from, to, nil
}

// FormatDateRange renders bounds back into the "from..to" form accepted by
// ParseDateRange. Both bounds open yields the empty string.
func FormatDateRange(from, to *time.Time) string {
	if from == nil && to == nil {
		return ""
	}
	return formatBound(from) + ".." + formatBound(to)
}

// splitDashRange splits at the last '-' that leaves a date-length string on
// both sides, e.g. 2025-01-01-2025-01-31.
func splitDashRange(s string) (string, string, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] != '-' {
			continue
		}
		a, b := s[:i], s[i+1:]
		if len(strings.TrimSpace(a)) >= isoDateLen && len(strings.TrimSpace(b)) >= isoDateLen {
			return a, b, true
		}
	}
	return "", "", false
}

func parseBound(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date '%s', use YYYY-MM-DD", common.ErrInvalidFilterInput, s)
	}
	return &d, nil
}

func formatBound(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(model.DateLayout)
}
