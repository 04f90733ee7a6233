// Package browse holds the state machine behind the interactive transaction
// browser. Every transition is a value-receiver method that returns the next
// State, leaving the receiver untouched, so the host can render any snapshot
// without coordinating with updates.
package browse

import (
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/fino/internal/model"
)

// DefaultPageSize is used until the host reports the visible row count.
const DefaultPageSize = 10

// Mode is the top-level mode of the browser.
type Mode int

// Browser modes.
const (
	ModeList Mode = iota
	ModeDetails
	ModeInput
)

// InputKind selects which filter an Input mode edits.
type InputKind int

// Input kinds.
const (
	InputCategory InputKind = iota
	InputDateRange
)

// Prompt returns the label shown above the input field.
func (k InputKind) Prompt() string {
	if k == InputDateRange {
		return "Date range (YYYY-MM-DD..YYYY-MM-DD)"
	}
	return "Category"
}

// SortOrder is the direction records are listed by date.
type SortOrder int

// Sort orders.
const (
	DateDesc SortOrder = iota
	DateAsc
)

func (o SortOrder) String() string {
	if o == DateAsc {
		return "date ↑"
	}
	return "date ↓"
}

// Filter is the set of active predicates; zero values match everything.
type Filter struct {
	From     *time.Time
	To       *time.Time
	Kind     model.Kind
	Category string
}

// Active reports whether any predicate is set.
func (f Filter) Active() bool {
	return f.Kind != "" || f.Category != "" || f.From != nil || f.To != nil
}

// Matches reports whether r satisfies every active predicate.
func (f Filter) Matches(r model.Record) bool {
	if f.Kind != "" && r.Kind != f.Kind {
		return false
	}
	if f.Category != "" && !strings.EqualFold(r.Category, f.Category) {
		return false
	}
	day := model.Day(r.Date)
	if f.From != nil && day.Before(model.Day(*f.From)) {
		return false
	}
	if f.To != nil && day.After(model.Day(*f.To)) {
		return false
	}
	return true
}

// State is one snapshot of the browser.
type State struct {
	inputErr  error
	details   *model.Record
	records   []model.Record
	visible   []int
	filter    Filter
	input     string
	selected  int
	pageSize  int
	mode      Mode
	inputKind InputKind
	sort      SortOrder
	hasSel    bool
}

// New builds the initial List state over records, newest first, with the
// first row selected.
func New(records []model.Record) State {
	s := State{
		records:  records,
		pageSize: DefaultPageSize,
		sort:     DateDesc,
		mode:     ModeList,
	}
	return s.recompute()
}

// Mode returns the current mode.
func (s State) Mode() Mode { return s.mode }

// InputKind returns the filter being edited in ModeInput.
func (s State) InputKind() InputKind { return s.inputKind }

// Input returns the input buffer.
func (s State) Input() string { return s.input }

// InputError returns the last rejected commit, if any.
func (s State) InputError() error { return s.inputErr }

// Filter returns the active filter.
func (s State) Filter() Filter { return s.filter }

// SortOrder returns the current sort direction.
func (s State) SortOrder() SortOrder { return s.sort }

// PageSize returns the rows moved by PageUp and PageDown.
func (s State) PageSize() int { return s.pageSize }

// Records returns the full snapshot. Callers must not modify it.
func (s State) Records() []model.Record { return s.records }

// Len returns the number of visible records.
func (s State) Len() int { return len(s.visible) }

// Visible returns a copy of the visible record indices in display order.
func (s State) Visible() []int {
	out := make([]int, len(s.visible))
	copy(out, s.visible)
	return out
}

// VisibleRecord returns the record shown at position i.
func (s State) VisibleRecord(i int) model.Record {
	return s.records[s.visible[i]]
}

// Selected returns the selected position within the visible list.
func (s State) Selected() (int, bool) {
	return s.selected, s.hasSel
}

// SelectedRecord returns the record under the cursor.
func (s State) SelectedRecord() (model.Record, bool) {
	if !s.hasSel {
		return model.Record{}, false
	}
	return s.VisibleRecord(s.selected), true
}

// Details returns the record snapshotted by OpenDetails.
func (s State) Details() (model.Record, bool) {
	if s.details == nil {
		return model.Record{}, false
	}
	return *s.details, true
}

// MoveSelection moves the cursor by delta rows, clamped to the list.
func (s State) MoveSelection(delta int) State {
	if len(s.visible) == 0 {
		s.selected, s.hasSel = 0, false
		return s
	}
	s.selected = clamp(s.selected+delta, 0, len(s.visible)-1)
	s.hasSel = true
	return s
}

// PageUp moves the cursor up one page.
func (s State) PageUp() State { return s.MoveSelection(-s.pageSize) }

// PageDown moves the cursor down one page.
func (s State) PageDown() State { return s.MoveSelection(s.pageSize) }

// Home selects the first row.
func (s State) Home() State { return s.MoveSelection(-len(s.visible)) }

// End selects the last row.
func (s State) End() State { return s.MoveSelection(len(s.visible)) }

// SetPageSize records how many rows the host can show, minimum 1.
func (s State) SetPageSize(n int) State {
	s.pageSize = max(1, n)
	return s
}

// OpenDetails snapshots the selected record and enters ModeDetails. It does
// nothing when no row is selected.
func (s State) OpenDetails() State {
	r, ok := s.SelectedRecord()
	if !ok {
		return s
	}
	s.details = &r
	s.mode = ModeDetails
	return s
}

// CloseDetails drops the snapshot and returns to ModeList.
func (s State) CloseDetails() State {
	s.details = nil
	s.mode = ModeList
	return s
}

// StartInput enters ModeInput for kind, pre-filled with the active filter so
// it can be edited rather than retyped.
func (s State) StartInput(kind InputKind) State {
	s.mode = ModeInput
	s.inputKind = kind
	s.inputErr = nil

	switch kind {
	case InputCategory:
		s.input = s.filter.Category
	case InputDateRange:
		s.input = FormatDateRange(s.filter.From, s.filter.To)
	}
	return s
}

// SetInput replaces the input buffer.
func (s State) SetInput(text string) State {
	s.input = text
	return s
}

// CancelInput discards the buffer and returns to ModeList with filters
// unchanged.
func (s State) CancelInput() State {
	s.mode = ModeList
	s.input = ""
	s.inputErr = nil
	return s
}

// CommitInput applies the buffer as the filter being edited. Empty input
// clears that filter. Invalid input stays in ModeInput with InputError set and
// leaves the filters as they were.
func (s State) CommitInput() State {
	if s.mode != ModeInput {
		return s
	}
	raw := strings.TrimSpace(s.input)

	switch s.inputKind {
	case InputCategory:
		s.filter.Category = raw
	case InputDateRange:
		from, to, err := ParseDateRange(raw)
		if raw != "" && err != nil {
			s.inputErr = err
			return s
		}
		s.filter.From, s.filter.To = from, to
	}

	s.mode = ModeList
	s.input = ""
	s.inputErr = nil
	return s.recompute()
}

// CycleKindFilter rotates the kind filter through all, expense and income.
func (s State) CycleKindFilter() State {
	switch s.filter.Kind {
	case "":
		s.filter.Kind = model.KindExpense
	case model.KindExpense:
		s.filter.Kind = model.KindIncome
	default:
		s.filter.Kind = ""
	}
	return s.recompute()
}

// ToggleSort flips between newest-first and oldest-first.
func (s State) ToggleSort() State {
	if s.sort == DateDesc {
		s.sort = DateAsc
	} else {
		s.sort = DateDesc
	}
	return s.recompute()
}

// ClearFilters resets every filter to match all records.
func (s State) ClearFilters() State {
	s.filter = Filter{}
	return s.recompute()
}

// Refresh swaps in a new record snapshot and reapplies filters, sort and
// selection clamping.
func (s State) Refresh(records []model.Record) State {
	s.records = records
	return s.recompute()
}

// recompute rebuilds the visible indices from scratch and clamps the cursor.
func (s State) recompute() State {
	visible := make([]int, 0, len(s.records))
	for i, r := range s.records {
		if s.filter.Matches(r) {
			visible = append(visible, i)
		}
	}

	records, asc := s.records, s.sort == DateAsc
	sort.SliceStable(visible, func(i, j int) bool {
		a, b := records[visible[i]], records[visible[j]]
		if !a.Date.Equal(b.Date) {
			if asc {
				return a.Date.Before(b.Date)
			}
			return a.Date.After(b.Date)
		}
		if asc {
			return a.ID < b.ID
		}
		return a.ID > b.ID
	})
	s.visible = visible

	if len(visible) == 0 {
		s.selected, s.hasSel = 0, false
		return s
	}
	if !s.hasSel {
		s.selected = 0
	}
	s.selected = clamp(s.selected, 0, len(visible)-1)
	s.hasSel = true
	return s
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
