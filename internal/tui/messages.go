package tui

import (
	"time"

	"github.com/Veraticus/fino/internal/model"
)

// tickMsg forces a periodic full redraw.
type tickMsg time.Time

// recordsLoadedMsg carries a fresh snapshot from the record source.
type recordsLoadedMsg struct {
	err     error
	records []model.Record
}
