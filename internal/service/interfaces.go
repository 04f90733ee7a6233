// Package service defines the interfaces shared between fino's layers.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/fino/internal/model"
	"github.com/shopspring/decimal"
)

// RecordSource supplies immutable snapshots of ledger records.
type RecordSource interface {
	// GetAllRecords returns every record, newest first.
	GetAllRecords(ctx context.Context) ([]model.Record, error)
	// GetExpenseRecordsInRange returns expense records dated within [start, end].
	GetExpenseRecordsInRange(ctx context.Context, start, end time.Time) ([]model.Record, error)
}

// Storage defines the contract for the persistence layer.
type Storage interface {
	RecordSource

	// Record operations
	AddRecord(ctx context.Context, record model.Record) error
	AddRecords(ctx context.Context, records []model.Record) (int, error)
	RemoveRecord(ctx context.Context, id string) error
	SearchByCategory(ctx context.Context, category string) ([]model.Record, error)
	GetRecordCount(ctx context.Context) (int, error)

	// Budget operations
	SetBudget(ctx context.Context, category string, amount decimal.Decimal) error
	GetBudget(ctx context.Context, category string) (*model.Budget, error)
	ListBudgets(ctx context.Context) ([]model.Budget, error)
	DeleteBudget(ctx context.Context, category string) error

	// Maintenance
	Migrate(ctx context.Context) error
	Close() error
}
