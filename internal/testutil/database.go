// Package testutil provides shared fixtures for fino tests.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/fino/internal/model"
	"github.com/Veraticus/fino/internal/storage"
	"github.com/shopspring/decimal"
)

// SetupTestDB creates a migrated in-memory database seeded with records.
// The database is closed when the test finishes.
//
// Example:
//
//	store := testutil.SetupTestDB(t,
//		testutil.Expense("1", "2025-01-02", "Food", "10"),
//	)
func SetupTestDB(t *testing.T, records ...model.Record) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	if len(records) > 0 {
		if _, err := store.AddRecords(ctx, records); err != nil {
			t.Fatalf("failed to seed records: %v", err)
		}
	}

	return store
}

// Expense builds an expense record; amount is stored negated like a bank debit.
func Expense(id, date, category, amount string) model.Record {
	return newRecord(id, date, category, decimal.RequireFromString(amount).Abs().Neg(), model.KindExpense)
}

// Income builds an income record.
func Income(id, date, category, amount string) model.Record {
	return newRecord(id, date, category, decimal.RequireFromString(amount), model.KindIncome)
}

func newRecord(id, date, category string, amount decimal.Decimal, kind model.Kind) model.Record {
	d, err := model.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return model.Record{
		ID:          id,
		Date:        d,
		Description: category + " " + id,
		Amount:      amount,
		Kind:        kind,
		Category:    category,
	}
}
