package storage

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/fino/internal/common"
	"github.com/Veraticus/fino/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testRecord(id, date, category, amount string, kind model.Kind) model.Record {
	d, _ := model.ParseDate(date)
	return model.Record{
		ID:          id,
		Date:        d,
		Description: "Test " + id,
		Amount:      decimal.RequireFromString(amount),
		Kind:        kind,
		Category:    category,
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.Migrate(ctx))
	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestAddRecord(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	rec := testRecord("a1", "2025-01-15", "Salary", "100.00", model.KindIncome)
	require.NoError(t, store.AddRecord(ctx, rec))

	err := store.AddRecord(ctx, rec)
	assert.ErrorIs(t, err, common.ErrDuplicateEntry)

	all, err := store.GetAllRecords(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "a1", all[0].ID)
	assert.True(t, all[0].Amount.Equal(decimal.RequireFromString("100")))
	assert.Equal(t, model.KindIncome, all[0].Kind)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), all[0].Date)
}

func TestAddRecord_Validation(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*model.Record)
	}{
		{name: "missing id", mutate: func(r *model.Record) { r.ID = "" }},
		{name: "missing date", mutate: func(r *model.Record) { r.Date = time.Time{} }},
		{name: "bad kind", mutate: func(r *model.Record) { r.Kind = "transfer" }},
		{name: "missing category", mutate: func(r *model.Record) { r.Category = " " }},
		{name: "long category", mutate: func(r *model.Record) { r.Category = string(make([]byte, 51)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testRecord("v1", "2025-01-15", "Food", "4.50", model.KindExpense)
			tt.mutate(&rec)
			assert.ErrorIs(t, store.AddRecord(ctx, rec), common.ErrInvalidRecord)
		})
	}
}

func TestAddRecords_SkipsDuplicates(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.AddRecord(ctx, testRecord("dup", "2025-01-01", "Food", "-3", model.KindExpense)))

	n, err := store.AddRecords(ctx, []model.Record{
		testRecord("dup", "2025-01-01", "Food", "-3", model.KindExpense),
		testRecord("new1", "2025-01-02", "Food", "-4", model.KindExpense),
		testRecord("new2", "2025-01-03", "Rent", "-500", model.KindExpense),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	count, err := store.GetRecordCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRemoveRecord(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.AddRecord(ctx, testRecord("r1", "2025-01-01", "Food", "1", model.KindExpense)))
	require.NoError(t, store.RemoveRecord(ctx, "r1"))

	err := store.RemoveRecord(ctx, "r1")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.ErrorIs(t, store.RemoveRecord(ctx, " "), ErrEmptyString)
}

func TestGetAllRecords_NewestFirst(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.AddRecords(ctx, []model.Record{
		testRecord("b", "2025-01-02", "Food", "1", model.KindExpense),
		testRecord("a", "2025-01-03", "Food", "1", model.KindExpense),
		testRecord("c", "2025-01-02", "Food", "1", model.KindIncome),
	})
	require.NoError(t, err)

	all, err := store.GetAllRecords(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(all))
	for _, r := range all {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"a", "c", "b"}, ids)
}

func TestGetExpenseRecordsInRange(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.AddRecords(ctx, []model.Record{
		testRecord("1", "2024-12-31", "Food", "-1", model.KindExpense),
		testRecord("2", "2025-01-01", "Food", "-10", model.KindExpense),
		testRecord("3", "2025-01-05", "Salary", "900", model.KindIncome),
		testRecord("4", "2025-01-07", "Transport", "-8", model.KindExpense),
		testRecord("5", "2025-01-08", "Food", "-2", model.KindExpense),
	})
	require.NoError(t, err)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)
	got, err := store.GetExpenseRecordsInRange(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, "4", got[1].ID)

	_, err = store.GetExpenseRecordsInRange(ctx, end, start)
	assert.ErrorIs(t, err, common.ErrInvalidDateRange)
}

func TestSearchByCategory(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.AddRecords(ctx, []model.Record{
		testRecord("1", "2025-11-10", "Food", "-4.50", model.KindExpense),
		testRecord("2", "2025-11-11", "Transport", "-12", model.KindExpense),
		testRecord("3", "2025-11-12", "Food", "-15", model.KindExpense),
	})
	require.NoError(t, err)

	got, err := store.SearchByCategory(ctx, "FOOD")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = store.SearchByCategory(ctx, "Shopping")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = store.SearchByCategory(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestBudgets(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SetBudget(ctx, "Food", decimal.RequireFromString("200")))
	require.NoError(t, store.SetBudget(ctx, "food", decimal.RequireFromString("250.50")))
	require.NoError(t, store.SetBudget(ctx, "Rent", decimal.RequireFromString("900")))

	b, err := store.GetBudget(ctx, "FOOD")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, "Food", b.Category)
	assert.Equal(t, "250.5", b.Amount.String())

	missing, err := store.GetBudget(ctx, "Travel")
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := store.ListBudgets(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Food", all[0].Category)
	assert.Equal(t, "Rent", all[1].Category)

	require.NoError(t, store.DeleteBudget(ctx, "rent"))
	assert.ErrorIs(t, store.DeleteBudget(ctx, "rent"), common.ErrNotFound)
}
