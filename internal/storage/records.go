package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Veraticus/fino/internal/common"
	"github.com/Veraticus/fino/internal/model"
	"github.com/shopspring/decimal"
)

const recordColumns = `id, date, description, amount, kind, category`

// AddRecord inserts a single record. A record whose ID already exists is
// rejected with common.ErrDuplicateEntry.
func (s *SQLiteStorage) AddRecord(ctx context.Context, record model.Record) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := ValidateRecord(record); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (`+recordColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		recordArgs(record)...,
	)
	if err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("%w: transaction %s", common.ErrDuplicateEntry, record.ID)
		}
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// AddRecords inserts records in one transaction, skipping IDs that already
// exist. It returns the number of rows actually inserted.
func (s *SQLiteStorage) AddRecords(ctx context.Context, records []model.Record) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	for i, r := range records {
		if err := ValidateRecord(r); err != nil {
			return 0, fmt.Errorf("record at index %d: %w", i, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO transactions (`+recordColumns+`) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for _, r := range records {
		res, execErr := stmt.ExecContext(ctx, recordArgs(r)...)
		if execErr != nil {
			return 0, fmt.Errorf("failed to insert transaction %s: %w", r.ID, execErr)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transactions: %w", err)
	}
	return inserted, nil
}

// RemoveRecord deletes the record with the given ID.
func (s *SQLiteStorage) RemoveRecord(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	}
	return nil
}

// GetAllRecords returns every record, newest first.
func (s *SQLiteStorage) GetAllRecords(ctx context.Context) ([]model.Record, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.queryRecords(ctx,
		`SELECT `+recordColumns+` FROM transactions ORDER BY date DESC, id DESC`)
}

// GetExpenseRecordsInRange returns expense records dated within [start, end], oldest first.
func (s *SQLiteStorage) GetExpenseRecordsInRange(ctx context.Context, start, end time.Time) ([]model.Record, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %s after %s", common.ErrInvalidDateRange,
			start.Format(model.DateLayout), end.Format(model.DateLayout))
	}
	return s.queryRecords(ctx,
		`SELECT `+recordColumns+` FROM transactions
		WHERE kind = 'expense' AND date >= ? AND date <= ?
		ORDER BY date ASC, id ASC`,
		start.Format(model.DateLayout), end.Format(model.DateLayout))
}

// SearchByCategory returns records whose category matches case-insensitively.
func (s *SQLiteStorage) SearchByCategory(ctx context.Context, category string) ([]model.Record, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(category, "category"); err != nil {
		return nil, err
	}
	return s.queryRecords(ctx,
		`SELECT `+recordColumns+` FROM transactions
		WHERE LOWER(category) = LOWER(?)
		ORDER BY date DESC, id DESC`, category)
}

// GetRecordCount returns the number of stored records.
func (s *SQLiteStorage) GetRecordCount(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func (s *SQLiteStorage) queryRecords(ctx context.Context, query string, args ...any) ([]model.Record, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.Record
	for rows.Next() {
		r, scanErr := scanRecord(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return records, nil
}

func scanRecord(rows *sql.Rows) (model.Record, error) {
	var (
		r       model.Record
		date    string
		amount  string
		kindStr string
	)
	if err := rows.Scan(&r.ID, &date, &r.Description, &amount, &kindStr, &r.Category); err != nil {
		return model.Record{}, fmt.Errorf("failed to scan transaction: %w", err)
	}

	var err error
	if r.Date, err = model.ParseDate(date); err != nil {
		return model.Record{}, fmt.Errorf("transaction %s: %w", r.ID, err)
	}
	if r.Amount, err = decimal.NewFromString(amount); err != nil {
		return model.Record{}, fmt.Errorf("transaction %s: invalid amount %q: %w", r.ID, amount, err)
	}
	if r.Kind, err = model.ParseKind(kindStr); err != nil {
		return model.Record{}, fmt.Errorf("transaction %s: %w", r.ID, err)
	}
	return r, nil
}

func recordArgs(r model.Record) []any {
	return []any{
		r.ID,
		r.Date.Format(model.DateLayout),
		r.Description,
		r.Amount.String(),
		string(r.Kind),
		r.Category,
	}
}
