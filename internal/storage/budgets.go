package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/fino/internal/common"
	"github.com/Veraticus/fino/internal/model"
	"github.com/shopspring/decimal"
)

// SetBudget creates or replaces the budget for category.
func (s *SQLiteStorage) SetBudget(ctx context.Context, category string, amount decimal.Decimal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(category, "category"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO category_budgets (category, amount) VALUES (?, ?)
		ON CONFLICT(category) DO UPDATE SET amount = excluded.amount`,
		strings.TrimSpace(category), amount.String())
	if err != nil {
		return fmt.Errorf("failed to upsert budget: %w", err)
	}
	return nil
}

// GetBudget returns the budget for category, or nil if none is set.
func (s *SQLiteStorage) GetBudget(ctx context.Context, category string) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(category, "category"); err != nil {
		return nil, err
	}

	var (
		b      model.Budget
		amount string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, category, amount FROM category_budgets WHERE category = ?`,
		strings.TrimSpace(category)).Scan(&b.ID, &b.Category, &amount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query budget: %w", err)
	}
	if b.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("failed to parse budget amount: %w", err)
	}
	return &b, nil
}

// ListBudgets returns all budgets ordered by category.
func (s *SQLiteStorage) ListBudgets(ctx context.Context) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, amount FROM category_budgets ORDER BY category ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var budgets []model.Budget
	for rows.Next() {
		var (
			b      model.Budget
			amount string
		)
		if err := rows.Scan(&b.ID, &b.Category, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		if b.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("failed to parse budget amount for %s: %w", b.Category, err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// DeleteBudget removes the budget for category.
func (s *SQLiteStorage) DeleteBudget(ctx context.Context, category string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(category, "category"); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM category_budgets WHERE category = ?`, strings.TrimSpace(category))
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: budget for category %q", common.ErrNotFound, category)
	}
	return nil
}
