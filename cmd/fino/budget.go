package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/fino/internal/cli"
	"github.com/Veraticus/fino/internal/common"
	"github.com/Veraticus/fino/internal/service"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// ErrNegativeBudget is returned when a budget change would drop below zero.
var ErrNegativeBudget = errors.New("budget cannot be negative")

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage per-category spending budgets",
	}

	cmd.AddCommand(budgetChangeCmd("set", "Set the budget for a category", setBudget))
	cmd.AddCommand(budgetChangeCmd("increase", "Raise the budget for a category", increaseBudget))
	cmd.AddCommand(budgetChangeCmd("decrease", "Lower the budget for a category", decreaseBudget))
	cmd.AddCommand(budgetListCmd())
	cmd.AddCommand(budgetDeleteCmd())

	return cmd
}

// budgetChange computes a category's new budget from its current one.
type budgetChange func(current, amount decimal.Decimal) (decimal.Decimal, error)

func setBudget(_, amount decimal.Decimal) (decimal.Decimal, error) {
	return amount, nil
}

func increaseBudget(current, amount decimal.Decimal) (decimal.Decimal, error) {
	return current.Add(amount), nil
}

func decreaseBudget(current, amount decimal.Decimal) (decimal.Decimal, error) {
	next := current.Sub(amount)
	if next.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s - %s", ErrNegativeBudget, current.StringFixed(2), amount.StringFixed(2))
	}
	return next, nil
}

func budgetChangeCmd(use, short string, change budgetChange) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <category> <amount>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseBudgetAmount(args[1])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			category := strings.TrimSpace(args[0])
			next, err := applyBudgetChange(ctx, store, category, amount, change)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Budget for %s is now %s", category, next.StringFixed(2))))
			return nil
		},
	}
}

func parseBudgetAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, common.NewUserError(fmt.Sprintf("invalid amount %q: provide a decimal number", s), err)
	}
	if amount.IsNegative() {
		return decimal.Zero, common.NewUserError("amount must not be negative", ErrNegativeBudget)
	}
	return amount, nil
}

func applyBudgetChange(ctx context.Context, store service.Storage, category string, amount decimal.Decimal, change budgetChange) (decimal.Decimal, error) {
	if category == "" {
		return decimal.Zero, common.NewUserError("category cannot be empty", common.ErrInvalidRecord)
	}

	current := decimal.Zero
	existing, err := store.GetBudget(ctx, category)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read budget: %w", err)
	}
	if existing != nil {
		current = existing.Amount
	}

	next, err := change(current, amount)
	if err != nil {
		return decimal.Zero, common.NewUserError(err.Error(), err)
	}

	if err := store.SetBudget(ctx, category, next); err != nil {
		return decimal.Zero, fmt.Errorf("failed to save budget: %w", err)
	}
	return next, nil
}

func budgetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every category budget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			budgets, err := store.ListBudgets(ctx)
			if err != nil {
				return fmt.Errorf("failed to list budgets: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatBudgets(budgets))
			return nil
		},
	}
}

func budgetDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <category>",
		Short: "Remove the budget for a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			category := strings.TrimSpace(args[0])
			if err := store.DeleteBudget(ctx, category); err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return common.NewUserError(fmt.Sprintf("no budget set for %q", category), err)
				}
				return fmt.Errorf("failed to delete budget: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted budget for "+category))
			return nil
		},
	}
}
