package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/fino/internal/cli"
	"github.com/Veraticus/fino/internal/common"
	"github.com/Veraticus/fino/internal/csvimport"
	"github.com/Veraticus/fino/internal/model"
	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <date,description,amount,kind,category> | <date> <description> <amount> <kind> <category>",
		Short: "Record a single transaction",
		Long: `Record a single income or expense transaction.

The transaction is given either as one comma-separated argument or as five
separate arguments. Dates use YYYY-MM-DD and kind is income or expense.

Examples:
  fino add "2024-03-01,Flat white,-3.20,expense,Coffee"
  fino add 2024-03-01 "March salary" 3100 income Salary`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 && len(args) != csvimport.FieldCount {
				return fmt.Errorf("expected 1 or %d arguments, got %d", csvimport.FieldCount, len(args))
			}
			return nil
		},
		RunE: runAdd,
	}
}

func runAdd(cmd *cobra.Command, args []string) error {
	var (
		record model.Record
		err    error
	)
	if len(args) == 1 {
		record, err = csvimport.ParseLine(args[0])
	} else {
		record, err = csvimport.ParseFields(args)
	}
	if err != nil {
		return common.NewUserError(err.Error(), err)
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.AddRecord(ctx, record); err != nil {
		return fmt.Errorf("failed to add transaction: %w", err)
	}

	common.LogDebug("Added transaction", common.Fields{"id": record.ID, "category": record.Category})
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added %s %s on %s (%s)",
		record.Kind, record.Amount.StringFixed(2), record.Date.Format(model.DateLayout), record.ID)))
	return nil
}

func removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a transaction by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			id := strings.TrimSpace(args[0])
			if err := store.RemoveRecord(ctx, id); err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return common.NewUserError(fmt.Sprintf("no transaction with id %q", id), err)
				}
				return fmt.Errorf("failed to remove transaction: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Removed transaction "+id))
			return nil
		},
	}
}

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <category>",
		Short: "List transactions in a category",
		Long:  `List every transaction whose category matches, ignoring case.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := strings.TrimSpace(args[0])
			if category == "" {
				return common.NewUserError("category cannot be empty", common.ErrInvalidRecord)
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			records, err := store.SearchByCategory(ctx, category)
			if err != nil {
				return fmt.Errorf("failed to search transactions: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatRecords(records))
			return nil
		},
	}
}
