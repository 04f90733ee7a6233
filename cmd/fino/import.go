package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/fino/internal/cli"
	"github.com/Veraticus/fino/internal/common"
	"github.com/Veraticus/fino/internal/csvimport"
	"github.com/Veraticus/fino/internal/model"
	"github.com/Veraticus/fino/internal/ofx"
	"github.com/spf13/cobra"
)

// ErrNoFiles is returned when no import pattern matched a file.
var ErrNoFiles = errors.New("no files found to import")

// parseFunc reads the records of one import file.
type parseFunc func(ctx context.Context, r io.Reader) ([]model.Record, error)

func importCSVCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-csv [files...]",
		Short: "Import transactions from CSV files",
		Long: `Import transactions from header-less CSV files with the columns
date,description,amount,kind,category.

Every row is validated like "fino add". A file with an invalid row is skipped
entirely and the offending line is reported.

Examples:
  fino import-csv ~/ledger/2024-03.csv
  fino import-csv ~/ledger/*.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args, func(_ context.Context, r io.Reader) ([]model.Record, error) {
				return csvimport.Parse(r)
			})
		},
	}

	addImportFlags(cmd)
	return cmd
}

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX (Quicken) files exported from your bank.

Debits become expenses and credits income. Re-importing a statement skips
transactions that are already stored.

Examples:
  fino import-ofx ~/Downloads/checking_mar.qfx
  fino import-ofx ~/Downloads/Bank/*.qfx ~/Downloads/Card/*.ofx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, _ := cmd.Flags().GetString("category")
			return runImport(cmd, args, ofx.NewParser(category).ParseFile)
		},
	}

	addImportFlags(cmd)
	cmd.Flags().String("category", ofx.DefaultCategory, "category for transactions without a recognizable type")
	return cmd
}

func addImportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("dry-run", "d", false, "Preview import without saving")
	cmd.Flags().BoolP("verbose", "v", false, "Show the parsed transactions")
}

func runImport(cmd *cobra.Command, patterns []string, parse parseFunc) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")
	out := cmd.OutOrStdout()

	files, err := expandPatterns(patterns)
	if err != nil {
		return err
	}

	common.LogInfo("Importing files", common.Fields{"file_count": len(files), "dry_run": dryRun})

	ctx := cmd.Context()
	var all []model.Record
	progress := cli.NewProgress(cmd.ErrOrStderr(), len(files), "Reading files...")
	for _, path := range files {
		records, err := parsePath(ctx, path, parse)
		progress.Step()
		if err != nil {
			common.LogError(err, "Failed to import file", common.Fields{"file": path})
			continue
		}
		if len(records) == 0 {
			slog.Warn("No transactions found in file", "file", filepath.Base(path))
			continue
		}
		common.LogInfo("Processed file", common.Fields{"file": filepath.Base(path), "transactions_found": len(records)})
		all = append(all, records...)
	}
	progress.Finish()

	if len(all) == 0 {
		fmt.Fprintln(out, cli.FormatWarning("No transactions found in any file"))
		return nil
	}

	if verbose || dryRun {
		fmt.Fprintln(out, cli.FormatRecords(all))
	}

	if dryRun {
		fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Dry run: %d transactions parsed, nothing saved", len(all))))
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	inserted, err := store.AddRecords(ctx, all)
	if err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d transactions (%d already present)", inserted, len(all)-inserted)))
	return nil
}

func parsePath(ctx context.Context, path string, parse parseFunc) ([]model.Record, error) {
	f, err := os.Open(path) //nolint:gosec // paths come from the user's own arguments
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return parse(ctx, f)
}

// expandPatterns resolves shell globs, keeping literal paths that exist.
func expandPatterns(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err == nil {
				files = append(files, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
			continue
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	return files, nil
}
