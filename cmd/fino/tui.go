package main

import (
	"fmt"
	"time"

	"github.com/Veraticus/fino/internal/common"
	"github.com/Veraticus/fino/internal/model"
	"github.com/Veraticus/fino/internal/tui"
	"github.com/spf13/cobra"
)

// defaultReportDays is the span reported when no start date is given.
const defaultReportDays = 30

func browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse transactions interactively",
		Long: `Open an interactive table of every transaction.

Filter by category (c), date range (d) or type (t), toggle the sort order (s),
reload from the database (r) and clear filters (x). Enter shows details.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			records, err := store.GetAllRecords(ctx)
			if err != nil {
				return fmt.Errorf("failed to load transactions: %w", err)
			}

			common.LogDebug("Starting browser", common.Fields{"records": len(records)})
			return tui.RunBrowse(ctx, records, store, themeOption())
		},
	}
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [start] [end]",
		Short: "Chart expenses over a date range",
		Long: `Show a stacked bar chart of spending per period, a pie of category shares
and a category table for the inclusive range start..end (YYYY-MM-DD).

end defaults to today and start to 30 days before end. The bucket width is
chosen from the range length unless --bucket-days or report.bucket_days is set.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runReport,
	}

	cmd.Flags().Int("bucket-days", 0, "days per bar (0 picks automatically)")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	start, end, err := reportRange(args, time.Now())
	if err != nil {
		return err
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	bucketDays := settings.BucketDays
	if cmd.Flags().Changed("bucket-days") {
		bucketDays, _ = cmd.Flags().GetInt("bucket-days")
	}
	if bucketDays < 0 {
		return common.NewUserError("--bucket-days must not be negative", common.ErrInvalidConfig)
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	records, err := store.GetExpenseRecordsInRange(ctx, start, end)
	if err != nil {
		return fmt.Errorf("failed to load expenses: %w", err)
	}

	common.LogDebug("Starting report", common.Fields{
		"start":       start.Format(model.DateLayout),
		"end":         end.Format(model.DateLayout),
		"records":     len(records),
		"bucket_days": bucketDays,
	})
	return tui.RunReport(ctx, records, start, end, bucketDays, themeOption())
}

// reportRange resolves the report bounds from positional arguments.
func reportRange(args []string, now time.Time) (time.Time, time.Time, error) {
	end := model.Day(now)
	if len(args) == 2 {
		parsed, err := model.ParseDate(args[1])
		if err != nil {
			return time.Time{}, time.Time{}, common.NewUserError(err.Error(), err)
		}
		end = parsed
	}

	start := end.AddDate(0, 0, -(defaultReportDays - 1))
	if len(args) >= 1 {
		parsed, err := model.ParseDate(args[0])
		if err != nil {
			return time.Time{}, time.Time{}, common.NewUserError(err.Error(), err)
		}
		start = parsed
	}

	if start.After(end) {
		msg := fmt.Sprintf("start date %s is after end date %s",
			start.Format(model.DateLayout), end.Format(model.DateLayout))
		return time.Time{}, time.Time{}, common.NewUserError(msg, common.ErrInvalidDateRange)
	}

	return start, end, nil
}
