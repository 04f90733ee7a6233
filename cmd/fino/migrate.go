package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/fino/internal/cli"
	"github.com/Veraticus/fino/internal/storage"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the database schema to the latest version.

Every other command migrates on startup; use --status to inspect the schema
without changing it.`,
		Args: cobra.NoArgs,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current migration status without applying changes")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	status, _ := cmd.Flags().GetBool("status")
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	store, err := openStorage()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	current, err := store.SchemaVersion(ctx)
	if err != nil {
		return err
	}

	slog.Info("Database", "path", store.Path(), "version", current, "status_only", status)

	if status {
		body := fmt.Sprintf("Database: %s\nCurrent version: %d\nLatest version: %d",
			store.Path(), current, storage.ExpectedSchemaVersion)
		fmt.Fprintln(out, cli.RenderBox(cli.ChartIcon+" Migration status", body))
		if current < storage.ExpectedSchemaVersion {
			fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%d migration(s) pending", storage.ExpectedSchemaVersion-current)))
		}
		return nil
	}

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Database schema at version %d", storage.ExpectedSchemaVersion)))
	return nil
}
