package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/fino/internal/config"
	"github.com/Veraticus/fino/internal/storage"
	"github.com/Veraticus/fino/internal/tui"
	"github.com/Veraticus/fino/internal/tui/themes"
	"github.com/spf13/viper"
)

// loadSettings resolves the current configuration from viper.
func loadSettings() (config.Settings, error) {
	settings, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Settings{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	return settings, nil
}

// openStorage opens the configured database without migrating it.
func openStorage() (*storage.SQLiteStorage, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}

	slog.Debug("Opening database", "path", settings.DatabasePath)
	return storage.NewSQLiteStorage(settings.DatabasePath)
}

// initStorage opens the configured database and brings its schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := openStorage()
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// themeOption applies the configured ui.theme to a TUI program.
func themeOption() tui.Option {
	return tui.WithTheme(themes.GetTheme(viper.GetString(config.KeyTheme)))
}
