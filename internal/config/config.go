// Package config reads fino settings from viper and expands filesystem paths.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/fino/internal/common"
	"github.com/spf13/viper"
)

// Viper keys.
const (
	KeyDatabasePath  = "database.path"
	KeyTheme         = "ui.theme"
	KeyBucketDays    = "report.bucket_days"
	KeyLogLevel      = "logging.level"
	KeyLogFormat     = "logging.format"
	DefaultDatabase  = "$HOME/.local/share/fino/fino.db"
	DefaultThemeName = "default"
)

// Settings is a snapshot of the resolved configuration.
type Settings struct {
	DatabasePath string
	Theme        string
	LogLevel     string
	LogFormat    string
	BucketDays   int
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, DefaultDatabase)
	v.SetDefault(KeyTheme, DefaultThemeName)
	v.SetDefault(KeyBucketDays, 0)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
}

// Load reads settings from v, applying defaults and path expansion.
func Load(v *viper.Viper) (Settings, error) {
	SetDefaults(v)

	s := Settings{
		DatabasePath: ExpandPath(v.GetString(KeyDatabasePath)),
		Theme:        v.GetString(KeyTheme),
		BucketDays:   v.GetInt(KeyBucketDays),
		LogLevel:     v.GetString(KeyLogLevel),
		LogFormat:    v.GetString(KeyLogFormat),
	}

	if strings.TrimSpace(s.DatabasePath) == "" {
		return Settings{}, fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyDatabasePath)
	}
	if s.BucketDays < 0 {
		return Settings{}, fmt.Errorf("%w: %s must be >= 0, got %d", common.ErrInvalidConfig, KeyBucketDays, s.BucketDays)
	}

	return s, nil
}

// ExpandPath expands a leading ~ and $VAR references in path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}
