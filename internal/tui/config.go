package tui

import (
	"io"
	"time"

	"github.com/Veraticus/fino/internal/tui/themes"
)

const (
	// BrowseRedrawInterval is how often the browser redraws without input.
	BrowseRedrawInterval = 200 * time.Millisecond
	// ReportRedrawInterval is how often the report redraws without input.
	ReportRedrawInterval = 250 * time.Millisecond
)

// Config holds TUI configuration.
type Config struct {
	Theme  themes.Theme
	Input  io.Reader
	Output io.Writer
	Width  int
	Height int
	// AltScreen runs the program in the terminal's alternate screen.
	AltScreen bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:     themes.Default,
		Width:     80,
		Height:    24,
		AltScreen: true,
	}
}

func newConfig(opts []Option) Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size, used until the first resize.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithIO replaces the terminal streams and disables the alternate screen.
// Tests use it to drive a program without a TTY.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(c *Config) {
		c.Input = in
		c.Output = out
		c.AltScreen = false
	}
}
