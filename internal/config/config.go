// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/rs/zerolog"
	"github.com/xonecas/strum/internal/chordline"
	"github.com/xonecas/strum/internal/palette"
)

// DefaultTheme is the Chroma theme the UI colors are derived from.
const DefaultTheme = "github-dark"

// Config is the root configuration structure.
type Config struct {
	LogLevel string        `toml:"log_level"`
	Editor   EditorConfig  `toml:"editor"`
	Palette  PaletteConfig `toml:"palette"`
	Songs    SongsConfig   `toml:"songs"`
	UI       UIConfig      `toml:"ui"`
}

// EditorConfig holds chord placement settings.
type EditorConfig struct {
	// StackPolicy is "merge" (consecutive chord lines merge into one) or
	// "allow" (stacked chord lines are kept).
	StackPolicy string `toml:"stack_policy"`
	// GuideWidth is how many columns chord and blank lines accept drops in.
	GuideWidth int `toml:"guide_width"`
	// DragThreshold is how far, in cells, a press may move and still be a tap.
	DragThreshold float64 `toml:"drag_threshold"`
	// ColumnBias nudges pointer columns forward before rounding down.
	ColumnBias float64 `toml:"column_bias"`
}

// Policy returns the parsed stack policy. Validate reports bad values;
// here they fall back to MergeStacks.
func (e EditorConfig) Policy() chordline.StackPolicy {
	p, _ := chordline.ParseStackPolicy(e.StackPolicy)
	return p
}

// PaletteConfig lists the chord types the palette starts with.
type PaletteConfig struct {
	Chords []string `toml:"chords"`
}

// SongsConfig points at the song catalog file.
type SongsConfig struct {
	File string `toml:"file"`
}

// UIConfig holds user-interface settings.
type UIConfig struct {
	// Theme is the Chroma style UI colors are derived from via
	// highlight.ThemePalette.
	Theme string `toml:"theme"`
}

// ThemeOrDefault returns the configured theme or DefaultTheme if unset.
func (u UIConfig) ThemeOrDefault() string {
	if u.Theme == "" {
		return DefaultTheme
	}
	return u.Theme
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Editor: EditorConfig{
			StackPolicy:   chordline.MergeStacks.String(),
			GuideWidth:    60,
			DragThreshold: 0.5,
			ColumnBias:    0.2,
		},
		Palette: PaletteConfig{Chords: append([]string(nil), palette.DefaultChords...)},
		UI:      UIConfig{Theme: DefaultTheme},
	}
}

// Load reads configuration from a TOML file on top of Default and applies
// environment variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("log_level=%q is invalid: %v", c.LogLevel, err))
	}

	if _, err := chordline.ParseStackPolicy(c.Editor.StackPolicy); err != nil {
		errs = append(errs, fmt.Errorf("editor.stack_policy: %w", err))
	}
	if c.Editor.GuideWidth < 1 || c.Editor.GuideWidth > 500 {
		errs = append(errs, fmt.Errorf("editor.guide_width=%d must be between 1 and 500", c.Editor.GuideWidth))
	}
	if c.Editor.DragThreshold < 0 || c.Editor.DragThreshold > 50 {
		errs = append(errs, fmt.Errorf("editor.drag_threshold=%v must be between 0 and 50", c.Editor.DragThreshold))
	}
	if c.Editor.ColumnBias < 0 || c.Editor.ColumnBias >= 1 {
		errs = append(errs, fmt.Errorf("editor.column_bias=%v must be in [0, 1)", c.Editor.ColumnBias))
	}

	for i, chord := range c.Palette.Chords {
		if err := palette.ValidateLabel(chord); err != nil {
			errs = append(errs, fmt.Errorf("palette.chords[%d]: %w", i, err))
		}
	}

	if t := c.UI.ThemeOrDefault(); styles.Registry[t] == nil {
		errs = append(errs, fmt.Errorf("ui.theme=%q is not a known chroma style", t))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Level returns the parsed log level, defaulting to info.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"STRUM_SONGS", func(v string) {
			if v != "" {
				cfg.Songs.File = v
			}
		}},
		{"STRUM_THEME", func(v string) {
			if v != "" {
				cfg.UI.Theme = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// DataDir returns the path to the strum data directory (~/.config/strum).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "strum"), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}

// DefaultPath returns ~/.config/strum/config.toml.
func DefaultPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// SongsPath resolves the catalog file: the configured path, with a leading
// ~ expanded, or songs.toml in the data directory.
func (c *Config) SongsPath() (string, error) {
	p := c.Songs.File
	if p == "" {
		dir, err := DataDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "songs.toml"), nil
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(home, strings.TrimPrefix(p, "~"))
	}
	return p, nil
}
