// Package config loads rbdraw settings from a TOML file.
//
// A config file has three tables, all optional:
//
//	[layout]
//	radius = 20
//	level_height = 60
//	spacing = "geometric:8,2"
//	root_x = 0
//	root_y = 0
//	margin = 10
//
//	[style]
//	red = "#d93232"
//	black = "#444444"
//	edge = "#000000"
//	text = "#ffffff"
//	edge_width = 2
//	outline_width = 3
//	font_family = "monospace"
//	font_size = 16
//
//	[cache]
//	namespace = "team-a"
//
// Keys that are left out keep their defaults. Unknown keys are rejected so
// typos do not go unnoticed.
package config

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/rbdraw/pkg/errors"
	"github.com/matzehuels/rbdraw/pkg/layout"
	"github.com/matzehuels/rbdraw/pkg/render"
)

// AppName names the config and cache directories.
const AppName = "rbdraw"

// FileName is the config file looked up in the user config directory.
const FileName = "config.toml"

// Config is the full set of file-configurable settings.
type Config struct {
	Layout Layout       `toml:"layout"`
	Style  render.Style `toml:"style"`
	Cache  Cache        `toml:"cache"`
}

// Cache scopes cache keys. Setups that share one Redis or MongoDB backend
// give each deployment its own namespace.
type Cache struct {
	Namespace string `toml:"namespace"`
}

// Layout holds the geometry settings. Depth is not configurable here; it
// comes from the payload.
type Layout struct {
	Radius      float64 `toml:"radius"`
	LevelHeight float64 `toml:"level_height"`
	Spacing     string  `toml:"spacing"`
	RootX       float64 `toml:"root_x"`
	RootY       float64 `toml:"root_y"`
	Margin      float64 `toml:"margin"`
}

// Default layout settings.
const (
	DefaultRadius      = 20.0
	DefaultLevelHeight = 60.0
	DefaultMargin      = 10.0
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: Layout{
			Radius:      DefaultRadius,
			LevelHeight: DefaultLevelHeight,
			Spacing:     layout.DefaultSpacing,
			Margin:      DefaultMargin,
		},
		Style: render.DefaultStyle(),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/rbdraw/config.toml (or the platform
// equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(dir, AppName, FileName), nil
}

// Load reads the TOML file at path on top of the defaults and validates the
// result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault loads the file at DefaultPath if it exists. A missing file is
// not an error: the defaults are returned with an empty path.
func LoadDefault() (Config, string, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), "", nil
	}
	if _, err := os.Stat(path); err != nil {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// Parse decodes TOML text on top of the defaults and validates the result.
func Parse(text string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every setting.
func (c Config) Validate() error {
	l := c.Layout
	if err := errors.ValidateRadius(l.Radius); err != nil {
		return err
	}
	if !finite(l.LevelHeight) || !finite(l.RootX) || !finite(l.RootY) {
		return errors.New(errors.ErrCodeInvalidConfig, "layout coordinates must be finite")
	}
	if !finite(l.Margin) || l.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "margin must be a non-negative number, got %v", l.Margin)
	}
	if _, err := layout.ParseSpacing(l.Spacing); err != nil {
		return err
	}
	if ns := c.Cache.Namespace; strings.ContainsAny(ns, " \t\r\n:") {
		return errors.New(errors.ErrCodeInvalidConfig, "cache namespace %q must not contain spaces or colons", ns)
	}
	return ValidateStyle(c.Style)
}

// ValidateStyle checks that colors are set and sizes are usable.
func ValidateStyle(s render.Style) error {
	colors := map[string]string{"red": s.RedFill, "black": s.BlackFill, "edge": s.EdgeColor, "text": s.TextColor}
	for name, v := range colors {
		if strings.TrimSpace(v) == "" || strings.ContainsAny(v, "\"<>&") {
			return errors.New(errors.ErrCodeInvalidStyle, "style %s: invalid color %q", name, v)
		}
	}
	if !finite(s.EdgeWidth) || s.EdgeWidth < 0 || !finite(s.OutlineWidth) || s.OutlineWidth < 0 {
		return errors.New(errors.ErrCodeInvalidStyle, "stroke widths must be non-negative")
	}
	if !finite(s.FontSize) || s.FontSize <= 0 {
		return errors.New(errors.ErrCodeInvalidStyle, "font size must be positive, got %v", s.FontSize)
	}
	if strings.TrimSpace(s.FontFamily) == "" || strings.ContainsAny(s.FontFamily, "\"<>&") {
		return errors.New(errors.ErrCodeInvalidStyle, "invalid font family %q", s.FontFamily)
	}
	return nil
}

// Spacing parses the configured spacing policy.
func (c Config) Spacing() (layout.Spacing, error) {
	return layout.ParseSpacing(c.Layout.Spacing)
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
