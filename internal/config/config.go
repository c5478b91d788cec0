// Package config loads tagline settings: the embedded defaults merged with an
// optional user file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/tagline/internal/badge"
	"github.com/oakwood-commons/tagline/internal/measure"
	"github.com/oakwood-commons/tagline/internal/resize"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

// ErrUnknownTheme is returned when a theme name is not configured.
var ErrUnknownTheme = errors.New("unknown theme")

// ErrUnknownClass is returned when a style class name is not configured.
var ErrUnknownClass = errors.New("unknown style class")

// DefaultConfigYAML returns a copy of the embedded default config.
func DefaultConfigYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Default parses the embedded default configuration.
func Default() (Config, error) {
	var cfg Config
	if len(embeddedDefaultConfig) == 0 {
		return cfg, fmt.Errorf("embedded default config is empty")
	}
	if err := yaml.Unmarshal(embeddedDefaultConfig, &cfg); err != nil {
		return cfg, fmt.Errorf("decode default config: %w", err)
	}
	return cfg, nil
}

// Load returns the default configuration merged with the file at path. An
// empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	if path == "" {
		return cfg, cfg.Validate()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	var user Config
	if err := yaml.Unmarshal(data, &user); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	cfg = Merge(cfg, user)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Merge overlays the set fields of over onto base.
func Merge(base, over Config) Config {
	out := base
	if over.App.Name != "" {
		out.App.Name = over.App.Name
	}
	if over.App.Resize.PollIntervalMs != nil {
		out.App.Resize.PollIntervalMs = over.App.Resize.PollIntervalMs
	}
	if over.Fit.Gap != nil {
		out.Fit.Gap = over.Fit.Gap
	}
	if over.Fit.MinVisible != nil {
		out.Fit.MinVisible = over.Fit.MinVisible
	}
	if over.Fit.Fallback != "" {
		out.Fit.Fallback = over.Fit.Fallback
	}
	if over.Fit.Size != "" {
		out.Fit.Size = over.Fit.Size
	}
	if over.Fit.Metrics != "" {
		out.Fit.Metrics = over.Fit.Metrics
	}
	if over.Theme.Default != "" {
		out.Theme.Default = over.Theme.Default
	}
	out.Themes = mergeMap(base.Themes, over.Themes)
	out.Classes = mergeMap(base.Classes, over.Classes)
	return out
}

func mergeMap[V any](base, over map[string]V) map[string]V {
	out := make(map[string]V, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// Validate rejects settings the label row cannot use.
func (c Config) Validate() error {
	if c.Fit.Gap != nil && *c.Fit.Gap < 0 {
		return fmt.Errorf("fit.gap must be non-negative, got %d", *c.Fit.Gap)
	}
	if c.Fit.MinVisible != nil && *c.Fit.MinVisible < 0 {
		return fmt.Errorf("fit.min_visible must be non-negative, got %d", *c.Fit.MinVisible)
	}
	if c.App.Resize.PollIntervalMs != nil && *c.App.Resize.PollIntervalMs <= 0 {
		return fmt.Errorf("app.resize.poll_interval_ms must be positive, got %d", *c.App.Resize.PollIntervalMs)
	}
	if _, err := badge.ParseVariant(c.Fit.Size); err != nil {
		return fmt.Errorf("fit.size: %w", err)
	}
	if _, err := measure.ParseBackend(c.Fit.Metrics); err != nil {
		return fmt.Errorf("fit.metrics: %w", err)
	}
	if c.Theme.Default != "" {
		if _, ok := c.Themes[c.Theme.Default]; !ok {
			return fmt.Errorf("theme.default: %w %q", ErrUnknownTheme, c.Theme.Default)
		}
	}
	return nil
}

// Gap returns the configured gap or tagrow's default.
func (c Config) Gap() int {
	if c.Fit.Gap == nil {
		return 1
	}
	return *c.Fit.Gap
}

// MinVisible returns the configured minimum-visible policy (0 means default).
func (c Config) MinVisible() int {
	if c.Fit.MinVisible == nil {
		return 0
	}
	return *c.Fit.MinVisible
}

// PollInterval returns the terminal resize polling interval.
func (c Config) PollInterval() time.Duration {
	if c.App.Resize.PollIntervalMs == nil {
		return resize.DefaultPollInterval
	}
	return time.Duration(*c.App.Resize.PollIntervalMs) * time.Millisecond
}

// ThemeNames returns the configured theme names, sorted.
func (c Config) ThemeNames() []string {
	names := make([]string, 0, len(c.Themes))
	for k := range c.Themes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// ResolveTheme returns the colors for name, or the default theme when name is empty.
func (c Config) ResolveTheme(name string) (ThemeColors, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = c.Theme.Default
	}
	th, ok := c.Themes[name]
	if !ok {
		return ThemeColors{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownTheme, name, strings.Join(c.ThemeNames(), ", "))
	}
	return th, nil
}

// ResolveClass returns the style for a class name. An empty name returns nil.
func (c Config) ResolveClass(name string) (*lipgloss.Style, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	cls, ok := c.Classes[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownClass, name)
	}
	st := cls.Style()
	return &st, nil
}

// Color converts a config color string; empty yields nil.
func Color(s string) color.Color {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return lipgloss.Color(s)
}

// Palette returns the badge colors of the theme.
func (t ThemeColors) Palette() badge.Palette {
	return badge.Palette{
		LabelFG:    Color(t.LabelFG),
		LabelBG:    Color(t.LabelBG),
		OverflowFG: Color(t.OverflowFG),
		OverflowBG: Color(t.OverflowBG),
	}
}

// Style builds the lipgloss style for the class.
func (c ClassStyle) Style() lipgloss.Style {
	s := lipgloss.NewStyle().
		Padding(0, c.PaddingRight, 0, c.PaddingLeft).
		Margin(0, c.MarginRight, 0, c.MarginLeft)
	if fg := Color(c.Foreground); fg != nil {
		s = s.Foreground(fg)
	}
	if bg := Color(c.Background); bg != nil {
		s = s.Background(bg)
	}
	if c.Bold {
		s = s.Bold(true)
	}
	if c.Italic {
		s = s.Italic(true)
	}
	return s
}

// ResolvePath returns explicit when set, otherwise the XDG config path
// ($XDG_CONFIG_HOME/tagline/config.yaml or ~/.config/tagline/config.yaml) if
// that file exists.
func ResolvePath(explicit, appName string) string {
	if explicit != "" {
		return explicit
	}
	if appName == "" {
		appName = "tagline"
	}
	candidate := ""
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate = filepath.Join(xdg, appName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", appName, "config.yaml")
	}
	if candidate != "" {
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate
		}
	}
	return ""
}

// YAML renders the configuration.
func (c Config) YAML() (string, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(b), nil
}
