package config

// Config is the merged tagline configuration.
type Config struct {
	App     AppConfig              `yaml:"app"`
	Fit     FitConfig              `yaml:"fit"`
	Theme   ThemeSelection         `yaml:"theme"`
	Themes  map[string]ThemeColors `yaml:"themes"`
	Classes map[string]ClassStyle  `yaml:"classes"`
}

// AppConfig holds application metadata and runtime knobs.
type AppConfig struct {
	Name   string       `yaml:"name"`
	Resize ResizeConfig `yaml:"resize"`
}

// ResizeConfig tunes terminal resize polling.
type ResizeConfig struct {
	PollIntervalMs *int `yaml:"poll_interval_ms"`
}

// FitConfig holds label row defaults. Pointer fields distinguish "unset" from zero.
type FitConfig struct {
	Gap        *int   `yaml:"gap"`
	MinVisible *int   `yaml:"min_visible"`
	Fallback   string `yaml:"fallback"`
	Size       string `yaml:"size"`
	Metrics    string `yaml:"metrics"`
}

// ThemeSelection picks the active theme.
type ThemeSelection struct {
	Default string `yaml:"default"`
}

// ThemeColors are ANSI 256 color codes or hex strings. Empty means unset.
type ThemeColors struct {
	LabelFG    string `yaml:"label_fg"`
	LabelBG    string `yaml:"label_bg"`
	OverflowFG string `yaml:"overflow_fg"`
	OverflowBG string `yaml:"overflow_bg"`
	TitleFG    string `yaml:"title_fg"`
	MutedFG    string `yaml:"muted_fg"`
	BorderFG   string `yaml:"border_fg"`
	SelectedFG string `yaml:"selected_fg"`
}

// ClassStyle is a named style applied around a whole label row.
type ClassStyle struct {
	Foreground   string `yaml:"foreground,omitempty"`
	Background   string `yaml:"background,omitempty"`
	PaddingLeft  int    `yaml:"padding_left,omitempty"`
	PaddingRight int    `yaml:"padding_right,omitempty"`
	MarginLeft   int    `yaml:"margin_left,omitempty"`
	MarginRight  int    `yaml:"margin_right,omitempty"`
	Bold         bool   `yaml:"bold,omitempty"`
	Italic       bool   `yaml:"italic,omitempty"`
}
