package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/tagline/internal/badge"
	"github.com/oakwood-commons/tagline/internal/config"
	"github.com/oakwood-commons/tagline/internal/measure"
	"github.com/oakwood-commons/tagline/internal/ui"
	"github.com/oakwood-commons/tagline/pkg/settings"
)

// rowSettings is the effective label row configuration after flags are
// applied over the merged config.
type rowSettings struct {
	Variant    badge.Variant
	Gap        int
	MinVisible int
	Fallback   string
	Metrics    string
	Theme      ui.Theme
	Class      *lipgloss.Style
	NoColor    bool
}

// loadMergedConfig returns the embedded defaults merged with the user file.
func loadMergedConfig(path string) (config.Config, error) {
	return config.Load(resolveConfigPath(path))
}

// resolveConfigPath returns the explicit path or the XDG default when present.
func resolveConfigPath(explicit string) string {
	return config.ResolvePath(explicit, settings.CliBinaryName)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

// resolveRowSettings applies flag values over cfg. Flags win only when the
// user set them.
func resolveRowSettings(cmd *cobra.Command, cfg config.Config, f *rowFlags) (rowSettings, error) {
	rs := rowSettings{
		Gap:        cfg.Gap(),
		MinVisible: cfg.MinVisible(),
		Fallback:   cfg.Fit.Fallback,
		Metrics:    cfg.Fit.Metrics,
		NoColor:    noColor,
	}

	v, err := badge.ParseVariant(cfg.Fit.Size)
	if err != nil {
		return rs, err
	}
	rs.Variant = v
	if flagChanged(cmd, "size") {
		rs.Variant = f.size
	}
	if flagChanged(cmd, "gap") {
		if f.gap < 0 {
			return rs, fmt.Errorf("--gap must be non-negative, got %d", f.gap)
		}
		rs.Gap = f.gap
	}
	if flagChanged(cmd, "min-visible") {
		if f.minVisible < 0 {
			return rs, fmt.Errorf("--min-visible must be non-negative, got %d", f.minVisible)
		}
		rs.MinVisible = f.minVisible
	}
	if flagChanged(cmd, "fallback") {
		rs.Fallback = f.fallback
	}
	if flagChanged(cmd, "metrics") {
		rs.Metrics = f.metrics
	}
	if rs.Metrics, err = measure.ParseBackend(rs.Metrics); err != nil {
		return rs, err
	}

	th, err := cfg.ResolveTheme(themeName)
	if err != nil {
		return rs, err
	}
	rs.Theme = ui.ThemeFromConfig(th)

	if rs.Class, err = cfg.ResolveClass(f.class); err != nil {
		return rs, err
	}
	if rs.Class != nil && rs.NoColor {
		st := rs.Class.UnsetForeground().UnsetBackground().UnsetBold().UnsetItalic()
		rs.Class = &st
	}
	return rs, nil
}

// provider returns the metrics provider for the row settings.
func (rs rowSettings) provider() (measure.Provider, error) {
	return measure.ForBackend(rs.Metrics, rs.styles)
}

func (rs rowSettings) styles(v badge.Variant) badge.Styles {
	return badge.NewStyles(rs.Theme.Palette, v, rs.NoColor)
}

// terminalProvider rejects backends whose units are not terminal cells.
func (rs rowSettings) terminalProvider() (measure.Provider, error) {
	if strings.EqualFold(rs.Metrics, measure.BackendPixel) {
		return nil, fmt.Errorf("--metrics %s measures pixels and cannot lay out terminal rows; use it with 'fit'", measure.BackendPixel)
	}
	return rs.provider()
}
