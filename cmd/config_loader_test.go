package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/tagline/internal/badge"
	"github.com/oakwood-commons/tagline/internal/config"
	"github.com/oakwood-commons/tagline/internal/measure"
)

// newRowCmd returns a throwaway command carrying a fresh set of row flags.
func newRowCmd(t *testing.T, args ...string) (*cobra.Command, *rowFlags) {
	t.Helper()
	f := &rowFlags{size: badge.DefaultVariant}
	c := &cobra.Command{Use: "test"}
	addRowFlags(c, f, "metrics")
	c.Flags().StringVar(&f.class, "class", "", "")
	require.NoError(t, c.Flags().Parse(args))
	return c, f
}

func defaultConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	return cfg
}

func TestConfigLoaderLoadMergedConfigDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := loadMergedConfig("")
	require.NoError(t, err)
	assert.Equal(t, "tagline", cfg.App.Name)
	assert.Equal(t, "dark", cfg.Theme.Default)
	assert.Equal(t, 2, cfg.MinVisible())
}

func TestConfigLoaderUsesXDGConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tagline"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tagline", "config.yaml"), []byte("fit:\n  gap: 3\n"), 0o600))

	cfg, err := loadMergedConfig("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Gap())
	assert.Equal(t, "remote", cfg.Fit.Fallback, "unset keys keep defaults")
}

func TestConfigLoaderExplicitMissingFile(t *testing.T) {
	_, err := loadMergedConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestResolveRowSettingsDefaults(t *testing.T) {
	themeName, noColor = "", false
	c, f := newRowCmd(t)

	rs, err := resolveRowSettings(c, defaultConfig(t), f)
	require.NoError(t, err)
	assert.Equal(t, badge.Normal, rs.Variant)
	assert.Equal(t, 1, rs.Gap)
	assert.Equal(t, 2, rs.MinVisible)
	assert.Equal(t, "remote", rs.Fallback)
	assert.Equal(t, measure.BackendCell, rs.Metrics)
	assert.Nil(t, rs.Class)
	assert.NotNil(t, rs.Theme.Palette.LabelFG)
}

func TestResolveRowSettingsFlagsOverrideConfig(t *testing.T) {
	themeName, noColor = "", false
	cfg := defaultConfig(t)
	cfg.Fit.Size = "xs"
	cfg.Fit.Fallback = "hybrid"

	c, f := newRowCmd(t)
	rs, err := resolveRowSettings(c, cfg, f)
	require.NoError(t, err)
	assert.Equal(t, badge.Compact, rs.Variant, "config applies when flags are untouched")
	assert.Equal(t, "hybrid", rs.Fallback)

	c, f = newRowCmd(t, "--size", "sm", "--gap", "0", "--min-visible", "1", "--fallback", "onsite", "--metrics", "RUNE")
	rs, err = resolveRowSettings(c, cfg, f)
	require.NoError(t, err)
	assert.Equal(t, badge.Normal, rs.Variant)
	assert.Equal(t, 0, rs.Gap)
	assert.Equal(t, 1, rs.MinVisible)
	assert.Equal(t, "onsite", rs.Fallback)
	assert.Equal(t, measure.BackendRune, rs.Metrics)
}

func TestResolveRowSettingsErrors(t *testing.T) {
	tests := []struct {
		name    string
		theme   string
		args    []string
		wantErr string
	}{
		{name: "negative gap", args: []string{"--gap", "-2"}, wantErr: "--gap must be non-negative"},
		{name: "negative min visible", args: []string{"--min-visible", "-1"}, wantErr: "--min-visible must be non-negative"},
		{name: "metrics", args: []string{"--metrics", "svg"}, wantErr: "unknown metrics backend"},
		{name: "theme", theme: "neon", wantErr: "unknown theme"},
		{name: "class", args: []string{"--class", "huge"}, wantErr: "unknown style class"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			themeName, noColor = tt.theme, false
			defer func() { themeName = "" }()
			c, f := newRowCmd(t, tt.args...)
			_, err := resolveRowSettings(c, defaultConfig(t), f)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestResolveRowSettingsNoColorStripsClassColors(t *testing.T) {
	themeName, noColor = "", true
	defer func() { noColor = false }()

	c, f := newRowCmd(t, "--class", "emphasis")
	rs, err := resolveRowSettings(c, defaultConfig(t), f)
	require.NoError(t, err)
	require.NotNil(t, rs.Class)
	assert.False(t, rs.Class.GetBold())
	assert.True(t, rs.NoColor)
}

func TestTerminalProviderRejectsPixels(t *testing.T) {
	themeName, noColor = "", false
	c, f := newRowCmd(t, "--metrics", "pixel")
	rs, err := resolveRowSettings(c, defaultConfig(t), f)
	require.NoError(t, err)

	_, err = rs.terminalProvider()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use it with 'fit'")

	p, err := rs.provider()
	require.NoError(t, err)
	assert.IsType(t, &measure.Pixels{}, p)

	rs.Metrics = measure.BackendCell
	p, err = rs.terminalProvider()
	require.NoError(t, err)
	w, ok := p.MeasureLabel("Go", badge.Normal)
	require.True(t, ok)
	assert.Equal(t, 6, w)
}
