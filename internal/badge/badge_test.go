package badge

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/tagline/internal/fit"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{in: "", want: Normal},
		{in: "xs", want: Compact},
		{in: "XS", want: Compact},
		{in: "compact", want: Compact},
		{in: "sm", want: Normal},
		{in: " normal ", want: Normal},
		{in: "lg", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVariant(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid size")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVariantFlagValue(t *testing.T) {
	var v Variant
	assert.Equal(t, "sm", v.String())
	require.NoError(t, v.Set("xs"))
	assert.Equal(t, Compact, v)
	assert.Equal(t, "xs", v.String())
	assert.Equal(t, "size", v.Type())
	require.Error(t, v.Set("huge"))
	assert.Equal(t, Compact, v, "failed Set keeps the previous value")
}

func TestVariantPaddingAndToggle(t *testing.T) {
	assert.Equal(t, 1, Compact.Padding())
	assert.Equal(t, 2, Normal.Padding())
	assert.Equal(t, Normal, Compact.Toggle())
	assert.Equal(t, Compact, Normal.Toggle())
}

func TestRenderNoColor(t *testing.T) {
	s := NewStyles(Palette{}, Compact, true)
	labels := []string{"Full-time", "Remote", "Senior"}

	assert.Equal(t, " Full-time   Remote   +1 ", Render(labels, fit.Result{Visible: 2, Hidden: 1}, s, 1))
	assert.Equal(t, " Full-time   Remote   Senior ", Render(labels, fit.Result{Visible: 3}, s, 1))
	assert.Equal(t, " +3 ", Render(labels, fit.Result{Hidden: 3}, s, 1))
	assert.Equal(t, "", Render(nil, fit.Result{}, s, 1))
}

func TestRenderClampsVisible(t *testing.T) {
	s := NewStyles(Palette{}, Compact, true)
	out := Render([]string{"a"}, fit.Result{Visible: 5}, s, 2)
	assert.Equal(t, " a ", out)
}

func TestRenderedWidthMatchesPadding(t *testing.T) {
	p := Palette{
		LabelFG:    lipgloss.Color("81"),
		LabelBG:    lipgloss.Color("236"),
		OverflowFG: lipgloss.Color("244"),
	}
	for _, v := range []Variant{Compact, Normal} {
		s := NewStyles(p, v, false)
		assert.Equal(t, len("Remote")+2*v.Padding(), lipgloss.Width(s.RenderLabel("Remote")))
		assert.Equal(t, len("+12")+2*v.Padding(), lipgloss.Width(s.RenderOverflow(12)))
	}
}
