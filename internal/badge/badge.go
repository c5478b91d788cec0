// Package badge styles and renders label badges and the "+N" overflow badge.
package badge

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/tagline/internal/fit"
)

// Palette holds the badge colors. Nil colors are left unset.
type Palette struct {
	LabelFG    color.Color
	LabelBG    color.Color
	OverflowFG color.Color
	OverflowBG color.Color
}

// Styles are the lipgloss styles used both for painting badges and for
// measuring them.
type Styles struct {
	Variant  Variant
	Label    lipgloss.Style
	Overflow lipgloss.Style
}

// NewStyles builds badge styles for the given palette and variant.
func NewStyles(p Palette, v Variant, noColor bool) Styles {
	if v == "" {
		v = DefaultVariant
	}
	pad := v.Padding()
	label := lipgloss.NewStyle().Padding(0, pad)
	overflow := lipgloss.NewStyle().Padding(0, pad)
	if !noColor {
		if v == Normal {
			label = label.Bold(true)
		}
		label = withColors(label, p.LabelFG, p.LabelBG)
		overflow = withColors(overflow, p.OverflowFG, p.OverflowBG)
	}
	return Styles{Variant: v, Label: label, Overflow: overflow}
}

func withColors(s lipgloss.Style, fg, bg color.Color) lipgloss.Style {
	if fg != nil {
		s = s.Foreground(fg)
	}
	if bg != nil {
		s = s.Background(bg)
	}
	return s
}

// RenderLabel renders a single label badge.
func (s Styles) RenderLabel(text string) string {
	return s.Label.Render(text)
}

// RenderOverflow renders the overflow badge for a hidden count.
func (s Styles) RenderOverflow(hidden int) string {
	return s.Overflow.Render(fit.Result{Hidden: hidden}.Overflow())
}

// Render paints labels[:res.Visible] followed by one "+N" badge when
// res.Hidden > 0, separated by gap spaces.
func Render(labels []string, res fit.Result, s Styles, gap int) string {
	visible := res.Visible
	if visible > len(labels) {
		visible = len(labels)
	}
	if visible < 0 {
		visible = 0
	}
	parts := make([]string, 0, visible+1)
	for _, l := range labels[:visible] {
		parts = append(parts, s.RenderLabel(l))
	}
	if res.Hidden > 0 {
		parts = append(parts, s.RenderOverflow(res.Hidden))
	}
	if gap < 0 {
		gap = 0
	}
	return strings.Join(parts, strings.Repeat(" ", gap))
}
