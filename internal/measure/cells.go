package measure

import (
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/tagline/internal/badge"
)

// Cells measures badges by rendering them with the same lipgloss styles used
// for the visible row, so padding and borders are accounted for exactly.
type Cells struct {
	// Build returns the styles for a variant. Nil means styles are not
	// attached yet and nothing can be measured.
	Build func(badge.Variant) badge.Styles
}

// NewCells returns a provider that measures with the styles build produces.
func NewCells(build func(badge.Variant) badge.Styles) *Cells {
	return &Cells{Build: build}
}

// MeasureLabel implements Provider.
func (c *Cells) MeasureLabel(label string, v badge.Variant) (int, bool) {
	if c == nil || c.Build == nil {
		return 0, false
	}
	return lipgloss.Width(c.Build(v).RenderLabel(label)), true
}

// MeasureOverflow implements Provider.
func (c *Cells) MeasureOverflow(d DigitClass, v badge.Variant) (int, bool) {
	if c == nil || c.Build == nil {
		return 0, false
	}
	return lipgloss.Width(c.Build(v).Overflow.Render(d.Sample())), true
}

// Runes measures display width with go-runewidth and adds the variant's
// padding. It ignores styling entirely.
type Runes struct{}

// MeasureLabel implements Provider.
func (Runes) MeasureLabel(label string, v badge.Variant) (int, bool) {
	return runewidth.StringWidth(label) + 2*v.Padding(), true
}

// MeasureOverflow implements Provider.
func (Runes) MeasureOverflow(d DigitClass, v badge.Variant) (int, bool) {
	return runewidth.StringWidth(d.Sample()) + 2*v.Padding(), true
}
