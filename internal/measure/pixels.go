package measure

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/oakwood-commons/tagline/internal/badge"
)

// Pixel padding per side, matching the web badges (px-2 / px-3).
const (
	CompactPixelPadding = 8
	NormalPixelPadding  = 12
)

// DefaultPixelGap is the pixel spacing between badges (gap-2).
const DefaultPixelGap = 8

// Pixels measures badge widths in pixels using a bitmap font face.
type Pixels struct {
	Face font.Face
}

// NewPixels returns a pixel provider using the 7x13 basic font.
func NewPixels() *Pixels {
	return &Pixels{Face: basicfont.Face7x13}
}

func pixelPadding(v badge.Variant) int {
	if v == badge.Compact {
		return CompactPixelPadding
	}
	return NormalPixelPadding
}

func (p *Pixels) width(text string, v badge.Variant) (int, bool) {
	if p == nil || p.Face == nil {
		return 0, false
	}
	return font.MeasureString(p.Face, text).Ceil() + 2*pixelPadding(v), true
}

// MeasureLabel implements Provider.
func (p *Pixels) MeasureLabel(label string, v badge.Variant) (int, bool) {
	return p.width(label, v)
}

// MeasureOverflow implements Provider.
func (p *Pixels) MeasureOverflow(d DigitClass, v badge.Variant) (int, bool) {
	return p.width(d.Sample(), v)
}
