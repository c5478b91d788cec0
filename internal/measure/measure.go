// Package measure supplies badge widths to the fit calculator.
//
// A Provider is a measurement oracle: it reports how wide a label badge or an
// overflow badge renders for a given size variant. Backends differ in the
// unit they measure in (terminal cells or pixels); callers must compare the
// widths against a container width in the same unit.
package measure

import (
	"github.com/oakwood-commons/tagline/internal/badge"
	"github.com/oakwood-commons/tagline/internal/fit"
)

// DigitClass selects which overflow badge width is measured.
type DigitClass int

const (
	// SingleDigit covers hidden counts 1..9.
	SingleDigit DigitClass = iota + 1
	// MultiDigit covers hidden counts of 10 and more.
	MultiDigit
)

// Sample returns the badge text measured for the class.
func (d DigitClass) Sample() string {
	if d == MultiDigit {
		return "+99"
	}
	return "+9"
}

// Provider measures rendered badge widths. ok is false when the backend cannot
// measure yet (for example before styles are attached).
type Provider interface {
	MeasureLabel(label string, v badge.Variant) (width int, ok bool)
	MeasureOverflow(d DigitClass, v badge.Variant) (width int, ok bool)
}

// Measurement is one complete measurement pass over a label sequence.
type Measurement struct {
	Widths []int `json:"widths" yaml:"widths" toml:"widths"`
	Plus1  int   `json:"plus1" yaml:"plus1" toml:"plus1"`
	Plus2  int   `json:"plus2" yaml:"plus2" toml:"plus2"`
}

// All measures every label plus both overflow variants. It reports false if
// the provider is nil or any label cannot be measured. An unmeasurable
// multi-digit badge falls back to the single-digit width.
func All(p Provider, labels []string, v badge.Variant) (Measurement, bool) {
	if p == nil {
		return Measurement{}, false
	}
	widths := make([]int, len(labels))
	for i, l := range labels {
		w, ok := p.MeasureLabel(l, v)
		if !ok {
			return Measurement{}, false
		}
		widths[i] = w
	}
	plus1, ok := p.MeasureOverflow(SingleDigit, v)
	if !ok {
		plus1 = 0
	}
	plus2, ok := p.MeasureOverflow(MultiDigit, v)
	if !ok {
		plus2 = plus1
	}
	return Measurement{Widths: widths, Plus1: plus1, Plus2: plus2}, true
}

// Input turns the measurement into calculator input.
func (m Measurement) Input(available, gap, minVisible int) fit.Input {
	return fit.Input{
		Widths:     m.Widths,
		Plus1:      m.Plus1,
		Plus2:      m.Plus2,
		Available:  available,
		Gap:        gap,
		MinVisible: minVisible,
	}
}

// Fixed is a provider backed by precomputed widths, keyed by label text.
// Unknown labels are unmeasurable.
type Fixed struct {
	Labels map[string]int
	Plus1  int
	Plus2  int
}

// MeasureLabel implements Provider.
func (f Fixed) MeasureLabel(label string, _ badge.Variant) (int, bool) {
	w, ok := f.Labels[label]
	return w, ok
}

// MeasureOverflow implements Provider.
func (f Fixed) MeasureOverflow(d DigitClass, _ badge.Variant) (int, bool) {
	if d == MultiDigit {
		if f.Plus2 <= 0 {
			return 0, false
		}
		return f.Plus2, true
	}
	return f.Plus1, true
}
