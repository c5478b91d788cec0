// Package tagrow is a single-line label row: it measures its labels, fits as
// many as the container allows and folds the rest into a "+N" badge.
package tagrow

import (
	"sync"

	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/tagline/internal/badge"
	"github.com/oakwood-commons/tagline/internal/fit"
	"github.com/oakwood-commons/tagline/internal/measure"
)

// DefaultGap is the spacing, in cells, between adjacent badges.
const DefaultGap = 1

// Options configures a Row.
type Options struct {
	Labels   []string
	Fallback string // Defaults to DefaultFallback
	Variant  badge.Variant
	Palette  badge.Palette
	NoColor  bool

	// Class wraps the whole row. Its horizontal frame (margins, padding,
	// borders) is taken out of the container width before fitting.
	Class *lipgloss.Style

	// Provider measures badges. Nil measures with the row's own styles.
	Provider measure.Provider

	Gap        int
	MinVisible int
	Logger     logr.Logger
}

// Stats counts recomputation outcomes.
type Stats struct {
	Computations int // Results committed
	Superseded   int // Results dropped because a newer trigger arrived
	Unavailable  int // Triggers skipped because measurement was unavailable
}

// Row holds the layout state of one label row. Rows are independent; each
// keeps its own container width and last result.
type Row struct {
	mu sync.Mutex

	raw      []string
	labels   []string
	fallback string
	variant  badge.Variant
	palette  badge.Palette
	noColor  bool
	styles   badge.Styles
	class    *lipgloss.Style
	provider measure.Provider
	gap      int
	minVis   int

	width     int
	haveWidth bool
	cached    *measure.Measurement
	result    fit.Result
	gen       uint64
	stats     Stats
	log       logr.Logger
}

// New creates a row. Nothing is measured until the first Resize.
func New(opts Options) *Row {
	v := opts.Variant
	if v == "" {
		v = badge.DefaultVariant
	}
	gap := opts.Gap
	if gap < 0 {
		gap = 0
	}
	r := &Row{
		raw:      append([]string(nil), opts.Labels...),
		fallback: opts.Fallback,
		variant:  v,
		palette:  opts.Palette,
		noColor:  opts.NoColor,
		class:    opts.Class,
		provider: opts.Provider,
		gap:      gap,
		minVis:   opts.MinVisible,
		log:      opts.Logger,
	}
	r.labels = ProcessLabels(r.raw, r.fallback)
	r.styles = badge.NewStyles(r.palette, r.variant, r.noColor)
	if r.provider == nil {
		r.provider = measure.NewCells(r.buildStyles)
	}
	r.result = fit.Initial(len(r.labels))
	return r
}

func (r *Row) buildStyles(v badge.Variant) badge.Styles {
	r.mu.Lock()
	p, noColor := r.palette, r.noColor
	r.mu.Unlock()
	return badge.NewStyles(p, v, noColor)
}

// Resize is the container-resize callback. It measures (when labels or style
// changed since the last pass), fits and commits the result. A pass whose
// trigger has been overtaken by a newer one is discarded.
func (r *Row) Resize(width int) fit.Result {
	r.mu.Lock()
	r.gen++
	gen := r.gen
	r.width = width
	r.haveWidth = true
	labels := r.labels
	variant := r.variant
	provider := r.provider
	cached := r.cached
	gap, minVis := r.gap, r.minVis
	frame := 0
	if r.class != nil {
		frame = r.class.GetHorizontalFrameSize()
	}
	r.mu.Unlock()

	m := cached
	if m == nil {
		mm, ok := measure.All(provider, labels, variant)
		if !ok {
			r.mu.Lock()
			r.stats.Unavailable++
			res := r.result
			r.mu.Unlock()
			r.log.V(1).Info("label measurement unavailable; keeping previous layout", "labels", len(labels))
			return res
		}
		m = &mm
	}

	res := fit.Calculate(m.Input(width-frame, gap, minVis))

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		r.stats.Superseded++
		return r.result
	}
	r.cached = m
	r.result = res
	r.stats.Computations++
	r.log.V(2).Info("label row fitted", "width", width, "visible", res.Visible, "hidden", res.Hidden)
	return res
}

// invalidate drops the cached measurement and returns the width to recompute
// with, if any. Callers hold r.mu.
func (r *Row) invalidate() (int, bool) {
	r.cached = nil
	r.gen++
	if !r.haveWidth || r.result.Total() != len(r.labels) {
		r.result = fit.Initial(len(r.labels))
	}
	return r.width, r.haveWidth
}

// SetLabels replaces the label sequence and recomputes with the last width.
func (r *Row) SetLabels(raw []string) fit.Result {
	r.mu.Lock()
	r.raw = append([]string(nil), raw...)
	r.labels = ProcessLabels(r.raw, r.fallback)
	w, ok := r.invalidate()
	res := r.result
	r.mu.Unlock()
	if !ok {
		return res
	}
	return r.Resize(w)
}

// AddLabel appends one label and recomputes.
func (r *Row) AddLabel(label string) fit.Result {
	r.mu.Lock()
	raw := append(append([]string(nil), r.raw...), label)
	r.mu.Unlock()
	return r.SetLabels(raw)
}

// DropLast removes the last raw label, if any, and recomputes.
func (r *Row) DropLast() fit.Result {
	r.mu.Lock()
	raw := append([]string(nil), r.raw...)
	r.mu.Unlock()
	if len(raw) > 0 {
		raw = raw[:len(raw)-1]
	}
	return r.SetLabels(raw)
}

// SetVariant switches the badge size and recomputes.
func (r *Row) SetVariant(v badge.Variant) fit.Result {
	if v == "" {
		v = badge.DefaultVariant
	}
	r.mu.Lock()
	if v == r.variant {
		res := r.result
		r.mu.Unlock()
		return res
	}
	r.variant = v
	r.styles = badge.NewStyles(r.palette, v, r.noColor)
	w, ok := r.invalidate()
	res := r.result
	r.mu.Unlock()
	if !ok {
		return res
	}
	return r.Resize(w)
}

// SetPalette changes badge colors and recomputes.
func (r *Row) SetPalette(p badge.Palette, noColor bool) fit.Result {
	r.mu.Lock()
	r.palette = p
	r.noColor = noColor
	r.styles = badge.NewStyles(p, r.variant, noColor)
	w, ok := r.invalidate()
	res := r.result
	r.mu.Unlock()
	if !ok {
		return res
	}
	return r.Resize(w)
}

// Result returns the last committed fit.
func (r *Row) Result() fit.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result
}

// Labels returns the processed labels.
func (r *Row) Labels() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.labels...)
}

// Variant returns the current badge size.
func (r *Row) Variant() badge.Variant {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.variant
}

// Measurement returns the widths behind the last committed result.
func (r *Row) Measurement() (measure.Measurement, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cached == nil {
		return measure.Measurement{}, false
	}
	return *r.cached, true
}

// Stats returns recomputation counters.
func (r *Row) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// View renders the row.
func (r *Row) View() string {
	r.mu.Lock()
	out := badge.Render(r.labels, r.result, r.styles, r.gap)
	class := r.class
	r.mu.Unlock()
	if class != nil {
		return class.Render(out)
	}
	return out
}
