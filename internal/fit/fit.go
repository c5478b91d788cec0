// Package fit decides how many labels of an ordered set fit on one line,
// collapsing the rest into a "+N" overflow badge.
package fit

import "fmt"

// DefaultMinVisible is the number of labels the calculator tries to keep
// visible even when that leaves no room for the overflow badge.
const DefaultMinVisible = 2

// MultiDigitThreshold is the smallest hidden count whose badge uses the
// multi-digit width ("+10" and above).
const MultiDigitThreshold = 10

// Input holds the measured widths and layout parameters for one fit.
type Input struct {
	Widths     []int // One per processed label, in display order
	Plus1      int   // Overflow badge width for hidden counts 1..9
	Plus2      int   // Overflow badge width for hidden counts >= 10
	Available  int   // Horizontal space for the whole row
	Gap        int   // Spacing between adjacent rendered items
	MinVisible int   // Minimum-visible policy; <= 0 uses DefaultMinVisible
}

// Result is the outcome of a fit. Visible+Hidden always equals the number of
// widths in the Input.
type Result struct {
	Visible int `json:"visible" yaml:"visible" toml:"visible"`
	Hidden  int `json:"hidden" yaml:"hidden" toml:"hidden"`
}

// Total returns the number of labels the result covers.
func (r Result) Total() int {
	return r.Visible + r.Hidden
}

// Overflow returns the overflow badge text ("+N"), or "" when nothing is hidden.
func (r Result) Overflow() string {
	if r.Hidden <= 0 {
		return ""
	}
	return fmt.Sprintf("+%d", r.Hidden)
}

// Initial is the result reported before any measurement is available: every
// label is folded into the overflow badge.
func Initial(total int) Result {
	if total < 0 {
		total = 0
	}
	return Result{Visible: 0, Hidden: total}
}

func (in Input) minVisible() int {
	if in.MinVisible <= 0 {
		return DefaultMinVisible
	}
	return in.MinVisible
}

// overflowWidth returns the badge width for the given hidden count.
func (in Input) overflowWidth(hidden int) int {
	if hidden <= 0 {
		return 0
	}
	if hidden < MultiDigitThreshold {
		return in.Plus1
	}
	return in.Plus2
}

// Calculate runs the greedy left-to-right prefix fit.
//
// Small sets (at most MinVisible labels) are shown in full when they fit
// together. Otherwise labels are committed while the row, including a
// reserved trailing gap and overflow badge, stays within Available. While
// fewer than MinVisible labels are committed and the set is larger than
// MinVisible, a label that only fits without the reservation is committed
// anyway; the rendered row may then exceed Available once the badge is
// appended. When no label fits at all, every label is hidden and the badge is
// shown without checking its own width.
func Calculate(in Input) Result {
	n := len(in.Widths)
	if n == 0 {
		return Result{}
	}
	minVisible := in.minVisible()

	if n <= minVisible {
		total := 0
		for i, w := range in.Widths {
			if i > 0 {
				total += in.Gap
			}
			total += w
		}
		if total <= in.Available {
			return Result{Visible: n}
		}
	}

	used, count := 0, 0
	for i, w := range in.Widths {
		gapBefore := 0
		if count > 0 {
			gapBefore = in.Gap
		}
		remaining := n - (i + 1)
		reserved := 0
		if remaining > 0 {
			reserved = in.Gap + in.overflowWidth(remaining)
		}

		if used+gapBefore+w+reserved <= in.Available {
			used += gapBefore + w
			count++
			continue
		}
		if count < minVisible && n > minVisible && used+gapBefore+w <= in.Available {
			used += gapBefore + w
			count++
			continue
		}
		break
	}

	return Result{Visible: count, Hidden: n - count}
}

// Width returns the rendered width of a row laid out with res: the visible
// labels, the gaps between items and the overflow badge when present.
func Width(in Input, res Result) int {
	total := 0
	items := 0
	for i := 0; i < res.Visible && i < len(in.Widths); i++ {
		if items > 0 {
			total += in.Gap
		}
		total += in.Widths[i]
		items++
	}
	if res.Hidden > 0 {
		if items > 0 {
			total += in.Gap
		}
		total += in.overflowWidth(res.Hidden)
	}
	return total
}
