package fit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want Result
	}{
		{
			name: "empty widths",
			in:   Input{Available: 100, Gap: 8, Plus1: 30},
			want: Result{},
		},
		{
			name: "minimum visible overrides badge reservation",
			in:   Input{Widths: []int{70, 60, 55}, Plus1: 30, Plus2: 38, Available: 150, Gap: 8},
			want: Result{Visible: 2, Hidden: 1},
		},
		{
			name: "everything fits with room to spare",
			in:   Input{Widths: []int{70, 60, 55}, Plus1: 30, Plus2: 38, Available: 201, Gap: 8},
			want: Result{Visible: 3, Hidden: 0},
		},
		{
			name: "one short of fitting everything",
			in:   Input{Widths: []int{70, 60, 55}, Plus1: 30, Plus2: 38, Available: 200, Gap: 8},
			want: Result{Visible: 2, Hidden: 1},
		},
		{
			name: "first label wider than container",
			in:   Input{Widths: []int{70, 60, 55}, Plus1: 30, Plus2: 38, Available: 10, Gap: 8},
			want: Result{Visible: 0, Hidden: 3},
		},
		{
			name: "two labels fitting together are never collapsed",
			in:   Input{Widths: []int{40, 50}, Plus1: 30, Available: 98, Gap: 8},
			want: Result{Visible: 2, Hidden: 0},
		},
		{
			name: "two labels not fitting together fall back to the loop",
			in:   Input{Widths: []int{40, 50}, Plus1: 30, Available: 97, Gap: 8},
			want: Result{Visible: 1, Hidden: 1},
		},
		{
			name: "small set gets no minimum visible override",
			in:   Input{Widths: []int{40, 50}, Plus1: 70, Available: 97, Gap: 8},
			want: Result{Visible: 0, Hidden: 2},
		},
		{
			name: "single label that does not fit",
			in:   Input{Widths: []int{70}, Plus1: 30, Available: 60, Gap: 8},
			want: Result{Visible: 0, Hidden: 1},
		},
		{
			name: "multi digit badge reserved while ten or more remain",
			in:   Input{Widths: repeat(10, 12), Plus1: 3, Plus2: 4, Available: 30, Gap: 1},
			want: Result{Visible: 2, Hidden: 10},
		},
		{
			name: "minimum visible of one",
			in:   Input{Widths: repeat(10, 12), Plus1: 3, Plus2: 4, Available: 30, Gap: 1, MinVisible: 1},
			want: Result{Visible: 2, Hidden: 10},
		},
		{
			name: "reservation switches to single digit badge",
			in:   Input{Widths: repeat(5, 11), Plus1: 2, Plus2: 3, Available: 20, Gap: 1},
			want: Result{Visible: 3, Hidden: 8},
		},
		{
			name: "custom minimum visible",
			in:   Input{Widths: []int{10, 10, 10, 10}, Plus1: 5, Available: 32, Gap: 1, MinVisible: 3},
			want: Result{Visible: 3, Hidden: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.in.Widths), got.Total())
		})
	}
}

func TestCalculateTotalsAndMonotonicity(t *testing.T) {
	sets := [][]int{
		{70, 60, 55},
		{40, 50},
		{12},
		{5, 30, 5, 30, 5, 30, 5},
		repeat(7, 15),
		{100, 1, 1, 1},
	}
	for _, widths := range sets {
		prev := -1
		for avail := -5; avail <= 400; avail++ {
			in := Input{Widths: widths, Plus1: 9, Plus2: 12, Available: avail, Gap: 2}
			res := Calculate(in)
			require.GreaterOrEqual(t, res.Visible, 0)
			require.GreaterOrEqual(t, res.Hidden, 0)
			require.Equal(t, len(widths), res.Total())
			require.GreaterOrEqual(t, res.Visible, prev, "widths=%v avail=%d", widths, avail)
			prev = res.Visible
			require.Equal(t, res, Calculate(in), "recomputation must be idempotent")
		}
		assert.Equal(t, len(widths), prev, "a wide enough container shows every label")
	}
}

func TestCalculateOverrideMayOverflow(t *testing.T) {
	in := Input{Widths: []int{70, 60, 55}, Plus1: 30, Plus2: 38, Available: 150, Gap: 8}
	res := Calculate(in)
	require.Equal(t, Result{Visible: 2, Hidden: 1}, res)
	// 70 + 8 + 60 + 8 + 30: the badge lands past the container edge.
	assert.Equal(t, 176, Width(in, res))
}

func TestResultOverflow(t *testing.T) {
	assert.Equal(t, "", Result{Visible: 3}.Overflow())
	assert.Equal(t, "+1", Result{Visible: 2, Hidden: 1}.Overflow())
	assert.Equal(t, "+12", Result{Hidden: 12}.Overflow())
}

func TestInitial(t *testing.T) {
	assert.Equal(t, Result{Visible: 0, Hidden: 4}, Initial(4))
	assert.Equal(t, Result{}, Initial(-1))
}

func TestWidth(t *testing.T) {
	in := Input{Widths: []int{4, 6, 8}, Plus1: 3, Plus2: 5, Gap: 1}
	assert.Equal(t, 0, Width(in, Result{}))
	assert.Equal(t, 3, Width(in, Result{Hidden: 3}))
	assert.Equal(t, 4+1+6+1+3, Width(in, Result{Visible: 2, Hidden: 1}))
	assert.Equal(t, 4+1+6+1+8, Width(in, Result{Visible: 3}))
}

func repeat(w, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = w
	}
	return out
}
