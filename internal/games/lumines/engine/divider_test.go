package engine

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDividerVisitsEveryColumnOncePerCycle(t *testing.T) {
	d := NewDivider(ReferenceDividerStep, ReferenceDividerSpan, DefaultCols)

	for cycle := 0; cycle < 2; cycle++ {
		var cols []int
		for i := 0; i < 81; i++ {
			if col, ok := d.Advance(); ok {
				cols = append(cols, col)
			}
		}
		require.Len(t, cols, DefaultCols, "cycle %d", cycle)
		for i, col := range cols {
			assert.Equal(t, i, col, "cycle %d", cycle)
		}
		assert.Zero(t, d.Position(), "divider wraps after the last column")
	}
}

func TestDividerFiveTicksPerColumn(t *testing.T) {
	d := NewDivider(ReferenceDividerStep, ReferenceDividerSpan, DefaultCols)

	for i := 1; i <= 4; i++ {
		_, ok := d.Advance()
		assert.False(t, ok, "tick %d", i)
	}
	col, ok := d.Advance()
	assert.True(t, ok)
	assert.Equal(t, 0, col)
	assert.InDelta(t, 1.0, d.Column(), 1e-9)
}

func TestDividerRescaled(t *testing.T) {
	d := NewDivider(1, 3, 4)

	var cols []int
	for i := 0; i < 13; i++ {
		if col, ok := d.Advance(); ok {
			cols = append(cols, col)
		}
	}
	assert.Equal(t, []int{0, 1, 2, 3}, cols)
	assert.Zero(t, d.Position())
}

func TestNewDividerRejectsUnevenStep(t *testing.T) {
	assert.Panics(t, func() { NewDivider(3, 20, 16) })
	assert.Panics(t, func() { NewDivider(0, 20, 16) })
	assert.Panics(t, func() { NewDivider(4, 20, 0) })
}

func TestDividerCyclesAtEveryScale(t *testing.T) {
	tests := []struct {
		step, span, cols int
	}{
		{1, 1, 4},
		{4, 4, DefaultCols},
		{2, 2, 5},
		{2, 4, 5},
		{4, 8, DefaultCols},
		{1, 3, 4},
		{ReferenceDividerStep, ReferenceDividerSpan, DefaultCols},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("step%d/span%d/cols%d", tt.step, tt.span, tt.cols), func(t *testing.T) {
			d := NewDivider(tt.step, tt.span, tt.cols)
			perCycle := tt.span*tt.cols/tt.step + 1

			want := make([]int, tt.cols)
			for i := range want {
				want[i] = i
			}
			for cycle := 0; cycle < 3; cycle++ {
				var cols []int
				for i := 0; i < perCycle; i++ {
					if col, ok := d.Advance(); ok {
						require.Less(t, col, tt.cols, "cycle %d tick %d", cycle, i)
						cols = append(cols, col)
					}
				}
				assert.Equal(t, want, cols, "cycle %d", cycle)
				assert.Zero(t, d.Position(), "cycle %d ends at the left edge", cycle)
			}
		})
	}
}

func TestSessionSweepsWithOneTickPerColumn(t *testing.T) {
	for _, step := range []int{1, 2, ReferenceDividerStep} {
		t.Run(fmt.Sprintf("step%d", step), func(t *testing.T) {
			s := NewSession(Options{
				Rows:        4,
				Cols:        4,
				FallEvery:   never,
				DividerStep: step,
				DividerSpan: step,
				Source:      NewSequenceSource(ColourA, ColourB),
			})
			loadGrid(t, s,
				"....",
				"....",
				"X...",
				"X...",
			)

			var cols []int
			require.NotPanics(t, func() {
				for i := 0; i < 3*(4+1); i++ {
					if res := s.Tick(Input{}); res.Finalized {
						cols = append(cols, res.Column)
					}
				}
			})
			assert.Equal(t, []int{0, 1, 2, 3, 0, 1, 2, 3, 0, 1, 2, 3}, cols)
			assert.Equal(t, 2+EmptyBoardBonus, s.Score())
			assert.True(t, s.Snapshot().IsEmpty())
		})
	}
}

func TestFinalizeMarkedAboveSettled(t *testing.T) {
	g := MustParseGrid(
		"....",
		"....",
		"....",
		"....",
		"....",
		".X..",
		".X..",
		".A..",
		".B..",
		".A..",
	)

	res := Finalize(g, 1, EmptyBoardBonus)

	assert.Equal(t, 2, res.Cleared)
	assert.Zero(t, res.Bonus)
	assert.Equal(t, gridString(
		"....",
		"....",
		"....",
		"....",
		"....",
		"....",
		"....",
		".A..",
		".B..",
		".A..",
	), g.String())
}

func TestFinalizeMarkedBelowSettled(t *testing.T) {
	g := MustParseGrid(
		"....",
		"....",
		"....",
		"....",
		"....",
		".A..",
		".B..",
		".A..",
		".X..",
		".X..",
	)

	res := Finalize(g, 1, EmptyBoardBonus)

	assert.Equal(t, 2, res.Cleared)
	assert.Equal(t, gridString(
		"....",
		"....",
		"....",
		"....",
		"....",
		"....",
		"....",
		".A..",
		".B..",
		".A..",
	), g.String(), "settled cells drop into the cleared rows in order")
}

func TestFinalizeInterleaved(t *testing.T) {
	g := MustParseGrid(
		"..",
		"..",
		"..",
		"..",
		"A.",
		"X.",
		"B.",
		"X.",
		"A.",
		"B.",
	)

	res := Finalize(g, 0, EmptyBoardBonus)

	assert.Equal(t, 2, res.Cleared)
	assert.Equal(t, gridString(
		"..",
		"..",
		"..",
		"..",
		"..",
		"..",
		"A.",
		"B.",
		"A.",
		"B.",
	), g.String())
}

func TestFinalizeLeavesOtherColumns(t *testing.T) {
	g := MustParseGrid(
		"....",
		"XXB.",
		"XXA.",
	)

	res := Finalize(g, 0, EmptyBoardBonus)

	assert.Equal(t, 2, res.Cleared)
	assert.Equal(t, "....\n.XB.\n.XA.", g.String())
}

func TestFinalizeEmptyBoardBonus(t *testing.T) {
	g := MustParseGrid(
		"....",
		"XX..",
		"XX..",
	)

	first := Finalize(g, 0, EmptyBoardBonus)
	assert.Equal(t, 2, first.Cleared)
	assert.Zero(t, first.Bonus, "column 1 still holds fixed cells")

	second := Finalize(g, 1, EmptyBoardBonus)
	assert.Equal(t, 2, second.Cleared)
	assert.Equal(t, EmptyBoardBonus, second.Bonus)
	assert.True(t, g.IsEmpty())
}

func TestFinalizeNothingMarked(t *testing.T) {
	g := NewGrid(4, 4)
	res := Finalize(g, 2, EmptyBoardBonus)
	assert.Equal(t, FinalizeResult{}, res, "no bonus without a clear")

	g = MustParseGrid("....", ".AB.", ".BA.")
	res = Finalize(g, 1, EmptyBoardBonus)
	assert.Equal(t, FinalizeResult{}, res)
	assert.Equal(t, "....\n.AB.\n.BA.", g.String())
}

func TestFinalizeRunsCascade(t *testing.T) {
	// Removing the marked B pair drops the A pair next to the other As.
	g := MustParseGrid(
		"...",
		"A..",
		"A..",
		"YAB",
		"YAA",
	)

	res := Finalize(g, 0, EmptyBoardBonus)

	assert.Equal(t, 2, res.Cleared)
	assert.Equal(t, 4, res.Marked)
	assert.Equal(t, "...\n...\n...\nXXB\nXXA", g.String())
}

func TestFinalizeClearsOnlyMarkedAndLeavesNoGaps(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 300; i++ {
		g := randomStack(rng, 10, 16, ColourASettled, ColourBSettled, ColourAMarked, ColourBMarked)
		col := rng.Intn(16)

		fixedBefore := columnFixed(g, col)
		markedBefore := columnMarked(g, col)
		before := g.Clone()

		res := Finalize(g, col, EmptyBoardBonus)

		assert.Equal(t, markedBefore, res.Cleared)
		assert.Equal(t, fixedBefore-markedBefore, columnFixed(g, col), "grid %d col %d:\n%s", i, col, before)
		for c := 0; c < 16; c++ {
			if c != col {
				assert.Equal(t, columnFixed(before, c), columnFixed(g, c), "column %d untouched", c)
			}
			assertNoGaps(t, g, c)
		}
	}
}

func columnFixed(g *Grid, col int) int {
	n := 0
	for r := 0; r < g.Rows(); r++ {
		if g.Get(r, col).IsFixed() {
			n++
		}
	}
	return n
}

func columnMarked(g *Grid, col int) int {
	n := 0
	for r := 0; r < g.Rows(); r++ {
		if g.Get(r, col).IsMarked() {
			n++
		}
	}
	return n
}

func assertNoGaps(t *testing.T, g *Grid, col int) {
	t.Helper()
	seen := false
	for r := 0; r < g.Rows(); r++ {
		c := g.Get(r, col)
		if c.IsFixed() {
			seen = true
			continue
		}
		if seen {
			t.Errorf("column %d has a gap at row %d:\n%s", col, r, g)
			return
		}
	}
}
