package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

const never = 1 << 20

// quietSession returns a session whose piece never falls on its own and
// whose divider never reaches a column, so tests drive both explicitly.
func quietSession(rows, cols int) *Session {
	return NewSession(Options{
		Rows:           rows,
		Cols:           cols,
		FallEvery:      never,
		RotateDebounce: 1,
		DividerStep:    1,
		DividerSpan:    never,
		Source:         NewSequenceSource(ColourA, ColourB),
	})
}

func loadGrid(t *testing.T, s *Session, rows ...string) {
	t.Helper()
	g, err := ParseGrid(rows...)
	require.NoError(t, err)
	require.Equal(t, s.grid.Rows(), g.Rows(), "rows")
	require.Equal(t, s.grid.Cols(), g.Cols(), "cols")
	s.grid.copyFrom(g)
}

func placePiece(s *Session, l Layout, row, col int) {
	s.piece = NewPiece(l, col)
	s.piece.Row = row
}

type stubRanker struct {
	threshold int
	offered   []int
}

func (r *stubRanker) Qualifies(score int) bool {
	r.offered = append(r.offered, score)
	return score > r.threshold
}

var down = Input{Down: true}

// randomStack builds a gap-free grid: every column holds a random-height
// stack of fixed cells drawn from palette.
func randomStack(rng *rand.Rand, rows, cols int, palette ...Cell) *Grid {
	g := NewGrid(rows, cols)
	for c := 0; c < cols; c++ {
		h := rng.Intn(rows + 1)
		for r := rows - h; r < rows; r++ {
			g.Set(r, c, palette[rng.Intn(len(palette))])
		}
	}
	return g
}
