package engine

import (
	"fmt"
	"strings"
)

// Grid is a fixed rows×cols store of cells, row-major, row 0 at the top.
type Grid struct {
	rows  int
	cols  int
	cells []Cell
}

// NewGrid creates an all-Empty grid. Both dimensions must be at least 2.
func NewGrid(rows, cols int) *Grid {
	if rows < 2 || cols < 2 {
		panic(fmt.Sprintf("engine: grid must be at least 2x2, got %dx%d", rows, cols))
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
}

// Rows returns the grid height.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the grid width.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether (row, col) addresses a cell of the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

func (g *Grid) index(row, col int) int {
	if !g.InBounds(row, col) {
		panic(fmt.Sprintf("engine: cell (%d,%d) outside %dx%d grid", row, col, g.rows, g.cols))
	}
	return row*g.cols + col
}

// Get returns the cell at (row, col). Out-of-range access panics.
func (g *Grid) Get(row, col int) Cell {
	return g.cells[g.index(row, col)]
}

// Set stores c at (row, col). Out-of-range access panics.
func (g *Grid) Set(row, col int, c Cell) {
	g.cells[g.index(row, col)] = c
}

// IsEmpty reports whether no cell is fixed.
func (g *Grid) IsEmpty() bool {
	for _, c := range g.cells {
		if c.IsFixed() {
			return false
		}
	}
	return true
}

// FixedCount returns the number of settled or marked cells.
func (g *Grid) FixedCount() int {
	n := 0
	for _, c := range g.cells {
		if c.IsFixed() {
			n++
		}
	}
	return n
}

// MarkedCount returns the number of marked cells.
func (g *Grid) MarkedCount() int {
	n := 0
	for _, c := range g.cells {
		if c.IsMarked() {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{rows: g.rows, cols: g.cols, cells: cells}
}

// copyFrom overwrites g with the contents of a same-sized grid.
func (g *Grid) copyFrom(other *Grid) {
	copy(g.cells, other.cells)
}

// Equal reports whether both grids have the same size and contents.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// ClearRaw empties every raw cell, removing the falling piece's footprint.
func (g *Grid) ClearRaw() {
	for i, c := range g.cells {
		if c.IsRaw() {
			g.cells[i] = Empty
		}
	}
}

// Reset empties the whole grid.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i] = Empty
	}
}

// String dumps the grid one row per line using Cell.Char.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.cols + 1) * g.rows)
	for r := 0; r < g.rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < g.cols; c++ {
			sb.WriteRune(g.Get(r, c).Char())
		}
	}
	return sb.String()
}

// ParseGrid builds a grid from rows of cell characters (see Cell.Char).
// All rows must have the same length.
func ParseGrid(rows ...string) (*Grid, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("engine: grid needs at least 2 rows, got %d", len(rows))
	}
	cols := len([]rune(rows[0]))
	if cols < 2 {
		return nil, fmt.Errorf("engine: grid needs at least 2 columns, got %d", cols)
	}
	g := NewGrid(len(rows), cols)
	for r, line := range rows {
		runes := []rune(line)
		if len(runes) != cols {
			return nil, fmt.Errorf("engine: row %d has %d columns, want %d", r, len(runes), cols)
		}
		for c, ch := range runes {
			cell, ok := ParseCell(ch)
			if !ok {
				return nil, fmt.Errorf("engine: row %d col %d: unknown cell %q", r, c, ch)
			}
			g.Set(r, c, cell)
		}
	}
	return g, nil
}

// MustParseGrid is like ParseGrid but panics on malformed input.
func MustParseGrid(rows ...string) *Grid {
	g, err := ParseGrid(rows...)
	if err != nil {
		panic(err)
	}
	return g
}
