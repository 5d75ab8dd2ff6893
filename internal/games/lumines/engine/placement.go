package engine

// placement is one cell written into the grid when a piece lands.
type placement struct {
	row, col int
	cell     Cell
}

// fits reports whether a piece anchored at (row, col) stays within the
// horizontal extent and covers no occupied on-board cell.
func fits(g *Grid, row, col int) bool {
	if col < 0 || col > g.Cols()-2 {
		return false
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			r, c := row+i, col+j
			if r < 0 || r >= g.Rows() {
				continue
			}
			if g.Get(r, c) != Empty {
				return false
			}
		}
	}
	return true
}

// blockedAtSpawn reports whether any on-board cell of a piece that has not
// fully entered the board overlaps the stack.
func blockedAtSpawn(g *Grid, p *Piece) bool {
	for i := 0; i < 2; i++ {
		r := p.Row + i
		if r < 0 || r >= g.Rows() {
			continue
		}
		for j := 0; j < 2; j++ {
			if g.Get(r, p.Col+j) != Empty {
				return true
			}
		}
	}
	return false
}

// resolveLanding decides whether p, after this tick's descent, has landed.
// On landing it steps the piece back up one row and returns where each of
// its four cells settles. The placements are not yet written.
func resolveLanding(g *Grid, p *Piece) ([]placement, bool) {
	switch {
	case p.Row > g.Rows()-2:
		p.Row--
		return fullLanding(p), true
	case g.Get(p.Row+1, p.Col) != Empty || g.Get(p.Row+1, p.Col+1) != Empty:
		p.Row--
		return straddleLanding(g, p), true
	}
	return nil, false
}

// fullLanding settles the whole piece at its anchor.
func fullLanding(p *Piece) []placement {
	out := make([]placement, 0, 4)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out = append(out, placement{p.Row + i, p.Col + j, p.Layout[i][j].Advance()})
		}
	}
	return out
}

// straddleLanding resolves each column of the piece on its own. A column
// with an open cell beneath falls until it meets the stack or the floor; a
// blocked column settles in place.
func straddleLanding(g *Grid, p *Piece) []placement {
	out := make([]placement, 0, 4)
	for j := 0; j < 2; j++ {
		col := p.Col + j
		top, bottom := p.Layout[0][j].Advance(), p.Layout[1][j].Advance()

		if g.Get(p.Row+2, col) != Empty {
			out = append(out,
				placement{p.Row, col, top},
				placement{p.Row + 1, col, bottom},
			)
			continue
		}

		rest := g.Rows()
		for i := p.Row + 3; i < g.Rows(); i++ {
			if g.Get(i, col) != Empty {
				rest = i
				break
			}
		}
		out = append(out,
			placement{rest - 2, col, top},
			placement{rest - 1, col, bottom},
		)
	}
	return out
}

// overflows reports whether any placement lies above the board.
func overflows(ps []placement) bool {
	for _, pl := range ps {
		if pl.row < 0 {
			return true
		}
	}
	return false
}

func apply(g *Grid, ps []placement) {
	for _, pl := range ps {
		g.Set(pl.row, pl.col, pl.cell)
	}
}

// writeFootprint draws the raw colours of an on-board piece into the grid.
func writeFootprint(g *Grid, p *Piece) {
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if g.InBounds(p.Row+i, p.Col+j) {
				g.Set(p.Row+i, p.Col+j, p.Layout[i][j])
			}
		}
	}
}
