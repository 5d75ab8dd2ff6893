package engine

// Cascade marks every fixed 2×2 window whose four cells are pairwise
// colour-equal, repeating until a pass marks nothing new, and returns the
// number of cells it marked. Each pass reads the grid as it stood at the
// start of the pass, so marks made in one pass can enable overlapping
// windows only in the next.
func Cascade(g *Grid) int {
	work := g.Clone()
	marked := 0
	for {
		next := work.Clone()
		changed := 0
		for i := 0; i < work.Rows()-1; i++ {
			for j := 0; j < work.Cols()-1; j++ {
				if !matches(work, i, j) {
					continue
				}
				changed += markForward(next, i, j)
				changed += markForward(next, i+1, j)
				changed += markForward(next, i, j+1)
				changed += markForward(next, i+1, j+1)
			}
		}
		if changed == 0 {
			break
		}
		marked += changed
		work = next
	}
	g.copyFrom(work)
	return marked
}

// matches reports whether the window with top-left (i, j) is a same-colour
// group of fixed cells.
func matches(g *Grid, i, j int) bool {
	c := g.Get(i, j)
	if !c.IsFixed() {
		return false
	}
	w := [4]Cell{c, g.Get(i+1, j), g.Get(i, j+1), g.Get(i+1, j+1)}
	for a := 0; a < len(w); a++ {
		for b := a + 1; b < len(w); b++ {
			if !w[a].ColourEquals(w[b]) {
				return false
			}
		}
	}
	return true
}

// markForward advances one cell from its own value unless it is already
// marked, reporting 1 if it changed.
func markForward(g *Grid, row, col int) int {
	c := g.Get(row, col)
	if c.IsMarked() {
		return 0
	}
	g.Set(row, col, c.Advance())
	return 1
}
