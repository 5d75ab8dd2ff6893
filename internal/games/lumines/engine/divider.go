package engine

import "fmt"

// Reference sweep scale: four units per tick, twenty units per column,
// so the divider crosses one column every five ticks.
const (
	ReferenceDividerStep = 4
	ReferenceDividerSpan = 20
)

// Divider is the sweep line that finalizes marked cells column by column.
// Its position is measured in units where span units make one column.
type Divider struct {
	pos  int
	step int
	span int
	cols int
}

// NewDivider creates a divider for a grid cols wide. step must divide span
// so that every column boundary is hit exactly; step == span crosses a
// column every tick.
func NewDivider(step, span, cols int) Divider {
	if step <= 0 || span <= 0 || span%step != 0 || cols <= 0 {
		panic(fmt.Sprintf("engine: divider step %d must be positive and divide span %d on %d columns", step, span, cols))
	}
	return Divider{step: step, span: span, cols: cols}
}

// Advance moves the divider one step. When it lands on a column boundary
// it returns the column just passed and true. Past the last column it wraps
// to zero.
func (d *Divider) Advance() (int, bool) {
	d.pos += d.step
	if d.pos > d.span*d.cols {
		d.pos = 0
		return 0, false
	}
	if d.pos%d.span == 0 {
		return d.pos/d.span - 1, true
	}
	return 0, false
}

// Reset moves the divider back to the left edge.
func (d *Divider) Reset() { d.pos = 0 }

// Position returns the raw sweep position.
func (d Divider) Position() int { return d.pos }

// Span returns the number of position units per column.
func (d Divider) Span() int { return d.span }

// Column returns the position in columns, for drawing.
func (d Divider) Column() float64 {
	return float64(d.pos) / float64(d.span)
}

// FinalizeResult summarizes one column finalization.
type FinalizeResult struct {
	Cleared int // marked cells removed from the column
	Bonus   int // awarded when the clear left the grid without fixed cells
	Marked  int // cells marked by the follow-up cascade
}

// Finalize removes the marked cells of one column, lets the cells above
// them drop into the gaps, and re-runs the cascade.
func Finalize(g *Grid, col, emptyBonus int) FinalizeResult {
	var res FinalizeResult
	for i := 0; i < g.Rows(); i++ {
		if g.Get(i, col).IsMarked() {
			res.Cleared++
		}
	}
	if res.Cleared == 0 {
		return res
	}

	for i := 0; i < g.Rows(); i++ {
		if !g.Get(i, col).IsMarked() {
			continue
		}
		for k := i; k >= 1; k-- {
			if !g.Get(k, col).IsFixed() {
				break
			}
			g.Set(k, col, g.Get(k-1, col))
		}
	}
	for i := 0; i < res.Cleared; i++ {
		g.Set(i, col, Empty)
	}

	if g.IsEmpty() {
		res.Bonus = emptyBonus
	}
	res.Marked = Cascade(g)
	return res
}
