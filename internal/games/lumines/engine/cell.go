// Package engine implements the deterministic Lumines state machine:
// cell progression, the grid, falling pieces and their placement, the
// match cascade and the divider sweep. It has no platform dependencies.
package engine

import "fmt"

// Cell is the value held by one grid position.
type Cell uint8

// Cell states. Raw colours only ever appear as the falling piece's
// footprint; landing advances them to settled, the cascade advances
// settled cells to marked, and the divider removes marked cells.
const (
	Empty Cell = iota
	ColourA
	ColourB
	ColourASettled
	ColourBSettled
	ColourAMarked
	ColourBMarked
)

// Colour identifies which of the two block colours a cell carries.
type Colour uint8

const (
	NoColour Colour = iota
	A
	B
)

// Stage is a cell's position along raw → settled → marked.
type Stage uint8

const (
	StageNone Stage = iota
	StageRaw
	StageSettled
	StageMarked
)

// Advance returns the successor state. Empty and marked cells are fixed points.
func (c Cell) Advance() Cell {
	switch c {
	case ColourA:
		return ColourASettled
	case ColourB:
		return ColourBSettled
	case ColourASettled:
		return ColourAMarked
	case ColourBSettled:
		return ColourBMarked
	case Empty, ColourAMarked, ColourBMarked:
		return c
	}
	panic(fmt.Sprintf("engine: invalid cell state %d", uint8(c)))
}

// IsFixed reports whether the cell belongs to the settled stack.
func (c Cell) IsFixed() bool {
	return c.Stage() >= StageSettled
}

// IsMarked reports whether the divider will clear the cell.
func (c Cell) IsMarked() bool {
	return c == ColourAMarked || c == ColourBMarked
}

// IsRaw reports whether the cell is part of a falling piece's footprint.
func (c Cell) IsRaw() bool {
	return c == ColourA || c == ColourB
}

// Colour returns the cell's colour, or NoColour for Empty.
func (c Cell) Colour() Colour {
	switch c {
	case ColourA, ColourASettled, ColourAMarked:
		return A
	case ColourB, ColourBSettled, ColourBMarked:
		return B
	}
	return NoColour
}

// Stage returns the progression stage of the cell.
func (c Cell) Stage() Stage {
	switch c {
	case ColourA, ColourB:
		return StageRaw
	case ColourASettled, ColourBSettled:
		return StageSettled
	case ColourAMarked, ColourBMarked:
		return StageMarked
	}
	return StageNone
}

// ColourEquals reports whether two fixed cells share a colour with stages
// at most one step apart, so a settled cell still matches a neighbour that
// was marked earlier in the same cascade.
func (c Cell) ColourEquals(other Cell) bool {
	if !c.IsFixed() || !other.IsFixed() || c.Colour() != other.Colour() {
		return false
	}
	d := int(c.Stage()) - int(other.Stage())
	return d >= -1 && d <= 1
}

var cellNames = [...]string{
	Empty:          "Empty",
	ColourA:        "ColourA",
	ColourB:        "ColourB",
	ColourASettled: "ColourASettled",
	ColourBSettled: "ColourBSettled",
	ColourAMarked:  "ColourAMarked",
	ColourBMarked:  "ColourBMarked",
}

func (c Cell) String() string {
	if int(c) < len(cellNames) {
		return cellNames[c]
	}
	return fmt.Sprintf("Cell(%d)", uint8(c))
}

// Cell characters used by Grid.String and ParseGrid:
//
//	.  empty
//	a  raw colour A     b  raw colour B
//	A  settled A        B  settled B
//	X  marked A         Y  marked B
var cellChars = [...]rune{
	Empty:          '.',
	ColourA:        'a',
	ColourB:        'b',
	ColourASettled: 'A',
	ColourBSettled: 'B',
	ColourAMarked:  'X',
	ColourBMarked:  'Y',
}

// Char returns the single-character form of the cell.
func (c Cell) Char() rune {
	if int(c) < len(cellChars) {
		return cellChars[c]
	}
	return '?'
}

// ParseCell is the inverse of Char.
func ParseCell(r rune) (Cell, bool) {
	for c, ch := range cellChars {
		if ch == r {
			return Cell(c), true
		}
	}
	return Empty, false
}
