package engine

import (
	"math"
	"math/rand"
)

const (
	// SpawnRow is the anchor row of a freshly promoted piece, fully above the board.
	SpawnRow = -2
	// QueueDepth is the number of upcoming pieces kept in the lookahead queue.
	QueueDepth = 3
)

// neverRotated lets the first rotation of a piece pass any debounce.
const neverRotated = math.MinInt32 / 2

// Layout is the 2×2 arrangement of raw colours of a piece.
// Layout[0] is the top row, Layout[i][0] the left column.
type Layout [2][2]Cell

// Rotated returns the layout turned one quarter clockwise.
func (l Layout) Rotated() Layout {
	var r Layout
	r[0][1] = l[0][0]
	r[1][1] = l[0][1]
	r[1][0] = l[1][1]
	r[0][0] = l[1][0]
	return r
}

// ColourSource yields raw piece colours.
type ColourSource interface {
	// Next returns ColourA or ColourB.
	Next() Cell
}

// RandSource draws both colours with equal probability from a seeded RNG,
// so two sources with the same seed produce the same sequence.
type RandSource struct {
	rng *rand.Rand
}

// NewRandSource creates a RandSource seeded with seed.
func NewRandSource(seed int64) *RandSource {
	return &RandSource{rng: rand.New(rand.NewSource(seed))}
}

// Next returns ColourA or ColourB.
func (s *RandSource) Next() Cell {
	if s.rng.Intn(2) == 0 {
		return ColourA
	}
	return ColourB
}

// SequenceSource replays a fixed list of colours, wrapping around.
type SequenceSource struct {
	cells []Cell
	next  int
}

// NewSequenceSource creates a source that yields cells in order.
func NewSequenceSource(cells ...Cell) *SequenceSource {
	if len(cells) == 0 {
		cells = []Cell{ColourA}
	}
	return &SequenceSource{cells: cells}
}

// Next returns the next colour of the sequence.
func (s *SequenceSource) Next() Cell {
	c := s.cells[s.next%len(s.cells)]
	s.next++
	return c
}

// RandomLayout fills a layout from src, row by row.
func RandomLayout(src ColourSource) Layout {
	var l Layout
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			l[i][j] = src.Next()
		}
	}
	return l
}

// Piece is the falling 2×2 block. Row and Col locate its top-left cell.
type Piece struct {
	Layout Layout
	Row    int
	Col    int

	lastRotate int
	fall       int
}

// NewPiece places layout at the spawn row above column col.
func NewPiece(layout Layout, col int) *Piece {
	return &Piece{
		Layout:     layout,
		Row:        SpawnRow,
		Col:        col,
		lastRotate: neverRotated,
	}
}

// RotateClockwise turns the layout a quarter clockwise unless the previous
// rotation happened within debounce ticks. It reports whether it rotated.
func (p *Piece) RotateClockwise(tick, debounce int) bool {
	if tick-p.lastRotate <= debounce {
		return false
	}
	p.Layout = p.Layout.Rotated()
	p.lastRotate = tick
	return true
}

// MoveLeft shifts the anchor one column left.
func (p *Piece) MoveLeft() { p.Col-- }

// MoveRight shifts the anchor one column right.
func (p *Piece) MoveRight() { p.Col++ }

// Descend moves the anchor one row down.
func (p *Piece) Descend() { p.Row++ }

// Queue is the lookahead of upcoming piece layouts.
type Queue struct {
	src   ColourSource
	items [QueueDepth]Layout
}

// NewQueue fills a queue with fresh layouts from src.
func NewQueue(src ColourSource) *Queue {
	q := &Queue{src: src}
	for i := range q.items {
		q.items[i] = RandomLayout(src)
	}
	return q
}

// Advance removes and returns the head, appending a fresh layout at the tail.
func (q *Queue) Advance() Layout {
	head := q.items[0]
	copy(q.items[:], q.items[1:])
	q.items[QueueDepth-1] = RandomLayout(q.src)
	return head
}

// Peek returns the queued layouts, next piece first.
func (q *Queue) Peek() []Layout {
	out := make([]Layout, QueueDepth)
	copy(out, q.items[:])
	return out
}
