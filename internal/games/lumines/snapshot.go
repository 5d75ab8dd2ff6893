package lumines

// Snapshot contains the observable game state for replay checks and debugging.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick      int
	Score     int
	State     string
	FallEvery int

	// Board cells row-major, as engine.Cell values.
	Rows  int
	Cols  int
	Cells []int

	// Falling piece: anchor plus its four cells row-major.
	PieceRow  int
	PieceCol  int
	PieceData [4]int

	// Lookahead queue, four cells per layout.
	QueueData []int

	DividerPos int
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	grid := g.session.Snapshot()
	cells := make([]int, 0, grid.Rows()*grid.Cols())
	for r := 0; r < grid.Rows(); r++ {
		for c := 0; c < grid.Cols(); c++ {
			cells = append(cells, int(grid.Get(r, c)))
		}
	}

	p := g.session.Current()
	var piece [4]int
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			piece[i*2+j] = int(p.Layout[i][j])
		}
	}

	var queue []int
	for _, l := range g.session.PeekUpcoming() {
		queue = append(queue, int(l[0][0]), int(l[0][1]), int(l[1][0]), int(l[1][1]))
	}

	return Snapshot{
		Tick:       g.session.Elapsed(),
		Score:      g.State().Score,
		State:      g.state,
		FallEvery:  g.session.FallEvery(),
		Rows:       grid.Rows(),
		Cols:       grid.Cols(),
		Cells:      cells,
		PieceRow:   p.Row,
		PieceCol:   p.Col,
		PieceData:  piece,
		QueueData:  queue,
		DividerPos: g.session.Divider().Position(),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Tick)                 //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)          //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.FallEvery)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PieceRow+2)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PieceCol)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.DividerPos)     //#nosec G115 -- hash computation
	h = h*31 + uint64(len(snap.State))     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Rows*snap.Cols) //#nosec G115 -- hash computation

	for _, v := range snap.PieceData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.QueueData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.Cells {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}
