package engine

// Reference board and pacing values.
const (
	DefaultRows           = 10
	DefaultCols           = 16
	DefaultFallEvery      = 12 // ticks per automatic row, one second at 12 ticks/s
	DefaultRotateDebounce = 1  // ticks, about 100ms at 12 ticks/s
	EmptyBoardBonus       = 15
)

// RankingOracle is consulted with the final score whenever a game ends.
type RankingOracle interface {
	Qualifies(score int) bool
}

// Options configures a Session. Zero sizes, cadences and bonus take the
// reference values; a zero RotateDebounce disables the debounce.
type Options struct {
	Rows           int
	Cols           int
	FallEvery      int
	RotateDebounce int
	DividerStep    int
	DividerSpan    int
	EmptyBonus     int

	Source ColourSource  // defaults to NewRandSource(Seed)
	Seed   int64
	Ranker RankingOracle // optional
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Rows == 0 {
		o.Rows = def.Rows
	}
	if o.Cols == 0 {
		o.Cols = def.Cols
	}
	if o.FallEvery <= 0 {
		o.FallEvery = def.FallEvery
	}
	if o.RotateDebounce < 0 {
		o.RotateDebounce = 0
	}
	if o.DividerStep <= 0 {
		o.DividerStep = def.DividerStep
		if o.DividerSpan > 0 && o.DividerSpan%o.DividerStep != 0 {
			o.DividerStep = 1
		}
	}
	if o.DividerSpan <= 0 {
		// Keep the reference pace of one column per five ticks.
		o.DividerSpan = o.DividerStep * (def.DividerSpan / def.DividerStep)
	}
	if o.EmptyBonus == 0 {
		o.EmptyBonus = def.EmptyBonus
	}
	if o.Source == nil {
		o.Source = NewRandSource(o.Seed)
	}
	return o
}

// DefaultOptions returns the reference configuration: a 10×16 board, one
// automatic row per 12 ticks, one column swept per 5 ticks.
func DefaultOptions() Options {
	return Options{
		Rows:           DefaultRows,
		Cols:           DefaultCols,
		FallEvery:      DefaultFallEvery,
		RotateDebounce: DefaultRotateDebounce,
		DividerStep:    ReferenceDividerStep,
		DividerSpan:    ReferenceDividerSpan,
		EmptyBonus:     EmptyBoardBonus,
	}
}

// Input holds the per-tick requests sampled by the caller.
type Input struct {
	Rotate bool
	Left   bool
	Right  bool
	Down   bool
}

// TickResult reports what happened during one tick.
type TickResult struct {
	Score int // score after the tick; zero after a game over

	GameOver   bool
	FinalScore int  // score of the game that just ended
	Qualified  bool // the ranking oracle accepted FinalScore

	Landed bool // the current piece settled this tick
	Marked int  // cells marked by cascades during the tick

	Finalized bool // the divider finalized a column
	Column    int
	Cleared   int
	Bonus     int
}

// Session owns the complete state of one game and advances it a tick at a time.
type Session struct {
	opts    Options
	grid    *Grid
	piece   *Piece
	queue   *Queue
	divider Divider
	score   int
	ticks   int
}

// NewSession creates a session and starts its first game.
func NewSession(opts Options) *Session {
	opts = opts.withDefaults()
	s := &Session{
		opts:    opts,
		grid:    NewGrid(opts.Rows, opts.Cols),
		divider: NewDivider(opts.DividerStep, opts.DividerSpan, opts.Cols),
	}
	s.NewGame()
	return s
}

// NewGame empties the grid, draws a fresh piece and queue, and resets the
// divider, score and elapsed ticks.
func (s *Session) NewGame() {
	s.grid.Reset()
	s.piece = s.spawn(RandomLayout(s.opts.Source))
	s.queue = NewQueue(s.opts.Source)
	s.divider.Reset()
	s.score = 0
	s.ticks = 0
}

func (s *Session) spawn(l Layout) *Piece {
	return NewPiece(l, s.opts.Cols/2)
}

// Tick advances the game by one step.
func (s *Session) Tick(in Input) TickResult {
	s.ticks++
	var res TickResult
	g, p := s.grid, s.piece

	g.ClearRaw()

	if in.Rotate {
		p.RotateClockwise(s.ticks, s.opts.RotateDebounce)
	}
	if in.Left && fits(g, p.Row, p.Col-1) {
		p.MoveLeft()
	}
	if in.Right && fits(g, p.Row, p.Col+1) {
		p.MoveRight()
	}
	p.Col = clamp(p.Col, 0, g.Cols()-2)

	p.fall++
	if p.fall >= s.opts.FallEvery {
		p.fall = 0
		p.Descend()
	} else if in.Down {
		p.Descend()
	}

	if p.Row >= 0 {
		if ps, landed := resolveLanding(g, p); landed {
			if overflows(ps) {
				return s.gameOver(res)
			}
			apply(g, ps)
			s.piece = s.spawn(s.queue.Advance())
			res.Landed = true
			res.Marked += Cascade(g)
		}
	} else if blockedAtSpawn(g, p) {
		return s.gameOver(res)
	}

	if col, crossed := s.divider.Advance(); crossed {
		fr := Finalize(g, col, s.opts.EmptyBonus)
		s.score += fr.Cleared + fr.Bonus
		res.Finalized = true
		res.Column = col
		res.Cleared = fr.Cleared
		res.Bonus = fr.Bonus
		res.Marked += fr.Marked
	}

	if s.piece.Row >= 0 {
		writeFootprint(g, s.piece)
	}

	res.Score = s.score
	return res
}

// gameOver consults the ranking oracle with the final score and starts a
// new game.
func (s *Session) gameOver(res TickResult) TickResult {
	res.GameOver = true
	res.FinalScore = s.score
	if s.opts.Ranker != nil {
		res.Qualified = s.opts.Ranker.Qualifies(s.score)
	}
	s.NewGame()
	res.Score = s.score
	return res
}

// Snapshot returns a copy of the grid, including the falling piece's
// raw footprint when it is on the board.
func (s *Session) Snapshot() *Grid {
	return s.grid.Clone()
}

// PeekUpcoming returns the queued layouts, next piece first.
func (s *Session) PeekUpcoming() []Layout {
	return s.queue.Peek()
}

// Current returns a copy of the falling piece.
func (s *Session) Current() Piece {
	return *s.piece
}

// Divider returns the sweep state.
func (s *Session) Divider() Divider {
	return s.divider
}

// Score returns the score of the current game.
func (s *Session) Score() int {
	return s.score
}

// Elapsed returns the number of ticks played in the current game.
func (s *Session) Elapsed() int {
	return s.ticks
}

// FallEvery returns the current automatic descent cadence in ticks.
func (s *Session) FallEvery() int {
	return s.opts.FallEvery
}

// SetFallEvery changes the automatic descent cadence. Values below one
// are treated as one.
func (s *Session) SetFallEvery(n int) {
	if n < 1 {
		n = 1
	}
	s.opts.FallEvery = n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
