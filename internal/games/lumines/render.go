package lumines

import (
	"fmt"

	"github.com/vovakirdan/tui-lumines/internal/core"
	"github.com/vovakirdan/tui-lumines/internal/games/lumines/engine"
)

// Visual characters for rendering
const (
	RawGlyph     = '▒'
	SettledGlyph = '█'
	MarkedGlyph  = '▓'
	EmptyGlyph   = '·'
	DividerGlyph = '┊'
	DividerTop   = '▼'
	DividerFoot  = '▲'
)

// cellWidth is the number of screen columns one board cell occupies.
const cellWidth = 2

// Layout of the play field relative to the board box.
const (
	hudRow    = 0
	spawnRows = 2 // rows above the box where the piece appears
	panelGap  = 3
	panelW    = 14
)

// glyph returns the rune and colour used to draw an engine cell.
func glyph(c engine.Cell) (rune, core.Color) {
	switch c {
	case engine.ColourA:
		return RawGlyph, core.ColorOrange
	case engine.ColourB:
		return RawGlyph, core.ColorCyan
	case engine.ColourASettled:
		return SettledGlyph, core.ColorOrange
	case engine.ColourBSettled:
		return SettledGlyph, core.ColorCyan
	case engine.ColourAMarked:
		return MarkedGlyph, core.ColorBrightYellow
	case engine.ColourBMarked:
		return MarkedGlyph, core.ColorBrightCyan
	default:
		return EmptyGlyph, core.ColorDarkGray
	}
}

// board returns the outer box of the board, centred with the side panel
// on a screen screenW wide.
func (g *Game) board(screenW int) core.Rect {
	w := g.cfg.Board.Cols*cellWidth + 2
	h := g.cfg.Board.Rows + 2
	x := (screenW - (w + panelGap + panelW)) / 2
	return core.NewRect(core.Max(0, x), hudRow+1+spawnRows, w, h)
}

// MinScreenSize returns the smallest screen that fits the board and panel.
func (g *Game) MinScreenSize() (int, int) {
	b := g.board(0)
	return b.W + panelGap + panelW, b.Bottom()
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	minW, minH := g.MinScreenSize()
	if dst.Width() < minW || dst.Height() < minH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minW, minH))
		return
	}

	b := g.board(dst.Width())
	g.renderHUD(dst)
	g.renderBoard(dst, b)
	g.renderPiece(dst, b)
	g.renderDivider(dst, b)
	g.renderPanel(dst, b)
	g.renderOverlay(dst)
}

// renderHUD draws the score line.
func (g *Game) renderHUD(dst *core.Screen) {
	st := g.State()
	dst.DrawText(1, hudRow, fmt.Sprintf("Score: %d", st.Score))
	dst.DrawTextCentered(hudRow, "LUMINES")
	timeText := "Time: " + FormatElapsed(g.session.Elapsed(), g.runtime.TickRate)
	dst.DrawText(dst.Width()-len(timeText)-1, hudRow, timeText)
}

func (g *Game) renderBoard(dst *core.Screen, b core.Rect) {
	dst.DrawBox(b)
	grid := g.session.Snapshot()
	for r := 0; r < grid.Rows(); r++ {
		for c := 0; c < grid.Cols(); c++ {
			ch, col := glyph(grid.Get(r, c))
			g.drawCell(dst, b, r, c, ch, col)
		}
	}
}

// renderPiece draws the parts of the falling piece the grid does not hold:
// the engine only writes the footprint once the whole piece is on the board.
func (g *Game) renderPiece(dst *core.Screen, b core.Rect) {
	if g.state == StateGameOver {
		return
	}
	p := g.session.Current()
	if p.Row >= 0 {
		return
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			ch, col := glyph(p.Layout[i][j])
			r := p.Row + i
			if r < 0 {
				// Above the box; row -1 sits on the line just over the border.
				g.drawAt(dst, b.X+1+(p.Col+j)*cellWidth, b.Y+r, ch, col)
				continue
			}
			g.drawCell(dst, b, r, p.Col+j, ch, col)
		}
	}
}

// renderDivider draws the sweep line over empty cells, with markers on the
// box edges.
func (g *Game) renderDivider(dst *core.Screen, b core.Rect) {
	d := g.session.Divider()
	inner := b.Inset(1)
	x := core.Clamp(inner.X+int(d.Column()*cellWidth), inner.X, inner.Right()-1)
	dst.SetColored(x, b.Y, DividerTop, core.ColorMagenta)
	dst.SetColored(x, b.Bottom()-1, DividerFoot, core.ColorMagenta)
	for y := inner.Y; y < inner.Bottom(); y++ {
		if dst.Get(x, y) == EmptyGlyph {
			dst.SetColored(x, y, DividerGlyph, core.ColorMagenta)
		}
	}
}

// renderPanel draws the lookahead queue and the running totals.
func (g *Game) renderPanel(dst *core.Screen, b core.Rect) {
	x := b.Right() + panelGap
	y := b.Y

	dst.DrawTextColored(x, y, "NEXT", core.ColorWhite)
	y++
	for _, l := range g.session.PeekUpcoming() {
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				ch, col := glyph(l[i][j])
				g.drawAt(dst, x+j*cellWidth, y+i, ch, col)
			}
		}
		y += 3
	}

	dst.DrawText(x, y, fmt.Sprintf("Cleared %d", g.cleared))
	y++
	dst.DrawText(x, y, fmt.Sprintf("Speed   %d%%", int(g.Level()*100)))
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.state {
	case StatePaused:
		drawCenteredBox(dst, "PAUSED", "Press P to resume")
	case StateGameOver:
		title := "GAME OVER"
		if g.qualified {
			title = "GAME OVER - NEW HIGH SCORE"
		}
		subtitle := fmt.Sprintf("Score: %d  |  Press R to restart", g.lastScore)
		drawCenteredBox(dst, title, subtitle)
	}
}

func (g *Game) drawCell(dst *core.Screen, b core.Rect, row, col int, ch rune, c core.Color) {
	inner := b.Inset(1)
	g.drawAt(dst, inner.X+col*cellWidth, inner.Y+row, ch, c)
}

func (g *Game) drawAt(dst *core.Screen, x, y int, ch rune, c core.Color) {
	for k := 0; k < cellWidth; k++ {
		dst.SetColored(x+k, y, ch, c)
	}
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	titleW, subtitleW := len([]rune(title)), len([]rune(subtitle))
	boxW := core.Max(titleW, subtitleW) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)
	dst.DrawTextColored(box.X+(boxW-titleW)/2, box.Y+1, title, core.ColorBrightWhite)
	dst.DrawText(box.X+(boxW-subtitleW)/2, box.Y+3, subtitle)
}

// FormatElapsed renders a tick count as m:ss at the given tick rate.
func FormatElapsed(ticks, tickRate int) string {
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	secs := ticks / tickRate
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
