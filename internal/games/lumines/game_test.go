package lumines

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-lumines/internal/core"
	"github.com/vovakirdan/tui-lumines/internal/games/lumines/engine"
	"github.com/vovakirdan/tui-lumines/internal/registry"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 12,
		Seed:     12345,
	}
}

// isolate keeps user and working-directory config files out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	SetConfigPath("")
	SetDifficultyPreset("")
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficultyPreset("")
	})
}

// stackingGame returns a game whose pieces are all [[A B] [B A]], which
// never forms a single-colour square, so dropping them stacks up to the top.
func stackingGame(t *testing.T) *Game {
	t.Helper()
	g := New()
	g.source = engine.NewSequenceSource(engine.ColourA, engine.ColourB, engine.ColourB, engine.ColourA)
	g.Reset(testRuntime())
	return g
}

type stubRanker struct {
	threshold int
	offered   []int
}

func (r *stubRanker) Qualifies(score int) bool {
	r.offered = append(r.offered, score)
	return score >= r.threshold
}

func (r *stubRanker) Record(string, int) error { return nil }

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// runUntilGameOver drops pieces straight down until the game ends.
func runUntilGameOver(t *testing.T, g *Game) core.StepResult {
	t.Helper()
	for i := 0; i < 2000; i++ {
		res := g.Step(frame(core.ActionDown))
		if res.State.GameOver {
			return res
		}
	}
	t.Fatal("game did not end")
	return core.StepResult{}
}

func TestGameRegistered(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatalf("%q not registered", GameID)
	}
	game, err := registry.Create(GameID)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if game.Title() != "Lumines" {
		t.Errorf("Title() = %q", game.Title())
	}
	if _, ok := game.(registry.RankAware); !ok {
		t.Error("Game should accept a ranker")
	}
}

func TestGameReset(t *testing.T) {
	isolate(t)
	g := New()
	g.Reset(testRuntime())

	state := g.State()
	if state.Score != 0 || state.GameOver || state.Paused {
		t.Errorf("Unexpected state after reset: %+v", state)
	}

	snap := g.Snapshot()
	if snap.Rows != engine.DefaultRows || snap.Cols != engine.DefaultCols {
		t.Errorf("Board %dx%d, expected %dx%d", snap.Rows, snap.Cols, engine.DefaultRows, engine.DefaultCols)
	}
	if snap.PieceRow != engine.SpawnRow || snap.PieceCol != engine.DefaultCols/2 {
		t.Errorf("Piece at (%d,%d), expected spawn position", snap.PieceRow, snap.PieceCol)
	}
	if snap.FallEvery != 12 {
		t.Errorf("FallEvery = %d, expected one row per second at 12 ticks/s", snap.FallEvery)
	}
	if len(snap.QueueData) != engine.QueueDepth*4 {
		t.Errorf("Queue holds %d cells", len(snap.QueueData))
	}
}

func TestGameTimingFollowsTickRate(t *testing.T) {
	isolate(t)
	g := New()
	rt := testRuntime()
	rt.TickRate = 60
	g.Reset(rt)

	if got := g.Session().FallEvery(); got != 60 {
		t.Errorf("FallEvery = %d at 60 ticks/s, expected 60", got)
	}
	// 416ms per column at 60 ticks/s is 25 ticks, so the divider needs 25 steps of 4.
	if got := g.Session().Divider().Span(); got != 100 {
		t.Errorf("Divider span = %d, expected 100", got)
	}
}

func TestGameDeterminism(t *testing.T) {
	isolate(t)

	inputs := make([]core.InputFrame, 400)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i%7 == 0:
			inputs[i].Set(core.ActionRotate)
		case i%5 < 2:
			inputs[i].Set(core.ActionLeft)
		case i%11 == 3:
			inputs[i].Set(core.ActionRight)
		default:
			inputs[i].Set(core.ActionDown)
		}
	}

	run := func() Snapshot {
		g := New()
		g.Reset(testRuntime())
		for _, in := range inputs {
			g.Step(in)
		}
		return g.Snapshot()
	}

	snap1, snap2 := run(), run()
	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Score != snap2.Score {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", snap1.Score, snap2.Score)
	}
}

func TestGamePauseToggle(t *testing.T) {
	isolate(t)
	g := New()
	g.Reset(testRuntime())

	g.Step(frame())
	before := g.Session().Elapsed()

	res := g.Step(frame(core.ActionPause))
	if !res.State.Paused {
		t.Fatal("Expected paused state")
	}
	for i := 0; i < 10; i++ {
		g.Step(frame(core.ActionDown))
	}
	if g.Session().Elapsed() != before {
		t.Errorf("Session advanced while paused: %d -> %d", before, g.Session().Elapsed())
	}

	res = g.Step(frame(core.ActionPause))
	if res.State.Paused {
		t.Fatal("Expected game to resume")
	}
	if g.Session().Elapsed() != before+1 {
		t.Errorf("Resume tick should advance the session once")
	}
}

func TestGameOverHoldsUntilRestart(t *testing.T) {
	isolate(t)
	g := stackingGame(t)
	ranker := &stubRanker{threshold: 0}
	g.SetRanker(ranker)
	g.Reset(testRuntime())

	res := runUntilGameOver(t, g)
	if !res.State.Qualified {
		t.Error("Expected the ranker's verdict to be reported")
	}
	if len(ranker.offered) != 1 || ranker.offered[0] != 0 {
		t.Errorf("Ranker offered %v, expected the final score once", ranker.offered)
	}

	elapsed := g.Session().Elapsed()
	for i := 0; i < 5; i++ {
		res = g.Step(frame(core.ActionDown, core.ActionPause))
	}
	if !res.State.GameOver {
		t.Fatal("Game over should hold until restart")
	}
	if g.Session().Elapsed() != elapsed {
		t.Error("Session should not advance behind the game-over overlay")
	}

	res = g.Step(frame(core.ActionRestart))
	if res.State.GameOver || res.State.Qualified {
		t.Errorf("Unexpected state after restart: %+v", res.State)
	}
	if !g.Session().Snapshot().IsEmpty() {
		t.Error("Restarted game should have an empty board")
	}
}

func TestGameOverNotQualified(t *testing.T) {
	isolate(t)
	g := stackingGame(t)
	g.SetRanker(&stubRanker{threshold: 1})
	g.Reset(testRuntime())

	res := runUntilGameOver(t, g)
	if res.State.Qualified {
		t.Error("A score below the threshold should not qualify")
	}
}

func TestGameWithoutRankerNeverQualifies(t *testing.T) {
	isolate(t)
	g := stackingGame(t)
	g.SetRanker(nil)
	g.Reset(testRuntime())

	if res := runUntilGameOver(t, g); res.State.Qualified {
		t.Error("NopRanker should never qualify")
	}
}

func TestGameDifficultyPresets(t *testing.T) {
	tests := []struct {
		preset string
		want   int
	}{
		{"", 12},
		{"fixed", 12},
		{"easy", 12},
		{"normal", 8}, // 12 / (1 + 0.3*2)
		{"hard", 5},   // 12 / (1 + 0.7*2)
		{"bogus", 12},
	}

	for _, tc := range tests {
		t.Run(tc.preset, func(t *testing.T) {
			isolate(t)
			SetDifficultyPreset(tc.preset)
			g := New()
			g.Reset(testRuntime())
			if got := g.Session().FallEvery(); got != tc.want {
				t.Errorf("FallEvery = %d, expected %d", got, tc.want)
			}
		})
	}
}

func TestGameConfigPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "board:\n  rows: 8\n  cols: 6\ntiming:\n  fall_interval_ms: 500\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	SetConfigPath(path)

	g := New()
	g.Reset(testRuntime())

	snap := g.Snapshot()
	if snap.Rows != 8 || snap.Cols != 6 {
		t.Errorf("Board %dx%d, expected 8x6", snap.Rows, snap.Cols)
	}
	if snap.PieceCol != 3 {
		t.Errorf("Piece column %d, expected 3", snap.PieceCol)
	}
	if snap.FallEvery != 6 {
		t.Errorf("FallEvery = %d, expected 6", snap.FallEvery)
	}
}

func TestGameSetPresetOverridesPackagePreset(t *testing.T) {
	isolate(t)
	SetDifficultyPreset("easy")

	hard := New()
	hard.SetPreset("hard")
	hard.Reset(testRuntime())

	plain := New()
	plain.SetPreset("")
	plain.Reset(testRuntime())

	shared := New()
	shared.Reset(testRuntime())

	if got := hard.Session().FallEvery(); got != 5 {
		t.Errorf("hard FallEvery = %d, expected 5", got)
	}
	if plain.Config().Difficulty.Enabled {
		t.Error("an explicit empty preset should keep the config file's difficulty")
	}
	if !shared.Config().Difficulty.Enabled {
		t.Error("a game without its own preset should follow the package preset")
	}
}

func TestGameFastSweepConfig(t *testing.T) {
	tests := []struct {
		name string
		ms   int
		rate int
	}{
		{"50ms at 12 ticks/s", 50, 12},
		{"1ms at 12 ticks/s", 1, 12},
		{"default at 2 ticks/s", 416, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			isolate(t)
			path := filepath.Join(t.TempDir(), "fast.yaml")
			data := fmt.Sprintf("board:\n  rows: 6\n  cols: 4\ntiming:\n  column_sweep_ms: %d\n", tc.ms)
			if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
				t.Fatal(err)
			}
			SetConfigPath(path)

			rt := testRuntime()
			rt.TickRate = tc.rate
			g := New()
			g.Reset(rt)

			if span := g.Session().Divider().Span(); span < 2*engine.ReferenceDividerStep {
				t.Errorf("divider span %d, expected at least two ticks per column", span)
			}

			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("step panicked: %v", r)
				}
			}()
			for i := 0; i < 200; i++ {
				g.Step(frame())
			}
		})
	}
}

func TestGameBadConfigFallsBackToDefaults(t *testing.T) {
	isolate(t)
	SetConfigPath(filepath.Join(t.TempDir(), "missing.yaml"))

	g := New()
	g.Reset(testRuntime())

	if g.Config().Board.Rows != engine.DefaultRows {
		t.Errorf("Expected default board after failed load, got %+v", g.Config().Board)
	}
}

func TestGameRender(t *testing.T) {
	isolate(t)
	g := New()
	g.Reset(testRuntime())
	g.Step(frame())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD missing score: %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(0), "Time: 0:00") {
		t.Errorf("HUD missing time: %q", screen.Row(0))
	}
	out := screen.String()
	for _, want := range []string{"NEXT", "┌", "┘", string(DividerTop)} {
		if !strings.Contains(out, want) {
			t.Errorf("Render output missing %q", want)
		}
	}

	// The spawning piece is drawn above the box.
	b := g.board(screen.Width())
	p := g.Session().Current()
	x := b.X + 1 + p.Col*cellWidth
	if r := screen.Get(x, b.Y+p.Row); r == ' ' {
		t.Errorf("Expected piece above the board at (%d,%d)", x, b.Y+p.Row)
	}
}

func TestGameRenderDividerStaysInsideBox(t *testing.T) {
	isolate(t)
	g := New()
	g.Reset(testRuntime())
	screen := core.NewScreen(80, 24)
	inner := g.board(screen.Width()).Inset(1)

	// Walk the divider through a whole cycle and check every frame.
	perCycle := g.Session().Divider().Span()*g.cfg.Board.Cols/engine.ReferenceDividerStep + 1
	for i := 0; i <= perCycle; i++ {
		g.Render(screen)
		found := false
		for x := inner.X; x < inner.Right(); x++ {
			if screen.Get(x, inner.Y-1) == DividerTop {
				found = true
			}
		}
		if !found {
			t.Fatalf("frame %d: divider marker not above the board interior", i)
		}
		g.Session().Tick(engine.Input{})
	}
}

func TestGameRenderColours(t *testing.T) {
	isolate(t)
	g := New()
	g.source = engine.NewSequenceSource(engine.ColourA)
	g.Reset(testRuntime())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	b := g.board(screen.Width())
	p := g.Session().Current()
	cell := screen.GetCell(b.X+1+p.Col*cellWidth, b.Y+p.Row)
	if cell.Rune != RawGlyph || cell.Color != core.ColorOrange {
		t.Errorf("Raw A cell drawn as %q/%s", cell.Rune, cell.Color)
	}
}

func TestGameRenderOverlays(t *testing.T) {
	isolate(t)
	g := New()
	g.Reset(testRuntime())
	screen := core.NewScreen(80, 24)

	g.Step(frame(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("Paused overlay missing")
	}

	g = stackingGame(t)
	g.SetRanker(&stubRanker{threshold: 0})
	g.Reset(testRuntime())
	runUntilGameOver(t, g)
	g.Render(screen)
	if !strings.Contains(screen.String(), "NEW HIGH SCORE") {
		t.Error("Qualified game-over overlay missing")
	}
}

func TestGameRenderTooSmall(t *testing.T) {
	isolate(t)
	g := New()
	g.Reset(testRuntime())

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("Expected size warning on a small screen")
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		ticks, rate int
		want        string
	}{
		{0, 12, "0:00"},
		{11, 12, "0:00"},
		{12, 12, "0:01"},
		{75 * 12, 12, "1:15"},
		{600 * 60, 60, "10:00"},
		{24, 0, "0:02"},
	}
	for _, tc := range tests {
		if got := FormatElapsed(tc.ticks, tc.rate); got != tc.want {
			t.Errorf("FormatElapsed(%d, %d) = %q, expected %q", tc.ticks, tc.rate, got, tc.want)
		}
	}
}
