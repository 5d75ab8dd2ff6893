// Package lumines adapts the falling-block engine to the platform's
// registry.Game interface: it maps actions to engine input, paces the fall
// cadence with the difficulty manager and draws the board into a Screen.
package lumines

import (
	"github.com/vovakirdan/tui-lumines/internal/config"
	"github.com/vovakirdan/tui-lumines/internal/core"
	"github.com/vovakirdan/tui-lumines/internal/games/lumines/engine"
	"github.com/vovakirdan/tui-lumines/internal/registry"
)

// GameID is the registry and score-store identifier.
const GameID = "lumines"

// Game states
const (
	StatePlaying  = "playing"
	StatePaused   = "paused"
	StateGameOver = "gameover"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI. Games that
// were given their own preset with SetPreset ignore it.
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok {
		p = ""
	}
	difficultyPreset = p
}

// Game runs one player's Lumines session.
type Game struct {
	session *engine.Session
	ranker  core.Ranker
	source  engine.ColourSource // nil draws colours from the runtime seed

	preset    config.DifficultyPreset
	hasPreset bool

	runtime    core.RuntimeConfig
	cfg        config.LuminesConfig
	difficulty *config.DifficultyManager
	baseFall   int

	state     string
	lastScore int // final score shown while the game-over overlay is up
	qualified bool
	cleared   int // cells cleared in the current game
}

// New creates a Lumines game with no ranking oracle.
func New() *Game {
	return &Game{ranker: core.NopRanker{}}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return GameID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Lumines" }

// SetRanker installs the oracle consulted when a game ends.
func (g *Game) SetRanker(r core.Ranker) {
	if r == nil {
		r = core.NopRanker{}
	}
	g.ranker = r
}

// SetPreset gives this game its own difficulty preset, overriding the
// package-wide one. Unknown names select the config file's settings.
// Call it before Reset.
func (g *Game) SetPreset(preset string) {
	p, ok := config.ParsePreset(preset)
	if !ok {
		p = ""
	}
	g.preset, g.hasPreset = p, true
}

// Reset loads the config and starts a fresh session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = core.DefaultConfig().TickRate
	}
	g.runtime = runtime

	cfg, err := config.LoadLumines(configPath)
	if err != nil {
		cfg = config.DefaultLuminesConfig()
	}
	preset := g.preset
	if !g.hasPreset {
		preset = difficultyPreset
	}
	if preset != "" {
		config.ApplyLuminesPreset(&cfg, preset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.session = engine.NewSession(g.options())
	g.baseFall = g.session.FallEvery()
	g.pace()

	g.state = StatePlaying
	g.lastScore = 0
	g.qualified = false
	g.cleared = 0
}

// options converts the millisecond timings of the config to engine ticks
// at the runtime tick rate.
func (g *Game) options() engine.Options {
	rate := g.runtime.TickRate
	t := g.cfg.Timing
	return engine.Options{
		Rows:           g.cfg.Board.Rows,
		Cols:           g.cfg.Board.Cols,
		FallEvery:      t.FallEvery(rate),
		RotateDebounce: t.RotateDebounce(rate),
		DividerStep:    engine.ReferenceDividerStep,
		DividerSpan:    engine.ReferenceDividerStep * t.SweepSpan(rate),
		EmptyBonus:     g.cfg.Scoring.EmptyBoardBonus,
		Source:         g.source,
		Seed:           g.runtime.Seed,
		Ranker:         g.ranker,
	}
}

// pace applies the difficulty curve to the fall cadence.
func (g *Game) pace() {
	g.session.SetFallEvery(g.difficulty.FallEvery(g.baseFall, g.session.Score(), g.session.Elapsed()))
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.state == StateGameOver {
		if in.Has(core.ActionRestart) {
			g.state = StatePlaying
			g.lastScore = 0
			g.qualified = false
			g.cleared = 0
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		if g.state == StatePaused {
			g.state = StatePlaying
		} else {
			g.state = StatePaused
		}
	}
	if g.state == StatePaused {
		return core.StepResult{State: g.State()}
	}

	g.pace()
	res := g.session.Tick(engine.Input{
		Rotate: in.Has(core.ActionRotate),
		Left:   in.Has(core.ActionLeft),
		Right:  in.Has(core.ActionRight),
		Down:   in.Has(core.ActionDown),
	})

	if res.GameOver {
		// The engine has already started the next game; hold the
		// result on screen until the player restarts.
		g.state = StateGameOver
		g.lastScore = res.FinalScore
		g.qualified = res.Qualified
		return core.StepResult{State: g.State()}
	}
	g.cleared += res.Cleared

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := g.session.Score()
	if g.state == StateGameOver {
		score = g.lastScore
	}
	return core.GameState{
		Score:     score,
		GameOver:  g.state == StateGameOver,
		Paused:    g.state == StatePaused,
		Qualified: g.state == StateGameOver && g.qualified,
	}
}

// Config returns the effective configuration of the current session.
func (g *Game) Config() config.LuminesConfig { return g.cfg }

// Session exposes the underlying engine session.
func (g *Game) Session() *engine.Session { return g.session }

// Level returns the current difficulty level in [0, 1].
func (g *Game) Level() float64 {
	return g.difficulty.Level(g.session.Score(), g.session.Elapsed())
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
