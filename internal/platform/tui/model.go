package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lumines/internal/core"
	"github.com/vovakirdan/tui-lumines/internal/registry"
	"github.com/vovakirdan/tui-lumines/internal/storage"
)

// helpHeight is the number of terminal rows reserved below the game screen.
const helpHeight = 1

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	ranker     core.Ranker
	logger     *log.Logger
	keys       *KeyMapper
	help       help.Model
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	loopID     uint64
	quitting   bool

	// embedded models run inside a host model (the SSH session); their quit
	// key hands control back instead of ending the program.
	embedded   bool
	backToMenu bool

	// Game-over handling: the result is logged once, and a qualifying score
	// opens the name prompt.
	overHandled bool
	entering    bool
	nameInput   textinput.Model
	lastErr     error

	screenshotDir string
}

// NewModel creates a new Bubble Tea model for the given game. A nil ranker
// disables the high-score list; a nil logger discards log output.
func NewModel(game registry.Game, ranker core.Ranker, logger *log.Logger, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if ranker == nil {
		ranker = core.NopRanker{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if ra, ok := game.(registry.RankAware); ok {
		ra.SetRanker(ranker)
	}

	ti := textinput.New()
	ti.Placeholder = storage.DefaultName
	ti.CharLimit = storage.MaxNameLength
	ti.Width = storage.MaxNameLength + 1
	ti.Prompt = "Name: "

	home, _ := os.UserHomeDir()

	return Model{
		game:          game,
		screen:        core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-helpHeight)),
		ranker:        ranker,
		logger:        logger,
		keys:          NewKeyMapper(),
		help:          help.New(),
		config:        cfg,
		inputFrame:    core.NewInputFrame(),
		loopID:        nextLoopID(),
		nameInput:     ti,
		screenshotDir: filepath.Join(home, ".lumines", "screenshots"),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Debug("game started", "game", m.game.ID(), "seed", m.config.Seed, "tick_rate", m.config.TickRate)

	// Start the tick loop
	return tickCmd(m.config.TickRate, m.loopID)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.entering {
			return m.handleNameKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.id != m.loopID {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input during play.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		if m.embedded && msg.String() != "ctrl+c" {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleNameKey feeds the name prompt.
func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		m.recordScore(m.nameInput.Value())
		return m, nil
	case "esc":
		m.logger.Info("high score skipped", "score", m.gameState.Score)
		m.closePrompt()
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// recordScore stores the qualifying score under name.
func (m *Model) recordScore(name string) {
	name = storage.SanitizeName(name)
	if err := m.ranker.Record(name, m.gameState.Score); err != nil {
		m.lastErr = err
		m.logger.Error("failed to save score", "score", m.gameState.Score, "err", err)
	} else {
		m.logger.Info("high score recorded", "name", name, "score", m.gameState.Score)
	}
	m.closePrompt()
}

func (m *Model) closePrompt() {
	m.entering = false
	m.nameInput.Blur()
	m.nameInput.Reset()
}

// handleResize processes window resize events. The board has a fixed size,
// so the game keeps running and only the screen buffer changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(1, msg.Height-helpHeight))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.entering {
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate, m.loopID)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	switch {
	case m.gameState.GameOver && !m.overHandled:
		m.overHandled = true
		m.logger.Info("game over", "score", m.gameState.Score, "qualified", m.gameState.Qualified)
		if m.gameState.Qualified {
			m.entering = true
			m.lastErr = nil
			m.nameInput.Focus()
		}
	case !m.gameState.GameOver:
		m.overHandled = false
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate, m.loopID)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.screenshotDir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.entering {
		return m.nameView()
	}

	m.game.Render(m.screen)

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys.Keys()))
}

// nameView renders the high-score name prompt centred on the terminal.
func (m Model) nameView() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).
		Render("NEW HIGH SCORE")
	score := fmt.Sprintf("Score: %d", m.gameState.Score)
	hint := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).
		Render("enter save • esc skip")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("57")).
		Padding(1, 3).
		Render(lipgloss.JoinVertical(lipgloss.Center, title, "", score, "", m.nameInput.View(), "", hint))

	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, box)
}

// NewEmbeddedModel is NewModel for a game hosted inside another model.
func NewEmbeddedModel(game registry.Game, ranker core.Ranker, logger *log.Logger, cfg core.RuntimeConfig) Model {
	m := NewModel(game, ranker, logger, cfg)
	m.embedded = true
	return m
}

// BackToMenu reports whether an embedded model asked to return to its host.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting reports whether the player asked to end the program.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Entering reports whether the name prompt is open.
func (m Model) Entering() bool {
	return m.entering
}

// LastError returns the error of the last failed score save, if any.
func (m Model) LastError() error {
	return m.lastErr
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, ranker core.Ranker, logger *log.Logger, cfg core.RuntimeConfig) error {
	model := NewModel(game, ranker, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
