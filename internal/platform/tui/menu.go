package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-lumines/internal/core"
)

// MenuChoice is the entry picked from the main menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceScores
	ChoiceQuit
)

// menuEntries are the selectable rows, in display order. The difficulty row
// sits between them and is changed with left/right.
var menuEntries = []struct {
	choice MenuChoice
	label  string
}{
	{ChoicePlay, "Play"},
	{ChoiceScores, "High Scores"},
	{ChoiceQuit, "Quit"},
}

// Difficulties lists the presets offered by the menu. The empty preset keeps
// whatever the config file says.
var Difficulties = []string{"", "easy", "normal", "hard", "fixed"}

func difficultyLabel(preset string) string {
	if preset == "" {
		return "config"
	}
	return preset
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	cursor     int // index into menuEntries, or len(menuEntries) for the difficulty row
	difficulty int // index into Difficulties
	width      int
	height     int
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	choice     MenuChoice
}

// NewMenuModel creates a new menu model with preset preselected.
func NewMenuModel(cfg core.RuntimeConfig, preset string) MenuModel {
	m := MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	for i, d := range Difficulties {
		if d == preset {
			m.difficulty = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := len(menuEntries) // difficulty row

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.choice = ChoiceQuit
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < last {
			m.cursor++
		}

	case MenuActionLeft:
		if m.cursor == last {
			m.difficulty = (m.difficulty + len(Difficulties) - 1) % len(Difficulties)
		}

	case MenuActionRight:
		if m.cursor == last {
			m.difficulty = (m.difficulty + 1) % len(Difficulties)
		}

	case MenuActionSelect:
		if m.cursor == last {
			m.difficulty = (m.difficulty + 1) % len(Difficulties)
			return m, nil
		}
		m.choice = menuEntries[m.cursor].choice
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice != ChoiceNone {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("L U M I N E S"), m.width))
	b.WriteString("\n\n")

	row := func(i int, text string) {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = activeStyle
		}
		b.WriteString(centerText(style.Render(cursor+text), m.width))
		b.WriteString("\n")
	}

	for i, e := range menuEntries {
		row(i, e.label)
	}
	b.WriteString("\n")
	row(len(menuEntries), fmt.Sprintf("Difficulty: < %s >", difficultyLabel(m.Difficulty())))

	// Footer with controls
	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Difficulty  |  Enter: Select  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Choice returns the picked entry, or ChoiceNone.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Difficulty returns the selected preset name; empty means the config file.
func (m MenuModel) Difficulty() string {
	return Difficulties[m.difficulty]
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice     MenuChoice
	Difficulty string
	Config     core.RuntimeConfig
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig, preset string) (MenuResult, error) {
	model := NewMenuModel(cfg, preset)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg, Choice: ChoiceQuit}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.Choice() == ChoiceNone {
		return MenuResult{Config: cfg, Choice: ChoiceQuit}, nil
	}

	return MenuResult{
		Choice:     m.Choice(),
		Difficulty: m.Difficulty(),
		Config:     m.Config(),
	}, nil
}
