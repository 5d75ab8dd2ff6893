package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-lumines/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the stats sidebar
	sidebarWidth       = 22 // Width of stats sidebar
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Refresh},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the ranked high-score list.
type ScoreboardModel struct {
	ranking     *storage.Ranking
	store       *storage.Store
	gameID      string
	title       string
	scores      []storage.ScoreEntry
	stats       storage.GameStats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show the stats sidebar
}

// NewScoreboardModel creates a new scoreboard for the ranked list of ranking.
// A nil ranking shows an empty list.
func NewScoreboardModel(ranking *storage.Ranking, title string, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		ranking:     ranking,
		title:       title,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	if ranking != nil {
		m.store = ranking.Store()
		m.gameID = ranking.GameID()
	}

	m.table = m.createTable()
	m.loadScores()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Name", Width: storage.MaxNameLength + 2},
		{Title: "Score", Width: 8},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadScores reloads the ranked list and the aggregate statistics.
func (m *ScoreboardModel) loadScores() {
	m.scores, m.loadErr = nil, nil
	m.stats = storage.GameStats{GameID: m.gameID}
	if m.ranking == nil {
		m.updateTableRows()
		return
	}

	scores, err := m.ranking.Entries()
	if err != nil {
		m.loadErr = err
	} else {
		m.scores = scores
	}
	if stats, err := m.store.GetGameStats(m.gameID); err == nil {
		m.stats = *stats
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current scores.
func (m *ScoreboardModel) updateTableRows() {
	m.table.SetRows(scoreRows(m.scores))

	// Reset cursor to top
	m.table.GotoTop()
}

// scoreRows formats ranked entries as table rows.
func scoreRows(scores []storage.ScoreEntry) []table.Row {
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			s.Name,
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Refresh):
			m.loadScores()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	// Title
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "HIGH SCORES"
	if m.title != "" {
		title = fmt.Sprintf("HIGH SCORES - %s", m.title)
	}

	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := boxStyle.Render(m.renderTableContent())

	if m.showSidebar {
		sidebar := boxStyle.Width(sidebarWidth).Render(m.renderStats())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tableRendered, "  ", sidebar))
	} else {
		b.WriteString(centerText(tableRendered, m.width))
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderStats renders the aggregate statistics sidebar.
func (m ScoreboardModel) renderStats() string {
	var sb strings.Builder
	sb.WriteString("Statistics\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Games   %d\n", m.stats.GamesCount)
	fmt.Fprintf(&sb, "Best    %d\n", m.stats.HighScore)
	fmt.Fprintf(&sb, "Average %.1f\n", m.stats.AvgScore)
	last := "never"
	if !m.stats.LastPlayed.IsZero() {
		last = m.stats.LastPlayed.Format("Jan 02 15:04")
	}
	fmt.Fprintf(&sb, "Last    %s", last)
	return sb.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.loadErr != nil {
		return emptyStyle.Render("Could not load scores:\n" + m.loadErr.Error())
	}
	if len(m.scores) == 0 {
		return emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(ranking *storage.Ranking, title string, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(ranking, title, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
