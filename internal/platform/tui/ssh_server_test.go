package tui

import (
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-lumines/internal/games/lumines"
)

func sessionUpdate(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestSessionPlayAndReturn(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	m := NewSessionModel(nil, nil, testConfig())
	m, cmd := sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame || m.game == nil || cmd == nil {
		t.Fatal("Enter on Play should start a game")
	}
	if m.View() == "" {
		t.Error("Game view should not be empty")
	}

	m, _ = sessionUpdate(t, m, runeKey("q"))
	if m.screen != screenMenu || m.quitting {
		t.Error("q in game should return to the menu")
	}
}

func TestSessionScoresAndBack(t *testing.T) {
	m := NewSessionModel(testRanking(t), nil, testConfig())
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenScores {
		t.Fatal("Expected scoreboard")
	}

	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Error("esc on scoreboard should return to the menu")
	}
}

func TestSessionQuitFromMenu(t *testing.T) {
	m := NewSessionModel(nil, nil, testConfig())
	m, cmd := sessionUpdate(t, m, runeKey("q"))
	if !m.quitting || cmd == nil {
		t.Error("q in the menu should end the session")
	}
	if m.View() != "" {
		t.Error("View should be empty after quitting")
	}
}

func TestSessionKeepsDifficultyAcrossGames(t *testing.T) {
	m := NewSessionModel(nil, nil, testConfig())
	for i := 0; i < len(menuEntries); i++ {
		m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m, _ = sessionUpdate(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.difficulty != "easy" {
		t.Fatalf("difficulty = %q", m.difficulty)
	}

	m, _ = sessionUpdate(t, m, runeKey("q"))
	if !m.quitting {
		t.Error("q should quit")
	}
}

func TestSessionPresetStaysWithItsGame(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	lumines.SetDifficultyPreset("")

	want := map[string]int{"hard": 5, "normal": 8, "easy": 12, "fixed": 12, "": 12}

	type result struct {
		preset string
		fall   int
	}
	results := make(chan result, 4*len(want))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		for preset := range want {
			wg.Add(1)
			go func(preset string) {
				defer wg.Done()
				m := NewSessionModel(nil, nil, testConfig())
				m.menu = NewMenuModel(m.config, preset)
				next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

				fall := -1
				if sm, ok := next.(SessionModel); ok && sm.game != nil {
					if g, ok := sm.game.game.(*lumines.Game); ok {
						fall = g.Session().FallEvery()
					}
				}
				results <- result{preset, fall}
			}(preset)
		}
	}
	wg.Wait()
	close(results)

	for r := range results {
		if r.fall != want[r.preset] {
			t.Errorf("preset %q: FallEvery = %d, expected %d", r.preset, r.fall, want[r.preset])
		}
	}

	// Sessions leave the package-wide preset alone.
	g := lumines.New()
	g.Reset(testConfig())
	if got := g.Session().FallEvery(); got != 12 {
		t.Errorf("package preset changed: FallEvery = %d, expected 12", got)
	}
}
