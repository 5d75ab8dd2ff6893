package registry

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-lumines/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return strings.ToUpper(g.id) }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub-a", func() Game { return &stubGame{id: "stub-a"} })

	if !Exists("stub-a") {
		t.Fatal("stub-a should be registered")
	}

	g1, err := Create("stub-a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	g2, _ := Create("stub-a")
	if g1 == g2 {
		t.Error("Create() should return a fresh instance each call")
	}
	if g1.ID() != "stub-a" {
		t.Errorf("ID() = %q, want stub-a", g1.ID())
	}
}

func TestCreateUnknown(t *testing.T) {
	if Exists("missing") {
		t.Fatal("missing should not be registered")
	}
	_, err := Create("missing")
	if err == nil {
		t.Fatal("expected error for unknown game")
	}
	if !strings.Contains(err.Error(), `"missing"`) {
		t.Errorf("error %q should name the game", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub-dup", func() Game { return &stubGame{id: "stub-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub-dup", func() Game { return &stubGame{id: "stub-dup"} })
}

func TestIDsSorted(t *testing.T) {
	Register("stub-z", func() Game { return &stubGame{id: "stub-z"} })
	Register("stub-m", func() Game { return &stubGame{id: "stub-m"} })

	ids := IDs()
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("IDs() not sorted: %v", ids)
		}
	}
}
