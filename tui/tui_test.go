package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"snake-core/game"
	"snake-core/game/types"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(120, 50)
	t.Cleanup(screen.Fini)
	return screen
}

func newGame(t *testing.T, obs game.Observer) *game.Game {
	t.Helper()
	settings := game.DefaultSettings()
	settings.Interval = time.Hour
	g, err := game.NewGame(settings, game.WithObserver(obs))
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	t.Cleanup(g.Stop)
	return g
}

func rowText(screen tcell.SimulationScreen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestKeyAction(t *testing.T) {
	tests := []struct {
		name   string
		ev     *tcell.EventKey
		action Action
		dir    types.Direction
	}{
		{"arrow up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), ActionTurn, types.Up},
		{"arrow left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), ActionTurn, types.Left},
		{"vi down", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), ActionTurn, types.Down},
		{"wasd right", tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), ActionTurn, types.Right},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), ActionToggle, types.Right},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), ActionToggle, types.Right},
		{"quit", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), ActionQuit, types.Right},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionQuit, types.Right},
		{"other", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), ActionNone, types.Right},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, dir := KeyAction(tt.ev)
			if action != tt.action {
				t.Errorf("action = %v, want %v", action, tt.action)
			}
			if action == ActionTurn && dir != tt.dir {
				t.Errorf("direction = %v, want %v", dir, tt.dir)
			}
		})
	}
}

func TestDrawPlacesSnakeAndStatus(t *testing.T) {
	screen := newScreen(t)
	u := New(screen)
	g := newGame(t, u)

	u.Draw(g)

	// Head (22,10) lands at column 1+2*22, row 1+10.
	if r, _, _, _ := screen.GetContent(45, 11); r != '@' {
		t.Errorf("head cell = %q, want '@'", r)
	}
	if r, _, _, _ := screen.GetContent(43, 11); r != 'o' {
		t.Errorf("body cell = %q, want 'o'", r)
	}
	target := g.Target()
	if r, _, _, _ := screen.GetContent(1+target.X*2, 1+target.Y); r != '*' {
		t.Errorf("target cell = %q, want '*'", r)
	}

	status := rowText(screen, 43, 120)
	if !strings.Contains(status, "Score: 0") || !strings.Contains(status, "Start") {
		t.Errorf("status line = %q", status)
	}
}

func TestRunTogglesAndQuits(t *testing.T) {
	screen := newScreen(t)
	u := New(screen)
	g := newGame(t, u)

	done := make(chan error, 1)
	go func() { done <- u.Run(context.Background(), g) }()

	screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	screen.InjectKey(tcell.KeyUp, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after quit")
	}

	if g.State() != types.Started {
		t.Errorf("state = %v, want started", g.State())
	}
	if g.Direction() != types.Up {
		t.Errorf("direction = %v, want up", g.Direction())
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	screen := newScreen(t)
	u := New(screen)
	g := newGame(t, u)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- u.Run(ctx, g) }()
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
