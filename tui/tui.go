// Package tui is a terminal front end for the game built on tcell.
package tui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/golang/glog"

	"snake-core/game"
	"snake-core/game/types"
)

// Action is what a key press asks the front end to do.
type Action int

const (
	ActionNone Action = iota
	ActionTurn
	ActionToggle
	ActionQuit
)

type quitSignal struct{}

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	bodyStyle   = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	headStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	targetStyle = tcell.StyleDefault.Foreground(tcell.ColorRed)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// KeyAction maps a key event to an action. The direction is only
// meaningful for ActionTurn.
func KeyAction(ev *tcell.EventKey) (Action, types.Direction) {
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionTurn, types.Up
	case tcell.KeyDown:
		return ActionTurn, types.Down
	case tcell.KeyLeft:
		return ActionTurn, types.Left
	case tcell.KeyRight:
		return ActionTurn, types.Right
	case tcell.KeyEnter:
		return ActionToggle, types.Right
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit, types.Right
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			return ActionToggle, types.Right
		case 'q', 'Q':
			return ActionQuit, types.Right
		case 'w', 'k':
			return ActionTurn, types.Up
		case 's', 'j':
			return ActionTurn, types.Down
		case 'a', 'h':
			return ActionTurn, types.Left
		case 'd', 'l':
			return ActionTurn, types.Right
		}
	}
	return ActionNone, types.Right
}

// UI draws a game on a tcell screen. It observes the game and wakes the
// event loop on every change; drawing happens on the loop goroutine.
type UI struct {
	screen tcell.Screen
}

func New(screen tcell.Screen) *UI {
	return &UI{screen: screen}
}

func (u *UI) Refresh(g *game.Game) {
	u.wake()
}

func (u *UI) PlayEnded(g *game.Game) {
	u.wake()
}

func (u *UI) wake() {
	// A full queue already holds a pending redraw.
	_ = u.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// Run pumps screen events into g until the player quits or ctx is done.
// The screen must already be initialised; Run does not finalise it.
func (u *UI) Run(ctx context.Context, g *game.Game) error {
	stop := context.AfterFunc(ctx, func() {
		_ = u.screen.PostEvent(tcell.NewEventInterrupt(quitSignal{}))
	})
	defer stop()

	u.Draw(g)
	for {
		ev := u.screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			u.screen.Sync()
			u.Draw(g)
		case *tcell.EventInterrupt:
			if _, ok := ev.Data().(quitSignal); ok {
				return nil
			}
			u.Draw(g)
		case *tcell.EventKey:
			action, dir := KeyAction(ev)
			switch action {
			case ActionTurn:
				g.SetDirection(dir)
			case ActionToggle:
				g.Toggle()
				u.Draw(g)
			case ActionQuit:
				glog.V(1).Info("quit requested from terminal")
				return nil
			}
		}
	}
}

// Draw renders the board with two terminal columns per cell.
func (u *UI) Draw(g *game.Game) {
	snap := g.Snapshot()
	u.screen.Clear()

	cols := (snap.Grid.Width + 1) * 2
	rows := snap.Grid.Height + 1
	for x := 0; x <= cols+1; x++ {
		u.screen.SetContent(x, 0, '-', nil, borderStyle)
		u.screen.SetContent(x, rows+1, '-', nil, borderStyle)
	}
	for y := 1; y <= rows; y++ {
		u.screen.SetContent(0, y, '|', nil, borderStyle)
		u.screen.SetContent(cols+1, y, '|', nil, borderStyle)
	}

	u.setCell(snap.Target, '*', targetStyle)
	for i, p := range snap.Body {
		if i == 0 {
			u.setCell(p, '@', headStyle)
			continue
		}
		u.setCell(p, 'o', bodyStyle)
	}

	status := fmt.Sprintf("Score: %d  Speed: %dms  [space] %s  [q] quit",
		snap.Score, snap.Interval.Milliseconds(), snap.Action)
	if snap.State == types.Ended {
		status = "Game Over! " + status
	}
	u.drawText(0, rows+2, status, textStyle)

	if stats := g.Stats(); stats != nil {
		u.drawText(0, rows+3, fmt.Sprintf("Games: %d  Best: %d  Avg: %.1f",
			stats.GamesPlayed(), stats.HighScore(), stats.AverageScore()), textStyle)
	}
	u.screen.Show()
}

func (u *UI) setCell(p types.Point, r rune, style tcell.Style) {
	x := 1 + p.X*2
	y := 1 + p.Y
	u.screen.SetContent(x, y, r, nil, style)
	u.screen.SetContent(x+1, y, ' ', nil, style)
}

func (u *UI) drawText(x, y int, text string, style tcell.Style) {
	for i, r := range text {
		u.screen.SetContent(x+i, y, r, nil, style)
	}
}
