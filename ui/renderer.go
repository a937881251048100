package ui

import (
	"fmt"
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-core/game"
	"snake-core/game/manager"
	"snake-core/game/types"
)

const (
	borderPadding = 10 // Padding around game area
	statsPanel    = 220
	buttonHeight  = 40
	maxScores     = 50 // Maximum number of sessions shown in the graph
)

// Renderer draws a game into the raylib window. It also observes the game;
// the callbacks only flag state because raylib calls must stay on the
// window thread.
type Renderer struct {
	cellSize        int32
	screenWidth     int32
	screenHeight    int32
	totalGridWidth  int32
	totalGridHeight int32
	offsetX         int32
	offsetY         int32

	refreshes atomic.Int64
	gameOvers atomic.Int64
}

func NewRenderer(cellSize int) *Renderer {
	return &Renderer{cellSize: int32(cellSize)}
}

// WindowSize returns the window size that fits grid at the renderer's cell size.
func (r *Renderer) WindowSize(grid types.Grid) (int32, int32) {
	w := r.cellSize*int32(grid.Width+1) + borderPadding*3 + statsPanel
	h := r.cellSize*int32(grid.Height+1) + borderPadding*3 + buttonHeight
	return w, h
}

func (r *Renderer) Refresh(g *game.Game) {
	r.refreshes.Add(1)
}

func (r *Renderer) PlayEnded(g *game.Game) {
	if g.State() == types.Ended {
		r.gameOvers.Add(1)
	}
}

func (r *Renderer) UpdateDimensions(grid types.Grid) {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())

	r.totalGridWidth = r.cellSize * int32(grid.Width+1)
	r.totalGridHeight = r.cellSize * int32(grid.Height+1)
	r.offsetX = borderPadding
	r.offsetY = borderPadding
}

// ButtonRect is the on-screen area of the action button.
func (r *Renderer) ButtonRect() rl.Rectangle {
	return rl.Rectangle{
		X:      float32(r.offsetX + r.totalGridWidth/4),
		Y:      float32(r.offsetY + r.totalGridHeight + borderPadding),
		Width:  float32(r.totalGridWidth / 2),
		Height: buttonHeight,
	}
}

func (r *Renderer) Draw(g *game.Game) {
	snap := g.Snapshot()
	r.UpdateDimensions(snap.Grid)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	fontSize := int32(20)

	// Draw grid background
	rl.DrawRectangle(r.offsetX-1, r.offsetY-1, r.totalGridWidth+2, r.totalGridHeight+2, rl.Orange)

	for _, p := range snap.Body {
		rl.DrawRectangle(
			r.offsetX+int32(p.X)*r.cellSize,
			r.offsetY+int32(p.Y)*r.cellSize,
			r.cellSize, r.cellSize, rl.Blue)
	}
	if len(snap.Body) > 0 {
		r.drawHeading(snap.Body[0], snap.Direction)
	}

	// Draw target
	rl.DrawRectangle(
		r.offsetX+int32(snap.Target.X)*r.cellSize,
		r.offsetY+int32(snap.Target.Y)*r.cellSize,
		r.cellSize, r.cellSize, rl.Red)

	r.drawButton(snap.Action, fontSize)

	if snap.State == types.Ended {
		text := fmt.Sprintf("Game Over! Score: %d", snap.Score)
		textWidth := rl.MeasureText(text, fontSize)
		rl.DrawText(text,
			r.offsetX+(r.totalGridWidth-textWidth)/2,
			r.offsetY+r.totalGridHeight/2,
			fontSize, rl.White)
	}

	r.drawStatsPanel(snap, g.Stats(), fontSize)
	rl.EndDrawing()
}

func (r *Renderer) drawHeading(head types.Point, dir types.Direction) {
	headX := r.offsetX + int32(head.X)*r.cellSize
	headY := r.offsetY + int32(head.Y)*r.cellSize
	halfCell := r.cellSize / 2

	// Vertices go counter-clockwise, as raylib expects.
	var a, b, c rl.Vector2
	switch dir {
	case types.Right:
		a = rl.Vector2{X: float32(headX + r.cellSize), Y: float32(headY + halfCell)}
		b = rl.Vector2{X: float32(headX + halfCell), Y: float32(headY)}
		c = rl.Vector2{X: float32(headX + halfCell), Y: float32(headY + r.cellSize)}
	case types.Left:
		a = rl.Vector2{X: float32(headX), Y: float32(headY + halfCell)}
		b = rl.Vector2{X: float32(headX + halfCell), Y: float32(headY + r.cellSize)}
		c = rl.Vector2{X: float32(headX + halfCell), Y: float32(headY)}
	case types.Down:
		a = rl.Vector2{X: float32(headX + halfCell), Y: float32(headY + r.cellSize)}
		b = rl.Vector2{X: float32(headX + r.cellSize), Y: float32(headY + halfCell)}
		c = rl.Vector2{X: float32(headX), Y: float32(headY + halfCell)}
	default:
		a = rl.Vector2{X: float32(headX + halfCell), Y: float32(headY)}
		b = rl.Vector2{X: float32(headX), Y: float32(headY + halfCell)}
		c = rl.Vector2{X: float32(headX + r.cellSize), Y: float32(headY + halfCell)}
	}
	rl.DrawTriangle(a, b, c, rl.Yellow)
}

func (r *Renderer) drawButton(label string, fontSize int32) {
	rect := r.ButtonRect()
	rl.DrawRectangleLinesEx(rect, 2, rl.Orange)
	textWidth := rl.MeasureText(label, fontSize)
	rl.DrawText(label,
		int32(rect.X)+(int32(rect.Width)-textWidth)/2,
		int32(rect.Y)+(int32(rect.Height)-fontSize)/2,
		fontSize, rl.Orange)
}

func (r *Renderer) drawStatsPanel(snap game.Snapshot, stats *manager.StatsManager, fontSize int32) {
	statsX := r.offsetX + r.totalGridWidth + borderPadding*2
	statsY := r.offsetY
	lineHeight := fontSize + 6

	rl.DrawText(fmt.Sprintf("Score: %d", snap.Score), statsX, statsY, fontSize, rl.White)
	statsY += lineHeight
	rl.DrawText(fmt.Sprintf("Speed: %dms", snap.Interval.Milliseconds()), statsX, statsY, fontSize, rl.White)
	statsY += lineHeight
	rl.DrawText(fmt.Sprintf("State: %s", snap.State), statsX, statsY, fontSize, rl.Gray)
	statsY += lineHeight * 2

	if stats == nil {
		return
	}
	rl.DrawText(fmt.Sprintf("Games: %d", stats.GamesPlayed()), statsX, statsY, fontSize, rl.Green)
	statsY += lineHeight
	rl.DrawText(fmt.Sprintf("Best: %d", stats.HighScore()), statsX, statsY, fontSize, rl.Green)
	statsY += lineHeight
	rl.DrawText(fmt.Sprintf("Avg: %.1f", stats.AverageScore()), statsX, statsY, fontSize, rl.Green)
	statsY += lineHeight * 2

	r.drawScoreGraph(stats.Records(), statsX, statsY)
}

func (r *Renderer) drawScoreGraph(records []manager.SessionRecord, graphX, graphY int32) {
	graphWidth := int32(statsPanel - borderPadding*2)
	graphHeight := int32(120)
	rl.DrawRectangleLines(graphX, graphY, graphWidth, graphHeight, rl.White)

	if len(records) > maxScores {
		records = records[len(records)-maxScores:]
	}
	if len(records) < 2 {
		return
	}

	maxScore := 1
	for _, rec := range records {
		maxScore = max(maxScore, rec.MaxScore)
	}

	pointY := func(score float64) int32 {
		return graphY + graphHeight - int32(float64(graphHeight)*score/float64(maxScore))
	}
	for j := 1; j < len(records); j++ {
		x1 := graphX + int32(float32(graphWidth)*float32(j-1)/float32(len(records)-1))
		x2 := graphX + int32(float32(graphWidth)*float32(j)/float32(len(records)-1))
		rl.DrawLine(x1, pointY(records[j-1].AverageScore), x2, pointY(records[j].AverageScore), rl.Green)
	}
}

// FrameCounts reports how many refreshes and game overs were observed.
func (r *Renderer) FrameCounts() (int64, int64) {
	return r.refreshes.Load(), r.gameOvers.Load()
}
