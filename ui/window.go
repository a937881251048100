package ui

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-core/game"
	"snake-core/game/types"
)

var keyDirections = map[int32]types.Direction{
	rl.KeyRight: types.Right,
	rl.KeyUp:    types.Up,
	rl.KeyLeft:  types.Left,
	rl.KeyDown:  types.Down,
	rl.KeyD:     types.Right,
	rl.KeyW:     types.Up,
	rl.KeyA:     types.Left,
	rl.KeyS:     types.Down,
}

// Run opens the window and drives g until the window closes or ctx is done.
// It must be called from the main goroutine.
func Run(ctx context.Context, g *game.Game, r *Renderer) error {
	w, h := r.WindowSize(g.Grid())
	rl.InitWindow(w, h, "Snake")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			return nil
		}
		handleInput(g, r)
		r.Draw(g)
	}
	return nil
}

func handleInput(g *game.Game, r *Renderer) {
	for key, dir := range keyDirections {
		if rl.IsKeyPressed(key) {
			g.SetDirection(dir)
		}
	}

	if rl.IsKeyPressed(rl.KeySpace) || rl.IsKeyPressed(rl.KeyEnter) {
		g.Toggle()
		return
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) &&
		rl.CheckCollisionPointRec(rl.GetMousePosition(), r.ButtonRect()) {
		g.Toggle()
	}
}
