package manager

import (
	"errors"

	"snake-core/game/types"
)

// ErrNoFreeCell is returned when every playable cell is occupied.
var ErrNoFreeCell = errors.New("no free cell for target")

// Rand is the random source used for target placement.
// *rand.Rand from golang.org/x/exp/rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// randomDrawsPerCell bounds the rejection sampling phase before falling back
// to an exhaustive scan of free cells.
const randomDrawsPerCell = 4

type FoodManager struct {
	grid         types.Grid
	rng          Rand
	collisionMgr *CollisionManager
}

func NewFoodManager(grid types.Grid, rng Rand, collisionMgr *CollisionManager) *FoodManager {
	return &FoodManager{
		grid:         grid,
		rng:          rng,
		collisionMgr: collisionMgr,
	}
}

// GenerateFood draws a uniformly random free cell in [0,W]x[0,H].
func (fm *FoodManager) GenerateFood(body []types.Point) (types.Point, error) {
	maxDraws := fm.grid.Cells() * randomDrawsPerCell
	for i := 0; i < maxDraws; i++ {
		food := types.Point{
			X: fm.rng.Intn(fm.grid.Width + 1),
			Y: fm.rng.Intn(fm.grid.Height + 1),
		}

		if fm.collisionMgr.ValidateSpawnPosition(food, body) {
			return food, nil
		}
	}

	// Dense board: pick among the remaining free cells directly.
	occupied := make(map[types.Point]struct{}, len(body))
	for _, p := range body {
		occupied[p] = struct{}{}
	}
	free := make([]types.Point, 0, max(fm.grid.Cells()-len(occupied), 0))
	for y := 0; y <= fm.grid.Height; y++ {
		for x := 0; x <= fm.grid.Width; x++ {
			p := types.Point{X: x, Y: y}
			if _, taken := occupied[p]; !taken {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return types.Point{}, ErrNoFreeCell
	}
	return free[fm.rng.Intn(len(free))], nil
}
