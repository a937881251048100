package types

import (
	"fmt"
	"strings"
)

// Point is a single grid cell. Row 0 is the top of the board.
type Point struct {
	X, Y int
}

// Advance returns the cell one step away from p in direction d.
func (p Point) Advance(d Direction) Point {
	switch d {
	case Right:
		return Point{X: p.X + 1, Y: p.Y}
	case Up:
		return Point{X: p.X, Y: p.Y - 1}
	case Left:
		return Point{X: p.X - 1, Y: p.Y}
	case Down:
		return Point{X: p.X, Y: p.Y + 1}
	default:
		return p
	}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is a heading. Values two apart are opposite.
type Direction int

const (
	Right Direction = iota
	Up
	Left
	Down
)

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	return d >= Right && d <= Down
}

// IsOpposite reports whether d and other point in exactly opposite directions.
func (d Direction) IsOpposite(other Direction) bool {
	diff := int(d) - int(other)
	return diff == 2 || diff == -2
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// TurnLeft returns the heading after a counter-clockwise quarter turn.
func (d Direction) TurnLeft() Direction {
	return (d + 1) % 4
}

// TurnRight returns the heading after a clockwise quarter turn.
func (d Direction) TurnRight() Direction {
	return (d + 3) % 4
}

func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Up:
		return "up"
	case Left:
		return "left"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection maps a direction name (case-insensitive) to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right":
		return Right, nil
	case "up":
		return Up, nil
	case "left":
		return Left, nil
	case "down":
		return Down, nil
	}
	return Right, fmt.Errorf("unknown direction %q", s)
}

// Grid represents the game grid dimensions.
//
// The playable area is inclusive on both ends: a 40x40 grid accepts
// coordinates 0..40 on each axis.
type Grid struct {
	Width  int
	Height int
}

// Contains reports whether p lies inside the playable area.
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X <= g.Width && p.Y >= 0 && p.Y <= g.Height
}

// Cells returns the number of playable cells.
func (g Grid) Cells() int {
	return (g.Width + 1) * (g.Height + 1)
}

// GameState is the lifecycle state of a game.
type GameState int

const (
	Paused GameState = iota
	Started
	Ended
)

func (s GameState) String() string {
	switch s {
	case Paused:
		return "paused"
	case Started:
		return "started"
	case Ended:
		return "ended"
	default:
		return fmt.Sprintf("GameState(%d)", int(s))
	}
}

// ActionLabel is the caption of the single action button in this state.
// played tells a fresh board from one paused mid-game.
func (s GameState) ActionLabel(played bool) string {
	switch s {
	case Started:
		return "Pause"
	case Ended:
		return "Retry"
	default:
		if played {
			return "Resume"
		}
		return "Start"
	}
}

// Game constants
const (
	DefaultGridWidth  = 40
	DefaultGridHeight = 40
	SpeedUpRatio      = 0.8
)
