package entity

import "snake-core/game/types"

// Snake is an ordered body, head first, plus the heading applied on the next tick.
type Snake struct {
	Body      []types.Point
	Direction types.Direction
}

// NewSnake returns the default three cell snake heading right.
func NewSnake() *Snake {
	return &Snake{
		Body: []types.Point{
			{X: 22, Y: 10},
			{X: 21, Y: 10},
			{X: 20, Y: 10},
		},
		Direction: types.Right,
	}
}

func (s *Snake) GetHead() types.Point {
	return s.Body[0]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// Contains reports whether pos is one of the body cells.
func (s *Snake) Contains(pos types.Point) bool {
	for _, p := range s.Body {
		if p == pos {
			return true
		}
	}
	return false
}

// Grow puts newHead in front without dropping the tail.
func (s *Snake) Grow(newHead types.Point) {
	s.Body = append(s.Body, types.Point{})
	copy(s.Body[1:], s.Body)
	s.Body[0] = newHead
}

// Move puts newHead in front and drops the tail.
func (s *Snake) Move(newHead types.Point) {
	copy(s.Body[1:], s.Body[:len(s.Body)-1])
	s.Body[0] = newHead
}

// SetDirection changes the heading unless dir is the exact reverse of it or
// not a heading at all.
func (s *Snake) SetDirection(dir types.Direction) bool {
	if !dir.Valid() || s.Direction.IsOpposite(dir) {
		return false
	}
	s.Direction = dir
	return true
}

// NextHead is the cell the head moves to on the next tick.
func (s *Snake) NextHead() types.Point {
	return s.GetHead().Advance(s.Direction)
}

// Positions returns a copy of the body.
func (s *Snake) Positions() []types.Point {
	body := make([]types.Point, len(s.Body))
	copy(body, s.Body)
	return body
}
