package manager

import (
	"snake-core/game/entity"
	"snake-core/game/types"
)

// CollisionType represents the type of collision
type CollisionType int

const (
	NoCollision CollisionType = iota
	WallCollision
	SelfCollision
)

func (c CollisionType) String() string {
	switch c {
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	default:
		return "none"
	}
}

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// CheckCollision classifies a prospective head position for body. Walls are
// checked first.
func (cm *CollisionManager) CheckCollision(pos types.Cell, body entity.Snake) CollisionType {
	if cm.IsWallCollision(pos) {
		return WallCollision
	}
	if cm.IsSelfCollision(pos, body) {
		return SelfCollision
	}
	return NoCollision
}

// IsWallCollision checks if a position lies outside the grid
func (cm *CollisionManager) IsWallCollision(pos types.Cell) bool {
	return !cm.grid.Contains(pos)
}

// IsSelfCollision tests pos against every body cell except the tail, which
// moves out of the way on the same tick. Food is never placed on the tail, so
// a move onto the tail cannot also be a growing move.
func (cm *CollisionManager) IsSelfCollision(pos types.Cell, body entity.Snake) bool {
	return body.WithoutTail().Contains(pos)
}

// IsFoodCollision reports whether pos is on food. Absent food never matches.
func (cm *CollisionManager) IsFoodCollision(pos types.Cell, food *types.Cell) bool {
	return food != nil && pos == *food
}
