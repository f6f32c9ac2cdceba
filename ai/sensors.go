package ai

import (
	"snake-core/game"
	"snake-core/game/manager"
	"snake-core/game/types"
)

// State is what the agent perceives of a game.
type State struct {
	RelativeFoodDir [2]int          // Sign of (food - head) on each axis, zero without food
	FoodDistance    int             // Manhattan distance to food, zero without food
	DangerDirs      [4]bool         // Fatal move in each of types.Directions
	Heading         types.Direction // Last committed direction
}

// Observe extracts the agent's view of s.
func Observe(s game.GameState) State {
	head := s.Head()
	state := State{Heading: s.Direction}

	if s.Food != nil {
		state.RelativeFoodDir = [2]int{
			sign(s.Food.X - head.X),
			sign(s.Food.Y - head.Y),
		}
		state.FoodDistance = manhattanDistance(head, *s.Food)
	}

	collisions := manager.NewCollisionManager(types.Grid{Size: s.GridSize})
	for i, dir := range types.Directions {
		pos := head.Add(dir.Delta())
		state.DangerDirs[i] = collisions.CheckCollision(pos, s.Snake) != manager.NoCollision
	}
	return state
}

// Key packs the state into an integer for the Q-table. FoodDistance is left
// out so the table stays small.
func (s State) Key() uint32 {
	key := uint32(s.RelativeFoodDir[0]+1) | uint32(s.RelativeFoodDir[1]+1)<<2
	for i, danger := range s.DangerDirs {
		if danger {
			key |= 1 << (4 + i)
		}
	}
	key |= uint32(s.Heading) << 8
	return key
}

func sign(x int) int {
	if x > 0 {
		return 1
	} else if x < 0 {
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// manhattanDistance returns the taxicab distance between two cells
func manhattanDistance(p1, p2 types.Cell) int {
	return abs(p2.X-p1.X) + abs(p2.Y-p1.Y)
}
