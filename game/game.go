package game

import (
	"errors"
	"fmt"

	"snake-core/game/entity"
	"snake-core/game/manager"
	"snake-core/game/rng"
	"snake-core/game/types"
)

// ErrGridTooSmall is returned when the board cannot hold the initial snake.
var ErrGridTooSmall = errors.New("grid too small for initial snake")

// GameState is a complete snapshot of a game at one instant. States are
// values: every operation in this package returns a new GameState and never
// writes into the slices of the one it was given.
type GameState struct {
	GridSize      int             `json:"gridSize"`
	Snake         entity.Snake    `json:"snake"`
	Direction     types.Direction `json:"direction"`
	NextDirection types.Direction `json:"nextDirection"`
	Food          *types.Cell     `json:"food"`
	Score         int             `json:"score"`
	Alive         bool            `json:"alive"`
}

// NewInitialState places a three cell snake centred on the board, heading
// right, and draws the first food position from src.
func NewInitialState(src rng.Source, gridSize int) (GameState, error) {
	if gridSize < types.MinGridSize {
		return GameState{}, fmt.Errorf("new game with size %d (minimum %d): %w", gridSize, types.MinGridSize, ErrGridTooSmall)
	}

	mid := gridSize / 2
	snake := entity.NewSnake(types.Cell{X: mid, Y: mid}, types.Right, types.InitialLength)

	state := GameState{
		GridSize:      gridSize,
		Snake:         snake,
		Direction:     types.Right,
		NextDirection: types.Right,
		Score:         0,
		Alive:         true,
	}
	state.Food = spawnFood(state.grid(), snake, src)
	return state, nil
}

// MustInitialState is like NewInitialState but panics on error.
func MustInitialState(src rng.Source, gridSize int) GameState {
	state, err := NewInitialState(src, gridSize)
	if err != nil {
		panic(err)
	}
	return state
}

// QueueDirection records the direction to apply on the next tick. Unknown
// directions and exact reversals of the last committed direction are
// ignored. Checking against Direction rather than NextDirection stops several
// quick turns between two ticks from adding up to a reversal.
func QueueDirection(state GameState, requested types.Direction) GameState {
	if !requested.Valid() {
		return state
	}
	if requested == state.Direction.Opposite() {
		return state
	}
	state.NextDirection = requested
	return state
}

// Tick advances the game by one step. A dead state is returned unchanged and
// src is not touched. src is drawn from exactly once when food is eaten and
// there is room for a new one.
func Tick(state GameState, src rng.Source) GameState {
	if !state.Alive {
		return state
	}

	direction := state.NextDirection
	if !direction.Valid() || len(state.Snake) == 0 {
		state.Alive = false
		return state
	}

	grid := state.grid()
	collisions := manager.NewCollisionManager(grid)
	nextHead := state.Snake.Head().Add(direction.Delta())

	if collisions.CheckCollision(nextHead, state.Snake) != manager.NoCollision {
		state.Alive = false
		state.Direction = direction
		return state
	}

	ateFood := collisions.IsFoodCollision(nextHead, state.Food)
	snake := state.Snake.Advance(nextHead, ateFood)

	next := GameState{
		GridSize:      state.GridSize,
		Snake:         snake,
		Direction:     direction,
		NextDirection: direction,
		Food:          state.Food,
		Score:         state.Score,
		Alive:         true,
	}
	if ateFood {
		next.Score++
		next.Food = spawnFood(grid, snake, src)
	}
	return next
}

// Run applies up to n ticks and returns every state produced, stopping after
// the first terminal state.
func Run(state GameState, src rng.Source, n int) []GameState {
	states := make([]GameState, 0, n)
	for i := 0; i < n && state.Alive; i++ {
		state = Tick(state, src)
		states = append(states, state)
	}
	return states
}

// Outcome classifies the transition from prev to next, as produced by Tick.
func Outcome(prev, next GameState) manager.CollisionType {
	if !prev.Alive || next.Alive || len(prev.Snake) == 0 || !prev.NextDirection.Valid() {
		return manager.NoCollision
	}
	nextHead := prev.Snake.Head().Add(prev.NextDirection.Delta())
	return manager.NewCollisionManager(prev.grid()).CheckCollision(nextHead, prev.Snake)
}

// Head returns the first snake cell.
func (s GameState) Head() types.Cell {
	return s.Snake.Head()
}

// Full reports whether the snake covers every cell of the board. Play goes on
// with no food rather than ending.
func (s GameState) Full() bool {
	return len(s.Snake) >= s.GridSize*s.GridSize
}

// Clone returns a deep copy that shares no memory with s.
func (s GameState) Clone() GameState {
	out := s
	out.Snake = s.Snake.Clone()
	if s.Food != nil {
		food := *s.Food
		out.Food = &food
	}
	return out
}

func (s GameState) grid() types.Grid {
	return types.Grid{Size: s.GridSize}
}

func spawnFood(grid types.Grid, occupied entity.Snake, src rng.Source) *types.Cell {
	cell, ok := manager.NewFoodManager(grid).RandomFreeCell(occupied, src)
	if !ok {
		return nil
	}
	return &cell
}
