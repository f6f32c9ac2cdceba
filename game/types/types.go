package types

import "fmt"

// Cell is a grid coordinate. Origin is top-left, +X right, +Y down.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns c translated by d.
func (c Cell) Add(d Cell) Cell {
	return Cell{X: c.X + d.X, Y: c.Y + d.Y}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Grid represents a square board of Size x Size cells
type Grid struct {
	Size int
}

// Contains reports whether c lies within [0, Size) on both axes.
func (g Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.Size && c.Y < g.Size
}

// Index maps an in-bounds cell to its row-major position.
func (g Grid) Index(c Cell) int {
	return c.Y*g.Size + c.X
}

// Area is the number of cells on the board.
func (g Grid) Area() int {
	return g.Size * g.Size
}

// Game constants
const (
	DefaultGridSize = 20 // Board size used by the session unless configured
	InitialLength   = 3  // Cells in a freshly placed snake
	MinGridSize     = 4  // Smallest board that fits the centred initial snake
)
