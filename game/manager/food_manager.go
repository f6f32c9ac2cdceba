package manager

import (
	"snake-core/game/rng"
	"snake-core/game/types"

	"github.com/kamstrup/intmap"
)

// FoodManager picks food positions on a single grid.
type FoodManager struct {
	grid types.Grid
}

func NewFoodManager(grid types.Grid) *FoodManager {
	return &FoodManager{grid: grid}
}

// FreeCells lists every in-bounds cell not in occupied, in row-major order
// (y ascending, then x ascending). occupied is not modified.
func (fm *FoodManager) FreeCells(occupied []types.Cell) []types.Cell {
	blocked := occupancy(fm.grid, occupied)
	free := make([]types.Cell, 0, fm.grid.Area()-blocked.Len())
	for y := 0; y < fm.grid.Size; y++ {
		for x := 0; x < fm.grid.Size; x++ {
			cell := types.Cell{X: x, Y: y}
			if _, taken := blocked.Get(fm.grid.Index(cell)); !taken {
				free = append(free, cell)
			}
		}
	}
	return free
}

// RandomFreeCell draws one value from src and uses it to pick a free cell.
// When the board is full it returns false without drawing.
func (fm *FoodManager) RandomFreeCell(occupied []types.Cell, src rng.Source) (types.Cell, bool) {
	free := fm.FreeCells(occupied)
	if len(free) == 0 {
		return types.Cell{}, false
	}

	index := int(src.Next() * float64(len(free)))
	if index >= len(free) {
		// Only reachable with a Source that breaks the [0, 1) contract.
		index = len(free) - 1
	}
	return free[index], true
}

// occupancy indexes the in-bounds cells of cells by their row-major position.
func occupancy(grid types.Grid, cells []types.Cell) *intmap.Map[int, struct{}] {
	set := intmap.New[int, struct{}](len(cells))
	for _, c := range cells {
		if grid.Contains(c) {
			set.Put(grid.Index(c), struct{}{})
		}
	}
	return set
}
