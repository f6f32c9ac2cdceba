package manager_test

import (
	"testing"

	"snake-core/game/manager"
	"snake-core/game/rng"
	"snake-core/game/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreeCellsRowMajor(t *testing.T) {
	fm := manager.NewFoodManager(types.Grid{Size: 2})
	free := fm.FreeCells([]types.Cell{{X: 1, Y: 0}})
	assert.Equal(t, []types.Cell{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}, free)
}

func TestRandomFreeCellSkipsOccupied(t *testing.T) {
	occupied := []types.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 1}}
	fm := manager.NewFoodManager(types.Grid{Size: 3})

	cell, ok := fm.RandomFreeCell(occupied, rng.Fixed(0))
	require.True(t, ok)
	assert.Equal(t, types.Cell{X: 1, Y: 1}, cell)

	last, ok := fm.RandomFreeCell(occupied, rng.Fixed(0.999999))
	require.True(t, ok)
	assert.Equal(t, types.Cell{X: 2, Y: 2}, last)
}

func TestRandomFreeCellDrawsOnce(t *testing.T) {
	occupied := []types.Cell{{X: 1, Y: 1}}
	before := append([]types.Cell(nil), occupied...)
	counter := &rng.Counter{Source: rng.New(3)}

	_, ok := manager.NewFoodManager(types.Grid{Size: 4}).RandomFreeCell(occupied, counter)
	require.True(t, ok)
	assert.Equal(t, 1, counter.Draws)
	assert.Equal(t, before, occupied)
}

func TestRandomFreeCellFullBoard(t *testing.T) {
	grid := types.Grid{Size: 2}
	occupied := []types.Cell{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	counter := &rng.Counter{Source: rng.New(3)}

	_, ok := manager.NewFoodManager(grid).RandomFreeCell(occupied, counter)
	assert.False(t, ok)
	assert.Zero(t, counter.Draws)
}

func TestRandomFreeCellNeverOccupied(t *testing.T) {
	src := rng.New(2024)
	for size := 2; size <= 8; size++ {
		fm := manager.NewFoodManager(types.Grid{Size: size})
		for trial := 0; trial < 50; trial++ {
			// Fill a prefix of the board, leaving at least one free cell.
			n := int(src.Next() * float64(size*size-1))
			occupied := make([]types.Cell, 0, n)
			for i := 0; i < n; i++ {
				occupied = append(occupied, types.Cell{X: (i * 7) % size, Y: (i * 7 / size) % size})
			}

			cell, ok := fm.RandomFreeCell(occupied, src)
			require.True(t, ok)
			assert.NotContains(t, occupied, cell)
			assert.True(t, types.Grid{Size: size}.Contains(cell))
		}
	}
}

func TestRandomFreeCellIgnoresOutOfBounds(t *testing.T) {
	fm := manager.NewFoodManager(types.Grid{Size: 2})
	free := fm.FreeCells([]types.Cell{{X: -1, Y: 0}, {X: 2, Y: 2}})
	assert.Len(t, free, 4)
}
