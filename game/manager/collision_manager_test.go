package manager_test

import (
	"testing"

	"snake-core/game/entity"
	"snake-core/game/manager"
	"snake-core/game/types"

	"github.com/stretchr/testify/assert"
)

func TestCheckCollisionWalls(t *testing.T) {
	cm := manager.NewCollisionManager(types.Grid{Size: 5})
	body := entity.Snake{{X: 4, Y: 1}, {X: 3, Y: 1}, {X: 2, Y: 1}}

	for _, pos := range []types.Cell{{X: 5, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: 5}, {X: 2, Y: -1}} {
		assert.Equal(t, manager.WallCollision, cm.CheckCollision(pos, body), pos.String())
	}
	assert.Equal(t, manager.NoCollision, cm.CheckCollision(types.Cell{X: 4, Y: 2}, body))
}

func TestCheckCollisionSelf(t *testing.T) {
	cm := manager.NewCollisionManager(types.Grid{Size: 8})
	body := entity.Snake{
		{X: 4, Y: 4},
		{X: 4, Y: 5},
		{X: 3, Y: 5},
		{X: 3, Y: 4},
		{X: 3, Y: 3},
		{X: 4, Y: 3},
	}

	assert.Equal(t, manager.SelfCollision, cm.CheckCollision(types.Cell{X: 3, Y: 4}, body))
	// The tail vacates on the same tick.
	assert.Equal(t, manager.NoCollision, cm.CheckCollision(types.Cell{X: 4, Y: 3}, body))
}

func TestIsFoodCollision(t *testing.T) {
	cm := manager.NewCollisionManager(types.Grid{Size: 5})
	food := types.Cell{X: 2, Y: 2}
	assert.True(t, cm.IsFoodCollision(types.Cell{X: 2, Y: 2}, &food))
	assert.False(t, cm.IsFoodCollision(types.Cell{X: 2, Y: 3}, &food))
	assert.False(t, cm.IsFoodCollision(types.Cell{X: 2, Y: 2}, nil))
}

func TestCollisionTypeString(t *testing.T) {
	assert.Equal(t, "wall", manager.WallCollision.String())
	assert.Equal(t, "self", manager.SelfCollision.String())
	assert.Equal(t, "none", manager.NoCollision.String())
}
