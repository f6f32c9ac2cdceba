package types_test

import (
	"encoding/json"
	"testing"

	"snake-core/game/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectionDelta(t *testing.T) {
	tests := []struct {
		dir  types.Direction
		want types.Cell
	}{
		{types.Up, types.Cell{X: 0, Y: -1}},
		{types.Down, types.Cell{X: 0, Y: 1}},
		{types.Left, types.Cell{X: -1, Y: 0}},
		{types.Right, types.Cell{X: 1, Y: 0}},
		{types.None, types.Cell{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.dir.Delta(), tt.dir.String())
	}
}

func TestDirectionOpposite(t *testing.T) {
	for _, d := range types.Directions {
		opp := d.Opposite()
		assert.True(t, opp.Valid())
		assert.NotEqual(t, d, opp)
		assert.Equal(t, d, opp.Opposite())
		assert.Equal(t, types.Cell{}, d.Delta().Add(opp.Delta()))
	}
	assert.Equal(t, types.None, types.None.Opposite())
}

func TestDirectionTurns(t *testing.T) {
	for _, d := range types.Directions {
		assert.Equal(t, d, d.TurnLeft().TurnRight())
		assert.Equal(t, d.Opposite(), d.TurnLeft().TurnLeft())
		assert.NotEqual(t, d.Opposite(), d.TurnRight())
	}
	assert.Equal(t, types.Left, types.Up.TurnLeft())
	assert.Equal(t, types.Down, types.Right.TurnRight())
}

func TestParseDirection(t *testing.T) {
	for _, d := range types.Directions {
		parsed, ok := types.ParseDirection(d.String())
		assert.True(t, ok)
		assert.Equal(t, d, parsed)
	}

	for _, bad := range []string{"", "none", "UP", "north", "diagonal"} {
		parsed, ok := types.ParseDirection(bad)
		assert.False(t, ok, bad)
		assert.Equal(t, types.None, parsed)
	}
}

func TestDirectionJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		D types.Direction `json:"d"`
	}{types.Left})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"left"}`, string(data))

	var out struct {
		D types.Direction `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"d":"down"}`), &out))
	assert.Equal(t, types.Down, out.D)

	assert.Error(t, json.Unmarshal([]byte(`{"d":"sideways"}`), &out))

	_, err = json.Marshal(struct {
		D types.Direction `json:"d"`
	}{types.None})
	assert.Error(t, err)
}

func TestGrid(t *testing.T) {
	g := types.Grid{Size: 5}
	assert.True(t, g.Contains(types.Cell{X: 0, Y: 0}))
	assert.True(t, g.Contains(types.Cell{X: 4, Y: 4}))
	assert.False(t, g.Contains(types.Cell{X: 5, Y: 1}))
	assert.False(t, g.Contains(types.Cell{X: 1, Y: -1}))
	assert.Equal(t, 7, g.Index(types.Cell{X: 2, Y: 1}))
	assert.Equal(t, 25, g.Area())
}
