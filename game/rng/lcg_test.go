package rng_test

import (
	"testing"

	"snake-core/game/rng"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLCGKnownSequence(t *testing.T) {
	tests := []struct {
		seed   uint32
		states []uint32
		values []float64
	}{
		{
			seed:   1,
			states: []uint32{1015568748, 1586005467, 2165703038},
			values: []float64{0.23645552527159452, 0.3692706737201661, 0.5042420323006809},
		},
		{
			seed:   42,
			states: []uint32{1083814273, 378494188, 2479403867},
			values: []float64{0.2523451747838408, 0.08812504541128874, 0.5772811982315034},
		},
		{
			seed:   0xFFFFFFFF,
			states: []uint32{1012239698, 806866057, 579071060},
			values: []float64{0.2356804204173386, 0.18786314339376986, 0.13482548762112856},
		},
	}

	for _, tt := range tests {
		g := rng.New(tt.seed)
		for i := range tt.states {
			v := g.Next()
			assert.Equal(t, tt.values[i], v, "seed %d draw %d", tt.seed, i)
			assert.Equal(t, tt.states[i], g.State(), "seed %d draw %d", tt.seed, i)
		}
	}
}

func TestLCGDefaultSeed(t *testing.T) {
	g := rng.NewDefault()
	assert.Equal(t, rng.DefaultSeed, g.State())
	assert.Equal(t, 0.2142903469502926, g.Next())
	assert.Equal(t, uint32(920370032), g.State())
}

func TestLCGRange(t *testing.T) {
	g := rng.New(7)
	for range 10000 {
		v := g.Next()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestLCGRestore(t *testing.T) {
	a := rng.New(99)
	a.Next()
	a.Next()

	b := rng.Restore(a.State())
	for range 5 {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestCounter(t *testing.T) {
	c := &rng.Counter{Source: rng.Fixed(0.5)}
	assert.Equal(t, 0.5, c.Next())
	assert.Equal(t, 0.5, c.Next())
	assert.Equal(t, 2, c.Draws)
}
