package rng

// Source is anything that yields floats in [0, 1). The game only ever draws
// through this interface so callers can replay or stub the sequence.
type Source interface {
	Next() float64
}

// Linear congruential generator constants (Numerical Recipes).
const (
	Multiplier  uint32 = 1664525
	Increment   uint32 = 1013904223
	DefaultSeed uint32 = 123456789
)

// 2^32 as a float, used to scale the state into [0, 1).
const modulus = 4294967296.0

// LCG is a 32-bit linear congruential generator. Its output sequence is
// fully determined by the seed and is stable across platforms.
type LCG struct {
	state uint32
}

// New creates a generator seeded with seed.
func New(seed uint32) *LCG {
	return &LCG{state: seed}
}

// NewDefault creates a generator seeded with DefaultSeed.
func NewDefault() *LCG {
	return New(DefaultSeed)
}

// Restore resumes a generator from a value previously returned by State.
func Restore(state uint32) *LCG {
	return &LCG{state: state}
}

// Next advances the generator and returns the new state scaled to [0, 1).
func (g *LCG) Next() float64 {
	g.state = Multiplier*g.state + Increment // uint32 arithmetic wraps mod 2^32
	return float64(g.state) / modulus
}

// State returns the current internal state.
func (g *LCG) State() uint32 {
	return g.state
}

// Counter wraps a Source and counts the draws taken from it.
type Counter struct {
	Source Source
	Draws  int
}

func (c *Counter) Next() float64 {
	c.Draws++
	return c.Source.Next()
}

// Fixed is a Source that always returns the same value. Useful in tests.
type Fixed float64

func (f Fixed) Next() float64 {
	return float64(f)
}
