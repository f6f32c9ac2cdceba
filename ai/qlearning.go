package ai

import (
	"math"

	"snake-core/game"
	"snake-core/game/types"

	"github.com/google/uuid"
	"github.com/kamstrup/intmap"
	"golang.org/x/exp/rand"
)

// QValues holds one value per entry of types.Directions.
type QValues [4]float64

// Rewards
const (
	RewardFood    = 1.0
	RewardDeath   = -1.0
	RewardCloser  = 0.5
	RewardFarther = -0.3
)

type QLearning struct {
	UUID         string
	LearningRate float64
	Discount     float64
	Epsilon      float64
	TotalReward  float64
	GamesPlayed  int

	table *intmap.Map[uint32, QValues]
	keys  []uint32
	rand  *rand.Rand
}

// NewQLearning creates an agent with an empty table. seed drives exploration
// only; the game keeps its own random source.
func NewQLearning(seed uint64) *QLearning {
	return &QLearning{
		UUID:         uuid.New().String(),
		LearningRate: 0.1,
		Discount:     0.9,
		Epsilon:      0.1,
		table:        intmap.New[uint32, QValues](64),
		rand:         rand.New(rand.NewSource(seed)),
	}
}

// Breed creates a child agent whose table is a copy of q's with every value
// nudged by up to mutationRate of its magnitude.
func (q *QLearning) Breed(seed uint64, mutationRate float64) *QLearning {
	child := NewQLearning(seed)
	child.LearningRate = q.LearningRate
	child.Discount = q.Discount
	child.Epsilon = q.Epsilon

	for _, key := range q.keys {
		values, _ := q.table.Get(key)
		for a, value := range values {
			mutation := (child.rand.Float64()*2 - 1) * mutationRate * math.Abs(value)
			values[a] = value + mutation
		}
		child.put(key, values)
	}
	return child
}

// States returns how many distinct states the agent has seen.
func (q *QLearning) States() int {
	return len(q.keys)
}

// Values returns the Q-values for state, zero if unseen.
func (q *QLearning) Values(state State) QValues {
	values, _ := q.table.Get(state.Key())
	return values
}

// GetAction picks a move with an epsilon-greedy policy. Reversals are never
// chosen since the game would ignore them.
func (q *QLearning) GetAction(state State) types.Direction {
	if q.rand.Float64() < q.Epsilon {
		legal := legalActions(state.Heading)
		return legal[q.rand.Intn(len(legal))]
	}
	return q.BestAction(state)
}

// BestAction returns the legal move with the highest value. Ties go to the
// first in types.Directions order.
func (q *QLearning) BestAction(state State) types.Direction {
	values := q.Values(state)
	best := types.None
	bestValue := math.Inf(-1)
	for _, dir := range legalActions(state.Heading) {
		if v := values[actionIndex(dir)]; v > bestValue {
			bestValue = v
			best = dir
		}
	}
	return best
}

// Update applies the Q-learning rule for one transition and returns reward.
func (q *QLearning) Update(state State, action types.Direction, reward float64, next State, done bool) float64 {
	q.TotalReward += reward
	if !action.Valid() {
		return reward
	}

	key := state.Key()
	values, _ := q.table.Get(key)

	target := reward
	if !done {
		nextValues := q.Values(next)
		maxNext := math.Inf(-1)
		for _, dir := range legalActions(next.Heading) {
			maxNext = math.Max(maxNext, nextValues[actionIndex(dir)])
		}
		target += q.Discount * maxNext
	}

	a := actionIndex(action)
	values[a] += q.LearningRate * (target - values[a])
	q.put(key, values)
	return reward
}

// Reward scores the transition from prev to next.
func Reward(prev, next game.GameState) float64 {
	if !next.Alive {
		return RewardDeath
	}
	if next.Score > prev.Score {
		return RewardFood
	}
	if prev.Food == nil || next.Food == nil {
		return 0
	}

	change := manhattanDistance(next.Head(), *next.Food) - manhattanDistance(prev.Head(), *prev.Food)
	switch {
	case change < 0:
		return RewardCloser
	case change > 0:
		return RewardFarther
	default:
		return 0
	}
}

func (q *QLearning) put(key uint32, values QValues) {
	if _, ok := q.table.Get(key); !ok {
		q.keys = append(q.keys, key)
	}
	q.table.Put(key, values)
}

func legalActions(heading types.Direction) []types.Direction {
	legal := make([]types.Direction, 0, len(types.Directions))
	for _, dir := range types.Directions {
		if dir != heading.Opposite() {
			legal = append(legal, dir)
		}
	}
	return legal
}

func actionIndex(dir types.Direction) int {
	return int(dir) - int(types.Up)
}
