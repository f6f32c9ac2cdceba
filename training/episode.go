package training

import (
	"context"

	"snake-core/ai"
	"snake-core/game"
	"snake-core/game/manager"
	"snake-core/game/types"
	"snake-core/session"
)

// Episode drives one session with an agent until the snake dies or MaxTicks
// ticks have run.
type Episode struct {
	Agent    *ai.QLearning
	Session  *session.Session
	MaxTicks int
	// Greedy plays the best known move and leaves the table untouched.
	Greedy bool
}

// Result summarizes a finished episode. Ticks includes the fatal one.
type Result struct {
	Score int
	Ticks int
	Cause manager.CollisionType
	Alive bool
}

// Run plays the episode. It checks ctx between ticks.
func (e Episode) Run(ctx context.Context) (Result, error) {
	state := e.Session.State()
	ticks := 0

	for state.Alive && (e.MaxTicks <= 0 || ticks < e.MaxTicks) {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		observed := ai.Observe(state)
		var action types.Direction
		if e.Greedy {
			action = e.Agent.BestAction(observed)
		} else {
			action = e.Agent.GetAction(observed)
		}

		e.Session.Queue(action)
		queued := e.Session.State()
		next := e.Session.Step()
		ticks++

		if !e.Greedy {
			reward := ai.Reward(state, next)
			e.Agent.Update(observed, action, reward, ai.Observe(next), !next.Alive)
		}

		if !next.Alive {
			return Result{
				Score: next.Score,
				Ticks: ticks,
				Cause: game.Outcome(queued, next),
			}, nil
		}
		state = next
	}

	return Result{Score: state.Score, Ticks: ticks, Alive: state.Alive}, nil
}
