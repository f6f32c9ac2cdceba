package training

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"snake-core/ai"
	"snake-core/game"
	"snake-core/game/types"
	"snake-core/session"
	"snake-core/stats"

	"golang.org/x/sync/errgroup"
)

// ErrNoAgents is returned when the configuration asks for an empty pool.
var ErrNoAgents = errors.New("training needs at least one agent")

// Config controls a training run.
type Config struct {
	Seed         uint32  `env:"SNAKE_SEED"          envDefault:"42"`
	GridSize     int     `env:"SNAKE_GRID_SIZE"     envDefault:"20"`
	Agents       int     `env:"SNAKE_AGENTS"        envDefault:"4"`
	Generations  int     `env:"SNAKE_GENERATIONS"   envDefault:"5"`
	Episodes     int     `env:"SNAKE_EPISODES"      envDefault:"50"`
	MaxTicks     int     `env:"SNAKE_MAX_TICKS"     envDefault:"2000"`
	MutationRate float64 `env:"SNAKE_MUTATION_RATE" envDefault:"0.1"`
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	if c.Agents < 1 {
		return ErrNoAgents
	}
	if c.Generations < 1 || c.Episodes < 1 {
		return errors.New("generations and episodes must be at least 1")
	}
	if c.GridSize < types.MinGridSize {
		return fmt.Errorf("grid size %d: %w", c.GridSize, game.ErrGridTooSmall)
	}
	if c.MutationRate < 0 {
		return errors.New("mutation rate must not be negative")
	}
	return nil
}

// Report is the outcome of Train.
type Report struct {
	Best        *ai.QLearning
	Stats       *stats.GameStats
	Generations []stats.Summary
}

// Train runs cfg.Generations rounds. In each round every agent plays
// cfg.Episodes games in parallel, then the agent with the highest reward
// seeds the next generation.
func Train(ctx context.Context, cfg Config, logger *log.Logger) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, fmt.Errorf("train: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	pool := NewAgentPool(cfg.Agents, uint64(cfg.Seed))
	report := Report{Stats: stats.NewGameStats()}

	for gen := range cfg.Generations {
		agents := pool.GetAllAgents()
		perAgent := make([]*stats.GameStats, len(agents))

		g, gctx := errgroup.WithContext(ctx)
		for i, agent := range agents {
			perAgent[i] = stats.NewGameStats()
			g.Go(func() error {
				return playEpisodes(gctx, cfg, agent, gameSeed(cfg, gen, i), perAgent[i])
			})
		}
		if err := g.Wait(); err != nil {
			return Report{}, fmt.Errorf("train generation %d: %w", gen, err)
		}

		genStats := stats.NewGameStats()
		for _, s := range perAgent {
			genStats.Merge(s)
		}
		report.Stats.Merge(genStats)
		summary := genStats.Summary()
		report.Generations = append(report.Generations, summary)

		best := pool.Best()
		report.Best = best
		logger.Printf("generation %d: %d games, avg score %.2f, max %d, best agent %s (reward %.1f)",
			gen, summary.GamesPlayed, summary.AverageScore, summary.MaxScore, best.UUID, best.TotalReward)

		if gen < cfg.Generations-1 {
			pool.NextGeneration(best, uint64(cfg.Seed)+uint64(gen+1)*uint64(cfg.Agents), cfg.MutationRate)
		}
	}

	return report, nil
}

// Replay plays one greedy game with agent and returns every state from the
// initial one to the last.
func Replay(ctx context.Context, agent *ai.QLearning, seed uint32, gridSize, maxTicks int) ([]game.GameState, error) {
	sess, err := session.New(session.Config{
		Seed:         seed,
		GridSize:     gridSize,
		TickInterval: time.Millisecond,
		HistoryLimit: maxTicks + 1,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	episode := Episode{Agent: agent, Session: sess, MaxTicks: maxTicks, Greedy: true}
	if _, err := episode.Run(ctx); err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	return sess.History(), nil
}

func playEpisodes(ctx context.Context, cfg Config, agent *ai.QLearning, firstSeed uint32, out *stats.GameStats) error {
	for ep := range cfg.Episodes {
		sess, err := session.New(session.Config{
			Seed:         firstSeed + uint32(ep),
			GridSize:     cfg.GridSize,
			TickInterval: time.Millisecond,
		}, nil)
		if err != nil {
			return err
		}

		res, err := Episode{Agent: agent, Session: sess, MaxTicks: cfg.MaxTicks}.Run(ctx)
		if err != nil {
			return err
		}
		agent.GamesPlayed++

		cause := res.Cause.String()
		if res.Alive {
			cause = "timeout"
		}
		out.AddGame(stats.NewRecord(res.Score, res.Ticks, cause))
	}
	return nil
}

// gameSeed gives every (generation, agent) pair its own run of game seeds.
func gameSeed(cfg Config, gen, agent int) uint32 {
	return cfg.Seed + uint32((gen*cfg.Agents+agent)*cfg.Episodes)
}
