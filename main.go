package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"snake-core/stats"
	"snake-core/training"

	"github.com/caarlos0/env/v11"
)

// Config holds the snake-sim command settings.
type Config struct {
	Training training.Config
	// Trace replays the best agent greedily and prints every state as a JSON
	// line.
	Trace bool `env:"SNAKE_TRACE" envDefault:"false"`
}

// ParseConfig reads environment defaults and then command-line flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	seed := uint(cfg.Training.Seed)
	fs.UintVar(&seed, "seed", seed, "game seed")
	fs.IntVar(&cfg.Training.GridSize, "grid", cfg.Training.GridSize, "grid size")
	fs.IntVar(&cfg.Training.Agents, "agents", cfg.Training.Agents, "agents per generation")
	fs.IntVar(&cfg.Training.Generations, "generations", cfg.Training.Generations, "number of generations")
	fs.IntVar(&cfg.Training.Episodes, "episodes", cfg.Training.Episodes, "games per agent per generation")
	fs.IntVar(&cfg.Training.MaxTicks, "max-ticks", cfg.Training.MaxTicks, "tick limit per game")
	fs.Float64Var(&cfg.Training.MutationRate, "mutation", cfg.Training.MutationRate, "mutation rate when breeding")
	fs.BoolVar(&cfg.Trace, "trace", cfg.Trace, "print a JSON trace of a greedy replay")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if seed > uint(^uint32(0)) {
		return Config{}, fmt.Errorf("seed %d does not fit in 32 bits", seed)
	}
	cfg.Training.Seed = uint32(seed)

	if err := cfg.Training.Validate(); err != nil {
		return Config{}, err
	}
	if cfg.Trace && cfg.Training.MaxTicks <= 0 {
		return Config{}, fmt.Errorf("trace needs a positive tick limit")
	}
	return cfg, nil
}

type summary struct {
	Best        string          `json:"bestAgent"`
	BestReward  float64         `json:"bestReward"`
	States      int             `json:"states"`
	Games       int             `json:"games"`
	MaxScore    int             `json:"maxScore"`
	Generations []stats.Summary `json:"generations"`
}

// Run trains the agents, writes a JSON summary to out and, when asked, a
// replay trace after it.
func Run(ctx context.Context, cfg Config, out, errOut io.Writer) error {
	logger := log.New(errOut, "snake-sim: ", 0)

	report, err := training.Train(ctx, cfg.Training, logger)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	if err := enc.Encode(summary{
		Best:        report.Best.UUID,
		BestReward:  report.Best.TotalReward,
		States:      report.Best.States(),
		Games:       report.Stats.GamesPlayed(),
		MaxScore:    report.Stats.MaxScore(),
		Generations: report.Generations,
	}); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	if !cfg.Trace {
		return nil
	}
	states, err := training.Replay(ctx, report.Best, cfg.Training.Seed, cfg.Training.GridSize, cfg.Training.MaxTicks)
	if err != nil {
		return err
	}
	for _, state := range states {
		if err := enc.Encode(state); err != nil {
			return fmt.Errorf("write trace: %w", err)
		}
	}
	logger.Printf("replay: %d states, final score %d", len(states), states[len(states)-1].Score)
	return nil
}

func main() {
	cfg, err := ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
