package session

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"snake-core/game"
	"snake-core/game/rng"
	"snake-core/game/types"
	"snake-core/stats"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
)

// Config describes one session.
type Config struct {
	Seed         uint32        `env:"SNAKE_SEED"          envDefault:"42"`
	GridSize     int           `env:"SNAKE_GRID_SIZE"     envDefault:"20"`
	TickInterval time.Duration `env:"SNAKE_TICK_INTERVAL" envDefault:"120ms"`
	HistoryLimit int           `env:"SNAKE_HISTORY_LIMIT" envDefault:"0"`
}

// DefaultConfig mirrors the envDefault tags.
func DefaultConfig() Config {
	return Config{
		Seed:         42,
		GridSize:     types.DefaultGridSize,
		TickInterval: 120 * time.Millisecond,
	}
}

// ConfigFromEnv reads a Config from SNAKE_* variables, using the defaults for
// unset ones.
func ConfigFromEnv() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse session config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	if c.GridSize < types.MinGridSize {
		return fmt.Errorf("grid size %d: %w", c.GridSize, game.ErrGridTooSmall)
	}
	if c.TickInterval <= 0 {
		return errors.New("tick interval must be positive")
	}
	if c.HistoryLimit < 0 {
		return errors.New("history limit must not be negative")
	}
	return nil
}

// Session owns everything a front end needs to drive one game: the random
// source, the current state, the pause flag and the fixed-step accumulator.
// All methods are safe to call from several goroutines.
type Session struct {
	id     string
	cfg    Config
	logger *log.Logger

	mutex       sync.Mutex
	rng         *rng.LCG
	state       game.GameState
	paused      bool
	accumulator time.Duration
	ticks       int
	history     []game.GameState
	stats       *stats.GameStats
}

// New validates cfg and starts a session on a fresh game.
func New(cfg Config, logger *log.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	s := &Session{
		id:     uuid.New().String(),
		cfg:    cfg,
		logger: logger,
		stats:  stats.NewGameStats(),
	}
	if err := s.reset(); err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	return s, nil
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Seed() uint32 {
	return s.cfg.Seed
}

// State returns the current snapshot.
func (s *Session) State() game.GameState {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.state.Clone()
}

// Ticks returns how many live ticks were committed since the last reset.
func (s *Session) Ticks() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.ticks
}

// Queue requests a turn for the next tick. It returns the direction that
// will be applied.
func (s *Session) Queue(dir types.Direction) types.Direction {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.state = game.QueueDirection(s.state, dir)
	return s.state.NextDirection
}

// Step runs exactly one tick regardless of pause and timing.
func (s *Session) Step() game.GameState {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.step()
	return s.state.Clone()
}

// Advance feeds elapsed wall time into the accumulator and runs as many
// fixed-size ticks as fit. Nothing happens while paused or after death.
func (s *Session) Advance(elapsed time.Duration) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.paused || !s.state.Alive {
		return 0
	}

	s.accumulator += elapsed
	n := 0
	for s.accumulator >= s.cfg.TickInterval && s.state.Alive {
		s.step()
		s.accumulator -= s.cfg.TickInterval
		n++
	}
	if !s.state.Alive {
		s.accumulator = 0
	}
	return n
}

// SetPaused sets the pause flag.
func (s *Session) SetPaused(paused bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.paused = paused
}

// TogglePause flips the pause flag and returns the new value.
func (s *Session) TogglePause() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.paused = !s.paused
	return s.paused
}

func (s *Session) Paused() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.paused
}

// Reset restarts from the configured seed. Stats survive a reset.
func (s *Session) Reset() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.reset()
}

// History returns copies of the retained snapshots, oldest first.
func (s *Session) History() []game.GameState {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	out := make([]game.GameState, len(s.history))
	for i, st := range s.history {
		out[i] = st.Clone()
	}
	return out
}

// Stats returns the record of every game finished in this session.
func (s *Session) Stats() *stats.GameStats {
	return s.stats
}

func (s *Session) reset() error {
	src := rng.New(s.cfg.Seed)
	state, err := game.NewInitialState(src, s.cfg.GridSize)
	if err != nil {
		return err
	}

	s.rng = src
	s.state = state
	s.paused = false
	s.accumulator = 0
	s.ticks = 0
	s.history = nil
	s.remember(state)
	return nil
}

func (s *Session) step() {
	prev := s.state
	s.state = game.Tick(prev, s.rng)
	if !prev.Alive {
		return
	}

	s.remember(s.state)
	if s.state.Alive {
		s.ticks++
		return
	}

	cause := game.Outcome(prev, s.state)
	s.stats.AddGame(stats.NewRecord(s.state.Score, s.ticks, cause.String()))
	s.logger.Printf("session %s: game over after %d ticks, score %d (%s collision)", s.id, s.ticks, s.state.Score, cause)
}

func (s *Session) remember(state game.GameState) {
	if s.cfg.HistoryLimit == 0 {
		return
	}
	s.history = append(s.history, state)
	if over := len(s.history) - s.cfg.HistoryLimit; over > 0 {
		s.history = append(s.history[:0:0], s.history[over:]...)
	}
}
