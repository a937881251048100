// Package config loads runtime settings from SNAKE_* environment variables
// and command line flags. Flags win over the environment.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"snake-core/game"
	"snake-core/game/types"
)

const (
	FrontendRaylib = "raylib"
	FrontendTUI    = "tui"
)

// Config holds the game command configuration.
type Config struct {
	Frontend     string        `env:"SNAKE_FRONTEND" envDefault:"raylib"`
	GridWidth    int           `env:"SNAKE_GRID_WIDTH" envDefault:"40"`
	GridHeight   int           `env:"SNAKE_GRID_HEIGHT" envDefault:"40"`
	CellSize     int           `env:"SNAKE_CELL_SIZE" envDefault:"15"`
	TickInterval time.Duration `env:"SNAKE_TICK_INTERVAL" envDefault:"500ms"`
	SpeedUpRatio float64       `env:"SNAKE_SPEED_UP_RATIO" envDefault:"0.8"`
	Seed         uint64        `env:"SNAKE_SEED"`
	StatsFile    string        `env:"SNAKE_STATS_FILE"`
	Audio        bool          `env:"SNAKE_AUDIO" envDefault:"true"`
}

// Load parses the environment, then args through fs. A nil environ map
// reads the process environment.
func Load(fs *flag.FlagSet, args []string, environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.Frontend, "frontend", cfg.Frontend, "front end: raylib or tui")
	fs.IntVar(&cfg.GridWidth, "width", cfg.GridWidth, "board width in cells")
	fs.IntVar(&cfg.GridHeight, "height", cfg.GridHeight, "board height in cells")
	fs.IntVar(&cfg.CellSize, "cell", cfg.CellSize, "cell size in pixels (raylib)")
	fs.DurationVar(&cfg.TickInterval, "interval", cfg.TickInterval, "initial tick interval")
	fs.Float64Var(&cfg.SpeedUpRatio, "speedup", cfg.SpeedUpRatio, "interval multiplier applied on each feed")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for target placement (0 = random)")
	fs.StringVar(&cfg.StatsFile, "stats", cfg.StatsFile, "score history file (empty = keep in memory)")
	fs.BoolVar(&cfg.Audio, "audio", cfg.Audio, "play sound cues")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values the engine cannot run with.
func (c Config) Validate() error {
	switch c.Frontend {
	case FrontendRaylib, FrontendTUI:
	default:
		return fmt.Errorf("unknown frontend %q", c.Frontend)
	}
	if c.GridWidth < 1 || c.GridHeight < 1 {
		return fmt.Errorf("grid must be at least 1x1, got %dx%d", c.GridWidth, c.GridHeight)
	}
	if c.CellSize < 1 {
		return fmt.Errorf("cell size must be positive, got %d", c.CellSize)
	}
	if c.TickInterval < game.MinInterval {
		return fmt.Errorf("interval must be at least %v, got %v", game.MinInterval, c.TickInterval)
	}
	if c.SpeedUpRatio <= 0 || c.SpeedUpRatio >= 1 {
		return fmt.Errorf("speed-up ratio must be in (0,1), got %v", c.SpeedUpRatio)
	}
	return nil
}

// Settings converts the config into engine settings.
func (c Config) Settings() game.Settings {
	return game.Settings{
		Grid:         types.Grid{Width: c.GridWidth, Height: c.GridHeight},
		Interval:     c.TickInterval,
		SpeedUpRatio: c.SpeedUpRatio,
	}
}
