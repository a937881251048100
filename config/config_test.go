package config

import (
	"flag"
	"io"
	"testing"
	"time"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("snake", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newFlagSet(), nil, map[string]string{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Frontend != FrontendRaylib {
		t.Errorf("frontend = %q, want %q", cfg.Frontend, FrontendRaylib)
	}
	if cfg.GridWidth != 40 || cfg.GridHeight != 40 {
		t.Errorf("grid = %dx%d, want 40x40", cfg.GridWidth, cfg.GridHeight)
	}
	if cfg.TickInterval != 500*time.Millisecond {
		t.Errorf("interval = %v, want 500ms", cfg.TickInterval)
	}
	if cfg.SpeedUpRatio != 0.8 {
		t.Errorf("speed-up = %v, want 0.8", cfg.SpeedUpRatio)
	}
	if cfg.StatsFile != "" || cfg.Seed != 0 || !cfg.Audio {
		t.Errorf("unexpected defaults %+v", cfg)
	}

	s := cfg.Settings()
	if s.Grid.Width != 40 || s.Interval != 500*time.Millisecond || s.SpeedUpRatio != 0.8 {
		t.Errorf("settings = %+v", s)
	}
}

func TestLoadEnvironmentAndFlags(t *testing.T) {
	environ := map[string]string{
		"SNAKE_FRONTEND":      "tui",
		"SNAKE_GRID_WIDTH":    "60",
		"SNAKE_TICK_INTERVAL": "1s",
		"SNAKE_SEED":          "7",
		"SNAKE_AUDIO":         "false",
	}
	cfg, err := Load(newFlagSet(), []string{"-width", "50", "-speedup", "0.5"}, environ)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Frontend != FrontendTUI {
		t.Errorf("frontend = %q, want tui", cfg.Frontend)
	}
	if cfg.GridWidth != 50 {
		t.Errorf("flag should win over env: width = %d", cfg.GridWidth)
	}
	if cfg.TickInterval != time.Second {
		t.Errorf("interval = %v, want 1s", cfg.TickInterval)
	}
	if cfg.SpeedUpRatio != 0.5 || cfg.Seed != 7 || cfg.Audio {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		environ map[string]string
	}{
		{name: "frontend", args: []string{"-frontend", "web"}},
		{name: "ratio", args: []string{"-speedup", "1.2"}},
		{name: "interval", args: []string{"-interval", "0s"}},
		{name: "interval below floor", args: []string{"-interval", "1ns"}},
		{name: "env interval below floor", environ: map[string]string{"SNAKE_TICK_INTERVAL": "500us"}},
		{name: "grid", args: []string{"-height", "0"}},
		{name: "bad env value", environ: map[string]string{"SNAKE_GRID_WIDTH": "wide"}},
		{name: "unknown flag", args: []string{"-nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			environ := tt.environ
			if environ == nil {
				environ = map[string]string{}
			}
			if _, err := Load(newFlagSet(), tt.args, environ); err == nil {
				t.Fatal("Expected error")
			}
		})
	}
}
