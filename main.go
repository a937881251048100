package main

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/golang/glog"
	"golang.org/x/exp/rand"

	"snake-core/audio"
	"snake-core/config"
	"snake-core/game"
	"snake-core/game/manager"
	"snake-core/tui"
	"snake-core/ui"
)

func main() {
	log.SetPrefix("[SNAKE] ")
	cfg, err := config.Load(flag.CommandLine, os.Args[1:], nil)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg)
	stop()
	glog.Flush()
	if err != nil {
		log.Fatalf("snake: %v", err)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	stats := manager.NewStatsManager(cfg.StatsFile)
	if err := stats.Load(); err != nil {
		return fmt.Errorf("load stats: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		var err error
		if seed, err = newSeed(); err != nil {
			return err
		}
	}
	glog.V(1).Infof("Target placement seed %d", seed)

	var observers game.Observers
	if cfg.Audio {
		cues, err := audio.New()
		if err != nil {
			// Non-fatal, game can run without sound
			log.Printf("audio disabled: %v", err)
		} else {
			observers = append(observers, cues)
		}
	}

	newGame := func(frontend game.Observer) (*game.Game, error) {
		return game.NewGame(cfg.Settings(),
			game.WithRand(rand.New(rand.NewSource(seed))),
			game.WithStats(stats),
			game.WithObserver(append(observers, frontend)),
		)
	}

	var runErr error
	switch cfg.Frontend {
	case config.FrontendTUI:
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("init terminal: %w", err)
		}
		u := tui.New(screen)
		g, err := newGame(u)
		if err != nil {
			screen.Fini()
			return err
		}
		runErr = u.Run(ctx, g)
		g.Stop()
		screen.Fini()
	default:
		r := ui.NewRenderer(cfg.CellSize)
		g, err := newGame(r)
		if err != nil {
			return err
		}
		runErr = ui.Run(ctx, g, r)
		g.Stop()
		refreshes, gameOvers := r.FrameCounts()
		glog.V(1).Infof("Window closed after %d refreshes and %d game overs", refreshes, gameOvers)
	}

	if err := stats.Save(); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	log.Printf("games played: %d, best score: %d", stats.GamesPlayed(), stats.HighScore())
	return runErr
}

// newSeed reads a seed from crypto/rand.
func newSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}
