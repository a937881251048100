// Package audio plays short sound cues for game events.
package audio

import (
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"snake-core/game"
	"snake-core/game/types"
)

const (
	sampleRate = beep.SampleRate(44100)

	feedFreq    = 880
	feedLength  = 50 * time.Millisecond
	endFreqHigh = 330
	endFreqLow  = 165
	endLength   = 150 * time.Millisecond
)

// Player plays streamers. speaker.Play satisfies it through PlayerFunc.
type Player interface {
	Play(s ...beep.Streamer)
}

type PlayerFunc func(s ...beep.Streamer)

func (f PlayerFunc) Play(s ...beep.Streamer) { f(s...) }

// Cues observes a game: a high beep when the snake feeds and a falling
// pair of tones when a game ends.
type Cues struct {
	mu        sync.Mutex
	player    Player
	lastScore int
}

// New opens the default audio device. The caller may run without sound
// when it returns an error.
func New() (*Cues, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return NewWithPlayer(PlayerFunc(speaker.Play)), nil
}

func NewWithPlayer(p Player) *Cues {
	return &Cues{player: p}
}

func (c *Cues) Refresh(g *game.Game) {
	score := g.Score()

	c.mu.Lock()
	fed := score > c.lastScore
	c.lastScore = score
	c.mu.Unlock()

	if fed {
		c.play(tone(feedFreq, feedLength))
	}
}

func (c *Cues) PlayEnded(g *game.Game) {
	if g.State() != types.Ended {
		return
	}
	high, low := tone(endFreqHigh, endLength), tone(endFreqLow, endLength)
	if high == nil || low == nil {
		return
	}
	c.play(beep.Seq(high, low))
}

func (c *Cues) play(s beep.Streamer) {
	if s == nil {
		return
	}
	c.player.Play(s)
}

func tone(freq int, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, float64(freq))
	if err != nil {
		glog.Warningf("audio: tone %dHz: %v", freq, err)
		return nil
	}
	return beep.Take(sampleRate.N(d), sine)
}
