package game

import (
	"sync"
	"time"

	"snake-core/game/types"
)

// fakeHandle is a tick source that only fires when the test says so.
type fakeHandle struct {
	interval  time.Duration
	fn        func()
	cancelled bool
}

func (h *fakeHandle) Cancel() {
	h.cancelled = true
}

// fakeScheduler records every armed handle.
type fakeScheduler struct {
	mu      sync.Mutex
	handles []*fakeHandle
}

func (s *fakeScheduler) Every(interval time.Duration, fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := &fakeHandle{interval: interval, fn: fn}
	s.handles = append(s.handles, h)
	return h
}

// armed returns the handles that have not been cancelled.
func (s *fakeScheduler) armed() []*fakeHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*fakeHandle
	for _, h := range s.handles {
		if !h.cancelled {
			out = append(out, h)
		}
	}
	return out
}

func (s *fakeScheduler) last() *fakeHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.handles) == 0 {
		return nil
	}
	return s.handles[len(s.handles)-1]
}

// fire runs one tick on the only armed handle.
func (s *fakeScheduler) fire() {
	armed := s.armed()
	if len(armed) != 1 {
		panic("fire with no single armed tick source")
	}
	armed[0].fn()
}

// recordingObserver counts notifications and the state seen at each.
type recordingObserver struct {
	mu          sync.Mutex
	refreshes   int
	playEnded   int
	endedStates []types.GameState
}

func (o *recordingObserver) Refresh(g *Game) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.refreshes++
}

func (o *recordingObserver) PlayEnded(g *Game) {
	state := g.State()
	o.mu.Lock()
	defer o.mu.Unlock()
	o.playEnded++
	o.endedStates = append(o.endedStates, state)
}

func (o *recordingObserver) counts() (int, int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.refreshes, o.playEnded
}

// scriptedRand hands out queued values, then the fallback cell.
// Values are consumed in X, Y pairs.
type scriptedRand struct {
	values   []int
	fallback types.Point
	calls    int
}

func (r *scriptedRand) Intn(n int) int {
	r.calls++
	if len(r.values) > 0 {
		v := r.values[0]
		r.values = r.values[1:]
		return v % n
	}
	if r.calls%2 == 1 {
		return r.fallback.X % n
	}
	return r.fallback.Y % n
}

// queue schedules p as the next target cell.
func (r *scriptedRand) queue(p types.Point) {
	r.values = append(r.values, p.X, p.Y)
}
