package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang/glog"
	"golang.org/x/exp/rand"

	"snake-core/game/entity"
	"snake-core/game/manager"
	"snake-core/game/types"
)

const (
	DefaultInterval = 500 * time.Millisecond
	// MinInterval is the fastest the game ticks. Feeding stops shrinking the
	// interval once the next step would go below it.
	MinInterval = time.Millisecond
)

// Settings are the construction-time constants of a game.
type Settings struct {
	Grid         types.Grid
	Interval     time.Duration
	SpeedUpRatio float64
}

// DefaultSettings returns a 40x40 board ticking every 500ms.
func DefaultSettings() Settings {
	return Settings{
		Grid:         types.Grid{Width: types.DefaultGridWidth, Height: types.DefaultGridHeight},
		Interval:     DefaultInterval,
		SpeedUpRatio: types.SpeedUpRatio,
	}
}

func (s Settings) validate() error {
	if s.Grid.Width < 0 || s.Grid.Height < 0 {
		return fmt.Errorf("invalid grid %dx%d", s.Grid.Width, s.Grid.Height)
	}
	for _, p := range entity.NewSnake().Body {
		if !s.Grid.Contains(p) {
			return fmt.Errorf("grid %dx%d too small for the starting snake", s.Grid.Width, s.Grid.Height)
		}
	}
	if s.Interval < MinInterval {
		return fmt.Errorf("interval must be at least %v, got %v", MinInterval, s.Interval)
	}
	if s.SpeedUpRatio <= 0 || s.SpeedUpRatio >= 1 {
		return fmt.Errorf("speed-up ratio must be in (0,1), got %v", s.SpeedUpRatio)
	}
	return nil
}

// Option customizes a Game at construction.
type Option func(*Game)

func WithRand(rng manager.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

func WithScheduler(s Scheduler) Option {
	return func(g *Game) { g.scheduler = s }
}

func WithObserver(o Observer) Option {
	return func(g *Game) { g.observer = o }
}

func WithStats(sm *manager.StatsManager) Option {
	return func(g *Game) { g.stats = sm }
}

func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// Snapshot is a consistent copy of the game for rendering.
type Snapshot struct {
	SessionID string
	Grid      types.Grid
	Body      []types.Point
	Target    types.Point
	Direction types.Direction
	State     types.GameState
	Action    string
	Interval  time.Duration
	Score     int
}

// Game owns the snake, the target cell and the tick source.
type Game struct {
	settings Settings

	// mu guards everything below; tickMu serializes whole ticks including
	// observer notification. Observers run without mu held.
	mu     sync.Mutex
	tickMu sync.Mutex

	snake    *entity.Snake
	food     types.Point
	state    types.GameState
	interval time.Duration
	score    int

	sessionID string
	startTime time.Time

	collisionMgr *manager.CollisionManager
	foodManager  *manager.FoodManager
	stats        *manager.StatsManager
	rng          manager.Rand
	now          func() time.Time

	scheduler  Scheduler
	handle     Handle
	generation uint64

	observer Observer
}

// NewGame creates a paused game with the default snake and a fresh target.
func NewGame(settings Settings, opts ...Option) (*Game, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}

	g := &Game{
		settings: settings,
		state:    types.Paused,
		interval: settings.Interval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if g.scheduler == nil {
		g.scheduler = NewTickerScheduler()
	}

	g.collisionMgr = manager.NewCollisionManager(settings.Grid)
	g.foodManager = manager.NewFoodManager(settings.Grid, g.rng, g.collisionMgr)

	g.snake = entity.NewSnake()
	food, err := g.foodManager.GenerateFood(g.snake.Body)
	if err != nil {
		return nil, fmt.Errorf("place initial target: %w", err)
	}
	g.food = food
	g.sessionID = manager.NewSessionID()

	return g, nil
}

// SetDirection steers the snake. Reversals are ignored silently; accepted
// turns notify Refresh right away and move the snake on the next tick.
func (g *Game) SetDirection(dir types.Direction) {
	g.mu.Lock()
	accepted := g.snake.SetDirection(dir)
	g.mu.Unlock()

	if !accepted {
		return
	}
	glog.V(2).Infof("Direction changed to %v", dir)
	g.notifyRefresh()
}

// Start begins ticking from paused. It is a no-op when already started or
// ended.
func (g *Game) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != types.Paused {
		return
	}
	g.startLocked()
}

func (g *Game) startLocked() {
	if g.startTime.IsZero() {
		g.startTime = g.now()
	}
	g.state = types.Started
	g.armLocked()
	glog.V(1).Infof("Game %s started, interval %v", g.sessionID, g.interval)
}

// Pause stops ticking and notifies PlayEnded. It only acts on a started game.
func (g *Game) Pause() {
	g.mu.Lock()
	if g.state != types.Started {
		g.mu.Unlock()
		return
	}
	g.state = types.Paused
	g.disarmLocked()
	g.mu.Unlock()

	glog.V(1).Infof("Game %s paused", g.sessionID)
	g.notifyPlayEnded()
}

// Reset restores the default snake and interval, places a new target and
// starts a new session. A session abandoned before its game ended is
// recorded first.
func (g *Game) Reset() {
	g.mu.Lock()
	g.disarmLocked()
	abandoned := g.state != types.Ended && !g.startTime.IsZero()
	if abandoned {
		g.recordSessionLocked()
	}
	g.snake = entity.NewSnake()
	g.interval = g.settings.Interval
	g.score = 0
	g.sessionID = manager.NewSessionID()
	g.startTime = time.Time{}

	food, err := g.foodManager.GenerateFood(g.snake.Body)
	if err != nil {
		// Board too small for the default snake plus a target.
		glog.Warningf("Reset: %v", err)
		g.state = types.Ended
		g.mu.Unlock()
		if abandoned {
			g.saveStats()
		}
		g.notifyPlayEnded()
		return
	}
	g.food = food
	g.startLocked()
	g.mu.Unlock()

	if abandoned {
		g.saveStats()
	}
	g.notifyRefresh()
}

// Toggle is the single action button: start when paused, pause when
// started, reset when ended.
func (g *Game) Toggle() {
	switch g.State() {
	case types.Paused:
		g.Start()
	case types.Started:
		g.Pause()
	case types.Ended:
		g.Reset()
	}
}

// Stop disarms the tick source without changing state. When it returns no
// tick is running and none will start. It must not be called from an
// observer callback.
func (g *Game) Stop() {
	g.tickMu.Lock()
	g.mu.Lock()
	h := g.handle
	g.disarmLocked()
	g.mu.Unlock()
	g.tickMu.Unlock()

	// A fire blocked on tickMu sees a stale generation and returns.
	if w, ok := h.(waiter); ok {
		w.Wait()
	}
}

func (g *Game) armLocked() {
	g.disarmLocked()
	g.generation++
	gen := g.generation
	g.handle = g.scheduler.Every(g.interval, func() { g.tick(gen) })
}

func (g *Game) disarmLocked() {
	if g.handle != nil {
		g.handle.Cancel()
		g.handle = nil
	}
	// Any fire still in flight from the old handle sees a stale generation.
	g.generation++
}

// tick advances the game one step. gen identifies the tick source that fired;
// fires from a cancelled source are dropped.
func (g *Game) tick(gen uint64) {
	g.tickMu.Lock()
	defer g.tickMu.Unlock()

	g.mu.Lock()
	if gen != g.generation || g.state != types.Started {
		g.mu.Unlock()
		return
	}

	candidate := g.snake.NextHead()
	fed := g.collisionMgr.IsFoodCollision(candidate, g.food)

	if collision := g.collisionMgr.CheckCollision(candidate, g.snake); collision != manager.NoCollision {
		glog.V(1).Infof("Game %s ended: %v collision at %v", g.sessionID, collision, candidate)
		g.endLocked()
		g.mu.Unlock()
		g.saveStats()
		g.notifyPlayEnded()
		return
	}

	if !fed {
		g.snake.Move(candidate)
		glog.V(2).Infof("Tick: head %v", candidate)
		g.mu.Unlock()
		g.notifyRefresh()
		return
	}

	g.snake.Grow(candidate)
	g.score++
	food, err := g.foodManager.GenerateFood(g.snake.Body)
	if err != nil {
		glog.Warningf("Game %s: board full at length %d", g.sessionID, g.snake.Len())
		g.endLocked()
		g.mu.Unlock()
		g.saveStats()
		g.notifyRefresh()
		g.notifyPlayEnded()
		return
	}
	g.food = food
	g.interval = nextInterval(g.interval, g.settings.SpeedUpRatio)
	g.armLocked()
	glog.V(2).Infof("Tick: fed at %v, new target %v, interval %v", candidate, food, g.interval)
	g.mu.Unlock()

	g.notifyRefresh()
}

func nextInterval(current time.Duration, ratio float64) time.Duration {
	next := time.Duration(float64(current) * ratio)
	if next < MinInterval {
		return current
	}
	return next
}

func (g *Game) endLocked() {
	g.state = types.Ended
	g.disarmLocked()
	g.recordSessionLocked()
}

func (g *Game) recordSessionLocked() {
	if g.stats != nil {
		start := g.startTime
		if start.IsZero() {
			start = g.now()
		}
		g.stats.AddSession(g.sessionID, g.score, start, g.now())
	}
}

func (g *Game) saveStats() {
	if g.stats == nil {
		return
	}
	if err := g.stats.Save(); err != nil {
		glog.Warningf("Saving stats: %v", err)
	}
}

func (g *Game) notifyRefresh() {
	if g.observer != nil {
		g.observer.Refresh(g)
	}
}

func (g *Game) notifyPlayEnded() {
	if g.observer != nil {
		g.observer.PlayEnded(g)
	}
}

// Body returns the snake cells, head first.
func (g *Game) Body() []types.Point {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snake.Positions()
}

// Target returns the cell the snake is after.
func (g *Game) Target() types.Point {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.food
}

func (g *Game) State() types.GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *Game) Direction() types.Direction {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snake.Direction
}

// Interval is the current tick interval.
func (g *Game) Interval() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.interval
}

// Score is the number of targets eaten this session.
func (g *Game) Score() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.score
}

func (g *Game) Grid() types.Grid {
	return g.settings.Grid
}

func (g *Game) Stats() *manager.StatsManager {
	return g.stats
}

func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Snapshot{
		SessionID: g.sessionID,
		Grid:      g.settings.Grid,
		Body:      g.snake.Positions(),
		Target:    g.food,
		Direction: g.snake.Direction,
		State:     g.state,
		Action:    g.state.ActionLabel(!g.startTime.IsZero()),
		Interval:  g.interval,
		Score:     g.score,
	}
}
