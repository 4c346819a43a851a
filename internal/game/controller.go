package game

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/bullseye/internal/physics"
	"github.com/tomz197/bullseye/internal/schedule"
)

// Scheduler creates cancellable periodic tasks.
// Implemented by *schedule.Scheduler.
type Scheduler interface {
	Every(period time.Duration, fn func()) schedule.Handle
}

// ClickKind classifies a click on the playing field.
type ClickKind int

const (
	ClickIgnored    ClickKind = iota // Session not running
	ClickTarget                      // Direct hit on the target
	ClickBackground                  // Fires a projectile
)

// Controller owns one session: its state, its tickers and its lifecycle.
// All methods must be called from the goroutine that advances the scheduler.
type Controller struct {
	cfg       Config
	arena     Arena
	sched     Scheduler
	presenter Presenter
	logger    *log.Logger
	rng       *rand.Rand

	state *State
	phase Phase

	targetTask       schedule.Handle
	timerTask        schedule.Handle
	flights          map[int]schedule.Handle // Keyed by projectile ID
	nextProjectileID int
}

// Option configures a Controller.
type Option func(*Controller)

// WithPresenter sets where visible changes are reported.
func WithPresenter(p Presenter) Option {
	return func(c *Controller) {
		c.presenter = p
	}
}

// WithLogger sets the lifecycle logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithRand sets the random source for target motion and colours.
func WithRand(r *rand.Rand) Option {
	return func(c *Controller) {
		c.rng = r
	}
}

// NewController creates an idle session. Call Start to begin play.
func NewController(cfg Config, sched Scheduler, opts ...Option) *Controller {
	c := &Controller{
		cfg:       cfg,
		arena:     Arena{Width: cfg.ArenaWidth, Height: cfg.ArenaHeight},
		sched:     sched,
		presenter: NopPresenter{},
		flights:   make(map[int]schedule.Handle),
		phase:     PhaseIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		c.rng = rand.New(rand.NewSource(seed))
	}
	c.state = newState(cfg)
	return c
}

// Start begins the first session. No-op unless the controller is idle.
func (c *Controller) Start() {
	if c.phase != PhaseIdle {
		return
	}
	c.begin()
	c.logger.Debug("session started", "seconds", c.state.TimeLeft)
}

// Restart stops everything, resets the state and starts a fresh session.
// Works from any phase.
func (c *Controller) Restart() {
	prevScore := c.state.Score
	c.stopTickers()
	c.landAll()
	c.begin()
	c.logger.Debug("session restarted", "previous_score", prevScore)
}

// Stop ends a running session immediately, as if the timer ran out.
func (c *Controller) Stop() {
	if c.phase != PhaseRunning {
		return
	}
	c.end()
}

// Fire launches a projectile. Returns false if the session is not running.
func (c *Controller) Fire() bool {
	if !c.Running() {
		return false
	}
	c.fire()
	return true
}

// HitTarget scores a direct hit without a projectile flight.
// Any projectiles in the air are removed. Returns false if not running.
func (c *Controller) HitTarget() bool {
	if !c.Running() {
		return false
	}
	c.registerHit()
	c.landAll()
	return true
}

// Click dispatches an already classified click.
func (c *Controller) Click(kind ClickKind) ClickKind {
	switch kind {
	case ClickTarget:
		if c.HitTarget() {
			return ClickTarget
		}
	case ClickBackground:
		if c.Fire() {
			return ClickBackground
		}
	}
	return ClickIgnored
}

// ClickAt classifies a click at arena coordinates and dispatches it.
func (c *Controller) ClickAt(x, y float64) ClickKind {
	if !c.Running() {
		return ClickIgnored
	}
	if physics.Overlaps(physics.PointBox(x, y), c.state.TargetBox()) {
		return c.Click(ClickTarget)
	}
	return c.Click(ClickBackground)
}

// Running reports whether a session is in progress.
func (c *Controller) Running() bool {
	return c.phase == PhaseRunning && !c.state.IsOver
}

// Phase returns the lifecycle phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Arena returns the playing field dimensions.
func (c *Controller) Arena() Arena {
	return c.arena
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	return c.state.clone()
}

// begin resets the state, reports it and starts target motion and timer.
func (c *Controller) begin() {
	c.state = newState(c.cfg)
	c.phase = PhaseRunning

	c.presenter.Target(c.targetView())
	c.presenter.Score(c.state.Score)
	c.presenter.TimeLeft(c.state.TimeLeft)

	c.startTargetMotion()
	c.startTimer()
}

// end is the game-over transition. Every ticker is stopped before the state
// is frozen, and the final score is reported exactly once.
func (c *Controller) end() {
	if c.state.IsOver {
		return
	}
	c.stopTickers()
	c.landAll()

	c.state.IsOver = true
	c.phase = PhaseEnded

	c.logger.Debug("game over", "score", c.state.Score, "time_left", c.state.TimeLeft)
	c.presenter.GameOver(c.state.Score)
}

// stopTickers cancels target motion, the timer and every flight ticker.
func (c *Controller) stopTickers() {
	if c.targetTask != nil {
		c.targetTask.Stop()
		c.targetTask = nil
	}
	if c.timerTask != nil {
		c.timerTask.Stop()
		c.timerTask = nil
	}
	for id, h := range c.flights {
		h.Stop()
		delete(c.flights, id)
	}
}
