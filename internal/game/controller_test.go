package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/tomz197/bullseye/internal/schedule"
)

// recorder is a Presenter that remembers everything it was told.
type recorder struct {
	View
	gameOvers   []int
	scores      []int
	targetCalls int
}

func newRecorder(arena Arena) *recorder {
	return &recorder{View: *NewView(arena)}
}

func (r *recorder) Target(v EntityView) {
	r.targetCalls++
	r.View.Target(v)
}

func (r *recorder) Score(score int) {
	r.scores = append(r.scores, score)
	r.View.Score(score)
}

func (r *recorder) GameOver(finalScore int) {
	r.gameOvers = append(r.gameOvers, finalScore)
	r.View.GameOver(finalScore)
}

func newTestController(t *testing.T, cfg Config) (*Controller, *schedule.Scheduler, *recorder) {
	t.Helper()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}
	sched := schedule.New()
	rec := newRecorder(Arena{Width: cfg.ArenaWidth, Height: cfg.ArenaHeight})
	c := NewController(cfg, sched,
		WithPresenter(rec),
		WithRand(rand.New(rand.NewSource(42))),
	)
	return c, sched, rec
}

// moveTargetOffLine parks the target where projectiles cannot reach it.
func moveTargetOffLine(c *Controller) {
	c.state.TargetPos = Vec{X: 0, Y: 0}
	c.state.TargetSpeed = 0
}

func TestStartRunsTickers(t *testing.T) {
	c, sched, rec := newTestController(t, DefaultConfig())

	if c.Phase() != PhaseIdle {
		t.Fatalf("new controller phase = %v, want idle", c.Phase())
	}
	c.Start()
	if c.Phase() != PhaseRunning {
		t.Fatalf("phase after Start = %v, want running", c.Phase())
	}
	if sched.Pending() != 2 {
		t.Fatalf("expected target and timer tasks, got %d pending", sched.Pending())
	}
	if rec.Seconds != DefaultRoundSeconds || !rec.TargetView.Visible {
		t.Fatalf("initial presentation not pushed: %+v", rec.View)
	}

	sched.Advance(time.Second)
	if got := c.Snapshot().TimeLeft; got != DefaultRoundSeconds-1 {
		t.Fatalf("TimeLeft after 1s = %d, want %d", got, DefaultRoundSeconds-1)
	}
	if rec.targetCalls < 20 {
		t.Fatalf("expected ~20 target updates in 1s, got %d", rec.targetCalls)
	}
}

func TestStartIsIdempotent(t *testing.T) {
	c, sched, _ := newTestController(t, DefaultConfig())
	c.Start()
	c.Start()
	if sched.Pending() != 2 {
		t.Fatalf("second Start must not add tasks, pending=%d", sched.Pending())
	}
}

func TestTargetStepsOnEachAxis(t *testing.T) {
	c, sched, _ := newTestController(t, DefaultConfig())
	c.Start()

	before := c.Snapshot().TargetPos
	sched.Advance(DefaultTargetTick)
	after := c.Snapshot().TargetPos

	dx := after.X - before.X
	dy := after.Y - before.Y
	if (dx != DefaultTargetSpeed && dx != -DefaultTargetSpeed) ||
		(dy != DefaultTargetSpeed && dy != -DefaultTargetSpeed) {
		t.Fatalf("unexpected step (%v, %v), want ±%v on both axes", dx, dy, DefaultTargetSpeed)
	}
}

func TestTargetStaysInsideArena(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ArenaWidth = 200
	cfg.ArenaHeight = 150
	cfg.TargetSpeed = 35
	cfg.RoundSeconds = 1000
	c, sched, _ := newTestController(t, cfg)
	c.Start()

	for i := 0; i < 5000; i++ {
		if i%200 == 0 {
			c.HitTarget() // Shrink and speed up along the way
		}
		sched.Advance(cfg.TargetTick)

		s := c.Snapshot()
		maxX := cfg.ArenaWidth - s.TargetSize
		maxY := cfg.ArenaHeight - s.TargetSize
		if s.TargetPos.X < 0 || s.TargetPos.X > maxX || s.TargetPos.Y < 0 || s.TargetPos.Y > maxY {
			t.Fatalf("tick %d: target at (%v, %v) outside [0,%v]x[0,%v]",
				i, s.TargetPos.X, s.TargetPos.Y, maxX, maxY)
		}
	}
}

func TestMilestoneEscalation(t *testing.T) {
	c, _, _ := newTestController(t, DefaultConfig())
	c.Start()

	speed := c.Snapshot().TargetSpeed
	for score := 1; score <= 9; score++ {
		c.HitTarget()
		s := c.Snapshot()
		if s.Score != score {
			t.Fatalf("score = %d, want %d", s.Score, score)
		}
		if score%3 == 0 {
			speed += DefaultSpeedStep
		}
		if s.TargetSpeed != speed {
			t.Fatalf("score %d: speed = %v, want %v", score, s.TargetSpeed, speed)
		}
	}
}

func TestMilestoneChangesColor(t *testing.T) {
	c, _, rec := newTestController(t, DefaultConfig())
	c.Start()

	c.HitTarget()
	c.HitTarget()
	if c.Snapshot().TargetColor != DefaultTargetColor {
		t.Fatal("colour must not change before the first milestone")
	}
	c.HitTarget()
	if c.Snapshot().TargetColor == DefaultTargetColor {
		t.Fatal("colour should change on a milestone")
	}
	if rec.TargetView.Color != c.Snapshot().TargetColor {
		t.Fatal("new colour was not presented")
	}
}

func TestTargetSizeFloor(t *testing.T) {
	c, _, _ := newTestController(t, DefaultConfig())
	c.Start()

	want := []float64{55, 50, 45, 40, 35, 30, 30, 30}
	for i, w := range want {
		for j := 0; j < DefaultMilestoneInterval; j++ {
			c.HitTarget()
		}
		if got := c.Snapshot().TargetSize; got != w {
			t.Fatalf("milestone %d: size = %v, want %v", i+1, got, w)
		}
	}
}

func TestProjectileHitsStationaryTarget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetSpeed = 0
	c, sched, rec := newTestController(t, cfg)
	c.Start()

	if !c.Fire() {
		t.Fatal("Fire should succeed while running")
	}
	if sched.Pending() != 3 {
		t.Fatalf("expected a flight ticker, pending=%d", sched.Pending())
	}

	// Target spans x 370..430; the arrow's leading edge passes 370 on tick 34.
	sched.Advance(33 * cfg.ProjectileTick)
	if c.Snapshot().Score != 0 {
		t.Fatal("hit registered too early")
	}
	sched.Advance(cfg.ProjectileTick)

	s := c.Snapshot()
	if s.Score != 1 {
		t.Fatalf("score = %d, want 1", s.Score)
	}
	if len(s.Projectiles) != 0 || len(rec.Projectiles()) != 0 {
		t.Fatal("projectile should be hidden after a hit")
	}
	if sched.Pending() != 2 {
		t.Fatalf("flight ticker leaked, pending=%d", sched.Pending())
	}
}

func TestProjectileLeavesArena(t *testing.T) {
	c, sched, rec := newTestController(t, DefaultConfig())
	c.Start()
	moveTargetOffLine(c)

	c.Fire()
	// x = 10k; leaves when 10k + 40 > 800, i.e. on tick 77.
	sched.Advance(76 * DefaultProjectileTick)
	if len(rec.Projectiles()) != 1 {
		t.Fatal("projectile should still be in flight")
	}
	sched.Advance(DefaultProjectileTick)

	if len(c.Snapshot().Projectiles) != 0 || len(rec.Projectiles()) != 0 {
		t.Fatal("projectile should be gone after leaving the arena")
	}
	if sched.Pending() != 2 {
		t.Fatalf("flight ticker leaked, pending=%d", sched.Pending())
	}
	if c.Snapshot().Score != 0 {
		t.Fatal("a miss must not score")
	}
}

func TestOverlappingFlights(t *testing.T) {
	c, sched, rec := newTestController(t, DefaultConfig())
	c.Start()
	moveTargetOffLine(c)

	c.Fire()
	sched.Advance(100 * time.Millisecond)
	c.Fire()
	sched.Advance(20 * time.Millisecond)

	views := rec.Projectiles()
	if len(views) != 2 {
		t.Fatalf("expected 2 flights, got %d", len(views))
	}
	if views[0].X <= views[1].X {
		t.Fatalf("older flight should be ahead: %v vs %v", views[0].X, views[1].X)
	}
}

func TestClickAt(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetSpeed = 0
	c, sched, _ := newTestController(t, cfg)

	if got := c.ClickAt(400, 300); got != ClickIgnored {
		t.Fatalf("click before start = %v, want ignored", got)
	}
	c.Start()
	c.Fire()

	// Target is centred: 370..430 x 270..330.
	if got := c.ClickAt(400, 300); got != ClickTarget {
		t.Fatalf("click on target = %v, want target", got)
	}
	s := c.Snapshot()
	if s.Score != 1 {
		t.Fatalf("score = %d, want 1", s.Score)
	}
	if len(s.Projectiles) != 0 || sched.Pending() != 2 {
		t.Fatal("direct hit should hide projectiles and stop their tickers")
	}

	if got := c.ClickAt(10, 10); got != ClickBackground {
		t.Fatalf("click on background = %v, want background", got)
	}
	if len(c.Snapshot().Projectiles) != 1 {
		t.Fatal("background click should fire")
	}
}

func TestTimerEndsGame(t *testing.T) {
	c, sched, rec := newTestController(t, DefaultConfig())
	c.Start()

	sched.Advance(59 * time.Second)
	if c.Snapshot().IsOver {
		t.Fatal("game over before time ran out")
	}
	sched.Advance(time.Second)

	s := c.Snapshot()
	if !s.IsOver || s.TimeLeft != 0 || c.Phase() != PhaseEnded {
		t.Fatalf("expected ended game with 0s left, got over=%v left=%d phase=%v", s.IsOver, s.TimeLeft, c.Phase())
	}
	if len(rec.gameOvers) != 1 || rec.gameOvers[0] != 0 {
		t.Fatalf("game over notifications = %v, want [0]", rec.gameOvers)
	}
	if sched.Pending() != 0 {
		t.Fatalf("tickers still pending after game over: %d", sched.Pending())
	}
}

func TestNoMutationAfterGameOver(t *testing.T) {
	c, sched, rec := newTestController(t, DefaultConfig())
	c.Start()
	c.Fire()
	c.Stop()

	frozen := c.Snapshot()
	if !frozen.IsOver {
		t.Fatal("Stop should end the game")
	}
	if len(frozen.Projectiles) != 0 {
		t.Fatal("game over should hide projectiles")
	}

	if c.Fire() || c.HitTarget() || c.ClickAt(1, 1) != ClickIgnored {
		t.Fatal("input after game over must be ignored")
	}
	sched.Advance(10 * time.Second)

	after := c.Snapshot()
	if after.Score != frozen.Score || after.TimeLeft != frozen.TimeLeft || after.TargetPos != frozen.TargetPos {
		t.Fatalf("state changed after game over: %+v -> %+v", frozen, after)
	}
	if len(rec.gameOvers) != 1 {
		t.Fatalf("game over reported %d times", len(rec.gameOvers))
	}
	c.Stop()
	if len(rec.gameOvers) != 1 {
		t.Fatal("Stop on an ended game must not report again")
	}
}

func TestRestartMatchesFreshStart(t *testing.T) {
	c, sched, rec := newTestController(t, DefaultConfig())
	c.Start()
	for i := 0; i < 7; i++ {
		c.HitTarget()
	}
	c.Fire()
	sched.Advance(60 * time.Second)
	if !rec.Over {
		t.Fatal("expected game over before restart")
	}

	c.Restart()

	fresh, _, _ := newTestController(t, DefaultConfig())
	fresh.Start()

	got, want := c.Snapshot(), fresh.Snapshot()
	if got.Score != want.Score || got.TimeLeft != want.TimeLeft || got.IsOver != want.IsOver ||
		got.TargetSpeed != want.TargetSpeed || got.TargetSize != want.TargetSize ||
		got.TargetPos != want.TargetPos || got.TargetColor != want.TargetColor ||
		got.ProjectileSpeed != want.ProjectileSpeed || len(got.Projectiles) != 0 {
		t.Fatalf("restarted state %+v differs from fresh %+v", got, want)
	}
	if c.Phase() != PhaseRunning || rec.Over || rec.ScoreValue != 0 || rec.Seconds != DefaultRoundSeconds {
		t.Fatalf("presentation not reset: phase=%v view=%+v", c.Phase(), rec.View)
	}

	sched.Advance(time.Second)
	if c.Snapshot().TimeLeft != DefaultRoundSeconds-1 {
		t.Fatal("timer should resume after restart")
	}
}

func TestRestartWhileRunningStopsFlights(t *testing.T) {
	c, sched, rec := newTestController(t, DefaultConfig())
	c.Start()
	moveTargetOffLine(c)
	c.Fire()
	c.Fire()

	c.Restart()
	if sched.Pending() != 2 {
		t.Fatalf("expected only target and timer after restart, pending=%d", sched.Pending())
	}
	if len(rec.Projectiles()) != 0 {
		t.Fatal("restart should hide projectiles")
	}
}

func TestScoreNeverDecreases(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TargetSpeed = 0
	c, sched, rec := newTestController(t, cfg)
	c.Start()

	for i := 0; i < 40; i++ {
		c.Fire()
		if i%4 == 0 {
			c.HitTarget()
		}
		sched.Advance(250 * time.Millisecond)
	}

	for i := 1; i < len(rec.scores); i++ {
		if rec.scores[i] < rec.scores[i-1] {
			t.Fatalf("score decreased: %v", rec.scores)
		}
	}
}
