// Package game implements the target-shooting simulation: target motion,
// projectile flights, collision, difficulty and the round timer.
package game

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/bullseye/internal/physics"
)

// Phase is the lifecycle stage of a session.
type Phase int

const (
	PhaseIdle    Phase = iota // Created, not started
	PhaseRunning              // Tickers active
	PhaseEnded                // Game over, waiting for restart
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Arena is the playing field. Immutable for a session.
type Arena struct {
	Width, Height float64
}

// Vec is a position in arena coordinates.
type Vec struct {
	X, Y float64
}

// Projectile is a single fired arrow.
type Projectile struct {
	ID       int
	InFlight bool
	Pos      Vec // Top-left corner
}

// State is the mutable record of one session.
type State struct {
	Score           int
	TimeLeft        int
	IsOver          bool
	TargetSpeed     float64
	ProjectileSpeed float64
	TargetSize      float64
	TargetPos       Vec // Top-left corner
	TargetColor     colorful.Color
	Projectiles     []*Projectile // Flights still in the air
}

// newState creates the initial state for a session.
func newState(cfg Config) *State {
	return &State{
		TimeLeft:        cfg.RoundSeconds,
		TargetSpeed:     cfg.TargetSpeed,
		ProjectileSpeed: cfg.ProjectileSpeed,
		TargetSize:      cfg.TargetSize,
		TargetPos: Vec{
			X: (cfg.ArenaWidth - cfg.TargetSize) / 2,
			Y: (cfg.ArenaHeight - cfg.TargetSize) / 2,
		},
		TargetColor: cfg.TargetColor,
	}
}

// TargetBox returns the target's bounding box.
func (s *State) TargetBox() physics.Box {
	return physics.NewBox(s.TargetPos.X, s.TargetPos.Y, s.TargetSize, s.TargetSize)
}

// clone returns a deep copy of the state.
func (s *State) clone() State {
	c := *s
	c.Projectiles = make([]*Projectile, len(s.Projectiles))
	for i, p := range s.Projectiles {
		cp := *p
		c.Projectiles[i] = &cp
	}
	return c
}
