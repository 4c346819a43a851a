package game

import (
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// IsMilestone reports whether a score triggers a difficulty step.
func IsMilestone(score, interval int) bool {
	return score > 0 && interval > 0 && score%interval == 0
}

// NextTargetSize shrinks size by step unless that would reach floor.
// The size is left unchanged rather than clamped, so with size 60, step 5
// and floor 25 the sequence stops at 30.
func NextTargetSize(size, step, floor float64) float64 {
	if size-step > floor {
		return size - step
	}
	return size
}

// RandomHue returns a fully saturated colour with a uniformly random hue.
func RandomHue(rng *rand.Rand) colorful.Color {
	return colorful.Hsl(rng.Float64()*360, 1, 0.5)
}

// escalate applies the difficulty step for a new score.
// Returns true if the score was a milestone.
func (c *Controller) escalate(score int) bool {
	if !IsMilestone(score, c.cfg.MilestoneInterval) {
		return false
	}

	s := c.state
	s.TargetSpeed += c.cfg.SpeedStep
	s.TargetSize = NextTargetSize(s.TargetSize, c.cfg.SizeStep, c.cfg.MinTargetSize)
	s.TargetColor = RandomHue(c.rng)

	c.logger.Debug("difficulty increased",
		"score", score,
		"speed", s.TargetSpeed,
		"size", s.TargetSize,
		"color", s.TargetColor.Hex(),
	)
	return true
}

// registerHit is the scoring path shared by projectile hits and direct clicks.
func (c *Controller) registerHit() {
	s := c.state
	s.Score++
	escalated := c.escalate(s.Score)

	c.presenter.Score(s.Score)
	if escalated {
		c.presenter.Target(c.targetView())
	}
}
