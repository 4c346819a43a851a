package game

import (
	"github.com/samber/lo"

	"github.com/tomz197/bullseye/internal/physics"
)

// startTargetMotion schedules the target's random walk.
func (c *Controller) startTargetMotion() {
	c.targetTask = c.sched.Every(c.cfg.TargetTick, c.moveTarget)
}

// moveTarget steps the target by ±TargetSpeed on each axis and clamps it
// into the arena. There is no velocity: a wall simply stops the step.
func (c *Controller) moveTarget() {
	s := c.state
	if s.IsOver {
		return
	}

	dx := c.randomSign() * s.TargetSpeed
	dy := c.randomSign() * s.TargetSpeed
	s.TargetPos.X = physics.ClampAxis(s.TargetPos.X+dx, s.TargetSize, c.arena.Width)
	s.TargetPos.Y = physics.ClampAxis(s.TargetPos.Y+dy, s.TargetSize, c.arena.Height)

	c.presenter.Target(c.targetView())
}

// randomSign returns -1 or +1 with equal probability.
func (c *Controller) randomSign() float64 {
	return lo.Ternary(c.rng.Intn(2) == 0, -1.0, 1.0)
}

func (c *Controller) targetView() EntityView {
	s := c.state
	return EntityView{
		X:       s.TargetPos.X,
		Y:       s.TargetPos.Y,
		W:       s.TargetSize,
		H:       s.TargetSize,
		Visible: true,
		Color:   s.TargetColor,
	}
}
