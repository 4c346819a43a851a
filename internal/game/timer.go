package game

// startTimer schedules the round countdown.
func (c *Controller) startTimer() {
	c.timerTask = c.sched.Every(c.cfg.TimerTick, c.tickTimer)
}

// tickTimer counts down one second and ends the game at zero.
func (c *Controller) tickTimer() {
	s := c.state
	if s.IsOver {
		return
	}

	s.TimeLeft--
	c.presenter.TimeLeft(s.TimeLeft)

	if s.TimeLeft <= 0 {
		c.end()
	}
}
