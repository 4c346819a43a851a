package game

import (
	"github.com/samber/lo"

	"github.com/tomz197/bullseye/internal/physics"
)

// fire launches a new flight with its own ticker.
// Earlier flights keep flying; each one ends on its own.
func (c *Controller) fire() *Projectile {
	c.nextProjectileID++
	p := &Projectile{
		ID:       c.nextProjectileID,
		InFlight: true,
		Pos:      c.launchPos(),
	}
	c.state.Projectiles = append(c.state.Projectiles, p)
	c.flights[p.ID] = c.sched.Every(c.cfg.ProjectileTick, func() {
		c.advanceProjectile(p)
	})

	c.presenter.Projectile(p.ID, c.projectileView(p))
	return p
}

// launchPos is the fixed start point: the left wall, vertically centred.
func (c *Controller) launchPos() Vec {
	return Vec{
		X: 0,
		Y: (c.arena.Height - c.cfg.ProjectileHeight) / 2,
	}
}

// advanceProjectile moves a flight one step and resolves hit or exit.
func (c *Controller) advanceProjectile(p *Projectile) {
	if c.state.IsOver || !p.InFlight {
		return
	}

	p.Pos.X += c.state.ProjectileSpeed

	if physics.Overlaps(c.projectileBox(p), c.state.TargetBox()) {
		c.land(p)
		c.registerHit()
		return
	}

	if p.Pos.X+c.cfg.ProjectileWidth > c.arena.Width {
		c.land(p)
		return
	}

	c.presenter.Projectile(p.ID, c.projectileView(p))
}

// land ends a flight: its ticker stops and it is hidden.
func (c *Controller) land(p *Projectile) {
	if h, ok := c.flights[p.ID]; ok {
		h.Stop()
		delete(c.flights, p.ID)
	}
	p.InFlight = false
	c.state.Projectiles = lo.Filter(c.state.Projectiles, func(q *Projectile, _ int) bool {
		return q.ID != p.ID
	})

	view := c.projectileView(p)
	view.Visible = false
	c.presenter.Projectile(p.ID, view)
}

// landAll ends every flight in the air.
func (c *Controller) landAll() {
	for _, p := range append([]*Projectile(nil), c.state.Projectiles...) {
		c.land(p)
	}
}

func (c *Controller) projectileBox(p *Projectile) physics.Box {
	return physics.NewBox(p.Pos.X, p.Pos.Y, c.cfg.ProjectileWidth, c.cfg.ProjectileHeight)
}

func (c *Controller) projectileView(p *Projectile) EntityView {
	return EntityView{
		X:       p.Pos.X,
		Y:       p.Pos.Y,
		W:       c.cfg.ProjectileWidth,
		H:       c.cfg.ProjectileHeight,
		Visible: p.InFlight,
		Color:   DefaultProjectileColor,
	}
}
