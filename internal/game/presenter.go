package game

import "github.com/lucasb-eyer/go-colorful"

// EntityView is what a renderer needs to draw one entity.
type EntityView struct {
	X, Y    float64
	W, H    float64
	Visible bool
	Color   colorful.Color
}

// Presenter receives every visible change the simulation makes.
// All methods are called from the goroutine that drives the session.
type Presenter interface {
	// Target reports the target's current position, size and colour.
	Target(v EntityView)
	// Projectile reports a flight by ID. Visible is false once it ends.
	Projectile(id int, v EntityView)
	// Score reports the current score.
	Score(score int)
	// TimeLeft reports the remaining whole seconds.
	TimeLeft(seconds int)
	// GameOver reports the end of the session with the final score.
	GameOver(finalScore int)
}

// NopPresenter ignores all updates. Embed it to implement a subset.
type NopPresenter struct{}

func (NopPresenter) Target(EntityView) {}
func (NopPresenter) Projectile(int, EntityView) {}
func (NopPresenter) Score(int) {}
func (NopPresenter) TimeLeft(int) {}
func (NopPresenter) GameOver(int) {}

// MultiPresenter fans updates out to several presenters in order.
type MultiPresenter []Presenter

func (m MultiPresenter) Target(v EntityView) {
	for _, p := range m {
		p.Target(v)
	}
}

func (m MultiPresenter) Projectile(id int, v EntityView) {
	for _, p := range m {
		p.Projectile(id, v)
	}
}

func (m MultiPresenter) Score(score int) {
	for _, p := range m {
		p.Score(score)
	}
}

func (m MultiPresenter) TimeLeft(seconds int) {
	for _, p := range m {
		p.TimeLeft(seconds)
	}
}

func (m MultiPresenter) GameOver(finalScore int) {
	for _, p := range m {
		p.GameOver(finalScore)
	}
}

var (
	_ Presenter = NopPresenter{}
	_ Presenter = MultiPresenter(nil)
	_ Presenter = (*View)(nil)
)
