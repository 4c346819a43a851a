package game

import (
	"slices"

	"github.com/samber/lo"
)

// View is a render model built from Presenter updates.
// Frontends draw from it once per frame. It is not safe for concurrent use;
// read it on the goroutine that drives the controller.
type View struct {
	Arena       Arena
	TargetView  EntityView
	projectiles map[int]EntityView
	ScoreValue  int
	Seconds     int
	Over        bool
	FinalScore  int
}

// NewView creates an empty view for the given arena.
func NewView(arena Arena) *View {
	return &View{
		Arena:       arena,
		projectiles: make(map[int]EntityView),
	}
}

func (v *View) Target(e EntityView) {
	v.TargetView = e
}

// Projectile stores visible flights and forgets hidden ones.
func (v *View) Projectile(id int, e EntityView) {
	if !e.Visible {
		delete(v.projectiles, id)
		return
	}
	v.projectiles[id] = e
}

func (v *View) Score(score int) {
	v.ScoreValue = score
}

// TimeLeft also clears the game-over flag: the controller only reports time
// while a session is (re)starting or running.
func (v *View) TimeLeft(seconds int) {
	v.Seconds = seconds
	if seconds > 0 {
		v.Over = false
	}
}

func (v *View) GameOver(finalScore int) {
	v.Over = true
	v.FinalScore = finalScore
}

// Projectiles returns the visible flights ordered by ID.
func (v *View) Projectiles() []EntityView {
	ids := lo.Keys(v.projectiles)
	slices.Sort(ids)
	return lo.Map(ids, func(id int, _ int) EntityView {
		return v.projectiles[id]
	})
}
