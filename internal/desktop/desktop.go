// Package desktop is the ebiten frontend: one local session in a window whose
// logical size is the arena.
package desktop

import (
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/bullseye/internal/game"
	"github.com/tomz197/bullseye/internal/loop/server"
	"github.com/tomz197/bullseye/internal/schedule"
)

var (
	backgroundColor = color.RGBA{R: 16, G: 18, B: 24, A: 255}
	hudColor        = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	hintColor       = color.RGBA{R: 150, G: 150, B: 160, A: 255}
	white           = colorful.Color{R: 1, G: 1, B: 1}
)

// statusTicks is how long a status line stays on screen, in updates.
const statusTicks = 120

// Game implements ebiten.Game.
type Game struct {
	sched  *schedule.Scheduler
	game   *game.Controller
	view   *game.View
	arena  game.Arena
	hub    *server.Server
	player *server.ClientHandle
	logger *log.Logger
	face   text.Face

	status      string
	statusTicks int
}

// New creates an idle desktop session.
func New(cfg game.Config, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	hub := server.NewServer(logger)
	player := hub.RegisterClient("you")

	arena := game.Arena{Width: cfg.ArenaWidth, Height: cfg.ArenaHeight}
	view := game.NewView(arena)
	sched := schedule.New()
	ctrl := game.NewController(cfg, sched,
		game.WithPresenter(game.MultiPresenter{
			view,
			server.Reporter{Server: hub, ClientID: player.ID},
		}),
		game.WithLogger(logger),
	)

	return &Game{
		sched:  sched,
		game:   ctrl,
		view:   view,
		arena:  arena,
		hub:    hub,
		player: player,
		logger: logger,
		face:   text.NewGoXFace(basicfont.Face7x13),
	}
}

// Run opens the window and blocks until it is closed.
func Run(cfg game.Config, logger *log.Logger) error {
	ebiten.SetWindowTitle("Bullseye")
	ebiten.SetWindowSize(int(cfg.ArenaWidth), int(cfg.ArenaHeight))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := New(cfg, logger)
	defer g.sched.StopAll()
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// Update handles this tick's input, then advances the game clock by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.fire()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.click(float64(x), float64(y))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) && g.game.Phase() == game.PhaseEnded {
		g.copyScore()
	}

	if g.game.Running() {
		g.sched.Advance(time.Second / time.Duration(ebiten.TPS()))
	}
	if g.statusTicks > 0 {
		g.statusTicks--
	}
	return nil
}

func (g *Game) restart() {
	if g.game.Phase() == game.PhaseIdle {
		g.game.Start()
		return
	}
	g.game.Restart()
}

func (g *Game) fire() {
	if g.game.Phase() == game.PhaseIdle {
		g.game.Start()
		return
	}
	g.game.Fire()
}

func (g *Game) click(x, y float64) {
	if g.game.Phase() == game.PhaseIdle {
		g.game.Start()
		return
	}
	g.game.ClickAt(x, y)
}

// copyScore puts the final score on the system clipboard.
func (g *Game) copyScore() {
	msg := fmt.Sprintf("I scored %d in Bullseye!", g.view.FinalScore)
	if err := clipboard.WriteAll(msg); err != nil {
		g.logger.Warn("copy score to clipboard", "err", err)
		g.setStatus("Clipboard unavailable")
		return
	}
	g.setStatus("Score copied to clipboard")
}

func (g *Game) setStatus(s string) {
	g.status = s
	g.statusTicks = statusTicks
}

// Draw renders the view.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	if g.game.Phase() != game.PhaseIdle {
		g.drawTarget(screen, g.view.TargetView)
		for _, p := range g.view.Projectiles() {
			fillRect(screen, p, p.Color)
		}
	}

	g.drawText(screen, fmt.Sprintf("Score: %d", g.view.ScoreValue), 10, 8, hudColor)
	timeText := fmt.Sprintf("Time: %ds", g.view.Seconds)
	w, _ := text.Measure(timeText, g.face, 0)
	g.drawText(screen, timeText, g.arena.Width-w-10, 8, hudColor)

	cy := g.arena.Height / 2
	switch g.game.Phase() {
	case game.PhaseIdle:
		g.drawCentered(screen, "BULLSEYE", cy-20, hudColor)
		g.drawCentered(screen, "Click or press SPACE to start", cy+4, hintColor)
	case game.PhaseEnded:
		g.drawCentered(screen, "TIME'S UP", cy-30, hudColor)
		g.drawCentered(screen, fmt.Sprintf("Final score: %d", g.view.FinalScore), cy-10, hudColor)
		if top := g.hub.TopScores(1); len(top) > 0 {
			g.drawCentered(screen, fmt.Sprintf("Best this run: %d", top[0].Score), cy+6, hintColor)
		}
		g.drawCentered(screen, "ENTER restart   C copy score   Q quit", cy+26, hintColor)
	}

	if g.statusTicks > 0 {
		g.drawCentered(screen, g.status, g.arena.Height-24, hintColor)
	}
}

// drawTarget fills the bullseye: outer band, pale ring, centre.
func (g *Game) drawTarget(screen *ebiten.Image, v game.EntityView) {
	if !v.Visible {
		return
	}
	fillRect(screen, v, v.Color)
	ring := game.EntityView{X: v.X + v.W/6, Y: v.Y + v.H/6, W: v.W * 2 / 3, H: v.H * 2 / 3}
	fillRect(screen, ring, v.Color.BlendRgb(white, 0.75))
	centre := game.EntityView{X: v.X + v.W/3, Y: v.Y + v.H/3, W: v.W / 3, H: v.H / 3}
	fillRect(screen, centre, v.Color)
}

func fillRect(screen *ebiten.Image, v game.EntityView, clr color.Color) {
	vector.DrawFilledRect(screen, float32(v.X), float32(v.Y), float32(v.W), float32(v.H), clr, false)
}

func (g *Game) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, g.face, op)
}

func (g *Game) drawCentered(screen *ebiten.Image, s string, y float64, clr color.Color) {
	w, _ := text.Measure(s, g.face, 0)
	g.drawText(screen, s, (g.arena.Width-w)/2, y, clr)
}

// Layout fixes the logical screen to the arena so cursor positions are arena coordinates.
func (g *Game) Layout(_, _ int) (int, int) {
	return int(g.arena.Width), int(g.arena.Height)
}
