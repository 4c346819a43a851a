// Package tui is a tcell frontend: one local session drawn with coloured cells,
// mouse clicks from tcell mouse events.
package tui

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/bullseye/internal/game"
	"github.com/tomz197/bullseye/internal/loop/config"
	"github.com/tomz197/bullseye/internal/loop/server"
	"github.com/tomz197/bullseye/internal/schedule"
)

// hudRows is the number of screen rows above the arena.
const hudRows = 1

var (
	hudStyle   = tcell.StyleDefault.Bold(true)
	hintStyle  = tcell.StyleDefault.Dim(true)
	arenaStyle = tcell.StyleDefault.Background(tcell.NewRGBColor(16, 18, 24))
)

// App is a single tcell session.
type App struct {
	screen tcell.Screen
	sched  *schedule.Scheduler
	game   *game.Controller
	view   *game.View
	arena  game.Arena
	hub    *server.Server
	player *server.ClientHandle
	logger *log.Logger

	width, height int
	prevButtons   tcell.ButtonMask // For edge-triggered clicks
	running       bool
}

// New creates an app drawing to an initialised screen.
func New(screen tcell.Screen, cfg game.Config, logger *log.Logger) *App {
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

	a := &App{
		screen:  screen,
		sched:   sched,
		game:    ctrl,
		view:    view,
		arena:   arena,
		hub:     hub,
		player:  player,
		logger:  logger,
		running: true,
	}
	a.width, a.height = screen.Size()
	return a
}

// Run creates a terminal screen and plays until the user quits.
func Run(cfg game.Config, logger *log.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	return New(screen, cfg, logger).Run()
}

// Run is the event and frame loop.
func (a *App) Run() error {
	ticker := time.NewTicker(config.ClientTargetFrameTime)
	defer ticker.Stop()
	defer a.sched.StopAll()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return // Screen finalised
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for a.running {
		select {
		case ev := <-eventChan:
			a.HandleEvent(ev)

		case now := <-ticker.C:
			a.Tick(now.Sub(last))
			last = now
			a.Draw()
		}
	}
	return nil
}

// Tick advances the game clock by one frame.
func (a *App) Tick(elapsed time.Duration) {
	if a.game.Running() {
		a.sched.Advance(min(elapsed, config.MaxFrameAdvance))
	}
}

// HandleEvent applies one tcell event. Returns false once the app should exit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a.handleKey(ev)

	case *tcell.EventMouse:
		buttons := ev.Buttons()
		pressed := buttons&tcell.Button1 != 0 && a.prevButtons&tcell.Button1 == 0
		a.prevButtons = buttons
		if pressed {
			x, y := ev.Position()
			a.handleClick(x, y)
		}

	case *tcell.EventResize:
		a.width, a.height = a.screen.Size()
		a.screen.Sync()
	}
	return a.running
}

func (a *App) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.running = false
	case tcell.KeyEnter:
		a.restart()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			a.running = false
		case 'r', 'R':
			a.restart()
		case ' ', 'f', 'F':
			if a.game.Phase() == game.PhaseIdle {
				a.game.Start()
				return
			}
			a.game.Fire()
		}
	}
}

func (a *App) handleClick(col, row int) {
	if a.game.Phase() == game.PhaseIdle {
		a.game.Start()
		return
	}
	x, y, ok := a.cellToArena(col, row)
	if !ok {
		return
	}
	a.game.ClickAt(x, y)
}

func (a *App) restart() {
	if a.game.Phase() == game.PhaseIdle {
		a.game.Start()
		return
	}
	a.game.Restart()
}

// arenaRows is the number of screen rows the arena is stretched over.
func (a *App) arenaRows() int {
	return max(a.height-hudRows, 1)
}

// cellToArena maps a 0-based screen cell to the arena coordinate at its centre.
func (a *App) cellToArena(col, row int) (x, y float64, ok bool) {
	r := row - hudRows
	if col < 0 || col >= a.width || r < 0 || r >= a.arenaRows() {
		return 0, 0, false
	}
	x = (float64(col) + 0.5) * a.arena.Width / float64(a.width)
	y = (float64(r) + 0.5) * a.arena.Height / float64(a.arenaRows())
	return x, y, true
}

// cellRect returns the screen cells covered by an arena rectangle.
// Any non-empty rectangle covers at least one cell.
func (a *App) cellRect(v game.EntityView) (c0, r0, c1, r1 int) {
	sx := float64(a.width) / a.arena.Width
	sy := float64(a.arenaRows()) / a.arena.Height

	c0 = int(math.Floor(v.X * sx))
	c1 = int(math.Ceil((v.X + v.W) * sx))
	r0 = int(math.Floor(v.Y * sy))
	r1 = int(math.Ceil((v.Y + v.H) * sy))
	if c1 <= c0 {
		c1 = c0 + 1
	}
	if r1 <= r0 {
		r1 = r0 + 1
	}
	return c0, r0 + hudRows, c1, r1 + hudRows
}

// Draw renders the view to the screen.
func (a *App) Draw() {
	a.screen.Clear()

	for row := hudRows; row < a.height; row++ {
		for col := 0; col < a.width; col++ {
			a.screen.SetContent(col, row, ' ', nil, arenaStyle)
		}
	}

	if a.game.Phase() != game.PhaseIdle {
		a.fill(a.view.TargetView)
		for _, p := range a.view.Projectiles() {
			a.fill(p)
		}
	}

	a.drawText(1, 0, hudStyle, fmt.Sprintf("Score: %-6d", a.view.ScoreValue))
	timeText := fmt.Sprintf("Time: %3ds", a.view.Seconds)
	a.drawText(a.width-len(timeText)-1, 0, hudStyle, timeText)

	switch a.game.Phase() {
	case game.PhaseIdle:
		a.drawCentered(a.height/2-1, hudStyle, "BULLSEYE")
		a.drawCentered(a.height/2+1, hintStyle, "Click or press SPACE to start, Q to quit")
	case game.PhaseEnded:
		a.drawCentered(a.height/2-2, hudStyle, "TIME'S UP")
		a.drawCentered(a.height/2, hudStyle, fmt.Sprintf("Final score: %d", a.view.FinalScore))
		if top := a.hub.TopScores(1); len(top) > 0 {
			a.drawCentered(a.height/2+1, hintStyle, fmt.Sprintf("Best this run: %d", top[0].Score))
		}
		a.drawCentered(a.height/2+3, hintStyle, "Press ENTER to restart, Q to quit")
	}

	a.screen.Show()
}

func (a *App) fill(v game.EntityView) {
	if !v.Visible {
		return
	}
	style := tcell.StyleDefault.Background(toTcell(v.Color))
	c0, r0, c1, r1 := a.cellRect(v)
	for row := max(r0, hudRows); row < min(r1, a.height); row++ {
		for col := max(c0, 0); col < min(c1, a.width); col++ {
			a.screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

func (a *App) drawText(col, row int, style tcell.Style, s string) {
	for _, r := range s {
		a.screen.SetContent(col, row, r, nil, style)
		col++
	}
}

func (a *App) drawCentered(row int, style tcell.Style, s string) {
	a.drawText((a.width-len([]rune(s)))/2, row, style, s)
}

// toTcell converts a colour to a 24-bit tcell colour.
func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
