// Package client runs one ANSI terminal session: it reads keys and mouse
// clicks, drives a game.Controller on a virtual clock and renders the arena.
package client

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/bullseye/internal/draw"
	"github.com/tomz197/bullseye/internal/game"
	"github.com/tomz197/bullseye/internal/input"
	"github.com/tomz197/bullseye/internal/loop/config"
	"github.com/tomz197/bullseye/internal/loop/server"
	"github.com/tomz197/bullseye/internal/schedule"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	sched        *schedule.Scheduler
	game         *game.Controller
	view         *game.View
	arena        game.Arena
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	reader       *bufio.Reader
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Game         game.Config // Zero value means game.DefaultConfig()
	Logger       *log.Logger
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	cfg := opts.Game
	if cfg == (game.Config{}) {
		cfg = game.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	handle := gs.RegisterClient(opts.Username)
	logger = logger.With("client", handle.ID)

	arena := game.Arena{Width: cfg.ArenaWidth, Height: cfg.ArenaHeight}
	view := game.NewView(arena)
	sched := schedule.New()
	ctrl := game.NewController(cfg, sched,
		game.WithPresenter(game.MultiPresenter{
			view,
			server.Reporter{Server: gs, ClientID: handle.ID},
		}),
		game.WithLogger(logger),
	)

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight, arena)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, arena.Width, arena.Height)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	return &Client{
		server:       gs,
		handle:       handle,
		state:        NewClientState(),
		sched:        sched,
		game:         ctrl,
		view:         view,
		arena:        arena,
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		reader:       r,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		logger:       logger,
	}
}

// Run starts the client loop. Blocks until the client disconnects or the server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.EnableMouse(c.writer)
	defer draw.DisableMouse(c.writer)
	draw.ClearScreen(c.writer)
	defer c.close()

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		// Process input
		c.processInput()

		// Check for server events
		c.processServerEvents()

		// Handle screen resize
		c.updateScreen()

		// Handle game state
		c.update()

		// Draw frame
		if err := c.drawFrame(); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}
	return nil
}

// close stops the session's tickers without reporting a score and leaves the hub.
func (c *Client) close() {
	c.sched.StopAll()
	c.server.UnregisterClient(c.handle.ID)
	draw.ClearScreen(c.writer)
}

// processInput reads input and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive client")
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit || c.state.Input.Closed {
		c.state.Running = false
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				c.game.Stop()
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			case server.EventNewBest:
				c.state.newBest = true
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight, c.arena)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize fits the arena's aspect ratio into the terminal, clamped to the
// max render resolution, and computes the centering offset for the render area.
// One cell holds two square-ish sub-pixels stacked vertically.
func clampTermSize(termWidth, termHeight int, arena game.Arena) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)

	if arena.Width > 0 && arena.Height > 0 {
		if float64(renderWidth)*arena.Height > float64(renderHeight*2)*arena.Width {
			renderWidth = int(float64(renderHeight*2) * arena.Width / arena.Height)
		} else {
			renderHeight = int(float64(renderWidth) * arena.Height / (2 * arena.Width))
		}
	}
	renderWidth = max(renderWidth, 1)
	renderHeight = max(renderHeight, 1)

	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// update advances the current screen by one frame.
func (c *Client) update() {
	switch c.state.GameState {
	case GameStateStart:
		c.updateStartState()
	case GameStatePlaying:
		c.updatePlayingState()
	case GameStateOver:
		c.updateOverState()
	case GameStateShutdown:
		c.updateShutdownState()
	}
}

// updateStartState handles the start screen.
func (c *Client) updateStartState() {
	in := c.state.Input
	if in.Fire || in.Restart || len(in.Clicks) > 0 {
		c.startGame()
	}
}

// updatePlayingState applies this frame's clicks and keys, then advances the
// game clock by the frame time.
func (c *Client) updatePlayingState() {
	in := c.state.Input
	if in.Restart {
		c.startGame()
		return
	}

	for _, click := range in.Clicks {
		x, y, ok := c.canvas.TerminalToLogical(click.Col, click.Row)
		if !ok {
			continue
		}
		c.game.ClickAt(x, y)
	}
	if in.Fire {
		c.game.Fire()
	}

	c.sched.Advance(min(c.state.delta, config.MaxFrameAdvance))

	if c.game.Phase() == game.PhaseEnded {
		c.state.GameState = GameStateOver
	}
}

// updateOverState handles the game-over screen.
func (c *Client) updateOverState() {
	if c.state.Input.Restart {
		c.startGame()
	}
}

// startGame starts the first round or restarts after one.
func (c *Client) startGame() {
	if c.game.Phase() == game.PhaseIdle {
		c.game.Start()
	} else {
		c.game.Restart()
	}
	c.state.newBest = false
	c.state.GameState = GameStatePlaying
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
