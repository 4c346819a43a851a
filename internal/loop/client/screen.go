package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/bullseye/internal/draw"
	"github.com/tomz197/bullseye/internal/loop/config"
	"github.com/tomz197/bullseye/internal/object"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()

	ctx := object.DrawContext{
		Canvas: c.canvas,
		Writer: c.chunkWriter,
	}

	// The arena is shown while playing and frozen behind the game-over screen.
	if c.state.GameState == GameStatePlaying || c.state.GameState == GameStateOver {
		if err := object.DrawAll(ctx, object.FromView(c.view)); err != nil {
			return err
		}
	}

	// Render canvas to terminal
	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}

	// Draw border when terminal exceeds max render resolution
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}

	// Draw UI overlay
	if err := c.drawUI(ctx); err != nil {
		return err
	}

	return c.chunkWriter.Flush()
}

// drawUI draws the game UI overlay.
func (c *Client) drawUI(ctx object.DrawContext) error {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	var texts []object.Text
	switch {
	case c.state.GameState == GameStateShutdown:
		texts = c.shutdownScreen(centerX, centerY)
	case c.state.isInactive:
		texts = c.inactivityScreen(centerX, centerY)
	case c.state.GameState == GameStatePlaying:
		texts = c.playingHUD(termWidth, termHeight)
	case c.state.GameState == GameStateStart:
		texts = c.startScreen(centerX, centerY)
	case c.state.GameState == GameStateOver:
		texts = append(c.playingHUD(termWidth, termHeight), c.overScreen(centerX, centerY)...)
	}

	// Text sits on top of canvas cells; mark them so the canvas repaints
	// underneath next frame and stale text never lingers.
	for _, t := range texts {
		if err := t.Draw(ctx); err != nil {
			return err
		}
		c.canvas.MarkTextDirty(t.X, t.Y, len([]rune(t.Value)))
	}
	return nil
}

// inactivityScreen lays out the inactivity warning screen.
func (c *Client) inactivityScreen(centerX, centerY int) []object.Text {
	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	return []object.Text{
		object.Centered(centerX, centerY-2, "INACTIVITY WARNING"),
		object.Centered(centerX, centerY, msg),
		object.Centered(centerX, centerY+2, "Press any key to continue"),
	}
}

// titleArt is the start screen banner (figlet "small" font).
var titleArt = []string{
	` ___ _   _ _    _    ___ _____   _____ `,
	`| _ ) | | | |  | |  / __| __\ \ / / __|`,
	`| _ \ |_| | |__| |__\__ \ _| \ V /| _| `,
	`|___/\___/|____|____|___/___| |_| |___|`,
}

// startScreen lays out the title screen.
func (c *Client) startScreen(centerX, centerY int) []object.Text {
	var texts []object.Text

	titleStartY := centerY - 7
	for i, line := range titleArt {
		texts = append(texts, object.Centered(centerX, titleStartY+i, line))
	}

	subtitle := fmt.Sprintf("~ Hit the moving target as often as you can in %d seconds ~", c.game.Snapshot().TimeLeft)
	texts = append(texts, object.Centered(centerX, titleStartY+len(titleArt)+1, subtitle))

	// Controls section
	controlsY := titleStartY + len(titleArt) + 3
	texts = append(texts, object.Text{
		X: centerX - len("Controls")/2, Y: controlsY, Value: "Controls", Style: draw.ColorBold,
	})
	controlLines := []string{
		"Click target  . . . . . Hit",
		"Click elsewhere  . . . Fire",
		"SPACE  . . . . . . . . Fire",
		"ENTER / R  . . . . . Restart",
		"Q  . . . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		texts = append(texts, object.Centered(centerX, controlsY+1+i, line))
	}

	// Blinking start prompt; a blank line of the same width erases it.
	prompt := ">>  Press SPACE to Start  <<"
	if time.Now().UnixMilli()/600%2 != 0 {
		prompt = strings.Repeat(" ", len(prompt))
	}
	texts = append(texts, object.Centered(centerX, controlsY+len(controlLines)+2, prompt))
	return texts
}

// playingHUD lays out the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen (since we no longer clear every frame).
func (c *Client) playingHUD(termWidth, termHeight int) []object.Text {
	scoreText := fmt.Sprintf("Score: %-6d", c.view.ScoreValue)
	timeText := fmt.Sprintf("Time: %3ds", c.view.Seconds)
	playersText := fmt.Sprintf("Players: %-4d", c.server.Players())

	return []object.Text{
		{X: 2, Y: 1, Value: scoreText, Style: draw.ColorBold},
		{X: termWidth - len(timeText) - 1, Y: 1, Value: timeText, Style: draw.ColorBold},
		{X: termWidth - len(playersText) - 1, Y: termHeight, Value: playersText, Style: draw.ColorDim},
	}
}

// overScreen lays out the game-over panel with the final score and the top-score board.
func (c *Client) overScreen(centerX, centerY int) []object.Text {
	top := c.server.TopScores(config.TopScoreCount)
	startY := centerY - 4 - len(top)/2

	texts := []object.Text{
		{X: centerX - len("TIME'S UP")/2, Y: startY, Value: "TIME'S UP", Style: draw.ColorBold},
		object.Centered(centerX, startY+2, fmt.Sprintf("Final score: %d", c.view.FinalScore)),
	}
	if c.state.newBest {
		texts = append(texts, object.Text{
			X: centerX - len("New personal best!")/2, Y: startY + 3,
			Value: "New personal best!", Style: draw.ColorBrightCyan,
		})
	}

	if len(top) > 0 {
		texts = append(texts, object.Centered(centerX, startY+5, "Top scores"))
		for i, entry := range top {
			line := fmt.Sprintf("%d. %-*s %6d", i+1, config.MaxUsernameLength, entry.Username, entry.Score)
			texts = append(texts, object.Centered(centerX, startY+6+i, line))
		}
	}

	prompt := ">>  Press ENTER to Restart  <<"
	if time.Now().UnixMilli()/600%2 != 0 {
		prompt = strings.Repeat(" ", len(prompt))
	}
	texts = append(texts, object.Centered(centerX, startY+7+len(top), prompt))
	return texts
}

// shutdownScreen lays out the server shutdown notification screen.
func (c *Client) shutdownScreen(centerX, centerY int) []object.Text {
	remaining := int(c.state.shutdownTimer) + 1
	return []object.Text{
		object.Centered(centerX, centerY-3, "SERVER SHUTTING DOWN"),
		object.Centered(centerX, centerY-1, "The server is restarting for maintenance."),
		object.Centered(centerX, centerY, "Please reconnect in a moment."),
		object.Centered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining)),
		object.Centered(centerX, centerY+4, "Press Q to disconnect now"),
	}
}
