package client

import (
	"time"

	"github.com/tomz197/bullseye/internal/input"
)

// GameState represents the current screen for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Round in progress
	GameStateOver                      // Round ended, show score and restart prompt
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds per-connection state (input, screen, timers).
// Each client has their own instance, managed by the Client.
type ClientState struct {
	Input         input.Input
	GameState     GameState // This client's screen
	prevGameState GameState // Screen drawn in the previous frame
	Running       bool      // Client loop running
	delta         time.Duration
	shutdownTimer float64 // Countdown before auto-disconnect on shutdown
	isInactive    bool    // Whether the client is in inactive warning state
	wasInactive   bool
	newBest       bool // Last finished round set a personal best
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		GameState: GameStateStart,
		Running:   true,
	}
}
