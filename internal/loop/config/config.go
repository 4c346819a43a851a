// Package config centralizes the tunable parameters of the terminal frontends.
// Gameplay parameters live in game.Config.
package config

import "time"

// Render resolution limits. The arena is scaled to fit the terminal but never
// beyond these dimensions; larger terminals get a centred, bordered area.
const (
	MaxTermWidth  = 120 // Columns
	MaxTermHeight = 45  // Rows (90 sub-pixel rows, 4:3 with MaxTermWidth)
)

// Scoreboard
const (
	TopScoreCount     = 5  // Entries shown on the game-over screen
	MaxUsernameLength = 16 // Maximum display length for player usernames
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
	ShutdownWaitTimeout    = 15 * time.Second
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS

	// MaxFrameAdvance caps how much virtual time one frame may advance the
	// game clock, so a stalled connection does not fast-forward the round.
	MaxFrameAdvance = 250 * time.Millisecond
)
