package server

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string
	Score    int
	clientID int // Used for deterministic tie-break when scores are equal
}

// Scoreboard keeps the best score of every client that has finished a session.
// It is not safe for concurrent use; Server guards it.
type Scoreboard struct {
	best map[int]TopScoreEntry // Keyed by client ID
}

// NewScoreboard creates an empty board.
func NewScoreboard() *Scoreboard {
	return &Scoreboard{best: make(map[int]TopScoreEntry)}
}

// Record stores score if it beats the client's previous best.
// Returns true if the board changed.
func (b *Scoreboard) Record(clientID int, username string, score int) bool {
	prev, ok := b.best[clientID]
	if ok && prev.Score >= score {
		return false
	}
	b.best[clientID] = TopScoreEntry{Username: username, Score: score, clientID: clientID}
	return true
}

// Top returns up to n entries, highest score first. Equal scores are ordered
// by who joined first.
func (b *Scoreboard) Top(n int) []TopScoreEntry {
	entries := lo.Values(b.best)
	slices.SortFunc(entries, func(x, y TopScoreEntry) int {
		if c := cmp.Compare(y.Score, x.Score); c != 0 {
			return c
		}
		return cmp.Compare(x.clientID, y.clientID)
	})
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
