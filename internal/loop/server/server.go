// Package server is the hub shared by every connected session: it tracks
// clients, keeps the top-score board and broadcasts shutdown.
package server

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/bullseye/internal/loop/config"
)

// GameServer is the interface clients use to communicate with the hub.
// Decouples the Client from the concrete Server implementation, enabling
// testing and a local single-player hub.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	ReportScore(clientID int, score int)
	TopScores(n int) []TopScoreEntry
	Players() int
}

// Server tracks connected sessions and their best scores.
// Each session runs its own game; only the scoreboard is shared.
type Server struct {
	mu           sync.RWMutex
	clients      map[int]*ClientHandle
	nextClientID int
	board        *Scoreboard
	shutdown     bool
	logger       *log.Logger
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string           // Display name for this client
	EventsCh chan ClientEvent // Events sent to client (shutdown, etc.)
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type  ClientEventType
	Score int // For EventNewBest
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
	EventNewBest                        // The reported score is this client's best so far
)

// NewServer creates a hub. A nil logger discards log output.
func NewServer(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		board:        NewScoreboard(),
		logger:       logger,
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
// Clients registering after Shutdown receive the shutdown event immediately.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextClientID
	s.nextClientID++

	handle := &ClientHandle{
		ID:       id,
		Username: displayName(username, id),
		EventsCh: make(chan ClientEvent, 16),
	}
	s.clients[id] = handle
	if s.shutdown {
		handle.EventsCh <- ClientEvent{Type: EventServerShutdown}
	}

	s.logger.Info("client registered", "id", id, "username", handle.Username, "players", len(s.clients))
	return handle
}

// UnregisterClient removes a client from the server. Its best score stays on the board.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[clientID]; !ok {
		return
	}
	delete(s.clients, clientID)
	s.logger.Info("client unregistered", "id", clientID, "players", len(s.clients))
}

// ReportScore records a finished session's score for a client.
func (s *Server) ReportScore(clientID int, score int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	if s.board.Record(clientID, handle.Username, score) {
		s.logger.Debug("new best score", "id", clientID, "username", handle.Username, "score", score)
		select {
		case handle.EventsCh <- ClientEvent{Type: EventNewBest, Score: score}:
		default:
		}
	}
}

// TopScores returns the n best scores, highest first.
func (s *Server) TopScores(n int) []TopScoreEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.Top(n)
}

// Players returns the number of connected clients.
func (s *Server) Players() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Shutdown gracefully shuts down the hub by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
func (s *Server) Shutdown(timeout time.Duration) {
	// Notify all connected clients about the shutdown
	s.mu.Lock()
	s.shutdown = true
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.Unlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			s.logger.Warn("shutdown timed out", "remaining", s.Players())
			return
		case <-ticker.C:
			if s.Players() == 0 {
				return
			}
		}
	}
}

// displayName truncates a username for display, falling back to a generated one.
func displayName(username string, id int) string {
	if username == "" {
		return fmt.Sprintf("player-%d", id)
	}
	r := []rune(username)
	if len(r) > config.MaxUsernameLength {
		r = r[:config.MaxUsernameLength]
	}
	return string(r)
}
