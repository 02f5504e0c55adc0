package server

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gravitas-games/gridstash/internal/config"
	"github.com/gravitas-games/gridstash/internal/network"
	"github.com/gravitas-games/gridstash/pkg/models"
)

var (
	errSessionFull   = errors.New("session is full")
	errAlreadyJoined = errors.New("player already joined")
)

// Session tracks the players connected to this server and their stashes
type Session struct {
	ID        string
	CreatedAt time.Time

	// Player management
	players map[string]*models.Player // playerID -> Player
	stashes map[string]*Stash         // playerID -> Stash
	mu      sync.RWMutex

	status SessionStatus

	// Configuration
	config *config.Config
	log    logrus.FieldLogger
}

// SessionStatus represents the current state of the session
type SessionStatus struct {
	State       string `json:"state"` // "waiting", "running"
	PlayerCount int    `json:"player_count"`
	MaxPlayers  int    `json:"max_players"`
	Uptime      int64  `json:"uptime"` // seconds
}

// NewSession creates a new session
func NewSession(id string, cfg *config.Config, log logrus.FieldLogger) *Session {
	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		players:   make(map[string]*models.Player),
		stashes:   make(map[string]*Stash),
		config:    cfg,
		log:       log.WithField("session", id),
		status: SessionStatus{
			State:      "waiting",
			MaxPlayers: cfg.Server.MaxPlayers,
		},
	}
	s.log.Info("session created")
	return s
}

// AddPlayer adds a player with its live stash to the session
func (s *Session) AddPlayer(player *models.Player, stash *Stash) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.players[player.ID]; exists {
		return errAlreadyJoined
	}
	if s.status.MaxPlayers > 0 && len(s.players) >= s.status.MaxPlayers {
		return fmt.Errorf("%w (%d players)", errSessionFull, s.status.MaxPlayers)
	}

	s.players[player.ID] = player
	s.stashes[player.ID] = stash
	s.status.PlayerCount = len(s.players)
	s.status.State = "running"

	s.log.WithFields(logrus.Fields{"player": player.ID, "username": player.Username}).Info("player joined")
	return nil
}

// RemovePlayer removes a player and returns its stash, nil when the player
// was not in the session
func (s *Session) RemovePlayer(playerID string) *Stash {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, exists := s.players[playerID]
	if !exists {
		return nil
	}
	stash := s.stashes[playerID]
	delete(s.players, playerID)
	delete(s.stashes, playerID)
	s.status.PlayerCount = len(s.players)
	if s.status.PlayerCount == 0 {
		s.status.State = "waiting"
	}

	s.log.WithFields(logrus.Fields{"player": playerID, "username": player.Username}).Info("player left")
	return stash
}

// GetStatus returns the current session status
func (s *Session) GetStatus() SessionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := s.status
	status.Uptime = int64(time.Since(s.CreatedAt).Seconds())
	return status
}

func (st SessionStatus) payload() network.SessionStatus {
	return network.SessionStatus{
		State:       st.State,
		PlayerCount: st.PlayerCount,
		MaxPlayers:  st.MaxPlayers,
		Uptime:      st.Uptime,
	}
}
