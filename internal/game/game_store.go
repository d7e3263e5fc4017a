package game

import (
	"sync"

	"github.com/google/uuid"
)

// GameStore tracks the games running in one process.
type GameStore struct {
	mu    sync.Mutex
	games map[uuid.UUID]*Game
}

func NewGameStore() *GameStore {
	return &GameStore{
		games: make(map[uuid.UUID]*Game),
	}
}

func (s *GameStore) AddGame(game *Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.ID] = game
}

func (s *GameStore) GetGame(id uuid.UUID) (*Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, exists := s.games[id]
	return g, exists
}

func (s *GameStore) DeleteGame(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
}

// Len is the number of games tracked.
func (s *GameStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}

// RemoveFinished drops every game that is over and returns them.
func (s *GameStore) RemoveFinished() []*Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	var done []*Game
	for id, g := range s.games {
		if g.Over() {
			done = append(done, g)
			delete(s.games, id)
		}
	}
	return done
}
