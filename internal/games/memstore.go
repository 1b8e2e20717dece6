package games

import "perps-arcade-backend/internal/models"

// MemoryStore is an in-process StateStore for the local demo session
// and for tests.
type MemoryStore struct {
	balance float64
	games   []*models.Game
}

func NewMemoryStore(balance float64) *MemoryStore {
	return &MemoryStore{balance: balance}
}

func (s *MemoryStore) Balance() (float64, error) {
	return s.balance, nil
}

func (s *MemoryStore) SetBalance(amount float64) error {
	s.balance = amount
	return nil
}

func (s *MemoryStore) Games() ([]*models.Game, error) {
	return s.games, nil
}

func (s *MemoryStore) SetGames(games []*models.Game) error {
	s.games = games
	return nil
}
