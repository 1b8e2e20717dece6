// Package games owns the PvP game lifecycle: creating, joining and
// cancelling wager rounds, and resolving them from seeded randomness.
package games

import (
	"errors"

	"perps-arcade-backend/internal/models"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrGameNotFound        = errors.New("game not found")
	ErrInvalidState        = errors.New("invalid game state")
	ErrNotDeployed         = errors.New("on-chain games not yet deployed")
)

// Adapter is the seam between game logic and the backend it settles
// against. The local adapter runs everything against an injected state
// store; the on-chain adapter is a placeholder for the deployed
// program.
type Adapter interface {
	Mode() string
	CreateGame(gameType models.GameType, wager float64, creatorID string, entryPrice float64) (*models.Game, error)
	JoinGame(gameID, userID string) (*JoinResult, error)
	CancelGame(gameID string) (*models.Game, error)
	Games() ([]*models.Game, error)
}

// JoinResult reports a settled game from the joiner's perspective. The
// adapter credits the joiner's side; CreatorPayout is what the caller
// owes the creator (the winner's payout, the refunded wager on a tie,
// or zero).
type JoinResult struct {
	Game          *models.Game `json:"game"`
	Won           bool         `json:"won"`
	Tie           bool         `json:"tie"`
	Payout        float64      `json:"payout"`
	CreatorPayout float64      `json:"creator_payout"`
}

// StateStore is the balance and game-list state an adapter operates
// over. Implementations decide the medium (memory, Redis, file); the
// adapter never touches storage directly.
type StateStore interface {
	Balance() (float64, error)
	SetBalance(amount float64) error
	Games() ([]*models.Game, error)
	SetGames(games []*models.Game) error
}
