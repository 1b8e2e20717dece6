package games

import (
	"fmt"
	"time"

	"perps-arcade-backend/internal/fair"
	"perps-arcade-backend/internal/models"
)

// LocalAdapter settles games against an injected StateStore. It is the
// single authority over that store's balance and game list, but does
// no locking of its own; callers running it from multiple goroutines
// must serialize access themselves.
type LocalAdapter struct {
	store   StateStore
	feeRate float64
	newSeed func() string
	now     func() time.Time
}

func NewLocalAdapter(store StateStore) *LocalAdapter {
	return &LocalAdapter{
		store:   store,
		feeRate: fair.DefaultFeeRate,
		newSeed: models.GenerateSeed,
		now:     time.Now,
	}
}

func (a *LocalAdapter) Mode() string {
	return "local"
}

// CreateGame deducts the wager from the store balance and appends a
// waiting game. Nothing is mutated when the balance cannot cover the
// wager.
func (a *LocalAdapter) CreateGame(gameType models.GameType, wager float64, creatorID string, entryPrice float64) (*models.Game, error) {
	balance, err := a.store.Balance()
	if err != nil {
		return nil, err
	}
	if wager > balance {
		return nil, ErrInsufficientBalance
	}

	list, err := a.store.Games()
	if err != nil {
		return nil, err
	}

	game := &models.Game{
		ID:         models.GenerateGameID(),
		Type:       gameType,
		Wager:      wager,
		CreatorID:  creatorID,
		Status:     models.GameStatusWaiting,
		EntryPrice: entryPrice,
		CreatedAt:  a.now().UnixMilli(),
	}

	if err := a.store.SetBalance(balance - wager); err != nil {
		return nil, err
	}
	if err := a.store.SetGames(append(list, game)); err != nil {
		return nil, err
	}

	return game, nil
}

// JoinGame stakes the joiner's wager, resolves the game from a fresh
// seed and settles it. The joiner's winnings (or tie refund) are
// credited to the store; the creator's side is reported back through
// JoinResult for the caller to credit.
func (a *LocalAdapter) JoinGame(gameID, userID string) (*JoinResult, error) {
	list, err := a.store.Games()
	if err != nil {
		return nil, err
	}

	game := findGame(list, gameID)
	if game == nil {
		return nil, ErrGameNotFound
	}
	if game.Status != models.GameStatusWaiting {
		return nil, fmt.Errorf("game is not open to join: %w", ErrInvalidState)
	}

	balance, err := a.store.Balance()
	if err != nil {
		return nil, err
	}
	if game.Wager > balance {
		return nil, ErrInsufficientBalance
	}
	balance -= game.Wager

	seed := a.newSeed()
	outcome := Resolve(game.Type, seed, game.EntryPrice)
	winnerID, tie := settle(game, outcome, userID)
	payout := fair.Payout(game.Wager, a.feeRate)

	result := &JoinResult{Game: game, Tie: tie}
	switch {
	case tie:
		// mutual refund: joiner's stake back via the store, creator's
		// via the caller
		balance += game.Wager
		result.Payout = game.Wager
		result.CreatorPayout = game.Wager
	case winnerID == userID:
		balance += payout
		result.Won = true
		result.Payout = payout
	default:
		result.CreatorPayout = payout
	}

	game.OpponentID = userID
	game.Status = models.GameStatusCompleted
	game.Result = &models.GameResult{
		WinnerID:  winnerID,
		Tie:       tie,
		Seed:      seed,
		Outcome:   outcome,
		Timestamp: a.now().UnixMilli(),
	}

	if err := a.store.SetBalance(balance); err != nil {
		return nil, err
	}
	if err := a.store.SetGames(list); err != nil {
		return nil, err
	}

	return result, nil
}

// CancelGame refunds the creator's wager and marks the game cancelled.
// Only waiting games can be cancelled.
func (a *LocalAdapter) CancelGame(gameID string) (*models.Game, error) {
	list, err := a.store.Games()
	if err != nil {
		return nil, err
	}

	game := findGame(list, gameID)
	if game == nil {
		return nil, ErrGameNotFound
	}
	if game.Status != models.GameStatusWaiting {
		return nil, fmt.Errorf("cannot cancel active game: %w", ErrInvalidState)
	}

	balance, err := a.store.Balance()
	if err != nil {
		return nil, err
	}

	game.Status = models.GameStatusCancelled

	if err := a.store.SetBalance(balance + game.Wager); err != nil {
		return nil, err
	}
	if err := a.store.SetGames(list); err != nil {
		return nil, err
	}

	return game, nil
}

func (a *LocalAdapter) Games() ([]*models.Game, error) {
	return a.store.Games()
}

func findGame(list []*models.Game, id string) *models.Game {
	for _, g := range list {
		if g.ID == id {
			return g
		}
	}
	return nil
}
