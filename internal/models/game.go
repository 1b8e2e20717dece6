package models

import "perps-arcade-backend/internal/fair"

type GameType string

const (
	GameTypeDice            GameType = "dice"
	GameTypeCoinFlip        GameType = "coinflip"
	GameTypePricePrediction GameType = "price-prediction"
)

type GameStatus string

const (
	GameStatusWaiting   GameStatus = "waiting"
	GameStatusCompleted GameStatus = "completed"
	GameStatusCancelled GameStatus = "cancelled"
)

// Game is one PvP wager round. The creator's wager is held from
// creation until the game is joined (settled) or cancelled (refunded).
type Game struct {
	ID         string     `json:"id"`
	Type       GameType   `json:"type"`
	Wager      float64    `json:"wager"`
	CreatorID  string     `json:"creator_id"`
	OpponentID string     `json:"opponent_id,omitempty"`
	Status     GameStatus `json:"status"`

	// EntryPrice anchors price-prediction games; zero for other types.
	EntryPrice float64 `json:"entry_price,omitempty"`

	CreatedAt int64       `json:"created_at"`
	Result    *GameResult `json:"result,omitempty"`
}

// GameResult is present only on completed games. Seed is retained so
// anyone can recompute the outcome and check it.
type GameResult struct {
	WinnerID  string  `json:"winner_id,omitempty"`
	Tie       bool    `json:"tie,omitempty"`
	Seed      string  `json:"seed"`
	Outcome   Outcome `json:"outcome"`
	Timestamp int64   `json:"timestamp"`
}

// Outcome is a tagged union keyed by game type; exactly one of the
// payload pointers is set.
type Outcome struct {
	Type  GameType      `json:"type"`
	Dice  *DiceOutcome  `json:"dice,omitempty"`
	Coin  *CoinOutcome  `json:"coin,omitempty"`
	Price *PriceOutcome `json:"price,omitempty"`
}

type DiceOutcome struct {
	CreatorRoll  int `json:"creator_roll"`
	OpponentRoll int `json:"opponent_roll"`
}

type CoinOutcome struct {
	Side fair.CoinSide `json:"side"`
}

type PriceOutcome struct {
	Predicted float64 `json:"predicted"`
	Actual    float64 `json:"actual"`
}
