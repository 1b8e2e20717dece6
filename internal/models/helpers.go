package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func GenerateGameID() string {
	return fmt.Sprintf("game_%s_%d",
		time.Now().Format("20060102"),
		uuid.New().ID())
}

// GenerateSeed produces the entropy string a game resolution is
// derived from. It is stored with the result so the outcome can be
// recomputed independently.
func GenerateSeed() string {
	return fmt.Sprintf("%s-%d", uuid.New().String(), time.Now().UnixNano())
}

func (r *CreateGameRequest) Validate() error {
	if r.Wager <= 0 {
		return fmt.Errorf("wager must be positive")
	}

	switch r.Type {
	case GameTypeDice, GameTypeCoinFlip:
	case GameTypePricePrediction:
		if r.EntryPrice <= 0 {
			return fmt.Errorf("price-prediction games need a positive entry_price")
		}
	default:
		return fmt.Errorf("invalid game type: %s", r.Type)
	}

	return nil
}
