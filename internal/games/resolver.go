package games

import (
	"perps-arcade-backend/internal/fair"
	"perps-arcade-backend/internal/models"
)

// Per-player sub-seeds keep the two dice rolls independent while still
// derived from the one stored seed.
const (
	creatorSubSeed  = "creator"
	opponentSubSeed = "opponent"
)

// Resolve derives a game outcome from the seed. entryPrice is only
// consulted for price-prediction games.
func Resolve(gameType models.GameType, seed string, entryPrice float64) models.Outcome {
	out := models.Outcome{Type: gameType}

	switch gameType {
	case models.GameTypeDice:
		out.Dice = &models.DiceOutcome{
			CreatorRoll:  fair.RollDice(seed + creatorSubSeed),
			OpponentRoll: fair.RollDice(seed + opponentSubSeed),
		}
	case models.GameTypeCoinFlip:
		out.Coin = &models.CoinOutcome{Side: fair.FlipCoin(seed)}
	case models.GameTypePricePrediction:
		p := fair.PredictPrice(seed, entryPrice)
		out.Price = &models.PriceOutcome{Predicted: p.Predicted, Actual: p.Actual}
	}

	return out
}

// VerifyGameResult recomputes the outcome from the seed and reports
// whether the claimed outcome matches. Game types this resolver does
// not know verify as true; the permissive default keeps old results
// checkable after new game types ship.
func VerifyGameResult(seed string, gameType models.GameType, claimed models.Outcome) bool {
	switch gameType {
	case models.GameTypeDice:
		if claimed.Dice == nil {
			return false
		}
		recomputed := Resolve(gameType, seed, 0)
		return *recomputed.Dice == *claimed.Dice
	case models.GameTypeCoinFlip:
		if claimed.Coin == nil {
			return false
		}
		recomputed := Resolve(gameType, seed, 0)
		return *recomputed.Coin == *claimed.Coin
	case models.GameTypePricePrediction:
		if claimed.Price == nil {
			return false
		}
		// Predicted echoes the entry price, so the claim carries
		// everything needed to recompute.
		recomputed := Resolve(gameType, seed, claimed.Price.Predicted)
		return *recomputed.Price == *claimed.Price
	default:
		return true
	}
}

// settle decides the winner for an outcome. Dice and price-prediction
// can tie, in which case both wagers are refunded; a coin has no tie.
// Heads goes to the creator, tails to the opponent. For
// price-prediction the creator holds the long side.
func settle(game *models.Game, out models.Outcome, opponentID string) (winnerID string, tie bool) {
	switch out.Type {
	case models.GameTypeDice:
		switch {
		case out.Dice.CreatorRoll > out.Dice.OpponentRoll:
			return game.CreatorID, false
		case out.Dice.CreatorRoll < out.Dice.OpponentRoll:
			return opponentID, false
		default:
			return "", true
		}
	case models.GameTypeCoinFlip:
		if out.Coin.Side == fair.CoinHeads {
			return game.CreatorID, false
		}
		return opponentID, false
	case models.GameTypePricePrediction:
		switch {
		case out.Price.Actual > out.Price.Predicted:
			return game.CreatorID, false
		case out.Price.Actual < out.Price.Predicted:
			return opponentID, false
		default:
			return "", true
		}
	}
	return "", true
}
