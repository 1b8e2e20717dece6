// Package fair derives PvP game outcomes from an opaque seed string.
// The same seed always produces the same outcome, so any party holding
// the seed can recompute a settled game and check it was not tampered
// with.
package fair

type CoinSide string

const (
	CoinHeads CoinSide = "heads"
	CoinTails CoinSide = "tails"
)

// PriceVolatility bounds the simulated price move at +/-2%.
const PriceVolatility = 0.02

type PricePrediction struct {
	Predicted float64 `json:"predicted"`
	Actual    float64 `json:"actual"`
}

// HashSeed computes a 32-bit signed polynomial rolling hash over the
// seed (h = h*31 + char, wrapping at every step). This is the single
// entropy-extraction step every outcome derivation goes through.
func HashSeed(seed string) int32 {
	var h int32
	for _, r := range seed {
		h = h*31 + int32(r)
	}
	return h
}

// RollDice maps a seed onto a die face in [1,6].
func RollDice(seed string) int {
	return int(abs32(HashSeed(seed))%6) + 1
}

// FlipCoin maps a seed onto heads or tails.
func FlipCoin(seed string) CoinSide {
	if HashSeed(seed)%2 == 0 {
		return CoinHeads
	}
	return CoinTails
}

// PredictPrice perturbs currentPrice by a bounded pseudo-random
// percentage derived from the seed. Predicted echoes the input price;
// Actual lands within +/-2% of it.
func PredictPrice(seed string, currentPrice float64) PricePrediction {
	n := abs32(HashSeed(seed)) % 1000
	change := (float64(n)/1000 - 0.5) * 2 * PriceVolatility

	return PricePrediction{
		Predicted: currentPrice,
		Actual:    currentPrice * (1 + change),
	}
}

func abs32(v int32) int64 {
	// widen first: abs(math.MinInt32) does not fit in an int32
	n := int64(v)
	if n < 0 {
		return -n
	}
	return n
}
