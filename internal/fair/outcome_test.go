package fair_test

import (
	"testing"

	"perps-arcade-backend/internal/fair"
)

func TestRollDiceRange(t *testing.T) {
	seeds := []string{"a", "b", "c", "seed-1", "seed-2", "deadbeef", "", "0xCAFE", "game_20250101_42"}

	for _, s := range seeds {
		roll := fair.RollDice(s)
		if roll < 1 || roll > 6 {
			t.Errorf("RollDice(%q) = %d, want 1..6", s, roll)
		}
	}
}

func TestRollDiceDeterministic(t *testing.T) {
	for _, s := range []string{"alpha", "beta", "gamma"} {
		first := fair.RollDice(s)
		for i := 0; i < 10; i++ {
			if got := fair.RollDice(s); got != first {
				t.Fatalf("RollDice(%q) not deterministic: %d then %d", s, first, got)
			}
		}
	}
}

func TestRollDiceSpread(t *testing.T) {
	seeds := []string{"s1", "s2", "s3", "s4", "s5", "s6", "s7", "s8", "s9", "s10"}

	seen := make(map[int]bool)
	for _, s := range seeds {
		seen[fair.RollDice(s)] = true
	}

	if len(seen) < 2 {
		t.Errorf("expected more than one distinct face across %d seeds, got %v", len(seeds), seen)
	}
}

func TestFlipCoin(t *testing.T) {
	heads, tails := 0, 0
	for _, s := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		side := fair.FlipCoin(s)
		if side != fair.CoinHeads && side != fair.CoinTails {
			t.Fatalf("FlipCoin(%q) = %q", s, side)
		}
		if side != fair.FlipCoin(s) {
			t.Fatalf("FlipCoin(%q) not deterministic", s)
		}
		if side == fair.CoinHeads {
			heads++
		} else {
			tails++
		}
	}

	if heads == 0 || tails == 0 {
		t.Errorf("expected both sides across 8 seeds, got heads=%d tails=%d", heads, tails)
	}
}

func TestPredictPriceBounds(t *testing.T) {
	prices := []float64{1, 42.5, 180.0, 65000}
	seeds := []string{"x", "y", "z", "prediction-seed"}

	for _, p := range prices {
		for _, s := range seeds {
			got := fair.PredictPrice(s, p)
			if got.Predicted != p {
				t.Errorf("PredictPrice(%q, %v).Predicted = %v, want %v", s, p, got.Predicted, p)
			}
			if got.Actual <= 0.95*p || got.Actual >= 1.05*p {
				t.Errorf("PredictPrice(%q, %v).Actual = %v, outside (%v, %v)", s, p, got.Actual, 0.95*p, 1.05*p)
			}
			if again := fair.PredictPrice(s, p); again != got {
				t.Errorf("PredictPrice(%q, %v) not deterministic", s, p)
			}
		}
	}
}

func TestHashSeedStable(t *testing.T) {
	// pin a few values so the hash can never drift silently;
	// settled games stay verifiable only if these hold forever
	cases := map[string]int32{
		"":    0,
		"a":   97,
		"ab":  97*31 + 98,
		"abc": (97*31+98)*31 + 99,
	}

	for seed, want := range cases {
		if got := fair.HashSeed(seed); got != want {
			t.Errorf("HashSeed(%q) = %d, want %d", seed, got, want)
		}
	}
}
