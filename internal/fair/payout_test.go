package fair_test

import (
	"math"
	"testing"

	"perps-arcade-backend/internal/fair"
)

func TestPayout(t *testing.T) {
	cases := []struct {
		wager, fee, want float64
	}{
		{100, 0.02, 196.00},
		{100, 0.05, 190.00},
		{100, 0, 200.00},
		{0, 0.02, 0},
		{50, 1, 0},
	}

	for _, c := range cases {
		got := fair.Payout(c.wager, c.fee)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Payout(%v, %v) = %v, want %v", c.wager, c.fee, got, c.want)
		}
	}
}

func TestPayoutZeroFeeReturnsFullPot(t *testing.T) {
	for _, w := range []float64{1, 10, 250, 9999.5} {
		if got := fair.Payout(w, 0); got != 2*w {
			t.Errorf("Payout(%v, 0) = %v, want %v", w, got, 2*w)
		}
	}
}
