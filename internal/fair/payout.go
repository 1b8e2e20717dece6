package fair

// DefaultFeeRate is the house cut taken off the full pot at settlement.
const DefaultFeeRate = 0.02

// Payout computes the winner's payout for a matched wager. Both sides
// stake equally, so the pot is exactly double the wager; the fee comes
// off the whole pot, not off each side.
func Payout(wager, feeRate float64) float64 {
	return wager * 2 * (1 - feeRate)
}
