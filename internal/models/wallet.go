package models

// StartingBalance is credited when a wallet is first seen. Demo
// currency, not real funds.
const StartingBalance = 1000.0

type Wallet struct {
	Address      string  `json:"address" redis:"address"`
	Balance      float64 `json:"balance" redis:"balance"`
	TotalWagered float64 `json:"total_wagered" redis:"total_wagered"`
	TotalWon     float64 `json:"total_won" redis:"total_won"`
	CreatedAt    int64   `json:"created_at" redis:"created_at"`
}
