package models

type CreateGameRequest struct {
	Type       GameType `json:"type" binding:"required"`
	Wager      float64  `json:"wager" binding:"required,gt=0"`
	EntryPrice float64  `json:"entry_price"`
}

type RegisterAffiliateRequest struct {
	WalletAddress string `json:"walletAddress" binding:"required"`
	ReferredBy    string `json:"referredBy"`
}

type TrackTradeRequest struct {
	WalletAddress string  `json:"walletAddress" binding:"required"`
	Volume        float64 `json:"volume"`
	Fee           float64 `json:"fee"`
	TxSignature   string  `json:"txSignature"`
}
