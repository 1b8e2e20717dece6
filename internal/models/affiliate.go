package models

// AffiliateRecord is the per-wallet referral ledger. ReferralCode is
// derived from the wallet address and indexed separately so referrers
// can hand out the code instead of their full address.
type AffiliateRecord struct {
	WalletAddress string         `json:"wallet_address"`
	ReferralCode  string         `json:"referral_code"`
	ReferredBy    string         `json:"referred_by,omitempty"`
	CreatedAt     int64          `json:"created_at"`
	Stats         AffiliateStats `json:"stats"`
}

type AffiliateStats struct {
	TotalReferrals    int     `json:"total_referrals"`
	ActiveReferrals   int     `json:"active_referrals"`
	TotalEarnings     float64 `json:"total_earnings"`
	TotalCommissions  float64 `json:"total_commissions"`
	EarningsThisMonth float64 `json:"earnings_this_month"`
	LifetimeVolume    float64 `json:"lifetime_volume"`
	ConversionRate    float64 `json:"conversion_rate"`
	Trades            int     `json:"trades"`
}

type LeaderboardEntry struct {
	Rank           int     `json:"rank"`
	WalletAddress  string  `json:"wallet_address"`
	ReferralCode   string  `json:"referral_code"`
	TotalReferrals int     `json:"total_referrals"`
	TotalEarnings  float64 `json:"total_earnings"`
}
