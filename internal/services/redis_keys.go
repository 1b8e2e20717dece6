package services

import "time"

const (
	KeyWallet         = "wallet:%s"
	KeyGamesLobby     = "games:lobby"
	KeyRateLimit      = "ratelimit:%s:%d"
	KeyAffiliate      = "affiliate:%s"
	KeyReferralCode   = "refcode:%s"
	KeyAffiliateBoard = "affiliate:leaderboard"

	KeyCacheSentiment   = "sentiment:%s"
	KeyCacheRealities   = "realities:%s:%.2f"
	KeyCacheHashtags    = "hashtags:%s"
	KeyCacheLeaderboard = "cache:affiliate:leaderboard"

	TTLSentiment        = 900 * time.Second
	TTLRealities        = 900 * time.Second
	TTLHashtags         = 1800 * time.Second
	TTLLeaderboardCache = 60 * time.Second
)
