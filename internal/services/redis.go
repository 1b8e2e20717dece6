package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"perps-arcade-backend/internal/config"
	"perps-arcade-backend/internal/models"
	"perps-arcade-backend/pkg/logger"
)

// RedisService wraps the one shared mutable resource in the system.
// Everything is stored as JSON blobs; there is no cross-key
// transactionality, so concurrent read-modify-write sequences against
// the same key can lose updates (accepted, see DESIGN.md).
type RedisService struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisService(cfg *config.Config) (*RedisService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %v", err)
	}

	return &RedisService{client: client, ctx: ctx}, nil
}

func (s *RedisService) Close() error {
	return s.client.Close()
}

// GetCached reads a JSON value into dest. A missing key, a read error
// and an unparseable value all count as a miss; cache trouble never
// surfaces to callers.
func (s *RedisService) GetCached(key string, dest interface{}) bool {
	data, err := s.client.Get(s.ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("cache read failed: ", err)
		}
		return false
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		logger.Warn("cache value unparseable, treating as miss: ", err)
		return false
	}

	return true
}

// SetCache stores a JSON value with the given TTL. ttl 0 means no
// expiry (persistent records). Writes are best-effort; failures are
// logged, never returned.
func (s *RedisService) SetCache(key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.Warn("cache marshal failed: ", err)
		return
	}

	if err := s.client.Set(s.ctx, key, data, ttl).Err(); err != nil {
		logger.Warn("cache write failed: ", err)
	}
}

type RateLimitResult struct {
	Allowed   bool `json:"allowed"`
	Remaining int  `json:"remaining"`
}

// CheckRateLimit counts requests per identifier in fixed wall-clock
// windows (floor(now/window)). A rejected request does not increment
// the counter. Window buckets expire after twice the window, and a
// caller can get up to 2x the limit across a window boundary; that
// burst is the accepted cost of the fixed-window scheme.
func (s *RedisService) CheckRateLimit(identifier string, maxRequests int, window time.Duration) (RateLimitResult, error) {
	windowIdx := time.Now().Unix() / int64(window.Seconds())
	key := fmt.Sprintf(KeyRateLimit, identifier, windowIdx)

	count, err := s.client.Get(s.ctx, key).Int()
	if err != nil && err != redis.Nil {
		return RateLimitResult{}, fmt.Errorf("rate limit read failed: %v", err)
	}

	if count >= maxRequests {
		return RateLimitResult{Allowed: false, Remaining: 0}, nil
	}

	if err := s.client.Incr(s.ctx, key).Err(); err != nil {
		return RateLimitResult{}, fmt.Errorf("rate limit increment failed: %v", err)
	}
	if count == 0 {
		s.client.Expire(s.ctx, key, 2*window)
	}

	return RateLimitResult{Allowed: true, Remaining: maxRequests - count - 1}, nil
}

// GetWallet fetches a demo wallet, creating it with the starting
// balance on first sight.
func (s *RedisService) GetWallet(address string) (*models.Wallet, error) {
	key := fmt.Sprintf(KeyWallet, address)

	data, err := s.client.Get(s.ctx, key).Result()
	if err == redis.Nil {
		wallet := &models.Wallet{
			Address:   address,
			Balance:   models.StartingBalance,
			CreatedAt: time.Now().UnixMilli(),
		}
		if err := s.SaveWallet(wallet); err != nil {
			return nil, fmt.Errorf("failed to create wallet: %v", err)
		}
		return wallet, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %v", err)
	}

	var wallet models.Wallet
	if err := json.Unmarshal([]byte(data), &wallet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet: %v", err)
	}

	return &wallet, nil
}

func (s *RedisService) SaveWallet(wallet *models.Wallet) error {
	key := fmt.Sprintf(KeyWallet, wallet.Address)

	data, err := json.Marshal(wallet)
	if err != nil {
		return fmt.Errorf("failed to marshal wallet: %v", err)
	}

	return s.client.Set(s.ctx, key, data, 0).Err()
}

var creditWalletScript = redis.NewScript(`
	local key = KEYS[1]
	local amount = tonumber(ARGV[1])

	local data = redis.call("GET", key)
	if not data then
		return redis.error_reply("wallet not found")
	end

	local wallet = cjson.decode(data)

	wallet.balance = wallet.balance + amount
	if amount > 0 then
		wallet.total_won = wallet.total_won + amount
	end

	local updated = cjson.encode(wallet)
	redis.call("SET", key, updated)

	return "OK"
`)

// CreditWallet atomically adds amount to a wallet balance. Used for
// the creator side of a settlement, where the caller holds no lock on
// the creator's wallet.
func (s *RedisService) CreditWallet(address string, amount float64) error {
	key := fmt.Sprintf(KeyWallet, address)
	return creditWalletScript.Run(s.ctx, s.client, []string{key}, amount).Err()
}

func (s *RedisService) DeleteWallet(address string) error {
	key := fmt.Sprintf(KeyWallet, address)
	return s.client.Del(s.ctx, key).Err()
}

// Affiliate records and the referral-code secondary index. Both are
// persistent (no TTL).

func (s *RedisService) GetAffiliate(wallet string) (*models.AffiliateRecord, error) {
	key := fmt.Sprintf(KeyAffiliate, wallet)

	data, err := s.client.Get(s.ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get affiliate record: %v", err)
	}

	var rec models.AffiliateRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal affiliate record: %v", err)
	}

	return &rec, nil
}

func (s *RedisService) SaveAffiliate(rec *models.AffiliateRecord) error {
	key := fmt.Sprintf(KeyAffiliate, rec.WalletAddress)

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal affiliate record: %v", err)
	}

	return s.client.Set(s.ctx, key, data, 0).Err()
}

// SaveAffiliateWithIndex writes the record and its referral-code
// index in one pipeline, so a registered wallet always has a
// resolvable code.
func (s *RedisService) SaveAffiliateWithIndex(rec *models.AffiliateRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal affiliate record: %v", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(s.ctx, fmt.Sprintf(KeyAffiliate, rec.WalletAddress), data, 0)
	pipe.Set(s.ctx, fmt.Sprintf(KeyReferralCode, rec.ReferralCode), rec.WalletAddress, 0)

	if _, err := pipe.Exec(s.ctx); err != nil {
		return fmt.Errorf("failed to save affiliate record: %v", err)
	}
	return nil
}

func (s *RedisService) SaveReferralCode(code, wallet string) error {
	key := fmt.Sprintf(KeyReferralCode, code)
	return s.client.Set(s.ctx, key, wallet, 0).Err()
}

// ResolveReferralCode returns the wallet behind a referral code, or ""
// when the code is unknown.
func (s *RedisService) ResolveReferralCode(code string) (string, error) {
	key := fmt.Sprintf(KeyReferralCode, code)

	wallet, err := s.client.Get(s.ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve referral code: %v", err)
	}

	return wallet, nil
}

// UpdateLeaderboard keeps the earnings ZSET in step with a referrer's
// cumulative commissions.
func (s *RedisService) UpdateLeaderboard(wallet string, totalEarnings float64) error {
	return s.client.ZAdd(s.ctx, KeyAffiliateBoard, redis.Z{
		Score:  totalEarnings,
		Member: wallet,
	}).Err()
}

// TopAffiliates returns up to limit wallets ordered by earnings,
// highest first.
func (s *RedisService) TopAffiliates(limit int64) ([]string, error) {
	wallets, err := s.client.ZRevRange(s.ctx, KeyAffiliateBoard, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %v", err)
	}
	return wallets, nil
}

func (s *RedisService) DeleteAffiliate(wallet, code string) error {
	s.client.ZRem(s.ctx, KeyAffiliateBoard, wallet)
	s.client.Del(s.ctx, fmt.Sprintf(KeyReferralCode, code))
	return s.client.Del(s.ctx, fmt.Sprintf(KeyAffiliate, wallet)).Err()
}

func (s *RedisService) ClearRateLimit(identifier string, window time.Duration) error {
	windowIdx := time.Now().Unix() / int64(window.Seconds())
	key := fmt.Sprintf(KeyRateLimit, identifier, windowIdx)
	return s.client.Del(s.ctx, key).Err()
}

func (s *RedisService) DeleteKey(key string) error {
	return s.client.Del(s.ctx, key).Err()
}
