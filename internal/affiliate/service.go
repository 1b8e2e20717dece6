// Package affiliate keeps the per-wallet referral ledger: who referred
// whom, trade volume, and commission credited to referrers.
package affiliate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"perps-arcade-backend/internal/fair"
	"perps-arcade-backend/internal/models"
	"perps-arcade-backend/internal/services"
	"perps-arcade-backend/pkg/logger"
)

// CommissionRate is the referrer's cut of a referred trader's fees.
const CommissionRate = 0.15

const leaderboardSize = 10

var ErrNotRegistered = errors.New("wallet not registered")

type Service struct {
	redis *services.RedisService
}

func NewService(redis *services.RedisService) *Service {
	return &Service{redis: redis}
}

// ReferralCode derives a wallet's code from the address itself, so it
// is stable across registrations and never stored speculatively.
func ReferralCode(wallet string) string {
	code := strconv.FormatUint(uint64(uint32(fair.HashSeed(wallet))), 36)
	return strings.ToUpper(code)
}

// Register creates the affiliate record for a wallet, or returns the
// existing one; registering twice never creates a second record or
// code mapping. referredBy may be a referral code or a registered
// wallet address; unknown or self referrals are dropped silently.
func (s *Service) Register(walletAddress, referredBy string) (*models.AffiliateRecord, bool, error) {
	existing, err := s.redis.GetAffiliate(walletAddress)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	referrer, err := s.resolveReferrer(walletAddress, referredBy)
	if err != nil {
		return nil, false, err
	}

	rec := &models.AffiliateRecord{
		WalletAddress: walletAddress,
		ReferralCode:  ReferralCode(walletAddress),
		ReferredBy:    referrer,
		CreatedAt:     time.Now().UnixMilli(),
	}

	if err := s.redis.SaveAffiliateWithIndex(rec); err != nil {
		return nil, false, err
	}

	if referrer != "" {
		if err := s.creditReferral(referrer); err != nil {
			// the new record is already saved; a missed referral count
			// is not worth failing the registration over
			logger.Warn("failed to credit referrer ", referrer, ": ", err)
		}
	}

	return rec, true, nil
}

func (s *Service) resolveReferrer(walletAddress, referredBy string) (string, error) {
	if referredBy == "" {
		return "", nil
	}

	wallet, err := s.redis.ResolveReferralCode(strings.ToUpper(referredBy))
	if err != nil {
		return "", err
	}

	if wallet == "" {
		// not a known code; accept a registered wallet address too
		rec, err := s.redis.GetAffiliate(referredBy)
		if err != nil {
			return "", err
		}
		if rec != nil {
			wallet = rec.WalletAddress
		}
	}

	if wallet == walletAddress {
		return "", nil
	}
	return wallet, nil
}

func (s *Service) creditReferral(referrer string) error {
	rec, err := s.redis.GetAffiliate(referrer)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("referrer %s has no record", referrer)
	}

	rec.Stats.TotalReferrals++
	rec.Stats.ActiveReferrals++
	rec.Stats.ConversionRate = conversionRate(rec.Stats)

	if err := s.redis.SaveAffiliate(rec); err != nil {
		return err
	}
	return s.redis.UpdateLeaderboard(rec.WalletAddress, rec.Stats.TotalEarnings)
}

// Stats returns a registered wallet's record.
func (s *Service) Stats(walletAddress string) (*models.AffiliateRecord, error) {
	rec, err := s.redis.GetAffiliate(walletAddress)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotRegistered
	}
	return rec, nil
}

// TrackTrade records a referred trader's activity and credits the
// referrer's commission off the trade fee. The two writes are not
// transactional; concurrent trades for the same wallet can lose an
// update (accepted, see DESIGN.md).
func (s *Service) TrackTrade(walletAddress string, volume, fee float64) (*models.AffiliateStats, error) {
	rec, err := s.redis.GetAffiliate(walletAddress)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotRegistered
	}

	rec.Stats.LifetimeVolume += volume
	rec.Stats.Trades++

	if err := s.redis.SaveAffiliate(rec); err != nil {
		return nil, err
	}

	if rec.ReferredBy != "" {
		if err := s.creditCommission(rec.ReferredBy, fee); err != nil {
			logger.Warn("failed to credit commission to ", rec.ReferredBy, ": ", err)
		}
	}

	return &rec.Stats, nil
}

func (s *Service) creditCommission(referrer string, fee float64) error {
	rec, err := s.redis.GetAffiliate(referrer)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("referrer %s has no record", referrer)
	}

	commission := fee * CommissionRate
	rec.Stats.TotalEarnings += commission
	rec.Stats.TotalCommissions += commission
	rec.Stats.EarningsThisMonth += commission
	rec.Stats.ConversionRate = conversionRate(rec.Stats)

	if err := s.redis.SaveAffiliate(rec); err != nil {
		return err
	}
	return s.redis.UpdateLeaderboard(rec.WalletAddress, rec.Stats.TotalEarnings)
}

// Leaderboard returns the top referrers by cumulative earnings,
// cached briefly so the public route stays cheap.
func (s *Service) Leaderboard() ([]models.LeaderboardEntry, error) {
	var cached []models.LeaderboardEntry
	if s.redis.GetCached(services.KeyCacheLeaderboard, &cached) {
		return cached, nil
	}

	wallets, err := s.redis.TopAffiliates(leaderboardSize)
	if err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(wallets))
	for i, wallet := range wallets {
		rec, err := s.redis.GetAffiliate(wallet)
		if err != nil || rec == nil {
			continue
		}
		entries = append(entries, models.LeaderboardEntry{
			Rank:           i + 1,
			WalletAddress:  rec.WalletAddress,
			ReferralCode:   rec.ReferralCode,
			TotalReferrals: rec.Stats.TotalReferrals,
			TotalEarnings:  rec.Stats.TotalEarnings,
		})
	}

	s.redis.SetCache(services.KeyCacheLeaderboard, entries, services.TTLLeaderboardCache)
	return entries, nil
}

func conversionRate(stats models.AffiliateStats) float64 {
	if stats.TotalReferrals == 0 {
		return 0
	}
	return float64(stats.ActiveReferrals) / float64(stats.TotalReferrals) * 100
}
