package affiliate_test

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"perps-arcade-backend/internal/affiliate"
	"perps-arcade-backend/internal/config"
	"perps-arcade-backend/internal/services"
	"perps-arcade-backend/pkg/logger"
)

func setup(t *testing.T) (*affiliate.Service, *services.RedisService) {
	logger.Init("error", "text")

	cfg := &config.Config{RedisURL: "localhost:6379"}
	redis, err := services.NewRedisService(cfg)
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	return affiliate.NewService(redis), redis
}

func testWallet(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func TestReferralCodeDeterministic(t *testing.T) {
	wallet := "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"

	a := affiliate.ReferralCode(wallet)
	b := affiliate.ReferralCode(wallet)
	if a == "" || a != b {
		t.Errorf("referral code must be stable, got %q then %q", a, b)
	}

	if affiliate.ReferralCode("some-other-wallet") == a {
		t.Error("different wallets should get different codes")
	}
}

func TestRegisterIdempotent(t *testing.T) {
	svc, redis := setup(t)
	defer redis.Close()

	wallet := testWallet("reg")
	defer redis.DeleteAffiliate(wallet, affiliate.ReferralCode(wallet))

	first, created, err := svc.Register(wallet, "")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if !created {
		t.Error("first registration should report created")
	}
	if first.ReferralCode != affiliate.ReferralCode(wallet) {
		t.Errorf("record code %q does not match derived code", first.ReferralCode)
	}

	second, created, err := svc.Register(wallet, "")
	if err != nil {
		t.Fatalf("second Register failed: %v", err)
	}
	if created {
		t.Error("second registration must not create a new record")
	}
	if second.CreatedAt != first.CreatedAt || second.ReferralCode != first.ReferralCode {
		t.Errorf("second registration returned a different record: %+v vs %+v", first, second)
	}
}

func TestRegisterWithReferrer(t *testing.T) {
	svc, redis := setup(t)
	defer redis.Close()

	referrer := testWallet("referrer")
	referred := testWallet("referred")
	defer redis.DeleteAffiliate(referrer, affiliate.ReferralCode(referrer))
	defer redis.DeleteAffiliate(referred, affiliate.ReferralCode(referred))

	refRec, _, err := svc.Register(referrer, "")
	if err != nil {
		t.Fatalf("referrer registration failed: %v", err)
	}

	rec, _, err := svc.Register(referred, refRec.ReferralCode)
	if err != nil {
		t.Fatalf("referred registration failed: %v", err)
	}
	if rec.ReferredBy != referrer {
		t.Errorf("referred_by = %q, want %q", rec.ReferredBy, referrer)
	}

	updated, err := svc.Stats(referrer)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if updated.Stats.TotalReferrals != 1 || updated.Stats.ActiveReferrals != 1 {
		t.Errorf("referrer stats not incremented: %+v", updated.Stats)
	}
	if updated.Stats.ConversionRate != 100 {
		t.Errorf("conversion rate = %v, want 100", updated.Stats.ConversionRate)
	}
}

func TestSelfReferralDropped(t *testing.T) {
	svc, redis := setup(t)
	defer redis.Close()

	wallet := testWallet("selfref")
	defer redis.DeleteAffiliate(wallet, affiliate.ReferralCode(wallet))

	rec, _, err := svc.Register(wallet, affiliate.ReferralCode(wallet))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if rec.ReferredBy != "" {
		t.Errorf("self-referral should be dropped, got referred_by=%q", rec.ReferredBy)
	}
}

func TestStatsUnregistered(t *testing.T) {
	svc, redis := setup(t)
	defer redis.Close()

	_, err := svc.Stats(testWallet("ghost"))
	if !errors.Is(err, affiliate.ErrNotRegistered) {
		t.Fatalf("expected ErrNotRegistered, got %v", err)
	}
}

func TestTrackTrade(t *testing.T) {
	svc, redis := setup(t)
	defer redis.Close()

	referrer := testWallet("tt-referrer")
	trader := testWallet("tt-trader")
	defer redis.DeleteAffiliate(referrer, affiliate.ReferralCode(referrer))
	defer redis.DeleteAffiliate(trader, affiliate.ReferralCode(trader))

	if _, err := svc.TrackTrade(testWallet("tt-ghost"), 100, 1); !errors.Is(err, affiliate.ErrNotRegistered) {
		t.Fatalf("unregistered trade should fail with ErrNotRegistered, got %v", err)
	}

	refRec, _, _ := svc.Register(referrer, "")
	if _, _, err := svc.Register(trader, refRec.ReferralCode); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	stats, err := svc.TrackTrade(trader, 5000, 10)
	if err != nil {
		t.Fatalf("TrackTrade failed: %v", err)
	}
	if stats.LifetimeVolume != 5000 || stats.Trades != 1 {
		t.Errorf("trader stats = %+v", stats)
	}

	updated, _ := svc.Stats(referrer)
	wantCommission := 10 * affiliate.CommissionRate
	if math.Abs(updated.Stats.TotalEarnings-wantCommission) > 1e-9 {
		t.Errorf("referrer earnings = %v, want %v", updated.Stats.TotalEarnings, wantCommission)
	}
	if math.Abs(updated.Stats.TotalCommissions-wantCommission) > 1e-9 {
		t.Errorf("referrer commissions = %v, want %v", updated.Stats.TotalCommissions, wantCommission)
	}
}

func TestLeaderboard(t *testing.T) {
	svc, redis := setup(t)
	defer redis.Close()

	referrer := testWallet("lb-referrer")
	trader := testWallet("lb-trader")
	defer redis.DeleteAffiliate(referrer, affiliate.ReferralCode(referrer))
	defer redis.DeleteAffiliate(trader, affiliate.ReferralCode(trader))
	defer redis.DeleteKey(services.KeyCacheLeaderboard)

	refRec, _, _ := svc.Register(referrer, "")
	svc.Register(trader, refRec.ReferralCode)
	if _, err := svc.TrackTrade(trader, 10000, 20); err != nil {
		t.Fatalf("TrackTrade failed: %v", err)
	}

	// bypass the cache left over from other tests
	redis.DeleteKey(services.KeyCacheLeaderboard)

	entries, err := svc.Leaderboard()
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}

	found := false
	for _, e := range entries {
		if e.WalletAddress == referrer {
			found = true
			if e.TotalEarnings <= 0 {
				t.Errorf("leaderboard entry should carry earnings: %+v", e)
			}
		}
	}
	if !found {
		t.Errorf("referrer %s missing from leaderboard", referrer)
	}
}
