// Package sentiment serves market-mood data for the dashboard: an
// upstream text-generation call when available, a deterministic local
// generator when not. The fallback is seeded per (symbol, kind, hour),
// so within one hour it returns identical data on every call and the
// cache layer sees it as stable.
package sentiment

import (
	"fmt"
	"time"

	"perps-arcade-backend/internal/fair"
	"perps-arcade-backend/internal/models"
)

// lcg is a linear-congruential generator (Numerical Recipes
// constants) seeded from a string hash. Cheap, deterministic, and
// plenty for placeholder data.
type lcg struct {
	state uint32
}

func newLCG(seed string) *lcg {
	return &lcg{state: uint32(fair.HashSeed(seed))}
}

func (r *lcg) next() float64 {
	r.state = r.state*1664525 + 1013904223
	return float64(r.state) / (1 << 32)
}

func (r *lcg) intn(n int) int {
	return int(r.next() * float64(n))
}

func (r *lcg) pick(options []string) string {
	return options[r.intn(len(options))]
}

func hourBucket() int64 {
	return time.Now().Unix() / 3600
}

func fallbackSeed(symbol, kind string, bucket int64) string {
	return fmt.Sprintf("%s:%s:%d", symbol, kind, bucket)
}

var moodsBearish = []string{"capitulating", "fearful", "jittery"}
var moodsBullish = []string{"greedy", "euphoric", "fomo-ing"}
var moodsNeutral = []string{"undecided", "crabbing", "bored"}

var summaryTemplates = []string{
	"Traders are split on %s while funding rates drift.",
	"%s chatter is picking up across the usual channels.",
	"Volume on %s perps is thin; conviction is thinner.",
	"Whales are repositioning on %s and everyone has a theory.",
	"%s holders are watching the same chart and seeing different things.",
}

// FallbackSentiment produces a structurally valid sentiment payload
// without calling upstream. Stable within the current hour.
func FallbackSentiment(symbol string) *models.Sentiment {
	return fallbackSentiment(symbol, hourBucket())
}

func fallbackSentiment(symbol string, bucket int64) *models.Sentiment {
	rng := newLCG(fallbackSeed(symbol, "sentiment", bucket))

	score := rng.intn(201) - 100

	var mood string
	switch {
	case score < -25:
		mood = rng.pick(moodsBearish)
	case score > 25:
		mood = rng.pick(moodsBullish)
	default:
		mood = rng.pick(moodsNeutral)
	}

	bullish := 20 + rng.intn(61)

	return &models.Sentiment{
		Symbol:      symbol,
		Score:       score,
		Mood:        mood,
		Confidence:  55 + rng.intn(40),
		BullishPct:  bullish,
		BearishPct:  100 - bullish,
		Summary:     fmt.Sprintf(rng.pick(summaryTemplates), symbol),
		Source:      models.SourceFallback,
		GeneratedAt: bucket * 3600 * 1000,
	}
}

type scenarioShape struct {
	name        string
	description string
	minFactor   float64
	maxFactor   float64
}

var scenarioShapes = []scenarioShape{
	{"Hyper Bull", "Everything goes right at once and the shorts pay for it.", 1.15, 1.60},
	{"Grind Up", "Slow climb on boring volume, the least tweetable outcome.", 1.02, 1.12},
	{"Crab Market", "Price goes nowhere and funding eats everyone alive.", 0.97, 1.03},
	{"Rug Reality", "One bad headline and the bid evaporates.", 0.55, 0.90},
}

var timeframes = []string{"24h", "72h", "1w", "2w"}

// FallbackRealities projects four scenarios off the given price.
// Probabilities always sum to exactly 100.
func FallbackRealities(symbol string, price float64) *models.Realities {
	return fallbackRealities(symbol, price, hourBucket())
}

func fallbackRealities(symbol string, price float64, bucket int64) *models.Realities {
	rng := newLCG(fallbackSeed(symbol, "realities", bucket))

	weights := make([]int, len(scenarioShapes))
	total := 0
	for i := range weights {
		weights[i] = 10 + rng.intn(40)
		total += weights[i]
	}

	scenarios := make([]models.Reality, 0, len(scenarioShapes))
	assigned := 0
	for i, shape := range scenarioShapes {
		prob := weights[i] * 100 / total
		if i == len(scenarioShapes)-1 {
			prob = 100 - assigned
		}
		assigned += prob

		factor := shape.minFactor + rng.next()*(shape.maxFactor-shape.minFactor)
		scenarios = append(scenarios, models.Reality{
			Name:        shape.name,
			Description: shape.description,
			Probability: prob,
			TargetPrice: roundPrice(price * factor),
			Timeframe:   rng.pick(timeframes),
		})
	}

	return &models.Realities{
		Symbol:      symbol,
		Scenarios:   scenarios,
		Source:      models.SourceFallback,
		GeneratedAt: bucket * 3600 * 1000,
	}
}

var hashtagPool = []string{
	"%sArmy", "%sToTheMoon", "Short%s", "%sSeason",
	"WenPump", "FundingFlip", "LiquidationWatch", "PerpsDegen",
	"DiamondHands", "ExitLiquidity",
}

var tagSentiments = []string{"bullish", "bearish", "mixed"}

// FallbackHashtags produces a trending-tags list. Stable within the
// current hour.
func FallbackHashtags(symbol string) *models.Hashtags {
	return fallbackHashtags(symbol, hourBucket())
}

func fallbackHashtags(symbol string, bucket int64) *models.Hashtags {
	rng := newLCG(fallbackSeed(symbol, "hashtags", bucket))

	count := 5 + rng.intn(3)
	used := make(map[int]bool)
	tags := make([]models.Hashtag, 0, count)

	for len(tags) < count {
		idx := rng.intn(len(hashtagPool))
		for used[idx] {
			idx = (idx + 1) % len(hashtagPool)
		}
		used[idx] = true

		name := hashtagPool[idx]
		if containsFormat(name) {
			name = fmt.Sprintf(name, symbol)
		}

		tags = append(tags, models.Hashtag{
			Tag:       "#" + name,
			Mentions:  500 + rng.intn(49500),
			Sentiment: rng.pick(tagSentiments),
		})
	}

	return &models.Hashtags{
		Symbol:      symbol,
		Tags:        tags,
		Source:      models.SourceFallback,
		GeneratedAt: bucket * 3600 * 1000,
	}
}

func containsFormat(s string) bool {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '%' && s[i+1] == 's' {
			return true
		}
	}
	return false
}

func roundPrice(p float64) float64 {
	return float64(int64(p*100+0.5)) / 100
}
