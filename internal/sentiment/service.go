package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"perps-arcade-backend/internal/models"
	"perps-arcade-backend/internal/services"
	"perps-arcade-backend/pkg/logger"
)

// Service is the read-through pipeline behind the sentiment routes:
// cache lookup, then upstream, then the deterministic fallback. It
// never returns an error; every path ends in a structurally valid
// payload.
type Service struct {
	redis  *services.RedisService
	client *Client
}

func NewService(redis *services.RedisService, client *Client) *Service {
	return &Service{redis: redis, client: client}
}

func (s *Service) Sentiment(ctx context.Context, symbol string) *models.Sentiment {
	key := fmt.Sprintf(services.KeyCacheSentiment, symbol)

	var cached models.Sentiment
	if s.redis.GetCached(key, &cached) {
		return &cached
	}

	result := s.sentimentFromUpstream(ctx, symbol)
	if result == nil {
		result = FallbackSentiment(symbol)
	}

	s.redis.SetCache(key, result, services.TTLSentiment)
	return result
}

func (s *Service) sentimentFromUpstream(ctx context.Context, symbol string) *models.Sentiment {
	if !s.client.Available() {
		return nil
	}

	prompt := fmt.Sprintf(`Rate current trader sentiment for the %s perpetual market.
Respond with only a JSON object: {"score": <-100..100>, "mood": "<one word>", "confidence": <0..100>, "bullish_pct": <0..100>, "bearish_pct": <0..100>, "summary": "<one sentence>"}`, symbol)

	text, err := s.client.Generate(ctx, prompt)
	if err != nil {
		logger.Warn("sentiment upstream failed, using fallback: ", err)
		return nil
	}

	var parsed models.Sentiment
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &parsed); err != nil {
		logger.Warn("sentiment upstream unparseable, using fallback: ", err)
		return nil
	}
	if parsed.Score < -100 || parsed.Score > 100 || parsed.Mood == "" {
		logger.Warn("sentiment upstream malformed, using fallback")
		return nil
	}

	parsed.Symbol = symbol
	parsed.Source = models.SourceClaude
	parsed.GeneratedAt = time.Now().UnixMilli()
	return &parsed
}

func (s *Service) Realities(ctx context.Context, symbol string, price float64) *models.Realities {
	key := fmt.Sprintf(services.KeyCacheRealities, symbol, price)

	var cached models.Realities
	if s.redis.GetCached(key, &cached) {
		return &cached
	}

	result := s.realitiesFromUpstream(ctx, symbol, price)
	if result == nil {
		result = FallbackRealities(symbol, price)
	}

	s.redis.SetCache(key, result, services.TTLRealities)
	return result
}

func (s *Service) realitiesFromUpstream(ctx context.Context, symbol string, price float64) *models.Realities {
	if !s.client.Available() {
		return nil
	}

	prompt := fmt.Sprintf(`Project exactly 4 price scenarios for %s currently trading at %.2f.
Respond with only a JSON array of 4 objects: [{"name": "...", "description": "...", "probability": <0..100>, "target_price": <number>, "timeframe": "..."}]. Probabilities must sum to 100.`, symbol, price)

	text, err := s.client.Generate(ctx, prompt)
	if err != nil {
		logger.Warn("realities upstream failed, using fallback: ", err)
		return nil
	}

	var scenarios []models.Reality
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &scenarios); err != nil {
		logger.Warn("realities upstream unparseable, using fallback: ", err)
		return nil
	}
	if len(scenarios) != 4 {
		logger.Warn("realities upstream returned ", len(scenarios), " scenarios, using fallback")
		return nil
	}

	return &models.Realities{
		Symbol:      symbol,
		Scenarios:   scenarios,
		Source:      models.SourceClaude,
		GeneratedAt: time.Now().UnixMilli(),
	}
}

func (s *Service) Hashtags(ctx context.Context, symbol string) *models.Hashtags {
	key := fmt.Sprintf(services.KeyCacheHashtags, symbol)

	var cached models.Hashtags
	if s.redis.GetCached(key, &cached) {
		return &cached
	}

	result := s.hashtagsFromUpstream(ctx, symbol)
	if result == nil {
		result = FallbackHashtags(symbol)
	}

	s.redis.SetCache(key, result, services.TTLHashtags)
	return result
}

func (s *Service) hashtagsFromUpstream(ctx context.Context, symbol string) *models.Hashtags {
	if !s.client.Available() {
		return nil
	}

	prompt := fmt.Sprintf(`List 5-7 hashtags currently trending around %s trading.
Respond with only a JSON array: [{"tag": "#...", "mentions": <number>, "sentiment": "bullish|bearish|mixed"}]`, symbol)

	text, err := s.client.Generate(ctx, prompt)
	if err != nil {
		logger.Warn("hashtags upstream failed, using fallback: ", err)
		return nil
	}

	var tags []models.Hashtag
	if err := json.Unmarshal([]byte(ExtractJSON(text)), &tags); err != nil {
		logger.Warn("hashtags upstream unparseable, using fallback: ", err)
		return nil
	}
	if len(tags) == 0 {
		logger.Warn("hashtags upstream returned nothing, using fallback")
		return nil
	}

	return &models.Hashtags{
		Symbol:      symbol,
		Tags:        tags,
		Source:      models.SourceClaude,
		GeneratedAt: time.Now().UnixMilli(),
	}
}
