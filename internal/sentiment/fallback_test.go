package sentiment

import (
	"reflect"
	"testing"

	"perps-arcade-backend/internal/models"
)

func TestFallbackSentimentStableWithinHour(t *testing.T) {
	a := fallbackSentiment("SOL", 490000)
	b := fallbackSentiment("SOL", 490000)

	if !reflect.DeepEqual(a, b) {
		t.Errorf("same symbol and hour must be identical:\n%+v\n%+v", a, b)
	}
}

func TestFallbackSentimentVariesAcrossInputs(t *testing.T) {
	base := fallbackSentiment("SOL", 490000)

	otherSymbol := fallbackSentiment("BTC", 490000)
	if reflect.DeepEqual(base, otherSymbol) {
		t.Error("different symbols should not collide")
	}

	// a different hour bucket may legitimately repeat a score, so
	// check a handful of buckets for at least one difference
	varied := false
	for bucket := int64(490001); bucket < 490010; bucket++ {
		if fallbackSentiment("SOL", bucket).Score != base.Score {
			varied = true
			break
		}
	}
	if !varied {
		t.Error("sentiment should vary across hour buckets")
	}
}

func TestFallbackSentimentShape(t *testing.T) {
	for _, symbol := range []string{"SOL", "BTC", "ETH", "BONK"} {
		for bucket := int64(100); bucket < 120; bucket++ {
			s := fallbackSentiment(symbol, bucket)

			if s.Score < -100 || s.Score > 100 {
				t.Errorf("score %d out of range", s.Score)
			}
			if s.Mood == "" || s.Summary == "" {
				t.Errorf("mood/summary must be populated: %+v", s)
			}
			if s.Confidence < 0 || s.Confidence > 100 {
				t.Errorf("confidence %d out of range", s.Confidence)
			}
			if s.BullishPct+s.BearishPct != 100 {
				t.Errorf("bullish %d + bearish %d should be 100", s.BullishPct, s.BearishPct)
			}
			if s.Source != models.SourceFallback {
				t.Errorf("source = %q, want fallback", s.Source)
			}
		}
	}
}

func TestFallbackRealities(t *testing.T) {
	r := fallbackRealities("SOL", 180.0, 490000)

	if len(r.Scenarios) != 4 {
		t.Fatalf("expected 4 scenarios, got %d", len(r.Scenarios))
	}

	sum := 0
	for _, sc := range r.Scenarios {
		sum += sc.Probability
		if sc.TargetPrice <= 0 {
			t.Errorf("scenario %q has non-positive target price %v", sc.Name, sc.TargetPrice)
		}
		if sc.Name == "" || sc.Description == "" || sc.Timeframe == "" {
			t.Errorf("scenario fields must be populated: %+v", sc)
		}
	}
	if sum != 100 {
		t.Errorf("probabilities sum to %d, want 100", sum)
	}

	if !reflect.DeepEqual(r, fallbackRealities("SOL", 180.0, 490000)) {
		t.Error("realities must be stable within an hour bucket")
	}
}

func TestFallbackHashtags(t *testing.T) {
	h := fallbackHashtags("SOL", 490000)

	if len(h.Tags) < 5 {
		t.Fatalf("expected at least 5 tags, got %d", len(h.Tags))
	}

	seen := make(map[string]bool)
	for _, tag := range h.Tags {
		if tag.Tag == "" || tag.Tag[0] != '#' {
			t.Errorf("tag should start with #: %q", tag.Tag)
		}
		if seen[tag.Tag] {
			t.Errorf("duplicate tag %q", tag.Tag)
		}
		seen[tag.Tag] = true
		if tag.Mentions <= 0 {
			t.Errorf("tag %q has non-positive mentions", tag.Tag)
		}
	}

	if !reflect.DeepEqual(h, fallbackHashtags("SOL", 490000)) {
		t.Error("hashtags must be stable within an hour bucket")
	}
}
