package models

// Source values tag where a payload came from; fallback data is
// structurally identical to upstream data.
const (
	SourceClaude   = "claude"
	SourceFallback = "fallback"
)

type Sentiment struct {
	Symbol      string `json:"symbol"`
	Score       int    `json:"score"` // -100 (max fear) .. 100 (max greed)
	Mood        string `json:"mood"`
	Confidence  int    `json:"confidence"`
	BullishPct  int    `json:"bullish_pct"`
	BearishPct  int    `json:"bearish_pct"`
	Summary     string `json:"summary"`
	Source      string `json:"source"`
	GeneratedAt int64  `json:"generated_at"`
}

// Reality is one projected price scenario.
type Reality struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Probability int     `json:"probability"`
	TargetPrice float64 `json:"target_price"`
	Timeframe   string  `json:"timeframe"`
}

type Realities struct {
	Symbol      string    `json:"symbol"`
	Scenarios   []Reality `json:"scenarios"`
	Source      string    `json:"source"`
	GeneratedAt int64     `json:"generated_at"`
}

type Hashtag struct {
	Tag       string `json:"tag"`
	Mentions  int    `json:"mentions"`
	Sentiment string `json:"sentiment"`
}

type Hashtags struct {
	Symbol      string    `json:"symbol"`
	Tags        []Hashtag `json:"tags"`
	Source      string    `json:"source"`
	GeneratedAt int64     `json:"generated_at"`
}
