package entity

import "time"

type Trend string

const (
	TrendBullish Trend = "bullish"
	TrendBearish Trend = "bearish"
	TrendNeutral Trend = "neutral"
)

type MACD struct {
	MACD      float64 `json:"macd"`
	Signal    float64 `json:"signal"`
	Histogram float64 `json:"histogram"`
}

type MovingAverages struct {
	SMA20  float64 `json:"sma20"`
	SMA50  float64 `json:"sma50"`
	SMA200 float64 `json:"sma200"`
}

// AICommentary is the free-text analysis an LLM attaches to a snapshot.
type AICommentary struct {
	Sentiment      string   `json:"sentiment"`
	KeyFactors     []string `json:"keyFactors"`
	MarketOutlook  string   `json:"marketOutlook"`
	RiskAssessment string   `json:"riskAssessment"`
	Recommendation string   `json:"recommendation"`
}

// TechnicalSnapshot is a set of indicator readings for one symbol.
type TechnicalSnapshot struct {
	Symbol         string         `json:"symbol"`
	CurrentPrice   float64        `json:"currentPrice"`
	RSI            float64        `json:"rsi"`
	MACD           MACD           `json:"macd"`
	MovingAverages MovingAverages `json:"movingAverages"`
	Support        float64        `json:"support"`
	Resistance     float64        `json:"resistance"`
	Trend          Trend          `json:"trend"`
	AIAnalysis     *AICommentary  `json:"aiAnalysis,omitempty"`
	Source         string         `json:"source,omitempty"`
	Timestamp      time.Time      `json:"timestamp"`
}

// Valid reports whether the snapshot carries indicator data.
func (t *TechnicalSnapshot) Valid() bool {
	return t != nil && t.Symbol != "" && t.RSI >= 0 && t.RSI <= 100 && t.MovingAverages.SMA20 > 0
}

// TrendFromChange labels the trend from the quote's price change, not from the
// indicators: any gain is bullish, a drop below -0.02 is bearish, otherwise neutral.
func TrendFromChange(change float64) Trend {
	switch {
	case change > 0:
		return TrendBullish
	case change < -0.02:
		return TrendBearish
	default:
		return TrendNeutral
	}
}
