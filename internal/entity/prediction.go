package entity

import (
	"math"
	"time"
)

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

type Recommendation string

const (
	RecommendationBuy  Recommendation = "buy"
	RecommendationSell Recommendation = "sell"
	RecommendationHold Recommendation = "hold"
)

// Prediction is a price forecast for one symbol over a free-text timeframe.
// Confidence is always a fraction in [0, 1].
type Prediction struct {
	Symbol         string         `json:"symbol"`
	CurrentPrice   float64        `json:"currentPrice"`
	PredictedPrice float64        `json:"predictedPrice"`
	Confidence     float64        `json:"confidence"`
	Timeframe      string         `json:"timeframe"`
	Reasoning      string         `json:"reasoning"`
	RiskLevel      RiskLevel      `json:"riskLevel,omitempty"`
	Recommendation Recommendation `json:"recommendation"`
	Source         string         `json:"source,omitempty"`
	GeneratedAt    time.Time      `json:"generatedAt"`
}

// Valid reports whether the prediction is structurally complete.
func (p *Prediction) Valid() bool {
	return p != nil && p.Symbol != "" && p.CurrentPrice > 0 && p.PredictedPrice > 0
}

// ConfidencePercent returns the confidence as a whole percentage.
func (p *Prediction) ConfidencePercent() int {
	return int(math.Round(p.Confidence * 100))
}

// NormalizeConfidence converts a confidence reported either as a fraction or
// as a percentage into a fraction clamped to [0, 1].
func NormalizeConfidence(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		v = v / 100
	}
	if v > 1 {
		return 1
	}
	return v
}

// RiskLevelFromConfidence derives the risk level from a whole-percent confidence:
// above 80 is low, above 65 is medium, anything else is high.
func RiskLevelFromConfidence(percent int) RiskLevel {
	switch {
	case percent > 80:
		return RiskLow
	case percent > 65:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// RecommendationFor derives buy/sell/hold from the predicted move:
// more than +2% is buy, more than -2% down is sell, otherwise hold.
func RecommendationFor(currentPrice, predictedPrice float64) Recommendation {
	switch {
	case predictedPrice > currentPrice*1.02:
		return RecommendationBuy
	case predictedPrice < currentPrice*0.98:
		return RecommendationSell
	default:
		return RecommendationHold
	}
}
