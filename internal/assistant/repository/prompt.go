package repository

import (
	"fmt"
	"strings"

	"golang-stock-assistant/internal/entity"
)

// BuildPredictionPrompt asks for a price forecast over timeframe as a JSON object.
func BuildPredictionPrompt(quote *entity.StockQuote, timeframe string) string {
	promptTemplate := `You are an equity analyst. Predict the price of %s over the next %s.

Current market data:
- Price: %.4f %s
- Change: %.4f (%.2f%%)
- Day range: %.4f - %.4f
- Open: %.4f
- Previous close: %.4f
- Volume: %d

Respond ONLY with a JSON object in this format:

{
  "predicted_price": {number},
  "confidence": {0.0 - 1.0},
  "reasoning": "{one short paragraph}",
  "risk_level": "low | medium | high",
  "recommendation": "buy | sell | hold"
}`

	return fmt.Sprintf(promptTemplate,
		quote.Symbol, timeframe,
		quote.Price, quote.Currency,
		quote.Change, quote.ChangePercent,
		quote.Low, quote.High,
		quote.Open,
		quote.PreviousClose,
		quote.Volume,
	)
}

// BuildTechnicalAnalysisPrompt asks for commentary on an indicator snapshot.
func BuildTechnicalAnalysisPrompt(s *entity.TechnicalSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a technical analyst. Interpret these daily indicators for %s.\n\n", s.Symbol)
	fmt.Fprintf(&b, "- Price: %.4f\n", s.CurrentPrice)
	fmt.Fprintf(&b, "- RSI(14): %.2f\n", s.RSI)
	fmt.Fprintf(&b, "- MACD: %.4f, signal %.4f, histogram %.4f\n", s.MACD.MACD, s.MACD.Signal, s.MACD.Histogram)
	fmt.Fprintf(&b, "- SMA20 %.4f, SMA50 %.4f, SMA200 %.4f\n", s.MovingAverages.SMA20, s.MovingAverages.SMA50, s.MovingAverages.SMA200)
	fmt.Fprintf(&b, "- Support %.4f, resistance %.4f\n", s.Support, s.Resistance)
	fmt.Fprintf(&b, "- Price trend: %s\n\n", s.Trend)
	b.WriteString(`Respond ONLY with a JSON object in this format:

{
  "sentiment": "bullish | bearish | neutral",
  "key_factors": ["{short factor}"],
  "market_outlook": "{one or two sentences}",
  "risk_assessment": "{one or two sentences}",
  "recommendation": "{one sentence}"
}`)
	return b.String()
}
