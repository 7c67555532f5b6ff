// Package mock synthesizes plausible market data when no provider answers.
package mock

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"golang-stock-assistant/internal/entity"
)

const (
	SourceName = "mock"

	quotePriceMin      = 100.0
	quotePriceMax      = 300.0
	predictionPriceMin = 100.0
	predictionPriceMax = 600.0
	maxVolume          = 50_000_000

	predictionVolatility = 0.05
	confidenceMinPercent = 65
	confidenceMaxPercent = 95
)

type staticQuote struct {
	price, change, changePercent float64
	volume                       int64
	high, low, open, prevClose   float64
	marketCap, pe                float64
}

var knownQuotes = map[string]staticQuote{
	"AAPL":  {175.43, 2.15, 1.24, 45_234_567, 176.82, 173.21, 174.10, 173.28, 2.75e12, 28.5},
	"GOOGL": {138.21, -0.87, -0.63, 23_456_789, 139.45, 137.80, 139.02, 139.08, 1.74e12, 24.1},
	"MSFT":  {378.85, 4.32, 1.15, 19_876_543, 380.12, 375.40, 375.90, 374.53, 2.81e12, 35.2},
	"TSLA":  {248.50, -5.20, -2.05, 98_765_432, 255.30, 246.10, 253.70, 253.70, 7.9e11, 72.4},
	"AMZN":  {145.86, 1.23, 0.85, 41_234_890, 146.90, 144.20, 144.75, 144.63, 1.51e12, 48.7},
	"NVDA":  {485.09, 12.45, 2.63, 52_345_678, 489.20, 472.10, 473.80, 472.64, 1.2e12, 65.3},
}

var cannedNews = []struct {
	title, source, description string
}{
	{"%s shares move as investors weigh latest earnings outlook", "Reuters", "Analysts are revising estimates after the most recent guidance update."},
	{"Market volatility tests investor confidence in %s", "Bloomberg", "Broader index swings are weighing on sentiment across the sector."},
	{"Analysts update price targets for %s", "CNBC", "Several brokers adjusted their targets following the latest quarterly figures."},
	{"Institutional investors adjust positions in %s", "MarketWatch", "Recent filings show fund managers rebalancing holdings."},
	{"Sector rotation puts %s in focus", "Financial Times", "Capital is shifting between growth and value names as rates expectations change."},
	{"What the latest economic data means for %s", "The Wall Street Journal", "Inflation and employment numbers are shaping the near-term outlook."},
}

// Synthesizer produces randomized but structurally complete entities. It is
// safe for concurrent use.
type Synthesizer struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

// New creates a Synthesizer drawing from src. Pass a fixed source for
// reproducible output.
func New(src rand.Source) *Synthesizer {
	return &Synthesizer{rnd: rand.New(src), now: time.Now}
}

// NewDefault creates a Synthesizer seeded from the clock.
func NewDefault() *Synthesizer {
	return New(rand.NewSource(time.Now().UnixNano()))
}

func (s *Synthesizer) float() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}

func (s *Synthesizer) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

func (s *Synthesizer) between(min, max float64) float64 {
	return min + s.float()*(max-min)
}

// Quote returns the static quote of a well-known ticker or a random quote
// priced between 100 and 300.
func (s *Synthesizer) Quote(symbol string) *entity.StockQuote {
	if q, ok := knownQuotes[symbol]; ok {
		return &entity.StockQuote{
			Symbol:        symbol,
			Price:         q.price,
			Change:        q.change,
			ChangePercent: q.changePercent,
			Volume:        q.volume,
			High:          q.high,
			Low:           q.low,
			Open:          q.open,
			PreviousClose: q.prevClose,
			MarketCap:     &q.marketCap,
			PE:            &q.pe,
			Currency:      "USD",
			Source:        SourceName,
			Timestamp:     s.now(),
		}
	}

	price := round2(s.between(quotePriceMin, quotePriceMax))
	changePercent := round2(s.between(-5, 5))
	prevClose := round2(price / (1 + changePercent/100))
	open := round2(prevClose * s.between(0.99, 1.01))
	return &entity.StockQuote{
		Symbol:        symbol,
		Price:         price,
		Change:        round2(price - prevClose),
		ChangePercent: changePercent,
		Volume:        int64(s.intn(maxVolume)),
		High:          round2(math.Max(price, open) * s.between(1, 1.03)),
		Low:           round2(math.Min(price, open) * s.between(0.97, 1)),
		Open:          open,
		PreviousClose: prevClose,
		Currency:      "USD",
		Source:        SourceName,
		Timestamp:     s.now(),
	}
}

// Prediction returns a forecast within 5% of currentPrice. A non-positive
// currentPrice is replaced by a random price between 100 and 600.
func (s *Synthesizer) Prediction(symbol, timeframe string, currentPrice float64) *entity.Prediction {
	if currentPrice <= 0 {
		currentPrice = s.between(predictionPriceMin, predictionPriceMax)
	}
	currentPrice = round2(currentPrice)
	move := (s.float()*2 - 1) * predictionVolatility
	predicted := round2(currentPrice * (1 + move))
	percent := confidenceMinPercent + s.intn(confidenceMaxPercent-confidenceMinPercent+1)

	return &entity.Prediction{
		Symbol:         symbol,
		CurrentPrice:   currentPrice,
		PredictedPrice: predicted,
		Confidence:     float64(percent) / 100,
		Timeframe:      timeframe,
		Reasoning: fmt.Sprintf("Based on recent price action and volatility, %s is expected to move %+.2f%% over %s.",
			symbol, move*100, timeframe),
		RiskLevel:      entity.RiskLevelFromConfidence(percent),
		Recommendation: entity.RecommendationFor(currentPrice, predicted),
		Source:         SourceName,
		GeneratedAt:    s.now(),
	}
}

// Technical returns indicator readings offset from the quote price. The trend
// follows the quote's change. With a nil quote a random price and change are used.
func (s *Synthesizer) Technical(symbol string, quote *entity.StockQuote) *entity.TechnicalSnapshot {
	var price, change float64
	if quote.Valid() {
		price, change = quote.Price, quote.Change
	} else {
		price = s.between(quotePriceMin, quotePriceMax)
		change = s.between(-5, 5)
	}

	macd := (s.float() - 0.5) * 2
	signal := macd * s.between(0.7, 1.1)
	return &entity.TechnicalSnapshot{
		Symbol:       symbol,
		CurrentPrice: round2(price),
		RSI:          round2(s.between(30, 70)),
		MACD: entity.MACD{
			MACD:      round4(macd),
			Signal:    round4(signal),
			Histogram: round4(macd - signal),
		},
		MovingAverages: entity.MovingAverages{
			SMA20:  round2(price * s.between(0.98, 1.02)),
			SMA50:  round2(price * s.between(0.95, 1.05)),
			SMA200: round2(price * s.between(0.90, 1.10)),
		},
		Support:    round2(price * s.between(0.92, 0.97)),
		Resistance: round2(price * s.between(1.03, 1.08)),
		Trend:      entity.TrendFromChange(change),
		Source:     SourceName,
		Timestamp:  s.now(),
	}
}

// News returns six canned headlines aged from 2h to 12h. An empty symbol
// produces general market headlines.
func (s *Synthesizer) News(symbol string) []entity.NewsItem {
	subject := symbol
	if subject == "" {
		subject = "the market"
	}
	items := make([]entity.NewsItem, 0, len(cannedNews))
	for i, n := range cannedNews {
		items = append(items, entity.NewsItem{
			Title:       fmt.Sprintf(n.title, subject),
			Source:      n.source,
			PublishedAt: fmt.Sprintf("%dh ago", (i+1)*2),
			Description: n.description,
			Sentiment:   "neutral",
		})
	}
	return items
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
