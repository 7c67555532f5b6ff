package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang-stock-assistant/internal/entity"
)

var errUpstream = errors.New("upstream down")

type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(call string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

// stubQuoteRepo answers with price for the symbols in only (all symbols when
// only is empty) and fails otherwise.
type stubQuoteRepo struct {
	callLog
	name  string
	price float64
	err   error
	only  map[string]bool
}

func (r *stubQuoteRepo) Name() string { return r.name }

func (r *stubQuoteRepo) GetQuote(_ context.Context, symbol string) (*entity.StockQuote, error) {
	r.add(symbol)
	if r.err != nil {
		return nil, r.err
	}
	if len(r.only) > 0 && !r.only[symbol] {
		return nil, errUpstream
	}
	return &entity.StockQuote{Symbol: symbol, Price: r.price, Change: 1.5, Source: r.name, Timestamp: time.Now()}, nil
}

type stubHistoryRepo struct {
	bars []entity.PriceBar
	err  error
}

func (r *stubHistoryRepo) GetDailyBars(context.Context, string, int) ([]entity.PriceBar, error) {
	return r.bars, r.err
}

type stubNewsRepo struct {
	callLog
	name  string
	items []entity.NewsItem
	err   error
}

func (r *stubNewsRepo) Name() string { return r.name }

func (r *stubNewsRepo) GetNews(_ context.Context, symbol string) ([]entity.NewsItem, error) {
	r.add(symbol)
	return r.items, r.err
}

type stubAggregator struct {
	callLog
	quote      *entity.StockQuote
	prediction *entity.Prediction
	technical  *entity.TechnicalSnapshot
	news       []entity.NewsItem
	err        error
}

func (a *stubAggregator) Name() string { return "aggregator" }

func (a *stubAggregator) GetQuote(_ context.Context, symbol string) (*entity.StockQuote, error) {
	a.add("quote:" + symbol)
	return a.quote, a.err
}

func (a *stubAggregator) GetPrediction(_ context.Context, symbol, _ string) (*entity.Prediction, error) {
	a.add("prediction:" + symbol)
	return a.prediction, a.err
}

func (a *stubAggregator) GetTechnical(_ context.Context, symbol string) (*entity.TechnicalSnapshot, error) {
	a.add("technical:" + symbol)
	return a.technical, a.err
}

func (a *stubAggregator) GetNews(_ context.Context, symbol string) ([]entity.NewsItem, error) {
	a.add("news:" + symbol)
	return a.news, a.err
}

type stubAI struct {
	callLog
	commentary *entity.AICommentary
	err        error
}

func (a *stubAI) Name() string { return "ai-stub" }

func (a *stubAI) Predict(_ context.Context, quote *entity.StockQuote, timeframe string) (*entity.Prediction, error) {
	a.add("predict:" + quote.Symbol)
	if a.err != nil {
		return nil, a.err
	}
	predicted := quote.Price * 1.05
	return &entity.Prediction{
		Symbol:         quote.Symbol,
		CurrentPrice:   quote.Price,
		PredictedPrice: predicted,
		Confidence:     0.8,
		Timeframe:      timeframe,
		Reasoning:      "momentum",
		RiskLevel:      entity.RiskMedium,
		Recommendation: entity.RecommendationFor(quote.Price, predicted),
		Source:         a.Name(),
	}, nil
}

func (a *stubAI) AnalyzeTechnical(_ context.Context, snapshot *entity.TechnicalSnapshot) (*entity.AICommentary, error) {
	a.add("analyze:" + snapshot.Symbol)
	return a.commentary, a.err
}

func risingBars(n int, start float64) []entity.PriceBar {
	bars := make([]entity.PriceBar, n)
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		c := start + float64(i)
		if i%3 == 0 {
			c -= 2
		}
		bars[i] = entity.PriceBar{Time: day.AddDate(0, 0, i), Open: c, High: c + 1, Low: c - 1, Close: c, Volume: 1000}
	}
	return bars
}
