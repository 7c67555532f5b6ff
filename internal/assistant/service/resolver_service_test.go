package service

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"golang-stock-assistant/internal/assistant/config"
	"golang-stock-assistant/internal/assistant/mock"
	"golang-stock-assistant/internal/entity"
	"golang-stock-assistant/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCascade = config.Cascade{
	DefaultTimeout:    time.Second,
	PredictionTimeout: time.Second,
	NewsTimeout:       time.Second,
}

func newTestResolver(deps ResolverDeps) ResolverService {
	if deps.Mock == nil {
		deps.Mock = mock.New(rand.NewSource(7))
	}
	return NewResolverService(testCascade, deps, logger.NewNop())
}

func TestResolvePrice_SecondaryWinsAndStops(t *testing.T) {
	primary := &stubQuoteRepo{name: "primary", err: errUpstream}
	secondary := &stubQuoteRepo{name: "secondary", price: 42.5}
	api := &stubQuoteRepo{name: "api", price: 99}
	agg := &stubAggregator{}

	r := newTestResolver(ResolverDeps{PrimaryQuote: primary, SecondaryQuote: secondary, QuoteAPI: api, Aggregator: agg})
	q := r.ResolvePrice(context.Background(), "aapl")

	require.NotNil(t, q)
	assert.Equal(t, "secondary", q.Source)
	assert.Equal(t, 42.5, q.Price)
	assert.Equal(t, "AAPL", q.Symbol)
	assert.Equal(t, []string{"AAPL"}, primary.list())
	assert.Equal(t, []string{"AAPL"}, secondary.list())
	assert.Empty(t, api.list())
	assert.Empty(t, agg.list())
}

func TestResolvePrice_WidensAcrossExchangeSuffixes(t *testing.T) {
	primary := &stubQuoteRepo{name: "primary", price: 2450, only: map[string]bool{"SHEL.L": true}}

	r := newTestResolver(ResolverDeps{PrimaryQuote: primary})
	q := r.ResolvePrice(context.Background(), "SHEL")

	require.NotNil(t, q)
	assert.Equal(t, "SHEL.L", q.Symbol)
	assert.Equal(t, []string{"SHEL", "SHEL.JK", "SHEL.L"}, primary.list())
}

func TestResolvePrice_AllFailReturnsNil(t *testing.T) {
	primary := &stubQuoteRepo{name: "primary", err: errUpstream}
	agg := &stubAggregator{err: errUpstream}

	r := newTestResolver(ResolverDeps{PrimaryQuote: primary, Aggregator: agg})

	assert.Nil(t, r.ResolvePrice(context.Background(), "AAPL"))
}

func TestResolvePrice_InvalidPayloadContinues(t *testing.T) {
	agg := &stubAggregator{quote: &entity.StockQuote{Symbol: "AAPL"}}
	api := &stubQuoteRepo{name: "api", price: 0}

	r := newTestResolver(ResolverDeps{QuoteAPI: api, Aggregator: agg})

	assert.Nil(t, r.ResolvePrice(context.Background(), "AAPL.L"))
	assert.Equal(t, []string{"AAPL.L"}, api.list())
	assert.Equal(t, []string{"quote:AAPL.L"}, agg.list())
}

func TestResolvePrice_CachesSuccessOnly(t *testing.T) {
	primary := &stubQuoteRepo{name: "primary", price: 10}
	cache := NewMemoryQuoteCache(time.Minute)

	r := newTestResolver(ResolverDeps{PrimaryQuote: primary, QuoteCache: cache})
	first := r.ResolvePrice(context.Background(), "msft")
	second := r.ResolvePrice(context.Background(), "MSFT")

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.Price, second.Price)
	assert.Len(t, primary.list(), 1)

	failing := &stubQuoteRepo{name: "failing", err: errUpstream}
	r = newTestResolver(ResolverDeps{PrimaryQuote: failing, QuoteCache: cache})
	assert.Nil(t, r.ResolvePrice(context.Background(), "IBM.L"))
	_, ok := cache.Get(context.Background(), "IBM.L")
	assert.False(t, ok)
}

func TestResolvePrediction_NoProvidersReturnsMock(t *testing.T) {
	r := newTestResolver(ResolverDeps{})

	p := r.ResolvePrediction(context.Background(), "TSLA", "1 week")

	require.NotNil(t, p)
	assert.Equal(t, "TSLA", p.Symbol)
	assert.Equal(t, "1 week", p.Timeframe)
	assert.Equal(t, mock.SourceName, p.Source)
	assert.GreaterOrEqual(t, p.ConfidencePercent(), 65)
	assert.LessOrEqual(t, p.ConfidencePercent(), 95)
	assert.Equal(t, entity.RiskLevelFromConfidence(p.ConfidencePercent()), p.RiskLevel)
	assert.Equal(t, entity.RecommendationFor(p.CurrentPrice, p.PredictedPrice), p.Recommendation)
}

func TestResolvePrediction_AllFailingSeedsMockWithLiveQuote(t *testing.T) {
	primary := &stubQuoteRepo{name: "primary", price: 200}
	ai := &stubAI{err: errUpstream}
	agg := &stubAggregator{err: errUpstream}

	r := newTestResolver(ResolverDeps{PrimaryQuote: primary, AI: ai, Aggregator: agg})
	p := r.ResolvePrediction(context.Background(), "NVDA", "1 month")

	require.NotNil(t, p)
	assert.Equal(t, mock.SourceName, p.Source)
	assert.Equal(t, 200.0, p.CurrentPrice)
	assert.InDelta(t, 200.0, p.PredictedPrice, 10.0)
	assert.Len(t, primary.list(), 1)
	assert.Equal(t, []string{"predict:NVDA"}, ai.list())
	assert.Equal(t, []string{"prediction:NVDA"}, agg.list())
}

func TestResolvePrediction_AIWins(t *testing.T) {
	primary := &stubQuoteRepo{name: "primary", price: 100}
	ai := &stubAI{}
	agg := &stubAggregator{}

	r := newTestResolver(ResolverDeps{PrimaryQuote: primary, AI: ai, Aggregator: agg})
	p := r.ResolvePrediction(context.Background(), "AAPL", "1 day")

	require.NotNil(t, p)
	assert.Equal(t, "ai-stub", p.Source)
	assert.Equal(t, "1 day", p.Timeframe)
	assert.Equal(t, entity.RecommendationBuy, p.Recommendation)
	assert.Empty(t, agg.list())
}

func TestResolvePrediction_AIWithoutQuoteFallsToAggregator(t *testing.T) {
	ai := &stubAI{}
	agg := &stubAggregator{prediction: &entity.Prediction{
		Symbol: "AAPL", CurrentPrice: 100, PredictedPrice: 97, Confidence: 0.7,
		Timeframe: "1 week", Recommendation: entity.RecommendationSell, Source: "aggregator",
	}}

	r := newTestResolver(ResolverDeps{AI: ai, Aggregator: agg})
	p := r.ResolvePrediction(context.Background(), "AAPL", "1 week")

	require.NotNil(t, p)
	assert.Equal(t, "aggregator", p.Source)
	assert.Empty(t, ai.list())
}

func TestResolveTechnical_AllFailReturnsNil(t *testing.T) {
	agg := &stubAggregator{err: errUpstream}
	ai := &stubAI{err: errUpstream}
	primary := &stubQuoteRepo{name: "primary", price: 160}

	r := newTestResolver(ResolverDeps{Aggregator: agg, AI: ai, PrimaryQuote: primary})

	assert.Nil(t, r.ResolveTechnical(context.Background(), "AAPL"))
	assert.Equal(t, "technical:AAPL", agg.list()[0])
	assert.Equal(t, []string{"analyze:AAPL"}, ai.list())
}

func TestResolveTechnical_NoLivePriceReturnsNil(t *testing.T) {
	agg := &stubAggregator{err: errUpstream}
	ai := &stubAI{commentary: &entity.AICommentary{Sentiment: "bullish"}}

	r := newTestResolver(ResolverDeps{Aggregator: agg, AI: ai})

	assert.Nil(t, r.ResolveTechnical(context.Background(), "ZZZZ"))
	assert.Empty(t, ai.list())
}

func TestResolveTechnical_AISubstituteUsesHistory(t *testing.T) {
	agg := &stubAggregator{err: errUpstream}
	ai := &stubAI{commentary: &entity.AICommentary{Sentiment: "bullish", KeyFactors: []string{"volume"}}}
	primary := &stubQuoteRepo{name: "primary", price: 160}
	history := &stubHistoryRepo{bars: risingBars(60, 100)}

	r := newTestResolver(ResolverDeps{Aggregator: agg, AI: ai, PrimaryQuote: primary, History: history})
	snap := r.ResolveTechnical(context.Background(), "AAPL")

	require.NotNil(t, snap)
	assert.Equal(t, "ai-stub", snap.Source)
	require.NotNil(t, snap.AIAnalysis)
	assert.Equal(t, "bullish", snap.AIAnalysis.Sentiment)
	assert.Equal(t, 159.0, snap.CurrentPrice)
	assert.Equal(t, entity.TrendBullish, snap.Trend)
	assert.Greater(t, snap.RSI, 0.0)
}

func TestResolveTechnical_AggregatorFirst(t *testing.T) {
	agg := &stubAggregator{technical: &entity.TechnicalSnapshot{
		Symbol: "AAPL", RSI: 55, MovingAverages: entity.MovingAverages{SMA20: 170}, Source: "aggregator",
	}}
	ai := &stubAI{}

	r := newTestResolver(ResolverDeps{Aggregator: agg, AI: ai})
	snap := r.ResolveTechnical(context.Background(), "AAPL")

	require.NotNil(t, snap)
	assert.Equal(t, "aggregator", snap.Source)
	assert.Empty(t, ai.list())
}

func TestResolveNews_AllFailReturnsEmptyList(t *testing.T) {
	agg := &stubAggregator{err: errUpstream}
	news := &stubNewsRepo{name: "news-api", items: []entity.NewsItem{}}

	r := newTestResolver(ResolverDeps{Aggregator: agg, News: news})
	items := r.ResolveNews(context.Background(), "AAPL")

	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestResolveNews_FallsBackToNewsSearchAndCaches(t *testing.T) {
	agg := &stubAggregator{err: errUpstream}
	news := &stubNewsRepo{name: "news-api", items: []entity.NewsItem{{Title: "Apple ships", Source: "Reuters"}}}
	cache := NewMemoryNewsCache(time.Minute)

	r := newTestResolver(ResolverDeps{Aggregator: agg, News: news, NewsCache: cache})
	first := r.ResolveNews(context.Background(), "AAPL")
	second := r.ResolveNews(context.Background(), "AAPL")

	require.Len(t, first, 1)
	assert.Equal(t, first, second)
	assert.Len(t, news.list(), 1)
	assert.Len(t, agg.list(), 1)
}
