package service

import (
	"context"
	"strings"
	"time"

	"golang-stock-assistant/internal/assistant/cascade"
	"golang-stock-assistant/internal/assistant/config"
	"golang-stock-assistant/internal/assistant/mock"
	"golang-stock-assistant/internal/assistant/repository"
	"golang-stock-assistant/internal/assistant/symbol"
	"golang-stock-assistant/internal/entity"
	"golang-stock-assistant/pkg/common"
	"golang-stock-assistant/pkg/logger"
)

const historyDays = 260

// ResolverService resolves market data for the chat assistant. Prediction
// always returns a value, possibly synthetic. Price and technical analysis
// return nil and news returns an empty list when every provider fails.
type ResolverService interface {
	ResolvePrice(ctx context.Context, sym string) *entity.StockQuote
	ResolvePrediction(ctx context.Context, sym, timeframe string) *entity.Prediction
	ResolveTechnical(ctx context.Context, sym string) *entity.TechnicalSnapshot
	ResolveNews(ctx context.Context, sym string) []entity.NewsItem
}

// ResolverDeps holds the upstreams of the resolver cascades. Nil
// repositories are skipped.
type ResolverDeps struct {
	PrimaryQuote   repository.QuoteRepository
	SecondaryQuote repository.QuoteRepository
	QuoteAPI       repository.QuoteRepository
	History        repository.HistoryRepository
	Aggregator     repository.AggregatorRepository
	AI             repository.AIRepository
	News           repository.NewsRepository
	Mock           *mock.Synthesizer
	QuoteCache     QuoteCache
	NewsCache      NewsCache
}

type resolverService struct {
	cfg       config.Cascade
	price     *cascade.Cascade[*entity.StockQuote]
	technical *cascade.Cascade[*entity.TechnicalSnapshot]
	news      *cascade.Cascade[[]entity.NewsItem]
	deps      ResolverDeps
	logger    *logger.Logger
}

// NewResolverService wires the four client cascades:
//
//	price:      primary quote, secondary quote, quote API, aggregator
//	prediction: AI, aggregator, then mock
//	technical:  aggregator, AI substitute
//	news:       aggregator, news search
func NewResolverService(cfg config.Cascade, deps ResolverDeps, log *logger.Logger) ResolverService {
	if deps.Mock == nil {
		deps.Mock = mock.NewDefault()
	}
	if deps.QuoteCache == nil {
		deps.QuoteCache = noopQuoteCache{}
	}
	if deps.NewsCache == nil {
		deps.NewsCache = noopNewsCache{}
	}
	s := &resolverService{cfg: cfg, deps: deps, logger: log}

	var priceProviders []quoteProvider
	for _, repo := range []repository.QuoteRepository{deps.PrimaryQuote, deps.SecondaryQuote, deps.QuoteAPI} {
		if repo != nil {
			priceProviders = append(priceProviders, quoteProviderOf(repo))
		}
	}
	if deps.Aggregator != nil {
		priceProviders = append(priceProviders, aggregatorQuoteProvider(deps.Aggregator))
	}
	s.price = cascade.New(common.DomainPrice, priceProviders, cfg.DefaultTimeout, validQuote, log)

	var technicalProviders []technicalProvider
	if deps.Aggregator != nil {
		technicalProviders = append(technicalProviders, aggregatorTechnicalProvider(deps.Aggregator))
	}
	if deps.AI != nil {
		technicalProviders = append(technicalProviders, cascade.ProviderFunc[*entity.TechnicalSnapshot]{
			ProviderName: deps.AI.Name(),
			Fn:           s.fetchAITechnical,
		})
	}
	s.technical = cascade.New(common.DomainTechnical, technicalProviders, cfg.DefaultTimeout, validTechnical, log)

	var newsProviders []newsProvider
	if deps.Aggregator != nil {
		newsProviders = append(newsProviders, aggregatorNewsProvider(deps.Aggregator))
	}
	if deps.News != nil {
		newsProviders = append(newsProviders, newsProviderOf(deps.News))
	}
	s.news = cascade.New(common.DomainNews, newsProviders, cfg.NewsTimeout, entity.ValidNews, log)

	return s
}

// ResolvePrice widens the lookup over every exchange suffix candidate.
func (s *resolverService) ResolvePrice(ctx context.Context, sym string) *entity.StockQuote {
	key := strings.ToUpper(strings.TrimSpace(sym))
	if q, ok := s.deps.QuoteCache.Get(ctx, key); ok {
		return q
	}
	q, ok := s.price.Resolve(ctx, "", symbol.ExpandFormats(sym)...)
	if !ok {
		return nil
	}
	s.deps.QuoteCache.Set(ctx, key, q)
	return q
}

// ResolvePrediction falls back to the mock synthesizer, seeded with a live
// quote when one resolves. The quote is looked up at most once per call.
func (s *resolverService) ResolvePrediction(ctx context.Context, sym, timeframe string) *entity.Prediction {
	current := onceQuote(s.ResolvePrice)

	var providers []predictionProvider
	if s.deps.AI != nil {
		providers = append(providers, aiPredictionProvider(s.deps.AI, current))
	}
	if s.deps.Aggregator != nil {
		providers = append(providers, aggregatorPredictionProvider(s.deps.Aggregator))
	}
	c := cascade.New(common.DomainPrediction, providers, s.cfg.PredictionTimeout, validPrediction, s.logger)
	if p, ok := c.Resolve(ctx, timeframe, sym); ok {
		return p
	}

	var seed float64
	if q := current(ctx, sym); q != nil {
		seed = q.Price
	}
	s.logger.InfoContext(ctx, "Prediction providers exhausted, using mock", logger.StringField("symbol", sym))
	return s.deps.Mock.Prediction(sym, timeframe, seed)
}

func (s *resolverService) ResolveTechnical(ctx context.Context, sym string) *entity.TechnicalSnapshot {
	t, ok := s.technical.Resolve(ctx, "", sym)
	if !ok {
		return nil
	}
	return t
}

func (s *resolverService) ResolveNews(ctx context.Context, sym string) []entity.NewsItem {
	if items, ok := s.deps.NewsCache.Get(sym); ok {
		return items
	}
	items, ok := s.news.Resolve(ctx, "", sym)
	if !ok {
		return []entity.NewsItem{}
	}
	s.deps.NewsCache.Set(sym, items)
	return items
}

// fetchAITechnical computes indicators from daily bars, or synthesizes them
// from the live quote, and attaches model commentary. It fails when no live
// quote resolves or the model does not answer.
func (s *resolverService) fetchAITechnical(ctx context.Context, req cascade.Request) (*entity.TechnicalSnapshot, error) {
	q := s.ResolvePrice(ctx, req.Symbol)
	if q == nil {
		return nil, repository.ErrEmptyPayload
	}

	var snap *entity.TechnicalSnapshot
	if s.deps.History != nil {
		snap, _ = snapshotFromHistory(ctx, s.deps.History, req.Symbol, q)
	}
	if snap == nil {
		snap = s.deps.Mock.Technical(req.Symbol, q)
	}

	commentary, err := s.deps.AI.AnalyzeTechnical(ctx, snap)
	if err != nil {
		return nil, err
	}
	snap.AIAnalysis = commentary
	snap.Source = s.deps.AI.Name()
	snap.Timestamp = time.Now()
	return snap, nil
}
