package service

import (
	"context"
	"strings"

	"golang-stock-assistant/internal/assistant/cascade"
	"golang-stock-assistant/internal/assistant/config"
	"golang-stock-assistant/internal/assistant/intent"
	"golang-stock-assistant/internal/assistant/mock"
	"golang-stock-assistant/internal/assistant/repository"
	"golang-stock-assistant/internal/assistant/symbol"
	"golang-stock-assistant/internal/entity"
	"golang-stock-assistant/pkg/common"
	"golang-stock-assistant/pkg/logger"
)

// AggregatorService backs the public market data endpoints. Unlike the chat
// resolvers every method always returns a value, synthesized when no upstream
// answers.
type AggregatorService interface {
	GetQuote(ctx context.Context, sym string) *entity.StockQuote
	GetPrediction(ctx context.Context, sym, timeframe string) *entity.Prediction
	GetTechnical(ctx context.Context, sym string) *entity.TechnicalSnapshot
	GetNews(ctx context.Context, sym string) []entity.NewsItem
}

// AggregatorDeps holds the upstreams of the server-side cascades. Quotes and
// News are tried in slice order; nil entries are skipped.
type AggregatorDeps struct {
	Quotes     []repository.QuoteRepository
	History    repository.HistoryRepository
	AI         repository.AIRepository
	News       []repository.NewsRepository
	Mock       *mock.Synthesizer
	QuoteCache QuoteCache
	NewsCache  NewsCache
}

type aggregatorService struct {
	cfg    config.Cascade
	price  *cascade.Cascade[*entity.StockQuote]
	news   *cascade.Cascade[[]entity.NewsItem]
	deps   AggregatorDeps
	logger *logger.Logger
}

// NewAggregatorService wires the server-side cascades:
//
//	price:      quote repositories in order, then mock
//	prediction: AI seeded with a live quote, then mock
//	technical:  indicators over daily bars, then mock; AI commentary when available
//	news:       news repositories in order, then canned headlines
func NewAggregatorService(cfg config.Cascade, deps AggregatorDeps, log *logger.Logger) AggregatorService {
	if deps.Mock == nil {
		deps.Mock = mock.NewDefault()
	}
	if deps.QuoteCache == nil {
		deps.QuoteCache = noopQuoteCache{}
	}
	if deps.NewsCache == nil {
		deps.NewsCache = noopNewsCache{}
	}

	var quoteProviders []quoteProvider
	for _, repo := range deps.Quotes {
		if repo != nil {
			quoteProviders = append(quoteProviders, quoteProviderOf(repo))
		}
	}
	var newsProviders []newsProvider
	for _, repo := range deps.News {
		if repo != nil {
			newsProviders = append(newsProviders, newsProviderOf(repo))
		}
	}

	return &aggregatorService{
		cfg:    cfg,
		price:  cascade.New(common.DomainPrice, quoteProviders, cfg.DefaultTimeout, validQuote, log),
		news:   cascade.New(common.DomainNews, newsProviders, cfg.NewsTimeout, entity.ValidNews, log),
		deps:   deps,
		logger: log,
	}
}

func (s *aggregatorService) GetQuote(ctx context.Context, sym string) *entity.StockQuote {
	sym = symbol.Normalize(sym)
	if q := s.liveQuote(ctx, sym); q != nil {
		return q
	}
	s.logger.InfoContext(ctx, "Quote providers exhausted, using mock", logger.StringField("symbol", sym))
	return s.deps.Mock.Quote(sym)
}

func (s *aggregatorService) GetPrediction(ctx context.Context, sym, timeframe string) *entity.Prediction {
	sym = symbol.Normalize(sym)
	if strings.TrimSpace(timeframe) == "" {
		timeframe = intent.DefaultTimeframe
	}
	current := onceQuote(s.liveQuote)

	var providers []predictionProvider
	if s.deps.AI != nil {
		providers = append(providers, aiPredictionProvider(s.deps.AI, current))
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

func (s *aggregatorService) GetTechnical(ctx context.Context, sym string) *entity.TechnicalSnapshot {
	sym = symbol.Normalize(sym)
	q := s.liveQuote(ctx, sym)

	var providers []technicalProvider
	if s.deps.History != nil {
		providers = append(providers, indicatorProvider(s.deps.History, q))
	}
	c := cascade.New(common.DomainTechnical, providers, s.cfg.DefaultTimeout, validTechnical, s.logger)
	snap, ok := c.Resolve(ctx, "", sym)
	if !ok {
		s.logger.InfoContext(ctx, "Technical providers exhausted, using mock", logger.StringField("symbol", sym))
		snap = s.deps.Mock.Technical(sym, q)
	}

	if s.deps.AI != nil {
		s.attachCommentary(ctx, snap)
	}
	return snap
}

func (s *aggregatorService) GetNews(ctx context.Context, sym string) []entity.NewsItem {
	if sym != "" {
		sym = symbol.Normalize(sym)
	}
	if items, ok := s.deps.NewsCache.Get(sym); ok {
		return items
	}
	items, ok := s.news.Resolve(ctx, "", sym)
	if !ok {
		s.logger.InfoContext(ctx, "News providers exhausted, using mock", logger.StringField("symbol", sym))
		return s.deps.Mock.News(sym)
	}
	s.deps.NewsCache.Set(sym, items)
	return items
}

// liveQuote runs the quote cascade without the mock fallback.
func (s *aggregatorService) liveQuote(ctx context.Context, sym string) *entity.StockQuote {
	if q, ok := s.deps.QuoteCache.Get(ctx, sym); ok {
		return q
	}
	q, ok := s.price.Resolve(ctx, "", sym)
	if !ok {
		return nil
	}
	s.deps.QuoteCache.Set(ctx, sym, q)
	return q
}

// attachCommentary adds model commentary to snap. A failing model leaves the
// snapshot without commentary.
func (s *aggregatorService) attachCommentary(ctx context.Context, snap *entity.TechnicalSnapshot) {
	if s.cfg.PredictionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.PredictionTimeout)
		defer cancel()
	}
	commentary, err := s.deps.AI.AnalyzeTechnical(ctx, snap)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to generate technical commentary",
			logger.StringField("symbol", snap.Symbol),
			logger.StringField("provider", s.deps.AI.Name()),
			logger.ErrorField(err),
		)
		return
	}
	snap.AIAnalysis = commentary
}
