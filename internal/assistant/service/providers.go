package service

import (
	"context"
	"sync"

	"golang-stock-assistant/internal/assistant/cascade"
	"golang-stock-assistant/internal/assistant/indicator"
	"golang-stock-assistant/internal/assistant/repository"
	"golang-stock-assistant/internal/entity"
)

type quoteProvider = cascade.Provider[*entity.StockQuote]
type predictionProvider = cascade.Provider[*entity.Prediction]
type technicalProvider = cascade.Provider[*entity.TechnicalSnapshot]
type newsProvider = cascade.Provider[[]entity.NewsItem]

func quoteProviderOf(repo repository.QuoteRepository) quoteProvider {
	return cascade.ProviderFunc[*entity.StockQuote]{
		ProviderName: repo.Name(),
		Fn: func(ctx context.Context, req cascade.Request) (*entity.StockQuote, error) {
			return repo.GetQuote(ctx, req.Symbol)
		},
	}
}

func newsProviderOf(repo repository.NewsRepository) newsProvider {
	return cascade.ProviderFunc[[]entity.NewsItem]{
		ProviderName: repo.Name(),
		Fn: func(ctx context.Context, req cascade.Request) ([]entity.NewsItem, error) {
			return repo.GetNews(ctx, req.Symbol)
		},
	}
}

func aggregatorQuoteProvider(repo repository.AggregatorRepository) quoteProvider {
	return cascade.ProviderFunc[*entity.StockQuote]{
		ProviderName: repo.Name(),
		Fn: func(ctx context.Context, req cascade.Request) (*entity.StockQuote, error) {
			return repo.GetQuote(ctx, req.Symbol)
		},
	}
}

func aggregatorPredictionProvider(repo repository.AggregatorRepository) predictionProvider {
	return cascade.ProviderFunc[*entity.Prediction]{
		ProviderName: repo.Name(),
		Fn: func(ctx context.Context, req cascade.Request) (*entity.Prediction, error) {
			return repo.GetPrediction(ctx, req.Symbol, req.Timeframe)
		},
	}
}

func aggregatorTechnicalProvider(repo repository.AggregatorRepository) technicalProvider {
	return cascade.ProviderFunc[*entity.TechnicalSnapshot]{
		ProviderName: repo.Name(),
		Fn: func(ctx context.Context, req cascade.Request) (*entity.TechnicalSnapshot, error) {
			return repo.GetTechnical(ctx, req.Symbol)
		},
	}
}

func aggregatorNewsProvider(repo repository.AggregatorRepository) newsProvider {
	return cascade.ProviderFunc[[]entity.NewsItem]{
		ProviderName: repo.Name(),
		Fn: func(ctx context.Context, req cascade.Request) ([]entity.NewsItem, error) {
			return repo.GetNews(ctx, req.Symbol)
		},
	}
}

// quoteSource resolves the current quote for prompts and mock seeds.
type quoteSource func(ctx context.Context, symbol string) *entity.StockQuote

// onceQuote memoizes the first lookup of resolve, so one request resolves its
// quote at most once however many providers ask for it.
func onceQuote(resolve quoteSource) quoteSource {
	var (
		once  sync.Once
		quote *entity.StockQuote
	)
	return func(ctx context.Context, symbol string) *entity.StockQuote {
		once.Do(func() { quote = resolve(ctx, symbol) })
		return quote
	}
}

// snapshotFromHistory computes indicators over daily bars. The trend follows
// the quote's change; a nil quote reads as unchanged.
func snapshotFromHistory(ctx context.Context, history repository.HistoryRepository, symbol string, quote *entity.StockQuote) (*entity.TechnicalSnapshot, error) {
	bars, err := history.GetDailyBars(ctx, symbol, historyDays)
	if err != nil {
		return nil, err
	}
	var change float64
	if quote != nil {
		change = quote.Change
	}
	return indicator.Snapshot(symbol, bars, change)
}

func indicatorProvider(history repository.HistoryRepository, quote *entity.StockQuote) technicalProvider {
	return cascade.ProviderFunc[*entity.TechnicalSnapshot]{
		ProviderName: indicator.SourceIndicators,
		Fn: func(ctx context.Context, req cascade.Request) (*entity.TechnicalSnapshot, error) {
			return snapshotFromHistory(ctx, history, req.Symbol, quote)
		},
	}
}

// aiPredictionProvider anchors the model prompt on a live quote; without one
// the attempt fails.
func aiPredictionProvider(ai repository.AIRepository, quotes quoteSource) predictionProvider {
	return cascade.ProviderFunc[*entity.Prediction]{
		ProviderName: ai.Name(),
		Fn: func(ctx context.Context, req cascade.Request) (*entity.Prediction, error) {
			q := quotes(ctx, req.Symbol)
			if q == nil {
				return nil, repository.ErrEmptyPayload
			}
			return ai.Predict(ctx, q, req.Timeframe)
		},
	}
}

func validQuote(q *entity.StockQuote) bool { return q.Valid() }
func validPrediction(p *entity.Prediction) bool { return p.Valid() }
func validTechnical(t *entity.TechnicalSnapshot) bool { return t.Valid() }
