package repository

import (
	"context"
	"errors"

	"golang-stock-assistant/internal/entity"
)

var (
	// ErrProviderNotConfigured is returned by providers without credentials or
	// endpoint. Callers treat it like any other provider failure.
	ErrProviderNotConfigured = errors.New("provider not configured")
	// ErrEmptyPayload is returned when an upstream answers without usable data.
	ErrEmptyPayload = errors.New("empty payload")
	// ErrUnexpectedStatus is returned for non-2xx upstream responses.
	ErrUnexpectedStatus = errors.New("unexpected status code")
)

// QuoteRepository fetches live quotes from one upstream.
type QuoteRepository interface {
	Name() string
	GetQuote(ctx context.Context, symbol string) (*entity.StockQuote, error)
}

// HistoryRepository fetches daily bars, oldest first.
type HistoryRepository interface {
	GetDailyBars(ctx context.Context, symbol string, days int) ([]entity.PriceBar, error)
}

// NewsRepository fetches headlines. An empty symbol requests general market news.
type NewsRepository interface {
	Name() string
	GetNews(ctx context.Context, symbol string) ([]entity.NewsItem, error)
}

// TextGenerator sends a prompt to a hosted language model and returns its raw text.
type TextGenerator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// AIRepository turns market data into model-generated predictions and commentary.
type AIRepository interface {
	Name() string
	Predict(ctx context.Context, quote *entity.StockQuote, timeframe string) (*entity.Prediction, error)
	AnalyzeTechnical(ctx context.Context, snapshot *entity.TechnicalSnapshot) (*entity.AICommentary, error)
}

// AggregatorRepository calls a remote aggregator that exposes the same four
// market data endpoints as this service.
type AggregatorRepository interface {
	Name() string
	GetQuote(ctx context.Context, symbol string) (*entity.StockQuote, error)
	GetPrediction(ctx context.Context, symbol, timeframe string) (*entity.Prediction, error)
	GetTechnical(ctx context.Context, symbol string) (*entity.TechnicalSnapshot, error)
	GetNews(ctx context.Context, symbol string) ([]entity.NewsItem, error)
}
