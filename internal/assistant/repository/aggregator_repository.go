package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang-stock-assistant/internal/assistant/config"
	"golang-stock-assistant/internal/entity"
	"golang-stock-assistant/pkg/logger"

	"github.com/go-resty/resty/v2"
)

type aggregatorRepository struct {
	client *resty.Client
	cfg    config.Aggregator
	logger *logger.Logger
}

// NewAggregatorRepository creates a client for a remote aggregator. Without a
// base url every call returns ErrProviderNotConfigured.
func NewAggregatorRepository(cfg config.Aggregator, log *logger.Logger) AggregatorRepository {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(cfg.BaseURL, "/"))
	client.SetTimeout(30 * time.Second)
	client.SetHeader("Accept", "application/json")

	return &aggregatorRepository{
		client: client,
		cfg:    cfg,
		logger: log,
	}
}

func (r *aggregatorRepository) Name() string { return "aggregator" }

func (r *aggregatorRepository) GetQuote(ctx context.Context, symbol string) (*entity.StockQuote, error) {
	var q entity.StockQuote
	if err := r.get(ctx, "/stock-price", map[string]string{"symbol": symbol}, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// GetPrediction converts percentage confidences to fractions.
func (r *aggregatorRepository) GetPrediction(ctx context.Context, symbol, timeframe string) (*entity.Prediction, error) {
	var p entity.Prediction
	params := map[string]string{"symbol": symbol}
	if timeframe != "" {
		params["timeframe"] = timeframe
	}
	if err := r.get(ctx, "/ai-prediction", params, &p); err != nil {
		return nil, err
	}
	p.Confidence = entity.NormalizeConfidence(p.Confidence)
	return &p, nil
}

func (r *aggregatorRepository) GetTechnical(ctx context.Context, symbol string) (*entity.TechnicalSnapshot, error) {
	var s entity.TechnicalSnapshot
	if err := r.get(ctx, "/technical-analysis", map[string]string{"symbol": symbol}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *aggregatorRepository) GetNews(ctx context.Context, symbol string) ([]entity.NewsItem, error) {
	var items []entity.NewsItem
	params := map[string]string{}
	if symbol != "" {
		params["symbol"] = symbol
	}
	if err := r.get(ctx, "/market-news", params, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *aggregatorRepository) get(ctx context.Context, path string, params map[string]string, out interface{}) error {
	if r.cfg.BaseURL == "" {
		return ErrProviderNotConfigured
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return fmt.Errorf("failed to call aggregator %s: %w", path, err)
	}
	if resp.IsError() {
		r.logger.DebugContext(ctx, "Received non-OK response from aggregator",
			logger.StringField("path", path),
			logger.IntField("status_code", resp.StatusCode()),
		)
		return fmt.Errorf("aggregator %s: %w: %d", path, ErrUnexpectedStatus, resp.StatusCode())
	}
	if len(resp.Body()) == 0 {
		return fmt.Errorf("aggregator %s: %w", path, ErrEmptyPayload)
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode aggregator %s response: %w", path, err)
	}
	return nil
}
