package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang-stock-assistant/internal/assistant/config"
	"golang-stock-assistant/internal/assistant/dto"
	"golang-stock-assistant/internal/entity"
	"golang-stock-assistant/pkg/logger"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const defaultAlphaVantageURL = "https://www.alphavantage.co"

type alphaVantageRepository struct {
	client         *resty.Client
	cfg            config.AlphaVantage
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

// NewAlphaVantageRepository creates a new instance of alphaVantageRepository.
func NewAlphaVantageRepository(cfg config.AlphaVantage, log *logger.Logger) QuoteRepository {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultAlphaVantageURL
	}
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(30 * time.Second)

	return &alphaVantageRepository{
		client:         client,
		cfg:            cfg,
		logger:         log,
		requestLimiter: newRequestLimiter(cfg.MaxRequestPerMinute),
	}
}

func (r *alphaVantageRepository) Name() string { return "alpha-vantage" }

// GetQuote fetches a GLOBAL_QUOTE and converts its string fields.
func (r *alphaVantageRepository) GetQuote(ctx context.Context, symbol string) (*entity.StockQuote, error) {
	if r.cfg.APIKey == "" {
		return nil, ErrProviderNotConfigured
	}
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function": "GLOBAL_QUOTE",
			"symbol":   symbol,
			"apikey":   r.cfg.APIKey,
		}).
		Get("/query")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch alpha vantage quote for %s: %w", symbol, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("alpha vantage %s: %w: %d", symbol, ErrUnexpectedStatus, resp.StatusCode())
	}

	var envelope dto.AlphaVantageGlobalQuoteResponse
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse alpha vantage response: %w", err)
	}
	if msg := firstNonEmpty(envelope.ErrorMessage, envelope.Note, envelope.Information); msg != "" {
		r.logger.DebugContext(ctx, "Alpha Vantage rejected request", logger.StringField("symbol", symbol), logger.StringField("message", msg))
		return nil, fmt.Errorf("alpha vantage %s: %w: %s", symbol, ErrEmptyPayload, msg)
	}
	if envelope.GlobalQuote.Symbol == "" {
		return nil, fmt.Errorf("alpha vantage %s: %w", symbol, ErrEmptyPayload)
	}

	return parseGlobalQuote(symbol, envelope.GlobalQuote)
}

func parseGlobalQuote(symbol string, gq dto.AlphaVantageGlobalQuote) (*entity.StockQuote, error) {
	price, err := decimal.NewFromString(gq.Price)
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", gq.Price, err)
	}
	volume, err := decimal.NewFromString(orZero(gq.Volume))
	if err != nil {
		return nil, fmt.Errorf("invalid volume %q: %w", gq.Volume, err)
	}

	q := &entity.StockQuote{
		Symbol:        symbol,
		Price:         price.InexactFloat64(),
		Change:        parseDecimal(gq.Change),
		ChangePercent: parseDecimal(strings.TrimSuffix(gq.ChangePercent, "%")),
		Volume:        volume.IntPart(),
		High:          parseDecimal(gq.High),
		Low:           parseDecimal(gq.Low),
		Open:          parseDecimal(gq.Open),
		PreviousClose: parseDecimal(gq.PreviousClose),
		Currency:      "USD",
		Source:        "alpha-vantage",
		Timestamp:     time.Now(),
	}
	if day, err := time.Parse("2006-01-02", gq.LatestTradingDay); err == nil {
		q.Timestamp = day
	}
	return q, nil
}

func parseDecimal(s string) float64 {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

func orZero(s string) string {
	if strings.TrimSpace(s) == "" {
		return "0"
	}
	return strings.TrimSpace(s)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
