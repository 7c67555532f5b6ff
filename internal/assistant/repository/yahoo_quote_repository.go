package repository

import (
	"context"
	"fmt"
	"time"

	"golang-stock-assistant/internal/assistant/config"
	"golang-stock-assistant/internal/entity"
	"golang-stock-assistant/pkg/logger"
	"golang-stock-assistant/pkg/utils"

	"github.com/piquette/finance-go"
	"github.com/piquette/finance-go/equity"
	"golang.org/x/time/rate"
)

// yahooQuoteRepository reads quotes through the finance-go Yahoo client.
type yahooQuoteRepository struct {
	cfg            config.YahooFinance
	logger         *logger.Logger
	requestLimiter *rate.Limiter
	getEquity      func(symbol string) (*finance.Equity, error)
}

// NewYahooQuoteRepository creates a new instance of yahooQuoteRepository.
func NewYahooQuoteRepository(cfg config.YahooFinance, log *logger.Logger) QuoteRepository {
	return &yahooQuoteRepository{
		cfg:            cfg,
		logger:         log,
		requestLimiter: newRequestLimiter(cfg.MaxRequestPerMinute),
		getEquity:      equity.Get,
	}
}

func (r *yahooQuoteRepository) Name() string { return "yahoo-quote" }

// GetQuote fetches the regular market quote for symbol. The finance-go call is
// not context aware, so it runs in its own goroutine and is abandoned when ctx ends.
func (r *yahooQuoteRepository) GetQuote(ctx context.Context, symbol string) (*entity.StockQuote, error) {
	if !r.cfg.Enabled {
		return nil, ErrProviderNotConfigured
	}
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	type result struct {
		q   *finance.Equity
		err error
	}
	ch := make(chan result, 1)
	utils.GoSafe(r.logger, func() {
		q, err := r.getEquity(symbol)
		ch <- result{q: q, err: err}
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.err != nil {
			r.logger.DebugContext(ctx, "Yahoo quote request failed", logger.StringField("symbol", symbol), logger.ErrorField(res.err))
			return nil, fmt.Errorf("failed to get yahoo quote for %s: %w", symbol, res.err)
		}
		if res.q == nil || res.q.RegularMarketPrice <= 0 {
			return nil, fmt.Errorf("yahoo quote for %s: %w", symbol, ErrEmptyPayload)
		}
		return toStockQuote(symbol, res.q), nil
	}
}

// toStockQuote maps an equity quote. Fundamentals Yahoo leaves at zero stay unset.
func toStockQuote(symbol string, q *finance.Equity) *entity.StockQuote {
	ts := time.Now()
	if q.RegularMarketTime > 0 {
		ts = time.Unix(int64(q.RegularMarketTime), 0)
	}
	out := &entity.StockQuote{
		Symbol:        symbol,
		Price:         q.RegularMarketPrice,
		Change:        q.RegularMarketChange,
		ChangePercent: q.RegularMarketChangePercent,
		Volume:        int64(q.RegularMarketVolume),
		High:          q.RegularMarketDayHigh,
		Low:           q.RegularMarketDayLow,
		Open:          q.RegularMarketOpen,
		PreviousClose: q.RegularMarketPreviousClose,
		Currency:      q.CurrencyID,
		Source:        "yahoo-quote",
		Timestamp:     ts,
	}
	if q.MarketCap > 0 {
		out.MarketCap = utils.ToPointer(float64(q.MarketCap))
	}
	if q.TrailingPE > 0 {
		out.PE = utils.ToPointer(q.TrailingPE)
	}
	if q.EpsTrailingTwelveMonths != 0 {
		out.EPS = utils.ToPointer(q.EpsTrailingTwelveMonths)
	}
	if q.TrailingAnnualDividendRate > 0 {
		out.Dividend = utils.ToPointer(q.TrailingAnnualDividendRate)
		out.Yield = utils.ToPointer(q.TrailingAnnualDividendYield)
	}
	return out
}

// newRequestLimiter spaces requests evenly over a minute. A non-positive limit
// disables limiting.
func newRequestLimiter(maxPerMinute int) *rate.Limiter {
	if maxPerMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(maxPerMinute)), 1)
}
