package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang-stock-assistant/internal/assistant/config"
	"golang-stock-assistant/internal/assistant/dto"
	"golang-stock-assistant/internal/entity"
	"golang-stock-assistant/pkg/logger"

	"golang.org/x/time/rate"
)

const defaultYahooChartURL = "https://query1.finance.yahoo.com"

// YahooChartRepository reads quotes and daily bars from the Yahoo v8 chart API.
type YahooChartRepository interface {
	QuoteRepository
	HistoryRepository
}

type yahooChartRepository struct {
	client         *http.Client
	cfg            config.YahooFinance
	baseURL        string
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

// NewYahooChartRepository creates a new instance of yahooChartRepository.
func NewYahooChartRepository(cfg config.YahooFinance, log *logger.Logger) YahooChartRepository {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultYahooChartURL
	}
	return &yahooChartRepository{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		cfg:            cfg,
		baseURL:        baseURL,
		logger:         log,
		requestLimiter: newRequestLimiter(cfg.MaxRequestPerMinute),
	}
}

func (r *yahooChartRepository) Name() string { return "yahoo-chart" }

// GetQuote builds a quote from the chart metadata of the last five sessions.
func (r *yahooChartRepository) GetQuote(ctx context.Context, symbol string) (*entity.StockQuote, error) {
	result, err := r.fetchChart(ctx, symbol, "1d", "5d")
	if err != nil {
		return nil, err
	}

	meta := result.Meta
	if meta.RegularMarketPrice <= 0 {
		return nil, fmt.Errorf("yahoo chart for %s: %w", symbol, ErrEmptyPayload)
	}
	prevClose := meta.PreviousClose
	if prevClose == 0 {
		prevClose = meta.ChartPreviousClose
	}

	q := &entity.StockQuote{
		Symbol:        symbol,
		Price:         meta.RegularMarketPrice,
		Volume:        meta.RegularMarketVolume,
		High:          meta.RegularMarketDayHigh,
		Low:           meta.RegularMarketDayLow,
		PreviousClose: prevClose,
		Currency:      meta.Currency,
		Source:        r.Name(),
		Timestamp:     time.Now(),
	}
	if meta.RegularMarketTime > 0 {
		q.Timestamp = time.Unix(meta.RegularMarketTime, 0)
	}
	if prevClose > 0 {
		q.Change = meta.RegularMarketPrice - prevClose
		q.ChangePercent = q.Change / prevClose * 100
	}
	if bars := toBars(result); len(bars) > 0 {
		q.Open = bars[len(bars)-1].Open
	}
	return q, nil
}

// GetDailyBars returns up to days daily bars, oldest first.
func (r *yahooChartRepository) GetDailyBars(ctx context.Context, symbol string, days int) ([]entity.PriceBar, error) {
	rng := "1y"
	if days > 250 {
		rng = "2y"
	}
	result, err := r.fetchChart(ctx, symbol, "1d", rng)
	if err != nil {
		return nil, err
	}

	bars := toBars(result)
	if len(bars) == 0 {
		return nil, fmt.Errorf("yahoo chart bars for %s: %w", symbol, ErrEmptyPayload)
	}
	if days > 0 && len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

func (r *yahooChartRepository) fetchChart(ctx context.Context, symbol, interval, rng string) (*dto.YahooChartResult, error) {
	if !r.cfg.Enabled {
		return nil, ErrProviderNotConfigured
	}
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for request limit: %w", err)
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s", r.baseURL, url.PathEscape(symbol), interval, rng)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Yahoo chart API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		r.logger.DebugContext(ctx, "Received non-OK response from Yahoo chart API",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("symbol", symbol),
		)
		return nil, fmt.Errorf("yahoo chart %s: %w: %d", symbol, ErrUnexpectedStatus, resp.StatusCode)
	}

	var chart dto.YahooChartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo chart for %s: %w", symbol, ErrEmptyPayload)
	}
	return &chart.Chart.Result[0], nil
}

func toBars(result *dto.YahooChartResult) []entity.PriceBar {
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	q := result.Indicators.Quote[0]
	bars := make([]entity.PriceBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		c := at(q.Close, i)
		if c == 0 {
			// null bars are holidays or the still-open session
			continue
		}
		var volume int64
		if i < len(q.Volume) && q.Volume[i] != nil {
			volume = *q.Volume[i]
		}
		bars = append(bars, entity.PriceBar{
			Time:   time.Unix(ts, 0),
			Open:   at(q.Open, i),
			High:   at(q.High, i),
			Low:    at(q.Low, i),
			Close:  c,
			Volume: volume,
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars
}

func at(values []*float64, i int) float64 {
	if i >= len(values) || values[i] == nil {
		return 0
	}
	return *values[i]
}
