package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang-stock-assistant/internal/assistant/config"
	"golang-stock-assistant/internal/assistant/dto"
	"golang-stock-assistant/internal/assistant/symbol"
	"golang-stock-assistant/internal/entity"
	"golang-stock-assistant/pkg/logger"

	"github.com/go-resty/resty/v2"
)

const (
	defaultNewsAPIURL      = "https://newsapi.org/v2"
	defaultNewsAPIPageSize = 10
)

// newsAPIRepository searches NewsAPI, optionally through a CORS relay that
// takes the escaped target url appended to RelayURL.
type newsAPIRepository struct {
	client *resty.Client
	cfg    config.NewsAPI
	logger *logger.Logger
}

// NewNewsAPIRepository creates a new instance of newsAPIRepository.
func NewNewsAPIRepository(cfg config.NewsAPI, log *logger.Logger) NewsRepository {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultNewsAPIURL
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultNewsAPIPageSize
	}
	client := resty.New()
	client.SetTimeout(30 * time.Second)

	return &newsAPIRepository{
		client: client,
		cfg:    cfg,
		logger: log,
	}
}

func (r *newsAPIRepository) Name() string { return "news-api" }

// GetNews searches articles mentioning symbol, or business top headlines when
// symbol is empty.
func (r *newsAPIRepository) GetNews(ctx context.Context, sym string) ([]entity.NewsItem, error) {
	if r.cfg.APIKey == "" {
		return nil, ErrProviderNotConfigured
	}

	target := r.buildURL(sym)
	requestURL := target
	if r.cfg.RelayURL != "" {
		requestURL = r.cfg.RelayURL + url.QueryEscape(target)
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("X-Api-Key", r.cfg.APIKey).
		Get(requestURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news for %q: %w", sym, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("news api %q: %w: %d", sym, ErrUnexpectedStatus, resp.StatusCode())
	}

	var payload dto.NewsAPIResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse news response: %w", err)
	}
	if payload.Status != "ok" {
		return nil, fmt.Errorf("news api %s: %s", payload.Code, payload.Message)
	}

	items := make([]entity.NewsItem, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		if a.Title == "" || a.Title == "[Removed]" {
			continue
		}
		item := entity.NewsItem{
			Title:       a.Title,
			Source:      a.Source.Name,
			URL:         a.URL,
			Description: a.Description,
		}
		if !a.PublishedAt.IsZero() {
			item.PublishedAt = a.PublishedAt.Format(time.RFC3339)
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("news api %q: %w", sym, ErrEmptyPayload)
	}
	return items, nil
}

// buildURL carries the api key as a query parameter as well, since relays do
// not forward request headers.
func (r *newsAPIRepository) buildURL(sym string) string {
	q := url.Values{}
	q.Set("apiKey", r.cfg.APIKey)
	q.Set("pageSize", strconv.Itoa(r.cfg.PageSize))
	q.Set("language", "en")

	if sym == "" {
		q.Set("category", "business")
		return fmt.Sprintf("%s/top-headlines?%s", strings.TrimRight(r.cfg.BaseURL, "/"), q.Encode())
	}
	q.Set("q", symbol.Base(sym))
	q.Set("sortBy", "publishedAt")
	return fmt.Sprintf("%s/everything?%s", strings.TrimRight(r.cfg.BaseURL, "/"), q.Encode())
}
