package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang-stock-assistant/internal/entity"
	"golang-stock-assistant/pkg/common"
	"golang-stock-assistant/pkg/logger"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// QuoteCache stores successfully resolved quotes by requested symbol.
type QuoteCache interface {
	Get(ctx context.Context, symbol string) (*entity.StockQuote, bool)
	Set(ctx context.Context, symbol string, quote *entity.StockQuote)
}

// NewsCache stores successfully resolved news lists. The empty symbol holds
// general market news.
type NewsCache interface {
	Get(symbol string) ([]entity.NewsItem, bool)
	Set(symbol string, items []entity.NewsItem)
}

type redisQuoteCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logger.Logger
}

// NewRedisQuoteCache creates a QuoteCache backed by Redis.
func NewRedisQuoteCache(client *redis.Client, ttl time.Duration, log *logger.Logger) QuoteCache {
	return &redisQuoteCache{client: client, ttl: ttl, logger: log}
}

func (c *redisQuoteCache) Get(ctx context.Context, symbol string) (*entity.StockQuote, bool) {
	raw, err := c.client.Get(ctx, fmt.Sprintf(common.RedisKeyLastPrice, symbol)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "Failed to read quote cache", logger.StringField("symbol", symbol), logger.ErrorField(err))
		}
		return nil, false
	}
	var q entity.StockQuote
	if err := json.Unmarshal(raw, &q); err != nil {
		c.logger.WarnContext(ctx, "Failed to decode cached quote", logger.StringField("symbol", symbol), logger.ErrorField(err))
		return nil, false
	}
	return &q, true
}

func (c *redisQuoteCache) Set(ctx context.Context, symbol string, quote *entity.StockQuote) {
	raw, err := json.Marshal(quote)
	if err != nil {
		c.logger.WarnContext(ctx, "Failed to encode quote", logger.StringField("symbol", symbol), logger.ErrorField(err))
		return
	}
	if err := c.client.Set(ctx, fmt.Sprintf(common.RedisKeyLastPrice, symbol), raw, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "Failed to write quote cache", logger.StringField("symbol", symbol), logger.ErrorField(err))
	}
}

type memoryQuoteCache struct {
	store *cache.Cache
}

// NewMemoryQuoteCache creates an in-process QuoteCache.
func NewMemoryQuoteCache(ttl time.Duration) QuoteCache {
	return &memoryQuoteCache{store: cache.New(ttl, 2*ttl)}
}

func (c *memoryQuoteCache) Get(_ context.Context, symbol string) (*entity.StockQuote, bool) {
	v, ok := c.store.Get(symbol)
	if !ok {
		return nil, false
	}
	q := *v.(*entity.StockQuote)
	return &q, true
}

func (c *memoryQuoteCache) Set(_ context.Context, symbol string, quote *entity.StockQuote) {
	q := *quote
	c.store.SetDefault(symbol, &q)
}

type memoryNewsCache struct {
	store *cache.Cache
}

// NewMemoryNewsCache creates an in-process NewsCache.
func NewMemoryNewsCache(ttl time.Duration) NewsCache {
	return &memoryNewsCache{store: cache.New(ttl, 2*ttl)}
}

func (c *memoryNewsCache) Get(symbol string) ([]entity.NewsItem, bool) {
	v, ok := c.store.Get(newsKey(symbol))
	if !ok {
		return nil, false
	}
	return append([]entity.NewsItem(nil), v.([]entity.NewsItem)...), true
}

func (c *memoryNewsCache) Set(symbol string, items []entity.NewsItem) {
	c.store.SetDefault(newsKey(symbol), append([]entity.NewsItem(nil), items...))
}

func newsKey(symbol string) string {
	if symbol == "" {
		return common.GeneralNewsKey
	}
	return symbol
}

type noopQuoteCache struct{}

func (noopQuoteCache) Get(context.Context, string) (*entity.StockQuote, bool) { return nil, false }
func (noopQuoteCache) Set(context.Context, string, *entity.StockQuote) {}

type noopNewsCache struct{}

func (noopNewsCache) Get(string) ([]entity.NewsItem, bool) { return nil, false }
func (noopNewsCache) Set(string, []entity.NewsItem) {}
