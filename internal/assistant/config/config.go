package config

import (
	"time"

	"golang-stock-assistant/pkg/config"
)

// Cache holds TTLs for resolved quotes and news lists.
type Cache struct {
	QuoteTTL time.Duration `mapstructure:"quote_ttl"`
	NewsTTL  time.Duration `mapstructure:"news_ttl"`
}

// Cascade holds the per-attempt timeouts of the resolution cascades.
type Cascade struct {
	DefaultTimeout    time.Duration `mapstructure:"default_timeout"`
	PredictionTimeout time.Duration `mapstructure:"prediction_timeout"`
	NewsTimeout       time.Duration `mapstructure:"news_timeout"`
}

// YahooFinance holds the configuration for the Yahoo Finance chart API.
type YahooFinance struct {
	Enabled             bool   `mapstructure:"enabled"`
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// AlphaVantage holds the configuration for the Alpha Vantage API.
type AlphaVantage struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// NewsAPI holds the configuration for the news search API.
type NewsAPI struct {
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
	RelayURL string `mapstructure:"relay_url"`
	PageSize int    `mapstructure:"page_size"`
}

// GoogleNews holds the configuration for the Google News RSS feed.
type GoogleNews struct {
	Enabled  bool   `mapstructure:"enabled"`
	BaseURL  string `mapstructure:"base_url"`
	Language string `mapstructure:"language"`
	Region   string `mapstructure:"region"`
	MaxItems int    `mapstructure:"max_items"`
}

// Aggregator holds the base url of a remote aggregator exposing the
// stock-price, ai-prediction, technical-analysis and market-news endpoints.
type Aggregator struct {
	BaseURL string `mapstructure:"base_url"`
}

// AI holds configuration for AI providers.
type AI struct {
	Provider string `mapstructure:"provider"`
	Parser   string `mapstructure:"parser"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// OpenAI holds the configuration for an OpenAI compatible chat completion API.
type OpenAI struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// Replicate holds the configuration for a submit-and-poll inference API.
type Replicate struct {
	APIToken     string        `mapstructure:"api_token"`
	BaseURL      string        `mapstructure:"base_url"`
	Model        string        `mapstructure:"model"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	MaxTokens    int           `mapstructure:"max_tokens"`
}

// Telegram holds configuration for the Telegram bot front-end.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	Debug    bool   `mapstructure:"debug"`
}

// Warmer holds configuration for the cache warmer job.
type Warmer struct {
	Enabled   bool     `mapstructure:"enabled"`
	Schedule  string   `mapstructure:"schedule"`
	Watchlist []string `mapstructure:"watchlist"`
}

// Config holds the full configuration for the assistant service.
type Config struct {
	App          config.App    `mapstructure:"app"`
	Logger       config.Logger `mapstructure:"logger"`
	API          config.API    `mapstructure:"api"`
	Redis        config.Redis  `mapstructure:"redis"`
	Cache        Cache         `mapstructure:"cache"`
	Cascade      Cascade       `mapstructure:"cascade"`
	YahooFinance YahooFinance  `mapstructure:"yahoo_finance"`
	AlphaVantage AlphaVantage  `mapstructure:"alpha_vantage"`
	NewsAPI      NewsAPI       `mapstructure:"news_api"`
	GoogleNews   GoogleNews    `mapstructure:"google_news"`
	Aggregator   Aggregator    `mapstructure:"aggregator"`
	AI           AI            `mapstructure:"ai"`
	Gemini       Gemini        `mapstructure:"gemini"`
	OpenAI       OpenAI        `mapstructure:"openai"`
	Replicate    Replicate     `mapstructure:"replicate"`
	Telegram     Telegram      `mapstructure:"telegram"`
	Warmer       Warmer        `mapstructure:"warmer"`
}

// Load loads the assistant configuration from the given path and fills in
// defaults for unset timeouts.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Cascade.DefaultTimeout <= 0 {
		c.Cascade.DefaultTimeout = 10 * time.Second
	}
	if c.Cascade.PredictionTimeout <= 0 {
		c.Cascade.PredictionTimeout = 15 * time.Second
	}
	if c.Cascade.NewsTimeout <= 0 {
		c.Cascade.NewsTimeout = 8 * time.Second
	}
	if c.Cache.QuoteTTL <= 0 {
		c.Cache.QuoteTTL = time.Minute
	}
	if c.Cache.NewsTTL <= 0 {
		c.Cache.NewsTTL = 10 * time.Minute
	}
	if c.AI.Parser == "" {
		c.AI.Parser = "auto"
	}
	if c.Replicate.PollInterval <= 0 {
		c.Replicate.PollInterval = time.Second
	}
	if c.API.Port == 0 {
		c.API.Port = 8080
	}
	if c.Warmer.Schedule == "" {
		c.Warmer.Schedule = "@every 10m"
	}
}
