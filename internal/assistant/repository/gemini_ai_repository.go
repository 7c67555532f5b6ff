package repository

import (
	"context"
	"fmt"
	"strings"

	"golang-stock-assistant/internal/assistant/config"
	"golang-stock-assistant/pkg/logger"
	"golang-stock-assistant/pkg/ratelimit"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// geminiTextGenerator is an implementation of TextGenerator that uses the Google Gemini API.
type geminiTextGenerator struct {
	cfg            config.Gemini
	logger         *logger.Logger
	tokenLimiter   *ratelimit.TokenLimiter
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

// NewGeminiTextGenerator creates a new instance of geminiTextGenerator. A nil
// client yields a generator that reports ErrProviderNotConfigured.
func NewGeminiTextGenerator(cfg config.Gemini, log *logger.Logger, genAiClient *genai.Client) TextGenerator {
	return &geminiTextGenerator{
		cfg:            cfg,
		logger:         log,
		requestLimiter: newRequestLimiter(cfg.MaxRequestPerMinute),
		tokenLimiter:   ratelimit.NewTokenLimiter(cfg.MaxTokenPerMinute),
		genAiClient:    genAiClient,
	}
}

// NewGenAIClient creates the Gemini SDK client, or returns nil when no API key is configured.
func NewGenAIClient(ctx context.Context, cfg config.Gemini) (*genai.Client, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client failed: %w", err)
	}
	return client, nil
}

func (r *geminiTextGenerator) Name() string { return "gemini" }

func (r *geminiTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if r.genAiClient == nil || r.cfg.APIKey == "" {
		return "", ErrProviderNotConfigured
	}

	contents := genai.Text(prompt)
	tokenResp, err := r.genAiClient.Models.CountTokens(ctx, r.cfg.Model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to count tokens: %w", err)
	}

	r.logger.DebugContext(ctx, "Gemini token count",
		logger.IntField("total_tokens", int(tokenResp.TotalTokens)),
		logger.IntField("remaining", r.tokenLimiter.GetRemaining()),
	)

	if err := r.tokenLimiter.Wait(ctx, int(tokenResp.TotalTokens)); err != nil {
		return "", fmt.Errorf("failed to wait for token limit: %w", err)
	}
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for request limit: %w", err)
	}

	if r.cfg.MaxTokenPerMinute > 0 && int(tokenResp.TotalTokens) > r.cfg.MaxTokenPerMinute/2 {
		r.logger.Warn("Token has exceeded 50% of the limit", logger.IntField("remaining", r.tokenLimiter.GetRemaining()))
	}

	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.Model, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.2)),
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate content failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("gemini response: %w", ErrEmptyPayload)
	}
	return text, nil
}
