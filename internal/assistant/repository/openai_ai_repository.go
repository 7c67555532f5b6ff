package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang-stock-assistant/internal/assistant/config"
	"golang-stock-assistant/internal/assistant/dto"
	"golang-stock-assistant/pkg/logger"
	"golang-stock-assistant/pkg/ratelimit"

	"golang.org/x/time/rate"
)

type openaiTextGenerator struct {
	client         *http.Client
	cfg            config.OpenAI
	logger         *logger.Logger
	tokenLimiter   *ratelimit.TokenLimiter
	requestLimiter *rate.Limiter
}

// NewOpenAITextGenerator creates a generator for any OpenAI compatible chat
// completion endpoint. BaseURL is the full completions url.
func NewOpenAITextGenerator(cfg config.OpenAI, log *logger.Logger) TextGenerator {
	return &openaiTextGenerator{
		client: &http.Client{
			Timeout: 90 * time.Second,
		},
		cfg:            cfg,
		logger:         log,
		requestLimiter: newRequestLimiter(cfg.MaxRequestPerMinute),
		tokenLimiter:   ratelimit.NewTokenLimiter(cfg.MaxTokenPerMinute),
	}
}

func (r *openaiTextGenerator) Name() string { return "openai" }

func (r *openaiTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if r.cfg.APIKey == "" || r.cfg.BaseURL == "" {
		return "", ErrProviderNotConfigured
	}
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for request limit: %w", err)
	}

	payload := dto.OpenAIRequest{
		Model: r.cfg.Model,
		Messages: []dto.OpenAIMessage{
			{
				Role:    "user",
				Content: prompt,
			},
		},
	}
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.BaseURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", r.cfg.APIKey))

	r.logger.DebugContext(ctx, "Sending request to OpenAI API", logger.StringField("url", r.cfg.BaseURL), logger.StringField("model", r.cfg.Model))

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request to OpenAI API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		r.logger.DebugContext(ctx, "Received non-OK response from OpenAI API", logger.IntField("status_code", resp.StatusCode), logger.StringField("model", r.cfg.Model))
		return "", fmt.Errorf("openai: %w: %d - %s", ErrUnexpectedStatus, resp.StatusCode, string(body))
	}

	var openaiResp dto.OpenAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openaiResp); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	if r.cfg.MaxTokenPerMinute > 0 && openaiResp.Usage.TotalTokens > r.cfg.MaxTokenPerMinute/2 {
		r.logger.Warn("Token has exceeded 50% of the limit", logger.IntField("remaining", r.tokenLimiter.GetRemaining()))
	}
	if openaiResp.Usage.TotalTokens > 0 {
		if err := r.tokenLimiter.Wait(ctx, openaiResp.Usage.TotalTokens); err != nil {
			return "", fmt.Errorf("failed to wait for token limit: %w", err)
		}
	}

	if len(openaiResp.Choices) == 0 || strings.TrimSpace(openaiResp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("openai response: %w", ErrEmptyPayload)
	}
	return openaiResp.Choices[0].Message.Content, nil
}
