package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang-stock-assistant/internal/assistant/config"
	"golang-stock-assistant/internal/assistant/dto"
	"golang-stock-assistant/pkg/logger"

	"github.com/go-resty/resty/v2"
)

const defaultReplicateURL = "https://api.replicate.com/v1"

// replicateTextGenerator submits a prompt to a hosted model and polls the
// prediction until it completes.
type replicateTextGenerator struct {
	client *resty.Client
	cfg    config.Replicate
	logger *logger.Logger
}

// NewReplicateTextGenerator creates a new instance of replicateTextGenerator.
func NewReplicateTextGenerator(cfg config.Replicate, log *logger.Logger) TextGenerator {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultReplicateURL
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(cfg.BaseURL, "/"))
	client.SetTimeout(30 * time.Second)
	client.SetAuthToken(cfg.APIToken)
	client.SetHeader("Content-Type", "application/json")

	return &replicateTextGenerator{
		client: client,
		cfg:    cfg,
		logger: log,
	}
}

func (r *replicateTextGenerator) Name() string { return "replicate" }

func (r *replicateTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if r.cfg.APIToken == "" || r.cfg.Model == "" {
		return "", ErrProviderNotConfigured
	}

	var prediction dto.ReplicatePrediction
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(dto.ReplicatePredictionRequest{
			Input: dto.ReplicateInput{Prompt: prompt, MaxNewTokens: r.cfg.MaxTokens, Temperature: 0.2},
		}).
		Post(fmt.Sprintf("/models/%s/predictions", r.cfg.Model))
	if err != nil {
		return "", fmt.Errorf("failed to submit replicate prediction: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("replicate submit: %w: %d - %s", ErrUnexpectedStatus, resp.StatusCode(), resp.String())
	}
	if err := json.Unmarshal(resp.Body(), &prediction); err != nil {
		return "", fmt.Errorf("failed to decode replicate prediction: %w", err)
	}

	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()
	for {
		switch prediction.Status {
		case "succeeded":
			text := strings.TrimSpace(joinOutput(prediction.Output))
			if text == "" {
				return "", fmt.Errorf("replicate prediction %s: %w", prediction.ID, ErrEmptyPayload)
			}
			return text, nil
		case "failed", "canceled":
			return "", fmt.Errorf("replicate prediction %s %s: %v", prediction.ID, prediction.Status, prediction.Error)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}

		r.logger.DebugContext(ctx, "Polling replicate prediction", logger.StringField("id", prediction.ID), logger.StringField("status", prediction.Status))
		resp, err := r.client.R().
			SetContext(ctx).
			Get(fmt.Sprintf("/predictions/%s", prediction.ID))
		if err != nil {
			return "", fmt.Errorf("failed to poll replicate prediction: %w", err)
		}
		if resp.IsError() {
			return "", fmt.Errorf("replicate poll: %w: %d", ErrUnexpectedStatus, resp.StatusCode())
		}
		if err := json.Unmarshal(resp.Body(), &prediction); err != nil {
			return "", fmt.Errorf("failed to decode replicate prediction: %w", err)
		}
	}
}

// joinOutput concatenates streamed token chunks or returns a plain string output.
func joinOutput(output interface{}) string {
	switch v := output.(type) {
	case string:
		return v
	case []interface{}:
		var b strings.Builder
		for _, chunk := range v {
			if s, ok := chunk.(string); ok {
				b.WriteString(s)
			}
		}
		return b.String()
	default:
		return ""
	}
}
