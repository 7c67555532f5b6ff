package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"golang-stock-assistant/internal/assistant/config"
	"golang-stock-assistant/internal/assistant/dto"
	"golang-stock-assistant/internal/entity"
	"golang-stock-assistant/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	text   string
	err    error
	prompt string
}

func (s *stubGenerator) Name() string { return "stub" }

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.text, s.err
}

func newAIRepo(t *testing.T, gen TextGenerator) AIRepository {
	t.Helper()
	parser, err := NewParser(ParserAuto)
	require.NoError(t, err)
	return NewAIRepository(gen, parser, logger.NewNop())
}

var aaplQuote = &entity.StockQuote{Symbol: "AAPL", Price: 100, Change: 1, Currency: "USD"}

func TestAIRepository_Predict(t *testing.T) {
	gen := &stubGenerator{text: `{"predicted_price": 110, "confidence": 82, "reasoning": "ok"}`}
	repo := newAIRepo(t, gen)

	p, err := repo.Predict(context.Background(), aaplQuote, "1 month")
	require.NoError(t, err)

	assert.Contains(t, gen.prompt, "AAPL")
	assert.Contains(t, gen.prompt, "1 month")
	assert.Equal(t, 100.0, p.CurrentPrice)
	assert.Equal(t, 110.0, p.PredictedPrice)
	assert.InDelta(t, 0.82, p.Confidence, 1e-9)
	assert.Equal(t, entity.RiskLow, p.RiskLevel)
	assert.Equal(t, entity.RecommendationBuy, p.Recommendation)
	assert.Equal(t, "1 month", p.Timeframe)
	assert.Equal(t, "ai-stub", p.Source)
}

func TestAIRepository_PredictKeepsModelLabels(t *testing.T) {
	gen := &stubGenerator{text: `{"predicted_price": 110, "confidence": 0.5, "risk_level": "low", "recommendation": "hold"}`}
	p, err := newAIRepo(t, gen).Predict(context.Background(), aaplQuote, "1 week")
	require.NoError(t, err)
	assert.Equal(t, entity.RiskLow, p.RiskLevel)
	assert.Equal(t, entity.RecommendationHold, p.Recommendation)
}

func TestAIRepository_PredictParseFailure(t *testing.T) {
	_, err := newAIRepo(t, &stubGenerator{text: "I can't help with that."}).Predict(context.Background(), aaplQuote, "1 week")
	assert.ErrorIs(t, err, ErrParseFailed)
}

func TestAIRepository_PredictGeneratorError(t *testing.T) {
	_, err := newAIRepo(t, &stubGenerator{err: ErrProviderNotConfigured}).Predict(context.Background(), aaplQuote, "1 week")
	assert.ErrorIs(t, err, ErrProviderNotConfigured)
}

func TestAIRepository_PredictNeedsQuote(t *testing.T) {
	_, err := newAIRepo(t, &stubGenerator{}).Predict(context.Background(), nil, "1 week")
	assert.ErrorIs(t, err, ErrEmptyPayload)
}

func TestAIRepository_AnalyzeTechnical(t *testing.T) {
	gen := &stubGenerator{text: "Sentiment: neutral\nMarket Outlook: Range bound."}
	c, err := newAIRepo(t, gen).AnalyzeTechnical(context.Background(), &entity.TechnicalSnapshot{Symbol: "AAPL", RSI: 55})
	require.NoError(t, err)
	assert.Equal(t, "neutral", c.Sentiment)
	assert.Contains(t, gen.prompt, "RSI(14): 55.00")
}

func TestOpenAITextGenerator_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		var req dto.OpenAIRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-test", req.Model)
		assert.Equal(t, "hello", req.Messages[0].Content)
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"world"}}],"usage":{"total_tokens":12}}`))
	}))
	defer srv.Close()

	gen := NewOpenAITextGenerator(config.OpenAI{APIKey: "sk-test", BaseURL: srv.URL, Model: "gpt-test", MaxTokenPerMinute: 1000}, logger.NewNop())
	text, err := gen.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "world", text)
}

func TestOpenAITextGenerator_NonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	gen := NewOpenAITextGenerator(config.OpenAI{APIKey: "sk-test", BaseURL: srv.URL}, logger.NewNop())
	_, err := gen.Generate(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestReplicateTextGenerator_SubmitAndPoll(t *testing.T) {
	var polls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer r8-test", r.Header.Get("Authorization"))
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/models/meta/llama/predictions":
			var req dto.ReplicatePredictionRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "prompt text", req.Input.Prompt)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"p1","status":"starting"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/predictions/p1":
			if atomic.AddInt32(&polls, 1) < 2 {
				_, _ = w.Write([]byte(`{"id":"p1","status":"processing"}`))
				return
			}
			_, _ = w.Write([]byte(`{"id":"p1","status":"succeeded","output":["Predicted ","Price: 12"]}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	gen := NewReplicateTextGenerator(config.Replicate{
		APIToken:     "r8-test",
		BaseURL:      srv.URL,
		Model:        "meta/llama",
		PollInterval: 5 * time.Millisecond,
	}, logger.NewNop())

	text, err := gen.Generate(context.Background(), "prompt text")
	require.NoError(t, err)
	assert.Equal(t, "Predicted Price: 12", text)
	assert.Equal(t, int32(2), atomic.LoadInt32(&polls))
}

func TestReplicateTextGenerator_Failed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"p2","status":"failed","error":"out of memory"}`))
	}))
	defer srv.Close()

	gen := NewReplicateTextGenerator(config.Replicate{APIToken: "t", BaseURL: srv.URL, Model: "m/x"}, logger.NewNop())
	_, err := gen.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "out of memory"))
}

func TestGeminiTextGenerator_NotConfigured(t *testing.T) {
	gen := NewGeminiTextGenerator(config.Gemini{}, logger.NewNop(), nil)
	_, err := gen.Generate(context.Background(), "p")
	assert.True(t, errors.Is(err, ErrProviderNotConfigured))
}
