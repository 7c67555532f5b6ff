package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang-stock-assistant/internal/assistant/config"
	"golang-stock-assistant/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAggregatorServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/stock-price", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		_, _ = w.Write([]byte(`{"symbol":"AAPL","price":190.1,"change":1.2,"changePercent":0.63,"volume":100,"currency":"USD"}`))
	})
	mux.HandleFunc("/api/ai-prediction", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1 month", r.URL.Query().Get("timeframe"))
		_, _ = w.Write([]byte(`{"symbol":"AAPL","currentPrice":190,"predictedPrice":195,"confidence":78,"timeframe":"1 month","recommendation":"buy"}`))
	})
	mux.HandleFunc("/api/technical-analysis", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"upstream","message":"boom"}`))
	})
	mux.HandleFunc("/api/market-news", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("symbol"))
		_, _ = w.Write([]byte(`[{"title":"Stocks rally","source":"Reuters","publishedAt":"2h ago","description":"d"}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAggregatorRepository(t *testing.T) {
	srv := newAggregatorServer(t)
	r := NewAggregatorRepository(config.Aggregator{BaseURL: srv.URL + "/api/"}, logger.NewNop())
	ctx := context.Background()

	q, err := r.GetQuote(ctx, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 190.1, q.Price)

	p, err := r.GetPrediction(ctx, "AAPL", "1 month")
	require.NoError(t, err)
	assert.InDelta(t, 0.78, p.Confidence, 1e-9)
	assert.Equal(t, 78, p.ConfidencePercent())

	_, err = r.GetTechnical(ctx, "AAPL")
	assert.ErrorIs(t, err, ErrUnexpectedStatus)

	news, err := r.GetNews(ctx, "")
	require.NoError(t, err)
	require.Len(t, news, 1)
	assert.Equal(t, "Stocks rally", news[0].Title)
}

func TestAggregatorRepository_NotConfigured(t *testing.T) {
	r := NewAggregatorRepository(config.Aggregator{}, logger.NewNop())
	_, err := r.GetQuote(context.Background(), "AAPL")
	assert.ErrorIs(t, err, ErrProviderNotConfigured)
}
