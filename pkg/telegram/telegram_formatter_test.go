package telegram

import (
	"strings"
	"testing"
	"time"

	"golang-stock-assistant/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `BBCA\_JK \*up\* \[1]`, EscapeMarkdown("BBCA_JK *up* [1]"))
}

func TestFormatChatMessage_TextOnly(t *testing.T) {
	msg := entity.NewChatMessage(entity.AuthorAssistant, "Sorry, I couldn't fetch the current price for XYZ_1.", nil)

	out := FormatChatMessage(msg)

	require.Len(t, out, 1)
	assert.Equal(t, `Sorry, I couldn't fetch the current price for XYZ\_1.`, out[0])
}

func TestFormatQuote(t *testing.T) {
	pe := 28.5
	out := FormatQuote(&entity.StockQuote{
		Symbol: "AAPL", Price: 175.43, Change: -2.15, ChangePercent: -1.24,
		Open: 174.1, High: 176.82, Low: 173.21, Volume: 45234567, PE: &pe, Currency: "USD",
		Timestamp: time.Date(2024, 5, 6, 9, 30, 0, 0, time.UTC),
	})

	assert.True(t, strings.HasPrefix(out, "📉 *AAPL*"))
	assert.Contains(t, out, "175.43 USD")
	assert.Contains(t, out, "-2.15 (-1.24%)")
	assert.Contains(t, out, "*P/E:* 28.50")
	assert.NotContains(t, out, "Market Cap")
	assert.Contains(t, out, "Mon, 06 May 2024 16:30 WIB")
}

func TestFormatPrediction(t *testing.T) {
	out := FormatPrediction(&entity.Prediction{
		Symbol: "TSLA", CurrentPrice: 248.5, PredictedPrice: 255, Confidence: 0.78,
		Timeframe: "1 week", RiskLevel: entity.RiskMedium, Recommendation: entity.RecommendationBuy,
		Reasoning: "Momentum is building",
	})

	assert.Contains(t, out, "*Prediction for TSLA* (1 week)")
	assert.Contains(t, out, "*Confidence:* 78%")
	assert.Contains(t, out, "🟢 *Action:* BUY")
	assert.Contains(t, out, "_Momentum is building_")
}

func TestFormatTechnical_WithCommentary(t *testing.T) {
	out := FormatTechnical(&entity.TechnicalSnapshot{
		Symbol: "BBCA.JK", RSI: 62.4, Trend: entity.TrendBullish,
		MovingAverages: entity.MovingAverages{SMA20: 9100, SMA50: 9000, SMA200: 8800},
		Support: 8900, Resistance: 9400,
		AIAnalysis: &entity.AICommentary{Sentiment: "bullish", KeyFactors: []string{"foreign inflow", "rate cut"}},
	})

	assert.Contains(t, out, "😊 *Trend:* bullish")
	assert.Contains(t, out, "RSI(14): 62.40")
	assert.Contains(t, out, "  - foreign inflow\n  - rate cut")
	assert.NotContains(t, out, "Outlook")
}

func TestFormatChatMessage_NewsSplitsLongLists(t *testing.T) {
	now := time.Now().UTC()
	items := make([]entity.NewsItem, 60)
	for i := range items {
		items[i] = entity.NewsItem{
			Title:       strings.Repeat("Market headline ", 6),
			Source:      "Reuters",
			PublishedAt: now.Add(-3 * time.Hour).Format(time.RFC3339),
			URL:         "https://example.com/news/" + strings.Repeat("a", 20),
		}
	}
	msg := entity.NewChatMessage(entity.AuthorAssistant, "Here is the latest market news:", &entity.ChatPayload{Kind: entity.IntentNews, News: items})

	out := FormatChatMessage(msg)

	require.Greater(t, len(out), 1)
	assert.True(t, strings.HasPrefix(out[0], "Here is the latest market news:"))
	for _, m := range out {
		assert.LessOrEqual(t, len(m), maxMessageLen)
	}
	assert.Contains(t, out[0], "Reuters · 3h ago")
}
