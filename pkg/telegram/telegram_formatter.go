package telegram

import (
	"fmt"
	"strings"
	"time"

	"golang-stock-assistant/internal/entity"
	"golang-stock-assistant/pkg/utils"
)

const maxMessageLen = 4090

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// EscapeMarkdown escapes the characters that legacy Telegram Markdown treats as markup.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// FormatChatMessage renders an assistant message and its payload as one or
// more Markdown messages, each within Telegram's length limit.
func FormatChatMessage(msg entity.ChatMessage) []string {
	var body string
	if p := msg.Payload; p != nil {
		switch {
		case p.Quote != nil:
			body = FormatQuote(p.Quote)
		case p.Prediction != nil:
			body = FormatPrediction(p.Prediction)
		case p.Technical != nil:
			body = FormatTechnical(p.Technical)
		case len(p.News) > 0:
			return splitMessages(EscapeMarkdown(msg.Content)+"\n\n", formatNewsEntries(p.News, time.Now()))
		}
	}
	if body == "" {
		body = EscapeMarkdown(msg.Content)
	}
	return splitMessages("", []string{body})
}

// FormatQuote formats a stock quote into a Markdown string for Telegram.
func FormatQuote(q *entity.StockQuote) string {
	var sb strings.Builder

	icon := "📈"
	if q.Change < 0 {
		icon = "📉"
	}
	sb.WriteString(fmt.Sprintf("%s *%s*\n", icon, EscapeMarkdown(q.Symbol)))
	sb.WriteString(fmt.Sprintf("💰 *Price:* %.2f %s\n", q.Price, q.Currency))
	sb.WriteString(fmt.Sprintf("🔁 *Change:* %+.2f (%+.2f%%)\n", q.Change, q.ChangePercent))
	sb.WriteString(fmt.Sprintf("📊 *Open/High/Low:* %.2f / %.2f / %.2f\n", q.Open, q.High, q.Low))
	sb.WriteString(fmt.Sprintf("📦 *Volume:* %d\n", q.Volume))
	if q.MarketCap != nil {
		sb.WriteString(fmt.Sprintf("🏦 *Market Cap:* %.0f\n", *q.MarketCap))
	}
	if q.PE != nil {
		sb.WriteString(fmt.Sprintf("🧮 *P/E:* %.2f\n", *q.PE))
	}
	sb.WriteString(fmt.Sprintf("🕒 %s", utils.PrettyDate(q.Timestamp)))
	return sb.String()
}

// FormatPrediction formats a prediction into a Markdown string for Telegram.
func FormatPrediction(p *entity.Prediction) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("🔮 *Prediction for %s* (%s)\n", EscapeMarkdown(p.Symbol), EscapeMarkdown(p.Timeframe)))
	sb.WriteString(fmt.Sprintf("💵 *Current:* %.2f\n", p.CurrentPrice))
	sb.WriteString(fmt.Sprintf("🎯 *Predicted:* %.2f\n", p.PredictedPrice))
	sb.WriteString(fmt.Sprintf("📊 *Confidence:* %d%%\n", p.ConfidencePercent()))
	if p.RiskLevel != "" {
		sb.WriteString(fmt.Sprintf("🛡 *Risk:* %s\n", p.RiskLevel))
	}
	sb.WriteString(fmt.Sprintf("%s *Action:* %s\n", actionIcon(p.Recommendation), strings.ToUpper(string(p.Recommendation))))
	if p.Reasoning != "" {
		sb.WriteString(fmt.Sprintf("\n🤔 *Reasoning:*\n_%s_", EscapeMarkdown(p.Reasoning)))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatTechnical formats a technical snapshot into a Markdown string for Telegram.
func FormatTechnical(t *entity.TechnicalSnapshot) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📊 *Technical Analysis for %s*\n", EscapeMarkdown(t.Symbol)))
	sb.WriteString(fmt.Sprintf("%s *Trend:* %s\n", trendIcon(t.Trend), t.Trend))
	sb.WriteString(fmt.Sprintf("• RSI(14): %.2f\n", t.RSI))
	sb.WriteString(fmt.Sprintf("• MACD: %.4f (signal %.4f, hist %.4f)\n", t.MACD.MACD, t.MACD.Signal, t.MACD.Histogram))
	sb.WriteString(fmt.Sprintf("• SMA 20/50/200: %.2f / %.2f / %.2f\n", t.MovingAverages.SMA20, t.MovingAverages.SMA50, t.MovingAverages.SMA200))
	sb.WriteString(fmt.Sprintf("• Support: %.2f\n", t.Support))
	sb.WriteString(fmt.Sprintf("• Resistance: %.2f\n", t.Resistance))

	if a := t.AIAnalysis; a != nil {
		sb.WriteString(fmt.Sprintf("\n🤖 *AI Sentiment:* %s\n", EscapeMarkdown(a.Sentiment)))
		if len(a.KeyFactors) > 0 {
			sb.WriteString("🔑 *Key Factors:*\n")
			for _, f := range a.KeyFactors {
				sb.WriteString(fmt.Sprintf("  - %s\n", EscapeMarkdown(f)))
			}
		}
		if a.MarketOutlook != "" {
			sb.WriteString(fmt.Sprintf("🔭 *Outlook:* %s\n", EscapeMarkdown(a.MarketOutlook)))
		}
		if a.RiskAssessment != "" {
			sb.WriteString(fmt.Sprintf("🛡 *Risk:* %s\n", EscapeMarkdown(a.RiskAssessment)))
		}
		if a.Recommendation != "" {
			sb.WriteString(fmt.Sprintf("💡 *Recommendation:* %s\n", EscapeMarkdown(a.Recommendation)))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatNewsEntries(items []entity.NewsItem, now time.Time) []string {
	entries := make([]string, 0, len(items))
	for i, n := range items {
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("%d. *%s*\n", i+1, EscapeMarkdown(n.Title)))

		published := n.PublishedAt
		if t, err := time.Parse(time.RFC3339, published); err == nil {
			published = utils.RelativeTime(t, now)
		}
		sb.WriteString(fmt.Sprintf("📰 %s · %s\n", EscapeMarkdown(n.Source), published))
		if n.URL != "" {
			sb.WriteString(fmt.Sprintf("🔗 %s\n", n.URL))
		}
		sb.WriteString("\n")
		entries = append(entries, sb.String())
	}
	return entries
}

// splitMessages packs header and entries into as few messages as possible.
// A single entry is assumed to fit in one message.
func splitMessages(header string, entries []string) []string {
	var messages []string
	var current strings.Builder
	current.WriteString(header)

	for _, entry := range entries {
		if current.Len() > 0 && current.Len()+len(entry) > maxMessageLen {
			messages = append(messages, strings.TrimRight(current.String(), "\n"))
			current.Reset()
		}
		current.WriteString(entry)
	}
	if current.Len() > 0 {
		messages = append(messages, strings.TrimRight(current.String(), "\n"))
	}
	return messages
}

func actionIcon(r entity.Recommendation) string {
	switch r {
	case entity.RecommendationBuy:
		return "🟢"
	case entity.RecommendationSell:
		return "🔴"
	default:
		return "🟡"
	}
}

func trendIcon(t entity.Trend) string {
	switch t {
	case entity.TrendBullish:
		return "😊"
	case entity.TrendBearish:
		return "😟"
	default:
		return "😐"
	}
}
