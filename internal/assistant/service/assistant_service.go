package service

import (
	"context"
	"fmt"
	"strings"

	"golang-stock-assistant/internal/assistant/intent"
	"golang-stock-assistant/internal/assistant/symbol"
	"golang-stock-assistant/internal/entity"
	"golang-stock-assistant/pkg/logger"
)

const helpMessage = "I can help with stock prices, AI predictions, technical analysis and market news. " +
	"Try \"AAPL price\", \"Predict TSLA next week\", \"Technical analysis for BBCA\" or \"Latest market news\"."

// AssistantService answers chat messages with market data.
type AssistantService interface {
	// Chat classifies message and answers it.
	Chat(ctx context.Context, message string) entity.ChatMessage
	// Resolve answers an already classified request.
	Resolve(ctx context.Context, kind entity.Intent, sym, timeframe string) entity.ChatMessage
}

type assistantService struct {
	resolver ResolverService
	logger   *logger.Logger
}

// NewAssistantService creates a new assistant service.
func NewAssistantService(resolver ResolverService, log *logger.Logger) AssistantService {
	return &assistantService{resolver: resolver, logger: log}
}

func (s *assistantService) Chat(ctx context.Context, message string) entity.ChatMessage {
	c := intent.Classify(message)
	s.logger.DebugContext(ctx, "Classified chat message",
		logger.StringField("intent", string(c.Intent)),
		logger.StringField("symbol", c.Symbol),
		logger.StringField("timeframe", c.Timeframe),
	)
	return s.Resolve(ctx, c.Intent, c.Symbol, c.Timeframe)
}

func (s *assistantService) Resolve(ctx context.Context, kind entity.Intent, sym, timeframe string) entity.ChatMessage {
	if sym != "" {
		sym = symbol.Normalize(sym)
	}
	if sym == "" && kind != entity.IntentNews {
		kind = entity.IntentNone
	}
	if timeframe == "" {
		timeframe = intent.DefaultTimeframe
	}

	switch kind {
	case entity.IntentPrice:
		return s.price(ctx, sym)
	case entity.IntentPrediction:
		return s.prediction(ctx, sym, timeframe)
	case entity.IntentTechnical:
		return s.technical(ctx, sym)
	case entity.IntentNews:
		return s.news(ctx, sym)
	default:
		return reply(helpMessage, nil)
	}
}

func (s *assistantService) price(ctx context.Context, sym string) entity.ChatMessage {
	q := s.resolver.ResolvePrice(ctx, sym)
	if q == nil {
		return reply(fmt.Sprintf("Sorry, I couldn't fetch the current price for %s. Please check the symbol and try again.", sym), nil)
	}
	price := fmt.Sprintf("%.2f", q.Price)
	if q.Currency != "" {
		price += " " + q.Currency
	}
	content := fmt.Sprintf("%s is trading at %s (%+.2f, %+.2f%%).", q.Symbol, price, q.Change, q.ChangePercent)
	return reply(content, &entity.ChatPayload{Kind: entity.IntentPrice, Quote: q})
}

func (s *assistantService) prediction(ctx context.Context, sym, timeframe string) entity.ChatMessage {
	p := s.resolver.ResolvePrediction(ctx, sym, timeframe)
	content := fmt.Sprintf("My %s outlook for %s: from %.2f to %.2f with %d%% confidence. Recommendation: %s.",
		p.Timeframe, p.Symbol, p.CurrentPrice, p.PredictedPrice, p.ConfidencePercent(), strings.ToUpper(string(p.Recommendation)))
	return reply(content, &entity.ChatPayload{Kind: entity.IntentPrediction, Prediction: p})
}

func (s *assistantService) technical(ctx context.Context, sym string) entity.ChatMessage {
	t := s.resolver.ResolveTechnical(ctx, sym)
	if t == nil {
		return reply(fmt.Sprintf("Sorry, I couldn't run a technical analysis for %s right now. Please try again later.", sym), nil)
	}
	content := fmt.Sprintf("Technical analysis for %s: RSI %.1f, trend %s, support %.2f, resistance %.2f.",
		t.Symbol, t.RSI, t.Trend, t.Support, t.Resistance)
	return reply(content, &entity.ChatPayload{Kind: entity.IntentTechnical, Technical: t})
}

func (s *assistantService) news(ctx context.Context, sym string) entity.ChatMessage {
	items := s.resolver.ResolveNews(ctx, sym)
	if len(items) == 0 {
		if sym == "" {
			return reply("Sorry, I couldn't find any market news right now.", nil)
		}
		return reply(fmt.Sprintf("Sorry, I couldn't find any recent news for %s.", sym), nil)
	}

	content := "Here is the latest market news:"
	if sym != "" {
		content = fmt.Sprintf("Here is the latest news for %s:", sym)
	}
	return reply(content, &entity.ChatPayload{Kind: entity.IntentNews, News: items})
}

func reply(content string, payload *entity.ChatPayload) entity.ChatMessage {
	return entity.NewChatMessage(entity.AuthorAssistant, content, payload)
}
