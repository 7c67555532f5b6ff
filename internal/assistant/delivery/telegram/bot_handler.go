package telegram

import (
	"context"
	"strconv"
	"strings"

	"golang-stock-assistant/internal/assistant/service"
	"golang-stock-assistant/internal/entity"
	"golang-stock-assistant/pkg/logger"
	"golang-stock-assistant/pkg/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

// commandIntents maps bot commands to the intent they resolve.
var commandIntents = map[string]entity.Intent{
	"price":     entity.IntentPrice,
	"predict":   entity.IntentPrediction,
	"technical": entity.IntentTechnical,
	"news":      entity.IntentNews,
}

// BotHandler answers Telegram messages through the assistant.
type BotHandler struct {
	bot       telegram.Bot
	assistant service.AssistantService
	logger    *logger.Logger
}

// NewBotHandler creates a new BotHandler.
func NewBotHandler(bot telegram.Bot, assistant service.AssistantService, logger *logger.Logger) *BotHandler {
	return &BotHandler{bot: bot, assistant: assistant, logger: logger}
}

// Start consumes updates until ctx is done.
func (h *BotHandler) Start(ctx context.Context) {
	updates := h.bot.Updates()
	h.logger.Info("Telegram bot started")

	for {
		select {
		case <-ctx.Done():
			h.bot.Stop()
			h.logger.Info("Telegram bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			h.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate answers a single update. Updates without message text are ignored.
func (h *BotHandler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	m := update.Message
	if m == nil || strings.TrimSpace(m.Text) == "" {
		return
	}

	ctx = logger.WithRequestID(ctx, uuid.NewString())
	user := userProfile(m.From)
	h.logger.InfoContext(ctx, "Telegram message received",
		logger.StringField("user_id", user.ID),
		logger.StringField("user_name", user.Name),
		logger.Field("chat_id", m.Chat.ID),
	)

	reply := h.answer(ctx, m)
	for _, text := range telegram.FormatChatMessage(reply) {
		if err := h.bot.SendMessage(m.Chat.ID, text); err != nil {
			h.logger.ErrorContext(ctx, "Failed to send telegram message", logger.Field("chat_id", m.Chat.ID), logger.ErrorField(err))
			return
		}
	}
}

// answer resolves commands directly and sends free text through the intent extractor.
// Command form: /price AAPL, /predict TSLA 1 month, /technical BBCA, /news [SYMBOL].
func (h *BotHandler) answer(ctx context.Context, m *tgbotapi.Message) entity.ChatMessage {
	if !m.IsCommand() {
		return h.assistant.Chat(ctx, m.Text)
	}

	kind, ok := commandIntents[m.Command()]
	if !ok {
		return h.assistant.Resolve(ctx, entity.IntentNone, "", "")
	}
	args := strings.Fields(m.CommandArguments())
	var sym, timeframe string
	if len(args) > 0 {
		sym = args[0]
	}
	if len(args) > 1 {
		timeframe = strings.Join(args[1:], " ")
	}
	return h.assistant.Resolve(ctx, kind, sym, timeframe)
}

func userProfile(u *tgbotapi.User) entity.UserProfile {
	if u == nil {
		return entity.UserProfile{}
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if u.UserName != "" {
		name = u.UserName
	}
	return entity.UserProfile{ID: strconv.FormatInt(u.ID, 10), Name: name}
}
