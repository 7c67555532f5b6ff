package telegram

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"golang-stock-assistant/internal/entity"
	"golang-stock-assistant/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	chatID int64
	text   string
}

type fakeBot struct {
	mu      sync.Mutex
	updates chan tgbotapi.Update
	sent    []sentMessage
	sendErr error
	stopped bool
}

func (b *fakeBot) SendMessage(chatID int64, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, sentMessage{chatID: chatID, text: text})
	return b.sendErr
}

func (b *fakeBot) Updates() tgbotapi.UpdatesChannel { return b.updates }

func (b *fakeBot) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopped = true
}

func (b *fakeBot) sentCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sent)
}

type resolveCall struct {
	kind      entity.Intent
	symbol    string
	timeframe string
}

type fakeAssistant struct {
	chats    []string
	resolves []resolveCall
}

func (a *fakeAssistant) Chat(_ context.Context, message string) entity.ChatMessage {
	a.chats = append(a.chats, message)
	return entity.NewChatMessage(entity.AuthorAssistant, "chat reply", nil)
}

func (a *fakeAssistant) Resolve(_ context.Context, kind entity.Intent, sym, timeframe string) entity.ChatMessage {
	a.resolves = append(a.resolves, resolveCall{kind, sym, timeframe})
	return entity.NewChatMessage(entity.AuthorAssistant, "resolve reply", nil)
}

func textUpdate(text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: 42},
		From: &tgbotapi.User{ID: 7, FirstName: "Sari", UserName: "sari"},
	}}
}

func commandUpdate(text string, commandLen int) tgbotapi.Update {
	u := textUpdate(text)
	u.Message.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: commandLen}}
	return u
}

func TestHandleUpdate_FreeTextGoesThroughChat(t *testing.T) {
	bot := &fakeBot{}
	assistant := &fakeAssistant{}
	h := NewBotHandler(bot, assistant, logger.NewNop())

	h.HandleUpdate(context.Background(), textUpdate("Predict TSLA stock next week"))

	assert.Equal(t, []string{"Predict TSLA stock next week"}, assistant.chats)
	require.Len(t, bot.sent, 1)
	assert.Equal(t, sentMessage{chatID: 42, text: "chat reply"}, bot.sent[0])
}

func TestHandleUpdate_Commands(t *testing.T) {
	tests := []struct {
		text       string
		commandLen int
		want       resolveCall
	}{
		{"/price BBCA", 6, resolveCall{entity.IntentPrice, "BBCA", ""}},
		{"/predict TSLA 1 month", 8, resolveCall{entity.IntentPrediction, "TSLA", "1 month"}},
		{"/technical AAPL", 10, resolveCall{entity.IntentTechnical, "AAPL", ""}},
		{"/news", 5, resolveCall{entity.IntentNews, "", ""}},
		{"/start", 6, resolveCall{entity.IntentNone, "", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			bot := &fakeBot{}
			assistant := &fakeAssistant{}
			h := NewBotHandler(bot, assistant, logger.NewNop())

			h.HandleUpdate(context.Background(), commandUpdate(tt.text, tt.commandLen))

			require.Len(t, assistant.resolves, 1)
			assert.Equal(t, tt.want, assistant.resolves[0])
			assert.Empty(t, assistant.chats)
			assert.Len(t, bot.sent, 1)
		})
	}
}

func TestHandleUpdate_IgnoresEmptyMessages(t *testing.T) {
	bot := &fakeBot{}
	assistant := &fakeAssistant{}
	h := NewBotHandler(bot, assistant, logger.NewNop())

	h.HandleUpdate(context.Background(), tgbotapi.Update{})
	h.HandleUpdate(context.Background(), textUpdate("   "))

	assert.Empty(t, assistant.chats)
	assert.Empty(t, bot.sent)
}

func TestHandleUpdate_SendFailureIsLogged(t *testing.T) {
	bot := &fakeBot{sendErr: errors.New("forbidden")}
	h := NewBotHandler(bot, &fakeAssistant{}, logger.NewNop())

	assert.NotPanics(t, func() {
		h.HandleUpdate(context.Background(), textUpdate("hello"))
	})
	assert.Len(t, bot.sent, 1)
}

func TestStart_StopsOnContextCancel(t *testing.T) {
	bot := &fakeBot{updates: make(chan tgbotapi.Update, 1)}
	assistant := &fakeAssistant{}
	h := NewBotHandler(bot, assistant, logger.NewNop())
	bot.updates <- textUpdate("AAPL price")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return bot.sentCount() == 1 }, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("bot handler did not stop")
	}
	assert.True(t, bot.stopped)
}
