package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const updateTimeoutSeconds = 60

// Bot defines the interface for a long-polling Telegram bot.
type Bot interface {
	SendMessage(chatID int64, text string) error
	Updates() tgbotapi.UpdatesChannel
	Stop()
}

// client is an implementation of Bot.
type client struct {
	bot *tgbotapi.BotAPI
}

// NewClient creates a new Telegram bot client.
func NewClient(botToken string, debug bool) (Bot, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = debug
	return &client{bot: bot}, nil
}

// SendMessage sends a Markdown message to chatID.
func (c *client) SendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	_, err := c.bot.Send(msg)
	return err
}

// Updates starts long polling for incoming updates.
func (c *client) Updates() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = updateTimeoutSeconds
	return c.bot.GetUpdatesChan(u)
}

// Stop stops long polling and closes the updates channel.
func (c *client) Stop() {
	c.bot.StopReceivingUpdates()
}
