package entity

import (
	"time"

	"github.com/google/uuid"
)

type Author string

const (
	AuthorUser      Author = "user"
	AuthorAssistant Author = "assistant"
)

// ChatPayload carries at most one domain record attached to a message.
type ChatPayload struct {
	Kind       Intent             `json:"kind"`
	Quote      *StockQuote        `json:"quote,omitempty"`
	Prediction *Prediction        `json:"prediction,omitempty"`
	Technical  *TechnicalSnapshot `json:"technical,omitempty"`
	News       []NewsItem         `json:"news,omitempty"`
}

type ChatMessage struct {
	ID        string       `json:"id"`
	Content   string       `json:"content"`
	Author    Author       `json:"author"`
	Timestamp time.Time    `json:"timestamp"`
	Payload   *ChatPayload `json:"payload,omitempty"`
}

// NewChatMessage creates a message with a fresh id and the current time.
func NewChatMessage(author Author, content string, payload *ChatPayload) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Content:   content,
		Author:    author,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}
