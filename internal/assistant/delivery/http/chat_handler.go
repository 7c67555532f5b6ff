package http

import (
	"net/http"
	"strings"

	"golang-stock-assistant/internal/assistant/dto"
	"golang-stock-assistant/internal/assistant/service"
	"golang-stock-assistant/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ChatHandler handles chat messages.
type ChatHandler struct {
	assistant service.AssistantService
	logger    *logger.Logger
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(assistant service.AssistantService, logger *logger.Logger) *ChatHandler {
	return &ChatHandler{assistant: assistant, logger: logger}
}

// RegisterRoutes registers the chat route to the Echo group.
func (h *ChatHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/chat", h.Chat)
}

// Chat godoc
// @Summary Send a chat message
// @Description Classifies the message and answers with market data attached as payload
// @Tags chat
// @Accept  json
// @Produce  json
// @Param   message  body    dto.ChatRequest   true    "Chat message"
// @Success 200 {object} entity.ChatMessage
// @Failure 400 {object} dto.ErrorResponse
// @Router /chat [post]
func (h *ChatHandler) Chat(c echo.Context) error {
	var req dto.ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if strings.TrimSpace(req.Message) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}

	return c.JSON(http.StatusOK, h.assistant.Chat(c.Request().Context(), req.Message))
}
