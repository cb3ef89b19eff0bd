package handlers

import (
	"net/http"

	"github.com/anonto42/friendbook/backend/internal/models"
	"github.com/anonto42/friendbook/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// MessageHandler handles direct messages
type MessageHandler struct {
	messages *services.MessageService
}

func NewMessageHandler(messages *services.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/messages", h.SendMessage)
	g.GET("/messages/conversations", h.GetConversations)
	g.GET("/messages/:userId", h.GetThread)
}

// SendMessage sends a direct message to receiver_id
func (h *MessageHandler) SendMessage(c echo.Context) error {
	var req models.SendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.messages.Send(c.Request().Context(), getUserIDFromContext(c), req.ReceiverID, req.Text)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, msg)
}

// GetConversations lists one summary per peer, most recent first
func (h *MessageHandler) GetConversations(c echo.Context) error {
	conversations, err := h.messages.Conversations(getUserIDFromContext(c))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, conversations)
}

// GetThread returns the conversation with :userId and marks it read
func (h *MessageHandler) GetThread(c echo.Context) error {
	thread, err := h.messages.Thread(c.Request().Context(), getUserIDFromContext(c), c.Param("userId"))
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, thread)
}
