package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zuckmantra/dashboard-Camila/internal/service"
)

// ChatHandler serves the raw conversation endpoints used by the inbox views.
type ChatHandler struct {
	Chats *service.ChatService
}

func NewChatHandler(chats *service.ChatService) *ChatHandler {
	return &ChatHandler{Chats: chats}
}

// Whatsapp returns the most recent inbound messages.
func (h *ChatHandler) Whatsapp(c *gin.Context) {
	limit := queryInt(c, "limit", 100)

	messages, err := h.Chats.Messages(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// History returns the stored n8n history for one session, oldest first.
func (h *ChatHandler) History(c *gin.Context) {
	limit := queryInt(c, "limit", 100)

	entries, err := h.Chats.HistoryBySession(c.Request.Context(), c.Param("session_id"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Sessions lists chat sessions with their last message and message count.
func (h *ChatHandler) Sessions(c *gin.Context) {
	limit := queryInt(c, "limit", 200)

	sessions, err := h.Chats.Sessions(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}
