package controllers

import (
	"errors"
	"net/http"
	"strings"

	"fraudguard/models"
	"fraudguard/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChatController struct {
	chat   *services.ChatService
	logger *zap.SugaredLogger
}

func NewChatController(chat *services.ChatService, logger *zap.SugaredLogger) *ChatController {
	return &ChatController{chat: chat, logger: logger}
}

type sendMessageRequest struct {
	Message   *string `json:"message"`
	SessionID string  `json:"sessionId"`
}

// SendMessage answers POST /chat/message.
func (cc *ChatController) SendMessage(c *gin.Context) {
	var request sendMessageRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		cc.logger.Warnw("Error binding JSON", "error", err)
		c.Status(http.StatusBadRequest)
		return
	}
	if request.Message == nil || strings.TrimSpace(*request.Message) == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	cc.logger.Debugw("Received message request", "session_id", request.SessionID, "message", *request.Message)

	reply, err := cc.chat.ProcessMessage(c.Request.Context(), *request.Message, request.SessionID)
	if err != nil {
		if errors.Is(err, services.ErrEmptyMessage) || errors.Is(err, services.ErrEmptySessionID) {
			c.Status(http.StatusBadRequest)
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cc.logger.Debugw("Sending response", "session_id", reply.SessionID, "message_id", reply.ID)
	c.JSON(http.StatusOK, reply)
}

// NewSession answers POST /chat/new-session.
func (cc *ChatController) NewSession(c *gin.Context) {
	c.JSON(http.StatusOK, models.NewSessionMessage(cc.chat.CreateNewSession()))
}

// GetHistory answers GET /chat/history?sessionId=...
func (cc *ChatController) GetHistory(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessionId is required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": cc.chat.History(sessionID)})
}

// ClearSession answers DELETE /chat/session/:sessionId.
func (cc *ChatController) ClearSession(c *gin.Context) {
	cc.chat.ClearSession(c.Param("sessionId"))
	c.Status(http.StatusNoContent)
}
