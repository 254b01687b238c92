package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"fraudguard/metrics"
	"fraudguard/models"

	"go.uber.org/zap"
)

// Validation errors. Nothing is recorded when these are returned.
var (
	ErrEmptyMessage   = errors.New("message is required")
	ErrEmptySessionID = errors.New("sessionId is required")
)

// Replier produces the assistant's answer for the latest user turn.
type Replier interface {
	Reply(ctx context.Context, sessionID, text string) (string, error)
}

// ChatService runs one chat turn: record the user message, ask for a
// reply, record the reply.
type ChatService struct {
	history    *HistoryStore
	assistant  Replier
	sessionIDs *SessionIDGenerator
	now        Clock
	logger     *zap.SugaredLogger
}

func NewChatService(history *HistoryStore, assistant Replier, now Clock, logger *zap.SugaredLogger) *ChatService {
	if now == nil {
		now = time.Now
	}
	return &ChatService{
		history:    history,
		assistant:  assistant,
		sessionIDs: NewSessionIDGenerator(now),
		now:        now,
		logger:     logger,
	}
}

// ProcessMessage handles one user message and returns the assistant turn.
// The user turn stays in the history when the reply fails.
func (s *ChatService) ProcessMessage(ctx context.Context, text, sessionID string) (models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return models.Message{}, ErrEmptyMessage
	}
	if strings.TrimSpace(sessionID) == "" {
		return models.Message{}, ErrEmptySessionID
	}

	s.history.Append(models.NewUserMessage(sessionID, text, s.now()))
	metrics.ActiveSessions.Set(float64(s.history.Sessions()))

	reply, err := s.assistant.Reply(ctx, sessionID, text)
	if err != nil {
		return models.Message{}, err
	}

	answer := models.NewAssistantMessage(sessionID, reply, s.now())
	s.history.Append(answer)

	s.logger.Debugw("Chat turn completed", "session_id", sessionID, "message_id", answer.ID)
	return answer, nil
}

// CreateNewSession returns a fresh session id. The session gets a history
// entry only once a message is sent.
func (s *ChatService) CreateNewSession() string {
	return s.sessionIDs.Next()
}

// History returns the recorded turns of a session, oldest first.
func (s *ChatService) History(sessionID string) []models.Message {
	return s.history.Get(sessionID)
}

// ClearSession forgets everything recorded for a session.
func (s *ChatService) ClearSession(sessionID string) {
	s.history.Clear(sessionID)
	metrics.ActiveSessions.Set(float64(s.history.Sessions()))
	s.logger.Infow("Session cleared", "session_id", sessionID)
}
