package services

import (
	"context"
	"errors"
	"time"

	"fraudguard/metrics"
	"fraudguard/models"

	"go.uber.org/zap"
)

// SystemPrompt frames every conversation.
const SystemPrompt = "You are FraudGuard, a professional financial anti-fraud AI assistant. Your duties are:\n" +
	"1. Detect suspicious behaviour in the user's transactions\n" +
	"2. Answer the user's questions about fraud risk\n" +
	"3. Give fraud prevention advice. Keep a professional, concise and risk-aware tone."

// Errors returned to callers of Reply. They never carry upstream details.
var (
	ErrServiceMisconfigured = errors.New("AI service is misconfigured, please contact the administrator")
	ErrInvalidInput         = errors.New("invalid input")
	ErrServiceUnavailable   = errors.New("AI service is temporarily unavailable, please try again later")
)

// Assistant turns a session's history into a prompt and asks the Generator
// for the next reply.
type Assistant struct {
	history   *HistoryStore
	generator Generator
	model     string
	logger    *zap.SugaredLogger
}

func NewAssistant(history *HistoryStore, generator Generator, model string, logger *zap.SugaredLogger) *Assistant {
	return &Assistant{
		history:   history,
		generator: generator,
		model:     model,
		logger:    logger,
	}
}

// Reply generates the assistant's answer to text within sessionID.
func (a *Assistant) Reply(ctx context.Context, sessionID, text string) (string, error) {
	prompt := a.BuildPrompt(sessionID, text)

	start := time.Now()
	reply, err := a.generator.Generate(ctx, GenerationRequest{
		Model:    a.model,
		Messages: prompt,
	})
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		outcome, mapped := mapGenerationError(err)
		metrics.GenerationRequests.WithLabelValues(outcome).Inc()
		a.logger.Errorw("Generation failed",
			"session_id", sessionID,
			"model", a.model,
			"outcome", outcome,
			"error", err,
		)
		return "", mapped
	}

	metrics.GenerationRequests.WithLabelValues("ok").Inc()
	a.logger.Debugw("Generation succeeded",
		"session_id", sessionID,
		"prompt_messages", len(prompt),
		"duration", time.Since(start).String(),
	)
	return reply, nil
}

// BuildPrompt returns the system instruction, the session history and the
// new user text, in that order. text is not repeated when the history
// already ends with it.
func (a *Assistant) BuildPrompt(sessionID, text string) []PromptMessage {
	history := a.history.Get(sessionID)

	prompt := make([]PromptMessage, 0, len(history)+2)
	prompt = append(prompt, PromptMessage{Role: PromptRoleSystem, Content: SystemPrompt})
	for _, msg := range history {
		prompt = append(prompt, PromptMessage{Role: promptRole(msg.Role), Content: msg.Content})
	}

	if n := len(history); n == 0 || history[n-1].Role != models.RoleUser || history[n-1].Content != text {
		prompt = append(prompt, PromptMessage{Role: PromptRoleUser, Content: text})
	}
	return prompt
}

func promptRole(r models.Role) string {
	switch r {
	case models.RoleUser:
		return PromptRoleUser
	default:
		return PromptRoleAssistant
	}
}

// mapGenerationError returns the metric outcome and the caller-facing error.
func mapGenerationError(err error) (string, error) {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		switch genErr.Kind {
		case FailureAuth:
			return "misconfigured", ErrServiceMisconfigured
		case FailureInput:
			return "invalid_input", ErrInvalidInput
		}
	}
	return "unavailable", ErrServiceUnavailable
}
