package services

import (
	"context"
	"fmt"
)

// Prompt roles understood by the generation APIs.
const (
	PromptRoleSystem    = "system"
	PromptRoleUser      = "user"
	PromptRoleAssistant = "assistant"
)

// PromptMessage is one role-tagged entry of a generation request.
type PromptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerationRequest is what gets sent to the model.
type GenerationRequest struct {
	Model    string
	Messages []PromptMessage
}

// Generator produces a reply for a prompt. Implementations block until the
// upstream API answers and report failures as *GenerationError.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

// FailureKind classifies upstream failures.
type FailureKind int

const (
	// FailureAPI covers transport errors, non-2xx answers and malformed bodies.
	FailureAPI FailureKind = iota
	// FailureAuth means the credential is missing or was rejected.
	FailureAuth
	// FailureInput means a required request field was missing.
	FailureInput
)

func (k FailureKind) String() string {
	switch k {
	case FailureAuth:
		return "auth"
	case FailureInput:
		return "input"
	default:
		return "api"
	}
}

// GenerationError is returned by Generator implementations.
type GenerationError struct {
	Kind FailureKind
	// Status is the upstream HTTP status, 0 when no response was received.
	Status int
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("generation %s failure (status %d): %v", e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("generation %s failure: %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func failure(kind FailureKind, status int, err error) error {
	return &GenerationError{Kind: kind, Status: status, Err: err}
}

// checkRequest performs the local checks every Generator runs before
// touching the network.
func checkRequest(apiKey string, req GenerationRequest) error {
	if apiKey == "" {
		return failure(FailureAuth, 0, fmt.Errorf("API key is not set"))
	}
	if req.Model == "" {
		return failure(FailureInput, 0, fmt.Errorf("model is required"))
	}
	if len(req.Messages) == 0 {
		return failure(FailureInput, 0, fmt.Errorf("messages are required"))
	}
	return nil
}
