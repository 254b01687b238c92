package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

// DefaultCompatibleBaseURL is DashScope's OpenAI-compatible endpoint.
const DefaultCompatibleBaseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"

// OpenAIClient talks to any OpenAI-compatible chat completions endpoint.
type OpenAIClient struct {
	client *openai.Client
	apiKey string
}

func NewOpenAIClient(baseURL, apiKey string) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL == "" {
		baseURL = DefaultCompatibleBaseURL
	}
	cfg.BaseURL = baseURL
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		apiKey: apiKey,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	if err := checkRequest(c.apiKey, req); err != nil {
		return "", err
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: messages,
	})
	if err != nil {
		return "", classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", failure(FailureAPI, http.StatusOK, errors.New("no content in chat completion"))
	}

	return resp.Choices[0].Message.Content, nil
}

func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		kind := FailureAPI
		if apiErr.HTTPStatusCode == http.StatusUnauthorized || apiErr.HTTPStatusCode == http.StatusForbidden {
			kind = FailureAuth
		}
		return failure(kind, apiErr.HTTPStatusCode, fmt.Errorf("chat completion: %w", err))
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		kind := FailureAPI
		if reqErr.HTTPStatusCode == http.StatusUnauthorized {
			kind = FailureAuth
		}
		return failure(kind, reqErr.HTTPStatusCode, fmt.Errorf("chat completion: %w", err))
	}

	return failure(FailureAPI, 0, fmt.Errorf("chat completion: %w", err))
}
