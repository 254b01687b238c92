package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	DefaultDashScopeBaseURL = "https://dashscope.aliyuncs.com/api/v1"
	dashScopeGenerationPath = "/services/aigc/text-generation/generation"

	// resultFormatMessage asks for choices[].message instead of output.text.
	resultFormatMessage = "message"
)

// DashScopeClient calls the native DashScope text generation API.
type DashScopeClient struct {
	client *resty.Client
	apiKey string
}

func NewDashScopeClient(baseURL, apiKey string, logger *zap.SugaredLogger) *DashScopeClient {
	if baseURL == "" {
		baseURL = DefaultDashScopeBaseURL
	}
	return &DashScopeClient{
		client: resty.New().
			SetBaseURL(baseURL).
			SetLogger(logger).
			SetHeader("Content-Type", "application/json"),
		apiKey: apiKey,
	}
}

type dashScopeInput struct {
	Messages []PromptMessage `json:"messages"`
}

type dashScopeParameters struct {
	ResultFormat string `json:"result_format"`
}

type dashScopeRequest struct {
	Model      string              `json:"model"`
	Input      dashScopeInput      `json:"input"`
	Parameters dashScopeParameters `json:"parameters"`
}

type dashScopeResponse struct {
	Output struct {
		Choices []struct {
			FinishReason string        `json:"finish_reason"`
			Message      PromptMessage `json:"message"`
		} `json:"choices"`
	} `json:"output"`
	RequestID string `json:"request_id"`
}

type dashScopeError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

func (c *DashScopeClient) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	if err := checkRequest(c.apiKey, req); err != nil {
		return "", err
	}

	body := dashScopeRequest{
		Model:      req.Model,
		Input:      dashScopeInput{Messages: req.Messages},
		Parameters: dashScopeParameters{ResultFormat: resultFormatMessage},
	}

	var result dashScopeResponse
	var apiErr dashScopeError
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetBody(body).
		SetResult(&result).
		SetError(&apiErr).
		Post(dashScopeGenerationPath)
	if err != nil {
		return "", failure(FailureAPI, 0, fmt.Errorf("call dashscope: %w", err))
	}

	if resp.IsError() {
		kind := FailureAPI
		if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden || apiErr.Code == "InvalidApiKey" {
			kind = FailureAuth
		}
		return "", failure(kind, resp.StatusCode(), fmt.Errorf("dashscope %s: %s (request %s)", apiErr.Code, apiErr.Message, apiErr.RequestID))
	}

	if len(result.Output.Choices) == 0 || result.Output.Choices[0].Message.Content == "" {
		return "", failure(FailureAPI, resp.StatusCode(), errors.New("no content in dashscope response"))
	}

	return result.Output.Choices[0].Message.Content, nil
}
