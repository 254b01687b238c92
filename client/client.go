// Package client is a small HTTP client for the chat API.
package client

import (
	"context"
	"fmt"
	"net/http"

	"fraudguard/models"

	"github.com/go-resty/resty/v2"
)

// APIError is returned for any non-2xx answer.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("chat api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("chat api: %d %s", e.Status, e.Message)
}

type errorBody struct {
	Error string `json:"error"`
}

type Client struct {
	http *resty.Client
}

func New(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json"),
	}
}

// NewSession asks the server for a fresh session id.
func (c *Client) NewSession(ctx context.Context) (string, error) {
	var out models.Message
	if err := c.do(ctx, http.MethodPost, "/chat/new-session", nil, &out); err != nil {
		return "", err
	}
	return out.SessionID, nil
}

// Send posts text to a session and returns the assistant's answer.
func (c *Client) Send(ctx context.Context, sessionID, text string) (models.Message, error) {
	body := map[string]string{"message": text, "sessionId": sessionID}
	var out models.Message
	if err := c.do(ctx, http.MethodPost, "/chat/message", body, &out); err != nil {
		return models.Message{}, err
	}
	return out, nil
}

// History lists the turns the server keeps for a session.
func (c *Client) History(ctx context.Context, sessionID string) ([]models.Message, error) {
	var out struct {
		Messages []models.Message `json:"messages"`
	}
	req := c.http.R().SetContext(ctx).SetQueryParam("sessionId", sessionID)
	if err := c.send(req, http.MethodGet, "/chat/history", &out); err != nil {
		return nil, err
	}
	return out.Messages, nil
}

// ClearSession drops the server-side history of a session.
func (c *Client) ClearSession(ctx context.Context, sessionID string) error {
	req := c.http.R().SetContext(ctx).SetPathParam("sessionId", sessionID)
	return c.send(req, http.MethodDelete, "/chat/session/{sessionId}", nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	return c.send(req, method, path, result)
}

func (c *Client) send(req *resty.Request, method, path string, result interface{}) error {
	var apiErr errorBody
	if result != nil {
		req.SetResult(result)
	}
	resp, err := req.SetError(&apiErr).Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		return &APIError{Status: resp.StatusCode(), Message: apiErr.Error}
	}
	return nil
}
