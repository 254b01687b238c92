package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIGenerate_ReturnsFirstChoice(t *testing.T) {
	var got struct {
		Model    string          `json:"model"`
		Messages []PromptMessage `json:"messages"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected Authorization header %q", r.Header.Get("Authorization"))
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"index": 0, "message": map[string]any{"role": "assistant", "content": "Hello!"}},
			},
		})
	}))
	defer server.Close()

	client := NewOpenAIClient(server.URL, "test-key")
	reply, err := client.Generate(context.Background(), sampleRequest())
	if err != nil {
		t.Fatal(err)
	}
	if reply != "Hello!" {
		t.Errorf("expected 'Hello!', got %q", reply)
	}
	if got.Model != "qwen-turbo" {
		t.Errorf("expected model qwen-turbo, got %q", got.Model)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != PromptRoleSystem {
		t.Errorf("unexpected messages: %+v", got.Messages)
	}
}

func TestOpenAIGenerate_UnauthorizedIsAuthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"message": "Incorrect API key provided",
				"type":    "invalid_request_error",
				"code":    "invalid_api_key",
			},
		})
	}))
	defer server.Close()

	client := NewOpenAIClient(server.URL, "bad-key")
	_, err := client.Generate(context.Background(), sampleRequest())
	assertKind(t, err, FailureAuth)
}

func TestOpenAIGenerate_MissingKeyIsAuthFailure(t *testing.T) {
	client := NewOpenAIClient("http://127.0.0.1:0", "")
	_, err := client.Generate(context.Background(), sampleRequest())
	assertKind(t, err, FailureAuth)
}

func TestOpenAIGenerate_BadGatewayIsAPIFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	client := NewOpenAIClient(server.URL, "test-key")
	_, err := client.Generate(context.Background(), sampleRequest())
	assertKind(t, err, FailureAPI)
}

func TestOpenAIGenerate_EmptyChoicesIsAPIFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	client := NewOpenAIClient(server.URL, "test-key")
	_, err := client.Generate(context.Background(), sampleRequest())
	assertKind(t, err, FailureAPI)
}
