package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNewAssistantMessage_EncodesAsAI(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	msg := NewAssistantMessage("42", "hi there", now)

	if msg.ID == "" {
		t.Fatal("expected a generated id")
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got["type"] != "ai" {
		t.Errorf("expected type 'ai', got %v", got["type"])
	}
	if got["sessionId"] != "42" {
		t.Errorf("expected sessionId '42', got %v", got["sessionId"])
	}
	if got["content"] != "hi there" {
		t.Errorf("expected content 'hi there', got %v", got["content"])
	}
	if got["timestamp"] != "2024-05-01T10:30:00Z" {
		t.Errorf("unexpected timestamp: %v", got["timestamp"])
	}
}

func TestNewSessionMessage_OmitsUnsetFields(t *testing.T) {
	data, err := json.Marshal(NewSessionMessage("1700000000000"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"sessionId":"1700000000000"}` {
		t.Errorf("unexpected encoding: %s", data)
	}
}

func TestMessageIDsAreUnique(t *testing.T) {
	now := time.Now()
	a := NewUserMessage("s", "x", now)
	b := NewUserMessage("s", "x", now)
	if a.ID == b.ID {
		t.Errorf("expected distinct ids, both were %s", a.ID)
	}
}

func TestUnmarshalMessage_AcceptsAssistantAlias(t *testing.T) {
	var msg Message
	if err := json.Unmarshal([]byte(`{"sessionId":"s","content":"c","type":"assistant"}`), &msg); err != nil {
		t.Fatal(err)
	}
	if msg.Role != RoleAssistant {
		t.Errorf("expected RoleAssistant, got %v", msg.Role)
	}
	if !msg.Timestamp.IsZero() {
		t.Errorf("expected zero timestamp, got %v", msg.Timestamp)
	}
}

func TestUnmarshalMessage_RejectsUnknownType(t *testing.T) {
	var msg Message
	err := json.Unmarshal([]byte(`{"sessionId":"s","type":"system"}`), &msg)
	if err == nil {
		t.Fatal("expected error for unknown type")
	}
	if !strings.Contains(err.Error(), "system") {
		t.Errorf("unexpected err: %v", err)
	}
}
