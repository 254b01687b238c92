package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role tells who produced a chat turn.
type Role int

const (
	// RoleUnset is only carried by session-only messages.
	RoleUnset Role = iota
	RoleUser
	RoleAssistant
)

// Wire names of the roles. The assistant is exposed as "ai".
const (
	wireUser      = "user"
	wireAssistant = "ai"
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return wireUser
	case RoleAssistant:
		return wireAssistant
	default:
		return ""
	}
}

// ParseRole maps a wire name back to a Role. "assistant" is accepted as an
// alias of "ai".
func ParseRole(s string) (Role, error) {
	switch s {
	case "":
		return RoleUnset, nil
	case wireUser:
		return RoleUser, nil
	case wireAssistant, "assistant":
		return RoleAssistant, nil
	default:
		return RoleUnset, fmt.Errorf("unknown message type %q", s)
	}
}

// Message is one chat turn. It is handled by value and never changed after
// it has been created.
type Message struct {
	ID        string
	SessionID string
	Role      Role
	Content   string
	Timestamp time.Time
}

// NewUserMessage creates a user turn stamped with now.
func NewUserMessage(sessionID, content string, now time.Time) Message {
	return newMessage(sessionID, RoleUser, content, now)
}

// NewAssistantMessage creates an assistant turn stamped with now.
func NewAssistantMessage(sessionID, content string, now time.Time) Message {
	return newMessage(sessionID, RoleAssistant, content, now)
}

// NewSessionMessage carries nothing but a session id.
func NewSessionMessage(sessionID string) Message {
	return Message{SessionID: sessionID}
}

func newMessage(sessionID string, role Role, content string, now time.Time) Message {
	return Message{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Timestamp: now,
	}
}

type messageJSON struct {
	ID        string     `json:"id,omitempty"`
	SessionID string     `json:"sessionId"`
	Content   string     `json:"content,omitempty"`
	Type      string     `json:"type,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

func (m Message) MarshalJSON() ([]byte, error) {
	out := messageJSON{
		ID:        m.ID,
		SessionID: m.SessionID,
		Content:   m.Content,
		Type:      m.Role.String(),
	}
	if !m.Timestamp.IsZero() {
		ts := m.Timestamp
		out.Timestamp = &ts
	}
	return json.Marshal(out)
}

func (m *Message) UnmarshalJSON(data []byte) error {
	var in messageJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	role, err := ParseRole(in.Type)
	if err != nil {
		return err
	}
	*m = Message{
		ID:        in.ID,
		SessionID: in.SessionID,
		Role:      role,
		Content:   in.Content,
	}
	if in.Timestamp != nil {
		m.Timestamp = *in.Timestamp
	}
	return nil
}
