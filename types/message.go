// Package types provides core types shared across the concierge service.
// This package has ZERO dependencies on other concierge packages to avoid
// circular imports. All other packages should import types from here.
package types

import "time"

// Role represents the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single conversation message. Messages produced by an
// agent carry the agent's name; user messages leave it empty.
type Message struct {
	Content   string    `json:"content"`
	Role      Role      `json:"role"`
	Agent     string    `json:"agent,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewUserMessage creates a user message stamped with the current time.
func NewUserMessage(content string) Message {
	return Message{
		Content:   content,
		Role:      RoleUser,
		Timestamp: time.Now(),
	}
}

// NewAgentMessage creates an assistant message attributed to the named agent.
func NewAgentMessage(agent, content string) Message {
	return Message{
		Content:   content,
		Role:      RoleAssistant,
		Agent:     agent,
		Timestamp: time.Now(),
	}
}

// EventKind classifies turn events.
type EventKind string

const (
	EventHandoff  EventKind = "handoff"
	EventToolCall EventKind = "tool_call"
)

// Event records something an agent did during a turn: handing the
// conversation to another agent, or invoking a capability.
type Event struct {
	ID        string            `json:"id"`
	Kind      EventKind         `json:"type"`
	Agent     string            `json:"agent"`
	Content   string            `json:"content"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// GuardrailRecord is the audit entry for a single guardrail evaluation.
type GuardrailRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Input     string    `json:"input"`
	Reasoning string    `json:"reasoning"`
	Passed    bool      `json:"passed"`
	Timestamp time.Time `json:"timestamp"`
}

// Profile is the mutable per-conversation context shared by all agents.
// Fields are populated from the user directory when the caller supplies an
// account identifier; unset fields are omitted from serialized output.
type Profile struct {
	Name           string `json:"name,omitempty"`
	UserID         string `json:"user_id,omitempty"`
	AccountNumber  string `json:"account_number,omitempty"`
	Email          string `json:"email,omitempty"`
	Attendee       *bool  `json:"is_conference_attendee,omitempty"`
	ConferenceName string `json:"conference_name,omitempty"`
	OrganizationID string `json:"organization_id,omitempty"`
}

// TurnDelta is the buffered set of mutations a completed turn applies to a
// conversation. The orchestrator accumulates the delta locally and commits
// it to the store in one step, so an abandoned turn leaves no partial state.
type TurnDelta struct {
	Messages         []Message
	Events           []Event
	GuardrailRecords []GuardrailRecord
	ActiveAgent      string
	Profile          Profile
}
