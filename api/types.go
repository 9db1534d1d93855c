// Package api defines the wire types of the concierge HTTP surface.
package api

import (
	"time"

	"github.com/quorumhq/concierge/types"
)

// TurnRequest is the POST /api/v1/chat body.
type TurnRequest struct {
	// Message is the user's text for this turn.
	Message string `json:"message"`
	// ConversationID continues an existing conversation; empty starts one.
	ConversationID string `json:"conversation_id,omitempty"`
	// AccountNumber optionally identifies the user by registration id or
	// QR code.
	AccountNumber string `json:"account_number,omitempty"`
}

// TurnResponse reports one completed turn. Messages, events, and guardrail
// checks contain only what this turn appended; agents is the full static
// roster so clients can render the graph.
type TurnResponse struct {
	ConversationID string             `json:"conversation_id"`
	CurrentAgent   string             `json:"current_agent"`
	Messages       []MessagePayload   `json:"messages"`
	Events         []EventPayload     `json:"events"`
	Context        types.Profile      `json:"context"`
	Agents         []AgentInfo        `json:"agents"`
	Guardrails     []GuardrailPayload `json:"guardrails"`
	CustomerInfo   *CustomerInfo      `json:"customer_info,omitempty"`
}

// MessagePayload is one conversation message on the wire.
type MessagePayload struct {
	Content   string    `json:"content"`
	Role      string    `json:"role"`
	Agent     string    `json:"agent,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// EventPayload is one turn event (handoff or tool call) on the wire.
type EventPayload struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Agent     string            `json:"agent"`
	Content   string            `json:"content"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// GuardrailPayload is one guardrail evaluation record on the wire.
type GuardrailPayload struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Input     string    `json:"input"`
	Reasoning string    `json:"reasoning"`
	Passed    bool      `json:"passed"`
	Timestamp time.Time `json:"timestamp"`
}

// AgentInfo describes one roster entry.
type AgentInfo struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Handoffs        []string `json:"handoffs"`
	Tools           []string `json:"tools"`
	InputGuardrails []string `json:"input_guardrails"`
}

// CustomerInfo is the profile snapshot returned when an account identifier
// resolved during the turn.
type CustomerInfo struct {
	Customer types.Profile `json:"customer"`
}

// UserResponse is the GET /api/v1/users/{identifier} body.
type UserResponse struct {
	ID             string `json:"id"`
	RegistrationID string `json:"registration_id"`
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Attendee       bool   `json:"is_conference_attendee"`
	ConferenceName string `json:"conference_name,omitempty"`
	Company        string `json:"company,omitempty"`
	Location       string `json:"location,omitempty"`
	Title          string `json:"title,omitempty"`
	OrganizationID string `json:"organization_id,omitempty"`
}

// TextResponse wraps a formatted-text capability result.
type TextResponse struct {
	Result string `json:"result"`
}
