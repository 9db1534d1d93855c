package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quorumhq/concierge/agent"
	"github.com/quorumhq/concierge/api"
	"github.com/quorumhq/concierge/conversation"
	"github.com/quorumhq/concierge/directory"
)

func newTestStack(t *testing.T) (*ChatHandler, *agent.Roster, *directory.Store) {
	t.Helper()

	users, err := directory.Open(directory.Config{Driver: "sqlite", DSN: ":memory:"}, zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, users.SeedUsers(ctx, directory.User{
		ID:             "u1",
		RegistrationID: "REG-001",
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Attendee:       true,
		ConferenceName: "Business Conference 2025",
	}))

	roster, err := agent.NewConferenceRoster(users, agent.RosterConfig{
		ToolTimeout:       5 * time.Second,
		GuardrailFailOpen: true,
	}, zap.NewNop())
	require.NoError(t, err)

	orchestrator := agent.NewOrchestrator(roster, conversation.NewMemoryStore(), users, nil, zap.NewNop())
	return NewChatHandler(orchestrator, roster, zap.NewNop()), roster, users
}

func postChat(t *testing.T, h *ChatHandler, body api.TurnRequest) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.HandleChat(rec, req)
	return rec
}

func TestChatHandler_Turn(t *testing.T) {
	h, _, _ := newTestStack(t)

	rec := postChat(t, h, api.TurnRequest{Message: "What sessions are on July 15th?"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.TurnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.ConversationID)
	assert.Equal(t, agent.ScheduleAgentName, resp.CurrentAgent)
	assert.Len(t, resp.Agents, 3, "static roster rides along")
	assert.NotEmpty(t, resp.Events)
	assert.Equal(t, "user", resp.Messages[0].Role)

	// Continuing the conversation keeps the id.
	rec = postChat(t, h, api.TurnRequest{
		ConversationID: resp.ConversationID,
		Message:        "sessions by John Smith",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var second api.TurnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))
	assert.Equal(t, resp.ConversationID, second.ConversationID)
}

func TestChatHandler_CustomerInfo(t *testing.T) {
	h, _, _ := newTestStack(t)

	rec := postChat(t, h, api.TurnRequest{Message: "hello", AccountNumber: "REG-001"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.TurnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.CustomerInfo)
	assert.Equal(t, "Ada Lovelace", resp.CustomerInfo.Customer.Name)
	assert.Equal(t, "Ada Lovelace", resp.Context.Name)
}

func TestChatHandler_Validation(t *testing.T) {
	h, _, _ := newTestStack(t)

	t.Run("empty message", func(t *testing.T) {
		rec := postChat(t, h, api.TurnRequest{Message: "   "})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/chat", nil)
		rec := httptest.NewRecorder()
		h.HandleChat(rec, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("wrong content type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader([]byte(`{"message":"hi"}`)))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		h.HandleChat(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader([]byte(`{"message":"hi","bogus":1}`)))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.HandleChat(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAgentsHandler_List(t *testing.T) {
	_, roster, _ := newTestStack(t)
	h := NewAgentsHandler(roster, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/agents", nil)
	rec := httptest.NewRecorder()
	h.HandleList(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Agents []api.AgentInfo `json:"agents"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data.Agents, 3)
	assert.Equal(t, agent.TriageAgentName, resp.Data.Agents[0].Name)
	assert.Equal(t, []string{"relevance_guardrail", "jailbreak_guardrail"}, resp.Data.Agents[0].InputGuardrails)
	assert.Empty(t, resp.Data.Agents[1].InputGuardrails)
}
