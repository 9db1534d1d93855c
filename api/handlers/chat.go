package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/quorumhq/concierge/agent"
	"github.com/quorumhq/concierge/api"
	"github.com/quorumhq/concierge/types"
)

// ChatHandler serves the turn API.
type ChatHandler struct {
	orchestrator *agent.Orchestrator
	roster       *agent.Roster
	logger       *zap.Logger
}

// NewChatHandler wires the turn endpoint.
func NewChatHandler(orchestrator *agent.Orchestrator, roster *agent.Roster, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		orchestrator: orchestrator,
		roster:       roster,
		logger:       logger.With(zap.String("handler", "chat")),
	}
}

// HandleChat runs one turn. POST /api/v1/chat.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteErrorMessage(w, http.StatusMethodNotAllowed, types.ErrInvalidRequest, "method not allowed", h.logger)
		return
	}
	if !ValidateContentType(w, r, h.logger) {
		return
	}

	var req api.TurnRequest
	if err := DecodeJSONBody(w, r, &req, h.logger); err != nil {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		WriteErrorMessage(w, http.StatusBadRequest, types.ErrInvalidRequest, "message is required", h.logger)
		return
	}

	start := time.Now()
	result, err := h.orchestrator.ProcessTurn(r.Context(), agent.TurnRequest{
		ConversationID:    req.ConversationID,
		Message:           req.Message,
		AccountIdentifier: req.AccountNumber,
	})
	if err != nil {
		var terr *types.Error
		if errors.As(err, &terr) {
			WriteError(w, terr, h.logger)
			return
		}
		WriteErrorMessage(w, http.StatusInternalServerError, types.ErrInternalError, "turn failed", h.logger)
		return
	}

	h.logger.Info("turn completed",
		zap.String("conversation_id", result.ConversationID),
		zap.String("agent", result.ActiveAgent),
		zap.Int("messages", len(result.Messages)),
		zap.Int("events", len(result.Events)),
		zap.Duration("duration", time.Since(start)),
	)

	WriteJSON(w, http.StatusOK, h.turnResponse(req, result))
}

func (h *ChatHandler) turnResponse(req api.TurnRequest, result *agent.TurnResult) api.TurnResponse {
	resp := api.TurnResponse{
		ConversationID: result.ConversationID,
		CurrentAgent:   result.ActiveAgent,
		Messages:       make([]api.MessagePayload, 0, len(result.Messages)),
		Events:         make([]api.EventPayload, 0, len(result.Events)),
		Context:        result.Profile,
		Agents:         SerializeRoster(h.roster),
		Guardrails:     make([]api.GuardrailPayload, 0, len(result.GuardrailRecords)),
	}

	for _, m := range result.Messages {
		resp.Messages = append(resp.Messages, api.MessagePayload{
			Content:   m.Content,
			Role:      string(m.Role),
			Agent:     m.Agent,
			Timestamp: m.Timestamp,
		})
	}
	for _, e := range result.Events {
		resp.Events = append(resp.Events, api.EventPayload{
			ID:        e.ID,
			Type:      string(e.Kind),
			Agent:     e.Agent,
			Content:   e.Content,
			Timestamp: e.Timestamp,
			Metadata:  e.Metadata,
		})
	}
	for _, g := range result.GuardrailRecords {
		resp.Guardrails = append(resp.Guardrails, api.GuardrailPayload{
			ID:        g.ID,
			Name:      g.Name,
			Input:     g.Input,
			Reasoning: g.Reasoning,
			Passed:    g.Passed,
			Timestamp: g.Timestamp,
		})
	}

	// A customer snapshot rides along when this turn resolved an account
	// identifier to a profile.
	if req.AccountNumber != "" && result.Profile.UserID != "" {
		resp.CustomerInfo = &api.CustomerInfo{Customer: result.Profile}
	}
	return resp
}

// SerializeRoster renders the static agent roster.
func SerializeRoster(roster *agent.Roster) []api.AgentInfo {
	agents := roster.Registry.All()
	out := make([]api.AgentInfo, 0, len(agents))
	for _, a := range agents {
		info := api.AgentInfo{
			Name:            a.Name,
			Description:     a.Description,
			Handoffs:        a.Handoffs,
			Tools:           a.Tools,
			InputGuardrails: a.Guardrails,
		}
		if info.Handoffs == nil {
			info.Handoffs = []string{}
		}
		if info.Tools == nil {
			info.Tools = []string{}
		}
		if info.InputGuardrails == nil {
			info.InputGuardrails = []string{}
		}
		out = append(out, info)
	}
	return out
}
