package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/quorumhq/concierge/agent"
	"github.com/quorumhq/concierge/types"
)

// AgentsHandler serves the static agent roster.
type AgentsHandler struct {
	roster *agent.Roster
	logger *zap.Logger
}

// NewAgentsHandler wires the roster endpoint.
func NewAgentsHandler(roster *agent.Roster, logger *zap.Logger) *AgentsHandler {
	return &AgentsHandler{
		roster: roster,
		logger: logger.With(zap.String("handler", "agents")),
	}
}

// HandleList returns the roster. GET /api/v1/agents.
func (h *AgentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteErrorMessage(w, http.StatusMethodNotAllowed, types.ErrInvalidRequest, "method not allowed", h.logger)
		return
	}
	WriteSuccess(w, map[string]interface{}{
		"agents": SerializeRoster(h.roster),
	})
}
