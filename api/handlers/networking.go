package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/quorumhq/concierge/api"
	"github.com/quorumhq/concierge/capability"
	"github.com/quorumhq/concierge/directory"
	"github.com/quorumhq/concierge/types"
)

// NetworkingHandler exposes the business directory and organization info
// outside the chat flow, for clients that render them directly.
type NetworkingHandler struct {
	store  *directory.Store
	logger *zap.Logger
}

// NewNetworkingHandler wires the directory endpoints.
func NewNetworkingHandler(store *directory.Store, logger *zap.Logger) *NetworkingHandler {
	return &NetworkingHandler{
		store:  store,
		logger: logger.With(zap.String("handler", "networking")),
	}
}

// HandleBusinessSearch searches the business directory.
// GET /api/v1/businesses?query=&sector=&location=.
func (h *NetworkingHandler) HandleBusinessSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteErrorMessage(w, http.StatusMethodNotAllowed, types.ErrInvalidRequest, "method not allowed", h.logger)
		return
	}

	q := r.URL.Query()
	text, err := capability.BusinessSearch(r.Context(), h.store, directory.BusinessFilter{
		Query:    q.Get("query"),
		Sector:   q.Get("sector"),
		Location: q.Get("location"),
	})
	if err != nil {
		WriteErrorMessage(w, http.StatusServiceUnavailable, types.ErrStoreUnavailable, "business search failed", h.logger)
		return
	}
	WriteSuccess(w, api.TextResponse{Result: text})
}

// HandleOrganization returns one organization's details.
// GET /api/v1/organizations/{id}.
func (h *NetworkingHandler) HandleOrganization(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteErrorMessage(w, http.StatusMethodNotAllowed, types.ErrInvalidRequest, "method not allowed", h.logger)
		return
	}

	text, err := capability.OrganizationInfo(r.Context(), h.store, r.PathValue("id"))
	if err != nil {
		WriteErrorMessage(w, http.StatusServiceUnavailable, types.ErrStoreUnavailable, "organization lookup failed", h.logger)
		return
	}
	WriteSuccess(w, api.TextResponse{Result: text})
}
