package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/quorumhq/concierge/api"
	"github.com/quorumhq/concierge/capability"
	"github.com/quorumhq/concierge/directory"
	"github.com/quorumhq/concierge/types"
)

// UserHandler serves user lookups by external identifier.
type UserHandler struct {
	users  *directory.Store
	logger *zap.Logger
}

// NewUserHandler wires the user endpoints.
func NewUserHandler(users *directory.Store, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger.With(zap.String("handler", "user")),
	}
}

// HandleGet resolves a registration id or QR code.
// GET /api/v1/users/{identifier}.
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	identifier := h.identifier(r)
	if identifier == "" {
		WriteErrorMessage(w, http.StatusBadRequest, types.ErrInvalidRequest, "identifier is required", h.logger)
		return
	}

	user, err := h.users.UserByRegistrationID(r.Context(), identifier)
	if directory.IsNotFound(err) {
		user, err = h.users.UserByQRCode(r.Context(), identifier)
	}
	if directory.IsNotFound(err) {
		WriteErrorMessage(w, http.StatusNotFound, types.ErrNotFound, "User not found", h.logger)
		return
	}
	if err != nil {
		WriteErrorMessage(w, http.StatusServiceUnavailable, types.ErrStoreUnavailable, "user lookup failed", h.logger)
		return
	}

	WriteSuccess(w, api.UserResponse{
		ID:             user.ID,
		RegistrationID: user.RegistrationID,
		Name:           user.FullName(),
		Email:          user.Email,
		Attendee:       user.Attendee,
		ConferenceName: user.ConferenceName,
		Company:        user.Company,
		Location:       user.Location,
		Title:          user.Title,
		OrganizationID: user.OrganizationID,
	})
}

// HandleBusinesses lists a user's registered businesses as formatted text.
// GET /api/v1/users/{identifier}/businesses.
func (h *UserHandler) HandleBusinesses(w http.ResponseWriter, r *http.Request) {
	identifier := h.identifier(r)
	if identifier == "" {
		WriteErrorMessage(w, http.StatusBadRequest, types.ErrInvalidRequest, "identifier is required", h.logger)
		return
	}

	user, err := h.users.UserByRegistrationID(r.Context(), identifier)
	if directory.IsNotFound(err) {
		user, err = h.users.UserByQRCode(r.Context(), identifier)
	}
	if directory.IsNotFound(err) {
		WriteErrorMessage(w, http.StatusNotFound, types.ErrNotFound, "User not found", h.logger)
		return
	}
	if err != nil {
		WriteErrorMessage(w, http.StatusServiceUnavailable, types.ErrStoreUnavailable, "user lookup failed", h.logger)
		return
	}

	text, err := capability.UserBusinesses(r.Context(), h.users, user.ID, "")
	if err != nil {
		WriteErrorMessage(w, http.StatusServiceUnavailable, types.ErrStoreUnavailable, "business lookup failed", h.logger)
		return
	}
	WriteSuccess(w, api.TextResponse{Result: text})
}

func (h *UserHandler) identifier(r *http.Request) string {
	if v := r.PathValue("identifier"); v != "" {
		return v
	}
	// Fallback for mux setups without path values.
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	for i, p := range parts {
		if p == "users" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}
