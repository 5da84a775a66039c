package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/atlashaul/portal/internal/platform/invite"
)

// InviteServiceInterface defines the interface for invitation submissions
type InviteServiceInterface interface {
	Submit(ctx context.Context, sub invite.Submission) error
}

// InviteHandler handles invitation form HTTP requests
type InviteHandler struct {
	inviteService InviteServiceInterface
}

// NewInviteHandler creates a new invite handler
func NewInviteHandler(inviteService InviteServiceInterface) *InviteHandler {
	return &InviteHandler{
		inviteService: inviteService,
	}
}

// SubmitInvite handles POST /invites
func (h *InviteHandler) SubmitInvite(w http.ResponseWriter, r *http.Request) {
	var sub invite.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.inviteService.Submit(r.Context(), sub); err != nil {
		respondAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusAccepted, map[string]string{"status": "received"})
}
