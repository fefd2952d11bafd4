package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/Sunnycharan27/loopync/internal/models"
	"github.com/Sunnycharan27/loopync/internal/services"
)

type FriendInviteHandler struct {
	inviteService       services.FriendInviteServiceInterface
	notificationService services.NotificationServiceInterface
}

func NewFriendInviteHandler(inviteService services.FriendInviteServiceInterface, notificationService services.NotificationServiceInterface) *FriendInviteHandler {
	return &FriendInviteHandler{
		inviteService:       inviteService,
		notificationService: notificationService,
	}
}

type CreateInviteRequest struct {
	ExpiresInDays int `json:"expires_in_days"`
}

type CreateInviteResponse struct {
	Invite *models.FriendInvite `json:"invite"`
	Token  string               `json:"token"`
}

type InviteListResponse struct {
	Invites []models.FriendInvite `json:"invites"`
}

type AcceptInviteRequest struct {
	Token string `json:"token"`
}

type AcceptInviteResponse struct {
	Friend *models.UserSummary `json:"friend"`
}

// CreateInvite issues a single-use invite token. The token is returned
// once and never stored in plain text.
func (h *FriendInviteHandler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateInviteRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}
	if req.ExpiresInDays < 0 || req.ExpiresInDays > 365 {
		writeError(w, http.StatusBadRequest, "Expiry must be between 0 and 365 days")
		return
	}

	invite, token, err := h.inviteService.CreateInvite(r.Context(), user.ID, req.ExpiresInDays)
	if errors.Is(err, services.ErrInviteLimitReached) {
		writeError(w, http.StatusConflict, "Too many active invites")
		return
	}
	if err != nil {
		log.Printf("Error creating invite: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, CreateInviteResponse{Invite: invite, Token: token})
}

func (h *FriendInviteHandler) ListInvites(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	invites, err := h.inviteService.ListInvites(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error listing invites: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, InviteListResponse{Invites: invites})
}

func (h *FriendInviteHandler) RevokeInvite(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	inviteID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid invite ID")
		return
	}

	err = h.inviteService.RevokeInvite(r.Context(), user.ID, inviteID)
	if errors.Is(err, services.ErrInviteNotFound) {
		writeError(w, http.StatusNotFound, "Invite not found")
		return
	}
	if err != nil {
		log.Printf("Error revoking invite: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Invite revoked"})
}

// AcceptInvite redeems a token and establishes the friendship directly.
func (h *FriendInviteHandler) AcceptInvite(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req AcceptInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Token == "" {
		writeError(w, http.StatusBadRequest, "Token is required")
		return
	}

	inviter, err := h.inviteService.AcceptInvite(r.Context(), user.ID, req.Token)
	if err != nil {
		h.writeInviteError(w, err)
		return
	}

	if h.notificationService != nil {
		if err := h.notificationService.NotifyFriendRequestAccepted(r.Context(), inviter.ID, user.ID); err != nil {
			log.Printf("Error creating notification: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, AcceptInviteResponse{Friend: inviter})
}

func (h *FriendInviteHandler) writeInviteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInviteNotFound):
		writeError(w, http.StatusNotFound, "Invite not found")
	case errors.Is(err, services.ErrInviteExpired):
		writeError(w, http.StatusGone, "Invite has expired")
	case errors.Is(err, services.ErrInviteRevoked):
		writeError(w, http.StatusGone, "Invite was revoked")
	case errors.Is(err, services.ErrInviteAlreadyUsed):
		writeError(w, http.StatusConflict, "Invite already used")
	case errors.Is(err, services.ErrCannotInviteSelf):
		writeError(w, http.StatusBadRequest, "Cannot accept your own invite")
	case errors.Is(err, services.ErrUserBlocked):
		writeError(w, http.StatusForbidden, "Cannot accept this invite")
	default:
		log.Printf("Invite operation error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
