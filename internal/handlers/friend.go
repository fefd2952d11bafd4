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

type FriendHandler struct {
	friendService       services.FriendServiceInterface
	notificationService services.NotificationServiceInterface
}

func NewFriendHandler(friendService services.FriendServiceInterface, notificationService services.NotificationServiceInterface) *FriendHandler {
	return &FriendHandler{
		friendService:       friendService,
		notificationService: notificationService,
	}
}

type SendRequestRequest struct {
	UserID string `json:"user_id"`
}

type SendRequestResponse struct {
	Outcome models.RequestOutcome `json:"outcome"`
}

type FriendListResponse struct {
	Friends []models.UserSummary `json:"friends"`
}

type RequestListResponse struct {
	Requests []models.FriendRequestWithUser `json:"requests"`
}

type RelationshipResponse struct {
	Status models.RelationshipStatus `json:"status"`
}

// SendRequest creates a pending friend request, or completes the
// friendship immediately when the target already has one pending
// towards the sender.
func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SendRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	targetID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	outcome, err := h.friendService.SendRequest(r.Context(), user.ID, targetID)
	if err != nil {
		h.writeFriendError(w, err)
		return
	}

	if outcome == models.RequestOutcomeFriends {
		h.notify(func() error {
			return h.notificationService.NotifyFriendRequestAccepted(r.Context(), targetID, user.ID)
		})
	} else {
		h.notify(func() error {
			return h.notificationService.NotifyFriendRequestReceived(r.Context(), targetID, user.ID)
		})
	}

	writeJSON(w, http.StatusCreated, SendRequestResponse{Outcome: outcome})
}

func (h *FriendHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	fromID, err := pathUserID(r, "userId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.friendService.AcceptRequest(r.Context(), fromID, user.ID); err != nil {
		h.writeFriendError(w, err)
		return
	}

	h.notify(func() error {
		return h.notificationService.NotifyFriendRequestAccepted(r.Context(), fromID, user.ID)
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "Friend request accepted"})
}

func (h *FriendHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	fromID, err := pathUserID(r, "userId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.friendService.RejectRequest(r.Context(), fromID, user.ID); err != nil {
		h.writeFriendError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Friend request rejected"})
}

// RemoveFriend deletes the friendship. Removing a non-friend is a
// successful no-op.
func (h *FriendHandler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	friendID, err := pathUserID(r, "userId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.friendService.RemoveFriend(r.Context(), user.ID, friendID); err != nil {
		h.writeFriendError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Friend removed"})
}

func (h *FriendHandler) ListFriends(w http.ResponseWriter, r *http.Request) {
	targetID, err := pathUserID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	friends, err := h.friendService.ListFriends(r.Context(), targetID)
	if err != nil {
		h.writeFriendError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FriendListResponse{Friends: friends})
}

func (h *FriendHandler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	requests, err := h.friendService.ListPendingRequests(r.Context(), user.ID)
	if err != nil {
		h.writeFriendError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, RequestListResponse{Requests: requests})
}

func (h *FriendHandler) ListSentRequests(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	requests, err := h.friendService.ListSentRequests(r.Context(), user.ID)
	if err != nil {
		h.writeFriendError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, RequestListResponse{Requests: requests})
}

// RelationshipStatus reports the viewer's relationship to the target:
// friends, pending_sent, pending_received, or none.
func (h *FriendHandler) RelationshipStatus(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	targetID, err := pathUserID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	status, err := h.friendService.RelationshipStatus(r.Context(), user.ID, targetID)
	if err != nil {
		h.writeFriendError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, RelationshipResponse{Status: status})
}

func (h *FriendHandler) writeFriendError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrCannotFriendSelf):
		writeError(w, http.StatusBadRequest, "Cannot send a friend request to yourself")
	case errors.Is(err, services.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrUserBlocked):
		writeError(w, http.StatusForbidden, "Cannot send a friend request to this user")
	case errors.Is(err, services.ErrAlreadyFriends):
		writeError(w, http.StatusConflict, "Already friends")
	case errors.Is(err, services.ErrDuplicateRequest):
		writeError(w, http.StatusConflict, "Friend request already sent")
	case errors.Is(err, services.ErrRequestNotFound):
		writeError(w, http.StatusNotFound, "Friend request not found")
	default:
		log.Printf("Friend operation error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// notify records a notification without failing the request.
func (h *FriendHandler) notify(fn func() error) {
	if h.notificationService == nil {
		return
	}
	if err := fn(); err != nil {
		log.Printf("Error creating notification: %v", err)
	}
}
