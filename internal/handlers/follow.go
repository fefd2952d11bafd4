package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Sunnycharan27/loopync/internal/models"
	"github.com/Sunnycharan27/loopync/internal/services"
)

type FollowHandler struct {
	followService       services.FollowServiceInterface
	notificationService services.NotificationServiceInterface
}

func NewFollowHandler(followService services.FollowServiceInterface, notificationService services.NotificationServiceInterface) *FollowHandler {
	return &FollowHandler{
		followService:       followService,
		notificationService: notificationService,
	}
}

type FollowListResponse struct {
	Users []models.UserSummary `json:"users"`
}

// Toggle follows the target if no edge exists, unfollows otherwise,
// and returns the action taken plus updated counts.
func (h *FollowHandler) Toggle(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.followService.Toggle(r.Context(), user.ID, targetID)
	if err != nil {
		h.writeFollowError(w, err)
		return
	}

	if result.Action == models.FollowActionFollowed && h.notificationService != nil {
		if err := h.notificationService.NotifyNewFollower(r.Context(), targetID, user.ID); err != nil {
			log.Printf("Error creating notification: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *FollowHandler) ListFollowers(w http.ResponseWriter, r *http.Request) {
	targetID, err := pathUserID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	followers, err := h.followService.ListFollowers(r.Context(), targetID)
	if err != nil {
		h.writeFollowError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FollowListResponse{Users: followers})
}

func (h *FollowHandler) ListFollowing(w http.ResponseWriter, r *http.Request) {
	targetID, err := pathUserID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	following, err := h.followService.ListFollowing(r.Context(), targetID)
	if err != nil {
		h.writeFollowError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FollowListResponse{Users: following})
}

func (h *FollowHandler) writeFollowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrCannotFollowSelf):
		writeError(w, http.StatusBadRequest, "Cannot follow yourself")
	case errors.Is(err, services.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	default:
		log.Printf("Follow operation error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
