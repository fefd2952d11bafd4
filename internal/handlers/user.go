package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/Sunnycharan27/loopync/internal/models"
	"github.com/Sunnycharan27/loopync/internal/services"
)

type UserHandler struct {
	userService services.UserServiceInterface
}

func NewUserHandler(userService services.UserServiceInterface) *UserHandler {
	return &UserHandler{userService: userService}
}

type UserSearchResponse struct {
	Users []models.UserSummary `json:"users"`
}

// Search matches handles and display names. Blocked users never appear
// in either direction.
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	users, err := h.userService.Search(r.Context(), user.ID, r.URL.Query().Get("q"))
	if err != nil {
		log.Printf("Error searching users: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, UserSearchResponse{Users: users})
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	targetID, err := pathUserID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	profile, err := h.userService.Profile(r.Context(), targetID)
	if errors.Is(err, services.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Printf("Error getting profile: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// pathUserID parses the named path segment as a user id.
func pathUserID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue(name))
}
