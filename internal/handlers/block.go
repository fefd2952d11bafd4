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

type BlockHandler struct {
	blockService services.BlockServiceInterface
}

func NewBlockHandler(blockService services.BlockServiceInterface) *BlockHandler {
	return &BlockHandler{blockService: blockService}
}

type BlockRequest struct {
	UserID string `json:"user_id"`
}

type BlockListResponse struct {
	Blocked []models.BlockedUser `json:"blocked"`
}

// Block creates the block and severs any friendship or pending
// requests with the target. Repeat blocks succeed.
func (h *BlockHandler) Block(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req BlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	targetID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.blockService.Block(r.Context(), user.ID, targetID); err != nil {
		h.writeBlockError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "User blocked"})
}

func (h *BlockHandler) Unblock(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	targetID, err := pathUserID(r, "userId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.blockService.Unblock(r.Context(), user.ID, targetID); err != nil {
		h.writeBlockError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "User unblocked"})
}

func (h *BlockHandler) ListBlocked(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	blocked, err := h.blockService.ListBlocked(r.Context(), user.ID)
	if err != nil {
		h.writeBlockError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, BlockListResponse{Blocked: blocked})
}

func (h *BlockHandler) writeBlockError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrCannotBlockSelf):
		writeError(w, http.StatusBadRequest, "Cannot block yourself")
	case errors.Is(err, services.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrBlockNotFound):
		writeError(w, http.StatusNotFound, "Block not found")
	default:
		log.Printf("Block operation error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
