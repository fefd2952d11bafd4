package models

import (
	"time"

	"github.com/google/uuid"
)

type BlockedUser struct {
	ID        uuid.UUID `json:"id"`
	Handle    string    `json:"handle"`
	BlockedAt time.Time `json:"blocked_at"`
}
