package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Handle       string    `json:"handle"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateUserParams struct {
	Handle       string
	Email        string
	DisplayName  string
	PasswordHash string
}

// PublicProfile is the externally visible shape of a user. Anything
// returned from a directory accessor goes through this type so the
// password hash never leaves the service.
type PublicProfile struct {
	ID             uuid.UUID `json:"id"`
	Handle         string    `json:"handle"`
	DisplayName    string    `json:"display_name"`
	FriendCount    int       `json:"friend_count"`
	FollowerCount  int       `json:"follower_count"`
	FollowingCount int       `json:"following_count"`
}

type UserSummary struct {
	ID          uuid.UUID `json:"id"`
	Handle      string    `json:"handle"`
	DisplayName string    `json:"display_name"`
}

type Session struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
