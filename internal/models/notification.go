package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationFriendRequestReceived NotificationType = "friend_request_received"
	NotificationFriendRequestAccepted NotificationType = "friend_request_accepted"
	NotificationNewFollower           NotificationType = "new_follower"
)

type Notification struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"user_id"`
	ActorID     uuid.UUID        `json:"actor_id"`
	ActorHandle string           `json:"actor_handle,omitempty"`
	Type        NotificationType `json:"type"`
	ReadAt      *time.Time       `json:"read_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}
