package models

import (
	"time"

	"github.com/google/uuid"
)

type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
)

// FriendRequest is one directional request. At most one pending request
// exists per ordered (from, to) pair; rejection deletes the row.
type FriendRequest struct {
	ID         uuid.UUID           `json:"id"`
	FromUserID uuid.UUID           `json:"from_user_id"`
	ToUserID   uuid.UUID           `json:"to_user_id"`
	Status     FriendRequestStatus `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
}

// FriendRequestWithUser carries the counterpart's handle for listings.
type FriendRequestWithUser struct {
	FriendRequest
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name"`
}

// Friendship is a confirmed mutual friendship, stored once per pair in
// canonical order (UserA < UserB). It is the single source of truth for
// friendship; list and count queries derive from it.
type Friendship struct {
	UserA     uuid.UUID `json:"user_a"`
	UserB     uuid.UUID `json:"user_b"`
	CreatedAt time.Time `json:"created_at"`
}

// CanonicalPair orders two user ids lexicographically so a friendship
// has exactly one representation.
func CanonicalPair(x, y uuid.UUID) (uuid.UUID, uuid.UUID) {
	if x.String() < y.String() {
		return x, y
	}
	return y, x
}

// RelationshipStatus is the derived viewer→target relation, checked in
// priority order: friends, then pending in either direction, then none.
type RelationshipStatus string

const (
	RelationshipFriends         RelationshipStatus = "friends"
	RelationshipPendingSent     RelationshipStatus = "pending_sent"
	RelationshipPendingReceived RelationshipStatus = "pending_received"
	RelationshipNone            RelationshipStatus = "none"
)

// RequestOutcome reports what sending a friend request resulted in:
// a new pending request, or an immediate friendship when a reciprocal
// pending request existed.
type RequestOutcome string

const (
	RequestOutcomePending RequestOutcome = "pending"
	RequestOutcomeFriends RequestOutcome = "friends"
)
