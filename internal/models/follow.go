package models

import (
	"time"

	"github.com/google/uuid"
)

// Follow is a directed edge follower → followee. There is no approval
// step; a single toggle operation flips the edge.
type Follow struct {
	FollowerID uuid.UUID `json:"follower_id"`
	FolloweeID uuid.UUID `json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type FollowAction string

const (
	FollowActionFollowed   FollowAction = "followed"
	FollowActionUnfollowed FollowAction = "unfollowed"
)

// FollowResult reports the toggle outcome plus the acting user's
// post-mutation following and follower counts.
type FollowResult struct {
	Action         FollowAction `json:"action"`
	FollowingCount int          `json:"following_count"`
	FollowersCount int          `json:"followers_count"`
}
