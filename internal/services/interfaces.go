package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/Sunnycharan27/loopync/internal/models"
)

// UserServiceInterface defines the contract for user directory operations.
type UserServiceInterface interface {
	Create(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByHandle(ctx context.Context, handle string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Search(ctx context.Context, viewerID uuid.UUID, query string) ([]models.UserSummary, error)
	Profile(ctx context.Context, id uuid.UUID) (*models.PublicProfile, error)
}

// AuthServiceInterface defines the contract for the authentication provider.
type AuthServiceInterface interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hash, password string) bool
	CreateSession(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateSession(ctx context.Context, token string) (*models.User, error)
	DeleteSession(ctx context.Context, token string) error
}

// FriendServiceInterface defines the contract for the friend request
// workflow and friendship ledger.
type FriendServiceInterface interface {
	SendRequest(ctx context.Context, fromID, toID uuid.UUID) (models.RequestOutcome, error)
	AcceptRequest(ctx context.Context, fromID, toID uuid.UUID) error
	RejectRequest(ctx context.Context, fromID, toID uuid.UUID) error
	RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) error
	ListFriends(ctx context.Context, userID uuid.UUID) ([]models.UserSummary, error)
	ListPendingRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestWithUser, error)
	ListSentRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestWithUser, error)
	RelationshipStatus(ctx context.Context, viewerID, targetID uuid.UUID) (models.RelationshipStatus, error)
	FriendCount(ctx context.Context, userID uuid.UUID) (int, error)
	IsFriend(ctx context.Context, userID, otherUserID uuid.UUID) (bool, error)
}

// FollowServiceInterface defines the contract for the follow graph.
type FollowServiceInterface interface {
	Toggle(ctx context.Context, followerID, followeeID uuid.UUID) (*models.FollowResult, error)
	ListFollowers(ctx context.Context, userID uuid.UUID) ([]models.UserSummary, error)
	ListFollowing(ctx context.Context, userID uuid.UUID) ([]models.UserSummary, error)
}

// BlockServiceInterface defines the contract for the block list.
type BlockServiceInterface interface {
	Block(ctx context.Context, blockerID, blockedID uuid.UUID) error
	Unblock(ctx context.Context, blockerID, blockedID uuid.UUID) error
	IsBlocked(ctx context.Context, blockerID, blockedID uuid.UUID) (bool, error)
	ListBlocked(ctx context.Context, blockerID uuid.UUID) ([]models.BlockedUser, error)
}

// NotificationServiceInterface defines the contract for in-app
// relationship notifications.
type NotificationServiceInterface interface {
	NotifyFriendRequestReceived(ctx context.Context, recipientID, actorID uuid.UUID) error
	NotifyFriendRequestAccepted(ctx context.Context, recipientID, actorID uuid.UUID) error
	NotifyNewFollower(ctx context.Context, recipientID, actorID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, limit int) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

// FriendInviteServiceInterface defines the contract for friend invite links.
type FriendInviteServiceInterface interface {
	CreateInvite(ctx context.Context, inviterID uuid.UUID, expiresInDays int) (*models.FriendInvite, string, error)
	ListInvites(ctx context.Context, inviterID uuid.UUID) ([]models.FriendInvite, error)
	RevokeInvite(ctx context.Context, inviterID, inviteID uuid.UUID) error
	AcceptInvite(ctx context.Context, recipientID uuid.UUID, token string) (*models.UserSummary, error)
}
