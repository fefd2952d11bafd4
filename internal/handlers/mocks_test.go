package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/Sunnycharan27/loopync/internal/models"
)

// Mock services for handler tests. Each method delegates to a Func
// field when set and returns zero values otherwise.

type mockUserService struct {
	CreateFunc      func(ctx context.Context, params models.CreateUserParams) (*models.User, error)
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByHandleFunc func(ctx context.Context, handle string) (*models.User, error)
	GetByEmailFunc  func(ctx context.Context, email string) (*models.User, error)
	SearchFunc      func(ctx context.Context, viewerID uuid.UUID, query string) ([]models.UserSummary, error)
	ProfileFunc     func(ctx context.Context, id uuid.UUID) (*models.PublicProfile, error)
}

func (m *mockUserService) Create(ctx context.Context, params models.CreateUserParams) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *mockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserService) GetByHandle(ctx context.Context, handle string) (*models.User, error) {
	if m.GetByHandleFunc != nil {
		return m.GetByHandleFunc(ctx, handle)
	}
	return nil, nil
}

func (m *mockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserService) Search(ctx context.Context, viewerID uuid.UUID, query string) ([]models.UserSummary, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, viewerID, query)
	}
	return []models.UserSummary{}, nil
}

func (m *mockUserService) Profile(ctx context.Context, id uuid.UUID) (*models.PublicProfile, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, id)
	}
	return nil, nil
}

type mockAuthService struct {
	HashPasswordFunc    func(password string) (string, error)
	VerifyPasswordFunc  func(hash, password string) bool
	CreateSessionFunc   func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateSessionFunc func(ctx context.Context, token string) (*models.User, error)
	DeleteSessionFunc   func(ctx context.Context, token string) error
}

func (m *mockAuthService) HashPassword(password string) (string, error) {
	if m.HashPasswordFunc != nil {
		return m.HashPasswordFunc(password)
	}
	return "hashed-" + password, nil
}

func (m *mockAuthService) VerifyPassword(hash, password string) bool {
	if m.VerifyPasswordFunc != nil {
		return m.VerifyPasswordFunc(hash, password)
	}
	return true
}

func (m *mockAuthService) CreateSession(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, userID)
	}
	return "session-token", nil
}

func (m *mockAuthService) ValidateSession(ctx context.Context, token string) (*models.User, error) {
	if m.ValidateSessionFunc != nil {
		return m.ValidateSessionFunc(ctx, token)
	}
	return nil, nil
}

func (m *mockAuthService) DeleteSession(ctx context.Context, token string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, token)
	}
	return nil
}

type mockFriendService struct {
	SendRequestFunc         func(ctx context.Context, fromID, toID uuid.UUID) (models.RequestOutcome, error)
	AcceptRequestFunc       func(ctx context.Context, fromID, toID uuid.UUID) error
	RejectRequestFunc       func(ctx context.Context, fromID, toID uuid.UUID) error
	RemoveFriendFunc        func(ctx context.Context, userID, friendID uuid.UUID) error
	ListFriendsFunc         func(ctx context.Context, userID uuid.UUID) ([]models.UserSummary, error)
	ListPendingRequestsFunc func(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestWithUser, error)
	ListSentRequestsFunc    func(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestWithUser, error)
	RelationshipStatusFunc  func(ctx context.Context, viewerID, targetID uuid.UUID) (models.RelationshipStatus, error)
	FriendCountFunc         func(ctx context.Context, userID uuid.UUID) (int, error)
	IsFriendFunc            func(ctx context.Context, userID, otherUserID uuid.UUID) (bool, error)
}

func (m *mockFriendService) SendRequest(ctx context.Context, fromID, toID uuid.UUID) (models.RequestOutcome, error) {
	if m.SendRequestFunc != nil {
		return m.SendRequestFunc(ctx, fromID, toID)
	}
	return models.RequestOutcomePending, nil
}

func (m *mockFriendService) AcceptRequest(ctx context.Context, fromID, toID uuid.UUID) error {
	if m.AcceptRequestFunc != nil {
		return m.AcceptRequestFunc(ctx, fromID, toID)
	}
	return nil
}

func (m *mockFriendService) RejectRequest(ctx context.Context, fromID, toID uuid.UUID) error {
	if m.RejectRequestFunc != nil {
		return m.RejectRequestFunc(ctx, fromID, toID)
	}
	return nil
}

func (m *mockFriendService) RemoveFriend(ctx context.Context, userID, friendID uuid.UUID) error {
	if m.RemoveFriendFunc != nil {
		return m.RemoveFriendFunc(ctx, userID, friendID)
	}
	return nil
}

func (m *mockFriendService) ListFriends(ctx context.Context, userID uuid.UUID) ([]models.UserSummary, error) {
	if m.ListFriendsFunc != nil {
		return m.ListFriendsFunc(ctx, userID)
	}
	return []models.UserSummary{}, nil
}

func (m *mockFriendService) ListPendingRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestWithUser, error) {
	if m.ListPendingRequestsFunc != nil {
		return m.ListPendingRequestsFunc(ctx, userID)
	}
	return []models.FriendRequestWithUser{}, nil
}

func (m *mockFriendService) ListSentRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestWithUser, error) {
	if m.ListSentRequestsFunc != nil {
		return m.ListSentRequestsFunc(ctx, userID)
	}
	return []models.FriendRequestWithUser{}, nil
}

func (m *mockFriendService) RelationshipStatus(ctx context.Context, viewerID, targetID uuid.UUID) (models.RelationshipStatus, error) {
	if m.RelationshipStatusFunc != nil {
		return m.RelationshipStatusFunc(ctx, viewerID, targetID)
	}
	return models.RelationshipNone, nil
}

func (m *mockFriendService) FriendCount(ctx context.Context, userID uuid.UUID) (int, error) {
	if m.FriendCountFunc != nil {
		return m.FriendCountFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockFriendService) IsFriend(ctx context.Context, userID, otherUserID uuid.UUID) (bool, error) {
	if m.IsFriendFunc != nil {
		return m.IsFriendFunc(ctx, userID, otherUserID)
	}
	return false, nil
}

type mockFollowService struct {
	ToggleFunc        func(ctx context.Context, followerID, followeeID uuid.UUID) (*models.FollowResult, error)
	ListFollowersFunc func(ctx context.Context, userID uuid.UUID) ([]models.UserSummary, error)
	ListFollowingFunc func(ctx context.Context, userID uuid.UUID) ([]models.UserSummary, error)
}

func (m *mockFollowService) Toggle(ctx context.Context, followerID, followeeID uuid.UUID) (*models.FollowResult, error) {
	if m.ToggleFunc != nil {
		return m.ToggleFunc(ctx, followerID, followeeID)
	}
	return &models.FollowResult{Action: models.FollowActionFollowed}, nil
}

func (m *mockFollowService) ListFollowers(ctx context.Context, userID uuid.UUID) ([]models.UserSummary, error) {
	if m.ListFollowersFunc != nil {
		return m.ListFollowersFunc(ctx, userID)
	}
	return []models.UserSummary{}, nil
}

func (m *mockFollowService) ListFollowing(ctx context.Context, userID uuid.UUID) ([]models.UserSummary, error) {
	if m.ListFollowingFunc != nil {
		return m.ListFollowingFunc(ctx, userID)
	}
	return []models.UserSummary{}, nil
}

type mockBlockService struct {
	BlockFunc       func(ctx context.Context, blockerID, blockedID uuid.UUID) error
	UnblockFunc     func(ctx context.Context, blockerID, blockedID uuid.UUID) error
	IsBlockedFunc   func(ctx context.Context, blockerID, blockedID uuid.UUID) (bool, error)
	ListBlockedFunc func(ctx context.Context, blockerID uuid.UUID) ([]models.BlockedUser, error)
}

func (m *mockBlockService) Block(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	if m.BlockFunc != nil {
		return m.BlockFunc(ctx, blockerID, blockedID)
	}
	return nil
}

func (m *mockBlockService) Unblock(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	if m.UnblockFunc != nil {
		return m.UnblockFunc(ctx, blockerID, blockedID)
	}
	return nil
}

func (m *mockBlockService) IsBlocked(ctx context.Context, blockerID, blockedID uuid.UUID) (bool, error) {
	if m.IsBlockedFunc != nil {
		return m.IsBlockedFunc(ctx, blockerID, blockedID)
	}
	return false, nil
}

func (m *mockBlockService) ListBlocked(ctx context.Context, blockerID uuid.UUID) ([]models.BlockedUser, error) {
	if m.ListBlockedFunc != nil {
		return m.ListBlockedFunc(ctx, blockerID)
	}
	return []models.BlockedUser{}, nil
}

type mockNotificationService struct {
	NotifyFriendRequestReceivedFunc func(ctx context.Context, recipientID, actorID uuid.UUID) error
	NotifyFriendRequestAcceptedFunc func(ctx context.Context, recipientID, actorID uuid.UUID) error
	NotifyNewFollowerFunc           func(ctx context.Context, recipientID, actorID uuid.UUID) error
	ListFunc                        func(ctx context.Context, userID uuid.UUID, limit int) ([]models.Notification, error)
	UnreadCountFunc                 func(ctx context.Context, userID uuid.UUID) (int, error)
	MarkReadFunc                    func(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllReadFunc                 func(ctx context.Context, userID uuid.UUID) error
}

func (m *mockNotificationService) NotifyFriendRequestReceived(ctx context.Context, recipientID, actorID uuid.UUID) error {
	if m.NotifyFriendRequestReceivedFunc != nil {
		return m.NotifyFriendRequestReceivedFunc(ctx, recipientID, actorID)
	}
	return nil
}

func (m *mockNotificationService) NotifyFriendRequestAccepted(ctx context.Context, recipientID, actorID uuid.UUID) error {
	if m.NotifyFriendRequestAcceptedFunc != nil {
		return m.NotifyFriendRequestAcceptedFunc(ctx, recipientID, actorID)
	}
	return nil
}

func (m *mockNotificationService) NotifyNewFollower(ctx context.Context, recipientID, actorID uuid.UUID) error {
	if m.NotifyNewFollowerFunc != nil {
		return m.NotifyNewFollowerFunc(ctx, recipientID, actorID)
	}
	return nil
}

func (m *mockNotificationService) List(ctx context.Context, userID uuid.UUID, limit int) ([]models.Notification, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, limit)
	}
	return []models.Notification{}, nil
}

func (m *mockNotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	if m.UnreadCountFunc != nil {
		return m.UnreadCountFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockNotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, userID, notificationID)
	}
	return nil
}

func (m *mockNotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if m.MarkAllReadFunc != nil {
		return m.MarkAllReadFunc(ctx, userID)
	}
	return nil
}

type mockFriendInviteService struct {
	CreateInviteFunc func(ctx context.Context, inviterID uuid.UUID, expiresInDays int) (*models.FriendInvite, string, error)
	ListInvitesFunc  func(ctx context.Context, inviterID uuid.UUID) ([]models.FriendInvite, error)
	RevokeInviteFunc func(ctx context.Context, inviterID, inviteID uuid.UUID) error
	AcceptInviteFunc func(ctx context.Context, recipientID uuid.UUID, token string) (*models.UserSummary, error)
}

func (m *mockFriendInviteService) CreateInvite(ctx context.Context, inviterID uuid.UUID, expiresInDays int) (*models.FriendInvite, string, error) {
	if m.CreateInviteFunc != nil {
		return m.CreateInviteFunc(ctx, inviterID, expiresInDays)
	}
	return &models.FriendInvite{}, "invite-token", nil
}

func (m *mockFriendInviteService) ListInvites(ctx context.Context, inviterID uuid.UUID) ([]models.FriendInvite, error) {
	if m.ListInvitesFunc != nil {
		return m.ListInvitesFunc(ctx, inviterID)
	}
	return []models.FriendInvite{}, nil
}

func (m *mockFriendInviteService) RevokeInvite(ctx context.Context, inviterID, inviteID uuid.UUID) error {
	if m.RevokeInviteFunc != nil {
		return m.RevokeInviteFunc(ctx, inviterID, inviteID)
	}
	return nil
}

func (m *mockFriendInviteService) AcceptInvite(ctx context.Context, recipientID uuid.UUID, token string) (*models.UserSummary, error) {
	if m.AcceptInviteFunc != nil {
		return m.AcceptInviteFunc(ctx, recipientID, token)
	}
	return &models.UserSummary{}, nil
}
