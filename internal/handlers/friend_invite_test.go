package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/Sunnycharan27/loopync/internal/models"
	"github.com/Sunnycharan27/loopync/internal/services"
)

func TestFriendInviteHandler_CreateInvite(t *testing.T) {
	user := testUser()
	inviteID := uuid.New()

	inviteService := &mockFriendInviteService{
		CreateInviteFunc: func(ctx context.Context, inviterID uuid.UUID, expiresInDays int) (*models.FriendInvite, string, error) {
			if inviterID != user.ID || expiresInDays != 7 {
				t.Fatalf("unexpected create args: %s %d", inviterID, expiresInDays)
			}
			return &models.FriendInvite{ID: inviteID, InviterUserID: inviterID}, "plain-token", nil
		},
	}
	h := NewFriendInviteHandler(inviteService, &mockNotificationService{})

	req := newRequest(t, http.MethodPost, "/api/friends/invites", CreateInviteRequest{ExpiresInDays: 7}, user)
	rec := httptest.NewRecorder()
	h.CreateInvite(rec, req)

	assertStatus(t, rec, http.StatusCreated)

	var resp CreateInviteResponse
	decodeResponse(t, rec, &resp)
	if resp.Invite == nil || resp.Invite.ID != inviteID {
		t.Fatalf("unexpected invite: %+v", resp.Invite)
	}
	if resp.Token != "plain-token" {
		t.Fatalf("expected plain token in response, got %q", resp.Token)
	}
}

func TestFriendInviteHandler_CreateInvite_LimitReached(t *testing.T) {
	inviteService := &mockFriendInviteService{
		CreateInviteFunc: func(ctx context.Context, inviterID uuid.UUID, expiresInDays int) (*models.FriendInvite, string, error) {
			return nil, "", services.ErrInviteLimitReached
		},
	}
	h := NewFriendInviteHandler(inviteService, &mockNotificationService{})

	req := newRequest(t, http.MethodPost, "/api/friends/invites", CreateInviteRequest{}, testUser())
	rec := httptest.NewRecorder()
	h.CreateInvite(rec, req)

	assertErrorResponse(t, rec, http.StatusConflict)
}

func TestFriendInviteHandler_CreateInvite_BadExpiry(t *testing.T) {
	h := NewFriendInviteHandler(&mockFriendInviteService{}, &mockNotificationService{})

	req := newRequest(t, http.MethodPost, "/api/friends/invites", CreateInviteRequest{ExpiresInDays: 1000}, testUser())
	rec := httptest.NewRecorder()
	h.CreateInvite(rec, req)

	assertErrorResponse(t, rec, http.StatusBadRequest)
}

func TestFriendInviteHandler_RevokeInvite_NotFound(t *testing.T) {
	inviteService := &mockFriendInviteService{
		RevokeInviteFunc: func(ctx context.Context, inviterID, inviteID uuid.UUID) error {
			return services.ErrInviteNotFound
		},
	}
	h := NewFriendInviteHandler(inviteService, &mockNotificationService{})

	inviteID := uuid.New()
	req := newRequest(t, http.MethodDelete, "/api/friends/invites/"+inviteID.String()+"/revoke", nil, testUser())
	req.SetPathValue("id", inviteID.String())
	rec := httptest.NewRecorder()
	h.RevokeInvite(rec, req)

	assertErrorResponse(t, rec, http.StatusNotFound)
}

func TestFriendInviteHandler_AcceptInvite(t *testing.T) {
	user := testUser()
	inviterID := uuid.New()

	var notifiedRecipient uuid.UUID
	inviteService := &mockFriendInviteService{
		AcceptInviteFunc: func(ctx context.Context, recipientID uuid.UUID, token string) (*models.UserSummary, error) {
			if recipientID != user.ID || token != "tok" {
				t.Fatalf("unexpected accept args: %s %q", recipientID, token)
			}
			return &models.UserSummary{ID: inviterID, Handle: "inviter"}, nil
		},
	}
	notificationService := &mockNotificationService{
		NotifyFriendRequestAcceptedFunc: func(ctx context.Context, recipientID, actorID uuid.UUID) error {
			notifiedRecipient = recipientID
			return nil
		},
	}
	h := NewFriendInviteHandler(inviteService, notificationService)

	req := newRequest(t, http.MethodPost, "/api/friends/invites/accept", AcceptInviteRequest{Token: "tok"}, user)
	rec := httptest.NewRecorder()
	h.AcceptInvite(rec, req)

	assertStatus(t, rec, http.StatusOK)

	var resp AcceptInviteResponse
	decodeResponse(t, rec, &resp)
	if resp.Friend == nil || resp.Friend.ID != inviterID {
		t.Fatalf("unexpected friend: %+v", resp.Friend)
	}
	if notifiedRecipient != inviterID {
		t.Fatalf("expected inviter notification, got %s", notifiedRecipient)
	}
}

func TestFriendInviteHandler_AcceptInvite_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", services.ErrInviteNotFound, http.StatusNotFound},
		{"expired", services.ErrInviteExpired, http.StatusGone},
		{"revoked", services.ErrInviteRevoked, http.StatusGone},
		{"used", services.ErrInviteAlreadyUsed, http.StatusConflict},
		{"own invite", services.ErrCannotInviteSelf, http.StatusBadRequest},
		{"blocked", services.ErrUserBlocked, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inviteService := &mockFriendInviteService{
				AcceptInviteFunc: func(ctx context.Context, recipientID uuid.UUID, token string) (*models.UserSummary, error) {
					return nil, tt.err
				},
			}
			h := NewFriendInviteHandler(inviteService, &mockNotificationService{})

			req := newRequest(t, http.MethodPost, "/api/friends/invites/accept", AcceptInviteRequest{Token: "tok"}, testUser())
			rec := httptest.NewRecorder()
			h.AcceptInvite(rec, req)

			assertErrorResponse(t, rec, tt.status)
		})
	}
}
