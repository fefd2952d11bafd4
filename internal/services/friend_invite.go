package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Sunnycharan27/loopync/internal/models"
)

var (
	ErrInviteNotFound     = errors.New("invite not found")
	ErrInviteExpired      = errors.New("invite expired")
	ErrInviteRevoked      = errors.New("invite revoked")
	ErrInviteAlreadyUsed  = errors.New("invite already used")
	ErrCannotInviteSelf   = errors.New("cannot accept your own invite")
	ErrInviteLimitReached = errors.New("too many active invites")
)

const maxActiveInvites = 10

// FriendInviteService issues single-use tokens that establish a
// friendship directly on acceptance, bypassing the request round trip.
// Only the token hash is stored.
type FriendInviteService struct {
	db     DB
	blocks BlockServiceInterface
}

func NewFriendInviteService(db DB, blocks BlockServiceInterface) *FriendInviteService {
	return &FriendInviteService{db: db, blocks: blocks}
}

func (s *FriendInviteService) CreateInvite(ctx context.Context, inviterID uuid.UUID, expiresInDays int) (*models.FriendInvite, string, error) {
	var active int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM friend_invites
		 WHERE inviter_user_id = $1
		   AND revoked_at IS NULL
		   AND accepted_at IS NULL
		   AND (expires_at IS NULL OR expires_at > NOW())`,
		inviterID,
	).Scan(&active)
	if err != nil {
		return nil, "", fmt.Errorf("counting active invites: %w", err)
	}
	if active >= maxActiveInvites {
		return nil, "", ErrInviteLimitReached
	}

	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return nil, "", fmt.Errorf("generating invite token: %w", err)
	}
	token := hex.EncodeToString(bytes)
	sum := sha256.Sum256([]byte(token))
	tokenHash := hex.EncodeToString(sum[:])

	var expiresAt *time.Time
	if expiresInDays > 0 {
		t := time.Now().Add(time.Duration(expiresInDays) * 24 * time.Hour)
		expiresAt = &t
	}

	invite := &models.FriendInvite{}
	err = s.db.QueryRow(ctx,
		`INSERT INTO friend_invites (inviter_user_id, token_hash, expires_at)
		 VALUES ($1, $2, $3)
		 RETURNING id, inviter_user_id, expires_at, revoked_at, accepted_by_user_id, accepted_at, created_at`,
		inviterID, tokenHash, expiresAt,
	).Scan(&invite.ID, &invite.InviterUserID, &invite.ExpiresAt, &invite.RevokedAt,
		&invite.AcceptedByUserID, &invite.AcceptedAt, &invite.CreatedAt)
	if err != nil {
		return nil, "", fmt.Errorf("creating invite: %w", err)
	}

	return invite, token, nil
}

func (s *FriendInviteService) ListInvites(ctx context.Context, inviterID uuid.UUID) ([]models.FriendInvite, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, inviter_user_id, expires_at, revoked_at, accepted_by_user_id, accepted_at, created_at
		 FROM friend_invites
		 WHERE inviter_user_id = $1
		 ORDER BY created_at DESC`,
		inviterID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing invites: %w", err)
	}
	defer rows.Close()

	var invites []models.FriendInvite
	for rows.Next() {
		var inv models.FriendInvite
		if err := rows.Scan(&inv.ID, &inv.InviterUserID, &inv.ExpiresAt, &inv.RevokedAt,
			&inv.AcceptedByUserID, &inv.AcceptedAt, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning invite: %w", err)
		}
		invites = append(invites, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading invites: %w", err)
	}
	if invites == nil {
		invites = []models.FriendInvite{}
	}
	return invites, nil
}

func (s *FriendInviteService) RevokeInvite(ctx context.Context, inviterID, inviteID uuid.UUID) error {
	result, err := s.db.Exec(ctx,
		`UPDATE friend_invites SET revoked_at = NOW()
		 WHERE id = $1 AND inviter_user_id = $2 AND revoked_at IS NULL AND accepted_at IS NULL`,
		inviteID, inviterID,
	)
	if err != nil {
		return fmt.Errorf("revoking invite: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrInviteNotFound
	}
	return nil
}

// AcceptInvite validates the token and establishes the friendship. The
// invite consumption and the ledger write share one transaction.
func (s *FriendInviteService) AcceptInvite(ctx context.Context, recipientID uuid.UUID, token string) (*models.UserSummary, error) {
	sum := sha256.Sum256([]byte(token))
	tokenHash := hex.EncodeToString(sum[:])

	invite := &models.FriendInvite{}
	err := s.db.QueryRow(ctx,
		`SELECT id, inviter_user_id, expires_at, revoked_at, accepted_by_user_id, accepted_at, created_at
		 FROM friend_invites WHERE token_hash = $1`,
		tokenHash,
	).Scan(&invite.ID, &invite.InviterUserID, &invite.ExpiresAt, &invite.RevokedAt,
		&invite.AcceptedByUserID, &invite.AcceptedAt, &invite.CreatedAt)
	if isNoRows(err) {
		return nil, ErrInviteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting invite: %w", err)
	}

	switch {
	case invite.InviterUserID == recipientID:
		return nil, ErrCannotInviteSelf
	case invite.RevokedAt != nil:
		return nil, ErrInviteRevoked
	case invite.AcceptedAt != nil:
		return nil, ErrInviteAlreadyUsed
	case invite.ExpiresAt != nil && time.Now().After(*invite.ExpiresAt):
		return nil, ErrInviteExpired
	}

	blocked, err := s.blocks.IsBlocked(ctx, invite.InviterUserID, recipientID)
	if err != nil {
		return nil, err
	}
	if !blocked {
		blocked, err = s.blocks.IsBlocked(ctx, recipientID, invite.InviterUserID)
		if err != nil {
			return nil, err
		}
	}
	if blocked {
		return nil, ErrUserBlocked
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin invite transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		"UPDATE friend_invites SET accepted_by_user_id = $1, accepted_at = NOW() WHERE id = $2",
		recipientID, invite.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("consuming invite: %w", err)
	}

	userA, userB := models.CanonicalPair(invite.InviterUserID, recipientID)
	_, err = tx.Exec(ctx,
		`INSERT INTO friendships (user_a, user_b)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		userA, userB,
	)
	if err != nil {
		return nil, fmt.Errorf("recording friendship: %w", err)
	}

	inviter := &models.UserSummary{}
	err = tx.QueryRow(ctx,
		"SELECT id, handle, display_name FROM users WHERE id = $1",
		invite.InviterUserID,
	).Scan(&inviter.ID, &inviter.Handle, &inviter.DisplayName)
	if err != nil {
		return nil, fmt.Errorf("getting inviter: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit invite accept: %w", err)
	}
	return inviter, nil
}
